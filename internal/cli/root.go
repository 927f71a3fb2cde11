// Package cli provides the Cobra command structure for gomdstruct.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdstruct/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root gomdstruct command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "gomdstruct",
		Short: "Turn unstructured plain text into clean Markdown",
		Long: `gomdstruct converts unstructured plain text into well-formed Markdown.

It detects latent structure in pasted notes - folder paths, labels,
indented lists, numbered items - and rewrites them as headings, bold
labels, and Markdown lists. Code blocks pass through untouched. An
optional NLP pass tidies capitalization, pronouns, and punctuation.
Files are rewritten safely with atomic writes and sidecar backups.`,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
			// Subcommands pull the logger back out with logging.FromContext.
			cmd.SetContext(logging.WithLogger(cmd.Context(), logging.Default()))
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	// Add subcommands.
	rootCmd.AddCommand(newFormatCommand())
	rootCmd.AddCommand(newRulesCommand())
	rootCmd.AddCommand(newPreviewCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	return rootCmd
}
