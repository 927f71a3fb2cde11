package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdstruct/internal/logging"
	"github.com/yaklabco/gomdstruct/pkg/format"
	"github.com/yaklabco/gomdstruct/pkg/fsutil"
	"github.com/yaklabco/gomdstruct/pkg/render"
)

type previewFlags struct {
	output string
	flavor string
	raw    bool
}

func newPreviewCommand() *cobra.Command {
	flags := &previewFlags{}

	cmd := &cobra.Command{
		Use:   "preview <file>",
		Short: "Render a structured file as HTML",
		Long: `Format a plain text file and render the resulting Markdown as HTML.
The file on disk is never modified; the HTML goes to stdout or, with
--output, to a file you can open in a browser.

Examples:
  gomdstruct preview notes.txt                  Print HTML to stdout
  gomdstruct preview notes.txt -o notes.html    Write a standalone page
  gomdstruct preview --raw notes.md             Skip formatting, render as-is`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPreview(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "write HTML to file instead of stdout")
	cmd.Flags().StringVar(&flags.flavor, "flavor", render.FlavorGFM, "markdown flavor: gfm, commonmark")
	cmd.Flags().BoolVar(&flags.raw, "raw", false, "render the file as-is without formatting")

	return cmd
}

func runPreview(cmd *cobra.Command, path string, flags *previewFlags) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	loadResult, err := loadConfig(ctx, cmd)
	if err != nil {
		return err
	}

	content, _, err := fsutil.Read(ctx, path)
	if err != nil {
		return err
	}

	markdown := string(content)
	if !flags.raw {
		engine, err := format.New(loadResult.Options)
		if err != nil {
			return fmt.Errorf("create engine: %w", err)
		}
		markdown, err = engine.Format(ctx, markdown)
		if err != nil {
			return err
		}
	}

	renderer := render.New(flags.flavor)

	if flags.output == "" {
		html, err := renderer.HTML(ctx, markdown)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), html)
		return nil
	}

	title := filepath.Base(path)
	page, err := renderer.Page(ctx, title, markdown)
	if err != nil {
		return err
	}
	if err := fsutil.WriteAtomic(ctx, flags.output, []byte(page), fsutil.DefaultFileMode); err != nil {
		return err
	}

	logging.FromContext(ctx).Info("wrote preview",
		logging.FieldInput, path,
		logging.FieldOutput, flags.output,
	)
	return nil
}
