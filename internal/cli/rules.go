package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdstruct/internal/logging"
	"github.com/yaklabco/gomdstruct/pkg/config"
	"github.com/yaklabco/gomdstruct/pkg/structure"
)

type rulesFlags struct {
	format string
}

const formatJSON = "json"

// ruleInfo represents a rule in JSON output.
type ruleInfo struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
}

func newRulesCommand() *cobra.Command {
	flags := &rulesFlags{}

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List built-in structuring rules",
		Long: `List the built-in structuring rules in the order they are tried.
Rules earlier in the list take precedence: the first matching rule
transforms a line and later rules never see it.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			registry := structure.NewDefaultRegistry(config.Default())
			rules := registry.Rules()

			if flags.format == formatJSON {
				return outputRulesJSON(rules)
			}

			logger := log.NewWithOptions(os.Stdout, log.Options{
				ReportTimestamp: false,
				ReportCaller:    false,
			})

			logger.Info("built-in rules, in precedence order")
			for _, rule := range rules {
				logger.Info(rule.Name(), logging.FieldKind, rule.Kind().String())
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "text",
		"output format: text, json")

	return cmd
}

// outputRulesJSON outputs rules as a JSON array.
func outputRulesJSON(rules []structure.Rule) error {
	infos := make([]ruleInfo, 0, len(rules))
	for _, rule := range rules {
		infos = append(infos, ruleInfo{
			Name: rule.Name(),
			Kind: rule.Kind().String(),
		})
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(infos); err != nil {
		return fmt.Errorf("encoding rules: %w", err)
	}
	return nil
}
