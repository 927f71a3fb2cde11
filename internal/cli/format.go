package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdstruct/internal/configloader"
	"github.com/yaklabco/gomdstruct/internal/logging"
	"github.com/yaklabco/gomdstruct/internal/ui/pretty"
	"github.com/yaklabco/gomdstruct/pkg/config"
	"github.com/yaklabco/gomdstruct/pkg/format"
	"github.com/yaklabco/gomdstruct/pkg/runner"
)

// ErrChangesFound signals a non-zero exit without an error message.
var ErrChangesFound = errors.New("changes found")

type formatFlags struct {
	write   bool
	diff    bool
	check   bool
	nlp     bool
	backup  bool
	jobs    int
	exclude []string

	headerLevel int
	noFolders   bool
	noLists     bool
	noLabels    bool
	noTitle     bool
	detectLang  bool

	smartPunctuation  bool
	ensurePunctuation bool
	semanticBreaks    bool
}

func newFormatCommand() *cobra.Command {
	flags := &formatFlags{}

	cmd := &cobra.Command{
		Use:   "format [paths...]",
		Short: "Structure plain text files into Markdown",
		Long:  formatLongDescription + "\n\n" + envVarHelp(),
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFormat(cmd, args, flags)
		},
	}

	addFormatFlags(cmd, flags)

	return cmd
}

const formatLongDescription = `Structure plain text files into Markdown.

By default, processes all .md, .markdown, and .txt files in the current
directory and subdirectories, reporting which files would change without
writing anything. Specify paths to process specific files or directories.

When stdin is a pipe and no paths are given, reads from stdin and writes
the structured Markdown to stdout.

Examples:
  gomdstruct format                  # Report pending changes
  gomdstruct format --write          # Rewrite changed files in place
  gomdstruct format --diff notes/    # Show diffs without writing
  gomdstruct format --check          # Exit 1 if any file would change
  gomdstruct format --nlp --write    # Include the NLP cleanup pass
  cat notes.txt | gomdstruct format  # Filter stdin to stdout`

// envVarHelp renders the supported GOMDSTRUCT_* overrides as a help
// section. Environment variables sit between the config file and
// explicit flags in precedence.
func envVarHelp() string {
	vars := configloader.ListEnvVars()

	names := make([]string, 0, len(vars))
	width := 0
	for name := range vars {
		names = append(names, name)
		if len(name) > width {
			width = len(name)
		}
	}
	sort.Strings(names)

	var builder strings.Builder
	builder.WriteString("Environment variables (override the config file, overridden by flags):")
	for _, name := range names {
		fmt.Fprintf(&builder, "\n  %-*s  %s", width, name, vars[name])
	}
	return builder.String()
}

func runFormat(cmd *cobra.Command, args []string, flags *formatFlags) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.FromContext(ctx)

	loadResult, err := loadConfig(ctx, cmd)
	if err != nil {
		return err
	}
	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if loadResult.Path != "" {
		logger.Debug("loaded configuration", logging.FieldPath, loadResult.Path)
	}

	opts := loadResult.Options
	run := loadResult.Run
	applyFormatFlags(cmd, flags, &opts, &run)

	engine, err := format.New(opts)
	if err != nil {
		return fmt.Errorf("create engine: %w", err)
	}
	pipeline := format.NewPipeline(engine)

	pipelineOpts := format.PipelineOptions{
		Write:  flags.write,
		DryRun: flags.diff,
		Backup: run.Backup,
	}

	// Stdin mode: no paths and piped input.
	if len(args) == 0 && !isatty.IsTerminal(os.Stdin.Fd()) {
		return runFormatStdin(ctx, cmd, pipeline, pipelineOpts, flags)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	runOpts := runner.Options{
		Paths:        args,
		WorkingDir:   workDir,
		Extensions:   run.Extensions,
		ExcludeGlobs: run.Exclude,
		Jobs:         run.Jobs,
		Pipeline:     pipelineOpts,
	}

	logger.Debug("starting format run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldWrite, flags.write,
		logging.FieldDryRun, flags.diff,
		logging.FieldNLP, opts.NLP,
		logging.FieldJobs, runOpts.Jobs,
	)

	formatRunner := runner.New(pipeline)
	result, err := formatRunner.Run(ctx, runOpts)
	if err != nil {
		return errors.Join(errors.New("format run failed"), err)
	}

	reportResult(cmd, result, flags)

	if ExitCodeFromResult(result, flags.check) != ExitSuccess {
		return ErrChangesFound
	}
	return nil
}

// runFormatStdin formats piped input to stdout.
func runFormatStdin(
	ctx context.Context,
	cmd *cobra.Command,
	pipeline *format.Pipeline,
	opts format.PipelineOptions,
	flags *formatFlags,
) error {
	if flags.write {
		return errors.New("--write cannot be used with stdin input")
	}

	content, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}

	pr, err := pipeline.ProcessContent(ctx, "<stdin>", string(content), opts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if flags.diff {
		styles := newStyles(cmd, out)
		fmt.Fprint(out, styles.FormatDiff(pr.Diff))
	} else {
		output := pr.Formatted
		if !pr.Changed {
			output = string(content)
		}
		fmt.Fprint(out, output)
	}

	if flags.check && pr.Changed {
		return ErrChangesFound
	}
	return nil
}

// reportResult prints per-file outcomes and the run summary.
func reportResult(cmd *cobra.Command, result *runner.Result, flags *formatFlags) {
	out := cmd.OutOrStdout()
	styles := newStyles(cmd, out)

	for _, outcome := range result.Files {
		if outcome.Error == nil && outcome.Result != nil &&
			!outcome.Result.Changed && !outcome.Result.Skipped {
			continue
		}
		fmt.Fprint(out, styles.FormatOutcome(outcome))
		if flags.diff && outcome.Result != nil && outcome.Result.Diff != nil {
			fmt.Fprint(out, styles.FormatDiff(outcome.Result.Diff))
		}
	}

	fmt.Fprint(out, styles.FormatSummaryOneLine(result.Stats))
}

// loadConfig resolves configuration honoring the --config persistent flag.
func loadConfig(ctx context.Context, cmd *cobra.Command) (*configloader.LoadResult, error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
	})
	if err != nil {
		return nil, errors.Join(errors.New("failed to load configuration"), err)
	}
	return loadResult, nil
}

// newStyles builds the styled renderers honoring the --color flag.
func newStyles(cmd *cobra.Command, out io.Writer) *pretty.Styles {
	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}
	return pretty.NewStyles(pretty.IsColorEnabled(colorMode, out))
}

// applyFormatFlags overlays explicitly set CLI flags onto the loaded
// configuration. Only flags the user changed take effect, so config
// file settings survive unless overridden.
func applyFormatFlags(cmd *cobra.Command, flags *formatFlags, opts *config.Options, run *configloader.RunConfig) {
	if cmd.Flags().Changed("nlp") {
		opts.NLP = flags.nlp
	}
	if cmd.Flags().Changed("header-level") {
		opts.HeaderLevel = flags.headerLevel
	}
	if cmd.Flags().Changed("no-folders") {
		opts.DetectFolders = !flags.noFolders
	}
	if cmd.Flags().Changed("no-lists") {
		opts.DetectLists = !flags.noLists
	}
	if cmd.Flags().Changed("no-labels") {
		opts.DetectLabels = !flags.noLabels
	}
	if cmd.Flags().Changed("no-title") {
		opts.FirstLineTitle = !flags.noTitle
	}
	if cmd.Flags().Changed("detect-lang") {
		opts.DetectCodeLanguage = flags.detectLang
	}
	if cmd.Flags().Changed("smart-punctuation") {
		opts.SmartQuotes = flags.smartPunctuation
		opts.SmartDashes = flags.smartPunctuation
		opts.SmartEllipsis = flags.smartPunctuation
	}
	if cmd.Flags().Changed("ensure-punctuation") {
		opts.EnsurePunctuation = flags.ensurePunctuation
	}
	if cmd.Flags().Changed("semantic-breaks") {
		opts.SemanticBreaks = flags.semanticBreaks
	}

	if cmd.Flags().Changed("backup") {
		run.Backup = flags.backup
	}
	if cmd.Flags().Changed("jobs") {
		run.Jobs = flags.jobs
	}
	if len(flags.exclude) > 0 {
		run.Exclude = append(run.Exclude, flags.exclude...)
	}
}

func addFormatFlags(cmd *cobra.Command, flags *formatFlags) {
	cmd.Flags().BoolVarP(&flags.write, "write", "w", false, "rewrite changed files in place")
	cmd.Flags().BoolVar(&flags.diff, "diff", false, "show diffs without writing")
	cmd.Flags().BoolVar(&flags.check, "check", false, "exit non-zero if any file would change")
	cmd.Flags().BoolVar(&flags.nlp, "nlp", false, "enable the NLP cleanup pass")
	cmd.Flags().BoolVar(&flags.backup, "backup", true, "create sidecar backups before writing")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.exclude, "exclude", nil, "glob patterns to exclude")

	cmd.Flags().IntVar(&flags.headerLevel, "header-level", 3, "heading level for folder headings (1-6)")
	cmd.Flags().BoolVar(&flags.noFolders, "no-folders", false, "disable folder path heading detection")
	cmd.Flags().BoolVar(&flags.noLists, "no-lists", false, "disable indented list detection")
	cmd.Flags().BoolVar(&flags.noLabels, "no-labels", false, "disable label line detection")
	cmd.Flags().BoolVar(&flags.noTitle, "no-title", false, "disable first-line title detection")
	cmd.Flags().BoolVar(&flags.detectLang, "detect-lang", false, "tag bare code fences with a detected language")

	cmd.Flags().BoolVar(&flags.smartPunctuation, "smart-punctuation", false, "typographic quotes, dashes, and ellipses (NLP pass)")
	cmd.Flags().BoolVar(&flags.ensurePunctuation, "ensure-punctuation", false, "add terminal periods to prose sentences (NLP pass)")
	cmd.Flags().BoolVar(&flags.semanticBreaks, "semantic-breaks", false, "break long multi-sentence lines at sentence boundaries (NLP pass)")
}
