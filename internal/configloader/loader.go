// Package configloader resolves the effective configuration for a run:
// project config discovery, YAML loading, environment overrides, and
// validation. CLI flags are applied by the caller on top of the result.
package configloader

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/gomdstruct/pkg/config"
)

// configFilePermissions is the file mode for written config files.
const configFilePermissions = 0644

// FileConfig mirrors the YAML config file. Fields are pointers so an
// absent key can be told apart from an explicit zero value when
// applying over defaults.
type FileConfig struct {
	// Structure detection.
	DetectFolders      *bool `yaml:"detect_folders"`
	DetectLists        *bool `yaml:"detect_lists"`
	DetectLabels       *bool `yaml:"detect_labels"`
	FirstLineTitle     *bool `yaml:"first_line_title"`
	HeaderLevel        *int  `yaml:"header_level"`
	CollapseBlankLines *bool `yaml:"collapse_blank_lines"`
	PreserveCodeBlocks *bool `yaml:"preserve_code_blocks"`
	DetectCodeLanguage *bool `yaml:"detect_code_language"`

	// Language cleanup.
	NLP                 *bool `yaml:"nlp"`
	FixPronouns         *bool `yaml:"fix_pronouns"`
	CapitalizeSentences *bool `yaml:"capitalize_sentences"`
	SmartQuotes         *bool `yaml:"smart_quotes"`
	SmartDashes         *bool `yaml:"smart_dashes"`
	SmartEllipsis       *bool `yaml:"smart_ellipsis"`
	EnsurePunctuation   *bool `yaml:"ensure_punctuation"`
	SemanticBreaks      *bool `yaml:"semantic_breaks"`
	WrapWidth           *int  `yaml:"wrap_width"`

	// Run behavior.
	Extensions []string `yaml:"extensions"`
	Exclude    []string `yaml:"exclude"`
	Jobs       *int     `yaml:"jobs"`
	Backup     *bool    `yaml:"backup"`
}

// RunConfig holds the run-level settings a config file can set, as
// distinct from the per-document formatting options.
type RunConfig struct {
	Extensions []string
	Exclude    []string
	Jobs       int
	Backup     bool
}

// DefaultRunConfig returns the run settings used when no config file
// sets them.
func DefaultRunConfig() RunConfig {
	return RunConfig{Backup: true}
}

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// WorkingDir is the directory to search from for project config.
	// Defaults to the current working directory if empty.
	WorkingDir string

	// ExplicitPath is an explicit config file path (from --config).
	// If set, project config discovery is skipped and a missing file
	// is an error.
	ExplicitPath string

	// IgnoreProjectConfig skips config file discovery entirely.
	IgnoreProjectConfig bool

	// IgnoreEnv skips GOMDSTRUCT_* environment overrides.
	IgnoreEnv bool
}

// LoadResult contains the resolved configuration and metadata.
type LoadResult struct {
	// Options is the merged per-document formatting options.
	Options config.Options

	// Run is the merged run-level configuration.
	Run RunConfig

	// Path is the config file that was loaded, empty when none.
	Path string

	// Warnings contains non-fatal issues encountered during loading.
	Warnings []string
}

// Load resolves the configuration by merging, lowest to highest
// precedence: defaults, config file, environment variables. CLI flags
// sit above all of these and are applied by the cli package.
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	result := &LoadResult{
		Options: config.Default(),
		Run:     DefaultRunConfig(),
	}

	path := opts.ExplicitPath
	if path == "" && !opts.IgnoreProjectConfig {
		found, err := FindProjectConfig(ctx, opts.WorkingDir)
		if err != nil {
			return nil, err
		}
		path = found
	}

	if path != "" {
		fileCfg, err := loadConfigFile(path)
		if err != nil {
			return nil, fmt.Errorf("load config %s: %w", path, err)
		}
		fileCfg.apply(result)
		result.Path = path
	}

	if !opts.IgnoreEnv {
		if err := applyEnv(result); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}

	validation := Validate(result)
	if !validation.Valid() {
		return nil, &validation.Errors[0]
	}
	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Message)
	}

	result.Options = result.Options.Normalized()
	return result, nil
}

// loadConfigFile parses a YAML config file. Unknown keys are rejected
// so typos surface instead of silently doing nothing.
func loadConfigFile(path string) (*FileConfig, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	cfg := &FileConfig{}
	dec := yaml.NewDecoder(bytes.NewReader(content))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}
	return cfg, nil
}

// apply overlays the file config onto the result, leaving absent keys
// at their current values.
func (f *FileConfig) apply(result *LoadResult) {
	o := &result.Options

	setBool(&o.DetectFolders, f.DetectFolders)
	setBool(&o.DetectLists, f.DetectLists)
	setBool(&o.DetectLabels, f.DetectLabels)
	setBool(&o.FirstLineTitle, f.FirstLineTitle)
	setInt(&o.HeaderLevel, f.HeaderLevel)
	setBool(&o.CollapseBlankLines, f.CollapseBlankLines)
	setBool(&o.PreserveCodeBlocks, f.PreserveCodeBlocks)
	setBool(&o.DetectCodeLanguage, f.DetectCodeLanguage)

	setBool(&o.NLP, f.NLP)
	setBool(&o.FixPronouns, f.FixPronouns)
	setBool(&o.CapitalizeSentences, f.CapitalizeSentences)
	setBool(&o.SmartQuotes, f.SmartQuotes)
	setBool(&o.SmartDashes, f.SmartDashes)
	setBool(&o.SmartEllipsis, f.SmartEllipsis)
	setBool(&o.EnsurePunctuation, f.EnsurePunctuation)
	setBool(&o.SemanticBreaks, f.SemanticBreaks)
	setInt(&o.WrapWidth, f.WrapWidth)

	if f.Extensions != nil {
		result.Run.Extensions = f.Extensions
	}
	if f.Exclude != nil {
		result.Run.Exclude = f.Exclude
	}
	setInt(&result.Run.Jobs, f.Jobs)
	setBool(&result.Run.Backup, f.Backup)
}

func setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}

// WriteDefault writes a commented starter config to path. It refuses
// to overwrite an existing file.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists: %s", path)
	}

	if err := os.WriteFile(path, []byte(defaultConfigTemplate), configFilePermissions); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

const defaultConfigTemplate = `# gomdstruct configuration
# See: https://github.com/yaklabco/gomdstruct

# Structure detection.
detect_folders: true
detect_lists: true
detect_labels: true
first_line_title: true
header_level: 3
collapse_blank_lines: true
preserve_code_blocks: true
detect_code_language: false

# Language cleanup.
nlp: false
fix_pronouns: true
capitalize_sentences: true
smart_quotes: false
smart_dashes: false
smart_ellipsis: false
ensure_punctuation: false
semantic_breaks: false
wrap_width: 80

# Run behavior.
# extensions: [".md", ".markdown", ".txt"]
# exclude: ["vendor/**", "node_modules/**"]
jobs: 0
backup: true
`
