// Package config defines core configuration types for gomdstruct.
// These types are pure data structures with no dependency on the config
// loader or CLI; every pipeline run consumes one immutable Options value.
package config

// Default heading depth for the folder rule. "my-project/" becomes
// "### My Project" unless HeaderLevel says otherwise.
const DefaultHeaderLevel = 3

// DefaultWrapWidth is the line length threshold for semantic line breaks.
const DefaultWrapWidth = 80

// Options controls every behavior of the structuring pipeline.
//
// An Options value is fixed at engine construction and never mutated
// mid-run. Callers wanting a variant (for example the NLP-enabled
// pipeline) build a copy rather than flipping flags on a shared value.
type Options struct {
	// DetectFolders converts bare folder-path lines ("my-project/") into
	// headings at HeaderLevel depth.
	DetectFolders bool `yaml:"detect_folders"`

	// DetectLists converts indented plain lines into nested list items.
	DetectLists bool `yaml:"detect_lists"`

	// DetectLabels converts "Key: value" lines into "**Key:** value".
	DetectLabels bool `yaml:"detect_labels"`

	// FirstLineTitle wraps the first non-empty line as an H1 heading when
	// no other structural rule claims it.
	FirstLineTitle bool `yaml:"first_line_title"`

	// HeaderLevel is the heading depth used by the folder rule (1-6).
	HeaderLevel int `yaml:"header_level"`

	// CollapseBlankLines collapses runs of blank lines during the
	// structure pass.
	CollapseBlankLines bool `yaml:"collapse_blank_lines"`

	// PreserveCodeBlocks exempts fenced code regions from all line rules
	// and cleanup. Disabling it means code contents are rewritten too.
	PreserveCodeBlocks bool `yaml:"preserve_code_blocks"`

	// NLP enables the full segmentation-based cleanup pass. When false,
	// the basic line-wise cleanup applies the individual flags below
	// without sentence segmentation.
	NLP bool `yaml:"nlp"`

	// FixPronouns rewrites the standalone lowercase word "i" as "I".
	FixPronouns bool `yaml:"fix_pronouns"`

	// CapitalizeSentences capitalizes the first letter of each sentence.
	CapitalizeSentences bool `yaml:"capitalize_sentences"`

	// SmartQuotes converts straight quotes to curly quotes.
	SmartQuotes bool `yaml:"smart_quotes"`

	// SmartDashes converts "--" to an em-dash.
	SmartDashes bool `yaml:"smart_dashes"`

	// SmartEllipsis converts "..." to the ellipsis character.
	SmartEllipsis bool `yaml:"smart_ellipsis"`

	// EnsurePunctuation appends a period to prose lines missing terminal
	// punctuation.
	EnsurePunctuation bool `yaml:"ensure_punctuation"`

	// SemanticBreaks splits lines longer than WrapWidth at sentence
	// boundaries. Only effective together with NLP.
	SemanticBreaks bool `yaml:"semantic_breaks"`

	// WrapWidth is the threshold for SemanticBreaks.
	WrapWidth int `yaml:"wrap_width"`

	// DetectCodeLanguage tags bare code fences with a language identifier
	// inferred from the block content.
	DetectCodeLanguage bool `yaml:"detect_code_language"`
}

// Default returns the Options every pipeline starts from: structural
// detection on, conservative prose cleanup (pronoun fix and sentence
// capitalization), typography and NLP off.
func Default() Options {
	return Options{
		DetectFolders:       true,
		DetectLists:         true,
		DetectLabels:        true,
		FirstLineTitle:      true,
		HeaderLevel:         DefaultHeaderLevel,
		CollapseBlankLines:  true,
		PreserveCodeBlocks:  true,
		NLP:                 false,
		FixPronouns:         true,
		CapitalizeSentences: true,
		SmartQuotes:         false,
		SmartDashes:         false,
		SmartEllipsis:       false,
		EnsurePunctuation:   false,
		SemanticBreaks:      false,
		WrapWidth:           DefaultWrapWidth,
		DetectCodeLanguage:  false,
	}
}

// WithNLP returns a copy of o with the full NLP pass enabled.
func (o Options) WithNLP() Options {
	o.NLP = true
	return o
}

// Normalized returns a copy of o with out-of-range values clamped to
// usable defaults.
func (o Options) Normalized() Options {
	if o.HeaderLevel < 1 || o.HeaderLevel > 6 {
		o.HeaderLevel = DefaultHeaderLevel
	}
	if o.WrapWidth < 0 {
		o.WrapWidth = DefaultWrapWidth
	}
	return o
}
