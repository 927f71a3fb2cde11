package structure

import (
	"fmt"
	"regexp"
)

// ValidationError reports a malformed rule set at registration time.
// It is the only error Register returns; per-document processing never
// produces it.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// newValidationError builds a ValidationError with a formatted message.
func newValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// Descriptor is the externally supplied description of one rule: a
// pattern, a pure transform, and flags selecting the variant. Plugin
// loaders hand the engine descriptors; the engine never loads plugins
// itself.
type Descriptor struct {
	// Name identifies the rule in listings and logs. Names need not be
	// unique across sets.
	Name string

	// Pattern is the regular expression source. Compiled at registration.
	Pattern string

	// Transform produces the replacement for a match.
	Transform Transform

	// FirstLine restricts the rule to the first non-empty line.
	FirstLine bool

	// MultiLine applies the rule once over the whole document text.
	MultiLine bool

	// ContextCheck gates the rule on list context.
	ContextCheck bool

	// SkipIfConverted declines lines that already look structural.
	SkipIfConverted bool
}

// Set is an ordered collection of rule descriptors, typically one loaded
// plugin. A Set with a nil Rules field is malformed.
type Set struct {
	// Name identifies the set in error messages.
	Name string

	// Rules is the ordered descriptor sequence. nil means the external
	// collaborator handed over a malformed set.
	Rules []Descriptor
}

// compile turns a descriptor into its concrete rule variant.
func (d Descriptor) compile() (Rule, error) {
	if d.Name == "" {
		return nil, newValidationError("rule descriptor has no name")
	}
	if d.Transform == nil {
		return nil, newValidationError("rule %q has no transform", d.Name)
	}
	if d.FirstLine && d.MultiLine {
		return nil, newValidationError("rule %q is both first-line and multi-line", d.Name)
	}

	pattern, err := regexp.Compile(d.Pattern)
	if err != nil {
		return nil, newValidationError("rule %q has an invalid pattern: %v", d.Name, err)
	}

	switch {
	case d.FirstLine:
		return NewFirstLineRule(d.Name, pattern, d.Transform), nil
	case d.MultiLine:
		return NewMultiLineRule(d.Name, pattern, d.Transform), nil
	case d.ContextCheck:
		return NewContextualRule(d.Name, pattern, d.Transform), nil
	case d.SkipIfConverted:
		return NewLineRuleSkipConverted(d.Name, pattern, d.Transform), nil
	default:
		return NewLineRule(d.Name, pattern, d.Transform), nil
	}
}
