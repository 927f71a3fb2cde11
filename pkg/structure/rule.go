// Package structure provides the rule engine for gomdstruct: the rule
// model and registry, the code-block-aware line scanner, the structure
// detector, and the multi-line normalizer.
package structure

import (
	"regexp"
	"strings"
)

// Kind tags the dispatch behavior of a rule.
type Kind int

const (
	// KindLine rules apply per line during the generic pass.
	KindLine Kind = iota

	// KindFirstLine rules apply only to the first non-empty line of a
	// document.
	KindFirstLine

	// KindContextual rules apply per line, but only when the scanner has
	// classified the line as a list continuation.
	KindContextual

	// KindMultiLine rules apply once over the joined document text,
	// replacing every occurrence of their pattern.
	KindMultiLine
)

// String returns the kind name used in rule listings.
func (k Kind) String() string {
	switch k {
	case KindLine:
		return "line"
	case KindFirstLine:
		return "first-line"
	case KindContextual:
		return "contextual"
	case KindMultiLine:
		return "multi-line"
	default:
		return "unknown"
	}
}

// MatchResult carries a pattern match into a Transform: the full matched
// text plus any capture groups, in order.
type MatchResult struct {
	// Text is the full match.
	Text string

	// Groups holds the capture groups. Groups[0] is the first group.
	Groups []string
}

// Group returns the i-th capture group, or "" when out of range.
func (m MatchResult) Group(i int) string {
	if i < 0 || i >= len(m.Groups) {
		return ""
	}
	return m.Groups[i]
}

// Transform produces the replacement text for a rule match. Transforms
// must be pure: same MatchResult in, same string out, no hidden state.
type Transform func(m MatchResult) string

// LineState is the scanner context a rule sees when it is tried against
// a line. Multi-line rules receive the zero value.
type LineState struct {
	// FirstLine is true while the first-non-empty-line slot is still open.
	FirstLine bool

	// ListContext is true when the preceding emitted lines suggest the
	// current line continues a list.
	ListContext bool
}

// Rule is the single try-apply interface all rule variants implement.
// TryApply reports whether the rule matched; when it did, the returned
// string replaces the input (a line, or for multi-line rules the whole
// document text).
type Rule interface {
	Name() string
	Kind() Kind
	TryApply(input string, st LineState) (string, bool)
}

// Line-shape classifiers shared by rules, the scanner, and cleanup.
var (
	listMarkerRe = regexp.MustCompile(`^\s*(?:[-*+]|\d+[.)])\s`)
	boldLabelRe  = regexp.MustCompile(`^\*\*[^*]+:\*\*`)
	headingRe    = regexp.MustCompile(`^#{1,6}\s`)
)

// IsListItem reports whether the line already carries a list marker.
func IsListItem(line string) bool {
	return listMarkerRe.MatchString(line)
}

// IsBoldLabel reports whether the line starts with a bolded "**Key:**"
// label.
func IsBoldLabel(line string) bool {
	return boldLabelRe.MatchString(strings.TrimSpace(line))
}

// IsHeading reports whether the line is an ATX heading.
func IsHeading(line string) bool {
	return headingRe.MatchString(strings.TrimSpace(line))
}

// baseRule holds the pattern/transform pair shared by all variants.
type baseRule struct {
	name      string
	pattern   *regexp.Regexp
	transform Transform
}

func (r *baseRule) Name() string { return r.name }

// match runs the pattern against input and, on success, feeds the
// transform. Submatch slots that did not participate come through as "".
func (r *baseRule) match(input string) (string, bool) {
	m := r.pattern.FindStringSubmatch(input)
	if m == nil {
		return "", false
	}
	return r.transform(MatchResult{Text: m[0], Groups: m[1:]}), true
}

// LineRule is the plain per-line variant. When skipConverted is set the
// rule declines lines that already look structural (list item, bold
// label, or heading).
type LineRule struct {
	baseRule
	skipConverted bool
}

// NewLineRule builds a per-line rule.
func NewLineRule(name string, pattern *regexp.Regexp, transform Transform) *LineRule {
	return &LineRule{baseRule: baseRule{name: name, pattern: pattern, transform: transform}}
}

// NewLineRuleSkipConverted builds a per-line rule that leaves already
// structural lines alone.
func NewLineRuleSkipConverted(name string, pattern *regexp.Regexp, transform Transform) *LineRule {
	r := NewLineRule(name, pattern, transform)
	r.skipConverted = true
	return r
}

func (r *LineRule) Kind() Kind { return KindLine }

func (r *LineRule) TryApply(input string, _ LineState) (string, bool) {
	if r.skipConverted && isConverted(input) {
		return "", false
	}
	return r.match(input)
}

// FirstLineRule applies only while the first-non-empty-line slot is open.
type FirstLineRule struct {
	baseRule
}

// NewFirstLineRule builds a first-line rule.
func NewFirstLineRule(name string, pattern *regexp.Regexp, transform Transform) *FirstLineRule {
	return &FirstLineRule{baseRule: baseRule{name: name, pattern: pattern, transform: transform}}
}

func (r *FirstLineRule) Kind() Kind { return KindFirstLine }

func (r *FirstLineRule) TryApply(input string, st LineState) (string, bool) {
	if !st.FirstLine {
		return "", false
	}
	return r.match(input)
}

// ContextualRule applies only in list context, and never to blank lines
// or lines that were already converted.
type ContextualRule struct {
	baseRule
}

// NewContextualRule builds a context-gated rule.
func NewContextualRule(name string, pattern *regexp.Regexp, transform Transform) *ContextualRule {
	return &ContextualRule{baseRule: baseRule{name: name, pattern: pattern, transform: transform}}
}

func (r *ContextualRule) Kind() Kind { return KindContextual }

func (r *ContextualRule) TryApply(input string, st LineState) (string, bool) {
	if !st.ListContext {
		return "", false
	}
	if strings.TrimSpace(input) == "" || isConverted(input) {
		return "", false
	}
	return r.match(input)
}

// MultiLineRule applies globally over the joined document text.
type MultiLineRule struct {
	baseRule
}

// NewMultiLineRule builds a document-wide rule.
func NewMultiLineRule(name string, pattern *regexp.Regexp, transform Transform) *MultiLineRule {
	return &MultiLineRule{baseRule: baseRule{name: name, pattern: pattern, transform: transform}}
}

func (r *MultiLineRule) Kind() Kind { return KindMultiLine }

func (r *MultiLineRule) TryApply(input string, _ LineState) (string, bool) {
	if !r.pattern.MatchString(input) {
		return "", false
	}
	out := r.pattern.ReplaceAllStringFunc(input, func(matched string) string {
		m := r.pattern.FindStringSubmatch(matched)
		return r.transform(MatchResult{Text: m[0], Groups: m[1:]})
	})
	return out, true
}

// isConverted reports whether a line is already in a shape the engine
// produces: list item, bold label, or heading.
func isConverted(line string) bool {
	trimmed := strings.TrimSpace(line)
	return IsListItem(line) || strings.HasPrefix(trimmed, "**") || IsHeading(trimmed)
}
