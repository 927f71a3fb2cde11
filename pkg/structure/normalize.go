package structure

import (
	"regexp"
	"strings"

	"github.com/yaklabco/gomdstruct/pkg/config"
)

var blankCollapseRe = regexp.MustCompile(`\n{3,}`)

// Normalizer is the document-wide second pass: multi-line rules, blank
// run collapsing, heading spacing, and final layout trimming. Content
// inside fenced code blocks is left untouched while PreserveCodeBlocks
// is set. The pass is idempotent — normalizing its own output changes
// nothing.
type Normalizer struct {
	opts     config.Options
	registry *Registry
}

// NewNormalizer creates a normalizer over the given registry.
func NewNormalizer(opts config.Options, registry *Registry) *Normalizer {
	return &Normalizer{opts: opts.Normalized(), registry: registry}
}

// segment is a run of lines that is either fenced code interior or
// regular prose. Fence delimiter lines belong to the prose segments.
type segment struct {
	code  bool
	lines []string
}

// Normalize applies, in order: every multi-line rule, blank-run
// collapsing, blank lines around headings, trailing-whitespace
// stripping, and edge trimming with exactly one trailing newline.
func (n *Normalizer) Normalize(text string) string {
	segs := n.split(text)

	multiLine := n.registry.MultiLineRules()
	for i := range segs {
		if segs[i].code {
			continue
		}
		s := strings.Join(segs[i].lines, "\n")
		for _, rule := range multiLine {
			if out, ok := rule.TryApply(s, LineState{}); ok {
				s = out
			}
		}
		s = blankCollapseRe.ReplaceAllString(s, "\n\n")
		segs[i].lines = strings.Split(s, "\n")
	}

	lines := flatten(segs)
	lines = n.spaceHeadings(lines)

	// Trailing whitespace goes everywhere, code lines included: the
	// output contract promises no trailing whitespace on any line.
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}

	return trimDocument(strings.Join(lines, "\n"))
}

// split partitions the document into prose and fenced-code segments.
// With PreserveCodeBlocks disabled the whole document is one prose
// segment.
func (n *Normalizer) split(text string) []segment {
	lines := strings.Split(text, "\n")
	if !n.opts.PreserveCodeBlocks {
		return []segment{{lines: lines}}
	}

	var segs []segment
	current := segment{}
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), fenceDelimiter) {
			if current.code {
				// Closing fence ends the code segment; the delimiter
				// starts the next prose segment.
				segs = append(segs, current)
				current = segment{lines: []string{line}}
			} else {
				// Opening fence stays with the prose segment.
				current.lines = append(current.lines, line)
				segs = append(segs, current)
				current = segment{code: true}
			}
			continue
		}
		current.lines = append(current.lines, line)
	}
	segs = append(segs, current)
	return segs
}

// flatten rejoins segments into a single line slice.
func flatten(segs []segment) []string {
	var lines []string
	for _, seg := range segs {
		lines = append(lines, seg.lines...)
	}
	return lines
}

// spaceHeadings inserts a blank line between a non-heading line and a
// following heading, and between a heading and a following non-blank
// line. Lines inside code fences are neither headings nor neighbors.
func (n *Normalizer) spaceHeadings(lines []string) []string {
	out := make([]string, 0, len(lines))
	insideCode := false

	isHeadingHere := func(i int) bool {
		return i >= 0 && i < len(lines) && IsHeading(lines[i])
	}

	for i, line := range lines {
		if n.opts.PreserveCodeBlocks && strings.HasPrefix(strings.TrimSpace(line), fenceDelimiter) {
			insideCode = !insideCode
			out = append(out, line)
			continue
		}
		if insideCode {
			out = append(out, line)
			continue
		}

		if IsHeading(line) && i > 0 {
			prev := lines[i-1]
			if strings.TrimSpace(prev) != "" && !isHeadingHere(i-1) {
				out = append(out, "")
			}
		}

		out = append(out, line)

		if IsHeading(line) && i+1 < len(lines) {
			next := lines[i+1]
			if strings.TrimSpace(next) != "" && !isHeadingHere(i+1) {
				out = append(out, "")
			}
		}
	}

	return out
}

// trimDocument drops leading and trailing blank lines and guarantees
// exactly one trailing newline for non-empty documents.
func trimDocument(text string) string {
	text = strings.Trim(text, "\n")
	if text == "" {
		return ""
	}
	return text + "\n"
}
