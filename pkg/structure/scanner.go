package structure

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/yaklabco/gomdstruct/pkg/config"
)

// fenceDelimiter marks the start or end of a fenced code block.
const fenceDelimiter = "```"

var (
	indentedItemRe = regexp.MustCompile(`^( {2,})(\S.*)$`)
	labelRe        = regexp.MustCompile(`^([A-Z][A-Za-z0-9 ]*):\s*(.*)$`)
)

// Scanner walks a document line by line, applying structural rules
// (folder headings, first-line title, indented lists, labels) ahead of
// the generic registry pass. Lines inside fenced code blocks pass
// through verbatim; fence delimiter lines always pass through and
// toggle the code state.
//
// A Scanner holds no per-document state and is safe for concurrent use;
// each Scan call builds its own scan context.
type Scanner struct {
	opts     config.Options
	registry *Registry
}

// NewScanner creates a scanner over the given registry.
func NewScanner(opts config.Options, registry *Registry) *Scanner {
	return &Scanner{opts: opts.Normalized(), registry: registry}
}

// scanContext is the per-document transient state: code-block toggle,
// first-line slot, blank-collapse flag, and the two previously emitted
// lines used for list-context classification. Discarded after the pass.
type scanContext struct {
	insideCode bool
	firstOpen  bool
	prevBlank  bool
	prev       string
	prevPrev   string
	out        []string
}

// emit appends a line and rolls the context window forward.
func (sc *scanContext) emit(line string) {
	sc.out = append(sc.out, line)
	sc.prevPrev = sc.prev
	sc.prev = line
	sc.prevBlank = strings.TrimSpace(line) == ""
}

// Scan produces the structured document. Each non-code line has had at
// most one single-line rule applied; multi-line rules are left for the
// normalizer.
func (s *Scanner) Scan(text string) string {
	lines := strings.Split(text, "\n")
	sc := &scanContext{firstOpen: true}

	lineRules := s.registry.LineRules()
	firstLineRule := s.registry.FirstLine()

	for _, raw := range lines {
		trimmed := strings.TrimSpace(raw)

		// Fence delimiters pass through unmodified and toggle code state.
		if s.opts.PreserveCodeBlocks && strings.HasPrefix(trimmed, fenceDelimiter) {
			sc.emit(raw)
			sc.insideCode = !sc.insideCode
			continue
		}
		if sc.insideCode {
			sc.emit(raw)
			continue
		}

		if trimmed == "" {
			if s.opts.CollapseBlankLines && sc.prevBlank {
				continue
			}
			sc.emit("")
			continue
		}

		firstWasOpen := sc.firstOpen
		sc.firstOpen = false

		// Folder paths become headings and consume the first-line slot.
		if s.opts.DetectFolders && isFolderPath(trimmed) {
			sc.emit(s.folderHeading(trimmed))
			sc.emit("")
			continue
		}

		if firstWasOpen && firstLineRule != nil && !strings.HasPrefix(trimmed, "#") {
			if out, ok := firstLineRule.TryApply(trimmed, LineState{FirstLine: true}); ok {
				sc.emit(out)
				sc.emit("")
				continue
			}
		}

		if s.opts.DetectLists {
			if out, ok := convertIndentedItem(raw); ok {
				sc.emit(out)
				continue
			}
		}

		if s.opts.DetectLabels {
			if out, ok := convertLabel(trimmed); ok {
				sc.emit(out)
				continue
			}
		}

		// Generic registry pass: first match wins, registration order is
		// the tie-break.
		line := raw
		st := LineState{ListContext: listContext(sc.prev, sc.prevPrev)}
		for _, rule := range lineRules {
			if out, ok := rule.TryApply(line, st); ok {
				line = out
				break
			}
		}
		sc.emit(line)
	}

	return strings.Join(sc.out, "\n")
}

// isFolderPath reports whether a trimmed line looks like a bare folder
// path: no internal spaces, ends in a slash. URL-shaped lines are not
// folders.
func isFolderPath(trimmed string) bool {
	if len(trimmed) < 2 || !strings.HasSuffix(trimmed, "/") {
		return false
	}
	if strings.ContainsAny(trimmed, " \t") {
		return false
	}
	return !strings.Contains(trimmed, "://")
}

// folderHeading renders a folder path as a heading at the configured
// level, title-casing the name on dash and underscore boundaries.
func (s *Scanner) folderHeading(trimmed string) string {
	name := strings.TrimSuffix(trimmed, "/")
	return strings.Repeat("#", s.opts.HeaderLevel) + " " + titleCase(name)
}

// titleCase splits on dashes and underscores and capitalizes the first
// letter of each segment: "my-project" becomes "My Project".
func titleCase(name string) string {
	segments := strings.FieldsFunc(name, func(r rune) bool {
		return r == '-' || r == '_'
	})
	for i, seg := range segments {
		runes := []rune(seg)
		runes[0] = unicode.ToUpper(runes[0])
		segments[i] = string(runes)
	}
	return strings.Join(segments, " ")
}

// convertIndentedItem turns a line with two or more leading spaces into
// a nested list item. The nesting level is leading-spaces / 2, with the
// top indent level collapsing to depth zero.
func convertIndentedItem(raw string) (string, bool) {
	if IsListItem(raw) {
		return "", false
	}
	m := indentedItemRe.FindStringSubmatch(raw)
	if m == nil {
		return "", false
	}
	level := len(m[1]) / 2
	indent := (level - 1) * 2
	return strings.Repeat(" ", indent) + "- " + m[2], true
}

// convertLabel turns "Key: rest" into "**Key:** rest" when the key is a
// capitalized word sequence and the line is not already bolded.
func convertLabel(trimmed string) (string, bool) {
	if strings.HasPrefix(trimmed, "**") {
		return "", false
	}
	m := labelRe.FindStringSubmatch(trimmed)
	if m == nil {
		return "", false
	}
	return strings.TrimRight("**"+strings.TrimSpace(m[1])+":** "+m[2], " "), true
}

// listContext classifies whether the current line continues a list,
// based on the previously emitted lines: a preceding line ending in a
// colon, a bolded label, or an existing list item all open list context.
// The list-item clause also covers the label-colon-then-items case two
// lines back.
func listContext(prev, _ string) bool {
	p := strings.TrimSpace(prev)
	if p == "" {
		return false
	}
	if strings.HasSuffix(p, ":") {
		return true
	}
	return IsBoldLabel(p) || IsListItem(prev)
}
