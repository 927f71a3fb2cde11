// Package nlp provides the natural-language cleanup pass: sentence
// capitalization, pronoun casing, smart typography, and punctuation
// insertion. All fixes are heuristic, line-scoped, and best-effort — a
// failure while cleaning a line keeps the original line and never fails
// the document.
package nlp

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/clipperhouse/uax29/v2/sentences"

	"github.com/yaklabco/gomdstruct/pkg/config"
)

const fenceDelimiter = "```"

var (
	pronounRe    = regexp.MustCompile(`\bi\b`)
	blockquoteRe = regexp.MustCompile(`^>`)
	tableRowRe   = regexp.MustCompile(`^\|`)
	orderedRe    = regexp.MustCompile(`^\d+[.)]\s`)
	bulletRe     = regexp.MustCompile(`^[-*+]\s`)
	headingMarkRe = regexp.MustCompile(`^#{1,6}\s`)
	boldLabelRe   = regexp.MustCompile(`^\*\*[^*]+:\*\*`)
	hrRe          = regexp.MustCompile(`^(-{3,}|\*{3,}|_{3,})$`)
)

// Cleaner applies per-line language cleanup according to its options.
// A Cleaner is stateless across documents and safe for concurrent use.
type Cleaner struct {
	opts config.Options
}

// New creates a cleaner with the given options.
func New(opts config.Options) *Cleaner {
	return &Cleaner{opts: opts.Normalized()}
}

// CleanDocument runs the full segmentation-based cleanup over every
// prose line. Lines inside fenced code blocks and lines that are
// already structural pass through untouched. Each line is an
// independent unit of work, processed sequentially in document order so
// output ordering is deterministic; the only error is context
// cancellation.
func (c *Cleaner) CleanDocument(ctx context.Context, text string) (string, error) {
	lines := strings.Split(text, "\n")
	insideCode := false

	for i, line := range lines {
		select {
		case <-ctx.Done():
			return text, fmt.Errorf("cleanup cancelled: %w", ctx.Err())
		default:
		}

		if c.opts.PreserveCodeBlocks && strings.HasPrefix(strings.TrimSpace(line), fenceDelimiter) {
			insideCode = !insideCode
			continue
		}
		if insideCode || isStructural(line) {
			continue
		}

		lines[i] = c.cleanLine(line)
	}

	return strings.Join(lines, "\n"), nil
}

// CleanDocumentBasic is the non-segmenting path: capitalization,
// pronoun fix, and punctuation applied line-wise. Used by the pipeline
// when the full NLP pass is disabled.
func (c *Cleaner) CleanDocumentBasic(text string) string {
	lines := strings.Split(text, "\n")
	insideCode := false

	for i, line := range lines {
		if c.opts.PreserveCodeBlocks && strings.HasPrefix(strings.TrimSpace(line), fenceDelimiter) {
			insideCode = !insideCode
			continue
		}
		if insideCode || isStructural(line) {
			continue
		}

		lines[i] = c.basicLine(line)
	}

	return strings.Join(lines, "\n")
}

// cleanLine applies the full per-line transform chain. Any panic from
// the language processing is recovered and the original line kept: the
// cleanup stage must never fail the run.
func (c *Cleaner) cleanLine(line string) (out string) {
	defer func() {
		if recover() != nil {
			out = line
		}
	}()

	indent, body := splitIndent(line)
	if strings.TrimSpace(body) == "" {
		return line
	}

	parts := segmentSentences(body)
	for i, sentence := range parts {
		parts[i] = c.cleanSentence(sentence)
	}

	// Rejoining with a single separator normalizes inter-sentence
	// spacing. Long lines optionally break at sentence boundaries.
	sep := " "
	if c.opts.SemanticBreaks && len(parts) > 1 && len(body) > c.opts.WrapWidth {
		sep = "\n"
	}
	body = strings.Join(parts, sep)

	if c.opts.EnsurePunctuation {
		body = ensurePunctuation(body)
	}

	return indent + body
}

// basicLine applies capitalization, pronoun casing, and punctuation
// without sentence segmentation.
func (c *Cleaner) basicLine(line string) string {
	indent, body := splitIndent(line)
	if strings.TrimSpace(body) == "" {
		return line
	}

	if c.opts.CapitalizeSentences {
		body = capitalizeFirst(body)
	}
	if c.opts.FixPronouns {
		body = pronounRe.ReplaceAllString(body, "I")
	}
	if c.opts.EnsurePunctuation {
		body = ensurePunctuation(body)
	}

	return indent + body
}

// cleanSentence applies the per-sentence transforms.
func (c *Cleaner) cleanSentence(sentence string) string {
	if c.opts.CapitalizeSentences {
		sentence = capitalizeFirst(sentence)
	}
	if c.opts.FixPronouns {
		sentence = pronounRe.ReplaceAllString(sentence, "I")
	}
	if c.opts.SmartEllipsis {
		sentence = strings.ReplaceAll(sentence, "...", "…")
	}
	if c.opts.SmartDashes {
		sentence = strings.ReplaceAll(sentence, "--", "—")
	}
	if c.opts.SmartQuotes {
		sentence = smartQuotes(sentence)
	}
	return sentence
}

// segmentSentences splits a line body into trimmed sentences using
// UAX #29 sentence boundaries.
func segmentSentences(body string) []string {
	var parts []string
	tokens := sentences.FromString(body)
	for tokens.Next() {
		s := strings.TrimSpace(tokens.Value())
		if s != "" {
			parts = append(parts, s)
		}
	}
	if len(parts) == 0 {
		return []string{body}
	}
	return parts
}

// isStructural reports whether a line is already in markdown structural
// form and therefore exempt from language cleanup.
func isStructural(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return true
	}
	return headingMarkRe.MatchString(trimmed) ||
		bulletRe.MatchString(trimmed) ||
		orderedRe.MatchString(trimmed) ||
		blockquoteRe.MatchString(trimmed) ||
		tableRowRe.MatchString(trimmed) ||
		boldLabelRe.MatchString(trimmed) ||
		hrRe.MatchString(trimmed)
}

// splitIndent separates leading whitespace from the line body.
func splitIndent(line string) (indent, body string) {
	body = strings.TrimLeft(line, " \t")
	return line[:len(line)-len(body)], body
}

// capitalizeFirst upper-cases the first letter in the text, leaving
// any leading non-letter characters (quotes, brackets) in place.
func capitalizeFirst(text string) string {
	runes := []rune(text)
	for i, r := range runes {
		if unicode.IsLetter(r) {
			if unicode.IsLower(r) {
				runes[i] = unicode.ToUpper(r)
				return string(runes)
			}
			return text
		}
	}
	return text
}
