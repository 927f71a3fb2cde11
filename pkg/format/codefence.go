package format

import (
	"strings"

	"github.com/yaklabco/gomdstruct/pkg/langdetect"
)

const fenceDelimiter = "```"

// tagCodeFences adds a language identifier to opening fence delimiters
// that have none, inferred from the fenced content. Blocks whose
// content cannot be classified stay untagged.
func tagCodeFences(text string) string {
	lines := strings.Split(text, "\n")

	insideCode := false
	openIdx := -1
	var body []string

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, fenceDelimiter) {
			if insideCode {
				body = append(body, line)
			}
			continue
		}

		if !insideCode {
			insideCode = true
			openIdx = i
			body = body[:0]
			continue
		}

		// Closing fence: tag the opener if it was bare.
		insideCode = false
		opener := strings.TrimSpace(lines[openIdx])
		if opener == fenceDelimiter && len(body) > 0 {
			lang := langdetect.Detect([]byte(strings.Join(body, "\n")))
			if lang != langdetect.Unknown {
				lines[openIdx] = lines[openIdx] + lang
			}
		}
	}

	return strings.Join(lines, "\n")
}
