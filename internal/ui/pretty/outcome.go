package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/gomdstruct/pkg/format"
	"github.com/yaklabco/gomdstruct/pkg/runner"
)

// FormatOutcome formats a single file outcome as one line.
// Example: "notes/todo.txt  formatted (backup created)".
func (s *Styles) FormatOutcome(outcome runner.FileOutcome) string {
	path := s.FilePath.Render(outcome.Path)

	if outcome.Error != nil {
		return path + "  " + s.Errored.Render("error: "+outcome.Error.Error()) + "\n"
	}
	if outcome.Result == nil {
		return path + "\n"
	}

	return path + "  " + s.renderSummary(outcome.Result) + "\n"
}

func (s *Styles) renderSummary(pr *format.PipelineResult) string {
	summary := pr.Summary()
	switch {
	case pr.Skipped:
		return s.Skipped.Render(summary)
	case pr.Written:
		return s.Written.Render(summary)
	case pr.Changed:
		return s.Changed.Render(summary)
	default:
		return s.Unchanged.Render(summary)
	}
}

// FormatDiff renders a unified diff with per-line coloring.
func (s *Styles) FormatDiff(diff *format.Diff) string {
	if diff == nil {
		return ""
	}

	var builder strings.Builder
	builder.WriteString(s.DiffHeader.Render("--- a/"+diff.Path) + "\n")
	builder.WriteString(s.DiffHeader.Render("+++ b/"+diff.Path) + "\n")

	for _, hunk := range diff.Hunks {
		header := fmt.Sprintf("@@ -%d,%d +%d,%d @@",
			hunk.OriginalStart, hunk.OriginalCount,
			hunk.ModifiedStart, hunk.ModifiedCount)
		builder.WriteString(s.DiffHunk.Render(header) + "\n")
		for _, line := range hunk.Lines {
			switch line.Kind {
			case format.DiffAdd:
				builder.WriteString(s.DiffAdd.Render("+"+line.Content) + "\n")
			case format.DiffRemove:
				builder.WriteString(s.DiffRemove.Render("-"+line.Content) + "\n")
			default:
				builder.WriteString(s.DiffContext.Render(" "+line.Content) + "\n")
			}
		}
	}
	return builder.String()
}
