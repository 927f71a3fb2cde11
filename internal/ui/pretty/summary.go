package pretty

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/yaklabco/gomdstruct/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "4 files changed (2 written), 1 skipped, 1 error".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	if stats.FilesChanged == 0 && stats.FilesErrored == 0 {
		fileWord := wordFiles
		if stats.FilesProcessed == 1 {
			fileWord = wordFile
		}
		msg := s.Success.Render("No changes") +
			s.Dim.Render(fmt.Sprintf(" (%d %s checked)", stats.FilesProcessed, fileWord))
		return msg + "\n"
	}

	var parts []string

	if stats.FilesChanged > 0 {
		fileWord := wordFiles
		if stats.FilesChanged == 1 {
			fileWord = wordFile
		}
		changed := fmt.Sprintf("%d %s changed", stats.FilesChanged, fileWord)
		if stats.FilesWritten > 0 {
			changed += s.Success.Render(fmt.Sprintf(" (%d written)", stats.FilesWritten))
		}
		parts = append(parts, changed)
	}

	if stats.FilesSkipped > 0 {
		parts = append(parts, s.Skipped.Render(fmt.Sprintf("%d skipped", stats.FilesSkipped)))
	}

	if stats.FilesErrored > 0 {
		errorWord := "errors"
		if stats.FilesErrored == 1 {
			errorWord = "error"
		}
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d %s", stats.FilesErrored, errorWord)))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", dividerWidth()))
	builder.WriteString("\n")

	builder.WriteString("  Files checked:   " +
		s.SummaryValue.Render(strconv.Itoa(stats.FilesProcessed)) + "\n")

	if stats.FilesChanged > 0 {
		builder.WriteString("  Files changed:   " +
			s.Changed.Render(strconv.Itoa(stats.FilesChanged)) + "\n")
	}
	if stats.FilesWritten > 0 {
		builder.WriteString("  Files written:   " +
			s.Success.Render(strconv.Itoa(stats.FilesWritten)) + "\n")
	}
	if stats.BackupsCreated > 0 {
		builder.WriteString("  Backups created: " +
			s.SummaryValue.Render(strconv.Itoa(stats.BackupsCreated)) + "\n")
	}
	if stats.FilesSkipped > 0 {
		builder.WriteString("  Files skipped:   " +
			s.Skipped.Render(strconv.Itoa(stats.FilesSkipped)) + "\n")
	}
	if stats.FilesErrored > 0 {
		builder.WriteString("  Files errored:   " +
			s.Failure.Render(strconv.Itoa(stats.FilesErrored)) + "\n")
	}

	builder.WriteString("\n")

	switch {
	case stats.FilesErrored > 0:
		builder.WriteString(s.Failure.Render("Completed with errors"))
	case stats.FilesSkipped > 0:
		builder.WriteString(s.Skipped.Render("Completed with skipped files"))
	default:
		builder.WriteString(s.Success.Render("Done"))
	}
	builder.WriteString("\n")

	return builder.String()
}

// dividerWidth returns the summary divider width, shrunk to fit when
// stdout is a terminal narrower than the default.
func dividerWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 && w < summaryDividerWidth {
		return w
	}
	return summaryDividerWidth
}
