package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/rsfmt/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

// plural returns "1 file" or "n files".
func plural(n int, singular, pluralWord string) string {
	if n == 1 {
		return "1 " + singular
	}
	return strconv.Itoa(n) + " " + pluralWord
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "2 of 12 files need formatting, 1 failed (4 code blocks)".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	var parts []string

	switch {
	case stats.FilesWritten > 0:
		parts = append(parts, s.Success.Render(
			fmt.Sprintf("Formatted %s", plural(stats.FilesWritten, wordFile, wordFiles))))
	case stats.FilesChanged > 0:
		parts = append(parts, s.Failure.Render(
			fmt.Sprintf("%d of %s need formatting", stats.FilesChanged, plural(stats.FilesFormatted, wordFile, wordFiles))))
	case stats.FilesFormatted > 0:
		parts = append(parts, s.Success.Render("All files formatted")+
			s.Dim.Render(fmt.Sprintf(" (%s checked)", plural(stats.FilesFormatted, wordFile, wordFiles))))
	default:
		parts = append(parts, s.Dim.Render("No files formatted"))
	}

	if stats.FilesChanged > stats.FilesWritten && stats.FilesWritten > 0 {
		parts = append(parts, s.Failure.Render(
			fmt.Sprintf("%d not written", stats.FilesChanged-stats.FilesWritten)))
	}
	if stats.FilesFailed > 0 {
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d failed", stats.FilesFailed)))
	}
	if stats.FilesSkipped > 0 {
		parts = append(parts, s.Dim.Render(fmt.Sprintf("%d skipped", stats.FilesSkipped)))
	}

	line := strings.Join(parts, ", ")
	if stats.EmbeddedBlocks > 0 {
		blocks := plural(stats.EmbeddedBlocks, "code block", "code blocks")
		if stats.BlocksSkipped > 0 {
			blocks += fmt.Sprintf(", %d left as is", stats.BlocksSkipped)
		}
		line += s.Dim.Render(" (" + blocks + ")")
	}

	return line + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	builder.WriteString("  Files checked:     " +
		s.SummaryValue.Render(strconv.Itoa(stats.FilesDiscovered)) + "\n")

	if stats.FilesChanged > 0 {
		builder.WriteString("  Files changed:     " +
			s.Failure.Render(strconv.Itoa(stats.FilesChanged)) + "\n")
	}

	if stats.FilesWritten > 0 {
		builder.WriteString("  Files written:     " +
			s.Success.Render(strconv.Itoa(stats.FilesWritten)) + "\n")
	}

	if stats.FilesSkipped > 0 {
		builder.WriteString("  Files skipped:     " +
			s.Dim.Render(strconv.Itoa(stats.FilesSkipped)) + "\n")
	}

	if stats.FilesFailed > 0 {
		builder.WriteString("  Files failed:      " +
			s.Error.Render(strconv.Itoa(stats.FilesFailed)) + "\n")
	}

	if stats.EmbeddedBlocks > 0 {
		builder.WriteString("  Code blocks:       " +
			s.SummaryValue.Render(strconv.Itoa(stats.EmbeddedBlocks)) + "\n")
		if stats.BlocksSkipped > 0 {
			builder.WriteString("    Left as is:      " +
				s.Warning.Render(strconv.Itoa(stats.BlocksSkipped)) + "\n")
		}
	}

	builder.WriteString("\n")

	// Overall status
	switch {
	case stats.FilesFailed > 0:
		builder.WriteString(s.Failure.Render("Formatting failed"))
	case stats.FilesChanged > stats.FilesWritten:
		builder.WriteString(s.Warning.Render("Some files need formatting"))
	default:
		builder.WriteString(s.Success.Render("All files formatted"))
	}
	builder.WriteString("\n")

	return builder.String()
}
