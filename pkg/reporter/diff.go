package reporter

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/yaklabco/rsfmt/internal/ui/pretty"
	"github.com/yaklabco/rsfmt/pkg/diff"
	"github.com/yaklabco/rsfmt/pkg/runner"
)

// DiffReporter formats results as unified diffs in git style.
type DiffReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewDiffReporter creates a new diff reporter.
func NewDiffReporter(opts Options) *DiffReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &DiffReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *DiffReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		return 0, nil
	}

	var total, filesWithDiffs int
	var totalAdditions, totalDeletions int

	for _, file := range result.Files {
		if needsAttention(file) {
			total++
		}

		path := relativePath(r.opts.WorkingDir, file.Path)
		if file.Error != nil {
			line, col := errorPosition(file.Error)
			fmt.Fprint(r.bw, r.styles.FormatError(r.styles.FormatLocation(path, line, col), errorMessage(file.Error)))
			continue
		}

		if !file.Diff.HasChanges() {
			continue
		}

		filesWithDiffs++
		totalAdditions += file.Diff.Additions
		totalDeletions += file.Diff.Deletions
		r.writeDiff(path, file.Diff)
	}

	// Write summary if there were any diffs.
	if filesWithDiffs > 0 && r.opts.ShowSummary {
		r.writeSummary(filesWithDiffs, totalAdditions, totalDeletions)
	}

	return total, nil
}

// writeDiff outputs a single file's diff with formatting.
func (r *DiffReporter) writeDiff(path string, d *diff.Diff) {
	// Git-style header: "diff --git a/file b/file"
	header := fmt.Sprintf("diff --git a/%s b/%s", path, path)
	fmt.Fprintln(r.bw, r.styles.DiffHeader.Render(header))

	fmt.Fprintln(r.bw, r.styles.DiffRemove.Render("--- a/"+path))
	fmt.Fprintln(r.bw, r.styles.DiffAdd.Render("+++ b/"+path))

	for _, hunk := range d.Hunks {
		fmt.Fprintln(r.bw, r.styles.DiffHunk.Render(hunk.Header()))
		for _, line := range hunk.Lines {
			r.writeDiffLine(line)
		}
	}

	fmt.Fprintln(r.bw) // Blank line between files
}

// writeDiffLine formats a single diff line with color.
func (r *DiffReporter) writeDiffLine(line diff.Line) {
	text := line.Kind.Prefix() + line.Content

	var styled string
	switch line.Kind {
	case diff.LineAdd:
		styled = r.styles.DiffAdd.Render(text)
	case diff.LineRemove:
		styled = r.styles.DiffRemove.Render(text)
	default:
		styled = r.styles.DiffContext.Render(text)
	}

	fmt.Fprintln(r.bw, styled)
}

// writeSummary writes a summary line at the end.
func (r *DiffReporter) writeSummary(files, additions, deletions int) {
	var parts []string

	// Files changed.
	fileWord := "files"
	if files == 1 {
		fileWord = "file"
	}
	parts = append(parts, fmt.Sprintf("%d %s changed", files, fileWord))

	// Additions.
	if additions > 0 {
		insertionWord := "insertions"
		if additions == 1 {
			insertionWord = "insertion"
		}
		parts = append(parts, r.styles.DiffAdd.Render(fmt.Sprintf("%d %s(+)", additions, insertionWord)))
	}

	// Deletions.
	if deletions > 0 {
		deletionWord := "deletions"
		if deletions == 1 {
			deletionWord = "deletion"
		}
		parts = append(parts, r.styles.DiffRemove.Render(fmt.Sprintf("%d %s(-)", deletions, deletionWord)))
	}

	fmt.Fprintln(r.bw, strings.Join(parts, ", "))
}
