package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/rsfmt/internal/ui/pretty"
	"github.com/yaklabco/rsfmt/pkg/runner"
)

// File statuses printed by the text reporter.
const (
	statusFormatted   = "formatted"
	statusUnchanged   = "unchanged"
	statusUnformatted = "needs formatting"
)

// TextReporter formats results as styled terminal output.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No files to format."))
		}
		return 0, nil
	}

	var total int
	for _, file := range result.Files {
		if needsAttention(file) {
			total++
		}
		r.reportFile(file)
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return total, nil
}

// reportFile writes the lines for one file.
func (r *TextReporter) reportFile(file runner.FileOutcome) {
	path := relativePath(r.opts.WorkingDir, file.Path)

	if file.Error != nil {
		line, col := errorPosition(file.Error)
		fmt.Fprint(r.bw, r.styles.FormatError(r.styles.FormatLocation(path, line, col), errorMessage(file.Error)))
		return
	}

	for _, blockErr := range file.BlockErrors {
		line, _ := errorPosition(blockErr.Err)
		location := r.styles.FormatLocation(path, blockErr.Line+max(line-1, 0), 0)
		fmt.Fprint(r.bw, r.styles.FormatWarning(location,
			"code block left as is: "+errorMessage(blockErr.Err)))
	}

	switch {
	case file.Skipped:
		if r.opts.Verbose {
			fmt.Fprint(r.bw, r.styles.FormatFileStatus(path, "skipped: "+file.SkipReason))
		}
	case file.Written:
		fmt.Fprint(r.bw, r.styles.FormatFileStatus(path, statusFormatted))
	case file.Changed:
		fmt.Fprint(r.bw, r.styles.FormatFileStatus(path, statusUnformatted))
	case r.opts.Verbose:
		fmt.Fprint(r.bw, r.styles.FormatFileStatus(path, statusUnchanged))
	}
}
