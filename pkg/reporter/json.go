package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/rsfmt/pkg/runner"
)

// jsonVersion is the version of the JSON output layout.
const jsonVersion = "1.0.0"

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's results.
type JSONFileResult struct {
	Path        string           `json:"path"`
	Language    string           `json:"language,omitempty"`
	Changed     bool             `json:"changed"`
	Written     bool             `json:"written,omitempty"`
	Skipped     string           `json:"skipped,omitempty"`
	Diff        string           `json:"diff,omitempty"`
	Error       *JSONError       `json:"error,omitempty"`
	BlockErrors []JSONBlockError `json:"blockErrors,omitempty"`
}

// JSONError describes why a file failed. Line and Column are set for
// syntax errors.
type JSONError struct {
	Message string `json:"message"`
	Line    int    `json:"line,omitempty"`
	Column  int    `json:"column,omitempty"`
}

// JSONBlockError describes a Markdown code block left unformatted.
type JSONBlockError struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesChecked   int `json:"filesChecked"`
	FilesChanged   int `json:"filesChanged"`
	FilesWritten   int `json:"filesWritten"`
	FilesSkipped   int `json:"filesSkipped"`
	FilesFailed    int `json:"filesFailed"`
	EmbeddedBlocks int `json:"embeddedBlocks"`
	BlocksSkipped  int `json:"blocksSkipped"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output, total := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return total, nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) (*JSONOutput, int) {
	output := &JSONOutput{
		Version: jsonVersion,
		Files:   make([]JSONFileResult, 0),
	}

	if result == nil {
		return output, 0
	}

	output.Files = make([]JSONFileResult, 0, len(result.Files))

	var total int
	for _, file := range result.Files {
		if needsAttention(file) {
			total++
		}

		fileResult := JSONFileResult{
			Path:     relativePath(r.opts.WorkingDir, file.Path),
			Language: string(file.Language),
			Changed:  file.Changed,
			Written:  file.Written,
			Skipped:  file.SkipReason,
		}

		if file.Error != nil {
			line, col := errorPosition(file.Error)
			fileResult.Error = &JSONError{Message: errorMessage(file.Error), Line: line, Column: col}
		}

		if file.Diff != nil && !file.Written {
			shown := *file.Diff
			shown.Path = fileResult.Path
			fileResult.Diff = shown.String()
		}

		for _, blockErr := range file.BlockErrors {
			fileResult.BlockErrors = append(fileResult.BlockErrors, JSONBlockError{
				Line:    blockErr.Line,
				Message: blockErr.Err.Error(),
			})
		}

		output.Files = append(output.Files, fileResult)
	}

	stats := result.Stats
	output.Summary = JSONSummary{
		FilesChecked:   stats.FilesDiscovered,
		FilesChanged:   stats.FilesChanged,
		FilesWritten:   stats.FilesWritten,
		FilesSkipped:   stats.FilesSkipped,
		FilesFailed:    stats.FilesFailed,
		EmbeddedBlocks: stats.EmbeddedBlocks,
		BlocksSkipped:  stats.BlocksSkipped,
	}

	return output, total
}
