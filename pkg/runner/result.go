package runner

import (
	"github.com/yaklabco/rsfmt/pkg/diff"
	"github.com/yaklabco/rsfmt/pkg/embed"
	"github.com/yaklabco/rsfmt/pkg/langdetect"
)

// Skip reasons reported in FileOutcome.SkipReason.
const (
	SkipGenerated = "generated"
	SkipModified  = "modified during formatting"
)

// FileOutcome is the result of formatting one file.
type FileOutcome struct {
	// Path is the file path that was processed.
	Path string

	// Language is the front-end chosen for the file.
	Language langdetect.Language

	// Original is the content that was read.
	Original []byte

	// Formatted is the formatted content. It equals Original when the file
	// was already formatted, skipped or failed.
	Formatted []byte

	// Changed reports whether formatting changed the content.
	Changed bool

	// Written reports whether the formatted content was written back.
	Written bool

	// Skipped is set when the file was left alone; SkipReason says why.
	Skipped    bool
	SkipReason string

	// Diff is the change from Original to Formatted, nil when unchanged.
	Diff *diff.Diff

	// EmbeddedBlocks is the number of Rust code fences found in a Markdown
	// file; BlockErrors lists the ones that could not be formatted.
	EmbeddedBlocks int
	BlockErrors    []*embed.BlockError

	// Error is set if the file could not be processed.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesFormatted is the number of files formatted without error.
	FilesFormatted int

	// FilesChanged is the number of files whose formatting differs from
	// their content.
	FilesChanged int

	// FilesWritten is the number of files rewritten on disk.
	FilesWritten int

	// FilesSkipped is the number of generated or concurrently modified files.
	FilesSkipped int

	// FilesFailed is the number of files that encountered errors.
	FilesFailed int

	// EmbeddedBlocks is the number of Rust code fences found in Markdown.
	EmbeddedBlocks int

	// BlocksSkipped is the number of code fences left unformatted.
	BlocksSkipped int
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each processed file, ordered by path.
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// NewResult builds a Result from outcomes produced outside Run, such as a
// single FormatSource call.
func NewResult(outcomes ...FileOutcome) *Result {
	result := &Result{Files: make([]FileOutcome, 0, len(outcomes))}
	result.Stats.FilesDiscovered = len(outcomes)
	for _, outcome := range outcomes {
		result.accumulate(outcome)
	}
	return result
}

// HasFailures reports whether any file failed to format.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesFailed > 0
}

// HasChanges reports whether any file was not formatted.
func (r *Result) HasChanges() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesChanged > 0
}

// Changed returns the outcomes of the files formatting changed.
func (r *Result) Changed() []FileOutcome {
	if r == nil {
		return nil
	}
	var out []FileOutcome
	for _, outcome := range r.Files {
		if outcome.Changed {
			out = append(out, outcome)
		}
	}
	return out
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	r.Stats.EmbeddedBlocks += outcome.EmbeddedBlocks
	r.Stats.BlocksSkipped += len(outcome.BlockErrors)

	switch {
	case outcome.Error != nil:
		r.Stats.FilesFailed++
		return
	case outcome.Skipped:
		r.Stats.FilesSkipped++
		return
	}

	r.Stats.FilesFormatted++
	if outcome.Changed {
		r.Stats.FilesChanged++
	}
	if outcome.Written {
		r.Stats.FilesWritten++
	}
}
