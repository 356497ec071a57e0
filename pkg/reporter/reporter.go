// Package reporter writes the outcome of a formatting run as text, JSON or
// unified diffs.
package reporter

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yaklabco/rsfmt/pkg/runner"
	"github.com/yaklabco/rsfmt/pkg/rustlite"
)

// Reporter formats and writes run results.
type Reporter interface {
	// Report writes formatted output for the given result.
	// It returns the number of files that need attention (unformatted or
	// failed) and any write error.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	// Default writer to stdout if not specified
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}

	// Validate and handle format
	format := opts.Format
	if format == "" {
		format = FormatText
	}

	switch format {
	case FormatJSON:
		return NewJSONReporter(opts), nil
	case FormatDiff:
		return NewDiffReporter(opts), nil
	case FormatText:
		return NewTextReporter(opts), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// needsAttention reports whether an outcome counts toward Report's total.
func needsAttention(file runner.FileOutcome) bool {
	return file.Error != nil || (file.Changed && !file.Written && !file.Skipped)
}

// errorPosition returns the line and column of a syntax error, or zeros.
func errorPosition(err error) (int, int) {
	var syntaxErr *rustlite.SyntaxError
	if errors.As(err, &syntaxErr) {
		return syntaxErr.Line, syntaxErr.Column
	}
	return 0, 0
}

// errorMessage returns err's text without the position errorPosition
// already reports.
func errorMessage(err error) string {
	var syntaxErr *rustlite.SyntaxError
	if errors.As(err, &syntaxErr) {
		return syntaxErr.Message
	}
	return err.Error()
}

// relativePath converts an absolute path to one relative to workDir (or the
// current directory). If the relative path would require too many "../"
// traversals, the basename is used instead.
func relativePath(workDir, path string) string {
	if !filepath.IsAbs(path) {
		return filepath.ToSlash(path)
	}
	if workDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return filepath.Base(path)
		}
		workDir = cwd
	}
	rel, err := filepath.Rel(workDir, path)
	if err != nil {
		return filepath.Base(path)
	}
	// If relative path has too many parent traversals, just use basename.
	if strings.Count(rel, "..") > 2 {
		return filepath.Base(path)
	}
	return filepath.ToSlash(rel)
}
