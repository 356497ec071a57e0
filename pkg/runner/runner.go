package runner

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/rsfmt/internal/logging"
	"github.com/yaklabco/rsfmt/pkg/diff"
	"github.com/yaklabco/rsfmt/pkg/embed"
	"github.com/yaklabco/rsfmt/pkg/format"
	"github.com/yaklabco/rsfmt/pkg/fsutil"
	"github.com/yaklabco/rsfmt/pkg/langdetect"
	"github.com/yaklabco/rsfmt/pkg/rustlite"
)

// ErrUnsupportedLanguage is returned for files no front-end handles.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// FormatFunc formats one Rust source.
type FormatFunc func(src []byte, opts format.Options) (string, error)

// Runner formats files concurrently.
type Runner struct {
	// Rust formats Rust sources and the code fences of Markdown files.
	Rust FormatFunc
}

// New creates a Runner backed by the rustlite front-end.
func New() *Runner {
	return &Runner{Rust: rustlite.Format}
}

// Run discovers files under opts.Paths and formats them concurrently.
// Outcomes are returned in path order. A file that fails does not stop the
// run; only discovery errors and cancellation are returned as errors.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	logger := logging.FromContext(ctx)
	start := time.Now()

	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{Files: make([]FileOutcome, 0, len(files))}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	// Determine job count.
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	// Don't use more workers than files.
	jobs = min(jobs, len(files))

	logger.Debug("formatting files",
		logging.FieldFiles, len(files),
		logging.FieldJobs, jobs,
		logging.FieldWrite, opts.Config != nil && opts.Config.Write)

	outcomes := make([]FileOutcome, len(files))
	done := make([]bool, len(files))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(jobs)

	for idx, path := range files {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			outcomes[idx] = r.processFile(groupCtx, path, opts)
			done[idx] = true
			return nil
		})
	}

	waitErr := group.Wait()

	for idx, outcome := range outcomes {
		if !done[idx] {
			continue
		}
		if outcome.Error != nil {
			logger.Warn("format failed", logging.FieldPath, outcome.Path, logging.FieldError, outcome.Error)
		}
		result.accumulate(outcome)
	}

	if waitErr != nil || ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", errors.Join(waitErr, ctx.Err()))
	}

	logger.Debug("run complete",
		logging.FieldFilesFormatted, result.Stats.FilesFormatted,
		logging.FieldFilesChanged, result.Stats.FilesChanged,
		logging.FieldFilesFailed, result.Stats.FilesFailed,
		logging.FieldEmbeddedBlocks, result.Stats.EmbeddedBlocks,
		logging.FieldDuration, time.Since(start))

	return result, nil
}

// processFile reads, formats and optionally writes back one file.
func (r *Runner) processFile(ctx context.Context, path string, opts Options) FileOutcome {
	content, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return FileOutcome{Path: path, Error: err}
	}

	outcome := r.FormatSource(ctx, path, content, opts)
	if outcome.Error != nil || outcome.Skipped || !outcome.Changed {
		return outcome
	}
	if opts.Config == nil || !opts.Config.Write || opts.Config.Check {
		return outcome
	}

	err = fsutil.ReplaceFile(ctx, info, outcome.Formatted)
	switch {
	case errors.Is(err, fsutil.ErrModified):
		outcome.Skipped = true
		outcome.SkipReason = SkipModified
	case err != nil:
		outcome.Error = fmt.Errorf("write %s: %w", path, err)
	default:
		outcome.Written = true
		logging.FromContext(ctx).Debug("file written", logging.FieldPath, path)
	}
	return outcome
}

// FormatSource formats src as the content of path without touching the
// file system. The language is chosen from the path.
func (r *Runner) FormatSource(ctx context.Context, path string, src []byte, opts Options) FileOutcome {
	outcome := FileOutcome{
		Path:      path,
		Language:  langdetect.ForPath(path),
		Original:  src,
		Formatted: src,
	}

	if err := ctx.Err(); err != nil {
		outcome.Error = err
		return outcome
	}

	if !opts.IncludeVendored && langdetect.IsGenerated(path, src) {
		outcome.Skipped = true
		outcome.SkipReason = SkipGenerated
		return outcome
	}

	ctx = logging.WithFields(ctx, logging.FieldPath, path)
	formatOpts := opts.Config.FormatOptions()
	formatOpts.Logger = logging.FromContext(ctx)

	switch outcome.Language {
	case langdetect.Rust:
		formatted, err := r.Rust(src, formatOpts)
		if err != nil {
			outcome.Error = err
			return outcome
		}
		outcome.Formatted = []byte(formatted)

	case langdetect.Markdown:
		if !opts.Config.EmbeddedEnabled() {
			return outcome
		}
		embedded, err := embed.Format(ctx, src, func(code []byte) (string, error) {
			return r.Rust(code, formatOpts)
		})
		if err != nil {
			outcome.Error = err
			return outcome
		}
		outcome.Formatted = embedded.Output
		outcome.EmbeddedBlocks = embedded.Blocks
		outcome.BlockErrors = embedded.Skipped

	default:
		outcome.Error = fmt.Errorf("%s: %w", path, ErrUnsupportedLanguage)
		return outcome
	}

	outcome.Diff = diff.Generate(path, outcome.Original, outcome.Formatted)
	outcome.Changed = outcome.Diff != nil
	return outcome
}
