package cli

import (
	"errors"

	"github.com/yaklabco/rsfmt/pkg/runner"
)

// Exit codes for rsfmt.
const (
	// ExitSuccess indicates every file is formatted (or was written).
	ExitSuccess = 0

	// ExitUnformatted indicates --check found files that need formatting.
	ExitUnformatted = 1

	// ExitFailure indicates a file failed to format, or the command itself
	// failed (bad flags, unreadable config).
	ExitFailure = 2
)

var (
	// ErrUnformatted signals that --check found unformatted files.
	ErrUnformatted = errors.New("files need formatting")

	// ErrFormatFailed signals that at least one file failed to format.
	ErrFormatFailed = errors.New("files failed to format")
)

// ExitCodeFromResult determines the exit code of a format run.
// Failures take precedence over unformatted files.
func ExitCodeFromResult(result *runner.Result, check bool) int {
	if result == nil {
		return ExitSuccess
	}

	if result.HasFailures() {
		return ExitFailure
	}

	if check && result.HasChanges() {
		return ExitUnformatted
	}

	return ExitSuccess
}

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrFormatFailed):
		return ExitFailure
	case errors.Is(err, ErrUnformatted):
		return ExitUnformatted
	default:
		return ExitFailure
	}
}

// errorForExitCode returns the sentinel matching code, or nil.
func errorForExitCode(code int) error {
	switch code {
	case ExitUnformatted:
		return ErrUnformatted
	case ExitFailure:
		return ErrFormatFailed
	default:
		return nil
	}
}

// IsSignal reports whether err only carries an exit status and should not
// be logged.
func IsSignal(err error) bool {
	return errors.Is(err, ErrUnformatted) || errors.Is(err, ErrFormatFailed)
}
