// Package runner discovers source files and formats them concurrently.
package runner

import (
	"strings"

	"github.com/yaklabco/rsfmt/pkg/config"
)

// Options controls a multi-file formatting run.
type Options struct {
	// Paths are the user-specified paths (files or directories) to process.
	// If empty, defaults to the current working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths.
	// If empty, the current process working directory is used.
	WorkingDir string

	// Extensions is the set of file extensions (lowercase, with leading dot)
	// picked up while walking directories. Defaults to DefaultExtensions().
	Extensions []string

	// ExcludeGlobs are glob patterns used to skip files or directories.
	// These merge ignore rules from config and CLI (e.g. --ignore).
	ExcludeGlobs []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// IncludeVendored keeps files enry classifies as vendored or generated.
	IncludeVendored bool

	// Jobs controls the maximum number of concurrent workers.
	// 0 or negative means "auto" (runtime.NumCPU()).
	Jobs int

	// Config is the resolved configuration for this run.
	Config *config.Config
}

// DefaultExtensions returns the extensions formatted by default: Rust
// sources and the Markdown files whose code fences are formatted.
func DefaultExtensions() []string {
	return []string{".rs", ".md", ".markdown"}
}

// effectiveExtensions returns the extensions to use, defaulting if empty.
// Markdown extensions are dropped when embedded formatting is off.
func (o Options) effectiveExtensions() []string {
	exts := o.Extensions
	if len(exts) == 0 {
		exts = DefaultExtensions()
	}
	if o.Config.EmbeddedEnabled() {
		return exts
	}

	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		switch strings.ToLower(ext) {
		case ".md", ".markdown":
		default:
			out = append(out, ext)
		}
	}
	return out
}

// effectivePaths returns the paths to process, defaulting to "." if empty.
func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
