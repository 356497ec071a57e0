package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"

	"github.com/yaklabco/rsfmt/pkg/langdetect"
)

// Discover finds the files matching opts under the given working directory.
// It returns a deterministically sorted list of absolute file paths. Files
// named explicitly are kept even when their extension is not in
// opts.Extensions, as long as a front-end recognizes them.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	// Resolve working directory.
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	excludes, err := compileGlobs(opts.ExcludeGlobs)
	if err != nil {
		return nil, err
	}

	walker := &walker{
		workDir:    workDir,
		extensions: opts.effectiveExtensions(),
		excludes:   excludes,
		opts:       opts,
	}
	paths := opts.effectivePaths()

	// Use a map for deduplication.
	seen := make(map[string]struct{})
	var files []string

	for _, inputPath := range paths {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("discovery cancelled: %w", ctx.Err())
		default:
		}

		// Resolve to absolute path.
		absPath := inputPath
		if !filepath.IsAbs(inputPath) {
			absPath = filepath.Join(workDir, inputPath)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", inputPath, err)
		}

		if info.IsDir() {
			// Walk directory.
			discovered, err := walker.walk(ctx, absPath)
			if err != nil {
				return nil, err
			}
			for _, f := range discovered {
				if _, ok := seen[f]; !ok {
					seen[f] = struct{}{}
					files = append(files, f)
				}
			}
		} else if walker.matchesNamedFile(absPath) {
			// Single file: check if it matches criteria.
			if _, ok := seen[absPath]; !ok {
				seen[absPath] = struct{}{}
				files = append(files, absPath)
			}
		}
	}

	// Sort for deterministic ordering.
	sort.Strings(files)

	return files, nil
}

// resolveWorkDir resolves the working directory, defaulting to os.Getwd().
func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

// walker holds the settings shared by one discovery.
type walker struct {
	workDir    string
	extensions []string
	excludes   globSet
	opts       Options
}

// walk recursively walks a directory and returns the matching files.
func (w *walker) walk(ctx context.Context, root string) ([]string, error) {
	var files []string
	base := w.baseFor(root)

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		// Check for context cancellation.
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if walkErr != nil {
			// Handle permission errors gracefully.
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		// Get relative path for pattern matching.
		relPath := relative(base, path)

		// Handle directories.
		if entry.IsDir() {
			if path == root {
				return nil
			}

			// Skip hidden directories.
			if strings.HasPrefix(entry.Name(), ".") {
				return filepath.SkipDir
			}

			// Check if directory should be excluded.
			if w.excludes.matchDir(relPath) {
				return filepath.SkipDir
			}

			// Skip vendored trees such as vendor/ or node_modules/.
			if !w.opts.IncludeVendored && langdetect.IsVendored(filepath.ToSlash(relPath)+"/") {
				return filepath.SkipDir
			}

			return nil
		}

		// Handle symlinks.
		if entry.Type()&fs.ModeSymlink != 0 {
			// Resolve symlink to check if it points to a file or directory.
			realPath, evalErr := filepath.EvalSymlinks(path)
			if evalErr != nil {
				// Broken symlink, skip silently.
				return nil //nolint:nilerr // Intentionally skip broken symlinks
			}
			info, statErr := os.Stat(realPath)
			if statErr != nil {
				// Cannot stat target, skip silently.
				return nil //nolint:nilerr // Intentionally skip inaccessible symlink targets
			}
			if info.IsDir() {
				// Directory symlink: skip unless FollowSymlinks is set.
				if !w.opts.FollowSymlinks {
					return nil
				}
				// Walk the symlink TARGET (realPath), not the symlink itself.
				// This avoids infinite recursion since WalkDir uses Lstat on root.
				subFiles, err := w.walk(ctx, realPath)
				if err != nil {
					return err
				}
				files = append(files, subFiles...)
				return nil
			}
			// File symlink: continue to check as regular file.
		}

		// Skip hidden files.
		if strings.HasPrefix(entry.Name(), ".") {
			return nil
		}

		// Check if file matches criteria.
		if w.matchesFile(path, relPath) {
			files = append(files, path)
		}

		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("walk directory %s: %w", root, err)
	}

	return files, nil
}

// baseFor returns the directory patterns are matched against under root:
// the working directory, or root itself when root lies outside it.
func (w *walker) baseFor(root string) string {
	rel, err := filepath.Rel(w.workDir, root)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return root
	}
	return w.workDir
}

// relative returns path relative to base for pattern matching.
func relative(base, path string) string {
	relPath, err := filepath.Rel(base, path)
	if err != nil {
		return path
	}
	return relPath
}

// matchesFile checks if a walked file matches the inclusion criteria.
func (w *walker) matchesFile(path, relPath string) bool {
	if !hasMatchingExtension(path, w.extensions) {
		return false
	}
	return !w.excludes.match(relPath)
}

// matchesNamedFile checks a file the user named directly. Its extension
// only needs to map to a supported language.
func (w *walker) matchesNamedFile(path string) bool {
	if w.excludes.match(relative(w.baseFor(filepath.Dir(path)), path)) {
		return false
	}
	switch langdetect.ForPath(path) {
	case langdetect.Rust:
		return true
	case langdetect.Markdown:
		return w.opts.Config.EmbeddedEnabled()
	default:
		return false
	}
}

// hasMatchingExtension checks if the file has a matching extension.
func hasMatchingExtension(path string, extensions []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range extensions {
		if strings.ToLower(e) == ext {
			return true
		}
	}
	return false
}

// globSet is a compiled list of ignore patterns. Patterns use '/' as the
// separator: "*" stays within one path segment and "**" crosses segments.
type globSet []glob.Glob

// compileGlobs compiles patterns, failing on the first invalid one.
func compileGlobs(patterns []string) (globSet, error) {
	set := make(globSet, 0, len(patterns))
	for _, pattern := range patterns {
		compiled, err := CompileGlob(pattern)
		if err != nil {
			return nil, err
		}
		set = append(set, compiled)
	}
	return set, nil
}

// CompileGlob compiles a single ignore pattern.
func CompileGlob(pattern string) (glob.Glob, error) {
	compiled, err := glob.Compile(filepath.ToSlash(pattern), '/')
	if err != nil {
		return nil, fmt.Errorf("invalid glob %q: %w", pattern, err)
	}
	return compiled, nil
}

// match reports whether relPath, or its file name, matches any pattern.
func (s globSet) match(relPath string) bool {
	path := filepath.ToSlash(relPath)
	base := filepath.Base(relPath)
	for _, g := range s {
		if g.Match(path) || g.Match(base) {
			return true
		}
	}
	return false
}

// matchDir is match for directories; "dir/**" also matches dir itself.
func (s globSet) matchDir(relPath string) bool {
	if s.match(relPath) {
		return true
	}
	path := filepath.ToSlash(relPath) + "/"
	for _, g := range s {
		if g.Match(path) {
			return true
		}
	}
	return false
}
