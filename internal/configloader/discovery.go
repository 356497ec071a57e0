package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// ConfigPaths represents discovered configuration file paths.
type ConfigPaths struct {
	// System is the system-wide config path (e.g., /etc/rsfmt/config.yaml).
	System string

	// User is the user-level config path (e.g., ~/.config/rsfmt/config.yaml).
	User string

	// Project is the project-level config path (e.g., ./.rsfmt.yml).
	Project string

	// Explicit is a config path provided via --config flag.
	Explicit string

	// Rustfmt is a detected rustfmt.toml next to the project.
	Rustfmt string
}

// projectConfigFiles are the config file names we search for, in order of preference.
//
//nolint:gochecknoglobals // Read-only lookup table.
var projectConfigFiles = []string{
	".rsfmt.yml",
	".rsfmt.yaml",
	".rsfmt.toml",
	"rsfmt.yml",
	"rsfmt.yaml",
	"rsfmt.toml",
}

// directoryConfigFiles are the names looked up in the user and system
// config directories.
//
//nolint:gochecknoglobals // Read-only lookup table.
var directoryConfigFiles = []string{"config.yaml", "config.yml", "config.toml"}

// rustfmtConfigFiles are the rustfmt config files we detect for migration.
//
//nolint:gochecknoglobals // Read-only lookup table.
var rustfmtConfigFiles = []string{"rustfmt.toml", ".rustfmt.toml"}

// vcsRootMarkers are directories that indicate a VCS root.
//
//nolint:gochecknoglobals // Read-only lookup table.
var vcsRootMarkers = []string{".git", ".hg", ".svn", ".jj"}

// DiscoverPaths finds the configuration files that apply to workDir:
//   - system: /etc/rsfmt/config.{yaml,yml,toml} (%ProgramData%\rsfmt on Windows)
//   - user: $XDG_CONFIG_HOME/rsfmt/config.{yaml,yml,toml}
//   - project: the nearest .rsfmt.{yml,yaml,toml} at or above workDir
//   - rustfmt: the nearest rustfmt.toml at or above workDir
//
// Missing files are empty strings, not errors.
func DiscoverPaths(ctx context.Context, workDir string) (*ConfigPaths, error) {
	project, err := FindProjectConfig(ctx, workDir)
	if err != nil {
		return nil, err
	}
	rustfmt, err := FindRustfmtConfig(ctx, workDir)
	if err != nil {
		return nil, err
	}

	return &ConfigPaths{
		System:  findConfigInDir(systemConfigDir()),
		User:    findConfigInDir(userConfigDir()),
		Project: project,
		Rustfmt: rustfmt,
	}, nil
}

func systemConfigDir() string {
	if runtime.GOOS != "windows" {
		return "/etc/rsfmt"
	}
	programData := os.Getenv("ProgramData")
	if programData == "" {
		programData = `C:\ProgramData`
	}
	return filepath.Join(programData, "rsfmt")
}

func userConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "rsfmt")
}

// findConfigInDir returns the first of directoryConfigFiles present in dir.
func findConfigInDir(dir string) string {
	if dir == "" {
		return ""
	}
	return firstExisting(dir, directoryConfigFiles)
}

// FindProjectConfig returns the nearest rsfmt config file at or above
// startDir, or "" if there is none.
func FindProjectConfig(ctx context.Context, startDir string) (string, error) {
	return searchUpward(ctx, startDir, projectConfigFiles)
}

// FindRustfmtConfig returns the nearest rustfmt config file at or above
// startDir, or "" if there is none. rustfmt resolves its own config the
// same way.
func FindRustfmtConfig(ctx context.Context, startDir string) (string, error) {
	return searchUpward(ctx, startDir, rustfmtConfigFiles)
}

// searchUpward looks for names in startDir and its parents. The search
// stops after a VCS root, the home directory or the filesystem root.
func searchUpward(ctx context.Context, startDir string, names []string) (string, error) {
	if startDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		startDir = wd
	}

	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}

	// An unknown home directory only disables that boundary.
	home, _ := os.UserHomeDir()

	for {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("context cancelled: %w", err)
		}

		if path := firstExisting(dir, names); path != "" {
			return path, nil
		}

		parent := filepath.Dir(dir)
		if isVCSRoot(dir) || dir == home || parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// firstExisting returns the first of names that is a regular file in dir.
func firstExisting(dir string, names []string) string {
	for _, name := range names {
		path := filepath.Join(dir, name)
		if fileExists(path) {
			return path
		}
	}
	return ""
}

func isVCSRoot(dir string) bool {
	for _, marker := range vcsRootMarkers {
		info, err := os.Stat(filepath.Join(dir, marker))
		if err == nil && info.IsDir() {
			return true
		}
	}
	return false
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
