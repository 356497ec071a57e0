// Package configloader provides configuration loading and resolution.
// It implements XDG-compliant configuration discovery, hierarchical merging,
// environment variable support, validation, and rustfmt migration.
package configloader

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/term"

	"github.com/yaklabco/rsfmt/pkg/config"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0644

// MigratedConfigName is the file written when a rustfmt config is converted.
const MigratedConfigName = ".rsfmt.yml"

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// WorkingDir is the directory to search from for project config.
	// Defaults to current working directory if empty.
	WorkingDir string

	// ExplicitPath is an explicit config file path (from --config flag).
	ExplicitPath string

	// IgnoreSystemConfig skips loading system-level configuration.
	IgnoreSystemConfig bool

	// IgnoreUserConfig skips loading user-level configuration.
	IgnoreUserConfig bool

	// IgnoreProjectConfig skips loading project-level configuration.
	IgnoreProjectConfig bool

	// IgnoreEnv skips loading environment variables.
	IgnoreEnv bool

	// IgnoreRustfmt skips rustfmt.toml detection and migration.
	IgnoreRustfmt bool

	// NonInteractive disables interactive prompts (e.g., in CI).
	NonInteractive bool

	// CLIConfig contains configuration from CLI flags.
	// These take highest precedence.
	CLIConfig *config.Config
}

// LoadResult contains the resolved configuration and metadata.
type LoadResult struct {
	// Config is the final merged configuration.
	Config *config.Config

	// Paths contains the discovered configuration file paths.
	Paths *ConfigPaths

	// LoadedFrom lists the files that were actually loaded (in order).
	LoadedFrom []string

	// Warnings contains non-fatal issues encountered during loading.
	Warnings []string

	// MigrationPerformed is true if a rustfmt config was converted to a file.
	MigrationPerformed bool
}

// Load resolves the final configuration by merging all sources.
// Precedence (highest to lowest):
//  1. CLI flags (opts.CLIConfig)
//  2. Environment variables (RSFMT_*)
//  3. Explicit config file (opts.ExplicitPath)
//  4. Project config (.rsfmt.yml upward search), or rustfmt.toml when absent
//  5. User config ($XDG_CONFIG_HOME/rsfmt/config.yaml)
//  6. System config (/etc/rsfmt/config.yaml)
//  7. Defaults
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	result := &LoadResult{
		Paths: &ConfigPaths{},
	}

	// Resolve working directory
	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	// Start with defaults
	cfg := config.NewConfig()

	// Discover config paths
	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	if opts.IgnoreRustfmt {
		paths.Rustfmt = ""
	}
	paths.Explicit = opts.ExplicitPath
	result.Paths = paths

	// Load and merge in order (lowest to highest precedence)

	// 1. System config
	if !opts.IgnoreSystemConfig && paths.System != "" {
		systemCfg, err := loadConfigFile(paths.System)
		if err != nil {
			return nil, fmt.Errorf("load system config: %w", err)
		}
		cfg = merge(cfg, systemCfg)
		result.LoadedFrom = append(result.LoadedFrom, paths.System)
	}

	// 2. User config
	if !opts.IgnoreUserConfig && paths.User != "" {
		userCfg, err := loadConfigFile(paths.User)
		if err != nil {
			return nil, fmt.Errorf("load user config: %w", err)
		}
		cfg = merge(cfg, userCfg)
		result.LoadedFrom = append(result.LoadedFrom, paths.User)
	}

	// 3. Project config, falling back to rustfmt.toml
	if !opts.IgnoreProjectConfig {
		projectCfg, source, err := loadProjectLayer(paths, result, opts)
		if err != nil {
			return nil, err
		}
		if projectCfg != nil {
			cfg = merge(cfg, projectCfg)
			result.LoadedFrom = append(result.LoadedFrom, source)
		}
	}

	// 4. Explicit config (--config flag)
	if opts.ExplicitPath != "" {
		explicitCfg, err := loadConfigFile(opts.ExplicitPath)
		if err != nil {
			return nil, fmt.Errorf("load explicit config: %w", err)
		}
		cfg = merge(cfg, explicitCfg)
		result.LoadedFrom = append(result.LoadedFrom, opts.ExplicitPath)
	}

	// 5. Environment variables
	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}

	// 6. CLI config (highest precedence)
	if opts.CLIConfig != nil {
		cfg = merge(cfg, opts.CLIConfig)
	}

	// Validate final configuration
	validation := Validate(cfg)
	if !validation.Valid() {
		// Return first error
		return nil, &validation.Errors[0]
	}

	// Add validation warnings to result
	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Error())
	}

	result.Config = cfg
	return result, nil
}

// loadConfigFile loads a configuration from a YAML or TOML file.
func loadConfigFile(path string) (*config.Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	cfg, err := config.FromBytes(path, content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// loadProjectLayer returns the project-level configuration and the file it
// came from. A rustfmt.toml is used only when no rsfmt config exists; an
// accepted migration writes .rsfmt.yml next to it.
func loadProjectLayer(
	paths *ConfigPaths,
	result *LoadResult,
	opts LoadOptions,
) (*config.Config, string, error) {
	if paths.Project != "" {
		if paths.Rustfmt != "" && filepath.Dir(paths.Rustfmt) == filepath.Dir(paths.Project) {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("both %s and %s exist; using %s",
					filepath.Base(paths.Project), filepath.Base(paths.Rustfmt), filepath.Base(paths.Project)))
		}
		projectCfg, err := loadConfigFile(paths.Project)
		if err != nil {
			return nil, "", fmt.Errorf("load project config: %w", err)
		}
		return projectCfg, paths.Project, nil
	}

	if paths.Rustfmt == "" {
		return nil, "", nil
	}

	migration, err := ConvertRustfmtConfig(paths.Rustfmt)
	if err != nil {
		return nil, "", fmt.Errorf("convert rustfmt config: %w", err)
	}
	result.Warnings = append(result.Warnings, migration.Warnings...)

	if opts.NonInteractive || !isInteractive() {
		return migration.Config, paths.Rustfmt, nil
	}

	shouldMigrate, err := promptMigration(paths.Rustfmt)
	if err != nil {
		return nil, "", err
	}
	if !shouldMigrate {
		return migration.Config, paths.Rustfmt, nil
	}

	outputPath := filepath.Join(filepath.Dir(paths.Rustfmt), MigratedConfigName)
	if err := WriteConfig(migration.Config, outputPath, GenerateMigrationHeader(paths.Rustfmt)); err != nil {
		return nil, "", fmt.Errorf("write migrated config: %w", err)
	}

	paths.Project = outputPath
	result.MigrationPerformed = true
	result.Warnings = append(result.Warnings,
		fmt.Sprintf("migrated %s to %s", paths.Rustfmt, outputPath))

	return migration.Config, outputPath, nil
}

// promptMigration asks the user if they want to migrate.
func promptMigration(rustfmtPath string) (bool, error) {
	// Write prompt to stdout
	if _, err := os.Stdout.WriteString("Found " + rustfmtPath + " but no " + MigratedConfigName + "\n"); err != nil {
		return false, fmt.Errorf("write prompt: %w", err)
	}
	if _, err := os.Stdout.WriteString("Convert to rsfmt format? [Y/n] "); err != nil {
		return false, fmt.Errorf("write prompt: %w", err)
	}

	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false, fmt.Errorf("read response: %w", err)
	}

	response = strings.TrimSpace(strings.ToLower(response))
	return response == "" || response == "y" || response == "yes", nil
}

// isInteractive returns true if stdin is a terminal.
func isInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// WriteConfig writes a configuration file, choosing TOML or YAML from the
// path's extension.
func WriteConfig(cfg *config.Config, path, header string) error {
	var (
		content []byte
		err     error
	)
	if config.IsTOMLPath(path) {
		content, err = cfg.ToTOMLWithHeader(header)
	} else {
		content, err = cfg.ToYAMLWithHeader(header)
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, content, configFilePermissions); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	return nil
}
