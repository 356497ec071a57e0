package configloader

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/BurntSushi/toml"

	"github.com/yaklabco/rsfmt/pkg/config"
)

// MigrationResult contains the result of converting a rustfmt config.
type MigrationResult struct {
	// Config is the converted rsfmt configuration.
	Config *config.Config

	// Warnings contains non-fatal issues encountered during conversion.
	Warnings []string

	// SourcePath is the path to the original rustfmt config.
	SourcePath string
}

// ConvertRustfmtConfig converts the layout options of a rustfmt.toml file.
// Options without an rsfmt equivalent are reported as warnings.
func ConvertRustfmtConfig(path string) (*MigrationResult, error) {
	result := &MigrationResult{
		SourcePath: path,
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var raw map[string]any
	if _, err := toml.Decode(string(content), &raw); err != nil {
		return nil, fmt.Errorf("parse TOML: %w", err)
	}

	cfg := &config.Config{}

	keys := make([]string, 0, len(raw))
	for key := range raw {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	for _, key := range keys {
		processRustfmtKey(cfg, key, raw[key], result)
	}

	result.Config = cfg
	return result, nil
}

// processRustfmtKey applies a single rustfmt option to cfg.
func processRustfmtKey(cfg *config.Config, key string, value any, result *MigrationResult) {
	if rustfmtIgnored[key] {
		return
	}

	target := NormalizeRustfmtKey(key)
	if target == "" {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("rustfmt option %q has no rsfmt equivalent; skipping", key))
		return
	}

	ok := true
	switch target {
	case "print_width":
		cfg.PrintWidth, ok = intValue(value)
	case "tab_width":
		cfg.TabWidth, ok = intValue(value)
	case "use_tabs":
		var tabs bool
		tabs, ok = value.(bool)
		if ok {
			cfg.UseTabs = config.Bool(tabs)
		}
	case "end_of_line":
		var style string
		if style, ok = value.(string); ok {
			cfg.EndOfLine, ok = newlineStyle(style)
		}
	case "ignore":
		cfg.Ignore, ok = stringSlice(value)
	}

	if !ok {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("unsupported value %v for rustfmt option %q; skipping", value, key))
	}
}

// intValue converts a decoded TOML integer.
func intValue(value any) (int, bool) {
	n, ok := value.(int64)
	return int(n), ok
}

// stringSlice converts a decoded TOML array of strings.
func stringSlice(value any) ([]string, bool) {
	items, ok := value.([]any)
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}

// GenerateMigrationHeader returns a header comment for migrated configs.
func GenerateMigrationHeader(sourcePath string) string {
	return fmt.Sprintf(`# rsfmt configuration
# Migrated from: %s
# See: https://github.com/yaklabco/rsfmt
`, filepath.Base(sourcePath))
}
