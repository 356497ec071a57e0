// Package config defines core configuration types for rsfmt.
// These types are pure data structures with no dependency on a particular loader.
package config

import (
	"github.com/yaklabco/rsfmt/pkg/format"
)

// OutputFormat specifies how formatting results are reported.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatDiff OutputFormat = "diff"
)

// End of line settings accepted in configuration files.
const (
	EndOfLineLF   = format.EndOfLineLF
	EndOfLineCRLF = format.EndOfLineCRLF
	EndOfLineCR   = format.EndOfLineCR
	EndOfLineAuto = format.EndOfLineAuto
)

// Layout defaults for Rust sources.
const (
	DefaultPrintWidth      = 100
	DefaultTabWidth        = 4
	DefaultIgnoreDirective = format.DefaultIgnoreDirective
)

// Config is the root configuration structure for rsfmt.
type Config struct {
	// PrintWidth is the line width the formatter tries to stay within.
	PrintWidth int `yaml:"print_width,omitempty" toml:"print_width,omitempty"`

	// TabWidth is the width of one indentation level.
	TabWidth int `yaml:"tab_width,omitempty" toml:"tab_width,omitempty"`

	// UseTabs indents with tabs. Nil means unset.
	UseTabs *bool `yaml:"use_tabs,omitempty" toml:"use_tabs,omitempty"`

	// EndOfLine is lf, crlf, cr or auto.
	EndOfLine string `yaml:"end_of_line,omitempty" toml:"end_of_line,omitempty"`

	// IgnoreDirective is the comment body that keeps the next node verbatim.
	IgnoreDirective string `yaml:"ignore_directive,omitempty" toml:"ignore_directive,omitempty"`

	// Ignore contains glob patterns for files to skip.
	Ignore []string `yaml:"ignore,omitempty" toml:"ignore,omitempty"`

	// Embedded formats rust code fences inside Markdown files. Nil means unset.
	Embedded *bool `yaml:"embedded,omitempty" toml:"embedded,omitempty"`

	// CLI-level options (not persisted to config files).

	// Write rewrites files in place.
	Write bool `yaml:"-" toml:"-"`

	// Check reports unformatted files without writing them.
	Check bool `yaml:"-" toml:"-"`

	// Format specifies the output format.
	Format OutputFormat `yaml:"-" toml:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `yaml:"-" toml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		PrintWidth:      DefaultPrintWidth,
		TabWidth:        DefaultTabWidth,
		UseTabs:         Bool(false),
		EndOfLine:       EndOfLineLF,
		IgnoreDirective: DefaultIgnoreDirective,
		Ignore:          nil,
		Embedded:        Bool(true),
		Format:          FormatText,
		Jobs:            0, // 0 means use GOMAXPROCS
	}
}

// Bool returns a pointer to b.
func Bool(b bool) *bool {
	return &b
}

// UseTabsEnabled reports whether tab indentation is on.
func (c *Config) UseTabsEnabled() bool {
	return c != nil && c.UseTabs != nil && *c.UseTabs
}

// EmbeddedEnabled reports whether code fences in Markdown are formatted.
// It defaults to true when unset.
func (c *Config) EmbeddedEnabled() bool {
	return c == nil || c.Embedded == nil || *c.Embedded
}

// FormatOptions converts the layout settings into engine options. Zero values
// fall back to the Rust defaults.
func (c *Config) FormatOptions() format.Options {
	opts := format.DefaultOptions()
	opts.PrintWidth = DefaultPrintWidth
	opts.TabWidth = DefaultTabWidth
	if c == nil {
		return opts
	}

	if c.PrintWidth > 0 {
		opts.PrintWidth = c.PrintWidth
	}
	if c.TabWidth > 0 {
		opts.TabWidth = c.TabWidth
	}
	opts.UseTabs = c.UseTabsEnabled()
	if c.EndOfLine != "" {
		opts.EndOfLine = c.EndOfLine
	}
	if c.IgnoreDirective != "" {
		opts.IgnoreDirective = c.IgnoreDirective
	}
	return opts
}

// Clone creates a deep copy of the configuration.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	clone := *c
	if c.UseTabs != nil {
		clone.UseTabs = Bool(*c.UseTabs)
	}
	if c.Embedded != nil {
		clone.Embedded = Bool(*c.Embedded)
	}
	if c.Ignore != nil {
		clone.Ignore = make([]string, len(c.Ignore))
		copy(clone.Ignore, c.Ignore)
	}
	return &clone
}
