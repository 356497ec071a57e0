package configloader

import (
	"fmt"
	"strings"

	"github.com/yaklabco/rsfmt/pkg/config"
	"github.com/yaklabco/rsfmt/pkg/runner"
)

// maxTabWidth bounds tab_width; wider indentation is almost certainly a typo.
const maxTabWidth = 16

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the name of the invalid field (e.g., "print_width").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string

	// Line is the line number in the config file (if known).
	Line int
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		if e.Line > 0 {
			parts = append(parts, fmt.Sprintf("%s:%d", e.FilePath, e.Line))
		} else {
			parts = append(parts, e.FilePath)
		}
	}

	if e.Field != "" {
		parts = append(parts, e.Field)
	}

	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues.
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

// knownEndOfLines lists valid end_of_line values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownEndOfLines = map[string]bool{
	config.EndOfLineLF:   true,
	config.EndOfLineCRLF: true,
	config.EndOfLineCR:   true,
	config.EndOfLineAuto: true,
}

// knownFormats lists valid output format values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownFormats = map[config.OutputFormat]bool{
	config.FormatText: true,
	config.FormatJSON: true,
	config.FormatDiff: true,
}

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	if cfg == nil {
		return &ValidationResult{}
	}

	result := &ValidationResult{}

	validateLayout(cfg, result)

	// Validate format
	if cfg.Format != "" && !knownFormats[cfg.Format] {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "format",
			Value:   cfg.Format,
			Message: fmt.Sprintf("invalid format %q; must be one of: text, json, diff", cfg.Format),
		})
	}

	// Validate jobs
	if cfg.Jobs < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "jobs",
			Value:   cfg.Jobs,
			Message: "jobs must be >= 0 (0 means auto)",
		})
	}

	// Validate ignore patterns
	validateIgnorePatterns(cfg, result)

	return result
}

// validateLayout checks the settings handed to the formatter.
func validateLayout(cfg *config.Config, result *ValidationResult) {
	if cfg.PrintWidth < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "print_width",
			Value:   cfg.PrintWidth,
			Message: "print_width must be positive",
		})
	}

	if cfg.TabWidth < 0 || cfg.TabWidth > maxTabWidth {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "tab_width",
			Value:   cfg.TabWidth,
			Message: fmt.Sprintf("tab_width must be between 1 and %d", maxTabWidth),
		})
	}

	if cfg.PrintWidth > 0 && cfg.TabWidth > 0 && cfg.TabWidth >= cfg.PrintWidth {
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   "tab_width",
			Value:   cfg.TabWidth,
			Message: fmt.Sprintf("tab_width %d leaves no room within print_width %d", cfg.TabWidth, cfg.PrintWidth),
		})
	}

	if cfg.EndOfLine != "" && !knownEndOfLines[cfg.EndOfLine] {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "end_of_line",
			Value:   cfg.EndOfLine,
			Message: fmt.Sprintf("invalid end_of_line %q; must be one of: lf, crlf, cr, auto", cfg.EndOfLine),
		})
	}

	if strings.ContainsAny(cfg.IgnoreDirective, "\r\n") {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "ignore_directive",
			Value:   cfg.IgnoreDirective,
			Message: "ignore_directive must be a single line",
		})
	}
}

// validateIgnorePatterns checks that ignore patterns are valid globs.
func validateIgnorePatterns(cfg *config.Config, result *ValidationResult) {
	for i, pattern := range cfg.Ignore {
		if _, err := runner.CompileGlob(pattern); err != nil {
			result.Errors = append(result.Errors, ValidationError{
				Field:   fmt.Sprintf("ignore[%d]", i),
				Value:   pattern,
				Message: fmt.Sprintf("invalid glob pattern: %v", err),
			})
		}
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	// Add file path to all errors and warnings
	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}

// IsValidEndOfLine returns true if the end_of_line value is valid.
func IsValidEndOfLine(eol string) bool {
	return knownEndOfLines[eol]
}

// IsValidFormat returns true if the format is valid.
func IsValidFormat(f config.OutputFormat) bool {
	return knownFormats[f]
}
