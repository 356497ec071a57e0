// Package logging wraps charmbracelet/log with a process-wide default
// logger, context helpers and the field names used across rsfmt.
package logging

// Field names for structured log entries.
const (
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"

	// Run settings.
	FieldWrite      = "write"
	FieldCheck      = "check"
	FieldJobs       = "jobs"
	FieldPrintWidth = "print_width"
	FieldLanguage   = "language"

	// Run statistics.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesFormatted  = "files_formatted"
	FieldFilesChanged    = "files_changed"
	FieldFilesFailed     = "files_failed"
	FieldEmbeddedBlocks  = "embedded_blocks"
	FieldDuration        = "duration"

	// Version information.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
