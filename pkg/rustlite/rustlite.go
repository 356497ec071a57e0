// Package rustlite is a formatter front-end for a subset of Rust: functions,
// structs, impl blocks, use declarations, let statements and the common
// expression forms. It parses source into its own syntax tree and supplies
// the print rules and comment handlers that pkg/format drives.
package rustlite

import (
	"github.com/yaklabco/rsfmt/pkg/comments"
	"github.com/yaklabco/rsfmt/pkg/doc"
	"github.com/yaklabco/rsfmt/pkg/format"
)

// Layout defaults, matching rustfmt.
const (
	DefaultPrintWidth = 100
	DefaultTabWidth   = 4
)

// DefaultOptions returns format options with the rustlite defaults.
func DefaultOptions() format.Options {
	opts := format.DefaultOptions()
	opts.PrintWidth = DefaultPrintWidth
	opts.TabWidth = DefaultTabWidth
	return opts
}

// Format parses src and returns it formatted.
func Format(src []byte, opts format.Options) (string, error) {
	file, list, err := Parse(src)
	if err != nil {
		return "", err
	}
	return format.Format(file, src, list, Printer{}, opts)
}

// FormatWithCursor is Format that also maps opts.CursorOffset.
func FormatWithCursor(src []byte, opts format.Options) (format.Result, error) {
	file, list, err := Parse(src)
	if err != nil {
		return format.Result{}, err
	}
	return format.FormatWithCursor(file, src, list, Printer{}, opts)
}

// BuildDoc returns the document for src before layout.
func BuildDoc(src []byte, opts format.Options) (doc.Doc, error) {
	file, list, err := Parse(src)
	if err != nil {
		return nil, err
	}
	return format.BuildDoc(file, src, list, Printer{}, opts)
}

// AttachComments parses src and returns its comment attachment.
func AttachComments(src []byte) (*comments.Table, error) {
	file, list, err := Parse(src)
	if err != nil {
		return nil, err
	}
	return format.AttachComments(file, src, list, Printer{})
}
