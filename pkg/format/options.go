package format

import (
	"github.com/charmbracelet/log"

	"github.com/yaklabco/rsfmt/pkg/doc"
	"github.com/yaklabco/rsfmt/pkg/span"
)

// End of line settings. EndOfLineAuto keeps the first line ending found in
// the source.
const (
	EndOfLineLF   = span.EndOfLineLF
	EndOfLineCRLF = span.EndOfLineCRLF
	EndOfLineCR   = span.EndOfLineCR
	EndOfLineAuto = "auto"
)

// DefaultIgnoreDirective is the comment body that keeps a node verbatim.
const DefaultIgnoreDirective = "rsfmt-ignore"

// NoCursor disables cursor tracking.
const NoCursor = -1

// Options configures Format.
type Options struct {
	PrintWidth int
	TabWidth   int
	UseTabs    bool

	// EndOfLine is one of the EndOfLine constants.
	EndOfLine string

	// IgnoreDirective is the comment body that makes the following node
	// print verbatim.
	IgnoreDirective string

	// CursorOffset is a byte offset into the source, or NoCursor. Only
	// FormatWithCursor uses it.
	CursorOffset int

	// Logger receives debug output. Nil disables logging.
	Logger *log.Logger
}

// DefaultOptions returns the options used when none are given.
func DefaultOptions() Options {
	return Options{
		PrintWidth:      doc.DefaultPrintWidth,
		TabWidth:        doc.DefaultTabWidth,
		EndOfLine:       EndOfLineLF,
		IgnoreDirective: DefaultIgnoreDirective,
		CursorOffset:    NoCursor,
	}
}

func (o Options) withDefaults() Options {
	defaults := DefaultOptions()
	if o.PrintWidth <= 0 {
		o.PrintWidth = defaults.PrintWidth
	}
	if o.TabWidth <= 0 {
		o.TabWidth = defaults.TabWidth
	}
	if o.EndOfLine == "" {
		o.EndOfLine = defaults.EndOfLine
	}
	if o.IgnoreDirective == "" {
		o.IgnoreDirective = defaults.IgnoreDirective
	}
	return o
}

func (o Options) newline(src []byte) string {
	eol := o.EndOfLine
	if eol == EndOfLineAuto {
		eol = span.GuessEndOfLine(src)
	}
	return span.NewlineFor(eol)
}

func (o Options) printOptions(src []byte) doc.PrintOptions {
	return doc.PrintOptions{
		PrintWidth: o.PrintWidth,
		TabWidth:   o.TabWidth,
		UseTabs:    o.UseTabs,
		NewLine:    o.newline(src),
	}
}
