// Package doc implements the document IR used by the formatter together with
// the layout algorithm that renders it to text within a line width.
//
// A Doc describes output without committing to line breaks. Print rules build
// Docs with the constructors in builders.go, and PrintDocToString decides
// where groups break. The algorithm follows Wadler's "prettier printer" with
// the extensions popularised by Prettier: fills, conditional groups,
// line suffixes and group-id references.
package doc

import (
	"errors"
	"fmt"
)

// ErrInvalidDoc is returned when a document contains a value that is not one
// of the Doc variants, or breaks a structural rule of the IR.
var ErrInvalidDoc = errors.New("invalid doc")

// Doc is a node of the document IR. The set of implementations is closed;
// nil is the empty document.
type Doc interface {
	isDoc()
}

// Text is literal output. It must not contain line breaks unless they are
// meant to be emitted verbatim.
type Text string

// ConcatDoc prints its parts one after another.
type ConcatDoc struct {
	Parts []Doc
}

// IndentDoc increases the indentation of line breaks in Contents by one level.
type IndentDoc struct {
	Contents Doc
}

// AlignKind selects how an AlignDoc changes the indentation.
type AlignKind int

const (
	// AlignSpaces adds N columns of alignment.
	AlignSpaces AlignKind = iota
	// AlignText adds the literal string S as alignment.
	AlignText
	// AlignDedent removes the innermost indentation level.
	AlignDedent
	// AlignDedentToRoot resets indentation to the nearest root marker.
	AlignDedentToRoot
	// AlignMarkAsRoot records the current indentation as the root.
	AlignMarkAsRoot
)

// AlignDoc changes the indentation of Contents according to Kind.
type AlignDoc struct {
	Kind     AlignKind
	N        int
	S        string
	Contents Doc
}

// GroupDoc is the unit of break decisions. Its contents print flat when they
// fit in the remaining width, otherwise in break mode.
type GroupDoc struct {
	ID       GroupID
	Contents Doc
	// Break forces break mode. Set by the builder or by PropagateBreaks.
	Break bool
	// ExpandedStates holds the alternatives of a conditional group, from
	// most flat to most expanded. Contents is ExpandedStates[0].
	ExpandedStates []Doc
}

// FillDoc alternates content and separator parts and breaks only the
// separators whose following content does not fit.
type FillDoc struct {
	Parts []Doc
}

// IfBreakDoc prints BreakContents when the enclosing group (or the group
// named by GroupID) breaks and FlatContents otherwise.
type IfBreakDoc struct {
	BreakContents Doc
	FlatContents  Doc
	GroupID       GroupID
}

// IndentIfBreakDoc indents Contents when the group named by GroupID breaks.
// Negate inverts the condition.
type IndentIfBreakDoc struct {
	Contents Doc
	GroupID  GroupID
	Negate   bool
}

// LineSuffixDoc defers Contents until just before the next line break.
type LineSuffixDoc struct {
	Contents Doc
}

// LineSuffixBoundaryDoc forces pending line suffixes out with a hard break.
type LineSuffixBoundaryDoc struct{}

// LineDoc is a possible line break. A plain line prints a space when flat,
// a soft line prints nothing. Hard lines always break; literal lines break
// without indentation.
type LineDoc struct {
	Hard    bool
	Soft    bool
	Literal bool
}

// BreakParentDoc forces every enclosing group to break.
type BreakParentDoc struct{}

// TrimDoc removes trailing whitespace on the current output line.
type TrimDoc struct{}

// CursorDoc marks a cursor position to be reported by the printer.
type CursorDoc struct{}

// LabelDoc attaches a name to Contents for print rules to inspect. It has no
// effect on layout.
type LabelDoc struct {
	Label    string
	Contents Doc
}

func (Text) isDoc()                  {}
func (*ConcatDoc) isDoc()            {}
func (*IndentDoc) isDoc()            {}
func (*AlignDoc) isDoc()             {}
func (*GroupDoc) isDoc()             {}
func (*FillDoc) isDoc()              {}
func (*IfBreakDoc) isDoc()           {}
func (*IndentIfBreakDoc) isDoc()     {}
func (*LineSuffixDoc) isDoc()        {}
func (LineSuffixBoundaryDoc) isDoc() {}
func (LineDoc) isDoc()               {}
func (BreakParentDoc) isDoc()        {}
func (TrimDoc) isDoc()               {}
func (CursorDoc) isDoc()             {}
func (*LabelDoc) isDoc()             {}

// GroupID identifies a group so that IfBreak and IndentIfBreak can refer to
// its break decision. The zero value means "no id".
type GroupID struct {
	sym *groupSymbol
}

type groupSymbol struct {
	name string
}

// NewGroupID returns a fresh identity. The name is used for debugging only;
// two ids with the same name are distinct.
func NewGroupID(name string) GroupID {
	return GroupID{sym: &groupSymbol{name: name}}
}

// IsZero reports whether id is unset.
func (id GroupID) IsZero() bool {
	return id.sym == nil
}

// Name returns the debug name of id.
func (id GroupID) Name() string {
	if id.sym == nil {
		return ""
	}
	return id.sym.name
}

func (id GroupID) String() string {
	if id.sym == nil {
		return "GroupID(<none>)"
	}
	return fmt.Sprintf("GroupID(%s)", id.sym.name)
}
