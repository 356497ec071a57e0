package doc

// Shared leaf documents. They are immutable and safe to reuse.
var (
	// Line breaks in break mode and prints a space in flat mode.
	Line Doc = LineDoc{}

	// SoftLine breaks in break mode and prints nothing in flat mode.
	SoftLine Doc = LineDoc{Soft: true}

	// HardLineWithoutBreakParent always breaks but does not force the
	// enclosing group to break.
	HardLineWithoutBreakParent Doc = LineDoc{Hard: true}

	// LiteralLineWithoutBreakParent breaks without indentation and does not
	// force the enclosing group to break.
	LiteralLineWithoutBreakParent Doc = LineDoc{Hard: true, Literal: true}

	// HardLine always breaks and forces every enclosing group to break.
	HardLine Doc = &ConcatDoc{Parts: []Doc{HardLineWithoutBreakParent, BreakParentDoc{}}}

	// LiteralLine breaks without indentation and forces enclosing groups to
	// break.
	LiteralLine Doc = &ConcatDoc{Parts: []Doc{LiteralLineWithoutBreakParent, BreakParentDoc{}}}

	// BreakParent forces every enclosing group to break.
	BreakParent Doc = BreakParentDoc{}

	// LineSuffixBoundary flushes pending line suffixes with a hard break.
	LineSuffixBoundary Doc = LineSuffixBoundaryDoc{}

	// Trim removes trailing whitespace from the current line.
	Trim Doc = TrimDoc{}

	// Cursor marks the cursor position.
	Cursor Doc = CursorDoc{}
)

// Concat prints parts in sequence.
func Concat(parts ...Doc) Doc {
	return &ConcatDoc{Parts: parts}
}

// Join prints parts separated by sep.
func Join(sep Doc, parts []Doc) Doc {
	joined := make([]Doc, 0, max(2*len(parts)-1, 0))
	for i, part := range parts {
		if i > 0 {
			joined = append(joined, sep)
		}
		joined = append(joined, part)
	}
	return &ConcatDoc{Parts: joined}
}

// GroupOption configures a group built by Group or ConditionalGroup.
type GroupOption func(*GroupDoc)

// WithBreak forces the group to break when shouldBreak is true.
func WithBreak(shouldBreak bool) GroupOption {
	return func(g *GroupDoc) {
		g.Break = shouldBreak
	}
}

// WithID names the group so IfBreak and IndentIfBreak can refer to it.
func WithID(id GroupID) GroupOption {
	return func(g *GroupDoc) {
		g.ID = id
	}
}

// Group makes contents a unit of break decisions.
func Group(contents Doc, opts ...GroupOption) Doc {
	g := &GroupDoc{Contents: contents}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// ConditionalGroup tries each state in order and prints the first that fits
// flat, falling back to the last state in break mode.
func ConditionalGroup(states []Doc, opts ...GroupOption) Doc {
	g := &GroupDoc{ExpandedStates: states}
	if len(states) > 0 {
		g.Contents = states[0]
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Fill packs content parts onto lines greedily. Parts alternate between
// content and separator, starting with content.
func Fill(parts []Doc) Doc {
	return &FillDoc{Parts: parts}
}

// Indent increases the indentation of contents by one level.
func Indent(contents Doc) Doc {
	return &IndentDoc{Contents: contents}
}

// Align adds n columns of alignment to contents. A negative n dedents.
func Align(n int, contents Doc) Doc {
	if n < 0 {
		return Dedent(contents)
	}
	return &AlignDoc{Kind: AlignSpaces, N: n, Contents: contents}
}

// AlignString aligns contents with the literal prefix s.
func AlignString(s string, contents Doc) Doc {
	return &AlignDoc{Kind: AlignText, S: s, Contents: contents}
}

// Dedent removes the innermost indentation level from contents.
func Dedent(contents Doc) Doc {
	return &AlignDoc{Kind: AlignDedent, Contents: contents}
}

// DedentToRoot resets the indentation of contents to the root set by
// MarkAsRoot, or to column zero.
func DedentToRoot(contents Doc) Doc {
	return &AlignDoc{Kind: AlignDedentToRoot, Contents: contents}
}

// MarkAsRoot makes the current indentation the root for literal lines and
// DedentToRoot inside contents.
func MarkAsRoot(contents Doc) Doc {
	return &AlignDoc{Kind: AlignMarkAsRoot, Contents: contents}
}

// AddAlignmentToDoc indents contents by size columns, using whole indentation
// levels where possible, and resets literal lines to the new root.
func AddAlignmentToDoc(contents Doc, size, tabWidth int) Doc {
	if size <= 0 {
		return contents
	}
	aligned := contents
	if tabWidth > 0 {
		for range size / tabWidth {
			aligned = Indent(aligned)
		}
		aligned = Align(size%tabWidth, aligned)
	} else {
		aligned = Align(size, aligned)
	}
	return DedentToRoot(aligned)
}

// IfBreakOption configures IfBreak.
type IfBreakOption func(*IfBreakDoc)

// ForGroup makes IfBreak follow the decision of the group with the given id
// instead of the enclosing group.
func ForGroup(id GroupID) IfBreakOption {
	return func(d *IfBreakDoc) {
		d.GroupID = id
	}
}

// IfBreak prints breakContents in break mode and flatContents in flat mode.
func IfBreak(breakContents, flatContents Doc, opts ...IfBreakOption) Doc {
	d := &IfBreakDoc{BreakContents: breakContents, FlatContents: flatContents}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// IndentIfBreak indents contents when the group id breaks, or when it stays
// flat if negate is set.
func IndentIfBreak(contents Doc, id GroupID, negate bool) Doc {
	return &IndentIfBreakDoc{Contents: contents, GroupID: id, Negate: negate}
}

// LineSuffix defers contents until just before the next line break.
func LineSuffix(contents Doc) Doc {
	return &LineSuffixDoc{Contents: contents}
}

// Label tags contents with a name.
func Label(label string, contents Doc) Doc {
	if label == "" {
		return contents
	}
	return &LabelDoc{Label: label, Contents: contents}
}
