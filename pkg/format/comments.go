package format

import (
	"strings"

	"github.com/yaklabco/rsfmt/pkg/astpath"
	"github.com/yaklabco/rsfmt/pkg/comments"
	"github.com/yaklabco/rsfmt/pkg/doc"
	"github.com/yaklabco/rsfmt/pkg/span"
	"github.com/yaklabco/rsfmt/pkg/tree"
)

// PrintComment renders c and marks it printed.
func (ctx *Context) PrintComment(c *comments.Comment) doc.Doc {
	c.Printed = true
	if cp, ok := ctx.printer.(CommentPrinter); ok {
		return cp.PrintComment(c)
	}
	if c.IsBlock() {
		return doc.ReplaceEndOfLine(c.Text, nil)
	}
	return doc.Text(strings.TrimRight(c.Text, " \t\r"))
}

// PrintDanglingComments prints the dangling comments of the current node
// carrying marker (all of them for MarkerNone), one per line. Unless
// sameIndent is set the block starts on a new, indented line.
func (ctx *Context) PrintDanglingComments(p *astpath.Path, marker comments.Marker, sameIndent bool) doc.Doc {
	var parts []doc.Doc
	for _, c := range ctx.Comments.Dangling(p.Node(), marker) {
		parts = append(parts, ctx.PrintComment(c))
	}
	if len(parts) == 0 {
		return nil
	}

	joined := doc.Join(doc.HardLine, parts)
	if sameIndent {
		return joined
	}
	return doc.Indent(doc.Concat(doc.HardLine, joined))
}

// HasDanglingComments reports whether the current node has dangling
// comments carrying marker (any marker for MarkerNone).
func (ctx *Context) HasDanglingComments(p *astpath.Path, marker comments.Marker) bool {
	return len(ctx.Comments.Dangling(p.Node(), marker)) > 0
}

// HasLineComment reports whether a line comment is attached to n.
func (ctx *Context) HasLineComment(n tree.Node) bool {
	return ctx.Comments.HasComments(n, func(c *comments.Comment) bool {
		return !c.IsBlock()
	})
}

func (ctx *Context) printComments(n tree.Node, printed doc.Doc) doc.Doc {
	var leading, trailing []doc.Doc
	var previous *trailingState

	for _, c := range ctx.Comments.Comments(n) {
		if c.Printed {
			continue
		}
		switch {
		case c.Leading:
			leading = append(leading, ctx.printLeadingComment(c))
		case c.Trailing:
			previous = ctx.printTrailingComment(c, previous)
			trailing = append(trailing, previous.doc)
		}
	}

	if len(leading) == 0 && len(trailing) == 0 {
		return printed
	}
	return doc.InheritLabel(printed, func(d doc.Doc) doc.Doc {
		parts := make([]doc.Doc, 0, len(leading)+len(trailing)+1)
		parts = append(parts, leading...)
		parts = append(parts, d)
		parts = append(parts, trailing...)
		return doc.Concat(parts...)
	})
}

func (ctx *Context) printLeadingComment(c *comments.Comment) doc.Doc {
	parts := []doc.Doc{ctx.PrintComment(c)}
	src := ctx.Source

	if c.IsBlock() {
		switch {
		case !span.HasNewline(src, c.Span.End, false):
			parts = append(parts, doc.Text(" "))
		case span.HasNewline(src, c.Span.Start, true):
			parts = append(parts, doc.HardLine)
		default:
			parts = append(parts, doc.Line)
		}
	} else {
		parts = append(parts, doc.HardLine)
	}

	idx := span.SkipNewline(src, span.SkipSpaces(src, c.Span.End, false), false)
	if idx != span.NotFound && span.HasNewline(src, idx, false) {
		parts = append(parts, doc.HardLine)
	}
	return doc.Concat(parts...)
}

type trailingState struct {
	doc           doc.Doc
	isBlock       bool
	hasLineSuffix bool
}

func (ctx *Context) printTrailingComment(c *comments.Comment, previous *trailingState) *trailingState {
	printed := ctx.PrintComment(c)
	isBlock := c.IsBlock()
	src := ctx.Source

	previousSuffix := previous != nil && previous.hasLineSuffix
	if (previousSuffix && !previous.isBlock) || span.HasNewline(src, c.Span.Start, true) {
		var blank doc.Doc = doc.Text("")
		if span.IsPreviousLineEmpty(src, c.Span.Start) {
			blank = doc.HardLine
		}
		return &trailingState{
			doc:           doc.LineSuffix(doc.Concat(doc.HardLine, blank, printed)),
			isBlock:       isBlock,
			hasLineSuffix: true,
		}
	}

	if !isBlock || previousSuffix {
		var breakParent doc.Doc = doc.Text("")
		if !isBlock {
			breakParent = doc.BreakParent
		}
		return &trailingState{
			doc:           doc.Concat(doc.LineSuffix(doc.Concat(doc.Text(" "), printed)), breakParent),
			isBlock:       isBlock,
			hasLineSuffix: true,
		}
	}

	return &trailingState{doc: doc.Concat(doc.Text(" "), printed), isBlock: isBlock}
}

// isIgnored reports whether a leading comment of n carries the ignore
// directive.
func (ctx *Context) isIgnored(n tree.Node) bool {
	for _, c := range ctx.Comments.Leading(n) {
		if c.Body() == ctx.Options.IgnoreDirective {
			return true
		}
	}
	return false
}

// printIgnored returns the source text of n. Comments inside n count as
// printed; its own comments are printed normally.
func (ctx *Context) printIgnored(n tree.Node) doc.Doc {
	nodeSpan := n.Span()
	for _, c := range ctx.Comments.All() {
		switch {
		case nodeSpan.ContainsSpan(c.Span):
			c.Printed = true
		case c.Owner == n:
			c.Unignore = true
		}
	}
	return doc.ReplaceEndOfLine(ctx.Text(n), nil)
}
