package rustlite

import (
	"bytes"

	"github.com/yaklabco/rsfmt/pkg/comments"
	"github.com/yaklabco/rsfmt/pkg/span"
	"github.com/yaklabco/rsfmt/pkg/tree"
)

// HandleOwnLine implements comments.Handler.
func (Printer) HandleOwnLine(c *comments.Comment, ctx *comments.HandlerContext) bool {
	return handleElseComment(c, ctx) || handleChainLinkComment(c, ctx)
}

// HandleEndOfLine implements comments.Handler.
func (Printer) HandleEndOfLine(c *comments.Comment, ctx *comments.HandlerContext) bool {
	return handleElseComment(c, ctx) ||
		handleBlockOpeningComment(c, ctx) ||
		handleSeparatorComment(c, ctx)
}

// HandleRemaining implements comments.Handler.
func (Printer) HandleRemaining(c *comments.Comment, ctx *comments.HandlerContext) bool {
	return handleElseComment(c, ctx)
}

// IsMethodMember implements format.MethodClassifier: a method call or field
// access is a member of a chain when another chain link sits directly
// below it (through its receiver) or above it.
func (Printer) IsMethodMember(n, parent tree.Node, field string) bool {
	recv := linkReceiver(n)
	if recv == nil {
		return false
	}
	if try, ok := recv.(*TryExpr); ok {
		recv = try.X
	}
	if linkReceiver(recv) != nil {
		return true
	}
	switch parent.(type) {
	case *MethodCallExpr, *FieldExpr:
		return field == "receiver"
	case *TryExpr:
		return field == "expr"
	default:
		return false
	}
}

// linkReceiver returns the receiver of a method call or field access, or
// nil for any other node.
func linkReceiver(n tree.Node) Expr {
	switch n := n.(type) {
	case *MethodCallExpr:
		return n.Receiver
	case *FieldExpr:
		return n.Receiver
	default:
		return nil
	}
}

// memberName returns the method or field name of a chain link.
func memberName(n tree.Node) tree.Node {
	switch n := n.(type) {
	case *MethodCallExpr:
		return n.Method
	case *FieldExpr:
		return n.Field
	default:
		return nil
	}
}

// handleElseComment keeps comments between `}` and `else` with the if
// expression; they print on their own lines before `else`.
func handleElseComment(c *comments.Comment, ctx *comments.HandlerContext) bool {
	ifExpr, ok := c.Enclosing.(*IfExpr)
	if !ok || ifExpr.Else == nil {
		return false
	}
	if c.Span.Start < ifExpr.Then.Loc.End || c.Span.End > ifExpr.Else.Span().Start {
		return false
	}
	ctx.Table.AddDangling(ifExpr, c, comments.MarkerNone)
	return true
}

// handleChainLinkComment keeps an own-line comment between a receiver and
// `.name` with the link. It prints on its own line before the dot.
func handleChainLinkComment(c *comments.Comment, ctx *comments.HandlerContext) bool {
	name := memberName(c.Enclosing)
	if name == nil || c.Following != name || c.Preceding != linkReceiver(c.Enclosing) {
		return false
	}
	ctx.Table.AddDangling(c.Enclosing, c, comments.MarkerNone)
	return true
}

// handleBlockOpeningComment keeps `{ // note` on the line of the brace.
func handleBlockOpeningComment(c *comments.Comment, ctx *comments.HandlerContext) bool {
	block, ok := c.Enclosing.(*Block)
	if !ok || c.Preceding != nil || len(block.Stmts) == 0 {
		return false
	}
	if span.SkipSpaces(ctx.Source, block.Loc.Start+1, false) != c.Span.Start {
		return false
	}
	ctx.Table.AddDangling(block, c, comments.MarkerBody)
	return true
}

// handleSeparatorComment attaches `a, // note` to a rather than to the
// element after it.
func handleSeparatorComment(c *comments.Comment, ctx *comments.HandlerContext) bool {
	if c.Preceding == nil {
		return false
	}
	end := c.Preceding.Span().End
	if span.SkipToLineEnd(ctx.Source, end, false) != c.Span.Start {
		return false
	}
	if !bytes.ContainsAny(ctx.Source[end:c.Span.Start], ",;") {
		return false
	}
	ctx.Table.AddTrailing(c.Preceding, c)
	return true
}
