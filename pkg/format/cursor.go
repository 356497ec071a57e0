package format

import (
	"github.com/yaklabco/rsfmt/pkg/doc"
	"github.com/yaklabco/rsfmt/pkg/tree"
)

// findCursorNode returns the smallest node touching offset. A cursor right
// after a node belongs to that node.
func findCursorNode(root tree.Node, offset int) tree.Node {
	found := tree.DeepestContaining(root, offset)
	if offset > 0 {
		before := tree.DeepestContaining(root, offset-1)
		if before != nil && (found == nil || before.Span().Len() < found.Span().Len()) {
			found = before
		}
	}
	if found == nil {
		found = root
	}
	return found
}

// mapCursor translates the requested cursor into the formatted output using
// the placeholders printed around the cursor node.
func (ctx *Context) mapCursor(printed doc.PrintResult) int {
	if printed.CursorOffset < 0 {
		return min(max(ctx.Options.CursorOffset, 0), len(printed.Formatted))
	}

	nodeSpan := ctx.cursorNode.Span()
	oldText := string(nodeSpan.Text(ctx.Source))
	newText := printed.CursorText
	relative := min(max(ctx.Options.CursorOffset-nodeSpan.Start, 0), len(oldText))

	if oldText == newText {
		return printed.CursorOffset + relative
	}

	prefix := commonPrefix(oldText, newText)
	if relative <= prefix {
		return printed.CursorOffset + relative
	}

	suffix := commonSuffix(oldText[prefix:], newText[prefix:])
	if fromEnd := len(oldText) - relative; fromEnd <= suffix {
		return printed.CursorOffset + len(newText) - fromEnd
	}
	return printed.CursorOffset + min(relative, len(newText))
}

func commonPrefix(a, b string) int {
	n := 0
	for n < len(a) && n < len(b) && a[n] == b[n] {
		n++
	}
	return n
}

func commonSuffix(a, b string) int {
	n := 0
	for n < len(a) && n < len(b) && a[len(a)-1-n] == b[len(b)-1-n] {
		n++
	}
	return n
}
