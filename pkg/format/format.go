// Package format drives a formatting run: it attaches comments, walks the
// syntax tree with an astpath.Path calling the language's print rules, lays
// out the resulting Doc and checks that every comment was printed.
package format

import (
	"errors"
	"fmt"

	"github.com/yaklabco/rsfmt/pkg/astpath"
	"github.com/yaklabco/rsfmt/pkg/comments"
	"github.com/yaklabco/rsfmt/pkg/doc"
	"github.com/yaklabco/rsfmt/pkg/invariant"
	"github.com/yaklabco/rsfmt/pkg/span"
	"github.com/yaklabco/rsfmt/pkg/tree"
)

// ErrNilRoot is returned when Format is called without a tree.
var ErrNilRoot = errors.New("nil syntax tree")

// Printer holds the print rules of a language.
type Printer interface {
	// Print returns the doc of the node at p. Children are printed through
	// ctx.Print so that their comments are included.
	Print(ctx *Context, p *astpath.Path) doc.Doc
}

// MethodClassifier marks nodes that are method members of their parent.
type MethodClassifier interface {
	IsMethodMember(n, parent tree.Node, field string) bool
}

// CommentPrinter renders a single comment.
type CommentPrinter interface {
	PrintComment(c *comments.Comment) doc.Doc
}

// Result is the output of FormatWithCursor.
type Result struct {
	Formatted string

	// CursorOffset is the byte offset in Formatted that corresponds to the
	// requested cursor, or NoCursor.
	CursorOffset int
}

// Format prints the tree rooted at root. src is the text root was parsed
// from and list holds every comment of src.
func Format(root tree.Node, src []byte, list []*comments.Comment, printer Printer, opts Options) (string, error) {
	opts.CursorOffset = NoCursor
	result, err := FormatWithCursor(root, src, list, printer, opts)
	if err != nil {
		return "", err
	}
	return result.Formatted, nil
}

// FormatWithCursor is Format that also maps opts.CursorOffset to the
// formatted text.
func FormatWithCursor(root tree.Node, src []byte, list []*comments.Comment, printer Printer, opts Options) (Result, error) {
	ctx, err := NewContext(root, src, list, printer, opts)
	if err != nil {
		return Result{}, err
	}

	d, err := ctx.build()
	if err != nil {
		return Result{}, err
	}

	printed, err := doc.PrintDocToString(d, ctx.Options.printOptions(src))
	if err != nil {
		return Result{}, fmt.Errorf("laying out document: %w", err)
	}

	if err := comments.EnsureAllPrinted(list); err != nil {
		return Result{}, err
	}

	result := Result{Formatted: printed.Formatted, CursorOffset: NoCursor}
	if ctx.cursorNode != nil {
		result.CursorOffset = ctx.mapCursor(printed)
	}

	ctx.logger.Debug("formatted",
		"comments", len(list),
		"dangling", countDangling(ctx.Comments),
		"bytes_in", len(src),
		"bytes_out", len(result.Formatted))

	return result, nil
}

// BuildDoc attaches comments and returns the document before layout. Comment
// printed flags are left as the print rules set them.
func BuildDoc(root tree.Node, src []byte, list []*comments.Comment, printer Printer, opts Options) (doc.Doc, error) {
	ctx, err := NewContext(root, src, list, printer, opts)
	if err != nil {
		return nil, err
	}
	return ctx.build()
}

// AttachComments attaches list using the hooks printer provides.
func AttachComments(root tree.Node, src []byte, list []*comments.Comment, printer Printer) (*comments.Table, error) {
	if tree.IsNil(root) {
		return nil, ErrNilRoot
	}

	attachOpts := comments.AttachOptions{}
	if handler, ok := printer.(comments.Handler); ok {
		attachOpts.Handler = handler
	}
	if filter, ok := printer.(comments.AttachFilter); ok {
		attachOpts.Filter = filter
	}

	table, err := comments.Attach(root, list, src, span.NewIndex(src), attachOpts)
	if err != nil {
		return nil, fmt.Errorf("attaching comments: %w", err)
	}
	return table, nil
}

func (ctx *Context) build() (d doc.Doc, err error) {
	defer invariant.Recover(&err)

	d = ctx.Print(astpath.New(ctx.Root))

	// Comments outside the root span that the root's rule did not print.
	var rest []doc.Doc
	for _, c := range ctx.Comments.Dangling(ctx.Root, comments.MarkerNone) {
		if !c.Printed {
			rest = append(rest, ctx.PrintComment(c))
		}
	}
	if len(rest) > 0 {
		d = doc.Concat(d, doc.HardLine, doc.Join(doc.HardLine, rest))
	}
	return d, nil
}

func countDangling(table *comments.Table) int {
	count := 0
	for _, c := range table.All() {
		if c.IsDangling() {
			count++
		}
	}
	return count
}
