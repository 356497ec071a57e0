package format

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/rsfmt/pkg/astpath"
	"github.com/yaklabco/rsfmt/pkg/comments"
	"github.com/yaklabco/rsfmt/pkg/doc"
	"github.com/yaklabco/rsfmt/pkg/invariant"
	"github.com/yaklabco/rsfmt/pkg/span"
	"github.com/yaklabco/rsfmt/pkg/tree"
)

// Context carries the state of one formatting run. Print rules receive it
// and print their children through it.
type Context struct {
	Options  Options
	Source   []byte
	Index    *span.Index
	Comments *comments.Table
	Root     tree.Node

	printer Printer
	logger  *log.Logger

	cache      map[tree.Node]doc.Doc
	methods    map[tree.Node]bool
	cursorNode tree.Node
}

// NewContext attaches comments and prepares a run. Print rules do not need
// to call it; Format does.
func NewContext(root tree.Node, src []byte, list []*comments.Comment, printer Printer, opts Options) (*Context, error) {
	if tree.IsNil(root) {
		return nil, ErrNilRoot
	}

	table, err := AttachComments(root, src, list, printer)
	if err != nil {
		return nil, err
	}

	opts = opts.withDefaults()
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	ctx := &Context{
		Options:  opts,
		Source:   src,
		Index:    span.NewIndex(src),
		Comments: table,
		Root:     root,
		printer:  printer,
		logger:   logger,
		cache:    make(map[tree.Node]doc.Doc),
		methods:  classifyMethods(root, printer),
	}
	if opts.CursorOffset >= 0 {
		ctx.cursorNode = findCursorNode(root, opts.CursorOffset)
	}

	logger.Debug("attached comments", "comments", len(list), "owners", len(table.Owners()))
	return ctx, nil
}

func classifyMethods(root tree.Node, printer Printer) map[tree.Node]bool {
	classifier, ok := printer.(MethodClassifier)
	if !ok {
		return nil
	}

	methods := make(map[tree.Node]bool)
	_ = tree.WalkWithParent(root, func(n, parent tree.Node, field string) error {
		if parent != nil && classifier.IsMethodMember(n, parent, field) {
			methods[n] = true
		}
		return nil
	})
	return methods
}

// IsMethodMember reports whether the classifier marked n as a method member.
func (ctx *Context) IsMethodMember(n tree.Node) bool {
	return ctx.methods[n]
}

// Print prints the node reached from p through names, with its comments.
// An absent child prints as the empty doc.
func (ctx *Context) Print(p *astpath.Path, names ...any) doc.Doc {
	return astpath.Call(p, ctx.printCurrent, names...)
}

// PrintAll prints every element of the list reached through names.
func (ctx *Context) PrintAll(p *astpath.Path, names ...any) []doc.Doc {
	return astpath.Map(p, func(p *astpath.Path, _ int) doc.Doc {
		return ctx.printCurrent(p)
	}, names...)
}

func (ctx *Context) printCurrent(p *astpath.Path) doc.Doc {
	if _, isList := p.Value().([]tree.Node); isList {
		invariant.Fail("Print reached a list", "key", p.Key())
	}

	n := p.Node()
	if p.Value() == nil || tree.IsNil(n) {
		return nil
	}
	if cached, ok := ctx.cache[n]; ok {
		return cached
	}

	var printed doc.Doc
	if ctx.isIgnored(n) {
		printed = ctx.printIgnored(n)
	} else {
		printed = ctx.printer.Print(ctx, p)
	}

	if n == ctx.cursorNode {
		printed = doc.Concat(doc.Cursor, printed, doc.Cursor)
	}

	printed = ctx.printComments(n, printed)
	ctx.cache[n] = printed
	return printed
}

// IsNextLineEmpty reports whether a blank line follows n in the source.
func (ctx *Context) IsNextLineEmpty(n tree.Node) bool {
	return span.IsNextLineEmpty(ctx.Source, n.Span().End)
}

// Text returns the source text of n.
func (ctx *Context) Text(n tree.Node) string {
	return string(n.Span().Text(ctx.Source))
}

// Logger returns the run's logger.
func (ctx *Context) Logger() *log.Logger {
	return ctx.logger
}
