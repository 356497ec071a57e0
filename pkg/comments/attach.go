package comments

import (
	"errors"
	"fmt"
	"slices"

	"github.com/yaklabco/rsfmt/pkg/span"
	"github.com/yaklabco/rsfmt/pkg/tree"
)

// HandlerContext is passed to language hooks.
type HandlerContext struct {
	Source []byte
	Index  *span.Index
	Table  *Table
	Root   tree.Node
}

// Handler lets a language claim comments before the default rules run. Each
// hook returns true when it attached the comment through ctx.Table. The
// comment's Enclosing, Preceding and Following nodes are already set.
type Handler interface {
	HandleOwnLine(c *Comment, ctx *HandlerContext) bool
	HandleEndOfLine(c *Comment, ctx *HandlerContext) bool
	HandleRemaining(c *Comment, ctx *HandlerContext) bool
}

// AttachFilter restricts which nodes may own comments. Children of a
// rejected node are considered in its place.
type AttachFilter interface {
	CanAttachComment(n tree.Node) bool
}

// AttachOptions configures Attach.
type AttachOptions struct {
	Handler Handler
	Filter  AttachFilter
}

type attacher struct {
	root   tree.Node
	src    []byte
	opts   AttachOptions
	ctx    *HandlerContext
	table  *Table
	sorted map[tree.Node][]tree.Node
}

// Attach assigns every comment of list to one node of the tree rooted at
// root. The comments are updated in place and recorded in the returned table.
// idx may be nil.
func Attach(root tree.Node, list []*Comment, src []byte, idx *span.Index, opts AttachOptions) (*Table, error) {
	if idx == nil {
		idx = span.NewIndex(src)
	}

	table := NewTable()
	a := &attacher{
		root:   root,
		src:    src,
		opts:   opts,
		table:  table,
		sorted: make(map[tree.Node][]tree.Node),
		ctx:    &HandlerContext{Source: src, Index: idx, Table: table, Root: root},
	}

	ordered := slices.Clone(list)
	slices.SortStableFunc(ordered, byStart)

	var errs []error
	for _, c := range ordered {
		if err := a.attach(c); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return table, nil
}

func (a *attacher) attach(c *Comment) error {
	if !c.Span.IsValid() || c.Span.End > len(a.src) {
		return fmt.Errorf("%w: comment %q at %s", ErrCommentOutOfRange, c.Text, c.Span)
	}

	c.Placement = a.placement(c)

	if tree.IsNil(a.root) || !a.root.Span().ContainsSpan(c.Span) {
		c.Enclosing = a.root
		a.table.AddDangling(a.root, c, MarkerNone)
		return nil
	}

	if err := a.decorate(a.root, c); err != nil {
		return err
	}

	if a.handle(c) {
		return nil
	}
	a.attachDefault(c)
	return nil
}

// decorate finds the innermost node enclosing c and its neighbours there.
func (a *attacher) decorate(enclosing tree.Node, c *Comment) error {
	for {
		children := a.childNodes(enclosing)
		c.Enclosing, c.Preceding, c.Following = enclosing, nil, nil

		i := span.BinarySearchIn(children, c.Span.Start, func(n tree.Node) int {
			return n.Span().Start
		})

		if i >= 0 {
			child := children[i]
			childSpan := child.Span()
			if childSpan.ContainsSpan(c.Span) && !childSpan.IsEmpty() {
				enclosing = child
				continue
			}
			if childSpan.End > c.Span.Start {
				return overlapError(c, child)
			}
			c.Preceding = child
		}

		if i+1 < len(children) {
			next := children[i+1]
			if next.Span().Start < c.Span.End {
				return overlapError(c, next)
			}
			c.Following = next
		}
		return nil
	}
}

func overlapError(c *Comment, n tree.Node) error {
	return fmt.Errorf("%w: comment %q at %s, %s at %s",
		ErrOverlappingNode, c.Text, c.Span, n.Kind(), n.Span())
}

// childNodes returns the attachable descendants directly below n, sorted by
// start offset.
func (a *attacher) childNodes(n tree.Node) []tree.Node {
	if cached, ok := a.sorted[n]; ok {
		return cached
	}

	var nodes []tree.Node
	for _, child := range tree.Children(n) {
		if a.opts.Filter == nil || a.opts.Filter.CanAttachComment(child) {
			nodes = append(nodes, child)
			continue
		}
		nodes = append(nodes, a.childNodes(child)...)
	}
	slices.SortStableFunc(nodes, func(x, y tree.Node) int {
		return x.Span().Start - y.Span().Start
	})

	a.sorted[n] = nodes
	return nodes
}

func (a *attacher) placement(c *Comment) Placement {
	before := span.SkipSpaces(a.src, c.Span.Start-1, true)
	if before == span.NotFound || a.src[before] == '\n' || a.src[before] == '\r' {
		return PlacementOwnLine
	}

	after := span.SkipSpaces(a.src, c.Span.End, false)
	if after == len(a.src) || a.src[after] == '\n' || a.src[after] == '\r' {
		return PlacementEndOfLine
	}
	return PlacementRemaining
}

func (a *attacher) handle(c *Comment) bool {
	h := a.opts.Handler
	if h == nil {
		return false
	}
	switch c.Placement {
	case PlacementOwnLine:
		return h.HandleOwnLine(c, a.ctx)
	case PlacementEndOfLine:
		return h.HandleEndOfLine(c, a.ctx)
	default:
		return h.HandleRemaining(c, a.ctx)
	}
}

func (a *attacher) attachDefault(c *Comment) {
	leadingClaim := c.Following != nil &&
		span.NextNonSpaceNonComment(a.src, c.Span.End) >= c.Following.Span().Start
	trailingClaim := c.Preceding != nil &&
		span.NextNonSpaceNonComment(a.src, c.Preceding.Span().End) >= c.Span.Start

	switch {
	case leadingClaim && trailingClaim:
		if c.Placement == PlacementOwnLine {
			a.table.AddLeading(c.Following, c)
		} else {
			a.table.AddTrailing(c.Preceding, c)
		}
	case leadingClaim:
		a.table.AddLeading(c.Following, c)
	case trailingClaim:
		a.table.AddTrailing(c.Preceding, c)
	default:
		a.attachUnclaimed(c)
	}
}

func (a *attacher) attachUnclaimed(c *Comment) {
	if marker, ok := a.emptyListMarker(c); ok {
		a.table.AddDangling(c.Enclosing, c, marker)
		return
	}

	switch {
	case c.Placement == PlacementOwnLine && c.Following != nil:
		a.table.AddLeading(c.Following, c)
	case c.Preceding != nil:
		a.table.AddTrailing(c.Preceding, c)
	case c.Following != nil:
		a.table.AddLeading(c.Following, c)
	default:
		a.table.AddDangling(c.Enclosing, c, MarkerNone)
	}
}

// emptyListMarker reports the marker of an empty delimited list of the
// enclosing node that surrounds c.
func (a *attacher) emptyListMarker(c *Comment) (Marker, bool) {
	for _, field := range c.Enclosing.Fields() {
		if !field.IsList || !field.Delimited || len(field.List) > 0 {
			continue
		}
		marker := Marker(field.Name)
		if IsKnownMarker(marker) && field.Delims.ContainsSpan(c.Span) {
			return marker, true
		}
	}
	return MarkerNone, false
}
