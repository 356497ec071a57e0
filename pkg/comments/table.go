package comments

import (
	"slices"

	"github.com/yaklabco/rsfmt/pkg/tree"
)

// Table maps nodes to the comments attached to them. Per-node lists are kept
// in source order. The parser's nodes are never modified.
type Table struct {
	byNode map[tree.Node][]*Comment
	all    []*Comment
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{byNode: make(map[tree.Node][]*Comment)}
}

func (t *Table) add(n tree.Node, c *Comment) {
	c.Owner = n

	list := t.byNode[n]
	idx, _ := slices.BinarySearchFunc(list, c, byStart)
	t.byNode[n] = slices.Insert(list, idx, c)

	idx, _ = slices.BinarySearchFunc(t.all, c, byStart)
	t.all = slices.Insert(t.all, idx, c)
}

func byStart(a, b *Comment) int {
	return a.Span.Start - b.Span.Start
}

// AddLeading attaches c before n.
func (t *Table) AddLeading(n tree.Node, c *Comment) {
	c.Leading, c.Trailing = true, false
	c.Marker = MarkerNone
	t.add(n, c)
}

// AddTrailing attaches c after n.
func (t *Table) AddTrailing(n tree.Node, c *Comment) {
	c.Leading, c.Trailing = false, true
	c.Marker = MarkerNone
	t.add(n, c)
}

// AddDangling attaches c inside n, optionally tagged with the list it
// belongs to.
func (t *Table) AddDangling(n tree.Node, c *Comment, marker Marker) {
	c.Leading, c.Trailing = false, false
	c.Marker = marker
	t.add(n, c)
}

// Comments returns every comment attached to n.
func (t *Table) Comments(n tree.Node) []*Comment {
	if t == nil {
		return nil
	}
	return t.byNode[n]
}

// Filter returns the comments of n accepted by keep.
func (t *Table) Filter(n tree.Node, keep func(*Comment) bool) []*Comment {
	var out []*Comment
	for _, c := range t.Comments(n) {
		if keep(c) {
			out = append(out, c)
		}
	}
	return out
}

// Leading returns the leading comments of n.
func (t *Table) Leading(n tree.Node) []*Comment {
	return t.Filter(n, func(c *Comment) bool { return c.Leading })
}

// Trailing returns the trailing comments of n.
func (t *Table) Trailing(n tree.Node) []*Comment {
	return t.Filter(n, func(c *Comment) bool { return c.Trailing })
}

// Dangling returns the dangling comments of n with the given marker, or all
// of them when marker is MarkerNone.
func (t *Table) Dangling(n tree.Node, marker Marker) []*Comment {
	return t.Filter(n, func(c *Comment) bool {
		return c.IsDangling() && (marker == MarkerNone || c.Marker == marker)
	})
}

// HasComments reports whether n has a comment accepted by filter. A nil
// filter accepts every comment.
func (t *Table) HasComments(n tree.Node, filter func(*Comment) bool) bool {
	for _, c := range t.Comments(n) {
		if filter == nil || filter(c) {
			return true
		}
	}
	return false
}

// All returns every attached comment in source order.
func (t *Table) All() []*Comment {
	if t == nil {
		return nil
	}
	return t.all
}

// Owners returns the nodes that own at least one comment, in the source
// order of their first comment.
func (t *Table) Owners() []tree.Node {
	var owners []tree.Node
	seen := make(map[tree.Node]bool)
	for _, c := range t.All() {
		if !seen[c.Owner] {
			seen[c.Owner] = true
			owners = append(owners, c.Owner)
		}
	}
	return owners
}
