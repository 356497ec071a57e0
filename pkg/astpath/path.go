// Package astpath provides Path, a cursor over a syntax tree that records the
// chain of ancestors and field names leading to the current value.
//
// The stack alternates values and the names used to reach them:
//
//	[root, "arguments", []tree.Node{...}, 0, node]
//
// Values are tree.Node or []tree.Node; names are field names (string) or
// list indices (int). The cursor never mutates the tree.
package astpath

import (
	"fmt"

	"github.com/yaklabco/rsfmt/pkg/invariant"
	"github.com/yaklabco/rsfmt/pkg/tree"
)

// Path is a cursor positioned on a value of the tree.
type Path struct {
	stack []any
}

// Predicate tests one frame of the path: a node, the field name it is held
// under in its parent, and its index in that field (-1 when the field is
// not a list).
type Predicate func(n tree.Node, name string, index int) bool

// New returns a path positioned on root.
func New(root tree.Node) *Path {
	return &Path{stack: []any{root}}
}

// Value returns the current value: a tree.Node, a []tree.Node, or nil.
func (p *Path) Value() any {
	return p.stack[len(p.stack)-1]
}

// Node returns the nearest node on the stack.
func (p *Path) Node() tree.Node {
	return p.GetNode(0)
}

// Depth returns the number of nodes on the stack.
func (p *Path) Depth() int {
	depth := 0
	for i := len(p.stack) - 1; i >= 0; i -= 2 {
		if _, isList := p.stack[i].([]tree.Node); !isList {
			depth++
		}
	}
	return depth
}

// Name returns the last name pushed: a field name, a list index, or nil at
// the root.
func (p *Path) Name() any {
	if len(p.stack) > 1 {
		return p.stack[len(p.stack)-2]
	}
	return nil
}

// Siblings returns the list holding the current node, or nil.
func (p *Path) Siblings() []tree.Node {
	if len(p.stack) < 3 {
		return nil
	}
	list, _ := p.stack[len(p.stack)-3].([]tree.Node)
	return list
}

// Key returns the field name under which the current node (or the list
// holding it) is stored.
func (p *Path) Key() string {
	offset := 2
	if p.Siblings() != nil {
		offset = 4
	}
	if len(p.stack) < offset {
		return ""
	}
	key, _ := p.stack[len(p.stack)-offset].(string)
	return key
}

// Index returns the index of the current node in its list, or -1.
func (p *Path) Index() int {
	if p.Siblings() == nil {
		return -1
	}
	index, _ := p.stack[len(p.stack)-2].(int)
	return index
}

// IsFirst reports whether the current node is the first of its list.
func (p *Path) IsFirst() bool {
	return p.Index() == 0
}

// IsLast reports whether the current node is the last of its list.
func (p *Path) IsLast() bool {
	siblings := p.Siblings()
	return siblings != nil && p.Index() == len(siblings)-1
}

// Next returns the sibling after the current node, or nil.
func (p *Path) Next() tree.Node {
	siblings, index := p.Siblings(), p.Index()
	if siblings == nil || index+1 >= len(siblings) {
		return nil
	}
	return siblings[index+1]
}

// Previous returns the sibling before the current node, or nil.
func (p *Path) Previous() tree.Node {
	siblings, index := p.Siblings(), p.Index()
	if siblings == nil || index <= 0 {
		return nil
	}
	return siblings[index-1]
}

// Root returns the node the path was created with.
func (p *Path) Root() tree.Node {
	root, _ := p.stack[0].(tree.Node)
	return root
}

func (p *Path) nodeStackIndex(count int) int {
	for i := len(p.stack) - 1; i >= 0; i -= 2 {
		if _, isList := p.stack[i].([]tree.Node); isList {
			continue
		}
		count--
		if count < 0 {
			return i
		}
	}
	return -1
}

// GetNode returns the node count levels above the current one, skipping
// lists, or nil past the root.
func (p *Path) GetNode(count int) tree.Node {
	idx := p.nodeStackIndex(count)
	if idx == -1 {
		return nil
	}
	n, _ := p.stack[idx].(tree.Node)
	return n
}

// GetParentNode returns the ancestor count+1 levels up.
func (p *Path) GetParentNode(count int) tree.Node {
	return p.GetNode(count + 1)
}

// Parent returns the parent node.
func (p *Path) Parent() tree.Node {
	return p.GetNode(1)
}

// Grandparent returns the parent of the parent node.
func (p *Path) Grandparent() tree.Node {
	return p.GetNode(2)
}

// FindAncestor returns the closest ancestor accepted by pred.
func (p *Path) FindAncestor(pred func(tree.Node) bool) tree.Node {
	for count := 1; ; count++ {
		idx := p.nodeStackIndex(count)
		if idx == -1 {
			return nil
		}
		if n, _ := p.stack[idx].(tree.Node); n != nil && pred(n) {
			return n
		}
	}
}

// HasAncestor reports whether some ancestor is accepted by pred.
func (p *Path) HasAncestor(pred func(tree.Node) bool) bool {
	return p.FindAncestor(pred) != nil
}

// Match tests predicates against the current node and its ancestors, in that
// order. A nil predicate matches anything. It fails when the path is shorter
// than the chain.
func (p *Path) Match(predicates ...Predicate) bool {
	i := len(p.stack) - 1
	for _, pred := range predicates {
		for i >= 0 {
			if _, isList := p.stack[i].([]tree.Node); !isList {
				break
			}
			i -= 2
		}
		if i < 0 {
			return false
		}

		n, _ := p.stack[i].(tree.Node)
		name, index := "", -1
		if i >= 2 {
			switch key := p.stack[i-1].(type) {
			case string:
				name = key
			case int:
				index = key
				if i >= 3 {
					name, _ = p.stack[i-3].(string)
				}
			}
		}

		if pred != nil && !pred(n, name, index) {
			return false
		}
		i -= 2
	}
	return true
}

// push descends from the current value by name and pushes the result.
func (p *Path) push(name any) any {
	var value any

	switch current := p.Value().(type) {
	case tree.Node:
		fieldName, ok := name.(string)
		invariant.Assert(ok, "node children are addressed by field name", "name", name)
		field, found := tree.FieldByName(current, fieldName)
		invariant.Assert(found, "unknown field", "kind", current.Kind(), "field", fieldName)
		if field.IsList {
			value = field.List
		} else if field.Node != nil {
			value = field.Node
		}
	case []tree.Node:
		index, ok := name.(int)
		invariant.Assert(ok, "list elements are addressed by index", "name", name)
		invariant.Assert(index >= 0 && index < len(current), "index out of range", "index", index, "len", len(current))
		value = current[index]
	default:
		invariant.Fail("cannot descend", "value", fmt.Sprintf("%T", current), "name", name)
	}

	p.stack = append(p.stack, name, value)
	return value
}

func (p *Path) restore(length int) {
	clear(p.stack[length:])
	p.stack = p.stack[:length]
}

// Call descends through names, invokes fn there and restores the path.
func Call[R any](p *Path, fn func(*Path) R, names ...any) R {
	length := len(p.stack)
	defer p.restore(length)

	for _, name := range names {
		p.push(name)
	}
	return fn(p)
}

// Each descends through names to a list and invokes fn for every element.
func (p *Path) Each(fn func(p *Path, index int), names ...any) {
	length := len(p.stack)
	defer p.restore(length)

	var value any = p.Value()
	for _, name := range names {
		value = p.push(name)
	}

	list, ok := value.([]tree.Node)
	if !ok && value != nil {
		invariant.Fail("Each requires a list", "value", fmt.Sprintf("%T", value))
	}

	base := len(p.stack)
	for i := range list {
		p.stack = append(p.stack, i, list[i])
		fn(p, i)
		p.restore(base)
	}
}

// Map is Each collecting the results.
func Map[R any](p *Path, fn func(p *Path, index int) R, names ...any) []R {
	var results []R
	p.Each(func(p *Path, index int) {
		results = append(results, fn(p, index))
	}, names...)
	return results
}

// CallParent invokes fn with the path positioned count+1 nodes up and then
// restores the path.
func CallParent[R any](p *Path, fn func(*Path) R, count int) R {
	idx := p.nodeStackIndex(count + 1)
	invariant.Assert(idx != -1, "CallParent past the root", "count", count)

	saved := append([]any(nil), p.stack[idx+1:]...)
	p.stack = p.stack[:idx+1]
	defer func() {
		p.stack = append(p.stack, saved...)
	}()

	return fn(p)
}
