// Package tree defines the read-only view of a syntax tree that the
// formatting core works against. Parsers keep their own node types and
// expose them through Node.
package tree

import (
	"reflect"
	"slices"

	"github.com/yaklabco/rsfmt/pkg/span"
)

// Node is a syntax tree node as seen by the formatter.
type Node interface {
	// Span returns the byte range of the node in the original source.
	Span() span.Span

	// Kind names the node type, e.g. "CallExpr".
	Kind() string

	// Fields returns the named children in source order.
	Fields() []Field
}

// Field is one named slot of a node: a single child or a list of children.
type Field struct {
	Name string

	// Node is the child of a single-valued field. Nil if absent.
	Node Node

	// List holds the children of a list field.
	List []Node

	// IsList distinguishes an empty list from an absent single child.
	IsList bool

	// Delims is the span from the opening to the closing delimiter of a
	// delimited list, e.g. the parentheses around call arguments.
	Delims span.Span

	// Delimited reports whether Delims is set.
	Delimited bool
}

// One returns a single-valued field. A nil node yields an absent field.
func One(name string, n Node) Field {
	if IsNil(n) {
		n = nil
	}
	return Field{Name: name, Node: n}
}

// List returns a list field.
func List[T Node](name string, items []T) Field {
	nodes := make([]Node, 0, len(items))
	for _, item := range items {
		nodes = append(nodes, item)
	}
	return Field{Name: name, List: nodes, IsList: true}
}

// DelimitedList returns a list field enclosed by delimiters covering delims.
func DelimitedList[T Node](name string, items []T, delims span.Span) Field {
	field := List(name, items)
	field.Delims = delims
	field.Delimited = true
	return field
}

// IsNil reports whether n is nil or a typed nil pointer.
func IsNil(n Node) bool {
	if n == nil {
		return true
	}
	v := reflect.ValueOf(n)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

// FieldByName returns the field of n called name.
func FieldByName(n Node, name string) (Field, bool) {
	for _, field := range n.Fields() {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// Children returns the direct children of n in field order.
func Children(n Node) []Node {
	if IsNil(n) {
		return nil
	}

	var children []Node
	for _, field := range n.Fields() {
		if field.IsList {
			for _, child := range field.List {
				if !IsNil(child) {
					children = append(children, child)
				}
			}
			continue
		}
		if !IsNil(field.Node) {
			children = append(children, field.Node)
		}
	}
	return children
}

// SortedChildren returns the direct children of n ordered by start offset.
func SortedChildren(n Node) []Node {
	children := Children(n)
	slices.SortStableFunc(children, func(a, b Node) int {
		return a.Span().Start - b.Span().Start
	})
	return children
}

// ContainingField returns the field of parent that holds child.
func ContainingField(parent, child Node) (Field, bool) {
	for _, field := range parent.Fields() {
		if field.IsList {
			if slices.Contains(field.List, child) {
				return field, true
			}
			continue
		}
		if field.Node == child {
			return field, true
		}
	}
	return Field{}, false
}
