package tree

// WalkFunc is the function signature for Walk callbacks.
// Return a non-nil error to stop the walk.
type WalkFunc func(n Node) error

// Walk performs a pre-order traversal of the tree starting at root.
// If walkFunc returns a non-nil error, the walk stops immediately and
// returns that error.
func Walk(root Node, walkFunc WalkFunc) error {
	if IsNil(root) {
		return nil
	}

	if err := walkFunc(root); err != nil {
		return err
	}

	for _, child := range Children(root) {
		if err := Walk(child, walkFunc); err != nil {
			return err
		}
	}

	return nil
}

// VisitFunc receives a node together with its parent and the name of the
// parent field that holds it. Parent is nil and field is "" for the root.
type VisitFunc func(n, parent Node, field string) error

// WalkWithParent performs a pre-order traversal and reports each node's
// parent and field name.
func WalkWithParent(root Node, visit VisitFunc) error {
	return walkWithParent(root, nil, "", visit)
}

func walkWithParent(n, parent Node, field string, visit VisitFunc) error {
	if IsNil(n) {
		return nil
	}

	if err := visit(n, parent, field); err != nil {
		return err
	}

	for _, f := range n.Fields() {
		if f.IsList {
			for _, child := range f.List {
				if err := walkWithParent(child, n, f.Name, visit); err != nil {
					return err
				}
			}
			continue
		}
		if err := walkWithParent(f.Node, n, f.Name, visit); err != nil {
			return err
		}
	}
	return nil
}

// FindAll returns all nodes matching the predicate.
func FindAll(root Node, predicate func(n Node) bool) []Node {
	var result []Node

	//nolint:errcheck,revive // Walk only returns nil errors in this usage
	Walk(root, func(node Node) error {
		if predicate(node) {
			result = append(result, node)
		}
		return nil
	})

	return result
}

// FindFirst returns the first node matching the predicate, or nil if none found.
func FindFirst(root Node, predicate func(n Node) bool) Node {
	var found Node

	//nolint:errcheck,revive // errStopWalk is expected and intentionally ignored
	Walk(root, func(node Node) error {
		if predicate(node) {
			found = node
			return errStopWalk
		}
		return nil
	})

	return found
}

// FindByKind returns all nodes of the specified kind.
func FindByKind(root Node, kind string) []Node {
	return FindAll(root, func(n Node) bool {
		return n.Kind() == kind
	})
}

// DeepestContaining returns the innermost node whose span contains offset,
// or nil when root does not contain it.
func DeepestContaining(root Node, offset int) Node {
	if IsNil(root) || !root.Span().Contains(offset) {
		return nil
	}

	current := root
	for {
		next := Node(nil)
		for _, child := range Children(current) {
			if child.Span().Contains(offset) {
				next = child
				break
			}
		}
		if next == nil {
			return current
		}
		current = next
	}
}

// errStopWalk is a sentinel error used to stop walking early.
var errStopWalk = &stopWalkError{}

type stopWalkError struct{}

func (e *stopWalkError) Error() string {
	return "stop walk"
}
