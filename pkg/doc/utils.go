package doc

import (
	"strings"

	"github.com/yaklabco/rsfmt/pkg/invariant"
)

type traverseFrame struct {
	doc  Doc
	exit bool
}

// TraverseDoc visits d depth-first. onEnter returns false to skip the
// children of a doc; onExit runs after the children (also for skipped docs).
// Either callback may be nil. Conditional group alternatives are visited
// only when traverseConditionalGroups is set; otherwise the group's
// Contents is visited.
func TraverseDoc(d Doc, onEnter func(Doc) bool, onExit func(Doc), traverseConditionalGroups bool) {
	stack := []traverseFrame{{doc: d}}

	for len(stack) > 0 {
		frame := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if frame.doc == nil {
			continue
		}
		if frame.exit {
			onExit(frame.doc)
			continue
		}
		if onExit != nil {
			stack = append(stack, traverseFrame{doc: frame.doc, exit: true})
		}
		if onEnter != nil && !onEnter(frame.doc) {
			continue
		}

		switch current := frame.doc.(type) {
		case *ConcatDoc:
			for i := len(current.Parts) - 1; i >= 0; i-- {
				stack = append(stack, traverseFrame{doc: current.Parts[i]})
			}
		case *FillDoc:
			for i := len(current.Parts) - 1; i >= 0; i-- {
				stack = append(stack, traverseFrame{doc: current.Parts[i]})
			}
		case *IfBreakDoc:
			stack = append(stack, traverseFrame{doc: current.FlatContents}, traverseFrame{doc: current.BreakContents})
		case *GroupDoc:
			if traverseConditionalGroups && len(current.ExpandedStates) > 0 {
				for i := len(current.ExpandedStates) - 1; i >= 0; i-- {
					stack = append(stack, traverseFrame{doc: current.ExpandedStates[i]})
				}
			} else {
				stack = append(stack, traverseFrame{doc: current.Contents})
			}
		case *IndentDoc:
			stack = append(stack, traverseFrame{doc: current.Contents})
		case *AlignDoc:
			stack = append(stack, traverseFrame{doc: current.Contents})
		case *IndentIfBreakDoc:
			stack = append(stack, traverseFrame{doc: current.Contents})
		case *LabelDoc:
			stack = append(stack, traverseFrame{doc: current.Contents})
		case *LineSuffixDoc:
			stack = append(stack, traverseFrame{doc: current.Contents})
		case Text, LineDoc, BreakParentDoc, TrimDoc, CursorDoc, LineSuffixBoundaryDoc:
		default:
			invariant.Unreachable("doc", current)
		}
	}
}

// FindInDoc returns the first result fn reports in traversal order, or
// defaultValue when fn never matches.
func FindInDoc[T any](d Doc, fn func(Doc) (T, bool), defaultValue T) T {
	result := defaultValue
	found := false

	TraverseDoc(d, func(current Doc) bool {
		if found {
			return false
		}
		if value, ok := fn(current); ok {
			result = value
			found = true
		}
		return true
	}, nil, false)

	return result
}

// WillBreak reports whether d contains a forced break: a broken group, a
// hard line or a BreakParent.
func WillBreak(d Doc) bool {
	return FindInDoc(d, func(current Doc) (bool, bool) {
		switch current := current.(type) {
		case *GroupDoc:
			if current.Break {
				return true, true
			}
		case LineDoc:
			if current.Hard {
				return true, true
			}
		case BreakParentDoc:
			return true, true
		}
		return false, false
	}, false)
}

// CanBreak reports whether d contains any line.
func CanBreak(d Doc) bool {
	return FindInDoc(d, func(current Doc) (bool, bool) {
		_, isLine := current.(LineDoc)
		return true, isLine
	}, false)
}

// MapDoc rebuilds d bottom-up, replacing every doc with fn applied to its
// rebuilt children. Shared subtrees are mapped once per call.
func MapDoc(d Doc, fn func(Doc) Doc) Doc {
	mapped := make(map[Doc]Doc)

	var rec func(Doc) Doc
	rec = func(current Doc) Doc {
		if current == nil {
			return nil
		}
		if result, ok := mapped[current]; ok {
			return result
		}
		result := fn(mapChildren(current, rec))
		mapped[current] = result
		return result
	}

	return rec(d)
}

func mapParts(parts []Doc, rec func(Doc) Doc) []Doc {
	if parts == nil {
		return nil
	}
	out := make([]Doc, len(parts))
	for i, part := range parts {
		out[i] = rec(part)
	}
	return out
}

// mapChildren returns a shallow copy of d whose children were passed through rec.
func mapChildren(d Doc, rec func(Doc) Doc) Doc {
	switch current := d.(type) {
	case *ConcatDoc:
		return &ConcatDoc{Parts: mapParts(current.Parts, rec)}
	case *FillDoc:
		return &FillDoc{Parts: mapParts(current.Parts, rec)}
	case *IfBreakDoc:
		clone := *current
		clone.BreakContents = rec(current.BreakContents)
		clone.FlatContents = rec(current.FlatContents)
		return &clone
	case *GroupDoc:
		clone := *current
		if len(current.ExpandedStates) > 0 {
			clone.ExpandedStates = mapParts(current.ExpandedStates, rec)
			clone.Contents = clone.ExpandedStates[0]
		} else {
			clone.Contents = rec(current.Contents)
		}
		return &clone
	case *IndentDoc:
		return &IndentDoc{Contents: rec(current.Contents)}
	case *AlignDoc:
		clone := *current
		clone.Contents = rec(current.Contents)
		return &clone
	case *IndentIfBreakDoc:
		clone := *current
		clone.Contents = rec(current.Contents)
		return &clone
	case *LabelDoc:
		return &LabelDoc{Label: current.Label, Contents: rec(current.Contents)}
	case *LineSuffixDoc:
		return &LineSuffixDoc{Contents: rec(current.Contents)}
	case Text, LineDoc, BreakParentDoc, TrimDoc, CursorDoc, LineSuffixBoundaryDoc:
		return current
	default:
		invariant.Unreachable("doc", current)
		return nil
	}
}

// RemoveLines replaces every breakable line with its flat rendering and every
// IfBreak with its flat contents. Hard lines are kept.
func RemoveLines(d Doc) Doc {
	return MapDoc(d, func(current Doc) Doc {
		switch current := current.(type) {
		case LineDoc:
			if current.Hard {
				return current
			}
			if current.Soft {
				return Text("")
			}
			return Text(" ")
		case *IfBreakDoc:
			return current.FlatContents
		}
		return current
	})
}

// StripTrailingHardline removes one forced line break from the end of d, and
// trailing newlines from a final text.
func StripTrailingHardline(d Doc) Doc {
	switch current := d.(type) {
	case *ConcatDoc:
		return &ConcatDoc{Parts: stripTrailingHardlineFromParts(current.Parts)}
	case *FillDoc:
		return &FillDoc{Parts: stripTrailingHardlineFromParts(current.Parts)}
	case *IndentDoc:
		return &IndentDoc{Contents: StripTrailingHardline(current.Contents)}
	case *AlignDoc:
		clone := *current
		clone.Contents = StripTrailingHardline(current.Contents)
		return &clone
	case *IndentIfBreakDoc:
		clone := *current
		clone.Contents = StripTrailingHardline(current.Contents)
		return &clone
	case *GroupDoc:
		clone := *current
		clone.Contents = StripTrailingHardline(current.Contents)
		return &clone
	case *LineSuffixDoc:
		return &LineSuffixDoc{Contents: StripTrailingHardline(current.Contents)}
	case *LabelDoc:
		return &LabelDoc{Label: current.Label, Contents: StripTrailingHardline(current.Contents)}
	case *IfBreakDoc:
		clone := *current
		clone.BreakContents = StripTrailingHardline(current.BreakContents)
		clone.FlatContents = StripTrailingHardline(current.FlatContents)
		return &clone
	case Text:
		return Text(strings.TrimRight(string(current), "\r\n"))
	}
	return d
}

func stripTrailingHardlineFromParts(parts []Doc) []Doc {
	out := append([]Doc(nil), parts...)

	n := len(out)
	if n >= 2 {
		if line, ok := out[n-2].(LineDoc); ok && line.Hard {
			if _, ok := out[n-1].(BreakParentDoc); ok {
				out = out[:n-2]
			}
		}
	}
	if len(out) == n && n >= 1 {
		if line, ok := out[n-1].(LineDoc); ok && line.Hard {
			out = out[:n-1]
		}
	}

	// The part now at the end may itself end in a hard line.
	if last := len(out) - 1; last >= 0 {
		out[last] = StripTrailingHardline(out[last])
	}
	return out
}

// PropagateBreaks marks every group that contains a BreakParent (hard lines
// include one) or an already broken group as broken. Conditional groups
// absorb the propagation. Shared groups are descended into once.
func PropagateBreaks(d Doc) {
	visited := make(map[*GroupDoc]bool)
	var groupStack []*GroupDoc

	breakParentGroup := func() {
		if len(groupStack) == 0 {
			return
		}
		parent := groupStack[len(groupStack)-1]
		if len(parent.ExpandedStates) == 0 && !parent.Break {
			parent.Break = true
		}
	}

	onEnter := func(current Doc) bool {
		group, ok := current.(*GroupDoc)
		if !ok {
			return true
		}
		groupStack = append(groupStack, group)
		if visited[group] {
			return false
		}
		visited[group] = true
		return true
	}

	onExit := func(current Doc) {
		switch current := current.(type) {
		case BreakParentDoc:
			breakParentGroup()
		case *GroupDoc:
			groupStack = groupStack[:len(groupStack)-1]
			if current.Break {
				breakParentGroup()
			}
		}
	}

	TraverseDoc(d, onEnter, onExit, true)
}

// CleanDoc simplifies d without changing its output: nested concats are
// flattened, empty texts dropped, adjacent texts merged, and empty wrappers
// removed.
func CleanDoc(d Doc) Doc {
	return MapDoc(d, cleanDocFn)
}

func cleanDocFn(d Doc) Doc {
	switch current := d.(type) {
	case *FillDoc:
		for _, part := range current.Parts {
			if !IsEmpty(part) {
				return current
			}
		}
		return Text("")
	case *GroupDoc:
		if IsEmpty(current.Contents) && current.ID.IsZero() && !current.Break && len(current.ExpandedStates) == 0 {
			return Text("")
		}
		if inner, ok := current.Contents.(*GroupDoc); ok &&
			inner.ID == current.ID &&
			inner.Break == current.Break &&
			len(inner.ExpandedStates) == 0 && len(current.ExpandedStates) == 0 {
			return inner
		}
	case *AlignDoc:
		if IsEmpty(current.Contents) {
			return Text("")
		}
	case *IndentDoc:
		if IsEmpty(current.Contents) {
			return Text("")
		}
	case *IndentIfBreakDoc:
		if IsEmpty(current.Contents) {
			return Text("")
		}
	case *LineSuffixDoc:
		if IsEmpty(current.Contents) {
			return Text("")
		}
	case *IfBreakDoc:
		if IsEmpty(current.FlatContents) && IsEmpty(current.BreakContents) {
			return Text("")
		}
	case *ConcatDoc:
		var parts []Doc
		for _, part := range current.Parts {
			if IsEmpty(part) {
				continue
			}
			flattened := []Doc{part}
			if inner, ok := part.(*ConcatDoc); ok {
				flattened = inner.Parts
			}
			for _, piece := range flattened {
				text, isText := piece.(Text)
				if isText && len(parts) > 0 {
					if last, ok := parts[len(parts)-1].(Text); ok {
						parts[len(parts)-1] = last + text
						continue
					}
				}
				parts = append(parts, piece)
			}
		}
		switch len(parts) {
		case 0:
			return Text("")
		case 1:
			return parts[0]
		}
		return &ConcatDoc{Parts: parts}
	}
	return d
}

// GetDocParts returns the parts of a concat or fill, or nil.
func GetDocParts(d Doc) []Doc {
	switch current := d.(type) {
	case *ConcatDoc:
		return current.Parts
	case *FillDoc:
		return current.Parts
	}
	return nil
}

// IsConcat reports whether d is a concatenation.
func IsConcat(d Doc) bool {
	_, ok := d.(*ConcatDoc)
	return ok
}

// IsEmpty reports whether d prints nothing trivially: nil, empty text, or a
// concat of such docs.
func IsEmpty(d Doc) bool {
	switch current := d.(type) {
	case nil:
		return true
	case Text:
		return current == ""
	case *ConcatDoc:
		for _, part := range current.Parts {
			if !IsEmpty(part) {
				return false
			}
		}
		return true
	}
	return false
}

// ReplaceEndOfLine splits text at line breaks and joins the pieces with
// replacement, LiteralLine when replacement is nil. A carriage return before
// a line feed is dropped.
func ReplaceEndOfLine(text string, replacement Doc) Doc {
	if !strings.Contains(text, "\n") {
		return Text(text)
	}
	if replacement == nil {
		replacement = LiteralLine
	}

	lines := strings.Split(text, "\n")
	parts := make([]Doc, 0, len(lines))
	for _, line := range lines {
		parts = append(parts, Text(strings.TrimSuffix(line, "\r")))
	}
	return Join(replacement, parts)
}

// InheritLabel applies fn to the contents of a label doc and keeps the
// label, or applies fn to d itself.
func InheritLabel(d Doc, fn func(Doc) Doc) Doc {
	if label, ok := d.(*LabelDoc); ok {
		return &LabelDoc{Label: label.Label, Contents: fn(label.Contents)}
	}
	return fn(d)
}
