package doc

import (
	"fmt"
	"strconv"

	"github.com/yaklabco/rsfmt/pkg/invariant"
)

// PrintDocToDebug renders d as the builder calls that construct it, laid out
// at the default width.
func PrintDocToDebug(d Doc) string {
	result, err := PrintDocToString(DebugDoc(d), DefaultPrintOptions())
	if err != nil {
		return fmt.Sprintf("<%v>", err)
	}
	return result.Formatted
}

// DebugDoc returns a Doc that prints as the builder calls constructing d.
// Lay it out with PrintDocToString to choose the width.
func DebugDoc(d Doc) Doc {
	p := &debugPrinter{
		names: make(map[*groupSymbol]string),
		used:  make(map[string]bool),
	}
	return p.print(d)
}

type debugPrinter struct {
	names map[*groupSymbol]string
	used  map[string]bool
}

func (p *debugPrinter) print(d Doc) Doc {
	switch current := d.(type) {
	case nil:
		return Text("nil")
	case Text:
		return Text(strconv.Quote(string(current)))
	case *ConcatDoc:
		parts := flattenConcat(current.Parts, nil)
		printed := make([]Doc, 0, len(parts))
		for i := range parts {
			if out := p.printPart(parts, i); out != nil {
				printed = append(printed, out)
			}
		}
		if len(printed) == 1 {
			return printed[0]
		}
		return debugCall("Concat", printed...)
	case LineDoc, BreakParentDoc:
		return p.printPart([]Doc{current}, 0)
	case TrimDoc:
		return Text("Trim")
	case CursorDoc:
		return Text("Cursor")
	case LineSuffixBoundaryDoc:
		return Text("LineSuffixBoundary")
	case *IndentDoc:
		return debugCall("Indent", p.print(current.Contents))
	case *AlignDoc:
		contents := p.print(current.Contents)
		switch current.Kind {
		case AlignDedentToRoot:
			return debugCall("DedentToRoot", contents)
		case AlignDedent:
			return debugCall("Dedent", contents)
		case AlignMarkAsRoot:
			return debugCall("MarkAsRoot", contents)
		case AlignText:
			return debugCall("AlignString", Text(strconv.Quote(current.S)), contents)
		default:
			return debugCall("Align", Text(strconv.Itoa(current.N)), contents)
		}
	case *IfBreakDoc:
		args := []Doc{p.print(current.BreakContents), p.print(current.FlatContents)}
		if !current.GroupID.IsZero() {
			args = append(args, debugCall("ForGroup", p.groupID(current.GroupID)))
		}
		return debugCall("IfBreak", args...)
	case *IndentIfBreakDoc:
		return debugCall("IndentIfBreak",
			p.print(current.Contents),
			p.groupID(current.GroupID),
			Text(strconv.FormatBool(current.Negate)))
	case *GroupDoc:
		var opts []Doc
		if current.Break {
			opts = append(opts, Text("WithBreak(true)"))
		}
		if !current.ID.IsZero() {
			opts = append(opts, debugCall("WithID", p.groupID(current.ID)))
		}
		if len(current.ExpandedStates) > 0 {
			states := make([]Doc, len(current.ExpandedStates))
			for i, state := range current.ExpandedStates {
				states[i] = p.print(state)
			}
			return debugCall("ConditionalGroup", append([]Doc{debugList(states)}, opts...)...)
		}
		return debugCall("Group", append([]Doc{p.print(current.Contents)}, opts...)...)
	case *FillDoc:
		parts := make([]Doc, len(current.Parts))
		for i, part := range current.Parts {
			parts[i] = p.print(part)
		}
		return debugCall("Fill", debugList(parts))
	case *LineSuffixDoc:
		return debugCall("LineSuffix", p.print(current.Contents))
	case *LabelDoc:
		return debugCall("Label", Text(strconv.Quote(current.Label)), p.print(current.Contents))
	default:
		invariant.Unreachable("doc", fmt.Sprintf("%T", current))
		return nil
	}
}

// printPart prints parts[i], naming a hard line followed by BreakParent as
// HardLine and dropping that BreakParent.
func (p *debugPrinter) printPart(parts []Doc, i int) Doc {
	switch current := parts[i].(type) {
	case LineDoc:
		withBreakParent := false
		if i+1 < len(parts) {
			_, withBreakParent = parts[i+1].(BreakParentDoc)
		}
		switch {
		case current.Literal && withBreakParent:
			return Text("LiteralLine")
		case current.Literal:
			return Text("LiteralLineWithoutBreakParent")
		case current.Hard && withBreakParent:
			return Text("HardLine")
		case current.Hard:
			return Text("HardLineWithoutBreakParent")
		case current.Soft:
			return Text("SoftLine")
		default:
			return Text("Line")
		}
	case BreakParentDoc:
		if i > 0 {
			if line, ok := parts[i-1].(LineDoc); ok && line.Hard {
				return nil
			}
		}
		return Text("BreakParent")
	default:
		return p.print(current)
	}
}

func (p *debugPrinter) groupID(id GroupID) Doc {
	name, ok := p.names[id.sym]
	if !ok {
		prefix := id.Name()
		if prefix == "" {
			prefix = "group"
		}
		for counter := 0; ; counter++ {
			name = prefix
			if counter > 0 {
				name = fmt.Sprintf("%s #%d", prefix, counter)
			}
			if !p.used[name] {
				break
			}
		}
		p.used[name] = true
		p.names[id.sym] = name
	}
	return Text("NewGroupID(" + strconv.Quote(name) + ")")
}

func flattenConcat(parts, into []Doc) []Doc {
	for _, part := range parts {
		if inner, ok := part.(*ConcatDoc); ok {
			into = flattenConcat(inner.Parts, into)
			continue
		}
		into = append(into, part)
	}
	return into
}

func debugCall(name string, args ...Doc) Doc {
	return debugWrap(name+"(", ")", args)
}

func debugList(items []Doc) Doc {
	return debugWrap("[]Doc{", "}", items)
}

func debugWrap(open, closing string, args []Doc) Doc {
	if len(args) == 0 {
		return Text(open + closing)
	}
	return Group(Concat(
		Text(open),
		Indent(Concat(SoftLine, Join(Concat(Text(","), Line), args))),
		IfBreak(Text(","), nil),
		SoftLine,
		Text(closing),
	))
}
