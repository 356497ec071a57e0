package rustlite

import (
	"github.com/yaklabco/rsfmt/pkg/astpath"
	"github.com/yaklabco/rsfmt/pkg/comments"
	"github.com/yaklabco/rsfmt/pkg/doc"
	"github.com/yaklabco/rsfmt/pkg/format"
	"github.com/yaklabco/rsfmt/pkg/invariant"
	"github.com/yaklabco/rsfmt/pkg/tree"
)

// Printer holds the print rules of the language. Besides format.Printer it
// implements comments.Handler and format.MethodClassifier.
type Printer struct{}

var (
	_ format.Printer          = Printer{}
	_ format.MethodClassifier = Printer{}
	_ comments.Handler        = Printer{}
)

var (
	space = doc.Text(" ")
	comma = doc.Text(",")
)

// Print implements format.Printer.
func (Printer) Print(ctx *format.Context, p *astpath.Path) doc.Doc {
	switch n := p.Node().(type) {
	case *File:
		return printFile(ctx, p, n)
	case *FnDecl:
		return printFn(ctx, p, n)
	case *Param:
		return doc.Concat(ctx.Print(p, "pattern"), optional(ctx, p, ": ", "type"))
	case *StructDecl:
		return printStruct(ctx, p, n)
	case *FieldDecl:
		return doc.Concat(pub(n.Pub), ctx.Print(p, "name"), doc.Text(": "), ctx.Print(p, "type"))
	case *ImplBlock:
		return printImpl(ctx, p, n)
	case *UseDecl:
		return doc.Concat(pub(n.Pub), doc.Text("use "), ctx.Print(p, "tree"), doc.Text(";"))
	case *UseTree:
		return printUseTree(ctx, p, n)
	case *LetStmt:
		return doc.Concat(
			doc.Text("let "),
			ctx.Print(p, "pattern"),
			optional(ctx, p, ": ", "type"),
			optional(ctx, p, " = ", "init"),
			doc.Text(";"),
		)
	case *ExprStmt:
		if n.Semi {
			return doc.Concat(ctx.Print(p, "expr"), doc.Text(";"))
		}
		return ctx.Print(p, "expr")
	case *Ident:
		return doc.Text(n.Name)
	case *BindingPattern:
		return printBinding(ctx, p, n)
	case *PathExpr:
		return doc.Join(doc.Text("::"), ctx.PrintAll(p, "segments"))
	case *Literal:
		return doc.ReplaceEndOfLine(n.Value, nil)
	case *CallExpr:
		return doc.Concat(
			ctx.Print(p, "callee"),
			printDelimited(ctx, p, "arguments", "(", ")", comments.MarkerArguments),
		)
	case *MethodCallExpr, *FieldExpr, *TryExpr:
		return printMemberChain(ctx, p)
	case *IndexExpr:
		return doc.Concat(ctx.Print(p, "expr"), doc.Text("["), ctx.Print(p, "index"), doc.Text("]"))
	case *ArrayExpr:
		return printDelimited(ctx, p, "items", "[", "]", comments.MarkerItems)
	case *TupleExpr:
		return printTuple(ctx, p, len(n.Elems))
	case *ParenExpr:
		return doc.Concat(doc.Text("("), ctx.Print(p, "expr"), doc.Text(")"))
	case *StructLit:
		return doc.Concat(ctx.Print(p, "path"), space, printBraced(ctx, p, "properties", comments.MarkerProperties))
	case *FieldInit:
		return doc.Concat(ctx.Print(p, "name"), optional(ctx, p, ": ", "value"))
	case *UnaryExpr:
		return doc.Concat(doc.Text(n.Op), ctx.Print(p, "expr"))
	case *BinaryExpr:
		return printBinary(ctx, p, n)
	case *RangeExpr:
		op := ".."
		if n.Inclusive {
			op = "..="
		}
		return doc.Concat(ctx.Print(p, "start"), doc.Text(op), ctx.Print(p, "end"))
	case *CastExpr:
		return doc.Concat(ctx.Print(p, "expr"), doc.Text(" as "), ctx.Print(p, "type"))
	case *Block:
		return printBlock(ctx, p, n)
	case *IfExpr:
		return printIf(ctx, p, n)
	case *MatchExpr:
		return printMatch(ctx, p, n)
	case *MatchArm:
		return doc.Concat(
			ctx.Print(p, "pattern"),
			optional(ctx, p, " if ", "guard"),
			doc.Text(" => "),
			ctx.Print(p, "body"),
		)
	case *ReturnExpr:
		return doc.Concat(doc.Text("return"), optional(ctx, p, " ", "value"))
	case *PathType:
		return printPathType(ctx, p, n)
	case *Lifetime:
		return doc.Text(n.Name)
	case *RefType:
		parts := []doc.Doc{doc.Text("&")}
		if n.Lifetime != nil {
			parts = append(parts, ctx.Print(p, "lifetime"), space)
		}
		if n.Mut {
			parts = append(parts, doc.Text("mut "))
		}
		return doc.Concat(append(parts, ctx.Print(p, "elem"))...)
	case *SliceType:
		return doc.Concat(doc.Text("["), ctx.Print(p, "elem"), optional(ctx, p, "; ", "len"), doc.Text("]"))
	case *TupleType:
		return printTuple(ctx, p, len(n.Elems))
	}

	invariant.Unreachable("kind", p.Node().Kind())
	return nil
}

func pub(isPub bool) doc.Doc {
	if isPub {
		return doc.Text("pub ")
	}
	return nil
}

// optional prints prefix and the child at name, or nothing when the child
// is absent.
func optional(ctx *format.Context, p *astpath.Path, prefix, name string) doc.Doc {
	field, _ := tree.FieldByName(p.Node(), name)
	if field.Node == nil {
		return nil
	}
	return doc.Concat(doc.Text(prefix), ctx.Print(p, name))
}

func printFile(ctx *format.Context, p *astpath.Path, n *File) doc.Doc {
	if len(n.Items) == 0 {
		dangling := ctx.PrintDanglingComments(p, comments.MarkerNone, true)
		if dangling == nil {
			return nil
		}
		return doc.Concat(dangling, doc.HardLine)
	}
	return doc.Concat(printLines(ctx, p, "items", nil), doc.HardLine)
}

// printLines prints the list at field one element per line, keeping a
// single blank line where the source had one. suffix, if set, follows
// every element.
func printLines(ctx *format.Context, p *astpath.Path, field string, suffix func(n tree.Node) doc.Doc) doc.Doc {
	var parts []doc.Doc
	p.Each(func(p *astpath.Path, _ int) {
		n := p.Node()
		parts = append(parts, ctx.Print(p))
		if suffix != nil {
			parts = append(parts, suffix(n))
		}
		if p.IsLast() {
			return
		}
		parts = append(parts, doc.HardLine)
		next := p.Next()
		if ctx.IsNextLineEmpty(n) || implMethods(p.Parent(), n, next) {
			parts = append(parts, doc.HardLine)
		}
	}, field)
	return doc.Concat(parts...)
}

// implMethods reports whether n and next are functions of one impl block.
// Methods are always separated by a blank line.
func implMethods(parent, n, next tree.Node) bool {
	_, inImpl := parent.(*ImplBlock)
	_, fn := n.(*FnDecl)
	_, nextFn := next.(*FnDecl)
	return inImpl && fn && nextFn
}

func printFn(ctx *format.Context, p *astpath.Path, n *FnDecl) doc.Doc {
	return doc.Concat(
		pub(n.Pub),
		doc.Text("fn "),
		ctx.Print(p, "name"),
		printDelimited(ctx, p, "parameters", "(", ")", comments.MarkerParameters),
		optional(ctx, p, " -> ", "returnType"),
		space,
		ctx.Print(p, "body"),
	)
}

func printBinding(ctx *format.Context, p *astpath.Path, n *BindingPattern) doc.Doc {
	var parts []doc.Doc
	if n.Ref {
		parts = append(parts, doc.Text("ref "))
	}
	if n.Mut {
		parts = append(parts, doc.Text("mut "))
	}
	return doc.Concat(append(parts, ctx.Print(p, "name"))...)
}

func printStruct(ctx *format.Context, p *astpath.Path, n *StructDecl) doc.Doc {
	head := doc.Concat(pub(n.Pub), doc.Text("struct "), ctx.Print(p, "name"))
	if n.Unit {
		return doc.Concat(head, doc.Text(";"))
	}
	return doc.Concat(head, space, printBody(ctx, p, "members", comments.MarkerMembers, commaAfter))
}

func printImpl(ctx *format.Context, p *astpath.Path, n *ImplBlock) doc.Doc {
	return doc.Concat(doc.Text("impl "), ctx.Print(p, "type"), space, printBody(ctx, p, "items", comments.MarkerItems, nil))
}

func commaAfter(tree.Node) doc.Doc { return comma }

// printBody prints a braced list that always breaks, one element per line.
func printBody(ctx *format.Context, p *astpath.Path, field string, marker comments.Marker, suffix func(tree.Node) doc.Doc) doc.Doc {
	list, _ := tree.FieldByName(p.Node(), field)
	if len(list.List) == 0 {
		return printEmptyDelimited(ctx, p, "{", "}", marker)
	}
	return doc.Concat(
		doc.Text("{"),
		doc.Indent(doc.Concat(doc.HardLine, printLines(ctx, p, field, suffix))),
		doc.HardLine,
		doc.Text("}"),
	)
}

func printBlock(ctx *format.Context, p *astpath.Path, n *Block) doc.Doc {
	if len(n.Stmts) == 0 {
		return printEmptyDelimited(ctx, p, "{", "}", comments.MarkerBody)
	}

	// Comments kept on the line of the opening brace.
	head := []doc.Doc{doc.Text("{")}
	for _, c := range ctx.Comments.Dangling(n, comments.MarkerBody) {
		head = append(head, space, ctx.PrintComment(c))
		if !c.IsBlock() {
			head = append(head, doc.BreakParent)
		}
	}

	return doc.Concat(
		doc.Concat(head...),
		doc.Indent(doc.Concat(doc.HardLine, printLines(ctx, p, "body", nil))),
		doc.HardLine,
		doc.Text("}"),
	)
}

// printDelimited prints a list that stays on one line when it fits and
// otherwise puts every element on its own line with a trailing comma.
func printDelimited(ctx *format.Context, p *astpath.Path, field, open, closing string, marker comments.Marker) doc.Doc {
	items := ctx.PrintAll(p, field)
	if len(items) == 0 {
		return printEmptyDelimited(ctx, p, open, closing, marker)
	}
	return doc.Group(doc.Concat(
		doc.Text(open),
		doc.Indent(doc.Concat(doc.SoftLine, doc.Join(doc.Concat(comma, doc.Line), items))),
		doc.IfBreak(comma, nil),
		doc.SoftLine,
		doc.Text(closing),
	))
}

// printBraced is printDelimited with blanks inside the braces when flat.
func printBraced(ctx *format.Context, p *astpath.Path, field string, marker comments.Marker) doc.Doc {
	items := ctx.PrintAll(p, field)
	if len(items) == 0 {
		return printEmptyDelimited(ctx, p, "{", "}", marker)
	}
	return doc.Group(doc.Concat(
		doc.Text("{"),
		doc.Indent(doc.Concat(doc.Line, doc.Join(doc.Concat(comma, doc.Line), items))),
		doc.IfBreak(comma, nil),
		doc.Line,
		doc.Text("}"),
	))
}

// printEmptyDelimited prints an empty list together with the comments
// found between its delimiters.
func printEmptyDelimited(ctx *format.Context, p *astpath.Path, open, closing string, marker comments.Marker) doc.Doc {
	dangling := ctx.Comments.Dangling(p.Node(), marker)
	if len(dangling) == 0 {
		return doc.Text(open + closing)
	}

	inline := true
	for _, c := range dangling {
		if !c.IsBlock() || c.Placement == comments.PlacementOwnLine {
			inline = false
		}
	}
	if inline {
		return doc.Concat(doc.Text(open), ctx.PrintDanglingComments(p, marker, true), doc.Text(closing))
	}
	return doc.Concat(
		doc.Text(open),
		ctx.PrintDanglingComments(p, marker, false),
		doc.HardLine,
		doc.Text(closing),
	)
}

func printTuple(ctx *format.Context, p *astpath.Path, size int) doc.Doc {
	if size != 1 {
		return printDelimited(ctx, p, "items", "(", ")", comments.MarkerItems)
	}
	// A one-element tuple keeps its comma.
	return doc.Group(doc.Concat(
		doc.Text("("),
		doc.Indent(doc.Concat(doc.SoftLine, ctx.Print(p, "items", 0))),
		comma,
		doc.SoftLine,
		doc.Text(")"),
	))
}

func printUseTree(ctx *format.Context, p *astpath.Path, n *UseTree) doc.Doc {
	parts := []doc.Doc{doc.Join(doc.Text("::"), ctx.PrintAll(p, "segments"))}
	if len(n.Path) > 0 && (n.Glob || n.HasList) {
		parts = append(parts, doc.Text("::"))
	}
	switch {
	case n.Glob:
		parts = append(parts, doc.Text("*"))
	case n.HasList:
		parts = append(parts, printDelimited(ctx, p, "specifiers", "{", "}", comments.MarkerSpecifiers))
	}
	return doc.Concat(parts...)
}

func printPathType(ctx *format.Context, p *astpath.Path, n *PathType) doc.Doc {
	path := doc.Join(doc.Text("::"), ctx.PrintAll(p, "segments"))
	if !n.HasArgs {
		return path
	}
	return doc.Concat(path, printDelimited(ctx, p, "typeArguments", "<", ">", comments.MarkerTypeArguments))
}

func printIf(ctx *format.Context, p *astpath.Path, n *IfExpr) doc.Doc {
	parts := []doc.Doc{
		doc.Text("if "),
		ctx.Print(p, "condition"),
		space,
		ctx.Print(p, "then"),
	}
	if n.Else == nil {
		return doc.Concat(parts...)
	}

	if dangling := ctx.PrintDanglingComments(p, comments.MarkerNone, true); dangling != nil {
		parts = append(parts, doc.HardLine, dangling, doc.HardLine)
	} else {
		parts = append(parts, space)
	}
	return doc.Concat(append(parts, doc.Text("else "), ctx.Print(p, "else"))...)
}

func printMatch(ctx *format.Context, p *astpath.Path, n *MatchExpr) doc.Doc {
	armComma := func(arm tree.Node) doc.Doc {
		if _, isBlock := arm.(*MatchArm).Body.(*Block); isBlock {
			return nil
		}
		return comma
	}
	return doc.Concat(
		doc.Text("match "),
		ctx.Print(p, "scrutinee"),
		space,
		printBody(ctx, p, "cases", comments.MarkerCases, armComma),
	)
}

var binaryOpPrec = map[string]int{
	"||": 1,
	"&&": 2,
	"==": 3, "!=": 3, "<": 3, "<=": 3, ">": 3, ">=": 3,
	"|":  4,
	"^":  5,
	"&":  6,
	"<<": 7, ">>": 7,
	"+": 8, "-": 8,
	"*": 9, "/": 9, "%": 9,
}

func printBinary(ctx *format.Context, p *astpath.Path, n *BinaryExpr) doc.Doc {
	if _, ok := binaryOpPrec[n.Op]; !ok {
		// Assignment.
		return doc.Concat(ctx.Print(p, "left"), doc.Text(" "+n.Op+" "), ctx.Print(p, "right"))
	}
	parts := binaryParts(ctx, p)
	return doc.Group(doc.Concat(parts[0], doc.Indent(doc.Concat(parts[1:]...))))
}

// binaryParts flattens a left-leaning chain of operators of the same
// precedence into the first operand followed by one part per operator.
func binaryParts(ctx *format.Context, p *astpath.Path) []doc.Doc {
	n := p.Node().(*BinaryExpr)

	var parts []doc.Doc
	left, isBinary := n.Left.(*BinaryExpr)
	if isBinary && binaryOpPrec[left.Op] == binaryOpPrec[n.Op] && !ctx.Comments.HasComments(left, nil) {
		parts = astpath.Call(p, func(p *astpath.Path) []doc.Doc {
			return binaryParts(ctx, p)
		}, "left")
	} else {
		parts = []doc.Doc{ctx.Print(p, "left")}
	}
	return append(parts, doc.Concat(doc.Line, doc.Text(n.Op+" "), ctx.Print(p, "right")))
}

type memberChain struct {
	head  doc.Doc
	links []doc.Doc
	calls int
	// broken is set when a link starts with own-line comments.
	broken bool
}

// printMemberChain prints `a.b().c()?` as a head followed by links. With
// two or more calls the links move to their own lines when the chain does
// not fit.
func printMemberChain(ctx *format.Context, p *astpath.Path) doc.Doc {
	chain := chainParts(ctx, p, true)
	if chain.calls < 2 && !chain.broken {
		return doc.Concat(append([]doc.Doc{chain.head}, chain.links...)...)
	}

	links := make([]doc.Doc, 0, 2*len(chain.links))
	for _, link := range chain.links {
		links = append(links, doc.SoftLine, link)
	}
	return doc.Group(doc.Concat(chain.head, doc.Indent(doc.Concat(links...))))
}

func chainParts(ctx *format.Context, p *astpath.Path, top bool) memberChain {
	n := p.Node()
	if !top && (!isChainLink(n) || ctx.Comments.HasComments(n, attachedAround)) {
		return memberChain{head: ctx.Print(p)}
	}

	inner := func(p *astpath.Path) memberChain { return chainParts(ctx, p, false) }
	switch n := n.(type) {
	case *MethodCallExpr:
		chain := astpath.Call(p, inner, "receiver")
		var typeArgs doc.Doc
		if n.HasTypeArgs {
			typeArgs = doc.Concat(doc.Text("::"), printDelimited(ctx, p, "typeArguments", "<", ">", comments.MarkerTypeArguments))
		}
		chain.addLink(ctx, p, doc.Concat(
			doc.Text("."),
			ctx.Print(p, "method"),
			typeArgs,
			printDelimited(ctx, p, "arguments", "(", ")", comments.MarkerArguments),
		))
		chain.calls++
		return chain
	case *FieldExpr:
		chain := astpath.Call(p, inner, "receiver")
		chain.addLink(ctx, p, doc.Concat(doc.Text("."), ctx.Print(p, "field")))
		return chain
	case *TryExpr:
		chain := astpath.Call(p, inner, "expr")
		if last := len(chain.links) - 1; last >= 0 {
			chain.links[last] = doc.Concat(chain.links[last], doc.Text("?"))
		} else {
			chain.head = doc.Concat(chain.head, doc.Text("?"))
		}
		return chain
	}

	invariant.Unreachable("kind", n.Kind())
	return memberChain{}
}

// addLink appends the link printed for the node at p, preceded by the
// comments written on their own lines before its dot. In a chain the
// comments sit at the links' indentation and the chain breaks. A lone
// member access indents them below its receiver.
func (chain *memberChain) addLink(ctx *format.Context, p *astpath.Path, link doc.Doc) {
	var parts []doc.Doc
	for _, c := range ctx.Comments.Filter(p.Node(), beforeDot) {
		parts = append(parts, ctx.PrintComment(c))
	}
	hoisted := doc.Join(doc.HardLine, parts)
	switch {
	case len(parts) == 0:
	case ctx.IsMethodMember(p.Node()):
		link = doc.Concat(hoisted, doc.HardLine, link)
		chain.broken = true
	default:
		link = doc.Indent(doc.Concat(doc.HardLine, hoisted, doc.HardLine, link))
	}
	chain.links = append(chain.links, link)
}

// beforeDot matches the unmarked dangling comments of a chain link.
func beforeDot(c *comments.Comment) bool {
	return c.IsDangling() && c.Marker == comments.MarkerNone
}

// attachedAround matches leading and trailing comments, which ctx.Print
// wraps around a node. Dangling comments are printed by the link itself.
func attachedAround(c *comments.Comment) bool {
	return !c.IsDangling()
}

func isChainLink(n tree.Node) bool {
	switch n.(type) {
	case *MethodCallExpr, *FieldExpr, *TryExpr:
		return true
	default:
		return false
	}
}
