package rustlite

import (
	"github.com/yaklabco/rsfmt/pkg/span"
	"github.com/yaklabco/rsfmt/pkg/tree"
)

// Item is a top-level declaration. Items may also appear in blocks.
type Item interface {
	Stmt
	itemNode()
}

// Stmt is a statement of a block.
type Stmt interface {
	tree.Node
	stmtNode()
}

// Expr is an expression or a pattern.
type Expr interface {
	tree.Node
	exprNode()
}

// Type is a type expression.
type Type interface {
	tree.Node
	typeNode()
}

// Base holds the source range shared by every node.
type Base struct {
	Loc span.Span
}

// Span returns the byte range of the node.
func (b Base) Span() span.Span { return b.Loc }

// File is the root of a parsed source file.
type File struct {
	Base
	Items []Item
}

// FnDecl is `[pub] fn name(params) [-> ret] body`.
type FnDecl struct {
	Base
	Pub          bool
	Name         *Ident
	Params       []*Param
	ParamsDelims span.Span
	Ret          Type
	Body         *Block
}

// Param is one function parameter. Type is nil for self parameters.
type Param struct {
	Base
	Pattern Expr
	Type    Type
}

// StructDecl is `[pub] struct Name { fields }` or `struct Name;`.
type StructDecl struct {
	Base
	Pub           bool
	Name          *Ident
	Members       []*FieldDecl
	MembersDelims span.Span
	Unit          bool
}

// FieldDecl is `[pub] name: Type` inside a struct.
type FieldDecl struct {
	Base
	Pub  bool
	Name *Ident
	Type Type
}

// ImplBlock is `impl Type { fns }`.
type ImplBlock struct {
	Base
	Type        Type
	Items       []*FnDecl
	ItemsDelims span.Span
}

// UseDecl is `[pub] use tree;`.
type UseDecl struct {
	Base
	Pub  bool
	Tree *UseTree
}

// UseTree is a path optionally followed by `::*` or `::{...}`.
type UseTree struct {
	Base
	Path       []*Ident
	Glob       bool
	HasList    bool
	List       []*UseTree
	ListDelims span.Span
}

// LetStmt is `let pattern [: Type] [= init];`.
type LetStmt struct {
	Base
	Pattern Expr
	Type    Type
	Init    Expr
}

// ExprStmt is an expression used as a statement.
type ExprStmt struct {
	Base
	X    Expr
	Semi bool
}

// Ident is an identifier, also `_`, `self` and tuple field indices.
type Ident struct {
	Base
	Name string
}

// BindingPattern is `[ref] [mut] name` in a pattern.
type BindingPattern struct {
	Base
	Ref  bool
	Mut  bool
	Name *Ident
}

// PathExpr is `a::b::c`.
type PathExpr struct {
	Base
	Segments []*Ident
}

// Literal is a number, string, char or bool literal kept verbatim.
type Literal struct {
	Base
	LitKind TokenKind
	Value   string
}

// CallExpr is `callee(args)`.
type CallExpr struct {
	Base
	Callee     Expr
	Args       []Expr
	ArgsDelims span.Span
}

// MethodCallExpr is `receiver.method::<T>(args)`.
type MethodCallExpr struct {
	Base
	Receiver       Expr
	Method         *Ident
	HasTypeArgs    bool
	TypeArgs       []Type
	TypeArgsDelims span.Span
	Args           []Expr
	ArgsDelims     span.Span
}

// FieldExpr is `receiver.field`.
type FieldExpr struct {
	Base
	Receiver Expr
	Field    *Ident
}

// IndexExpr is `x[index]`.
type IndexExpr struct {
	Base
	X     Expr
	Index Expr
}

// TryExpr is `x?`.
type TryExpr struct {
	Base
	X Expr
}

// ArrayExpr is `[a, b]`.
type ArrayExpr struct {
	Base
	Elems  []Expr
	Delims span.Span
}

// TupleExpr is `()`, `(a,)` or `(a, b)`.
type TupleExpr struct {
	Base
	Elems  []Expr
	Delims span.Span
}

// ParenExpr is `(x)`.
type ParenExpr struct {
	Base
	X Expr
}

// StructLit is `Path { field: value, .. }`.
type StructLit struct {
	Base
	Path   Expr
	Inits  []*FieldInit
	Delims span.Span
}

// FieldInit is `name: value` or the shorthand `name`.
type FieldInit struct {
	Base
	Name  *Ident
	Value Expr
}

// UnaryExpr is a prefix operator applied to X. Op includes a trailing
// blank for `&mut `.
type UnaryExpr struct {
	Base
	Op string
	X  Expr
}

// BinaryExpr is `left op right`, including assignments.
type BinaryExpr struct {
	Base
	Op    string
	Left  Expr
	Right Expr
}

// RangeExpr is `start..end` or `start..=end`; either bound may be nil.
type RangeExpr struct {
	Base
	Start     Expr
	End       Expr
	Inclusive bool
}

// CastExpr is `x as Type`.
type CastExpr struct {
	Base
	X    Expr
	Type Type
}

// Block is `{ stmts }`.
type Block struct {
	Base
	Stmts []Stmt
}

// IfExpr is `if cond then [else else]`. Else is a *Block or an *IfExpr.
type IfExpr struct {
	Base
	Cond Expr
	Then *Block
	Else Expr
}

// MatchExpr is `match scrutinee { arms }`.
type MatchExpr struct {
	Base
	Scrutinee  Expr
	Arms       []*MatchArm
	ArmsDelims span.Span
}

// MatchArm is `pattern [if guard] => body`.
type MatchArm struct {
	Base
	Pattern Expr
	Guard   Expr
	Body    Expr
}

// ReturnExpr is `return [value]`.
type ReturnExpr struct {
	Base
	Value Expr
}

// PathType is `a::B<T, U>`.
type PathType struct {
	Base
	Segments   []*Ident
	HasArgs    bool
	Args       []Type
	ArgsDelims span.Span
}

// Lifetime is `'a`.
type Lifetime struct {
	Base
	Name string
}

// RefType is `&['a] [mut] T`.
type RefType struct {
	Base
	Lifetime *Lifetime
	Mut      bool
	Elem     Type
}

// SliceType is `[T]`, or the array type `[T; N]` when Len is set.
type SliceType struct {
	Base
	Elem Type
	Len  Expr
}

// TupleType is `()` or `(A, B)`.
type TupleType struct {
	Base
	Elems  []Type
	Delims span.Span
}

func (*FnDecl) itemNode()     {}
func (*StructDecl) itemNode() {}
func (*ImplBlock) itemNode()  {}
func (*UseDecl) itemNode()    {}

func (*FnDecl) stmtNode()     {}
func (*StructDecl) stmtNode() {}
func (*ImplBlock) stmtNode()  {}
func (*UseDecl) stmtNode()    {}
func (*LetStmt) stmtNode()    {}
func (*ExprStmt) stmtNode()   {}

func (*Ident) exprNode()          {}
func (*BindingPattern) exprNode() {}
func (*PathExpr) exprNode()       {}
func (*Literal) exprNode()        {}
func (*CallExpr) exprNode()       {}
func (*MethodCallExpr) exprNode() {}
func (*FieldExpr) exprNode()      {}
func (*IndexExpr) exprNode()      {}
func (*TryExpr) exprNode()        {}
func (*ArrayExpr) exprNode()      {}
func (*TupleExpr) exprNode()      {}
func (*ParenExpr) exprNode()      {}
func (*StructLit) exprNode()      {}
func (*UnaryExpr) exprNode()      {}
func (*BinaryExpr) exprNode()     {}
func (*RangeExpr) exprNode()      {}
func (*CastExpr) exprNode()       {}
func (*Block) exprNode()          {}
func (*IfExpr) exprNode()         {}
func (*MatchExpr) exprNode()      {}
func (*ReturnExpr) exprNode()     {}

func (*PathType) typeNode()  {}
func (*Lifetime) typeNode()  {}
func (*RefType) typeNode()   {}
func (*SliceType) typeNode() {}
func (*TupleType) typeNode() {}

func (*File) Kind() string           { return "File" }
func (*FnDecl) Kind() string         { return "FnDecl" }
func (*Param) Kind() string          { return "Param" }
func (*StructDecl) Kind() string     { return "StructDecl" }
func (*FieldDecl) Kind() string      { return "FieldDecl" }
func (*ImplBlock) Kind() string      { return "ImplBlock" }
func (*UseDecl) Kind() string        { return "UseDecl" }
func (*UseTree) Kind() string        { return "UseTree" }
func (*LetStmt) Kind() string        { return "LetStmt" }
func (*ExprStmt) Kind() string       { return "ExprStmt" }
func (*Ident) Kind() string          { return "Ident" }
func (*BindingPattern) Kind() string { return "BindingPattern" }
func (*PathExpr) Kind() string       { return "PathExpr" }
func (*Literal) Kind() string        { return "Literal" }
func (*CallExpr) Kind() string       { return "CallExpr" }
func (*MethodCallExpr) Kind() string { return "MethodCallExpr" }
func (*FieldExpr) Kind() string      { return "FieldExpr" }
func (*IndexExpr) Kind() string      { return "IndexExpr" }
func (*TryExpr) Kind() string        { return "TryExpr" }
func (*ArrayExpr) Kind() string      { return "ArrayExpr" }
func (*TupleExpr) Kind() string      { return "TupleExpr" }
func (*ParenExpr) Kind() string      { return "ParenExpr" }
func (*StructLit) Kind() string      { return "StructLit" }
func (*FieldInit) Kind() string      { return "FieldInit" }
func (*UnaryExpr) Kind() string      { return "UnaryExpr" }
func (*BinaryExpr) Kind() string     { return "BinaryExpr" }
func (*RangeExpr) Kind() string      { return "RangeExpr" }
func (*CastExpr) Kind() string       { return "CastExpr" }
func (*Block) Kind() string          { return "Block" }
func (*IfExpr) Kind() string         { return "IfExpr" }
func (*MatchExpr) Kind() string      { return "MatchExpr" }
func (*MatchArm) Kind() string       { return "MatchArm" }
func (*ReturnExpr) Kind() string     { return "ReturnExpr" }
func (*PathType) Kind() string       { return "PathType" }
func (*Lifetime) Kind() string       { return "Lifetime" }
func (*RefType) Kind() string        { return "RefType" }
func (*SliceType) Kind() string      { return "SliceType" }
func (*TupleType) Kind() string      { return "TupleType" }

// Fields implements tree.Node.
func (n *File) Fields() []tree.Field {
	return []tree.Field{tree.List("items", n.Items)}
}

// Fields implements tree.Node.
func (n *FnDecl) Fields() []tree.Field {
	return []tree.Field{
		tree.One("name", n.Name),
		tree.DelimitedList("parameters", n.Params, n.ParamsDelims),
		tree.One("returnType", n.Ret),
		tree.One("body", n.Body),
	}
}

// Fields implements tree.Node.
func (n *Param) Fields() []tree.Field {
	return []tree.Field{tree.One("pattern", n.Pattern), tree.One("type", n.Type)}
}

// Fields implements tree.Node.
func (n *StructDecl) Fields() []tree.Field {
	fields := []tree.Field{tree.One("name", n.Name)}
	if n.Unit {
		return append(fields, tree.List("members", n.Members))
	}
	return append(fields, tree.DelimitedList("members", n.Members, n.MembersDelims))
}

// Fields implements tree.Node.
func (n *FieldDecl) Fields() []tree.Field {
	return []tree.Field{tree.One("name", n.Name), tree.One("type", n.Type)}
}

// Fields implements tree.Node.
func (n *ImplBlock) Fields() []tree.Field {
	return []tree.Field{
		tree.One("type", n.Type),
		tree.DelimitedList("items", n.Items, n.ItemsDelims),
	}
}

// Fields implements tree.Node.
func (n *UseDecl) Fields() []tree.Field {
	return []tree.Field{tree.One("tree", n.Tree)}
}

// Fields implements tree.Node.
func (n *UseTree) Fields() []tree.Field {
	fields := []tree.Field{tree.List("segments", n.Path)}
	if n.HasList {
		return append(fields, tree.DelimitedList("specifiers", n.List, n.ListDelims))
	}
	return append(fields, tree.List("specifiers", n.List))
}

// Fields implements tree.Node.
func (n *LetStmt) Fields() []tree.Field {
	return []tree.Field{
		tree.One("pattern", n.Pattern),
		tree.One("type", n.Type),
		tree.One("init", n.Init),
	}
}

// Fields implements tree.Node.
func (n *ExprStmt) Fields() []tree.Field {
	return []tree.Field{tree.One("expr", n.X)}
}

// Fields implements tree.Node.
func (*Ident) Fields() []tree.Field { return nil }

// Fields implements tree.Node.
func (n *BindingPattern) Fields() []tree.Field {
	return []tree.Field{tree.One("name", n.Name)}
}

// Fields implements tree.Node.
func (n *PathExpr) Fields() []tree.Field {
	return []tree.Field{tree.List("segments", n.Segments)}
}

// Fields implements tree.Node.
func (*Literal) Fields() []tree.Field { return nil }

// Fields implements tree.Node.
func (n *CallExpr) Fields() []tree.Field {
	return []tree.Field{
		tree.One("callee", n.Callee),
		tree.DelimitedList("arguments", n.Args, n.ArgsDelims),
	}
}

// Fields implements tree.Node.
func (n *MethodCallExpr) Fields() []tree.Field {
	typeArgs := tree.List("typeArguments", n.TypeArgs)
	if n.HasTypeArgs {
		typeArgs = tree.DelimitedList("typeArguments", n.TypeArgs, n.TypeArgsDelims)
	}
	return []tree.Field{
		tree.One("receiver", n.Receiver),
		tree.One("method", n.Method),
		typeArgs,
		tree.DelimitedList("arguments", n.Args, n.ArgsDelims),
	}
}

// Fields implements tree.Node.
func (n *FieldExpr) Fields() []tree.Field {
	return []tree.Field{tree.One("receiver", n.Receiver), tree.One("field", n.Field)}
}

// Fields implements tree.Node.
func (n *IndexExpr) Fields() []tree.Field {
	return []tree.Field{tree.One("expr", n.X), tree.One("index", n.Index)}
}

// Fields implements tree.Node.
func (n *TryExpr) Fields() []tree.Field {
	return []tree.Field{tree.One("expr", n.X)}
}

// Fields implements tree.Node.
func (n *ArrayExpr) Fields() []tree.Field {
	return []tree.Field{tree.DelimitedList("items", n.Elems, n.Delims)}
}

// Fields implements tree.Node.
func (n *TupleExpr) Fields() []tree.Field {
	return []tree.Field{tree.DelimitedList("items", n.Elems, n.Delims)}
}

// Fields implements tree.Node.
func (n *ParenExpr) Fields() []tree.Field {
	return []tree.Field{tree.One("expr", n.X)}
}

// Fields implements tree.Node.
func (n *StructLit) Fields() []tree.Field {
	return []tree.Field{
		tree.One("path", n.Path),
		tree.DelimitedList("properties", n.Inits, n.Delims),
	}
}

// Fields implements tree.Node.
func (n *FieldInit) Fields() []tree.Field {
	return []tree.Field{tree.One("name", n.Name), tree.One("value", n.Value)}
}

// Fields implements tree.Node.
func (n *UnaryExpr) Fields() []tree.Field {
	return []tree.Field{tree.One("expr", n.X)}
}

// Fields implements tree.Node.
func (n *BinaryExpr) Fields() []tree.Field {
	return []tree.Field{tree.One("left", n.Left), tree.One("right", n.Right)}
}

// Fields implements tree.Node.
func (n *RangeExpr) Fields() []tree.Field {
	return []tree.Field{tree.One("start", n.Start), tree.One("end", n.End)}
}

// Fields implements tree.Node.
func (n *CastExpr) Fields() []tree.Field {
	return []tree.Field{tree.One("expr", n.X), tree.One("type", n.Type)}
}

// Fields implements tree.Node.
func (n *Block) Fields() []tree.Field {
	return []tree.Field{tree.DelimitedList("body", n.Stmts, n.Loc)}
}

// Fields implements tree.Node.
func (n *IfExpr) Fields() []tree.Field {
	return []tree.Field{
		tree.One("condition", n.Cond),
		tree.One("then", n.Then),
		tree.One("else", n.Else),
	}
}

// Fields implements tree.Node.
func (n *MatchExpr) Fields() []tree.Field {
	return []tree.Field{
		tree.One("scrutinee", n.Scrutinee),
		tree.DelimitedList("cases", n.Arms, n.ArmsDelims),
	}
}

// Fields implements tree.Node.
func (n *MatchArm) Fields() []tree.Field {
	return []tree.Field{
		tree.One("pattern", n.Pattern),
		tree.One("guard", n.Guard),
		tree.One("body", n.Body),
	}
}

// Fields implements tree.Node.
func (n *ReturnExpr) Fields() []tree.Field {
	return []tree.Field{tree.One("value", n.Value)}
}

// Fields implements tree.Node.
func (n *PathType) Fields() []tree.Field {
	args := tree.List("typeArguments", n.Args)
	if n.HasArgs {
		args = tree.DelimitedList("typeArguments", n.Args, n.ArgsDelims)
	}
	return []tree.Field{tree.List("segments", n.Segments), args}
}

// Fields implements tree.Node.
func (*Lifetime) Fields() []tree.Field { return nil }

// Fields implements tree.Node.
func (n *RefType) Fields() []tree.Field {
	return []tree.Field{tree.One("lifetime", n.Lifetime), tree.One("elem", n.Elem)}
}

// Fields implements tree.Node.
func (n *SliceType) Fields() []tree.Field {
	return []tree.Field{tree.One("elem", n.Elem), tree.One("len", n.Len)}
}

// Fields implements tree.Node.
func (n *TupleType) Fields() []tree.Field {
	return []tree.Field{tree.DelimitedList("items", n.Elems, n.Delims)}
}
