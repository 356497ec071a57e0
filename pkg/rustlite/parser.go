package rustlite

import (
	"errors"

	"github.com/yaklabco/rsfmt/pkg/comments"
	"github.com/yaklabco/rsfmt/pkg/span"
)

type parser struct {
	src  []byte
	idx  *span.Index
	toks []Token
	pos  int

	// noStruct disables struct literals while parsing the condition of an
	// if or the scrutinee of a match, where `{` opens the body.
	noStruct bool
}

// bailout carries a syntax error out of the recursive descent.
type bailout struct {
	err *SyntaxError
}

// Parse parses src into a syntax tree and returns the comments found in
// it, in source order.
func Parse(src []byte) (*File, []*comments.Comment, error) {
	toks, list, err := Lex(src)
	if err != nil {
		return nil, nil, err
	}

	p := &parser{src: src, idx: span.NewIndex(src), toks: toks}
	file, err := p.run()
	if err != nil {
		return nil, nil, err
	}
	return file, list, nil
}

func (p *parser) run() (file *File, err error) {
	defer func() {
		if r := recover(); r != nil {
			b, ok := r.(bailout)
			if !ok {
				panic(r)
			}
			err = b.err
		}
	}()
	return p.parseFile(), nil
}

// IsSyntaxError reports whether err is a *SyntaxError.
func IsSyntaxError(err error) bool {
	var syntaxErr *SyntaxError
	return errors.As(err, &syntaxErr)
}

func (p *parser) peek() Token {
	return p.toks[p.pos]
}

func (p *parser) peekN(n int) Token {
	if p.pos+n < len(p.toks) {
		return p.toks[p.pos+n]
	}
	return p.toks[len(p.toks)-1]
}

func (p *parser) at(kind TokenKind) bool {
	return p.peek().Kind == kind
}

func (p *parser) next() Token {
	tok := p.peek()
	if tok.Kind != TokenEOF {
		p.pos++
	}
	return tok
}

func (p *parser) accept(kind TokenKind) bool {
	if p.at(kind) {
		p.next()
		return true
	}
	return false
}

func (p *parser) expect(kind TokenKind) Token {
	if !p.at(kind) {
		p.failf("expected %s, found %s", kind, p.describe(p.peek()))
	}
	return p.next()
}

// prevEnd is the end offset of the last consumed token.
func (p *parser) prevEnd() int {
	if p.pos == 0 {
		return 0
	}
	return p.toks[p.pos-1].Span.End
}

func (p *parser) spanFrom(start int) span.Span {
	return span.New(start, p.prevEnd())
}

func (p *parser) describe(tok Token) string {
	if tok.Kind == TokenEOF {
		return tok.Kind.String()
	}
	return "`" + tok.Text + "`"
}

func (p *parser) failf(format string, args ...any) {
	panic(bailout{err: newSyntaxError(p.idx, p.peek().Span.Start, format, args...)})
}

// splitShr turns a `>>` token into two `>` tokens, for nested generics.
func (p *parser) splitShr() {
	tok := p.peek()
	first := Token{Kind: TokenGt, Span: span.New(tok.Span.Start, tok.Span.Start+1), Text: ">"}
	second := Token{Kind: TokenGt, Span: span.New(tok.Span.Start+1, tok.Span.End), Text: ">"}

	toks := make([]Token, 0, len(p.toks)+1)
	toks = append(toks, p.toks[:p.pos]...)
	toks = append(toks, first, second)
	toks = append(toks, p.toks[p.pos+1:]...)
	p.toks = toks
}

func (p *parser) expectGt() {
	if p.at(TokenShr) {
		p.splitShr()
	}
	if p.at(TokenGtEq) {
		p.failf("expected `>`, found `>=`")
	}
	p.expect(TokenGt)
}

func (p *parser) parseFile() *File {
	file := &File{}
	for !p.at(TokenEOF) {
		if p.accept(TokenSemi) {
			continue
		}
		file.Items = append(file.Items, p.parseItem())
	}
	file.Loc = span.New(0, len(p.src))
	return file
}

func (p *parser) startsItem() bool {
	switch p.peek().Kind {
	case TokenPub, TokenFn, TokenStruct, TokenUse, TokenImpl:
		return true
	default:
		return false
	}
}

func (p *parser) parseItem() Item {
	start := p.peek().Span.Start
	pub := p.accept(TokenPub)

	switch p.peek().Kind {
	case TokenFn:
		return p.parseFn(start, pub)
	case TokenStruct:
		return p.parseStruct(start, pub)
	case TokenUse:
		return p.parseUse(start, pub)
	case TokenImpl:
		if pub {
			p.failf("`impl` cannot be `pub`")
		}
		return p.parseImpl(start)
	default:
		p.failf("expected item, found %s", p.describe(p.peek()))
		return nil
	}
}

func (p *parser) parseIdent() *Ident {
	tok := p.expect(TokenIdent)
	return &Ident{Base: Base{tok.Span}, Name: tok.Text}
}

func (p *parser) parseFn(start int, pub bool) *FnDecl {
	p.expect(TokenFn)
	fn := &FnDecl{Pub: pub, Name: p.parseIdent()}

	open := p.expect(TokenLParen)
	for !p.at(TokenRParen) {
		fn.Params = append(fn.Params, p.parseParam())
		if !p.accept(TokenComma) {
			break
		}
	}
	closing := p.expect(TokenRParen)
	fn.ParamsDelims = span.New(open.Span.Start, closing.Span.End)

	if p.accept(TokenArrow) {
		fn.Ret = p.parseType()
	}
	fn.Body = p.parseBlock()
	fn.Loc = p.spanFrom(start)
	return fn
}

func (p *parser) parseParam() *Param {
	start := p.peek().Span.Start
	param := &Param{}

	if p.isSelfRef() {
		param.Pattern = p.parseSelfRef()
		param.Loc = p.spanFrom(start)
		return param
	}

	param.Pattern = p.parsePattern()
	if ident, ok := param.Pattern.(*Ident); ok && ident.Name == "self" && !p.at(TokenColon) {
		param.Loc = p.spanFrom(start)
		return param
	}
	p.expect(TokenColon)
	param.Type = p.parseType()
	param.Loc = p.spanFrom(start)
	return param
}

// isSelfRef matches `&self`, `&mut self`, `&'a self` and `&'a mut self`.
func (p *parser) isSelfRef() bool {
	if !p.at(TokenAmp) {
		return false
	}
	i := 1
	if p.peekN(i).Kind == TokenLifetime {
		i++
	}
	if p.peekN(i).Kind == TokenMut {
		i++
	}
	tok := p.peekN(i)
	return tok.Kind == TokenIdent && tok.Text == "self"
}

func (p *parser) parseSelfRef() Expr {
	start := p.next().Span.Start
	op := "&"
	if p.at(TokenLifetime) {
		op += p.next().Text + " "
	}
	if p.accept(TokenMut) {
		op += "mut "
	}
	self := p.parseIdent()
	return &UnaryExpr{Base: Base{p.spanFrom(start)}, Op: op, X: self}
}

func (p *parser) parseStruct(start int, pub bool) *StructDecl {
	p.expect(TokenStruct)
	decl := &StructDecl{Pub: pub, Name: p.parseIdent()}

	if p.accept(TokenSemi) {
		decl.Unit = true
		decl.Loc = p.spanFrom(start)
		return decl
	}

	open := p.expect(TokenLBrace)
	for !p.at(TokenRBrace) {
		decl.Members = append(decl.Members, p.parseFieldDecl())
		if !p.accept(TokenComma) {
			break
		}
	}
	closing := p.expect(TokenRBrace)
	decl.MembersDelims = span.New(open.Span.Start, closing.Span.End)
	decl.Loc = p.spanFrom(start)
	return decl
}

func (p *parser) parseFieldDecl() *FieldDecl {
	start := p.peek().Span.Start
	field := &FieldDecl{Pub: p.accept(TokenPub)}
	field.Name = p.parseIdent()
	p.expect(TokenColon)
	field.Type = p.parseType()
	field.Loc = p.spanFrom(start)
	return field
}

func (p *parser) parseUse(start int, pub bool) *UseDecl {
	p.expect(TokenUse)
	decl := &UseDecl{Pub: pub, Tree: p.parseUseTree()}
	p.expect(TokenSemi)
	decl.Loc = p.spanFrom(start)
	return decl
}

func (p *parser) parseUseTree() *UseTree {
	start := p.peek().Span.Start
	useTree := &UseTree{}

	for {
		switch {
		case p.at(TokenStar):
			p.next()
			useTree.Glob = true
		case p.at(TokenLBrace):
			open := p.next()
			useTree.HasList = true
			for !p.at(TokenRBrace) {
				useTree.List = append(useTree.List, p.parseUseTree())
				if !p.accept(TokenComma) {
					break
				}
			}
			closing := p.expect(TokenRBrace)
			useTree.ListDelims = span.New(open.Span.Start, closing.Span.End)
		default:
			useTree.Path = append(useTree.Path, p.parseIdent())
			if p.accept(TokenColonColon) {
				continue
			}
		}
		break
	}

	useTree.Loc = p.spanFrom(start)
	return useTree
}

func (p *parser) parseImpl(start int) *ImplBlock {
	p.expect(TokenImpl)
	impl := &ImplBlock{Type: p.parseType()}

	open := p.expect(TokenLBrace)
	for !p.at(TokenRBrace) {
		fnStart := p.peek().Span.Start
		pub := p.accept(TokenPub)
		if !p.at(TokenFn) {
			p.failf("expected `fn` in impl block, found %s", p.describe(p.peek()))
		}
		impl.Items = append(impl.Items, p.parseFn(fnStart, pub))
	}
	closing := p.expect(TokenRBrace)
	impl.ItemsDelims = span.New(open.Span.Start, closing.Span.End)
	impl.Loc = p.spanFrom(start)
	return impl
}

func (p *parser) parseBlock() *Block {
	open := p.expect(TokenLBrace)
	saved := p.noStruct
	p.noStruct = false
	defer func() { p.noStruct = saved }()

	block := &Block{}
	for !p.at(TokenRBrace) {
		if p.accept(TokenSemi) {
			continue
		}
		if p.at(TokenEOF) {
			p.failf("unclosed block")
		}
		block.Stmts = append(block.Stmts, p.parseStmt())
	}
	p.expect(TokenRBrace)
	block.Loc = p.spanFrom(open.Span.Start)
	return block
}

func (p *parser) parseStmt() Stmt {
	if p.startsItem() {
		return p.parseItem()
	}
	start := p.peek().Span.Start

	if p.accept(TokenLet) {
		let := &LetStmt{Pattern: p.parsePattern()}
		if p.accept(TokenColon) {
			let.Type = p.parseType()
		}
		if p.accept(TokenAssign) {
			let.Init = p.parseExpr()
		}
		p.expect(TokenSemi)
		let.Loc = p.spanFrom(start)
		return let
	}

	// A block-like expression at the start of a statement ends the
	// statement; `if c {} *x = 1;` is two statements.
	var x Expr
	blockLike := p.at(TokenIf) || p.at(TokenMatch) || p.at(TokenLBrace)
	if blockLike {
		x = p.parsePrimary()
	} else {
		x = p.parseExpr()
	}

	stmt := &ExprStmt{X: x, Semi: p.accept(TokenSemi)}
	if !stmt.Semi && !blockLike && !p.at(TokenRBrace) {
		p.failf("expected `;`, found %s", p.describe(p.peek()))
	}
	stmt.Loc = p.spanFrom(start)
	return stmt
}

// parsePattern parses a pattern. Patterns share the expression grammar
// below assignment, plus `mut` and `ref` bindings.
func (p *parser) parsePattern() Expr {
	start := p.peek().Span.Start
	if p.at(TokenMut) || (p.at(TokenIdent) && p.peek().Text == "ref") {
		binding := &BindingPattern{}
		if p.at(TokenIdent) {
			p.next()
			binding.Ref = true
		}
		binding.Mut = p.accept(TokenMut)
		binding.Name = p.parseIdent()
		binding.Loc = p.spanFrom(start)
		return binding
	}
	return p.parseRange()
}

func (p *parser) parseExpr() Expr {
	return p.parseAssign()
}

var assignOps = map[TokenKind]string{
	TokenAssign:        "=",
	TokenPlusAssign:    "+=",
	TokenMinusAssign:   "-=",
	TokenStarAssign:    "*=",
	TokenSlashAssign:   "/=",
	TokenPercentAssign: "%=",
}

func (p *parser) parseAssign() Expr {
	start := p.peek().Span.Start
	left := p.parseRange()
	op, ok := assignOps[p.peek().Kind]
	if !ok {
		return left
	}
	p.next()
	right := p.parseAssign()
	return &BinaryExpr{Base: Base{p.spanFrom(start)}, Op: op, Left: left, Right: right}
}

func (p *parser) parseRange() Expr {
	start := p.peek().Span.Start

	var left Expr
	if !p.at(TokenDotDot) && !p.at(TokenDotDotEq) {
		left = p.parseBinary(lowestBinaryPrec)
	}
	if !p.at(TokenDotDot) && !p.at(TokenDotDotEq) {
		return left
	}

	rng := &RangeExpr{Start: left, Inclusive: p.next().Kind == TokenDotDotEq}
	if p.startsExpr() {
		rng.End = p.parseBinary(lowestBinaryPrec)
	}
	rng.Loc = p.spanFrom(start)
	return rng
}

const lowestBinaryPrec = 1

var binaryPrec = map[TokenKind]int{
	TokenPipePipe: 1,
	TokenAmpAmp:   2,
	TokenEqEq:     3,
	TokenBangEq:   3,
	TokenLt:       3,
	TokenLtEq:     3,
	TokenGt:       3,
	TokenGtEq:     3,
	TokenPipe:     4,
	TokenCaret:    5,
	TokenAmp:      6,
	TokenShl:      7,
	TokenShr:      7,
	TokenPlus:     8,
	TokenMinus:    8,
	TokenStar:     9,
	TokenSlash:    9,
	TokenPercent:  9,
}

func (p *parser) parseBinary(minPrec int) Expr {
	start := p.peek().Span.Start
	left := p.parseCast()
	for {
		tok := p.peek()
		prec, ok := binaryPrec[tok.Kind]
		if !ok || prec < minPrec {
			return left
		}
		p.next()
		right := p.parseBinary(prec + 1)
		left = &BinaryExpr{Base: Base{p.spanFrom(start)}, Op: tok.Text, Left: left, Right: right}
	}
}

func (p *parser) parseCast() Expr {
	start := p.peek().Span.Start
	x := p.parseUnary()
	for p.accept(TokenAs) {
		typ := p.parseType()
		x = &CastExpr{Base: Base{p.spanFrom(start)}, X: x, Type: typ}
	}
	return x
}

func (p *parser) parseUnary() Expr {
	start := p.peek().Span.Start
	var op string
	switch p.peek().Kind {
	case TokenMinus, TokenBang, TokenStar:
		op = p.next().Text
	case TokenAmp:
		p.next()
		op = "&"
		if p.accept(TokenMut) {
			op = "&mut "
		}
	case TokenAmpAmp:
		// `&&x` is a reference to a reference.
		tok := p.next()
		innerOp := "&"
		if p.accept(TokenMut) {
			innerOp = "&mut "
		}
		inner := &UnaryExpr{Op: innerOp, X: p.parseUnary()}
		inner.Loc = span.New(tok.Span.Start+1, p.prevEnd())
		return &UnaryExpr{Base: Base{p.spanFrom(start)}, Op: "&", X: inner}
	default:
		return p.parsePostfix(p.parsePrimary())
	}
	x := p.parseUnary()
	return &UnaryExpr{Base: Base{p.spanFrom(start)}, Op: op, X: x}
}

func (p *parser) parsePostfix(x Expr) Expr {
	start := x.Span().Start
	for {
		switch p.peek().Kind {
		case TokenLParen:
			call := &CallExpr{Callee: x}
			call.Args, call.ArgsDelims = p.parseExprList(TokenLParen, TokenRParen)
			call.Loc = p.spanFrom(start)
			x = call
		case TokenDot:
			p.next()
			x = p.parseDotSuffix(start, x)
		case TokenLBracket:
			p.next()
			index := &IndexExpr{X: x, Index: p.parseNested()}
			p.expect(TokenRBracket)
			index.Loc = p.spanFrom(start)
			x = index
		case TokenQuestion:
			p.next()
			x = &TryExpr{Base: Base{p.spanFrom(start)}, X: x}
		default:
			return x
		}
	}
}

func (p *parser) parseDotSuffix(start int, receiver Expr) Expr {
	var name *Ident
	switch tok := p.peek(); tok.Kind {
	case TokenIdent, TokenInt:
		p.next()
		name = &Ident{Base: Base{tok.Span}, Name: tok.Text}
	default:
		p.failf("expected field or method name, found %s", p.describe(tok))
	}

	if !p.at(TokenLParen) && !p.at(TokenColonColon) {
		return &FieldExpr{Base: Base{p.spanFrom(start)}, Receiver: receiver, Field: name}
	}

	call := &MethodCallExpr{Receiver: receiver, Method: name}
	if p.accept(TokenColonColon) {
		call.HasTypeArgs = true
		call.TypeArgs, call.TypeArgsDelims = p.parseTypeArgs()
	}
	call.Args, call.ArgsDelims = p.parseExprList(TokenLParen, TokenRParen)
	call.Loc = p.spanFrom(start)
	return call
}

// parseNested parses an expression inside delimiters, where struct
// literals are allowed again.
func (p *parser) parseNested() Expr {
	saved := p.noStruct
	p.noStruct = false
	defer func() { p.noStruct = saved }()
	return p.parseExpr()
}

func (p *parser) parseExprList(open, closing TokenKind) ([]Expr, span.Span) {
	first := p.expect(open)
	var list []Expr
	for !p.at(closing) {
		list = append(list, p.parseNested())
		if !p.accept(TokenComma) {
			break
		}
	}
	last := p.expect(closing)
	return list, span.New(first.Span.Start, last.Span.End)
}

func (p *parser) startsExpr() bool {
	switch p.peek().Kind {
	case TokenIdent, TokenInt, TokenFloat, TokenString, TokenChar, TokenTrue, TokenFalse,
		TokenLParen, TokenLBracket, TokenIf, TokenMatch, TokenReturn,
		TokenMinus, TokenBang, TokenStar, TokenAmp, TokenAmpAmp:
		return true
	case TokenLBrace:
		return !p.noStruct
	default:
		return false
	}
}

func (p *parser) parsePrimary() Expr {
	tok := p.peek()
	switch tok.Kind {
	case TokenInt, TokenFloat, TokenString, TokenChar, TokenTrue, TokenFalse:
		p.next()
		return &Literal{Base: Base{tok.Span}, LitKind: tok.Kind, Value: tok.Text}
	case TokenIdent:
		return p.parsePathOrStruct()
	case TokenLParen:
		return p.parseParenOrTuple()
	case TokenLBracket:
		array := &ArrayExpr{}
		array.Elems, array.Delims = p.parseExprList(TokenLBracket, TokenRBracket)
		array.Loc = array.Delims
		return array
	case TokenLBrace:
		return p.parseBlock()
	case TokenIf:
		return p.parseIf()
	case TokenMatch:
		return p.parseMatch()
	case TokenReturn:
		p.next()
		ret := &ReturnExpr{}
		if p.startsExpr() {
			ret.Value = p.parseExpr()
		}
		ret.Loc = p.spanFrom(tok.Span.Start)
		return ret
	default:
		p.failf("expected expression, found %s", p.describe(tok))
		return nil
	}
}

func (p *parser) parsePathOrStruct() Expr {
	start := p.peek().Span.Start
	segments := []*Ident{p.parseIdent()}
	for p.at(TokenColonColon) && p.peekN(1).Kind == TokenIdent {
		p.next()
		segments = append(segments, p.parseIdent())
	}

	var path Expr = segments[0]
	if len(segments) > 1 {
		path = &PathExpr{Base: Base{p.spanFrom(start)}, Segments: segments}
	}

	if p.noStruct || !p.at(TokenLBrace) || !p.looksLikeStructBody() {
		return path
	}
	return p.parseStructLit(start, path)
}

// looksLikeStructBody reports whether the `{` at the cursor opens a struct
// literal body rather than a block.
func (p *parser) looksLikeStructBody() bool {
	first := p.peekN(1)
	if first.Kind == TokenRBrace {
		return true
	}
	if first.Kind != TokenIdent {
		return false
	}
	switch p.peekN(2).Kind {
	case TokenColon, TokenComma, TokenRBrace:
		return true
	default:
		return false
	}
}

func (p *parser) parseStructLit(start int, path Expr) *StructLit {
	lit := &StructLit{Path: path}
	open := p.expect(TokenLBrace)
	for !p.at(TokenRBrace) {
		fieldStart := p.peek().Span.Start
		field := &FieldInit{Name: p.parseIdent()}
		if p.accept(TokenColon) {
			field.Value = p.parseNested()
		}
		field.Loc = p.spanFrom(fieldStart)
		lit.Inits = append(lit.Inits, field)
		if !p.accept(TokenComma) {
			break
		}
	}
	closing := p.expect(TokenRBrace)
	lit.Delims = span.New(open.Span.Start, closing.Span.End)
	lit.Loc = p.spanFrom(start)
	return lit
}

func (p *parser) parseParenOrTuple() Expr {
	open := p.expect(TokenLParen)
	if p.at(TokenRParen) {
		closing := p.next()
		delims := span.New(open.Span.Start, closing.Span.End)
		return &TupleExpr{Base: Base{delims}, Delims: delims}
	}

	first := p.parseNested()
	if p.at(TokenRParen) {
		p.next()
		return &ParenExpr{Base: Base{p.spanFrom(open.Span.Start)}, X: first}
	}

	elems := []Expr{first}
	for p.accept(TokenComma) && !p.at(TokenRParen) {
		elems = append(elems, p.parseNested())
	}
	closing := p.expect(TokenRParen)
	delims := span.New(open.Span.Start, closing.Span.End)
	return &TupleExpr{Base: Base{delims}, Elems: elems, Delims: delims}
}

func (p *parser) parseCondition() Expr {
	saved := p.noStruct
	p.noStruct = true
	defer func() { p.noStruct = saved }()
	return p.parseExpr()
}

func (p *parser) parseIf() *IfExpr {
	start := p.expect(TokenIf).Span.Start
	ifExpr := &IfExpr{Cond: p.parseCondition(), Then: p.parseBlock()}
	if p.accept(TokenElse) {
		if p.at(TokenIf) {
			ifExpr.Else = p.parseIf()
		} else {
			ifExpr.Else = p.parseBlock()
		}
	}
	ifExpr.Loc = p.spanFrom(start)
	return ifExpr
}

func (p *parser) parseMatch() *MatchExpr {
	start := p.expect(TokenMatch).Span.Start
	match := &MatchExpr{Scrutinee: p.parseCondition()}

	open := p.expect(TokenLBrace)
	saved := p.noStruct
	p.noStruct = false
	for !p.at(TokenRBrace) {
		arm := p.parseArm()
		match.Arms = append(match.Arms, arm)
		if p.accept(TokenComma) {
			continue
		}
		if _, isBlock := arm.Body.(*Block); !isBlock && !p.at(TokenRBrace) {
			p.failf("expected `,` after match arm, found %s", p.describe(p.peek()))
		}
	}
	p.noStruct = saved
	closing := p.expect(TokenRBrace)
	match.ArmsDelims = span.New(open.Span.Start, closing.Span.End)
	match.Loc = p.spanFrom(start)
	return match
}

func (p *parser) parseArm() *MatchArm {
	start := p.peek().Span.Start
	p.accept(TokenPipe)
	arm := &MatchArm{Pattern: p.parsePattern()}
	if p.accept(TokenIf) {
		arm.Guard = p.parseExpr()
	}
	p.expect(TokenFatArrow)
	arm.Body = p.parseExpr()
	arm.Loc = p.spanFrom(start)
	return arm
}

func (p *parser) parseType() Type {
	start := p.peek().Span.Start
	switch p.peek().Kind {
	case TokenAmp, TokenAmpAmp:
		double := p.next().Kind == TokenAmpAmp
		ref := &RefType{}
		if p.at(TokenLifetime) {
			tok := p.next()
			ref.Lifetime = &Lifetime{Base: Base{tok.Span}, Name: tok.Text}
		}
		ref.Mut = p.accept(TokenMut)
		ref.Elem = p.parseType()
		if double {
			ref.Loc = span.New(start+1, p.prevEnd())
			return &RefType{Base: Base{p.spanFrom(start)}, Elem: ref}
		}
		ref.Loc = p.spanFrom(start)
		return ref
	case TokenLBracket:
		p.next()
		slice := &SliceType{Elem: p.parseType()}
		if p.accept(TokenSemi) {
			slice.Len = p.parseNested()
		}
		p.expect(TokenRBracket)
		slice.Loc = p.spanFrom(start)
		return slice
	case TokenLParen:
		open := p.next()
		tuple := &TupleType{}
		for !p.at(TokenRParen) {
			tuple.Elems = append(tuple.Elems, p.parseType())
			if !p.accept(TokenComma) {
				break
			}
		}
		closing := p.expect(TokenRParen)
		tuple.Delims = span.New(open.Span.Start, closing.Span.End)
		tuple.Loc = tuple.Delims
		return tuple
	case TokenLifetime:
		tok := p.next()
		return &Lifetime{Base: Base{tok.Span}, Name: tok.Text}
	case TokenIdent:
		return p.parsePathType()
	default:
		p.failf("expected type, found %s", p.describe(p.peek()))
		return nil
	}
}

func (p *parser) parsePathType() *PathType {
	start := p.peek().Span.Start
	path := &PathType{Segments: []*Ident{p.parseIdent()}}
	for p.accept(TokenColonColon) {
		path.Segments = append(path.Segments, p.parseIdent())
	}
	if p.at(TokenLt) {
		path.HasArgs = true
		path.Args, path.ArgsDelims = p.parseTypeArgs()
	}
	path.Loc = p.spanFrom(start)
	return path
}

func (p *parser) parseTypeArgs() ([]Type, span.Span) {
	open := p.expect(TokenLt)
	var args []Type
	for !p.at(TokenGt) && !p.at(TokenShr) {
		args = append(args, p.parseType())
		if !p.accept(TokenComma) {
			break
		}
	}
	p.expectGt()
	return args, span.New(open.Span.Start, p.prevEnd())
}
