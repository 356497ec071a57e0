package rustlite

import (
	"github.com/yaklabco/rsfmt/pkg/span"
)

// TokenKind identifies a lexical token.
type TokenKind int

// Token kinds.
const (
	TokenEOF TokenKind = iota
	TokenIdent
	TokenLifetime
	TokenInt
	TokenFloat
	TokenString
	TokenChar

	// Keywords.
	TokenFn
	TokenPub
	TokenStruct
	TokenImpl
	TokenUse
	TokenLet
	TokenMut
	TokenIf
	TokenElse
	TokenMatch
	TokenReturn
	TokenTrue
	TokenFalse
	TokenAs

	// Punctuation and operators.
	TokenLParen
	TokenRParen
	TokenLBrace
	TokenRBrace
	TokenLBracket
	TokenRBracket
	TokenComma
	TokenSemi
	TokenColon
	TokenColonColon
	TokenDot
	TokenDotDot
	TokenDotDotEq
	TokenArrow
	TokenFatArrow
	TokenQuestion
	TokenAssign
	TokenPlusAssign
	TokenMinusAssign
	TokenStarAssign
	TokenSlashAssign
	TokenPercentAssign
	TokenEqEq
	TokenBangEq
	TokenLt
	TokenLtEq
	TokenGt
	TokenGtEq
	TokenPlus
	TokenMinus
	TokenStar
	TokenSlash
	TokenPercent
	TokenBang
	TokenAmp
	TokenAmpAmp
	TokenPipe
	TokenPipePipe
	TokenCaret
	TokenShl
	TokenShr
)

var keywords = map[string]TokenKind{
	"fn":     TokenFn,
	"pub":    TokenPub,
	"struct": TokenStruct,
	"impl":   TokenImpl,
	"use":    TokenUse,
	"let":    TokenLet,
	"mut":    TokenMut,
	"if":     TokenIf,
	"else":   TokenElse,
	"match":  TokenMatch,
	"return": TokenReturn,
	"true":   TokenTrue,
	"false":  TokenFalse,
	"as":     TokenAs,
}

// Operators ordered longest first so that the lexer matches greedily.
var operators = []struct {
	text string
	kind TokenKind
}{
	{"..=", TokenDotDotEq},
	{"::", TokenColonColon},
	{"..", TokenDotDot},
	{"->", TokenArrow},
	{"=>", TokenFatArrow},
	{"+=", TokenPlusAssign},
	{"-=", TokenMinusAssign},
	{"*=", TokenStarAssign},
	{"/=", TokenSlashAssign},
	{"%=", TokenPercentAssign},
	{"==", TokenEqEq},
	{"!=", TokenBangEq},
	{"<=", TokenLtEq},
	{">=", TokenGtEq},
	{"&&", TokenAmpAmp},
	{"||", TokenPipePipe},
	{"<<", TokenShl},
	{">>", TokenShr},
	{"(", TokenLParen},
	{")", TokenRParen},
	{"{", TokenLBrace},
	{"}", TokenRBrace},
	{"[", TokenLBracket},
	{"]", TokenRBracket},
	{",", TokenComma},
	{";", TokenSemi},
	{":", TokenColon},
	{".", TokenDot},
	{"?", TokenQuestion},
	{"=", TokenAssign},
	{"<", TokenLt},
	{">", TokenGt},
	{"+", TokenPlus},
	{"-", TokenMinus},
	{"*", TokenStar},
	{"/", TokenSlash},
	{"%", TokenPercent},
	{"!", TokenBang},
	{"&", TokenAmp},
	{"|", TokenPipe},
	{"^", TokenCaret},
}

// Token is one lexical token.
type Token struct {
	Kind TokenKind
	Span span.Span
	Text string
}

func (k TokenKind) String() string {
	switch k {
	case TokenEOF:
		return "end of file"
	case TokenIdent:
		return "identifier"
	case TokenLifetime:
		return "lifetime"
	case TokenInt:
		return "integer literal"
	case TokenFloat:
		return "float literal"
	case TokenString:
		return "string literal"
	case TokenChar:
		return "char literal"
	}
	for text, kind := range keywords {
		if kind == k {
			return "`" + text + "`"
		}
	}
	for _, op := range operators {
		if op.kind == k {
			return "`" + op.text + "`"
		}
	}
	return "unknown token"
}
