package rustlite

import (
	"strings"

	"github.com/yaklabco/rsfmt/pkg/comments"
	"github.com/yaklabco/rsfmt/pkg/span"
)

type lexer struct {
	src      []byte
	idx      *span.Index
	pos      int
	tokens   []Token
	comments []*comments.Comment
}

// Lex splits src into tokens and comments. The token list ends with
// TokenEOF.
func Lex(src []byte) ([]Token, []*comments.Comment, error) {
	lx := &lexer{src: src, idx: span.NewIndex(src)}
	if err := lx.run(); err != nil {
		return nil, nil, err
	}
	return lx.tokens, lx.comments, nil
}

func (lx *lexer) run() error {
	for {
		if err := lx.skipTrivia(); err != nil {
			return err
		}
		if lx.pos >= len(lx.src) {
			lx.tokens = append(lx.tokens, Token{Kind: TokenEOF, Span: span.New(lx.pos, lx.pos)})
			return nil
		}
		if err := lx.scanToken(); err != nil {
			return err
		}
	}
}

func (lx *lexer) skipTrivia() error {
	for lx.pos < len(lx.src) {
		switch {
		case isSpaceByte(lx.src[lx.pos]):
			lx.pos++
		case lx.hasPrefix("//"):
			end := span.SkipEverythingButNewline(lx.src, lx.pos, false)
			lx.addComment(end)
		case lx.hasPrefix("/*"):
			end := span.SkipInlineComment(lx.src, lx.pos)
			if end == lx.pos {
				return lx.errorf(lx.pos, "unterminated block comment")
			}
			lx.addComment(end)
		default:
			return nil
		}
	}
	return nil
}

func (lx *lexer) addComment(end int) {
	c := comments.New(span.New(lx.pos, end), lx.src)
	c.Text = strings.TrimRight(c.Text, "\r")
	c.Span.End = c.Span.Start + len(c.Text)
	lx.comments = append(lx.comments, c)
	lx.pos = c.Span.End
}

func (lx *lexer) scanToken() error {
	start := lx.pos
	c := lx.src[lx.pos]

	switch {
	case c == 'r' && (lx.peekAt(1) == '"' || (lx.peekAt(1) == '#' && lx.rawHashesThenQuote(1))):
		return lx.scanRawString(start, 1)
	case c == 'b' && lx.peekAt(1) == 'r' && (lx.peekAt(2) == '"' || lx.peekAt(2) == '#'):
		return lx.scanRawString(start, 2)
	case c == 'b' && lx.peekAt(1) == '"':
		lx.pos++
		return lx.scanString(start)
	case c == 'b' && lx.peekAt(1) == '\'':
		lx.pos++
		return lx.scanChar(start)
	case isIdentStart(c):
		for lx.pos < len(lx.src) && isIdentContinue(lx.src[lx.pos]) {
			lx.pos++
		}
		text := string(lx.src[start:lx.pos])
		kind, isKeyword := keywords[text]
		if !isKeyword {
			kind = TokenIdent
		}
		lx.emit(kind, start)
		return nil
	case isDigit(c):
		lx.scanNumber(start)
		return nil
	case c == '"':
		return lx.scanString(start)
	case c == '\'':
		return lx.scanChar(start)
	}

	for _, op := range operators {
		if lx.hasPrefix(op.text) {
			lx.pos += len(op.text)
			lx.emit(op.kind, start)
			return nil
		}
	}
	return lx.errorf(start, "unexpected character %q", rune(c))
}

func (lx *lexer) scanNumber(start int) {
	if lx.hasPrefix("0x") || lx.hasPrefix("0o") || lx.hasPrefix("0b") {
		lx.pos += 2
		lx.skipSuffix()
		lx.emit(TokenInt, start)
		return
	}

	kind := TokenInt
	lx.skipDigits()

	// A dot followed by a digit continues a float; `1..2` and `pair.0.1`
	// leave the dot alone.
	if lx.peekAt(0) == '.' && isDigit(lx.peekAt(1)) && !lx.followsDot(start) {
		kind = TokenFloat
		lx.pos++
		lx.skipDigits()
	}
	if (lx.peekAt(0) == 'e' || lx.peekAt(0) == 'E') &&
		(isDigit(lx.peekAt(1)) || ((lx.peekAt(1) == '+' || lx.peekAt(1) == '-') && isDigit(lx.peekAt(2)))) {
		kind = TokenFloat
		lx.pos += 2
		lx.skipDigits()
	}

	lx.skipSuffix()
	lx.emit(kind, start)
}

// followsDot reports whether the number starting at start is a tuple field
// index, as in `pair.0`.
func (lx *lexer) followsDot(start int) bool {
	return len(lx.tokens) > 0 && lx.tokens[len(lx.tokens)-1].Kind == TokenDot &&
		lx.tokens[len(lx.tokens)-1].Span.End == start
}

func (lx *lexer) skipDigits() {
	for lx.pos < len(lx.src) && (isDigit(lx.src[lx.pos]) || lx.src[lx.pos] == '_') {
		lx.pos++
	}
}

// skipSuffix skips a type suffix such as u8 or f64, and the digits of a
// prefixed literal.
func (lx *lexer) skipSuffix() {
	for lx.pos < len(lx.src) && isIdentContinue(lx.src[lx.pos]) {
		lx.pos++
	}
}

func (lx *lexer) scanString(start int) error {
	lx.pos++ // opening quote
	for lx.pos < len(lx.src) {
		switch lx.src[lx.pos] {
		case '\\':
			lx.pos += 2
		case '"':
			lx.pos++
			lx.emit(TokenString, start)
			return nil
		default:
			lx.pos++
		}
	}
	return lx.errorf(start, "unterminated string literal")
}

func (lx *lexer) rawHashesThenQuote(offset int) bool {
	i := offset
	for lx.peekAt(i) == '#' {
		i++
	}
	return lx.peekAt(i) == '"'
}

func (lx *lexer) scanRawString(start, prefix int) error {
	lx.pos += prefix
	hashes := 0
	for lx.peekAt(0) == '#' {
		hashes++
		lx.pos++
	}
	if lx.peekAt(0) != '"' {
		return lx.errorf(start, "malformed raw string literal")
	}
	lx.pos++

	closing := "\"" + strings.Repeat("#", hashes)
	end := strings.Index(string(lx.src[lx.pos:]), closing)
	if end < 0 {
		return lx.errorf(start, "unterminated raw string literal")
	}
	lx.pos += end + len(closing)
	lx.emit(TokenString, start)
	return nil
}

func (lx *lexer) scanChar(start int) error {
	// 'a' and '\n' are chars; 'a without a closing quote is a lifetime.
	if lx.peekAt(1) != '\\' && isIdentStart(lx.peekAt(1)) && lx.peekAt(2) != '\'' {
		lx.pos++
		for lx.pos < len(lx.src) && isIdentContinue(lx.src[lx.pos]) {
			lx.pos++
		}
		lx.emit(TokenLifetime, start)
		return nil
	}

	lx.pos++ // opening quote
	for lx.pos < len(lx.src) && lx.src[lx.pos] != '\n' {
		switch lx.src[lx.pos] {
		case '\\':
			lx.pos += 2
		case '\'':
			lx.pos++
			lx.emit(TokenChar, start)
			return nil
		default:
			lx.pos++
		}
	}
	return lx.errorf(start, "unterminated char literal")
}

func (lx *lexer) emit(kind TokenKind, start int) {
	lx.tokens = append(lx.tokens, Token{
		Kind: kind,
		Span: span.New(start, lx.pos),
		Text: string(lx.src[start:lx.pos]),
	})
}

func (lx *lexer) hasPrefix(prefix string) bool {
	return strings.HasPrefix(string(lx.src[lx.pos:min(lx.pos+len(prefix), len(lx.src))]), prefix)
}

func (lx *lexer) peekAt(offset int) byte {
	if lx.pos+offset < len(lx.src) {
		return lx.src[lx.pos+offset]
	}
	return 0
}

func (lx *lexer) errorf(offset int, format string, args ...any) error {
	return newSyntaxError(lx.idx, offset, format, args...)
}

func isSpaceByte(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c >= 0x80
}

func isIdentContinue(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
