package rustlite_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/rsfmt/pkg/rustlite"
)

func kinds(tokens []rustlite.Token) []rustlite.TokenKind {
	out := make([]rustlite.TokenKind, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, tok.Kind)
	}
	return out
}

func TestLex(t *testing.T) {
	t.Parallel()

	type testCase struct {
		name string
		src  string
		want []rustlite.TokenKind
	}

	testCases := []testCase{
		{
			name: "function header",
			src:  "fn main() {}",
			want: []rustlite.TokenKind{
				rustlite.TokenFn, rustlite.TokenIdent, rustlite.TokenLParen, rustlite.TokenRParen,
				rustlite.TokenLBrace, rustlite.TokenRBrace, rustlite.TokenEOF,
			},
		},
		{
			name: "range of idents",
			src:  "a..b",
			want: []rustlite.TokenKind{rustlite.TokenIdent, rustlite.TokenDotDot, rustlite.TokenIdent, rustlite.TokenEOF},
		},
		{
			name: "range of integers",
			src:  "1..=2",
			want: []rustlite.TokenKind{rustlite.TokenInt, rustlite.TokenDotDotEq, rustlite.TokenInt, rustlite.TokenEOF},
		},
		{
			name: "float with exponent",
			src:  "1.5e3",
			want: []rustlite.TokenKind{rustlite.TokenFloat, rustlite.TokenEOF},
		},
		{
			name: "hex with suffix",
			src:  "0xE5u8",
			want: []rustlite.TokenKind{rustlite.TokenInt, rustlite.TokenEOF},
		},
		{
			name: "nested tuple index",
			src:  "t.0.1",
			want: []rustlite.TokenKind{
				rustlite.TokenIdent, rustlite.TokenDot, rustlite.TokenInt,
				rustlite.TokenDot, rustlite.TokenInt, rustlite.TokenEOF,
			},
		},
		{
			name: "char and lifetime",
			src:  "'a' &'a str",
			want: []rustlite.TokenKind{
				rustlite.TokenChar, rustlite.TokenAmp, rustlite.TokenLifetime,
				rustlite.TokenIdent, rustlite.TokenEOF,
			},
		},
		{
			name: "raw and byte strings",
			src:  `r#"a "quoted" b"# b"x" br"y"`,
			want: []rustlite.TokenKind{rustlite.TokenString, rustlite.TokenString, rustlite.TokenString, rustlite.TokenEOF},
		},
		{
			name: "longest operator wins",
			src:  "a <<= b",
			want: []rustlite.TokenKind{rustlite.TokenIdent, rustlite.TokenShl, rustlite.TokenAssign, rustlite.TokenIdent, rustlite.TokenEOF},
		},
		{
			name: "keywords",
			src:  "pub struct impl use let mut if else match return true false as",
			want: []rustlite.TokenKind{
				rustlite.TokenPub, rustlite.TokenStruct, rustlite.TokenImpl, rustlite.TokenUse,
				rustlite.TokenLet, rustlite.TokenMut, rustlite.TokenIf, rustlite.TokenElse,
				rustlite.TokenMatch, rustlite.TokenReturn, rustlite.TokenTrue, rustlite.TokenFalse,
				rustlite.TokenAs, rustlite.TokenEOF,
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			tokens, _, err := rustlite.Lex([]byte(tc.src))
			require.NoError(t, err)
			assert.Equal(t, tc.want, kinds(tokens))
		})
	}
}

func TestLex_TokenText(t *testing.T) {
	t.Parallel()

	tokens, _, err := rustlite.Lex([]byte(`x.collect::<Vec<_>>()`))
	require.NoError(t, err)

	texts := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		texts = append(texts, tok.Text)
	}
	assert.Equal(t, []string{"x", ".", "collect", "::", "<", "Vec", "<", "_", ">>", "(", ")", ""}, texts)
}

func TestLex_Comments(t *testing.T) {
	t.Parallel()

	src := "a // line\r\nb /* outer /* inner */ still */ c"
	tokens, list, err := rustlite.Lex([]byte(src))
	require.NoError(t, err)

	assert.Equal(t, []rustlite.TokenKind{
		rustlite.TokenIdent, rustlite.TokenIdent, rustlite.TokenIdent, rustlite.TokenEOF,
	}, kinds(tokens))

	require.Len(t, list, 2)
	assert.Equal(t, "// line", list[0].Text)
	assert.False(t, list[0].IsBlock())
	assert.Equal(t, "/* outer /* inner */ still */", list[1].Text)
	assert.True(t, list[1].IsBlock())
	assert.Equal(t, list[1].Text, src[list[1].Span.Start:list[1].Span.End])
}

func TestLex_Errors(t *testing.T) {
	t.Parallel()

	type testCase struct {
		name    string
		src     string
		message string
	}

	testCases := []testCase{
		{name: "unterminated block comment", src: "a /* b", message: "1:3: unterminated block comment"},
		{name: "unterminated string", src: "let s = \"abc", message: "1:9: unterminated string literal"},
		{name: "unterminated raw string", src: `r#"abc"`, message: "1:1: unterminated raw string literal"},
		{name: "unexpected character", src: "a\n  $", message: "2:3: unexpected character '$'"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, _, err := rustlite.Lex([]byte(tc.src))
			require.Error(t, err)
			require.ErrorIs(t, err, rustlite.ErrSyntax)
			assert.Equal(t, tc.message, err.Error())
		})
	}
}
