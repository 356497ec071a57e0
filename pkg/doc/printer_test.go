package doc_test

import (
	"errors"
	"testing"

	"github.com/yaklabco/rsfmt/pkg/doc"
)

func render(t *testing.T, d doc.Doc, opts doc.PrintOptions) string {
	t.Helper()

	result, err := doc.PrintDocToString(d, opts)
	if err != nil {
		t.Fatalf("PrintDocToString returned error: %v", err)
	}
	return result.Formatted
}

func width(n int) doc.PrintOptions {
	opts := doc.DefaultPrintOptions()
	opts.PrintWidth = n
	return opts
}

func callDoc(name string, args ...doc.Doc) doc.Doc {
	return doc.Group(doc.Concat(
		doc.Text(name+"("),
		doc.Indent(doc.Concat(doc.SoftLine, doc.Join(doc.Concat(doc.Text(","), doc.Line), args))),
		doc.SoftLine,
		doc.Text(")"),
	))
}

func TestPrintDocToString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		build func() doc.Doc
		opts  doc.PrintOptions
		want  string
	}{
		{
			name:  "group fits flat",
			build: func() doc.Doc { return callDoc("foo", doc.Text("bar")) },
			opts:  width(80),
			want:  "foo(bar)",
		},
		{
			name:  "group breaks when too wide",
			build: func() doc.Doc { return callDoc("foo", doc.Text("bar")) },
			opts:  width(5),
			want:  "foo(\n  bar\n)",
		},
		{
			name: "nested groups decide independently",
			build: func() doc.Doc {
				return callDoc("outer", callDoc("inner", doc.Text("x")), doc.Text("yyyyyyyy"))
			},
			opts: width(16),
			want: "outer(\n  inner(x),\n  yyyyyyyy\n)",
		},
		{
			name: "hard line breaks enclosing groups",
			build: func() doc.Doc {
				return doc.Group(doc.Concat(
					doc.Text("["),
					doc.Indent(doc.Concat(doc.SoftLine, doc.Group(doc.Concat(doc.Text("x"), doc.HardLine, doc.Text("y"))))),
					doc.SoftLine,
					doc.Text("]"),
				))
			},
			opts: width(80),
			want: "[\n  x\n  y\n]",
		},
		{
			name: "group with break forced",
			build: func() doc.Doc {
				return doc.Group(doc.Concat(doc.Text("a"), doc.Line, doc.Text("b")), doc.WithBreak(true))
			},
			opts: width(80),
			want: "a\nb",
		},
		{
			name: "fill packs items greedily",
			build: func() doc.Doc {
				return doc.Fill([]doc.Doc{doc.Text("aaa"), doc.Line, doc.Text("bbb"), doc.Line, doc.Text("ccc")})
			},
			opts: width(7),
			want: "aaa bbb\nccc",
		},
		{
			name: "fill with one item per line",
			build: func() doc.Doc {
				return doc.Fill([]doc.Doc{doc.Text("aaa"), doc.Line, doc.Text("bbb"), doc.Line, doc.Text("ccc")})
			},
			opts: width(4),
			want: "aaa\nbbb\nccc",
		},
		{
			name: "conditional group picks first fitting state",
			build: func() doc.Doc {
				return doc.ConditionalGroup([]doc.Doc{doc.Text("looooong"), doc.Text("short")})
			},
			opts: width(5),
			want: "short",
		},
		{
			name: "conditional group falls back to last state broken",
			build: func() doc.Doc {
				return doc.ConditionalGroup([]doc.Doc{
					doc.Text("looooong"),
					doc.Concat(doc.Text("a"), doc.Line, doc.Text("b")),
					doc.Concat(doc.Text("c"), doc.Line, doc.Text("d"), doc.Line, doc.Text("e")),
				})
			},
			opts: width(2),
			want: "c\nd\ne",
		},
		{
			name: "line suffix flushed before newline",
			build: func() doc.Doc {
				return doc.Concat(doc.Text("a"), doc.LineSuffix(doc.Text(" // c")), doc.Text(";"), doc.HardLine, doc.Text("b"))
			},
			opts: width(80),
			want: "a; // c\nb",
		},
		{
			name: "line suffix flushed at end of document",
			build: func() doc.Doc {
				return doc.Concat(doc.Text("a"), doc.LineSuffix(doc.Text(" // c")))
			},
			opts: width(80),
			want: "a // c",
		},
		{
			name: "line suffix boundary forces a break",
			build: func() doc.Doc {
				return doc.Concat(doc.Text("a"), doc.LineSuffix(doc.Text(" // c")), doc.LineSuffixBoundary, doc.Text("b"))
			},
			opts: width(80),
			want: "a // c\nb",
		},
		{
			name: "line suffix boundary without pending suffix",
			build: func() doc.Doc {
				return doc.Concat(doc.Text("a"), doc.LineSuffixBoundary, doc.Text("b"))
			},
			opts: width(80),
			want: "ab",
		},
		{
			name: "trim removes trailing whitespace",
			build: func() doc.Doc {
				return doc.Concat(doc.Text("a   "), doc.Trim, doc.Text("b"))
			},
			opts: width(80),
			want: "ab",
		},
		{
			name: "trailing whitespace trimmed before newline",
			build: func() doc.Doc {
				return doc.Concat(doc.Text("a "), doc.HardLine, doc.Text("b"))
			},
			opts: width(80),
			want: "a\nb",
		},
		{
			name: "align adds columns",
			build: func() doc.Doc {
				return doc.Concat(doc.Text("x"), doc.Indent(doc.Concat(
					doc.HardLine, doc.Text("y"),
					doc.Align(2, doc.Concat(doc.HardLine, doc.Text("z"))),
				)))
			},
			opts: width(80),
			want: "x\n  y\n    z",
		},
		{
			name: "align string",
			build: func() doc.Doc {
				return doc.Concat(doc.Text("x"), doc.AlignString("> ", doc.Concat(doc.HardLine, doc.Text("y"))))
			},
			opts: width(80),
			want: "x\n> y",
		},
		{
			name: "dedent removes one level",
			build: func() doc.Doc {
				return doc.Indent(doc.Indent(doc.Concat(
					doc.HardLine, doc.Text("a"),
					doc.Dedent(doc.Concat(doc.HardLine, doc.Text("b"))),
				)))
			},
			opts: width(80),
			want: "\n    a\n  b",
		},
		{
			name: "dedent to root",
			build: func() doc.Doc {
				return doc.Indent(doc.Concat(
					doc.HardLine, doc.Text("a"),
					doc.DedentToRoot(doc.Concat(doc.HardLine, doc.Text("b"))),
				))
			},
			opts: width(80),
			want: "\n  a\nb",
		},
		{
			name: "literal line ignores indentation",
			build: func() doc.Doc {
				return doc.Indent(doc.Concat(doc.HardLine, doc.Text("a"), doc.LiteralLine, doc.Text("b")))
			},
			opts: width(80),
			want: "\n  a\nb",
		},
		{
			name: "literal line uses marked root",
			build: func() doc.Doc {
				return doc.Indent(doc.Concat(doc.HardLine, doc.MarkAsRoot(doc.Concat(doc.Text("a"), doc.LiteralLine, doc.Text("b")))))
			},
			opts: width(80),
			want: "\n  a\n  b",
		},
		{
			name: "add alignment to doc",
			build: func() doc.Doc {
				return doc.AddAlignmentToDoc(doc.Concat(doc.Text("a"), doc.HardLine, doc.Text("b")), 5, 2)
			},
			opts: width(80),
			want: "a\n     b",
		},
		{
			name: "east asian width counts double",
			build: func() doc.Doc {
				return doc.Group(doc.Concat(doc.Text("你好"), doc.Line, doc.Text("世界")))
			},
			opts: width(8),
			want: "你好\n世界",
		},
		{
			name: "east asian width fits exactly",
			build: func() doc.Doc {
				return doc.Group(doc.Concat(doc.Text("你好"), doc.Line, doc.Text("世界")))
			},
			opts: width(9),
			want: "你好 世界",
		},
		{
			name: "label is transparent",
			build: func() doc.Doc {
				return doc.Label("member-chain", callDoc("f", doc.Text("x")))
			},
			opts: width(80),
			want: "f(x)",
		},
		{
			name: "crlf newline",
			build: func() doc.Doc {
				return doc.Concat(doc.Text("a"), doc.HardLine, doc.Text("b"))
			},
			opts: doc.PrintOptions{PrintWidth: 80, TabWidth: 2, NewLine: "\r\n"},
			want: "a\r\nb",
		},
		{
			name: "tabs for indentation",
			build: func() doc.Doc {
				return doc.Concat(doc.Text("x"), doc.Indent(doc.Concat(
					doc.HardLine, doc.Text("y"),
					doc.Align(2, doc.Concat(doc.HardLine, doc.Text("z"))),
				)))
			},
			opts: doc.PrintOptions{PrintWidth: 80, TabWidth: 4, UseTabs: true},
			want: "x\n\ty\n\t  z",
		},
		{
			name:  "nil is empty",
			build: func() doc.Doc { return doc.Concat(doc.Text("a"), nil, doc.Text("b")) },
			opts:  width(80),
			want:  "ab",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got := render(t, testCase.build(), testCase.opts)
			if got != testCase.want {
				t.Errorf("got %q, want %q", got, testCase.want)
			}
		})
	}
}

func TestIfBreakForGroup(t *testing.T) {
	t.Parallel()

	build := func() doc.Doc {
		id := doc.NewGroupID("args")
		return doc.Concat(
			doc.Group(doc.Concat(
				doc.Text("("),
				doc.Indent(doc.Concat(doc.SoftLine, doc.Text("xxxxxx"))),
				doc.SoftLine,
				doc.Text(")"),
			), doc.WithID(id)),
			doc.IfBreak(doc.Text(" broken"), doc.Text(" flat"), doc.ForGroup(id)),
		)
	}

	if got := render(t, build(), width(80)); got != "(xxxxxx) flat" {
		t.Errorf("wide: got %q", got)
	}
	if got := render(t, build(), width(8)); got != "(\n  xxxxxx\n) broken" {
		t.Errorf("narrow: got %q", got)
	}
}

func TestIfBreakEnclosingGroup(t *testing.T) {
	t.Parallel()

	build := func() doc.Doc {
		return doc.Group(doc.Concat(
			doc.Text("["),
			doc.Indent(doc.Concat(doc.SoftLine, doc.Join(doc.Concat(doc.Text(","), doc.Line), []doc.Doc{doc.Text("aa"), doc.Text("bb")}))),
			doc.IfBreak(doc.Text(","), nil),
			doc.SoftLine,
			doc.Text("]"),
		))
	}

	if got := render(t, build(), width(80)); got != "[aa, bb]" {
		t.Errorf("flat: got %q", got)
	}
	if got := render(t, build(), width(4)); got != "[\n  aa,\n  bb,\n]" {
		t.Errorf("broken: got %q", got)
	}
}

func TestIndentIfBreak(t *testing.T) {
	t.Parallel()

	build := func(negate bool) doc.Doc {
		id := doc.NewGroupID("head")
		return doc.Concat(
			doc.Group(doc.Concat(doc.Text("head"), doc.Line, doc.Text("tail")), doc.WithID(id)),
			doc.IndentIfBreak(doc.Concat(doc.HardLine, doc.Text("body")), id, negate),
		)
	}

	if got := render(t, build(false), width(4)); got != "head\ntail\n  body" {
		t.Errorf("broken: got %q", got)
	}
	if got := render(t, build(false), width(80)); got != "head tail\nbody" {
		t.Errorf("flat: got %q", got)
	}
	if got := render(t, build(true), width(80)); got != "head tail\n  body" {
		t.Errorf("negated flat: got %q", got)
	}
}

func TestGroupLocality(t *testing.T) {
	t.Parallel()

	build := func(forceSecond bool) doc.Doc {
		return doc.Concat(
			doc.Group(doc.Concat(doc.Text("a"), doc.Line, doc.Text("b"))),
			doc.HardLine,
			doc.Group(doc.Concat(doc.Text("c"), doc.Line, doc.Text("d")), doc.WithBreak(forceSecond)),
		)
	}

	if got := render(t, build(false), width(80)); got != "a b\nc d" {
		t.Errorf("unforced: got %q", got)
	}
	if got := render(t, build(true), width(80)); got != "a b\nc\nd" {
		t.Errorf("forced: got %q", got)
	}
}

func TestCursor(t *testing.T) {
	t.Parallel()

	result, err := doc.PrintDocToString(doc.Concat(doc.Text("ab"), doc.Cursor, doc.Text("cd")), width(80))
	if err != nil {
		t.Fatal(err)
	}
	if result.Formatted != "abcd" || result.CursorOffset != 2 {
		t.Errorf("got %q at %d", result.Formatted, result.CursorOffset)
	}

	result, err = doc.PrintDocToString(doc.Concat(doc.Text("a"), doc.Cursor, doc.Text("bc"), doc.Cursor, doc.Text("d")), width(80))
	if err != nil {
		t.Fatal(err)
	}
	if result.CursorOffset != 1 || result.CursorText != "bc" {
		t.Errorf("got offset %d text %q", result.CursorOffset, result.CursorText)
	}

	result, err = doc.PrintDocToString(doc.Text("x"), width(80))
	if err != nil || result.CursorOffset != -1 {
		t.Errorf("expected no cursor, got %d (%v)", result.CursorOffset, err)
	}
}

func TestTooManyCursorsIsInvalid(t *testing.T) {
	t.Parallel()

	_, err := doc.PrintDocToString(doc.Concat(doc.Cursor, doc.Cursor, doc.Cursor), width(80))
	if !errors.Is(err, doc.ErrInvalidDoc) {
		t.Errorf("expected ErrInvalidDoc, got %v", err)
	}
}

func TestWidthOverflowIsNotAnError(t *testing.T) {
	t.Parallel()

	got := render(t, doc.Group(doc.Text("a-very-long-unbreakable-token")), width(5))
	if got != "a-very-long-unbreakable-token" {
		t.Errorf("got %q", got)
	}
}

func TestStringWidth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want int
	}{
		{"abc", 3},
		{"", 0},
		{"日本", 4},
		{"é", 1},
	}

	for _, testCase := range tests {
		if got := doc.StringWidth(testCase.in); got != testCase.want {
			t.Errorf("StringWidth(%q) = %d, want %d", testCase.in, got, testCase.want)
		}
	}
}
