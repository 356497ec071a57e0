package format_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/yaklabco/rsfmt/pkg/astpath"
	"github.com/yaklabco/rsfmt/pkg/comments"
	"github.com/yaklabco/rsfmt/pkg/doc"
	"github.com/yaklabco/rsfmt/pkg/format"
	"github.com/yaklabco/rsfmt/pkg/invariant"
	"github.com/yaklabco/rsfmt/pkg/span"
	"github.com/yaklabco/rsfmt/pkg/tree"
)

// A toy language of nested calls: `f(a, g(b))`, one call per statement.
type node struct {
	kind   string
	sp     span.Span
	name   string
	callee *node
	args   []*node
	delims span.Span
	items  []*node
}

func (n *node) Span() span.Span { return n.sp }
func (n *node) Kind() string    { return n.kind }

func (n *node) Fields() []tree.Field {
	switch n.kind {
	case "File":
		return []tree.Field{tree.List("items", n.items)}
	case "Call":
		return []tree.Field{
			tree.One("callee", n.callee),
			tree.DelimitedList("arguments", n.args, n.delims),
		}
	}
	return nil
}

type toyParser struct {
	t        *testing.T
	src      string
	pos      int
	comments []*comments.Comment
}

func parse(t *testing.T, src string) (*node, []*comments.Comment) {
	t.Helper()
	p := &toyParser{t: t, src: src}
	file := &node{kind: "File", sp: span.New(0, len(src))}
	for {
		p.skip()
		if p.pos >= len(src) {
			break
		}
		file.items = append(file.items, p.expr())
	}
	return file, p.comments
}

func (p *toyParser) skip() {
	for p.pos < len(p.src) {
		rest := p.src[p.pos:]
		switch {
		case strings.HasPrefix(rest, "//"):
			end := strings.IndexByte(rest, '\n')
			if end < 0 {
				end = len(rest)
			}
			p.comment(p.pos + end)
		case strings.HasPrefix(rest, "/*"):
			p.comment(p.pos + strings.Index(rest, "*/") + 2)
		case strings.ContainsRune(" \t\r\n", rune(rest[0])):
			p.pos++
		default:
			return
		}
	}
}

func (p *toyParser) comment(end int) {
	p.comments = append(p.comments, comments.New(span.New(p.pos, end), []byte(p.src)))
	p.pos = end
}

func (p *toyParser) expr() *node {
	start := p.pos
	for p.pos < len(p.src) && (p.src[p.pos] >= 'a' && p.src[p.pos] <= 'z') {
		p.pos++
	}
	if p.pos == start {
		p.t.Fatalf("expected identifier at %d in %q", start, p.src)
	}
	ident := &node{kind: "Ident", sp: span.New(start, p.pos), name: p.src[start:p.pos]}

	p.skip()
	if p.pos >= len(p.src) || p.src[p.pos] != '(' {
		return ident
	}

	open := p.pos
	p.pos++
	var args []*node
	for p.skip(); p.src[p.pos] != ')'; p.skip() {
		args = append(args, p.expr())
		p.skip()
		if p.src[p.pos] == ',' {
			p.pos++
		}
	}
	p.pos++
	return &node{kind: "Call", sp: span.New(start, p.pos), callee: ident, args: args, delims: span.New(open, p.pos)}
}

type toyPrinter struct {
	skipDangling bool
}

func (pr toyPrinter) Print(ctx *format.Context, p *astpath.Path) doc.Doc {
	n, _ := p.Node().(*node)
	switch n.kind {
	case "File":
		return doc.Concat(doc.Join(doc.HardLine, ctx.PrintAll(p, "items")), doc.HardLine)
	case "Ident":
		return doc.Text(n.name)
	case "Call":
		callee := ctx.Print(p, "callee")
		if len(n.args) == 0 {
			if !pr.skipDangling && ctx.HasDanglingComments(p, comments.MarkerArguments) {
				return doc.Concat(callee, doc.Text("("),
					ctx.PrintDanglingComments(p, comments.MarkerArguments, true), doc.Text(")"))
			}
			return doc.Concat(callee, doc.Text("()"))
		}
		return doc.Group(doc.Concat(
			callee,
			doc.Text("("),
			doc.Indent(doc.Concat(doc.SoftLine, doc.Join(doc.Concat(doc.Text(","), doc.Line), ctx.PrintAll(p, "arguments")))),
			doc.IfBreak(doc.Text(","), doc.Text("")),
			doc.SoftLine,
			doc.Text(")"),
		))
	}
	invariant.Unreachable("kind", n.kind)
	return nil
}

func formatToy(t *testing.T, src string, pr format.Printer, opts format.Options) (string, error) {
	t.Helper()
	root, list := parse(t, src)
	return format.Format(root, []byte(src), list, pr, opts)
}

func TestFormat(t *testing.T) {
	t.Parallel()

	type testCase struct {
		name  string
		src   string
		width int
		want  string
	}

	tests := []testCase{
		{name: "flat call", src: "f( a ,b )", want: "f(a, b)\n"},
		{name: "broken call", src: "f(aaaa, bbbb)", width: 10, want: "f(\n  aaaa,\n  bbbb,\n)\n"},
		{name: "nested groups break outermost first", src: "f(g(aaaa), b)", width: 12, want: "f(\n  g(aaaa),\n  b,\n)\n"},
		{name: "dangling comment in empty arguments", src: "f(/* c */)", want: "f(/* c */)\n"},
		{name: "trailing line comment", src: "f(a) // note\ng(b)\n", want: "f(a) // note\ng(b)\n"},
		{name: "trailing block comment", src: "f(a /* x */, b)", want: "f(a /* x */, b)\n"},
		{name: "leading block comment", src: "f(a, /* x */ b)", want: "f(a, /* x */ b)\n"},
		{name: "leading comment keeps blank line", src: "// head\n\nf(a)\n", want: "// head\n\nf(a)\n"},
		{name: "own line comment before statement", src: "f(a)\n  // next\ng(b)", want: "f(a)\n// next\ng(b)\n"},
		{
			name: "comment after separator leads the next argument",
			src:  "f(a, // why\n b)",
			want: "f(\n  a,\n  // why\n  b,\n)\n",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			opts := format.DefaultOptions()
			if tc.width > 0 {
				opts.PrintWidth = tc.width
			}
			got, err := formatToy(t, tc.src, toyPrinter{}, opts)
			if err != nil {
				t.Fatalf("Format() error = %v", err)
			}
			if got != tc.want {
				t.Errorf("Format() = %q, want %q", got, tc.want)
			}

			again, err := formatToy(t, got, toyPrinter{}, opts)
			if err != nil {
				t.Fatalf("second Format() error = %v", err)
			}
			if again != got {
				t.Errorf("not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestFormatReportsLostComments(t *testing.T) {
	t.Parallel()

	_, err := formatToy(t, "f(/* lost */)", toyPrinter{skipDangling: true}, format.DefaultOptions())
	if !errors.Is(err, comments.ErrCommentNotPrinted) {
		t.Fatalf("err = %v, want ErrCommentNotPrinted", err)
	}
	if !strings.Contains(err.Error(), "/* lost */") {
		t.Errorf("error should name the comment: %v", err)
	}
}

func TestIgnoreDirective(t *testing.T) {
	t.Parallel()

	src := "// rsfmt-ignore\nf(a,   /* keep */ b)\ng(  c )\n"
	root, list := parse(t, src)

	got, err := format.Format(root, []byte(src), list, toyPrinter{}, format.DefaultOptions())
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if want := "// rsfmt-ignore\nf(a,   /* keep */ b)\ng(c)\n"; got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}
	if !list[0].Unignore {
		t.Error("directive comment should be marked Unignore")
	}
}

func TestCustomIgnoreDirective(t *testing.T) {
	t.Parallel()

	opts := format.DefaultOptions()
	opts.IgnoreDirective = "keep"
	got, err := formatToy(t, "/* keep */ f(  a )\n", toyPrinter{}, opts)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if want := "/* keep */ f(  a )\n"; got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}
}

func TestFormatWithCursor(t *testing.T) {
	t.Parallel()

	type testCase struct {
		name   string
		src    string
		cursor int
		want   int
	}

	tests := []testCase{
		{name: "inside identifier", src: "f(a,   bb)", cursor: 8, want: 6},
		{name: "right after identifier", src: "f(a,   bb)", cursor: 9, want: 7},
		{name: "start of file", src: "f( a )", cursor: 0, want: 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			root, list := parse(t, tc.src)
			opts := format.DefaultOptions()
			opts.CursorOffset = tc.cursor

			result, err := format.FormatWithCursor(root, []byte(tc.src), list, toyPrinter{}, opts)
			if err != nil {
				t.Fatalf("FormatWithCursor() error = %v", err)
			}
			if result.CursorOffset != tc.want {
				t.Errorf("CursorOffset = %d, want %d (in %q)", result.CursorOffset, tc.want, result.Formatted)
			}
		})
	}
}

func TestEndOfLine(t *testing.T) {
	t.Parallel()

	type testCase struct {
		name string
		src  string
		eol  string
		want string
	}

	tests := []testCase{
		{name: "crlf", src: "f(a)\ng(b)\n", eol: format.EndOfLineCRLF, want: "f(a)\r\ng(b)\r\n"},
		{name: "auto keeps crlf", src: "f(a)\r\ng(b)\r\n", eol: format.EndOfLineAuto, want: "f(a)\r\ng(b)\r\n"},
		{name: "auto defaults to lf", src: "f(a)", eol: format.EndOfLineAuto, want: "f(a)\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			opts := format.DefaultOptions()
			opts.EndOfLine = tc.eol
			got, err := formatToy(t, tc.src, toyPrinter{}, opts)
			if err != nil {
				t.Fatalf("Format() error = %v", err)
			}
			if got != tc.want {
				t.Errorf("Format() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestFormatErrors(t *testing.T) {
	t.Parallel()

	t.Run("nil root", func(t *testing.T) {
		t.Parallel()
		_, err := format.Format(nil, nil, nil, toyPrinter{}, format.DefaultOptions())
		if !errors.Is(err, format.ErrNilRoot) {
			t.Errorf("err = %v, want ErrNilRoot", err)
		}
	})

	t.Run("typed nil root", func(t *testing.T) {
		t.Parallel()
		var root *node
		_, err := format.Format(root, nil, nil, toyPrinter{}, format.DefaultOptions())
		if !errors.Is(err, format.ErrNilRoot) {
			t.Errorf("err = %v, want ErrNilRoot", err)
		}
	})

	t.Run("violation in print rule", func(t *testing.T) {
		t.Parallel()
		root := &node{kind: "Mystery", sp: span.New(0, 1)}
		_, err := format.Format(root, []byte("x"), nil, toyPrinter{}, format.DefaultOptions())
		if !errors.Is(err, invariant.ErrViolation) {
			t.Errorf("err = %v, want a violation", err)
		}
	})
}

type methodPrinter struct {
	toyPrinter
}

func (methodPrinter) IsMethodMember(_, _ tree.Node, field string) bool {
	return field == "callee"
}

func TestMethodClassification(t *testing.T) {
	t.Parallel()

	src := "f(a)"
	root, list := parse(t, src)
	ctx, err := format.NewContext(root, []byte(src), list, methodPrinter{}, format.DefaultOptions())
	if err != nil {
		t.Fatalf("NewContext() error = %v", err)
	}

	call := root.items[0]
	if !ctx.IsMethodMember(call.callee) {
		t.Error("callee should be a method member")
	}
	if ctx.IsMethodMember(call.args[0]) || ctx.IsMethodMember(call) {
		t.Error("only callees are method members")
	}
}

func TestBuildDoc(t *testing.T) {
	t.Parallel()

	src := "f(a)"
	root, list := parse(t, src)
	d, err := format.BuildDoc(root, []byte(src), list, toyPrinter{}, format.DefaultOptions())
	if err != nil {
		t.Fatalf("BuildDoc() error = %v", err)
	}

	debug := doc.PrintDocToDebug(d)
	for _, want := range []string{`"f"`, `"a"`, "Group(", "IfBreak("} {
		if !strings.Contains(debug, want) {
			t.Errorf("debug output %q lacks %q", debug, want)
		}
	}
}
