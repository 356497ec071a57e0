package doc_test

import (
	"testing"

	"github.com/yaklabco/rsfmt/pkg/doc"
)

func TestPrintDocToDebugConcatParts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   doc.Doc
		want string
	}{
		{"text", doc.Text("fn"), `"fn"`},
		{"single part concat", doc.Concat(doc.Text("a")), `"a"`},
		{
			"hard line names its break parent",
			doc.Concat(doc.Text("a"), doc.HardLine, doc.Text("b")),
			`Concat("a", HardLine, "b")`,
		},
		{
			"lone break parent",
			doc.Concat(doc.BreakParent, doc.Text("a")),
			`Concat(BreakParent, "a")`,
		},
		{
			"nested concat is flattened",
			doc.Indent(doc.Concat(doc.SoftLine, doc.Concat(doc.Text("x"), doc.Line))),
			`Indent(Concat(SoftLine, "x", Line))`,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			if got := doc.PrintDocToDebug(testCase.in); got != testCase.want {
				t.Errorf("got %q, want %q", got, testCase.want)
			}
		})
	}
}
