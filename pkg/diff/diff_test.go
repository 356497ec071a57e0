package diff_test

import (
	"strings"
	"testing"

	"github.com/yaklabco/rsfmt/pkg/diff"
)

func TestGenerate(t *testing.T) {
	t.Parallel()

	type testCase struct {
		name     string
		original string
		modified string
		want     string
	}

	testCases := []testCase{
		{
			name:     "identical content",
			original: "fn f() {}\n",
			modified: "fn f() {}\n",
			want:     "",
		},
		{
			name:     "empty inputs",
			original: "",
			modified: "",
			want:     "",
		},
		{
			name:     "single line change",
			original: "fn main(){\n}\n",
			modified: "fn main() {\n}\n",
			want: "--- a/main.rs\n+++ b/main.rs\n" +
				"@@ -1,2 +1,2 @@\n" +
				"-fn main(){\n" +
				"+fn main() {\n" +
				" }\n",
		},
		{
			name:     "addition",
			original: "a\nb\n",
			modified: "a\nb\nc\n",
			want:     "--- a/main.rs\n+++ b/main.rs\n@@ -1,2 +1,3 @@\n a\n b\n+c\n",
		},
		{
			name:     "deletion",
			original: "a\n\n\nb\n",
			modified: "a\n\nb\n",
			want:     "--- a/main.rs\n+++ b/main.rs\n@@ -1,4 +1,3 @@\n a\n \n-\n b\n",
		},
		{
			name:     "new file",
			original: "",
			modified: "fn f() {}\n",
			want:     "--- a/main.rs\n+++ b/main.rs\n@@ -0,0 +1,1 @@\n+fn f() {}\n",
		},
		{
			name:     "missing final newline",
			original: "fn f() {}",
			modified: "fn f() {}\n",
			want:     "--- a/main.rs\n+++ b/main.rs\n@@ -1,1 +1,1 @@\n-fn f() {}\n+fn f() {}\n",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			d := diff.Generate("/main.rs", []byte(tc.original), []byte(tc.modified))
			if got := d.String(); got != tc.want {
				t.Errorf("String() =\n%s\nwant:\n%s", got, tc.want)
			}
			if d.HasChanges() != (tc.want != "") {
				t.Errorf("HasChanges() = %v", d.HasChanges())
			}
		})
	}
}

func TestGenerate_Counts(t *testing.T) {
	t.Parallel()

	d := diff.Generate("lib.rs", []byte("a\nb\nc\n"), []byte("x\nb\nc\nd\n"))
	if d == nil {
		t.Fatal("expected non-nil diff")
	}
	if d.Additions != 2 || d.Deletions != 1 {
		t.Errorf("Additions, Deletions = %d, %d; want 2, 1", d.Additions, d.Deletions)
	}
}

func TestGenerate_SeparateHunks(t *testing.T) {
	t.Parallel()

	var origLines, modLines []string
	for i := range 20 {
		line := "line" + string(rune('a'+i))
		origLines = append(origLines, line)
		modLines = append(modLines, line)
	}
	modLines[1] = "changed2"
	modLines[17] = "changed18"

	d := diff.Generate("lib.rs",
		[]byte(strings.Join(origLines, "\n")+"\n"),
		[]byte(strings.Join(modLines, "\n")+"\n"))
	if d == nil {
		t.Fatal("expected non-nil diff")
	}
	if len(d.Hunks) != 2 {
		t.Fatalf("expected 2 hunks, got %d", len(d.Hunks))
	}
	if got := d.Hunks[1].Header(); got != "@@ -15,6 +15,6 @@" {
		t.Errorf("second hunk header = %q", got)
	}
}

func TestGenerate_MergesCloseChanges(t *testing.T) {
	t.Parallel()

	d := diff.Generate("lib.rs", []byte("a\nb\nc\nd\ne\n"), []byte("a\nB\nc\nD\ne\n"))
	if d == nil {
		t.Fatal("expected non-nil diff")
	}
	if len(d.Hunks) != 1 {
		t.Errorf("expected 1 merged hunk, got %d", len(d.Hunks))
	}
}

func TestDiff_FullString(t *testing.T) {
	t.Parallel()

	var nilDiff *diff.Diff
	if nilDiff.FullString() != "" || nilDiff.GitHeader() != "" {
		t.Error("expected empty strings for nil diff")
	}

	d := diff.Generate("src/lib.rs", []byte("a\n"), []byte("b\n"))
	want := "diff --git a/src/lib.rs b/src/lib.rs\n--- a/src/lib.rs\n+++ b/src/lib.rs\n@@ -1,1 +1,1 @@\n-a\n+b\n"
	if got := d.FullString(); got != want {
		t.Errorf("FullString() =\n%s\nwant:\n%s", got, want)
	}
}

func FuzzGenerate(f *testing.F) {
	f.Add([]byte(""), []byte(""))
	f.Add([]byte("hello"), []byte("hello\n"))
	f.Add([]byte("a\nb\nc\n"), []byte("a\nx\nc\n"))
	f.Add([]byte("line1\nline2\nline3\n"), []byte("line1\nline3\n"))

	f.Fuzz(func(t *testing.T, original, modified []byte) {
		d := diff.Generate("lib.rs", original, modified)
		if d == nil {
			if string(original) != string(modified) {
				t.Fatal("nil diff for different content")
			}
			return
		}

		for i, hunk := range d.Hunks {
			var ctx, add, rem int
			for _, line := range hunk.Lines {
				switch line.Kind {
				case diff.LineContext:
					ctx++
				case diff.LineAdd:
					add++
				case diff.LineRemove:
					rem++
				}
			}
			if ctx+rem != hunk.OriginalCount {
				t.Errorf("hunk %d: context(%d) + remove(%d) != OriginalCount(%d)", i, ctx, rem, hunk.OriginalCount)
			}
			if ctx+add != hunk.ModifiedCount {
				t.Errorf("hunk %d: context(%d) + add(%d) != ModifiedCount(%d)", i, ctx, add, hunk.ModifiedCount)
			}
			if hunk.OriginalStart < 0 || hunk.ModifiedStart < 0 {
				t.Errorf("hunk %d: negative start", i)
			}
		}
	})
}
