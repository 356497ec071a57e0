package span_test

import (
	"testing"

	"github.com/yaklabco/rsfmt/pkg/span"
)

func TestBuildLines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		expected []span.LineInfo
	}{
		{
			name:    "empty content",
			content: "",
			expected: []span.LineInfo{
				{StartOffset: 0, NewlineStart: 0, EndOffset: 0},
			},
		},
		{
			name:    "single line no newline",
			content: "hello",
			expected: []span.LineInfo{
				{StartOffset: 0, NewlineStart: 5, EndOffset: 5},
			},
		},
		{
			name:    "single line with CRLF",
			content: "hello\r\n",
			expected: []span.LineInfo{
				{StartOffset: 0, NewlineStart: 5, EndOffset: 7},
				{StartOffset: 7, NewlineStart: 7, EndOffset: 7},
			},
		},
		{
			name:    "multiple lines LF",
			content: "line1\nline2\nline3",
			expected: []span.LineInfo{
				{StartOffset: 0, NewlineStart: 5, EndOffset: 6},
				{StartOffset: 6, NewlineStart: 11, EndOffset: 12},
				{StartOffset: 12, NewlineStart: 17, EndOffset: 17},
			},
		},
		{
			name:    "only newline",
			content: "\n",
			expected: []span.LineInfo{
				{StartOffset: 0, NewlineStart: 0, EndOffset: 1},
				{StartOffset: 1, NewlineStart: 1, EndOffset: 1},
			},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got := span.BuildLines([]byte(testCase.content))
			if len(got) != len(testCase.expected) {
				t.Fatalf("BuildLines() returned %d lines, want %d", len(got), len(testCase.expected))
			}
			for i := range got {
				if got[i] != testCase.expected[i] {
					t.Errorf("line %d = %+v, want %+v", i, got[i], testCase.expected[i])
				}
			}
		})
	}
}

func TestIndex_LineAt(t *testing.T) {
	t.Parallel()

	idx := span.NewIndex([]byte("line1\nline2\nline3"))

	tests := []struct {
		name     string
		offset   int
		wantLine int
		wantCol  int
	}{
		{"start of file", 0, 1, 1},
		{"middle of first line", 2, 1, 3},
		{"newline of first line", 5, 1, 6},
		{"start of second line", 6, 2, 1},
		{"start of third line", 12, 3, 1},
		{"end of file", 16, 3, 5},
		{"past end of file", 17, 3, 6},
		{"negative offset", -1, 0, 0},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			line, col := idx.LineAt(testCase.offset)
			if line != testCase.wantLine || col != testCase.wantCol {
				t.Errorf("LineAt(%d) = (%d, %d), want (%d, %d)",
					testCase.offset, line, col, testCase.wantLine, testCase.wantCol)
			}
		})
	}
}

func TestIndex_Offset(t *testing.T) {
	t.Parallel()

	idx := span.NewIndex([]byte("line1\nline2\nline3"))

	tests := []struct {
		name   string
		line   int
		col    int
		want   int
		wantOK bool
	}{
		{"start of file", 1, 1, 0, true},
		{"start of second line", 2, 1, 6, true},
		{"end of third line", 3, 6, 17, true},
		{"line zero", 0, 1, 0, false},
		{"line past end", 4, 1, 0, false},
		{"column zero", 1, 0, 0, false},
		{"column past line end", 1, 10, 0, false},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got, ok := idx.Offset(testCase.line, testCase.col)
			if ok != testCase.wantOK || (ok && got != testCase.want) {
				t.Errorf("Offset(%d, %d) = (%d, %v), want (%d, %v)",
					testCase.line, testCase.col, got, ok, testCase.want, testCase.wantOK)
			}
		})
	}
}

func TestIndex_LineAtOffsetInverse(t *testing.T) {
	t.Parallel()

	content := []byte("fn main() {\r\n    let x = 1;\r\n}\r\n")
	idx := span.NewIndex(content)

	for offset := range content {
		line, col := idx.LineAt(offset)
		back, ok := idx.Offset(line, col)
		if !ok || back != offset {
			t.Errorf("offset %d -> (%d, %d) -> %d (ok=%v)", offset, line, col, back, ok)
		}
	}
}

func TestIndex_LineContent(t *testing.T) {
	t.Parallel()

	idx := span.NewIndex([]byte("a\r\nbc\n\nd"))

	want := []string{"a", "bc", "", "d"}
	if idx.LineCount() != len(want) {
		t.Fatalf("LineCount() = %d, want %d", idx.LineCount(), len(want))
	}
	for i, w := range want {
		if got := string(idx.LineContent(i + 1)); got != w {
			t.Errorf("LineContent(%d) = %q, want %q", i+1, got, w)
		}
	}
	if idx.LineContent(0) != nil || idx.LineContent(5) != nil {
		t.Error("out of range LineContent should be nil")
	}
	if idx.LineStart(2) != 3 || idx.LineStart(9) != -1 {
		t.Errorf("LineStart mismatch: %d %d", idx.LineStart(2), idx.LineStart(9))
	}
	if !idx.SameLine(3, 4) || idx.SameLine(0, 3) {
		t.Error("SameLine mismatch")
	}
}

func TestGuessEndOfLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		content string
		want    string
	}{
		{"", span.EndOfLineLF},
		{"a\nb\r\n", span.EndOfLineLF},
		{"a\r\nb\n", span.EndOfLineCRLF},
		{"a\rb", span.EndOfLineCR},
	}

	for _, testCase := range tests {
		if got := span.GuessEndOfLine([]byte(testCase.content)); got != testCase.want {
			t.Errorf("GuessEndOfLine(%q) = %q, want %q", testCase.content, got, testCase.want)
		}
	}

	if span.NewlineFor(span.EndOfLineCRLF) != "\r\n" || span.NewlineFor("auto") != "\n" {
		t.Error("NewlineFor mismatch")
	}
}
