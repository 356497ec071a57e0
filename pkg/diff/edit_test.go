package diff_test

import (
	"errors"
	"testing"

	"github.com/yaklabco/rsfmt/pkg/diff"
)

func TestApply(t *testing.T) {
	t.Parallel()

	type testCase struct {
		name    string
		content string
		edits   []diff.Edit
		want    string
		wantErr bool
	}

	testCases := []testCase{
		{name: "no edits", content: "abc", want: "abc"},
		{
			name:    "replace",
			content: "hello world",
			edits:   []diff.Edit{{Start: 6, End: 11, Text: "there"}},
			want:    "hello there",
		},
		{
			name:    "unsorted edits",
			content: "abcdef",
			edits:   []diff.Edit{{Start: 4, End: 6, Text: "X"}, {Start: 0, End: 1, Text: "YY"}},
			want:    "YYbcdX",
		},
		{
			name:    "insert and delete",
			content: "abc",
			edits:   []diff.Edit{{Start: 0, End: 0, Text: ">"}, {Start: 1, End: 2}},
			want:    ">ac",
		},
		{
			name:    "out of range",
			content: "abc",
			edits:   []diff.Edit{{Start: 1, End: 9}},
			wantErr: true,
		},
		{
			name:    "negative start",
			content: "abc",
			edits:   []diff.Edit{{Start: -1, End: 1}},
			wantErr: true,
		},
		{
			name:    "overlapping",
			content: "abcdef",
			edits:   []diff.Edit{{Start: 0, End: 3}, {Start: 2, End: 4}},
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := diff.Apply([]byte(tc.content), tc.edits)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Apply() error = %v", err)
			}
			if string(got) != tc.want {
				t.Errorf("Apply() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestApply_ConflictError(t *testing.T) {
	t.Parallel()

	_, err := diff.Apply([]byte("abcdef"), []diff.Edit{{Start: 2, End: 4}, {Start: 0, End: 3}})

	var conflict *diff.ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
	if conflict.First.Start != 0 || conflict.Second.Start != 2 {
		t.Errorf("conflict = %+v", conflict)
	}
}
