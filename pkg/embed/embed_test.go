package embed_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/yaklabco/rsfmt/pkg/embed"
	"github.com/yaklabco/rsfmt/pkg/langdetect"
	"github.com/yaklabco/rsfmt/pkg/rustlite"
)

func formatRust(src []byte) (string, error) {
	return rustlite.Format(src, rustlite.DefaultOptions())
}

func TestFindBlocks(t *testing.T) {
	t.Parallel()

	src := "# Title\n\n```rust\nfn a() {}\n```\n\n- item\n\n  ```go\n  package x\n  ```\n\n~~~\nplain\n~~~\n"
	blocks := embed.FindBlocks([]byte(src))
	if len(blocks) != 3 {
		t.Fatalf("expected 3 blocks, got %d", len(blocks))
	}

	if blocks[0].Language != langdetect.Rust || blocks[0].Line != 4 || string(blocks[0].Code) != "fn a() {}\n" {
		t.Errorf("first block = %+v", blocks[0])
	}
	if blocks[1].Info != "go" || blocks[1].Indent != "  " || string(blocks[1].Code) != "package x\n" {
		t.Errorf("second block = %+v", blocks[1])
	}
	if blocks[2].Language != langdetect.Unknown {
		t.Errorf("third block language = %q", blocks[2].Language)
	}
}

func TestFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		src     string
		want    string
		changed int
		skipped int
	}{
		{
			name:    "formats rust fence",
			src:     "Intro\n\n```rust\nfn main(){let x=1;}\n```\n\nOutro\n",
			want:    "Intro\n\n```rust\nfn main() {\n    let x = 1;\n}\n```\n\nOutro\n",
			changed: 1,
		},
		{
			name:    "keeps list indentation",
			src:     "- step\n\n  ```rs\n  fn f(){g();}\n  ```\n",
			want:    "- step\n\n  ```rs\n  fn f() {\n      g();\n  }\n  ```\n",
			changed: 1,
		},
		{
			name:    "keeps quote markers on blank lines",
			src:     "> ```rust\n> fn a(){}\n>\n> fn b(){}\n> ```\n",
			want:    "> ```rust\n> fn a() {}\n>\n> fn b() {}\n> ```\n",
			changed: 1,
		},
		{
			name: "leaves other languages alone",
			src:  "```go\nfunc main(){}\n```\n",
			want: "```go\nfunc main(){}\n```\n",
		},
		{
			name:    "skips code that does not parse",
			src:     "```rust,ignore\nlet x = 1;\n```\n",
			want:    "```rust,ignore\nlet x = 1;\n```\n",
			skipped: 1,
		},
		{
			name: "already formatted",
			src:  "```rust\nfn f() {}\n```\n",
			want: "```rust\nfn f() {}\n```\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result, err := embed.Format(context.Background(), []byte(tt.src), formatRust)
			if err != nil {
				t.Fatalf("Format() error = %v", err)
			}
			if got := string(result.Output); got != tt.want {
				t.Errorf("Format() =\n%s\nwant:\n%s", got, tt.want)
			}
			if result.Changed != tt.changed {
				t.Errorf("Changed = %d, want %d", result.Changed, tt.changed)
			}
			if len(result.Skipped) != tt.skipped {
				t.Errorf("Skipped = %v, want %d entries", result.Skipped, tt.skipped)
			}
		})
	}
}

func TestFormat_SkippedBlockError(t *testing.T) {
	t.Parallel()

	src := "text\n\n```rust\nfn (\n```\n"
	result, err := embed.Format(context.Background(), []byte(src), formatRust)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if len(result.Skipped) != 1 {
		t.Fatalf("expected one skipped block, got %d", len(result.Skipped))
	}

	skipped := result.Skipped[0]
	if skipped.Line != 4 {
		t.Errorf("Line = %d, want 4", skipped.Line)
	}
	if !errors.Is(skipped, rustlite.ErrSyntax) {
		t.Errorf("expected syntax error, got %v", skipped)
	}
	if !strings.HasPrefix(skipped.Error(), "code block at line 4: ") {
		t.Errorf("Error() = %q", skipped.Error())
	}
}

func TestFormat_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := embed.Format(ctx, []byte("```rust\nfn f(){}\n```\n"), formatRust); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}
