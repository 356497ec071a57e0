package pretty_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/rsfmt/internal/ui/pretty"
)

func TestFormatLocation(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	tests := []struct {
		name string
		line int
		col  int
		want string
	}{
		{name: "path only", want: "src/lib.rs"},
		{name: "line", line: 3, want: "src/lib.rs:3"},
		{name: "line and column", line: 3, col: 7, want: "src/lib.rs:3:7"},
		{name: "column without line", col: 7, want: "src/lib.rs"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, styles.FormatLocation("src/lib.rs", tt.line, tt.col))
		})
	}
}

func TestFormatProblems(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	assert.Equal(t, "a.rs:1:2: error: expected `;`\n", styles.FormatError("a.rs:1:2", "expected `;`"))
	assert.Equal(t, "README.md:4: warning: left as is\n", styles.FormatWarning("README.md:4", "left as is"))
	assert.Equal(t, "a.rs (formatted)\n", styles.FormatFileStatus("a.rs", "formatted"))
}
