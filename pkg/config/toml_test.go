package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/rsfmt/pkg/config"
)

func TestFromTOML(t *testing.T) {
	t.Parallel()

	type testCase struct {
		name    string
		input   string
		want    *config.Config
		wantErr string
	}

	testCases := []testCase{
		{
			name: "all keys",
			input: `print_width = 90
tab_width = 2
use_tabs = true
end_of_line = "auto"
ignore_directive = "keep"
ignore = ["target/**"]
embedded = false
`,
			want: &config.Config{
				PrintWidth:      90,
				TabWidth:        2,
				UseTabs:         config.Bool(true),
				EndOfLine:       config.EndOfLineAuto,
				IgnoreDirective: "keep",
				Ignore:          []string{"target/**"},
				Embedded:        config.Bool(false),
			},
		},
		{
			name:  "empty",
			input: "",
			want:  &config.Config{},
		},
		{
			name:    "unknown key",
			input:   "jobs = 3\n",
			wantErr: "unknown keys: jobs",
		},
		{
			name:    "syntax error",
			input:   "print_width = \n",
			wantErr: "parse toml",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := config.FromTOML([]byte(tc.input))
			if tc.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestConfigToTOML(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{PrintWidth: 80, UseTabs: config.Bool(false), Jobs: 2}

	data, err := cfg.ToTOML()
	require.NoError(t, err)
	assert.Contains(t, string(data), "print_width = 80")
	assert.Contains(t, string(data), "use_tabs = false")
	assert.NotContains(t, string(data), "jobs")

	back, err := config.FromTOML(data)
	require.NoError(t, err)
	assert.Equal(t, 80, back.PrintWidth)
	assert.False(t, back.UseTabsEnabled())
}
