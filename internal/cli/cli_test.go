package cli_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/rsfmt/internal/cli"
	"github.com/yaklabco/rsfmt/pkg/runner"
)

func testInfo() cli.BuildInfo {
	return cli.BuildInfo{Version: "test-version", Commit: "test-commit", Date: "test-date"}
}

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	require.NotNil(t, cmd)

	assert.Equal(t, "rsfmt", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.Contains(t, cmd.Long, "Environment:")
	assert.Contains(t, cmd.Long, "RSFMT_PRINT_WIDTH")

	for _, name := range []string{"debug", "config", "color"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), name)
	}
}

func TestRootCommandHasSubcommands(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	for _, args := range [][]string{
		{"format"}, {"fmt"}, {"debug", "doc"}, {"debug", "comments"}, {"init"}, {"migrate"}, {"version"},
	} {
		subCmd, _, err := cmd.Find(args)
		require.NoError(t, err, args)
		assert.NotEqual(t, cmd, subCmd, args)
	}
}

func TestFormatCommandFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	formatCmd, _, err := cmd.Find([]string{"format"})
	require.NoError(t, err)

	expectedFlags := []string{
		"write", "check", "output", "print-width", "tab-width", "use-tabs",
		"end-of-line", "ignore-directive", "jobs", "ignore", "no-embedded",
		"stdin", "stdin-filepath", "cursor-offset", "verbose", "include-vendored",
		"follow-symlinks",
	}
	for _, name := range expectedFlags {
		assert.NotNil(t, formatCmd.Flags().Lookup(name), name)
	}

	assert.Equal(t, "w", formatCmd.Flags().Lookup("write").Shorthand)
	assert.Equal(t, "-1", formatCmd.Flags().Lookup("cursor-offset").DefValue)
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{"version"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, stdout.String(), "test-version")
	assert.Contains(t, stdout.String(), "test-commit")
	assert.Contains(t, stdout.String(), "test-date")
}

func TestHelpOutput(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{"format", "--help", "--color", "never"})

	require.NoError(t, cmd.Execute())

	out := stdout.String()
	assert.Contains(t, out, "Usage:")
	assert.Contains(t, out, "rsfmt format [paths...]")
	assert.Contains(t, out, "Aliases:")
	assert.Contains(t, out, "-w, --write   rewrite files in place")
	assert.Contains(t, out, "Global Flags:")
}

func TestExitCodeFromResult(t *testing.T) {
	t.Parallel()

	type testCase struct {
		name  string
		stats runner.Stats
		check bool
		want  int
	}

	testCases := []testCase{
		{name: "nothing to do", want: cli.ExitSuccess},
		{name: "changes without check", stats: runner.Stats{FilesChanged: 2}, want: cli.ExitSuccess},
		{name: "changes with check", stats: runner.Stats{FilesChanged: 2}, check: true, want: cli.ExitUnformatted},
		{name: "failure", stats: runner.Stats{FilesFailed: 1}, want: cli.ExitFailure},
		{
			name:  "failure wins over changes",
			stats: runner.Stats{FilesFailed: 1, FilesChanged: 1},
			check: true,
			want:  cli.ExitFailure,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := cli.ExitCodeFromResult(&runner.Result{Stats: tc.stats}, tc.check)
			assert.Equal(t, tc.want, got)
		})
	}

	assert.Equal(t, cli.ExitSuccess, cli.ExitCodeFromResult(nil, true))
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, cli.ExitSuccess, cli.ExitCode(nil))
	assert.Equal(t, cli.ExitUnformatted, cli.ExitCode(cli.ErrUnformatted))
	assert.Equal(t, cli.ExitFailure, cli.ExitCode(cli.ErrFormatFailed))
	assert.Equal(t, cli.ExitFailure, cli.ExitCode(assert.AnError))

	assert.True(t, cli.IsSignal(cli.ErrUnformatted))
	assert.False(t, cli.IsSignal(assert.AnError))
}
