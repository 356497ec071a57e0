package runner_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/rsfmt/pkg/config"
	"github.com/yaklabco/rsfmt/pkg/format"
	"github.com/yaklabco/rsfmt/pkg/langdetect"
	"github.com/yaklabco/rsfmt/pkg/runner"
	"github.com/yaklabco/rsfmt/pkg/rustlite"
)

const (
	unformattedRust = "fn main(){let x=1;}"
	formattedRust   = "fn main() {\n    let x = 1;\n}\n"

	unformattedMarkdown = "# Example\n\n```rust\nfn a(){}\n```\n"
	formattedMarkdown   = "# Example\n\n```rust\nfn a() {}\n```\n"
)

func readFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func outcomeFor(t *testing.T, result *runner.Result, name string) runner.FileOutcome {
	t.Helper()

	for _, outcome := range result.Files {
		if filepath.Base(outcome.Path) == name {
			return outcome
		}
	}
	require.FailNow(t, "no outcome", "file %s", name)
	return runner.FileOutcome{}
}

func TestRunner_Run_NoFiles(t *testing.T) {
	t.Parallel()

	result, err := runner.New().Run(context.Background(), runner.Options{WorkingDir: t.TempDir()})
	require.NoError(t, err)
	assert.Empty(t, result.Files)
	assert.Zero(t, result.Stats.FilesDiscovered)
	assert.False(t, result.HasChanges())
	assert.False(t, result.HasFailures())
}

func TestRunner_Run_ReportsWithoutWriting(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"main.rs":   unformattedRust,
		"done.rs":   formattedRust,
		"README.md": unformattedMarkdown,
	})

	result, err := runner.New().Run(context.Background(), runner.Options{
		WorkingDir: dir,
		Config:     config.NewConfig(),
	})
	require.NoError(t, err)

	assert.Equal(t, 3, result.Stats.FilesDiscovered)
	assert.Equal(t, 3, result.Stats.FilesFormatted)
	assert.Equal(t, 2, result.Stats.FilesChanged)
	assert.Zero(t, result.Stats.FilesWritten)
	assert.Equal(t, 1, result.Stats.EmbeddedBlocks)
	assert.True(t, result.HasChanges())
	assert.Len(t, result.Changed(), 2)

	rs := outcomeFor(t, result, "main.rs")
	assert.Equal(t, langdetect.Rust, rs.Language)
	assert.True(t, rs.Changed)
	assert.Equal(t, formattedRust, string(rs.Formatted))
	require.NotNil(t, rs.Diff)
	assert.Positive(t, rs.Diff.Additions)

	md := outcomeFor(t, result, "README.md")
	assert.Equal(t, langdetect.Markdown, md.Language)
	assert.Equal(t, formattedMarkdown, string(md.Formatted))

	done := outcomeFor(t, result, "done.rs")
	assert.False(t, done.Changed)
	assert.Nil(t, done.Diff)

	assert.Equal(t, unformattedRust, readFile(t, filepath.Join(dir, "main.rs")))
}

func TestRunner_Run_Write(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"main.rs":   unformattedRust,
		"done.rs":   formattedRust,
		"README.md": unformattedMarkdown,
	})

	cfg := config.NewConfig()
	cfg.Write = true

	result, err := runner.New().Run(context.Background(), runner.Options{WorkingDir: dir, Config: cfg})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Stats.FilesWritten)
	assert.True(t, outcomeFor(t, result, "main.rs").Written)
	assert.False(t, outcomeFor(t, result, "done.rs").Written)

	assert.Equal(t, formattedRust, readFile(t, filepath.Join(dir, "main.rs")))
	assert.Equal(t, formattedMarkdown, readFile(t, filepath.Join(dir, "README.md")))
}

func TestRunner_Run_CheckNeverWrites(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"main.rs": unformattedRust})

	cfg := config.NewConfig()
	cfg.Write = true
	cfg.Check = true

	result, err := runner.New().Run(context.Background(), runner.Options{WorkingDir: dir, Config: cfg})
	require.NoError(t, err)
	assert.True(t, result.HasChanges())
	assert.Zero(t, result.Stats.FilesWritten)
	assert.Equal(t, unformattedRust, readFile(t, filepath.Join(dir, "main.rs")))
}

func TestRunner_Run_FailureDoesNotStopRun(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"broken.rs": "fn f( {",
		"main.rs":   unformattedRust,
	})

	cfg := config.NewConfig()
	cfg.Write = true

	result, err := runner.New().Run(context.Background(), runner.Options{WorkingDir: dir, Config: cfg})
	require.NoError(t, err)

	assert.True(t, result.HasFailures())
	assert.Equal(t, 1, result.Stats.FilesFailed)
	assert.Equal(t, 1, result.Stats.FilesWritten)

	broken := outcomeFor(t, result, "broken.rs")
	require.Error(t, broken.Error)
	assert.True(t, rustlite.IsSyntaxError(broken.Error))
	assert.Equal(t, "fn f( {", string(broken.Formatted))
	assert.Equal(t, "fn f( {", readFile(t, filepath.Join(dir, "broken.rs")))
}

func TestRunner_Run_SkipsGenerated(t *testing.T) {
	t.Parallel()

	generated := "// @generated by build.rs\nfn main(){}"

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"gen.rs": generated})

	result, err := runner.New().Run(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)

	outcome := outcomeFor(t, result, "gen.rs")
	assert.True(t, outcome.Skipped)
	assert.Equal(t, runner.SkipGenerated, outcome.SkipReason)
	assert.Equal(t, 1, result.Stats.FilesSkipped)
	assert.False(t, result.HasChanges())

	result, err = runner.New().Run(context.Background(), runner.Options{WorkingDir: dir, IncludeVendored: true})
	require.NoError(t, err)
	assert.True(t, outcomeFor(t, result, "gen.rs").Changed)
}

func TestRunner_Run_EmbeddedBlockErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"README.md": "```rust\nfn f( {\n```\n\n```rust\nfn a(){}\n```\n",
	})

	result, err := runner.New().Run(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)

	assert.False(t, result.HasFailures())
	assert.Equal(t, 2, result.Stats.EmbeddedBlocks)
	assert.Equal(t, 1, result.Stats.BlocksSkipped)

	outcome := outcomeFor(t, result, "README.md")
	require.Len(t, outcome.BlockErrors, 1)
	assert.Equal(t, 2, outcome.BlockErrors[0].Line)
	assert.Equal(t, "```rust\nfn f( {\n```\n\n```rust\nfn a() {}\n```\n", string(outcome.Formatted))
}

func TestRunner_Run_UsesConfiguredLayout(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"main.rs": unformattedRust})

	cfg := config.NewConfig()
	cfg.TabWidth = 2

	result, err := runner.New().Run(context.Background(), runner.Options{WorkingDir: dir, Config: cfg})
	require.NoError(t, err)
	assert.Equal(t, "fn main() {\n  let x = 1;\n}\n", string(outcomeFor(t, result, "main.rs").Formatted))
}

func TestRunner_Run_SerialVsParallelConsistency(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	files := map[string]string{}
	for _, name := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		files[name+".rs"] = unformattedRust
		files[name+".md"] = unformattedMarkdown
	}
	writeTree(t, dir, files)

	serial, err := runner.New().Run(context.Background(), runner.Options{WorkingDir: dir, Jobs: 1})
	require.NoError(t, err)
	parallel, err := runner.New().Run(context.Background(), runner.Options{WorkingDir: dir, Jobs: 8})
	require.NoError(t, err)

	require.Len(t, parallel.Files, len(serial.Files))
	for idx := range serial.Files {
		assert.Equal(t, serial.Files[idx].Path, parallel.Files[idx].Path)
		assert.Equal(t, serial.Files[idx].Formatted, parallel.Files[idx].Formatted)
	}
	assert.Equal(t, serial.Stats, parallel.Stats)
}

func TestRunner_Run_CustomFormatter(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"a.rs":      "a",
		"b.rs":      "b",
		"README.md": "```rust\nc\n```\n",
	})

	var calls atomic.Int32
	r := &runner.Runner{
		Rust: func(src []byte, _ format.Options) (string, error) {
			calls.Add(1)
			if string(src) == "b" {
				return "", errors.New("boom")
			}
			return string(src), nil
		},
	}

	result, err := r.Run(context.Background(), runner.Options{WorkingDir: dir, Jobs: 2})
	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())
	assert.Equal(t, 1, result.Stats.FilesFailed)
	assert.EqualError(t, outcomeFor(t, result, "b.rs").Error, "boom")
}

func TestRunner_Run_ContextCancellation(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"a.rs": unformattedRust})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.New().Run(ctx, runner.Options{WorkingDir: dir})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunner_FormatSource(t *testing.T) {
	t.Parallel()

	r := runner.New()

	outcome := r.FormatSource(context.Background(), "stdin.rs", []byte(unformattedRust), runner.Options{})
	require.NoError(t, outcome.Error)
	assert.Equal(t, formattedRust, string(outcome.Formatted))
	assert.True(t, outcome.Changed)

	outcome = r.FormatSource(context.Background(), "notes.txt", []byte("x"), runner.Options{})
	require.ErrorIs(t, outcome.Error, runner.ErrUnsupportedLanguage)
	assert.Equal(t, "x", string(outcome.Formatted))
}

func TestRunner_FormatSource_EmbeddedDisabled(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Embedded = config.Bool(false)

	outcome := runner.New().FormatSource(context.Background(), "README.md", []byte(unformattedMarkdown),
		runner.Options{Config: cfg})
	require.NoError(t, outcome.Error)
	assert.False(t, outcome.Changed)
	assert.Zero(t, outcome.EmbeddedBlocks)
}

func TestResult_NilReceiver(t *testing.T) {
	t.Parallel()

	var result *runner.Result
	assert.False(t, result.HasFailures())
	assert.False(t, result.HasChanges())
	assert.Nil(t, result.Changed())
}

func TestNewResult(t *testing.T) {
	t.Parallel()

	r := runner.New()
	ctx := context.Background()

	result := runner.NewResult(
		r.FormatSource(ctx, "a.rs", []byte(unformattedRust), runner.Options{}),
		r.FormatSource(ctx, "b.rs", []byte(formattedRust), runner.Options{}),
		r.FormatSource(ctx, "c.rs", []byte("fn ("), runner.Options{}),
	)

	require.Len(t, result.Files, 3)
	assert.Equal(t, 3, result.Stats.FilesDiscovered)
	assert.Equal(t, 2, result.Stats.FilesFormatted)
	assert.Equal(t, 1, result.Stats.FilesChanged)
	assert.Equal(t, 1, result.Stats.FilesFailed)
	assert.True(t, result.HasFailures())
	assert.True(t, result.HasChanges())
}
