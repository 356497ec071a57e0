package configloader

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/rsfmt/pkg/config"
)

func TestConvertRustfmtConfig(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "rustfmt.toml")
	writeFile(t, path, `edition = "2021"
max_width = 80
tab_spaces = 2
hard_tabs = false
newline_style = "Windows"
ignore = ["src/generated.rs", "vendor/**"]
`)

	result, err := ConvertRustfmtConfig(path)
	require.NoError(t, err)

	assert.Equal(t, path, result.SourcePath)
	assert.Empty(t, result.Warnings)
	assert.Equal(t, 80, result.Config.PrintWidth)
	assert.Equal(t, 2, result.Config.TabWidth)
	require.NotNil(t, result.Config.UseTabs)
	assert.False(t, *result.Config.UseTabs)
	assert.Equal(t, config.EndOfLineCRLF, result.Config.EndOfLine)
	assert.Equal(t, []string{"src/generated.rs", "vendor/**"}, result.Config.Ignore)
}

func TestConvertRustfmtConfig_Warnings(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".rustfmt.toml")
	writeFile(t, path, `max_width = "wide"
newline_style = "Mac"
imports_granularity = "Crate"
ignore = [1]
`)

	result, err := ConvertRustfmtConfig(path)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"unsupported value [1] for rustfmt option \"ignore\"; skipping",
		"rustfmt option \"imports_granularity\" has no rsfmt equivalent; skipping",
		"unsupported value wide for rustfmt option \"max_width\"; skipping",
		"unsupported value Mac for rustfmt option \"newline_style\"; skipping",
	}, result.Warnings)
	assert.Zero(t, result.Config.PrintWidth)
	assert.Empty(t, result.Config.EndOfLine)
}

func TestConvertRustfmtConfig_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	_, err := ConvertRustfmtConfig(filepath.Join(dir, "missing.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read file")

	bad := filepath.Join(dir, "rustfmt.toml")
	writeFile(t, bad, "max_width = \n")
	_, err = ConvertRustfmtConfig(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse TOML")
}

func TestNewlineStyle(t *testing.T) {
	t.Parallel()

	native := config.EndOfLineLF
	if runtime.GOOS == "windows" {
		native = config.EndOfLineCRLF
	}

	testCases := map[string]string{
		"Unix":    config.EndOfLineLF,
		"Windows": config.EndOfLineCRLF,
		"Auto":    config.EndOfLineAuto,
		"Native":  native,
	}
	for style, want := range testCases {
		got, ok := newlineStyle(style)
		assert.True(t, ok, style)
		assert.Equal(t, want, got, style)
	}

	_, ok := newlineStyle("unix")
	assert.False(t, ok)
}

func TestGenerateMigrationHeader(t *testing.T) {
	t.Parallel()

	header := GenerateMigrationHeader("/work/project/rustfmt.toml")
	assert.Contains(t, header, "# Migrated from: rustfmt.toml\n")
}
