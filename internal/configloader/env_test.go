package configloader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/rsfmt/pkg/config"
)

// Tests in this file modify the process environment and cannot run in parallel.

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("RSFMT_PRINT_WIDTH", "72")
	t.Setenv("RSFMT_USE_TABS", "1")
	t.Setenv("RSFMT_END_OF_LINE", "crlf")
	t.Setenv("RSFMT_IGNORE", " target/** , ,build/*.rs")
	t.Setenv("RSFMT_EMBEDDED", "false")
	t.Setenv("RSFMT_FORMAT", "diff")

	cfg := config.NewConfig()
	require.NoError(t, LoadFromEnv(cfg))

	assert.Equal(t, 72, cfg.PrintWidth)
	assert.True(t, cfg.UseTabsEnabled())
	assert.Equal(t, config.EndOfLineCRLF, cfg.EndOfLine)
	assert.Equal(t, []string{"target/**", "build/*.rs"}, cfg.Ignore)
	assert.False(t, cfg.EmbeddedEnabled())
	assert.Equal(t, config.FormatDiff, cfg.Format)
	assert.Equal(t, config.DefaultTabWidth, cfg.TabWidth)
}

func TestLoadFromEnv_InvalidValues(t *testing.T) {
	t.Setenv("RSFMT_TAB_WIDTH", "four")

	err := LoadFromEnv(config.NewConfig())
	require.Error(t, err)
	assert.Equal(t, `invalid integer for RSFMT_TAB_WIDTH: "four"`, err.Error())
}

func TestLoadFromEnv_InvalidBool(t *testing.T) {
	t.Setenv("RSFMT_USE_TABS", "sometimes")

	err := LoadFromEnv(config.NewConfig())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RSFMT_USE_TABS")
}

func TestLoad_EnvBetweenFilesAndFlags(t *testing.T) {
	t.Setenv("RSFMT_PRINT_WIDTH", "72")
	t.Setenv("RSFMT_TAB_WIDTH", "8")

	dir := t.TempDir()
	writeFile(t, dir+"/.rsfmt.yml", "print_width: 80\ntab_width: 2\n")

	opts := isolatedOptions(dir)
	opts.IgnoreEnv = false
	opts.CLIConfig = &config.Config{TabWidth: 3}

	result, err := Load(t.Context(), opts)
	require.NoError(t, err)
	assert.Equal(t, 72, result.Config.PrintWidth)
	assert.Equal(t, 3, result.Config.TabWidth)
}

func TestLoadFromEnv_NilConfig(t *testing.T) {
	assert.NoError(t, LoadFromEnv(nil))
}

func TestEnvVarNames(t *testing.T) {
	assert.Equal(t, "RSFMT_PRINT_WIDTH", GetEnvVarName("print_width"))
	assert.Empty(t, GetEnvVarName("flavor"))

	vars := ListEnvVars()
	require.Len(t, vars, len(envBindings))
	assert.Equal(t, EnvVar{Name: "RSFMT_PRINT_WIDTH", Help: "Line width to stay within"}, vars[0])
	for _, v := range vars {
		assert.NotEmpty(t, v.Help, v.Name)
	}
}

func TestLoadFromEnv_TrimsNumbers(t *testing.T) {
	t.Setenv("RSFMT_JOBS", " 4 ")

	cfg := config.NewConfig()
	require.NoError(t, LoadFromEnv(cfg))
	assert.Equal(t, 4, cfg.Jobs)
}
