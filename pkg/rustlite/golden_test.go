package rustlite_test

import (
	"flag"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/rsfmt/pkg/rustlite"
)

// update rewrites the golden files instead of comparing.
// Usage: go test ./pkg/rustlite/ -run TestGolden -update.
var update = flag.Bool("update", false, "update golden files")

const (
	inputSuffix  = ".input.rs"
	goldenSuffix = ".golden.rs"
)

// testdataDir returns the absolute path to the testdata directory.
func testdataDir(t *testing.T) string {
	t.Helper()

	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("failed to get test file path")
	}
	return filepath.Join(filepath.Dir(filename), "testdata")
}

// goldenCases returns the case names found in testdata, one per
// <name>.input.rs file.
func goldenCases(t *testing.T) []string {
	t.Helper()

	entries, err := os.ReadDir(testdataDir(t))
	require.NoError(t, err)

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), inputSuffix) {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), inputSuffix))
	}
	return names
}

func TestGolden(t *testing.T) {
	names := goldenCases(t)
	require.NotEmpty(t, names)

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			dir := testdataDir(t)
			input, err := os.ReadFile(filepath.Join(dir, name+inputSuffix))
			require.NoError(t, err)

			got, err := rustlite.Format(input, rustlite.DefaultOptions())
			require.NoError(t, err)

			goldenPath := filepath.Join(dir, name+goldenSuffix)
			if *update {
				require.NoError(t, os.WriteFile(goldenPath, []byte(got), 0o600))
				t.Logf("Updated golden file: %s", goldenPath)
				return
			}

			want, err := os.ReadFile(goldenPath)
			require.NoError(t, err, "missing golden file; run with -update")
			assert.Equal(t, string(want), got)
		})
	}
}

// TestGolden_Stable checks that golden output is a fixed point.
func TestGolden_Stable(t *testing.T) {
	t.Parallel()

	for _, name := range goldenCases(t) {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			want, err := os.ReadFile(filepath.Join(testdataDir(t), name+goldenSuffix))
			require.NoError(t, err)

			got, err := rustlite.Format(want, rustlite.DefaultOptions())
			require.NoError(t, err)
			assert.Equal(t, string(want), got)
		})
	}
}
