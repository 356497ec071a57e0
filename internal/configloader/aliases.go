package configloader

import (
	"runtime"

	"github.com/yaklabco/rsfmt/pkg/config"
)

// rustfmtAliases maps rustfmt option names to the rsfmt keys they set.
//
//nolint:gochecknoglobals // Read-only lookup table.
var rustfmtAliases = map[string]string{
	"max_width":     "print_width",
	"tab_spaces":    "tab_width",
	"hard_tabs":     "use_tabs",
	"newline_style": "end_of_line",
	"ignore":        "ignore",
}

// rustfmtIgnored are rustfmt options that only select the edition or the
// toolchain and have no layout meaning here.
//
//nolint:gochecknoglobals // Read-only lookup table.
var rustfmtIgnored = map[string]bool{
	"edition":           true,
	"style_edition":     true,
	"version":           true,
	"unstable_features": true,
	"required_version":  true,
}

// NormalizeRustfmtKey returns the rsfmt key for a rustfmt option, or "" if
// there is none.
func NormalizeRustfmtKey(key string) string {
	return rustfmtAliases[key]
}

// newlineStyle converts a rustfmt newline_style value to an end_of_line
// setting. Native follows the platform running the migration.
func newlineStyle(style string) (string, bool) {
	switch style {
	case "Unix":
		return config.EndOfLineLF, true
	case "Windows":
		return config.EndOfLineCRLF, true
	case "Auto":
		return config.EndOfLineAuto, true
	case "Native":
		if runtime.GOOS == "windows" {
			return config.EndOfLineCRLF, true
		}
		return config.EndOfLineLF, true
	default:
		return "", false
	}
}
