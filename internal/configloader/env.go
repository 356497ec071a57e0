package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yaklabco/rsfmt/pkg/config"
)

// envVarPrefix is the prefix for all rsfmt environment variables.
const envVarPrefix = "RSFMT_"

// EnvVar describes one supported environment variable.
type EnvVar struct {
	Name string
	Help string
}

type envBinding struct {
	suffix string
	field  string
	help   string
	apply  func(cfg *config.Config, name, value string) error
}

// envBindings lists the overrides in the order they are applied.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envBindings = []envBinding{
	{"PRINT_WIDTH", "print_width", "Line width to stay within",
		intEnv(func(c *config.Config, v int) { c.PrintWidth = v })},
	{"TAB_WIDTH", "tab_width", "Width of one indentation level",
		intEnv(func(c *config.Config, v int) { c.TabWidth = v })},
	{"USE_TABS", "use_tabs", "Indent with tabs: true or false",
		boolEnv(func(c *config.Config, v bool) { c.UseTabs = config.Bool(v) })},
	{"END_OF_LINE", "end_of_line", "Line endings: lf, crlf, cr or auto",
		stringEnv(func(c *config.Config, v string) { c.EndOfLine = v })},
	{"IGNORE_DIRECTIVE", "ignore_directive", "Comment that keeps the next node as written",
		stringEnv(func(c *config.Config, v string) { c.IgnoreDirective = v })},
	{"IGNORE", "ignore", "Comma-separated list of ignore patterns",
		stringEnv(func(c *config.Config, v string) { c.Ignore = splitList(v) })},
	{"EMBEDDED", "embedded", "Format Rust code blocks in Markdown: true or false",
		boolEnv(func(c *config.Config, v bool) { c.Embedded = config.Bool(v) })},
	{"JOBS", "jobs", "Number of parallel workers (0 = auto)",
		intEnv(func(c *config.Config, v int) { c.Jobs = v })},
	{"FORMAT", "format", "Output format: text, json or diff",
		stringEnv(func(c *config.Config, v string) { c.Format = config.OutputFormat(v) })},
}

func stringEnv(set func(*config.Config, string)) func(*config.Config, string, string) error {
	return func(cfg *config.Config, _, value string) error {
		set(cfg, value)
		return nil
	}
}

func intEnv(set func(*config.Config, int)) func(*config.Config, string, string) error {
	return func(cfg *config.Config, name, value string) error {
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", name, value)
		}
		set(cfg, n)
		return nil
	}
}

func boolEnv(set func(*config.Config, bool)) func(*config.Config, string, string) error {
	return func(cfg *config.Config, name, value string) error {
		b, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", name, value)
		}
		set(cfg, b)
		return nil
	}
}

// splitList splits a comma-separated value, dropping empty elements.
func splitList(value string) []string {
	var out []string
	for part := range strings.SplitSeq(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// LoadFromEnv applies RSFMT_* environment variables to cfg. Unset or empty
// variables are ignored.
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for _, binding := range envBindings {
		name := envVarPrefix + binding.suffix
		value := os.Getenv(name)
		if value == "" {
			continue
		}
		if err := binding.apply(cfg, name, value); err != nil {
			return err
		}
	}
	return nil
}

// GetEnvVarName returns the environment variable for a config key, or "".
func GetEnvVarName(field string) string {
	for _, binding := range envBindings {
		if binding.field == field {
			return envVarPrefix + binding.suffix
		}
	}
	return ""
}

// ListEnvVars returns the supported environment variables in the order
// they are applied.
func ListEnvVars() []EnvVar {
	vars := make([]EnvVar, 0, len(envBindings))
	for _, binding := range envBindings {
		vars = append(vars, EnvVar{Name: envVarPrefix + binding.suffix, Help: binding.help})
	}
	return vars
}
