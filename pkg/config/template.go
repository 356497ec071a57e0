package config

import (
	"fmt"
)

// Template file formats.
const (
	TemplateYAML = "yaml"
	TemplateTOML = "toml"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Format is the output format: "yaml" or "toml".
	Format string
}

// GenerateTemplate creates a commented configuration file holding the defaults.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	switch opts.Format {
	case "", TemplateYAML:
		return []byte(DefaultTemplateHeader() + "\n\n" + yamlTemplate), nil
	case TemplateTOML:
		return []byte(DefaultTemplateHeader() + "\n\n" + tomlTemplate), nil
	default:
		return nil, fmt.Errorf("unknown template format %q; must be one of: yaml, toml", opts.Format)
	}
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# rsfmt configuration
# See: https://github.com/yaklabco/rsfmt`
}

const yamlTemplate = `# Maximum line width
print_width: 100

# Width of one indentation level
tab_width: 4

# Indent with tabs instead of spaces
use_tabs: false

# Line endings: lf, crlf, cr, or auto (keep the first one found)
end_of_line: lf

# Comment that keeps the next item verbatim
ignore_directive: rsfmt-ignore

# Format rust code fences in Markdown files
embedded: true

# File patterns to ignore (glob patterns)
# ignore:
#   - "target/**"
#   - "vendor/**"
`

const tomlTemplate = `# Maximum line width
print_width = 100

# Width of one indentation level
tab_width = 4

# Indent with tabs instead of spaces
use_tabs = false

# Line endings: lf, crlf, cr, or auto (keep the first one found)
end_of_line = "lf"

# Comment that keeps the next item verbatim
ignore_directive = "rsfmt-ignore"

# Format rust code fences in Markdown files
embedded = true

# File patterns to ignore (glob patterns)
# ignore = ["target/**", "vendor/**"]
`
