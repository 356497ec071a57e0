package pretty

import (
	"fmt"
	"strconv"
)

// FormatLocation renders path, path:line or path:line:col. Zero line or
// column values are left out.
func (s *Styles) FormatLocation(path string, line, col int) string {
	location := s.FilePath.Render(path)
	if line > 0 {
		location += s.Location.Render(":" + strconv.Itoa(line))
		if col > 0 {
			location += s.Location.Render(":" + strconv.Itoa(col))
		}
	}
	return location
}

// FormatError renders a problem that made a file fail.
// Example: "src/lib.rs:3:7: error: expected `;`, found `}`".
func (s *Styles) FormatError(location, message string) string {
	return fmt.Sprintf("%s: %s %s\n", location, s.Error.Render("error:"), s.Message.Render(message))
}

// FormatWarning renders a problem that left part of a file untouched.
func (s *Styles) FormatWarning(location, message string) string {
	return fmt.Sprintf("%s: %s %s\n", location, s.Warning.Render("warning:"), s.Message.Render(message))
}

// FormatFileStatus renders a file with a dimmed status note, as in
// "src/lib.rs (formatted)".
func (s *Styles) FormatFileStatus(path, status string) string {
	return s.FilePath.Render(path) + " " + s.Dim.Render("("+status+")") + "\n"
}
