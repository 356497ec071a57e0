package span

// LineInfo describes one line of the source.
type LineInfo struct {
	// StartOffset is the byte offset where the line begins.
	StartOffset int

	// NewlineStart is the byte offset where the line ending begins
	// (equal to EndOffset for the last line without a newline).
	NewlineStart int

	// EndOffset is the byte offset just past the line ending.
	EndOffset int
}

// BuildLines constructs line metadata from file content.
// It handles both LF (\n) and CRLF (\r\n) line endings. Empty content
// yields a single empty line so that offset 0 always resolves.
func BuildLines(content []byte) []LineInfo {
	var lines []LineInfo
	lineStart := 0

	for idx, char := range content {
		if char == '\n' {
			newlineStart := idx
			if idx > 0 && content[idx-1] == '\r' {
				newlineStart = idx - 1
			}

			lines = append(lines, LineInfo{
				StartOffset:  lineStart,
				NewlineStart: newlineStart,
				EndOffset:    idx + 1,
			})
			lineStart = idx + 1
		}
	}

	// Last line (may not have trailing newline).
	lines = append(lines, LineInfo{
		StartOffset:  lineStart,
		NewlineStart: len(content),
		EndOffset:    len(content),
	})

	return lines
}

// Index answers line and column questions about one source text.
type Index struct {
	content []byte
	lines   []LineInfo
}

// NewIndex builds the line index for content. The content is not copied.
func NewIndex(content []byte) *Index {
	return &Index{content: content, lines: BuildLines(content)}
}

// Content returns the indexed source.
func (x *Index) Content() []byte {
	return x.content
}

// Lines returns the line table.
func (x *Index) Lines() []LineInfo {
	return x.lines
}

// LineCount returns the number of lines in the file.
func (x *Index) LineCount() int {
	return len(x.lines)
}

// LineAt converts a byte offset to 1-based line and column numbers.
// Column counts bytes, not runes. Offsets past the end resolve to the last
// line. Returns (0, 0) for negative offsets.
func (x *Index) LineAt(offset int) (int, int) {
	if offset < 0 {
		return 0, 0
	}

	lineIdx := BinarySearchIn(x.lines, offset, func(l LineInfo) int { return l.StartOffset })
	if lineIdx < 0 {
		return 0, 0
	}

	return lineIdx + 1, offset - x.lines[lineIdx].StartOffset + 1
}

// Line returns the 1-based line containing offset.
func (x *Index) Line(offset int) int {
	line, _ := x.LineAt(offset)
	return line
}

// LineStart returns the byte offset of the first byte of a 1-based line,
// or -1 when the line is out of range.
func (x *Index) LineStart(line int) int {
	if line < 1 || line > len(x.lines) {
		return -1
	}
	return x.lines[line-1].StartOffset
}

// Offset converts 1-based line and column numbers to a byte offset.
// Returns (offset, true) on success, or (0, false) if out of range.
func (x *Index) Offset(line, col int) (int, bool) {
	if line < 1 || line > len(x.lines) {
		return 0, false
	}

	lineInfo := x.lines[line-1]

	if col < 1 {
		return 0, false
	}

	offset := lineInfo.StartOffset + col - 1

	// Column may point to the end of line (for cursor positioning).
	if offset > lineInfo.EndOffset {
		return 0, false
	}

	return offset, true
}

// LineContent returns the content of a 1-based line number, excluding the newline.
// Returns nil if the line number is out of range.
func (x *Index) LineContent(line int) []byte {
	if line < 1 || line > len(x.lines) {
		return nil
	}

	lineInfo := x.lines[line-1]
	return x.content[lineInfo.StartOffset:lineInfo.NewlineStart]
}

// SameLine reports whether offsets a and b are on the same line.
func (x *Index) SameLine(a, b int) bool {
	return x.Line(a) == x.Line(b)
}

// Line endings recognised by GuessEndOfLine.
const (
	EndOfLineLF   = "lf"
	EndOfLineCRLF = "crlf"
	EndOfLineCR   = "cr"
)

// GuessEndOfLine returns the first line ending found in content, or "lf"
// when content has none.
func GuessEndOfLine(content []byte) string {
	for idx, char := range content {
		switch char {
		case '\n':
			return EndOfLineLF
		case '\r':
			if idx+1 < len(content) && content[idx+1] == '\n' {
				return EndOfLineCRLF
			}
			return EndOfLineCR
		}
	}
	return EndOfLineLF
}

// NewlineFor maps a line-ending name to its characters.
func NewlineFor(eol string) string {
	switch eol {
	case EndOfLineCRLF:
		return "\r\n"
	case EndOfLineCR:
		return "\r"
	default:
		return "\n"
	}
}
