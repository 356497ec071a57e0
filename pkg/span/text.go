package span

// The scanning helpers below take a byte offset and return the offset reached
// after skipping. A result of -1 means the scan ran off the start of the
// text or failed; every helper passes -1 through unchanged, so calls can be
// chained without checking intermediate results.

// NotFound is returned by the skip helpers when a scan fails.
const NotFound = -1

func isSpace(c byte) bool      { return c == ' ' || c == '\t' }
func isWhitespace(c byte) bool { return c == ' ' || c == '\t' || c == '\r' || c == '\n' }
func isNewline(c byte) bool    { return c == '\n' || c == '\r' }

// SkipChars advances from start over bytes accepted by pred. Going forward it
// may stop at len(src). Going backwards it stops at the first rejected byte,
// or returns NotFound when it runs off the start.
func SkipChars(src []byte, start int, pred func(byte) bool, backwards bool) int {
	if start < 0 {
		return NotFound
	}

	step := 1
	if backwards {
		step = -1
	}

	cursor := start
	for cursor >= 0 && cursor < len(src) {
		if !pred(src[cursor]) {
			return cursor
		}
		cursor += step
	}

	if cursor == -1 || cursor == len(src) {
		return cursor
	}
	return NotFound
}

// SkipSpaces skips blanks and tabs.
func SkipSpaces(src []byte, start int, backwards bool) int {
	return SkipChars(src, start, isSpace, backwards)
}

// SkipWhitespace skips blanks, tabs and line breaks.
func SkipWhitespace(src []byte, start int, backwards bool) int {
	return SkipChars(src, start, isWhitespace, backwards)
}

// SkipToLineEnd skips separators that may trail a construct on its line.
func SkipToLineEnd(src []byte, start int, backwards bool) int {
	return SkipChars(src, start, func(c byte) bool {
		return c == ',' || c == ';' || isSpace(c)
	}, backwards)
}

// SkipEverythingButNewline skips to the next line break.
func SkipEverythingButNewline(src []byte, start int, backwards bool) int {
	return SkipChars(src, start, func(c byte) bool { return !isNewline(c) }, backwards)
}

// SkipNewline skips exactly one line ending (LF, CRLF or CR) at start.
func SkipNewline(src []byte, start int, backwards bool) int {
	if start < 0 || start >= len(src) {
		return start
	}

	if backwards {
		if start >= 1 && src[start-1] == '\r' && src[start] == '\n' {
			return start - 2
		}
		if isNewline(src[start]) {
			return start - 1
		}
		return start
	}

	if src[start] == '\r' && start+1 < len(src) && src[start+1] == '\n' {
		return start + 2
	}
	if isNewline(src[start]) {
		return start + 1
	}
	return start
}

// SkipInlineComment skips a block comment starting at start. Nested block
// comments are balanced.
func SkipInlineComment(src []byte, start int) int {
	if start < 0 || start+1 >= len(src) || src[start] != '/' || src[start+1] != '*' {
		return start
	}

	depth := 0
	for i := start; i+1 < len(src); i++ {
		switch {
		case src[i] == '/' && src[i+1] == '*':
			depth++
			i++
		case src[i] == '*' && src[i+1] == '/':
			depth--
			i++
			if depth == 0 {
				return i + 1
			}
		}
	}
	return start
}

// SkipTrailingComment skips a line comment starting at start.
func SkipTrailingComment(src []byte, start int) int {
	if start < 0 || start+1 >= len(src) || src[start] != '/' || src[start+1] != '/' {
		return start
	}
	return SkipEverythingButNewline(src, start, false)
}

// NextNonSpaceNonComment returns the offset of the first byte at or after
// start that is neither whitespace nor part of a comment.
func NextNonSpaceNonComment(src []byte, start int) int {
	old := NotFound - 1
	idx := start
	for idx != old {
		old = idx
		idx = SkipWhitespace(src, idx, false)
		idx = SkipInlineComment(src, idx)
		idx = SkipTrailingComment(src, idx)
	}
	return idx
}

// HasNewline reports whether a line break follows start (or precedes it when
// backwards) with only blanks in between.
func HasNewline(src []byte, start int, backwards bool) bool {
	from := start
	if backwards {
		from = start - 1
	}
	idx := SkipSpaces(src, from, backwards)
	return idx != SkipNewline(src, idx, backwards)
}

// HasNewlineInRange reports whether src[start:end] contains a line break.
func HasNewlineInRange(src []byte, start, end int) bool {
	start, end = max(start, 0), min(end, len(src))
	for i := start; i < end; i++ {
		if src[i] == '\n' {
			return true
		}
	}
	return false
}

// IsNextLineEmpty reports whether the line after the one containing start is
// blank. Separators and comments trailing start on its line are skipped.
func IsNextLineEmpty(src []byte, start int) bool {
	old := NotFound - 1
	idx := start
	for idx != old {
		old = idx
		idx = SkipToLineEnd(src, idx, false)
		idx = SkipInlineComment(src, idx)
		idx = SkipSpaces(src, idx, false)
	}
	idx = SkipTrailingComment(src, idx)
	idx = SkipNewline(src, idx, false)
	return idx != NotFound && HasNewline(src, idx, false)
}

// IsPreviousLineEmpty reports whether the line before the one containing
// start is blank.
func IsPreviousLineEmpty(src []byte, start int) bool {
	idx := start - 1
	idx = SkipSpaces(src, idx, true)
	idx = SkipNewline(src, idx, true)
	idx = SkipSpaces(src, idx, true)
	return idx != SkipNewline(src, idx, true)
}

// IsBlank reports whether b contains only whitespace.
func IsBlank(b []byte) bool {
	for _, c := range b {
		if !isWhitespace(c) {
			return false
		}
	}
	return true
}
