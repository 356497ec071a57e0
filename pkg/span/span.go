// Package span maps byte offsets in source text to lines and columns and
// provides the scanning helpers the formatter uses to reason about comments,
// blank lines and same-line adjacency.
package span

import "fmt"

// Span represents a half-open byte range [Start, End) in the source content.
type Span struct {
	// Start is the byte index where the range begins (inclusive).
	Start int

	// End is the byte index where the range ends (exclusive).
	End int
}

// New returns the span [start, end).
func New(start, end int) Span {
	return Span{Start: start, End: end}
}

// Len returns the length of the range in bytes.
func (s Span) Len() int {
	return s.End - s.Start
}

// IsEmpty returns true if the range has zero length.
func (s Span) IsEmpty() bool {
	return s.Start == s.End
}

// IsValid reports whether Start <= End and both are non-negative.
func (s Span) IsValid() bool {
	return s.Start >= 0 && s.Start <= s.End
}

// Contains returns true if the given offset is within this range.
func (s Span) Contains(offset int) bool {
	return offset >= s.Start && offset < s.End
}

// ContainsSpan returns true if other lies entirely within s.
func (s Span) ContainsSpan(other Span) bool {
	return s.Start <= other.Start && other.End <= s.End
}

// Overlaps returns true if the two ranges share at least one byte.
func (s Span) Overlaps(other Span) bool {
	return s.Start < other.End && other.Start < s.End
}

// Cover returns the smallest span containing both s and other.
func (s Span) Cover(other Span) Span {
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}

// Text returns the bytes of content covered by the span, clamped to content.
func (s Span) Text(content []byte) []byte {
	start, end := max(s.Start, 0), min(s.End, len(content))
	if start >= end {
		return nil
	}
	return content[start:end]
}

func (s Span) String() string {
	return fmt.Sprintf("%d-%d", s.Start, s.End)
}
