package rustlite

import (
	"errors"
	"fmt"

	"github.com/yaklabco/rsfmt/pkg/span"
)

// ErrSyntax is wrapped by every *SyntaxError.
var ErrSyntax = errors.New("syntax error")

// SyntaxError reports a lexing or parsing failure at a source position.
type SyntaxError struct {
	Offset  int
	Line    int
	Column  int
	Message string
}

func newSyntaxError(idx *span.Index, offset int, format string, args ...any) *SyntaxError {
	line, col := idx.LineAt(offset)
	return &SyntaxError{
		Offset:  offset,
		Line:    line,
		Column:  col,
		Message: fmt.Sprintf(format, args...),
	}
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Message)
}

// Unwrap allows errors.Is(err, ErrSyntax).
func (e *SyntaxError) Unwrap() error {
	return ErrSyntax
}
