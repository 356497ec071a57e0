package comments

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for comment handling.
var (
	// ErrCommentNotPrinted means a print rule dropped an attached comment.
	ErrCommentNotPrinted = errors.New("comment was not printed")

	// ErrOverlappingNode means a node span partially overlaps a comment.
	ErrOverlappingNode = errors.New("comment overlaps node")

	// ErrCommentOutOfRange means a comment span lies outside the source.
	ErrCommentOutOfRange = errors.New("comment span out of range")
)

// UnprintedError lists the comments that were attached but never printed.
type UnprintedError struct {
	Comments []*Comment
}

// Error implements the error interface.
func (e *UnprintedError) Error() string {
	parts := make([]string, 0, len(e.Comments))
	for _, c := range e.Comments {
		parts = append(parts, fmt.Sprintf("%q at %s", c.Text, c.Span))
	}
	return fmt.Sprintf("%s: %s", ErrCommentNotPrinted, strings.Join(parts, ", "))
}

// Unwrap allows errors.Is(err, ErrCommentNotPrinted).
func (e *UnprintedError) Unwrap() error {
	return ErrCommentNotPrinted
}

// EnsureAllPrinted returns an *UnprintedError when some comment of list has
// not been printed.
func EnsureAllPrinted(list []*Comment) error {
	var missing []*Comment
	for _, c := range list {
		if !c.Printed {
			missing = append(missing, c)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return &UnprintedError{Comments: missing}
}
