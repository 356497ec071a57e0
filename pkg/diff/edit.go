package diff

import (
	"bytes"
	"fmt"
	"sort"
)

// Edit replaces content[Start:End] with Text.
type Edit struct {
	Start int
	End   int
	Text  string
}

// EditError describes an edit that cannot be applied.
type EditError struct {
	Edit    Edit
	Message string
}

func (e *EditError) Error() string {
	return fmt.Sprintf("invalid edit [%d:%d]: %s", e.Edit.Start, e.Edit.End, e.Message)
}

// ConflictError describes overlapping edits.
type ConflictError struct {
	First  Edit
	Second Edit
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("overlapping edits: [%d:%d] and [%d:%d]",
		e.First.Start, e.First.End, e.Second.Start, e.Second.End)
}

// Apply validates edits against content, sorts them and applies them. The
// input slice is not modified.
func Apply(content []byte, edits []Edit) ([]byte, error) {
	if len(edits) == 0 {
		return content, nil
	}

	sorted := make([]Edit, len(edits))
	copy(sorted, edits)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Start != sorted[j].Start {
			return sorted[i].Start < sorted[j].Start
		}
		return sorted[i].End < sorted[j].End
	})

	delta := 0
	for i, e := range sorted {
		switch {
		case e.Start < 0:
			return nil, &EditError{Edit: e, Message: "start offset is negative"}
		case e.End < e.Start:
			return nil, &EditError{Edit: e, Message: "end offset is before start offset"}
		case e.End > len(content):
			return nil, &EditError{
				Edit:    e,
				Message: fmt.Sprintf("end offset %d exceeds content length %d", e.End, len(content)),
			}
		case i > 0 && e.Start < sorted[i-1].End:
			return nil, &ConflictError{First: sorted[i-1], Second: e}
		}
		delta += len(e.Text) - (e.End - e.Start)
	}

	var out bytes.Buffer
	out.Grow(len(content) + delta)

	cursor := 0
	for _, e := range sorted {
		out.Write(content[cursor:e.Start])
		out.WriteString(e.Text)
		cursor = e.End
	}
	out.Write(content[cursor:])

	return out.Bytes(), nil
}
