// Package comments attaches source comments to syntax tree nodes so that
// print rules can emit them next to the code they describe.
//
// Attach classifies every comment as leading, trailing or dangling relative
// to exactly one node and records the result in a Table. Printing marks each
// comment as printed; EnsureAllPrinted reports any comment that was lost.
package comments

import (
	"fmt"
	"strings"

	"github.com/yaklabco/rsfmt/pkg/span"
	"github.com/yaklabco/rsfmt/pkg/tree"
)

// Kind distinguishes line comments from block comments.
type Kind int

const (
	// KindLine is a comment running to the end of the line (// ...).
	KindLine Kind = iota
	// KindBlock is a delimited comment (/* ... */).
	KindBlock
)

func (k Kind) String() string {
	if k == KindBlock {
		return "block"
	}
	return "line"
}

// Placement describes where a comment sits on its source line.
type Placement int

const (
	// PlacementUnknown is the value before attachment.
	PlacementUnknown Placement = iota
	// PlacementOwnLine means only whitespace precedes the comment on its line.
	PlacementOwnLine
	// PlacementEndOfLine means only whitespace follows the comment on its line.
	PlacementEndOfLine
	// PlacementRemaining means code surrounds the comment on its line.
	PlacementRemaining
)

func (p Placement) String() string {
	switch p {
	case PlacementOwnLine:
		return "ownLine"
	case PlacementEndOfLine:
		return "endOfLine"
	case PlacementRemaining:
		return "remaining"
	default:
		return "unknown"
	}
}

// Marker names the delimited child list a dangling comment belongs to.
type Marker string

// Known markers. Field names of delimited lists use the same spelling.
const (
	MarkerNone          Marker = ""
	MarkerArguments     Marker = "arguments"
	MarkerParameters    Marker = "parameters"
	MarkerItems         Marker = "items"
	MarkerProperties    Marker = "properties"
	MarkerMembers       Marker = "members"
	MarkerBody          Marker = "body"
	MarkerCases         Marker = "cases"
	MarkerTypeArguments Marker = "typeArguments"
	MarkerLtParameters  Marker = "ltParameters"
	MarkerGenerics      Marker = "generics"
	MarkerSpecifiers    Marker = "specifiers"
	MarkerRules         Marker = "rules"
	MarkerMatch         Marker = "match"
	MarkerTransform     Marker = "transform"
	MarkerSegments      Marker = "segments"
)

var knownMarkers = map[Marker]bool{
	MarkerArguments:     true,
	MarkerParameters:    true,
	MarkerItems:         true,
	MarkerProperties:    true,
	MarkerMembers:       true,
	MarkerBody:          true,
	MarkerCases:         true,
	MarkerTypeArguments: true,
	MarkerLtParameters:  true,
	MarkerGenerics:      true,
	MarkerSpecifiers:    true,
	MarkerRules:         true,
	MarkerMatch:         true,
	MarkerTransform:     true,
	MarkerSegments:      true,
}

// IsKnownMarker reports whether m is one of the enumerated markers.
func IsKnownMarker(m Marker) bool {
	return knownMarkers[m]
}

// Comment is one source comment together with its attachment.
type Comment struct {
	Span span.Span

	// Text is the full comment including its delimiters.
	Text string
	Kind Kind

	Leading   bool
	Trailing  bool
	Placement Placement
	Marker    Marker

	// Printed is set once a print rule emitted the comment.
	Printed bool

	// Unignore marks comments of a node printed verbatim that must still be
	// printed by the regular comment printer.
	Unignore bool

	// Owner is the node the comment is attached to.
	Owner tree.Node

	// Nodes around the comment, recorded during attachment.
	Enclosing tree.Node
	Preceding tree.Node
	Following tree.Node
}

// New returns an unattached comment for src[s.Start:s.End]. The kind is
// derived from the opening delimiter.
func New(s span.Span, src []byte) *Comment {
	text := string(s.Text(src))
	kind := KindLine
	if strings.HasPrefix(text, "/*") {
		kind = KindBlock
	}
	return &Comment{Span: s, Text: text, Kind: kind}
}

// IsBlock reports whether c is a block comment.
func (c *Comment) IsBlock() bool {
	return c.Kind == KindBlock
}

// IsDangling reports whether c is neither leading nor trailing.
func (c *Comment) IsDangling() bool {
	return !c.Leading && !c.Trailing
}

// Body returns the comment text without delimiters and surrounding blanks.
func (c *Comment) Body() string {
	body := c.Text
	if c.Kind == KindBlock {
		body = strings.TrimPrefix(body, "/*")
		body = strings.TrimSuffix(body, "*/")
	} else {
		body = strings.TrimPrefix(body, "//")
	}
	return strings.TrimSpace(body)
}

// Role returns "leading", "trailing" or "dangling".
func (c *Comment) Role() string {
	switch {
	case c.Leading:
		return "leading"
	case c.Trailing:
		return "trailing"
	default:
		return "dangling"
	}
}

// Describe renders c on one line for diagnostics.
func (c *Comment) Describe() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s %q at %s", c.Role(), c.Placement, c.Text, c.Span)
	if c.Marker != MarkerNone {
		fmt.Fprintf(&sb, " [%s]", c.Marker)
	}
	if c.Owner != nil {
		fmt.Fprintf(&sb, " -> %s@%s", c.Owner.Kind(), c.Owner.Span())
	}
	return sb.String()
}
