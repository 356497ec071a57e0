// Package embed formats Rust code fences inside Markdown documents. Fences
// are located with goldmark; each one the caller's formatter accepts is
// replaced in place and everything else in the document is left untouched.
package embed

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/rsfmt/pkg/diff"
	"github.com/yaklabco/rsfmt/pkg/langdetect"
	"github.com/yaklabco/rsfmt/pkg/span"
)

// ErrInconsistentIndent marks a fence whose lines do not share the
// indentation of its container.
var ErrInconsistentIndent = errors.New("inconsistent indentation in code fence")

// Formatter formats the source of one code block.
type Formatter func(src []byte) (string, error)

// Block is a fenced code block found in a document.
type Block struct {
	// Info is the fence info string.
	Info     string
	Language langdetect.Language

	// Span covers the block's content lines, including container
	// indentation and the final newline.
	Span span.Span

	// Indent is the container prefix stripped from every content line.
	Indent string

	// Line is the 1-based line of the first content line.
	Line int

	// Code is the block content with the indent removed.
	Code []byte

	// Err is set when the block cannot be rewritten in place.
	Err error
}

// BlockError reports a block the formatter rejected.
type BlockError struct {
	Line int
	Err  error
}

func (e *BlockError) Error() string {
	return fmt.Sprintf("code block at line %d: %v", e.Line, e.Err)
}

func (e *BlockError) Unwrap() error {
	return e.Err
}

// Result is the outcome of Format.
type Result struct {
	Output []byte

	// Blocks is the number of Rust blocks found.
	Blocks int

	// Changed is the number of blocks whose content changed.
	Changed int

	// Skipped lists the blocks left as they were.
	Skipped []*BlockError
}

//nolint:gochecknoglobals // goldmark instances are safe for concurrent parsing.
var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// FindBlocks returns the fenced code blocks of src in document order.
func FindBlocks(src []byte) []Block {
	doc := markdown.Parser().Parse(text.NewReader(src), parser.WithContext(parser.NewContext()))
	index := span.NewIndex(src)

	var blocks []Block
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		fence, ok := n.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}
		if block, ok := newBlock(src, index, fence); ok {
			blocks = append(blocks, block)
		}
		return ast.WalkSkipChildren, nil
	})

	return blocks
}

func newBlock(src []byte, index *span.Index, fence *ast.FencedCodeBlock) (Block, bool) {
	lines := fence.Lines()
	if lines.Len() == 0 {
		return Block{}, false
	}

	var info string
	if fence.Info != nil {
		info = string(fence.Info.Segment.Value(src))
	}

	first := lines.At(0)
	last := lines.At(lines.Len() - 1)
	start := lineStart(src, first.Start)

	block := Block{
		Info:   info,
		Span:   span.New(start, last.Stop),
		Indent: string(src[start:first.Start]),
		Line:   index.Line(first.Start),
	}

	var code bytes.Buffer
	for i := range lines.Len() {
		seg := lines.At(i)
		prefix := string(src[lineStart(src, seg.Start):seg.Start])
		body := seg.Value(src)
		if seg.Padding > 0 || (prefix != block.Indent && !span.IsBlank(body)) {
			block.Err = ErrInconsistentIndent
		}
		code.Write(body)
	}
	block.Code = code.Bytes()
	block.Language = langdetect.ForFence(info, block.Code)

	// An unclosed fence at the end of input has no final newline.
	if last.Stop == 0 || src[last.Stop-1] != '\n' {
		block.Err = errors.New("code fence is not closed")
	}

	return block, true
}

// Format rewrites every Rust code fence in src with formatter. Blocks that
// fail to format are left as they were and listed in Result.Skipped.
func Format(ctx context.Context, src []byte, formatter Formatter) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("format embedded code: %w", err)
	}

	result := &Result{Output: src}

	var edits []diff.Edit
	for _, block := range FindBlocks(src) {
		if block.Language != langdetect.Rust {
			continue
		}
		result.Blocks++

		if block.Err != nil {
			result.Skipped = append(result.Skipped, &BlockError{Line: block.Line, Err: block.Err})
			continue
		}

		formatted, err := formatter(block.Code)
		if err != nil {
			result.Skipped = append(result.Skipped, &BlockError{Line: block.Line, Err: err})
			continue
		}

		replacement := indent(formatted, block.Indent)
		if replacement == string(block.Span.Text(src)) {
			continue
		}
		result.Changed++
		edits = append(edits, diff.Edit{Start: block.Span.Start, End: block.Span.End, Text: replacement})
	}

	out, err := diff.Apply(src, edits)
	if err != nil {
		return nil, fmt.Errorf("apply code block edits: %w", err)
	}
	result.Output = out

	return result, nil
}

func lineStart(src []byte, offset int) int {
	return bytes.LastIndexByte(src[:offset], '\n') + 1
}

// indent prefixes every line of code with prefix and makes sure the result
// ends in a newline. Empty code stays empty.
func indent(code, prefix string) string {
	if code == "" {
		return ""
	}
	if !strings.HasSuffix(code, "\n") {
		code += "\n"
	}
	if prefix == "" {
		return code
	}

	// Blank lines keep the container markers, as in "> " quoting.
	blank := strings.TrimRight(prefix, " \t")

	var sb strings.Builder
	for _, line := range strings.SplitAfter(code, "\n") {
		switch {
		case line == "":
		case strings.TrimSpace(line) == "":
			sb.WriteString(blank)
			sb.WriteString(line)
		default:
			sb.WriteString(prefix)
			sb.WriteString(line)
		}
	}
	return sb.String()
}
