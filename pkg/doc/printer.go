package doc

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/yaklabco/rsfmt/pkg/invariant"
)

// Default layout settings.
const (
	DefaultPrintWidth = 80
	DefaultTabWidth   = 2
)

// PrintOptions configures the layout engine.
type PrintOptions struct {
	// PrintWidth is the line width the printer tries to stay within.
	PrintWidth int

	// TabWidth is the width of one indentation level.
	TabWidth int

	// UseTabs indents with tabs instead of spaces.
	UseTabs bool

	// NewLine is emitted for every line break. Defaults to "\n".
	NewLine string
}

// DefaultPrintOptions returns the engine defaults.
func DefaultPrintOptions() PrintOptions {
	return PrintOptions{
		PrintWidth: DefaultPrintWidth,
		TabWidth:   DefaultTabWidth,
		NewLine:    "\n",
	}
}

func (o PrintOptions) withDefaults() PrintOptions {
	if o.PrintWidth <= 0 {
		o.PrintWidth = DefaultPrintWidth
	}
	if o.TabWidth <= 0 {
		o.TabWidth = DefaultTabWidth
	}
	if o.NewLine == "" {
		o.NewLine = "\n"
	}
	return o
}

// PrintResult is the output of PrintDocToString.
type PrintResult struct {
	Formatted string

	// CursorOffset is the byte offset of the first Cursor in Formatted, or
	// -1 when the doc has none.
	CursorOffset int

	// CursorText is the text printed between two Cursor docs.
	CursorText string
}

type mode int

const (
	modeBreak mode = iota
	modeFlat
)

type indentPartKind int

const (
	partIndent indentPartKind = iota
	partStringAlign
	partNumberAlign
)

type indentPart struct {
	kind indentPartKind
	n    int
	s    string
}

type indentation struct {
	value  string
	length int
	queue  []indentPart
	root   *indentation
}

type command struct {
	ind  *indentation
	mode mode
	doc  Doc
}

type outPart struct {
	text   string
	cursor bool
}

type printer struct {
	opts            PrintOptions
	groupModes      map[GroupID]mode
	cmds            []command
	out             []outPart
	lineSuffixes    []command
	pos             int
	shouldRemeasure bool
	cursorCount     int
}

// PrintDocToString lays out d within opts.PrintWidth. Exceeding the width is
// never an error; a malformed doc yields an error wrapping ErrInvalidDoc.
func PrintDocToString(d Doc, opts PrintOptions) (result PrintResult, err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("%w: %w", ErrInvalidDoc, err)
			result = PrintResult{CursorOffset: -1}
		}
	}()
	defer invariant.Recover(&err)

	p := &printer{
		opts:       opts.withDefaults(),
		groupModes: make(map[GroupID]mode),
	}

	PropagateBreaks(d)
	p.print(d)

	return p.result(), nil
}

// StringWidth returns the display width of s: East Asian wide runes count
// as two columns, combining marks as zero.
func StringWidth(s string) int {
	return runewidth.StringWidth(s)
}

func (p *printer) push(cmds ...command) {
	p.cmds = append(p.cmds, cmds...)
}

func (p *printer) pop() command {
	cmd := p.cmds[len(p.cmds)-1]
	p.cmds = p.cmds[:len(p.cmds)-1]
	return cmd
}

func (p *printer) emit(s string) {
	p.out = append(p.out, outPart{text: s})
}

func (p *printer) trim() int {
	var count int
	p.out, count = trimOutput(p.out)
	return count
}

func (p *printer) groupMode(id GroupID, current mode) mode {
	if id.IsZero() {
		return current
	}
	if m, ok := p.groupModes[id]; ok {
		return m
	}
	return modeFlat
}

func (p *printer) print(root Doc) {
	width := p.opts.PrintWidth
	p.push(command{ind: &indentation{}, mode: modeBreak, doc: root})

	for len(p.cmds) > 0 {
		cmd := p.pop()
		ind := cmd.ind

		switch d := cmd.doc.(type) {
		case nil:
		case Text:
			s := string(d)
			if p.opts.NewLine != "\n" {
				s = strings.ReplaceAll(s, "\n", p.opts.NewLine)
			}
			p.emit(s)
			p.pos += StringWidth(s)

		case *ConcatDoc:
			for i := len(d.Parts) - 1; i >= 0; i-- {
				p.push(command{ind: ind, mode: cmd.mode, doc: d.Parts[i]})
			}

		case CursorDoc:
			invariant.Assert(p.cursorCount < 2, "too many cursors in doc")
			p.out = append(p.out, outPart{cursor: true})
			p.cursorCount++

		case *IndentDoc:
			p.push(command{ind: makeIndent(ind, p.opts), mode: cmd.mode, doc: d.Contents})

		case *AlignDoc:
			p.push(command{ind: makeAlign(ind, d, p.opts), mode: cmd.mode, doc: d.Contents})

		case TrimDoc:
			p.pos -= p.trim()

		case *GroupDoc:
			p.printGroup(cmd, d, width)

		case *FillDoc:
			p.printFill(cmd, d, width)

		case *IfBreakDoc:
			contents := d.FlatContents
			if p.groupMode(d.GroupID, cmd.mode) == modeBreak {
				contents = d.BreakContents
			}
			if contents != nil {
				p.push(command{ind: ind, mode: cmd.mode, doc: contents})
			}

		case *IndentIfBreakDoc:
			broken := p.groupMode(d.GroupID, cmd.mode) == modeBreak
			contents := d.Contents
			if broken != d.Negate {
				contents = Indent(d.Contents)
			}
			p.push(command{ind: ind, mode: cmd.mode, doc: contents})

		case *LineSuffixDoc:
			p.lineSuffixes = append(p.lineSuffixes, command{ind: ind, mode: cmd.mode, doc: d.Contents})

		case LineSuffixBoundaryDoc:
			if len(p.lineSuffixes) > 0 {
				p.push(command{ind: ind, mode: cmd.mode, doc: HardLineWithoutBreakParent})
			}

		case LineDoc:
			p.printLine(cmd, d)

		case *LabelDoc:
			p.push(command{ind: ind, mode: cmd.mode, doc: d.Contents})

		case BreakParentDoc:

		default:
			invariant.Unreachable("doc", fmt.Sprintf("%T", d))
		}

		if len(p.cmds) == 0 && len(p.lineSuffixes) > 0 {
			p.flushLineSuffixes()
		}
	}
}

func (p *printer) flushLineSuffixes() {
	for i := len(p.lineSuffixes) - 1; i >= 0; i-- {
		p.push(p.lineSuffixes[i])
	}
	p.lineSuffixes = p.lineSuffixes[:0]
}

func (p *printer) printGroup(cmd command, g *GroupDoc, width int) {
	ind := cmd.ind

	switch {
	case cmd.mode == modeFlat && !p.shouldRemeasure:
		next := modeFlat
		if g.Break {
			next = modeBreak
		}
		p.push(command{ind: ind, mode: next, doc: g.Contents})

	default:
		p.shouldRemeasure = false

		next := command{ind: ind, mode: modeFlat, doc: g.Contents}
		rem := width - p.pos
		hasLineSuffix := len(p.lineSuffixes) > 0

		switch {
		case !g.Break && p.fits(next, p.cmds, rem, hasLineSuffix, false):
			p.push(next)

		case len(g.ExpandedStates) > 0:
			mostExpanded := g.ExpandedStates[len(g.ExpandedStates)-1]
			if g.Break {
				p.push(command{ind: ind, mode: modeBreak, doc: mostExpanded})
				break
			}
			chosen := command{ind: ind, mode: modeBreak, doc: mostExpanded}
			for _, state := range g.ExpandedStates[1:] {
				candidate := command{ind: ind, mode: modeFlat, doc: state}
				if p.fits(candidate, p.cmds, rem, hasLineSuffix, false) {
					chosen = candidate
					break
				}
			}
			p.push(chosen)

		default:
			p.push(command{ind: ind, mode: modeBreak, doc: g.Contents})
		}
	}

	if !g.ID.IsZero() {
		p.groupModes[g.ID] = p.cmds[len(p.cmds)-1].mode
	}
}

// printFill handles the first [content, separator, content] triple of f and
// pushes the remainder as a new fill.
func (p *printer) printFill(cmd command, f *FillDoc, width int) {
	parts := f.Parts
	if len(parts) == 0 {
		return
	}

	ind := cmd.ind
	rem := width - p.pos
	hasLineSuffix := len(p.lineSuffixes) > 0

	content := parts[0]
	contentFlat := command{ind: ind, mode: modeFlat, doc: content}
	contentBreak := command{ind: ind, mode: modeBreak, doc: content}
	contentFits := p.fits(contentFlat, nil, rem, hasLineSuffix, true)

	if len(parts) == 1 {
		if contentFits {
			p.push(contentFlat)
		} else {
			p.push(contentBreak)
		}
		return
	}

	whitespace := parts[1]
	whitespaceFlat := command{ind: ind, mode: modeFlat, doc: whitespace}
	whitespaceBreak := command{ind: ind, mode: modeBreak, doc: whitespace}

	if len(parts) == 2 {
		if contentFits {
			p.push(whitespaceFlat, contentFlat)
		} else {
			p.push(whitespaceBreak, contentBreak)
		}
		return
	}

	remaining := command{ind: ind, mode: cmd.mode, doc: &FillDoc{Parts: parts[2:]}}
	pair := command{ind: ind, mode: modeFlat, doc: &ConcatDoc{Parts: []Doc{content, whitespace, parts[2]}}}
	pairFits := p.fits(pair, nil, rem, hasLineSuffix, true)

	switch {
	case pairFits:
		p.push(remaining, whitespaceFlat, contentFlat)
	case contentFits:
		p.push(remaining, whitespaceBreak, contentFlat)
	default:
		p.push(remaining, whitespaceBreak, contentBreak)
	}
}

func (p *printer) printLine(cmd command, line LineDoc) {
	if cmd.mode == modeFlat {
		if !line.Hard {
			if !line.Soft {
				p.emit(" ")
				p.pos++
			}
			return
		}
		// A hard line inside a flat group invalidates the measurements of
		// the groups that follow on this line.
		p.shouldRemeasure = true
	}

	if len(p.lineSuffixes) > 0 {
		p.push(cmd)
		p.flushLineSuffixes()
		return
	}

	ind := cmd.ind
	if line.Literal {
		if ind.root != nil {
			p.emit(p.opts.NewLine)
			p.emit(ind.root.value)
			p.pos = ind.root.length
		} else {
			p.emit(p.opts.NewLine)
			p.pos = 0
		}
		return
	}

	p.pos -= p.trim()
	p.emit(p.opts.NewLine + ind.value)
	p.pos = ind.length
}

// fits reports whether next, followed by the pending rest commands, fits in
// width columns up to the next possible line break. In mustBeFlat mode a
// forced group break fails the test.
func (p *printer) fits(next command, rest []command, width int, hasLineSuffix, mustBeFlat bool) bool {
	restIdx := len(rest)
	cmds := []command{next}
	var out []outPart

	for width >= 0 {
		if len(cmds) == 0 {
			if restIdx == 0 {
				return true
			}
			restIdx--
			cmds = append(cmds, rest[restIdx])
			continue
		}

		cmd := cmds[len(cmds)-1]
		cmds = cmds[:len(cmds)-1]

		switch d := cmd.doc.(type) {
		case nil:
		case Text:
			out = append(out, outPart{text: string(d)})
			width -= StringWidth(string(d))

		case *ConcatDoc:
			for i := len(d.Parts) - 1; i >= 0; i-- {
				cmds = append(cmds, command{mode: cmd.mode, doc: d.Parts[i]})
			}

		case *FillDoc:
			for i := len(d.Parts) - 1; i >= 0; i-- {
				cmds = append(cmds, command{mode: cmd.mode, doc: d.Parts[i]})
			}

		case *IndentDoc:
			cmds = append(cmds, command{mode: cmd.mode, doc: d.Contents})
		case *AlignDoc:
			cmds = append(cmds, command{mode: cmd.mode, doc: d.Contents})
		case *IndentIfBreakDoc:
			cmds = append(cmds, command{mode: cmd.mode, doc: d.Contents})
		case *LabelDoc:
			cmds = append(cmds, command{mode: cmd.mode, doc: d.Contents})

		case TrimDoc:
			var trimmed int
			out, trimmed = trimOutput(out)
			width += trimmed

		case *GroupDoc:
			if mustBeFlat && d.Break {
				return false
			}
			groupMode := cmd.mode
			if d.Break {
				groupMode = modeBreak
			}
			contents := d.Contents
			if len(d.ExpandedStates) > 0 && groupMode == modeBreak {
				contents = d.ExpandedStates[len(d.ExpandedStates)-1]
			}
			cmds = append(cmds, command{mode: groupMode, doc: contents})

		case *IfBreakDoc:
			contents := d.FlatContents
			if p.groupMode(d.GroupID, cmd.mode) == modeBreak {
				contents = d.BreakContents
			}
			if contents != nil {
				cmds = append(cmds, command{mode: cmd.mode, doc: contents})
			}

		case LineDoc:
			if cmd.mode == modeBreak || d.Hard {
				return true
			}
			if !d.Soft {
				out = append(out, outPart{text: " "})
				width--
			}

		case *LineSuffixDoc:
			hasLineSuffix = true

		case LineSuffixBoundaryDoc:
			if hasLineSuffix {
				return true
			}

		case BreakParentDoc, CursorDoc:

		default:
			invariant.Unreachable("doc", fmt.Sprintf("%T", d))
		}
	}

	return false
}

// trimOutput removes trailing blanks and tabs from out, keeping cursor
// markers in place, and returns the number of removed characters.
func trimOutput(out []outPart) ([]outPart, int) {
	trimCount, cursorCount := 0, 0
	idx := len(out) - 1

outer:
	for ; idx >= 0; idx-- {
		last := out[idx]
		if last.cursor {
			cursorCount++
			continue
		}
		for i := len(last.text) - 1; i >= 0; i-- {
			c := last.text[i]
			if c == ' ' || c == '\t' {
				trimCount++
				continue
			}
			out[idx].text = last.text[:i+1]
			break outer
		}
	}

	if trimCount > 0 || cursorCount > 0 {
		out = out[:idx+1]
		for ; cursorCount > 0; cursorCount-- {
			out = append(out, outPart{cursor: true})
		}
	}
	return out, trimCount
}

func (p *printer) result() PrintResult {
	var (
		sb      strings.Builder
		cursors []int
	)
	for _, part := range p.out {
		if part.cursor {
			cursors = append(cursors, sb.Len())
			continue
		}
		sb.WriteString(part.text)
	}

	result := PrintResult{Formatted: sb.String(), CursorOffset: -1}
	if len(cursors) > 0 {
		result.CursorOffset = cursors[0]
	}
	if len(cursors) > 1 {
		result.CursorText = result.Formatted[cursors[0]:cursors[1]]
	}
	return result
}

func makeIndent(ind *indentation, opts PrintOptions) *indentation {
	return generateIndent(ind, &indentPart{kind: partIndent}, opts)
}

func makeAlign(ind *indentation, align *AlignDoc, opts PrintOptions) *indentation {
	switch align.Kind {
	case AlignDedentToRoot:
		if ind.root != nil {
			return ind.root
		}
		return &indentation{}
	case AlignDedent:
		return generateIndent(ind, nil, opts)
	case AlignMarkAsRoot:
		marked := *ind
		marked.root = ind
		return &marked
	case AlignText:
		if align.S == "" {
			return ind
		}
		return generateIndent(ind, &indentPart{kind: partStringAlign, s: align.S}, opts)
	case AlignSpaces:
		if align.N == 0 {
			return ind
		}
		return generateIndent(ind, &indentPart{kind: partNumberAlign, n: align.N}, opts)
	default:
		invariant.Unreachable("alignKind", align.Kind)
		return ind
	}
}

// generateIndent returns ind extended by part, or with its innermost part
// removed when part is nil. Numeric alignment that trails the queue is
// always rendered as spaces; inner numeric alignment follows UseTabs.
func generateIndent(ind *indentation, part *indentPart, opts PrintOptions) *indentation {
	var queue []indentPart
	if part == nil {
		if len(ind.queue) > 0 {
			queue = append(queue, ind.queue[:len(ind.queue)-1]...)
		}
	} else {
		queue = make([]indentPart, 0, len(ind.queue)+1)
		queue = append(queue, ind.queue...)
		queue = append(queue, *part)
	}

	var (
		value      strings.Builder
		length     int
		lastTabs   int
		lastSpaces int
	)

	addTabs := func(count int) {
		value.WriteString(strings.Repeat("\t", count))
		length += opts.TabWidth * count
	}
	addSpaces := func(count int) {
		value.WriteString(strings.Repeat(" ", count))
		length += count
	}
	resetLast := func() {
		lastTabs, lastSpaces = 0, 0
	}
	flushSpaces := func() {
		if lastSpaces > 0 {
			addSpaces(lastSpaces)
		}
		resetLast()
	}
	flushTabs := func() {
		if lastTabs > 0 {
			addTabs(lastTabs)
		}
		resetLast()
	}
	flush := func() {
		if opts.UseTabs {
			flushTabs()
		} else {
			flushSpaces()
		}
	}

	for _, item := range queue {
		switch item.kind {
		case partIndent:
			flush()
			if opts.UseTabs {
				addTabs(1)
			} else {
				addSpaces(opts.TabWidth)
			}
		case partStringAlign:
			flush()
			value.WriteString(item.s)
			length += len(item.s)
		case partNumberAlign:
			lastTabs++
			lastSpaces += item.n
		}
	}
	flushSpaces()

	return &indentation{
		value:  value.String(),
		length: length,
		queue:  queue,
		root:   ind.root,
	}
}
