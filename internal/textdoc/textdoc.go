// Package textdoc models the host document consumed by the decoration
// pipeline: line and offset addressing over an immutable text snapshot, a
// primary selection, and splice changes that map the selection.
package textdoc

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Document is a read-only text snapshot addressed by byte offset and by
// 1-based line number.
type Document interface {
	// Len returns the byte length of the text.
	Len() int

	// LineCount returns the number of lines; an empty document has 1 line.
	LineCount() int

	// Line returns line n, clamped into [1, LineCount].
	Line(n int) Line

	// LineAt returns the line containing pos, clamped into [0, Len].
	LineAt(pos int) Line

	// Slice returns the text within [from, to).
	Slice(from, to int) string

	String() string
}

// Line is a single line of a Document; To excludes the line break.
type Line struct {
	Number   int
	From, To int
	Text     string
}

// Format writes "N@from:to" followed by the line text under `%+v`.
func (ln Line) Format(f fmt.State, _ rune) {
	fmt.Fprintf(f, "%v@%v:%v", ln.Number, ln.From, ln.To)
	if f.Flag('+') {
		fmt.Fprintf(f, " %q", ln.Text)
	}
}

// Selection is a single range selection; the Head is the cursor.
type Selection struct {
	Anchor, Head int
}

// Cursor returns a collapsed selection at pos.
func Cursor(pos int) Selection { return Selection{pos, pos} }

// Empty returns true if the selection is just a cursor.
func (sel Selection) Empty() bool { return sel.Anchor == sel.Head }

// Change replaces the text within [From, To) with Insert. If Selection is
// non-nil it becomes the new selection, otherwise the old one is mapped
// through the change.
type Change struct {
	From, To  int
	Insert    string
	Selection *Selection
}

// Delta returns the change in document length caused by applying c.
func (c Change) Delta() int { return len(c.Insert) - (c.To - c.From) }

// ErrChangeRange is returned when a change does not fit the document.
var ErrChangeRange = errors.New("change out of range")

// Lines splits any document into its line texts.
func Lines(doc Document) []string {
	lines := make([]string, doc.LineCount())
	for i := range lines {
		lines[i] = doc.Line(i + 1).Text
	}
	return lines
}

// Text is an immutable Document over a string.
type Text struct {
	text   string
	starts []int // line start offsets
}

// NewText indexes the lines of s.
func NewText(s string) Text {
	starts := []int{0}
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return Text{text: s, starts: starts}
}

// Len returns the byte length of the text.
func (t Text) Len() int { return len(t.text) }

// LineCount returns the number of lines.
func (t Text) LineCount() int {
	if t.starts == nil {
		return 1
	}
	return len(t.starts)
}

// Line returns line n, clamped into [1, LineCount].
func (t Text) Line(n int) Line {
	if n < 1 {
		n = 1
	} else if m := t.LineCount(); n > m {
		n = m
	}
	if t.starts == nil {
		return Line{Number: 1}
	}
	from := t.starts[n-1]
	to := len(t.text)
	if n < len(t.starts) {
		to = t.starts[n] - 1
	}
	text := t.text[from:to]
	if strings.HasSuffix(text, "\r") {
		text = text[:len(text)-1]
		to--
	}
	return Line{Number: n, From: from, To: to, Text: text}
}

// LineAt returns the line containing pos.
func (t Text) LineAt(pos int) Line {
	n := sort.Search(len(t.starts), func(i int) bool { return t.starts[i] > pos })
	return t.Line(n)
}

// Slice returns the text within [from, to), clamping both ends.
func (t Text) Slice(from, to int) string {
	from, to = clamp(from, len(t.text)), clamp(to, len(t.text))
	if to < from {
		return ""
	}
	return t.text[from:to]
}

func (t Text) String() string { return t.text }

func clamp(pos, max int) int {
	if pos < 0 {
		return 0
	}
	if pos > max {
		return max
	}
	return pos
}
