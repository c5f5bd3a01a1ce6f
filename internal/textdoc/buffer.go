package textdoc

import (
	"fmt"
	"io"
)

// Buffer is an editable Document holding a primary selection; every Apply
// produces a fresh Text snapshot, so Documents handed out earlier stay valid.
type Buffer struct {
	Text
	sel Selection
}

// NewBuffer returns a buffer holding s with the cursor at its start.
func NewBuffer(s string) *Buffer {
	return &Buffer{Text: NewText(s)}
}

// Snapshot returns the current immutable text.
func (buf *Buffer) Snapshot() Text { return buf.Text }

// Selection returns the current selection.
func (buf *Buffer) Selection() Selection { return buf.sel }

// Cursor returns the current cursor offset.
func (buf *Buffer) Cursor() int { return buf.sel.Head }

// Select replaces the selection, clamping it into the document.
func (buf *Buffer) Select(sel Selection) {
	n := buf.Len()
	buf.sel = Selection{clamp(sel.Anchor, n), clamp(sel.Head, n)}
}

// Apply splices a change into the buffer and maps or replaces the selection.
// Offsets at or after the change start shift with the inserted text, so a
// cursor sitting where text is inserted ends up after it.
func (buf *Buffer) Apply(c Change) error {
	n := buf.Len()
	if c.From < 0 || c.To < c.From || c.To > n {
		return fmt.Errorf("%w: [%v:%v] in %v bytes", ErrChangeRange, c.From, c.To, n)
	}
	s := buf.String()
	buf.Text = NewText(s[:c.From] + c.Insert + s[c.To:])
	if c.Selection != nil {
		buf.Select(*c.Selection)
	} else {
		buf.sel = Selection{mapPos(buf.sel.Anchor, c), mapPos(buf.sel.Head, c)}
	}
	return nil
}

// ApplyAll applies changes in order, stopping at the first error.
func (buf *Buffer) ApplyAll(changes ...Change) error {
	for _, c := range changes {
		if err := buf.Apply(c); err != nil {
			return err
		}
	}
	return nil
}

func mapPos(pos int, c Change) int {
	switch {
	case pos < c.From:
		return pos
	case pos >= c.To:
		return pos + c.Delta()
	default:
		// within replaced text
		return c.From + len(c.Insert)
	}
}

// Format writes the buffer selection and size under `%v`, adding every line
// under `%+v`.
func (buf *Buffer) Format(f fmt.State, c rune) {
	switch c {
	case 'v':
		fmt.Fprintf(f, "@%v", buf.sel.Head)
		if !buf.sel.Empty() {
			fmt.Fprintf(f, "(anchor:%v)", buf.sel.Anchor)
		}
		fmt.Fprintf(f, " len:%v lines:%v", buf.Len(), buf.LineCount())
		if f.Flag('+') {
			for n := 1; n <= buf.LineCount(); n++ {
				io.WriteString(f, "\n")
				fmt.Fprintf(f, "%+v", buf.Line(n))
			}
		}
	default:
		fmt.Fprintf(f, "!(ERROR invalid format verb %%%s)", string(c))
	}
}
