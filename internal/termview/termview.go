// Package termview is a terminal rendering surface for decoration sets: it
// draws a document with its widgets substituted and its marks styled.
package termview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jcorbin/pandext/internal/decorate"
	"github.com/jcorbin/pandext/internal/textdoc"
)

// Styles maps decoration class names to terminal styles. A decoration
// carrying several classes combines their styles, later classes taking
// precedence.
type Styles map[string]lipgloss.Style

// DefaultStyles returns the stock styles built for a renderer.
func DefaultStyles(r *lipgloss.Renderer) Styles {
	marker := r.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	ref := r.NewStyle().Foreground(lipgloss.Color("14"))
	return Styles{
		decorate.ClassListMarker:          marker,
		decorate.ClassHashMarker:          marker,
		decorate.ClassFancyMarker:         marker,
		decorate.ClassExampleMarker:       marker,
		decorate.ClassCustomMarker:        marker.Foreground(lipgloss.Color("13")),
		decorate.ClassExampleRef:          ref,
		decorate.ClassCustomRef:           ref.Foreground(lipgloss.Color("13")),
		decorate.ClassProcessed:           r.NewStyle().Italic(true),
		decorate.ClassPlaceholder:         r.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		decorate.ClassDuplicate:           r.NewStyle().Foreground(lipgloss.Color("9")).Underline(true),
		decorate.ClassDefinitionTerm:      r.NewStyle().Bold(true),
		decorate.ClassDefinitionMarker:    marker,
		decorate.ClassDefinitionParagraph: r.NewStyle().Faint(true),
		decorate.ClassSuperscript:         r.NewStyle().Foreground(lipgloss.Color("10")),
		decorate.ClassSubscript:           r.NewStyle().Foreground(lipgloss.Color("10")),
	}
}

// Surface collects decorations in ascending order and renders them over its
// document.
type Surface struct {
	doc    textdoc.Document
	r      *lipgloss.Renderer
	styles Styles
	set    decorate.Set
}

// NewSurface returns an empty surface over doc, rendering with r; nil styles
// are the DefaultStyles of r.
func NewSurface(doc textdoc.Document, r *lipgloss.Renderer, styles Styles) *Surface {
	if styles == nil {
		styles = DefaultStyles(r)
	}
	return &Surface{doc: doc, r: r, styles: styles}
}

// style combines the styles of a space separated class list.
func (s *Surface) style(class string) lipgloss.Style {
	classes := strings.Fields(class)
	st := s.r.NewStyle()
	for i := len(classes) - 1; i >= 0; i-- {
		if cs, ok := s.styles[classes[i]]; ok {
			st = st.Inherit(cs)
		}
	}
	return st
}

// Add appends a decoration, which must not sort before the last one added.
func (s *Surface) Add(d decorate.Decoration) error {
	if n := len(s.set); n > 0 {
		if p := s.set[n-1]; d.From < p.From || d.From == p.From && d.To < p.To {
			return fmt.Errorf("%w: %v after %v", decorate.ErrUnordered, d, p)
		}
	}
	s.set = append(s.set, d)
	return nil
}

// Render draws the document line by line.
func (s *Surface) Render() string {
	var sb strings.Builder
	next := 0 // first decoration not yet behind the current line
	for n := 1; n <= s.doc.LineCount(); n++ {
		ln := s.doc.Line(n)
		for next < len(s.set) && s.set[next].To < ln.From {
			next++
		}
		var on decorate.Set
		for _, d := range s.set[next:] {
			if d.From > ln.To {
				break
			}
			on = append(on, d)
		}
		if n > 1 {
			sb.WriteByte('\n')
		}
		s.renderLine(&sb, ln, on)
	}
	return sb.String()
}

func (s *Surface) renderLine(sb *strings.Builder, ln textdoc.Line, on decorate.Set) {
	base := s.r.NewStyle()
	var replaces, marks decorate.Set
	for _, d := range on {
		switch d.Kind {
		case decorate.Line:
			if d.From == ln.From {
				base = s.style(d.Class).Inherit(base)
			}
		case decorate.Replace:
			replaces = append(replaces, d)
		case decorate.Mark:
			marks = append(marks, d)
		}
	}

	// innermost returns the index of the last added mark covering pos.
	innermost := func(pos int) int {
		for i := len(marks) - 1; i >= 0; i-- {
			if marks[i].From <= pos && pos < marks[i].To {
				return i
			}
		}
		return -1
	}
	styleOf := func(mark int) lipgloss.Style {
		if mark < 0 {
			return base
		}
		return s.style(marks[mark].Class).Inherit(base)
	}

	text := ln.Text
	run, runMark := 0, -1
	flush := func(to int) {
		if to > run {
			sb.WriteString(styleOf(runMark).Render(text[run:to]))
		}
		run = to
	}
	for pos := 0; pos < len(text); {
		at := ln.From + pos
		if len(replaces) > 0 && replaces[0].From <= at {
			d := replaces[0]
			replaces = replaces[1:]
			if d.From < at {
				continue
			}
			flush(pos)
			sb.WriteString(s.widget(d.Widget, styleOf(innermost(at))))
			pos = min(d.To-ln.From, len(text))
			run, runMark = pos, innermost(ln.From+pos)
			continue
		}
		if mark := innermost(at); mark != runMark {
			flush(pos)
			runMark = mark
		}
		pos++
	}
	flush(len(text))
}

func (s *Surface) widget(w *decorate.Widget, outer lipgloss.Style) string {
	if w == nil {
		return ""
	}
	text := w.Text
	switch {
	case w.Kind == decorate.DuplicateWarning:
		text += "!"
	case w.Kind == decorate.ScriptWidget && w.Class == decorate.ClassSuperscript:
		text = script(text, superscripts, "^")
	case w.Kind == decorate.ScriptWidget && w.Class == decorate.ClassSubscript:
		text = script(text, subscripts, "_")
	}
	return s.style(w.Class).Inherit(outer).Render(text)
}

var (
	superscripts = strings.NewReplacer(
		"0", "⁰", "1", "¹", "2", "²", "3", "³", "4", "⁴",
		"5", "⁵", "6", "⁶", "7", "⁷", "8", "⁸", "9", "⁹",
		"+", "⁺", "-", "⁻", "=", "⁼", "(", "⁽", ")", "⁾",
		"n", "ⁿ", "i", "ⁱ",
	)
	subscripts = strings.NewReplacer(
		"0", "₀", "1", "₁", "2", "₂", "3", "₃", "4", "₄",
		"5", "₅", "6", "₆", "7", "₇", "8", "₈", "9", "₉",
		"+", "₊", "-", "₋", "=", "₌", "(", "₍", ")", "₎",
	)
)

// script writes text in unicode super or subscript characters when every
// character has one, and otherwise marks it with a caret style prefix.
func script(text string, r *strings.Replacer, prefix string) string {
	out := r.Replace(text)
	for _, c := range out {
		if c < 0x80 {
			return prefix + "{" + text + "}"
		}
	}
	return out
}
