// Package decorate builds the ordered rendering instructions that turn
// extended list syntax into a decorated live view, revealing the raw text
// under the cursor.
package decorate

import (
	"errors"
	"fmt"
	"io"
	"sort"
)

// Kind is the kind of a Decoration.
type Kind int

// Kind constants.
const (
	// Replace hides the source span behind a Widget.
	Replace Kind = iota

	// Mark tags the source span with a class without hiding it.
	Mark

	// Line tags the whole line starting at From with a class.
	Line
)

// Decoration is a single rendering instruction over document offsets
// [From, To).
type Decoration struct {
	From, To int
	Kind     Kind
	Class    string
	Widget   *Widget
}

// WidgetKind says what a replacement Widget shows.
type WidgetKind int

// WidgetKind constants.
const (
	ListNumber WidgetKind = iota
	LabelWidget
	PlaceholderNumber
	DuplicateWarning
	ScriptWidget
)

// Widget is the rendered stand-in for a replaced span.
type Widget struct {
	Kind  WidgetKind
	Text  string
	Class string

	// Label is the raw label, placeholder name, or script text shown.
	Label string

	// Line and Content point a DuplicateWarning at the first definition.
	Line    int
	Content string

	// Target is the offset a click on the widget moves the cursor to.
	Target int
}

// Class names tagged onto decorations and widgets.
const (
	ClassListLine            = "pandoc-list-line"
	ClassListMarker          = "pandoc-list-marker"
	ClassHashMarker          = "pandoc-hash-marker"
	ClassFancyMarker         = "pandoc-fancy-marker"
	ClassExampleMarker       = "pandoc-example-marker"
	ClassExampleRef          = "pandoc-example-ref"
	ClassCustomMarker        = "pandoc-custom-label"
	ClassCustomRef           = "pandoc-custom-label-ref"
	ClassPlaceholder         = "pandoc-placeholder"
	ClassProcessed           = "pandoc-label-processed"
	ClassDuplicate           = "pandoc-duplicate-label"
	ClassDefinitionTerm      = "pandoc-definition-term"
	ClassDefinitionMarker    = "pandoc-definition-marker"
	ClassDefinitionItem      = "pandoc-definition-item"
	ClassDefinitionParagraph = "pandoc-definition-paragraph"
	ClassSuperscript         = "pandoc-superscript"
	ClassSubscript           = "pandoc-subscript"
)

// Set is a list of decorations; after Sort it is ordered by (From, To).
type Set []Decoration

// Sort orders the set by ascending From then To, keeping the production order
// of equal ranges.
func (s Set) Sort() {
	sort.SliceStable(s, func(i, j int) bool {
		if s[i].From != s[j].From {
			return s[i].From < s[j].From
		}
		return s[i].To < s[j].To
	})
}

// Of returns only the decorations of kind k.
func (s Set) Of(k Kind) Set {
	var out Set
	for _, d := range s {
		if d.Kind == k {
			out = append(out, d)
		}
	}
	return out
}

// Errors reported when loading a set into a Surface.
var (
	ErrUnordered = errors.New("decorations out of order")
	ErrOverlap   = errors.New("overlapping replace decorations")
)

// Check returns ErrUnordered if the set is not sorted, or ErrOverlap if two
// Replace decorations cover overlapping ranges.
func (s Set) Check() error {
	replaced := -1
	for i, d := range s {
		if i > 0 {
			if p := s[i-1]; d.From < p.From || d.From == p.From && d.To < p.To {
				return fmt.Errorf("%w: %v after %v", ErrUnordered, d, p)
			}
		}
		if d.Kind == Replace {
			if d.From < replaced {
				return fmt.Errorf("%w: %v", ErrOverlap, d)
			}
			replaced = d.To
		}
	}
	return nil
}

// Surface is a rendering structure that accepts decorations in ascending
// order.
type Surface interface {
	Add(d Decoration) error
}

// Load checks the set and adds every decoration to the surface in order.
func Load(surface Surface, set Set) error {
	if err := set.Check(); err != nil {
		return err
	}
	for _, d := range set {
		if err := surface.Add(d); err != nil {
			return err
		}
	}
	return nil
}

// Format writes a type name for the receiver.
func (k Kind) Format(f fmt.State, _ rune) {
	switch k {
	case Replace:
		io.WriteString(f, "replace")
	case Mark:
		io.WriteString(f, "mark")
	case Line:
		io.WriteString(f, "line")
	default:
		fmt.Fprintf(f, "InvalidKind%v", int(k))
	}
}

// Format writes a type name for the receiver.
func (k WidgetKind) Format(f fmt.State, _ rune) {
	switch k {
	case ListNumber:
		io.WriteString(f, "number")
	case LabelWidget:
		io.WriteString(f, "label")
	case PlaceholderNumber:
		io.WriteString(f, "placeholder")
	case DuplicateWarning:
		io.WriteString(f, "duplicate")
	case ScriptWidget:
		io.WriteString(f, "script")
	default:
		fmt.Fprintf(f, "InvalidWidget%v", int(k))
	}
}

// Format writes `kind[from:to] .class`, followed by any widget; `%+v` adds
// the widget details.
func (d Decoration) Format(f fmt.State, _ rune) {
	fmt.Fprintf(f, "%v[%v:%v]", d.Kind, d.From, d.To)
	if d.Class != "" {
		fmt.Fprintf(f, " .%v", d.Class)
	}
	if w := d.Widget; w != nil {
		fmt.Fprintf(f, " %v=%q", w.Kind, w.Text)
		if f.Flag('+') {
			if w.Label != "" {
				fmt.Fprintf(f, " label=%q", w.Label)
			}
			if w.Line != 0 {
				fmt.Fprintf(f, " first=%v:%q", w.Line, w.Content)
			}
			fmt.Fprintf(f, " target=%v", w.Target)
		}
	}
}
