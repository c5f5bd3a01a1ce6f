package scandown

import (
	"fmt"
	"io"
)

// Format writes a textual representation of the receiver, providing improved
// fmt.Printf display. Produces a verbose "Kind attr=value" form when
// formatted with `%+v", a terse "Kind" form otherwise.
func (m Marker) Format(f fmt.State, _ rune) {
	fmt.Fprint(f, m.Kind)
	if m.Kind == FancyList {
		fmt.Fprintf(f, "(%v)", m.Style)
	}
	if f.Flag('+') {
		fmt.Fprintf(f, " text=%q", m.Text)
		if m.Label != "" {
			fmt.Fprintf(f, " label=%q", m.Label)
		}
		if d := m.Delim; d != 0 {
			fmt.Fprintf(f, " delim=%q", d)
		}
		if in := len(m.Indent); in != 0 {
			fmt.Fprintf(f, " indent=%v", in)
		}
		fmt.Fprintf(f, " space=%v", len(m.Space))
	}
}

// Format writes a type string representing the receiver code.
func (k Kind) Format(f fmt.State, _ rune) {
	switch k {
	case noMarker:
		io.WriteString(f, "None")
	case HashList:
		io.WriteString(f, "HashList")
	case FancyList:
		io.WriteString(f, "FancyList")
	case ExampleList:
		io.WriteString(f, "ExampleList")
	case Definition:
		io.WriteString(f, "Definition")
	case CustomLabel:
		io.WriteString(f, "CustomLabel")
	case BulletList:
		io.WriteString(f, "BulletList")
	case OrderedList:
		io.WriteString(f, "OrderedList")
	default:
		fmt.Fprintf(f, "InvalidMarker%v", int(k))
	}
}

// Format writes a style name for the receiver.
func (s Style) Format(f fmt.State, _ rune) {
	switch s {
	case NoStyle:
		io.WriteString(f, "none")
	case LowerAlpha:
		io.WriteString(f, "lower-alpha")
	case UpperAlpha:
		io.WriteString(f, "upper-alpha")
	case LowerRoman:
		io.WriteString(f, "lower-roman")
	case UpperRoman:
		io.WriteString(f, "upper-roman")
	default:
		fmt.Fprintf(f, "InvalidStyle%v", int(s))
	}
}

// Format writes the receiver as a "[from:to]" range, adding the label when
// formatted with `%+v".
func (s Span) Format(f fmt.State, _ rune) {
	fmt.Fprintf(f, "[%v:%v]", s.From, s.To)
	if f.Flag('+') && s.Label != "" {
		fmt.Fprintf(f, " %q", s.Label)
	}
}
