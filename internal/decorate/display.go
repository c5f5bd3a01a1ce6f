package decorate

import (
	"fmt"
	"io"

	"github.com/jcorbin/pandext/scandown"
)

// State is the cursor dependent display state of a label token.
type State int

// State constants.
const (
	// Collapsed shows the whole token as one rendered widget.
	Collapsed State = iota

	// SemiExpanded shows the token text with every placeholder collapsed to
	// its number.
	SemiExpanded

	// FullyExpanded is SemiExpanded except for the placeholder under the
	// cursor, which stays raw text.
	FullyExpanded

	// Raw shows a token without placeholders as plain text.
	Raw
)

// Display picks the display state of a token from the cursor position alone.
// Containment counts both boundaries, so a cursor just after the closing
// brace is still inside. For FullyExpanded the index of the placeholder under
// the cursor is returned, otherwise -1.
func Display(token scandown.Span, placeholders []scandown.Span, cursor int) (State, int) {
	if !token.Contains(cursor) {
		return Collapsed, -1
	}
	if len(placeholders) == 0 {
		return Raw, -1
	}
	for i, p := range placeholders {
		if p.Contains(cursor) {
			return FullyExpanded, i
		}
	}
	return SemiExpanded, -1
}

// Format writes a state name for the receiver.
func (st State) Format(f fmt.State, _ rune) {
	switch st {
	case Collapsed:
		io.WriteString(f, "collapsed")
	case SemiExpanded:
		io.WriteString(f, "semi-expanded")
	case FullyExpanded:
		io.WriteString(f, "fully-expanded")
	case Raw:
		io.WriteString(f, "raw")
	default:
		fmt.Fprintf(f, "InvalidState%v", int(st))
	}
}
