// Package region finds the spans of a Markdown document where list markers
// and label references must not be recognized: code blocks, inline code, and
// math.
package region

import (
	"fmt"
	"io"
	"sort"
)

// Type classifies a Region.
type Type int

// Type constants; Normal text is never returned by the detectors.
const (
	Normal Type = iota
	CodeBlock
	InlineCode
	Math
)

// Format writes a type name for the receiver.
func (t Type) Format(f fmt.State, _ rune) {
	switch t {
	case Normal:
		io.WriteString(f, "normal")
	case CodeBlock:
		io.WriteString(f, "codeblock")
	case InlineCode:
		io.WriteString(f, "inline-code")
	case Math:
		io.WriteString(f, "math")
	default:
		fmt.Fprintf(f, "InvalidRegion%v", int(t))
	}
}

// Region is a span of document offsets [From, To) of a single Type.
type Region struct {
	From, To int
	Type     Type
}

// Format writes the receiver as "type[from:to]".
func (r Region) Format(f fmt.State, _ rune) {
	fmt.Fprintf(f, "%v[%v:%v]", r.Type, r.From, r.To)
}

// Set is a list of non-overlapping regions sorted by From.
type Set []Region

// At returns the region containing pos, if any.
func (s Set) At(pos int) (Region, bool) {
	i := sort.Search(len(s), func(i int) bool { return s[i].To > pos })
	if i < len(s) && s[i].From <= pos {
		return s[i], true
	}
	return Region{}, false
}

// Contains returns true if pos lies within an excluded region.
func (s Set) Contains(pos int) bool {
	r, ok := s.At(pos)
	return ok && r.Type != Normal
}

// Intersects returns true if any excluded region overlaps [from, to); an
// empty range intersects the region containing it.
func (s Set) Intersects(from, to int) bool {
	if to <= from {
		return s.Contains(from)
	}
	i := sort.Search(len(s), func(i int) bool { return s[i].To > from })
	for ; i < len(s) && s[i].From < to; i++ {
		if s[i].Type != Normal {
			return true
		}
	}
	return false
}

// Of returns only the regions of the given type.
func (s Set) Of(t Type) Set {
	var out Set
	for _, r := range s {
		if r.Type == t {
			out = append(out, r)
		}
	}
	return out
}

func (s Set) sort() {
	sort.SliceStable(s, func(i, j int) bool { return s[i].From < s[j].From })
}
