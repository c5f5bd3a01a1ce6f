// Package listblock validates extended list blocks against the stricter
// Pandoc rules: a list must not start in the middle of a paragraph, and a
// capital letter marker with a period needs two spaces after it.
package listblock

import (
	"github.com/jcorbin/pandext/scandown"
)

// Validate returns the set of 1-based line numbers belonging to invalid list
// blocks. A block is the run of non-blank lines starting at a hash, fancy,
// example, or custom label item and ending before the next blank line. It is
// invalid if the line before it is neither blank, another list item, nor an
// ATX heading, or if any of its "A." style markers is followed by fewer than
// two spaces. Lines for which code returns true never start a block; code may
// be nil.
func Validate(lines []string, code func(line int) bool) map[int]bool {
	invalid := make(map[int]bool)
	for i := 0; i < len(lines); i++ {
		if code != nil && code(i+1) {
			continue
		}
		if !startsBlock(lines[i]) {
			continue
		}
		end := i + 1
		for end < len(lines) && !scandown.IsBlank(lines[end]) {
			end++
		}
		if !validBlock(lines, i, end) {
			for j := i; j < end; j++ {
				invalid[j+1] = true
			}
		}
		i = end
	}
	return invalid
}

func startsBlock(line string) bool {
	m, ok := scandown.Match(line)
	if !ok {
		return false
	}
	switch m.Kind {
	case scandown.HashList, scandown.FancyList, scandown.ExampleList, scandown.CustomLabel:
		return true
	default:
		return false
	}
}

func validBlock(lines []string, start, end int) bool {
	if start > 0 {
		prev := lines[start-1]
		if !scandown.IsBlank(prev) && !scandown.IsATXHeading(prev) {
			if m, ok := scandown.Match(prev); !ok || !m.Kind.IsList() {
				return false
			}
		}
	}
	for _, line := range lines[start:end] {
		if m, ok := scandown.MatchFancyList(line); ok && capitalPeriod(m) && len(m.Space) < 2 {
			return false
		}
	}
	return true
}

// capitalPeriod returns true for a single upper case letter marker delimited
// by a period, like "B.", which is easily confused with an initial.
func capitalPeriod(m scandown.Marker) bool {
	return len(m.Label) == 1 && m.Style.Upper() && m.Delim == '.'
}
