package scandown

import "strings"

// Fence describes a code fence line: up to 3 columns of indent, then a run of
// at least 3 backticks or tildes.
type Fence struct {
	Char  byte
	Width int
	Info  string
}

// MatchFence matches an opening or closing code fence line.
func MatchFence(line string) (Fence, bool) {
	indent, tail := trimIndent(line)
	if len(indent) > 3 || len(tail) == 0 || !isByte(tail[0], '`', '~') {
		return Fence{}, false
	}
	c := tail[0]
	width := 1
	for width < len(tail) && tail[width] == c {
		width++
	}
	if width < 3 {
		return Fence{}, false
	}
	info := strings.TrimSpace(tail[width:])
	// backtick fence info strings may not contain backticks
	if c == '`' && strings.IndexByte(info, '`') >= 0 {
		return Fence{}, false
	}
	return Fence{Char: c, Width: width, Info: info}, true
}

// Closes returns true if the line is a fence closing f: the same character,
// at least as wide, and no info string.
func (f Fence) Closes(line string) bool {
	g, ok := MatchFence(line)
	return ok && g.Char == f.Char && g.Width >= f.Width && g.Info == ""
}

// IsATXHeading returns true for a "#" heading line, e.g. "## Title".
func IsATXHeading(line string) bool {
	indent, tail := trimIndent(line)
	if len(indent) > 3 {
		return false
	}
	n := 0
	for n < len(tail) && tail[n] == '#' {
		n++
	}
	if n == 0 || n > 6 {
		return false
	}
	return n == len(tail) || isByte(tail[n], ' ', '\t')
}
