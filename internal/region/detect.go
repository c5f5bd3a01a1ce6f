package region

import (
	"github.com/jcorbin/pandext/internal/textdoc"
	"github.com/jcorbin/pandext/scandown"
)

// Detect scans Markdown text for excluded regions.
//
// Fenced code runs from its opening fence line through a closing fence of the
// same character that is at least as wide; an unclosed fence extends to the
// end of the document. Indented code needs 4 columns of indent after a blank
// line, unless the blank line interrupts a list item, whose indented
// paragraphs stay text. Inline code and math spans never cross a blank line,
// escaped delimiters never open or close them, and an unclosed span is not a
// region at all.
func Detect(src string) Set {
	var d detector
	d.src = src
	d.run()
	d.regions.sort()
	return d.regions
}

type detector struct {
	src     string
	regions Set

	chunkFrom, chunkTo int // current paragraph run, chunkFrom < 0 if none
}

func (d *detector) run() {
	doc := textdoc.NewText(d.src)
	d.chunkFrom = -1
	prevBlank, inList := true, false
	n := doc.LineCount()
	for i := 1; i <= n; i++ {
		ln := doc.Line(i)

		if scandown.IsBlank(ln.Text) {
			d.flush()
			prevBlank = true
			continue
		}

		if f, ok := scandown.MatchFence(ln.Text); ok {
			d.flush()
			end := len(d.src)
			j := i + 1
			for ; j <= n; j++ {
				if cl := doc.Line(j); f.Closes(cl.Text) {
					end = cl.To
					break
				}
			}
			d.regions = append(d.regions, Region{ln.From, end, CodeBlock})
			i = j
			prevBlank, inList = false, false
			continue
		}

		indent := indentColumns(ln.Text)

		if indent >= 4 && prevBlank && !inList {
			d.flush()
			end := ln.To
			for j := i + 1; j <= n; j++ {
				cl := doc.Line(j)
				if scandown.IsBlank(cl.Text) {
					continue
				}
				if indentColumns(cl.Text) < 4 {
					break
				}
				end = cl.To
			}
			d.regions = append(d.regions, Region{ln.From, end, CodeBlock})
			i = doc.LineAt(end).Number
			prevBlank = false
			continue
		}

		if m, ok := scandown.Match(ln.Text); ok && indent < 4 {
			inList = m.Kind.IsList() || m.Kind == scandown.Definition
		} else if prevBlank && indent == 0 {
			inList = false
		}

		if d.chunkFrom < 0 {
			d.chunkFrom = ln.From
		}
		d.chunkTo = ln.To
		prevBlank = false
	}
	d.flush()
}

// flush scans the pending paragraph run for inline code and math.
func (d *detector) flush() {
	if d.chunkFrom < 0 {
		return
	}
	from, s := d.chunkFrom, d.src[d.chunkFrom:d.chunkTo]
	d.chunkFrom = -1
	d.regions = appendInline(d.regions, from, s, true)
}

// appendInline appends the inline regions of s, offset by from; inline code is
// only recognized if code is true.
func appendInline(regions Set, from int, s string, code bool) Set {
	for i := 0; i < len(s); {
		switch s[i] {
		case '\\':
			i += 2

		case '`':
			n := run(s, i, '`')
			if !code {
				i += n
			} else if end, ok := closeTicks(s, i+n, n); ok {
				regions = append(regions, Region{from + i, from + end, InlineCode})
				i = end
			} else {
				i += n
			}

		case '$':
			end, width, ok := closeMath(s, i)
			if ok {
				regions = append(regions, Region{from + i, from + end, Math})
				i = end
			} else {
				i += width
			}

		default:
			i++
		}
	}
	return regions
}

func run(s string, i int, c byte) int {
	n := 0
	for i+n < len(s) && s[i+n] == c {
		n++
	}
	return n
}

// closeTicks finds the end of a backtick run of exactly n bytes at or after j.
func closeTicks(s string, j, n int) (int, bool) {
	for j < len(s) {
		if s[j] != '`' {
			j++
			continue
		}
		m := run(s, j, '`')
		if m == n && s[j-1] != '\\' {
			return j + m, true
		}
		j += m
	}
	return 0, false
}

// closeMath finds the end of a math span opening at s[i]. Display math is
// delimited by "$$". Inline math opens with a "$" not followed by space and
// closes with a "$" not preceded by space nor followed by a digit. When no
// span closes, width is the number of delimiter bytes to pass over.
func closeMath(s string, i int) (end, width int, ok bool) {
	if i+1 < len(s) && s[i+1] == '$' {
		for j := i + 2; j+1 < len(s); j++ {
			switch {
			case s[j] == '\\':
				j++
			case s[j] == '$' && s[j+1] == '$' && j > i+2:
				return j + 2, 2, true
			}
		}
		return 0, 2, false
	}
	if i+1 >= len(s) || isSpace(s[i+1]) {
		return 0, 1, false
	}
	for j := i + 1; j < len(s); j++ {
		switch {
		case s[j] == '\\':
			j++
		case s[j] == '$':
			if !isSpace(s[j-1]) && (j+1 >= len(s) || !isDigit(s[j+1])) {
				return j + 1, 1, true
			}
		}
	}
	return 0, 1, false
}

func isSpace(c byte) bool { return c == ' ' || c == '\t' || c == '\n' || c == '\r' }

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

// indentColumns measures leading whitespace with tab stops every 4 columns.
func indentColumns(line string) (n int) {
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case ' ':
			n++
		case '\t':
			n += 4 - n%4
		default:
			return n
		}
	}
	return n
}
