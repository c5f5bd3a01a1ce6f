package scandown

// TODO tab stops are counted as single columns when comparing sibling indents
// TODO recognize pandoc's parenthesized fancy markers like "(a)" and "(iv)"

import "strings"

// Marker represents a list item marker recognized at the start of a line,
// along with the indentation before it and the whitespace after it.
type Marker struct {
	Kind Kind

	// Indent is the leading whitespace before the marker text.
	Indent string

	// Text is the full marker text:
	// - HashList: "#."
	// - FancyList: the ordinal and its delimiter, e.g. "iv)" or "B."
	// - ExampleList: "(@label)" or "(@)"
	// - Definition: "~" or ":"
	// - CustomLabel: "{::LABEL}"
	// - BulletList: "-", "*", or "+"
	// - OrderedList: decimal digits and delimiter, e.g. "12."
	Text string

	// Label is the construct specific capture within Text:
	// - FancyList: the ordinal, e.g. "iv"
	// - ExampleList: the example label, empty for "(@)"
	// - CustomLabel: the raw LABEL, possibly containing placeholders
	// - OrderedList: the decimal digits
	Label string

	// Delim may contain a delimiter byte:
	// - HashList, FancyList, OrderedList: '.' or ')'
	// - Definition: '~' or ':'
	// - BulletList: the bullet byte
	Delim byte

	// Space is the whitespace following the marker text; it is never empty
	// for a recognized marker.
	Space string

	// Style is the context free style guess of a FancyList ordinal; see
	// ResolveFancyStyle for the sibling aware answer.
	Style Style
}

// Kind is to determine the semantic meaning of a Marker.
type Kind int

// Kind constants for the recognized list constructs.
const (
	noMarker Kind = iota // 0 value should never be seen by user
	HashList
	FancyList
	ExampleList
	Definition
	CustomLabel
	BulletList
	OrderedList
)

// Start returns the offset of the marker text within its line.
func (m Marker) Start() int { return len(m.Indent) }

// End returns the offset just past the marker text within its line.
func (m Marker) End() int { return len(m.Indent) + len(m.Text) }

// Width returns the byte width of the whole marker prefix: indent, text, and
// trailing space.
func (m Marker) Width() int { return len(m.Indent) + len(m.Text) + len(m.Space) }

// Content returns the line content after the marker prefix.
func (m Marker) Content(line string) string {
	if w := m.Width(); w <= len(line) {
		return line[w:]
	}
	return ""
}

// Ambiguous returns true if the marker is a single letter fancy ordinal that
// may be read either as alphabetic or as roman.
func (m Marker) Ambiguous() bool {
	return m.Kind == FancyList && len(m.Label) == 1 && isRomanByte(m.Label[0])
}

// IsPandoc returns true for the extended constructs, excluding the standard
// Markdown bullet and decimal lists.
func (k Kind) IsPandoc() bool {
	switch k {
	case HashList, FancyList, ExampleList, Definition, CustomLabel:
		return true
	default:
		return false
	}
}

// IsList returns true for the constructs that open list items; definitions
// and the zero value are not list items.
func (k Kind) IsList() bool {
	switch k {
	case HashList, FancyList, ExampleList, CustomLabel, BulletList, OrderedList:
		return true
	default:
		return false
	}
}

// MatchHashList matches an auto-numbered "#." list item.
func MatchHashList(line string) (Marker, bool) {
	indent, tail := trimIndent(line)
	if !strings.HasPrefix(tail, "#.") {
		return Marker{}, false
	}
	space := leadingSpace(tail[2:])
	if space == "" {
		return Marker{}, false
	}
	return Marker{
		Kind:   HashList,
		Indent: indent,
		Text:   tail[:2],
		Delim:  '.',
		Space:  space,
	}, true
}

// MatchFancyList matches an alphabetic or roman numbered list item, like
// "a.", "B)", "iv.", or "aa.". The ordinal is any run of same case letters;
// decimal ordinals never match.
func MatchFancyList(line string) (Marker, bool) {
	indent, tail := trimIndent(line)
	n := fancyOrdinal(tail)
	if n == 0 || n >= len(tail) {
		return Marker{}, false
	}
	delim := tail[n]
	if delim != '.' && delim != ')' {
		return Marker{}, false
	}
	space := leadingSpace(tail[n+1:])
	if space == "" {
		return Marker{}, false
	}
	ord := tail[:n]
	return Marker{
		Kind:   FancyList,
		Indent: indent,
		Text:   tail[:n+1],
		Label:  ord,
		Delim:  delim,
		Space:  space,
		Style:  guessStyle(ord),
	}, true
}

// MatchExampleList matches an example list item like "(@good)" or "(@)".
func MatchExampleList(line string) (Marker, bool) {
	indent, tail := trimIndent(line)
	label, n := exampleToken(tail)
	if n == 0 {
		return Marker{}, false
	}
	space := leadingSpace(tail[n:])
	if space == "" {
		return Marker{}, false
	}
	return Marker{
		Kind:   ExampleList,
		Indent: indent,
		Text:   tail[:n],
		Label:  label,
		Delim:  '@',
		Space:  space,
	}, true
}

// MatchDefinition matches a definition item marker, either "~" or ":".
func MatchDefinition(line string) (Marker, bool) {
	indent, tail := trimIndent(line)
	if len(tail) == 0 || !isByte(tail[0], '~', ':') {
		return Marker{}, false
	}
	space := leadingSpace(tail[1:])
	if space == "" {
		return Marker{}, false
	}
	return Marker{
		Kind:   Definition,
		Indent: indent,
		Text:   tail[:1],
		Delim:  tail[0],
		Space:  space,
	}, true
}

// MatchCustomLabel matches a custom labeled list item like "{::P(#a)}".
func MatchCustomLabel(line string) (Marker, bool) {
	indent, tail := trimIndent(line)
	label, n := customToken(tail)
	if n == 0 {
		return Marker{}, false
	}
	space := leadingSpace(tail[n:])
	if space == "" {
		return Marker{}, false
	}
	return Marker{
		Kind:   CustomLabel,
		Indent: indent,
		Text:   tail[:n],
		Label:  label,
		Space:  space,
	}, true
}

// MatchListMarker matches a standard Markdown bullet or decimal list item.
func MatchListMarker(line string) (Marker, bool) {
	indent, tail := trimIndent(line)
	if len(tail) == 0 {
		return Marker{}, false
	}
	m := Marker{Indent: indent}
	if isByte(tail[0], '-', '*', '+') {
		m.Kind = BulletList
		m.Delim = tail[0]
		m.Text = tail[:1]
	} else if width := ordinal(tail); width > 0 && width < len(tail) && isByte(tail[width], '.', ')') {
		m.Kind = OrderedList
		m.Delim = tail[width]
		m.Label = tail[:width]
		m.Text = tail[:width+1]
	} else {
		return Marker{}, false
	}
	if m.Space = leadingSpace(tail[len(m.Text):]); m.Space == "" {
		return Marker{}, false
	}
	return m, true
}

// Match tries every marker matcher in priority order: hash, fancy, example,
// custom label, definition, and then the standard Markdown markers.
func Match(line string) (Marker, bool) {
	for _, match := range matchers {
		if m, ok := match(line); ok {
			return m, true
		}
	}
	return Marker{}, false
}

var matchers = []func(string) (Marker, bool){
	MatchHashList,
	MatchFancyList,
	MatchExampleList,
	MatchCustomLabel,
	MatchDefinition,
	MatchListMarker,
}

// IsBlank returns true if the line contains only whitespace.
func IsBlank(line string) bool {
	return len(strings.TrimSpace(line)) == 0
}

// IndentWidth counts the leading space and tab bytes of a line.
func IndentWidth(line string) int {
	indent, _ := trimIndent(line)
	return len(indent)
}

func exampleToken(s string) (label string, n int) {
	if !strings.HasPrefix(s, "(@") {
		return "", 0
	}
	i := 2
	for i < len(s) && isLabelByte(s[i]) {
		i++
	}
	if i >= len(s) || s[i] != ')' {
		return "", 0
	}
	return s[2:i], i + 1
}

func customToken(s string) (label string, n int) {
	if !strings.HasPrefix(s, "{::") {
		return "", 0
	}
	end := strings.IndexAny(s[3:], "}\n")
	if end <= 0 || s[3+end] != '}' {
		return "", 0
	}
	return s[3 : 3+end], 3 + end + 1
}

// fancyOrdinal returns the width of a fancy ordinal prefix: a run of letters
// sharing one case.
func fancyOrdinal(s string) int {
	if len(s) == 0 || !isLetter(s[0]) {
		return 0
	}
	upper := isUpper(s[0])
	n := 1
	for n < len(s) && isLetter(s[n]) && isUpper(s[n]) == upper {
		n++
	}
	return n
}

// ordinal is a decimal list ordinal of at most 9 digits.
func ordinal(s string) (width int) {
	for width < len(s) && '0' <= s[width] && s[width] <= '9' {
		width++
	}
	if width > 9 {
		return 0
	}
	return width
}

func trimIndent(line string) (indent, tail string) {
	i := 0
	for i < len(line) && isByte(line[i], ' ', '\t') {
		i++
	}
	return line[:i], line[i:]
}

func leadingSpace(s string) string {
	i := 0
	for i < len(s) && isByte(s[i], ' ', '\t') {
		i++
	}
	return s[:i]
}

func isLabelByte(c byte) bool {
	return isLetter(c) || ('0' <= c && c <= '9') || c == '_' || c == '-'
}

func isLetter(c byte) bool { return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') }

func isUpper(c byte) bool { return 'A' <= c && c <= 'Z' }

func isByte(b byte, any ...byte) bool {
	for _, ab := range any {
		if b == ab {
			return true
		}
	}
	return false
}
