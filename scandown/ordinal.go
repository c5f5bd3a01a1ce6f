package scandown

import "strings"

// Style is the numbering style of a fancy list ordinal.
type Style int

// Style constants; the zero value is used for non-fancy markers.
const (
	NoStyle Style = iota
	LowerAlpha
	UpperAlpha
	LowerRoman
	UpperRoman
)

// Roman returns true for the roman numeral styles.
func (s Style) Roman() bool { return s == LowerRoman || s == UpperRoman }

// Alpha returns true for the alphabetic styles.
func (s Style) Alpha() bool { return s == LowerAlpha || s == UpperAlpha }

// Upper returns true for the upper case styles.
func (s Style) Upper() bool { return s == UpperAlpha || s == UpperRoman }

func styleFor(roman, upper bool) Style {
	switch {
	case roman && upper:
		return UpperRoman
	case roman:
		return LowerRoman
	case upper:
		return UpperAlpha
	default:
		return LowerAlpha
	}
}

// guessStyle answers without sibling context: multi letter ordinals are roman
// when they form a valid numeral and alphabetic otherwise, single "i" or "I"
// defaults to roman, any other letter is alphabetic.
func guessStyle(ord string) Style {
	upper := isUpper(ord[0])
	if len(ord) > 1 {
		_, roman := ParseRoman(ord)
		return styleFor(roman, upper)
	}
	c := ord[0] | 0x20
	return styleFor(c == 'i', upper)
}

func isRomanByte(c byte) bool {
	switch c | 0x20 {
	case 'i', 'v', 'x', 'l', 'c', 'd', 'm':
		return true
	}
	return false
}

var romanValues = [...]struct {
	value  int
	symbol string
}{
	{1000, "m"}, {900, "cm"}, {500, "d"}, {400, "cd"},
	{100, "c"}, {90, "xc"}, {50, "l"}, {40, "xl"},
	{10, "x"}, {9, "ix"}, {5, "v"}, {4, "iv"}, {1, "i"},
}

// ParseRoman parses a canonically formed roman numeral of a single case,
// returning its value and whether it was valid.
func ParseRoman(s string) (int, bool) {
	if len(s) == 0 {
		return 0, false
	}
	upper := isUpper(s[0])
	n := 0
	rest := s
	if upper {
		rest = strings.ToLower(s)
		if strings.ToUpper(rest) != s {
			return 0, false
		}
	} else if strings.ToLower(s) != s {
		return 0, false
	}
	for _, rv := range romanValues {
		for strings.HasPrefix(rest, rv.symbol) {
			n += rv.value
			rest = rest[len(rv.symbol):]
		}
	}
	if rest != "" || n == 0 {
		return 0, false
	}
	// reject non-canonical forms like "iiii" or "vx"
	if FormatRoman(n, false) != strings.ToLower(s) {
		return 0, false
	}
	return n, true
}

// FormatRoman formats a positive value as a roman numeral.
func FormatRoman(n int, upper bool) string {
	if n <= 0 {
		return ""
	}
	var sb strings.Builder
	for _, rv := range romanValues {
		for n >= rv.value {
			sb.WriteString(rv.symbol)
			n -= rv.value
		}
	}
	if upper {
		return strings.ToUpper(sb.String())
	}
	return sb.String()
}

// ParseAlpha parses a bijective base-26 letter ordinal: "a" is 1, "z" is 26,
// "aa" is 27.
func ParseAlpha(s string) (int, bool) {
	if len(s) == 0 {
		return 0, false
	}
	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i] | 0x20
		if c < 'a' || c > 'z' {
			return 0, false
		}
		n = n*26 + int(c-'a') + 1
	}
	return n, true
}

// FormatAlpha formats a positive value as a bijective base-26 letter ordinal.
func FormatAlpha(n int, upper bool) string {
	if n <= 0 {
		return ""
	}
	base := byte('a')
	if upper {
		base = 'A'
	}
	var b []byte
	for n > 0 {
		n--
		b = append(b, base+byte(n%26))
		n /= 26
	}
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return string(b)
}

// OrdinalValue returns the numeric value of a fancy ordinal under a style.
func OrdinalValue(ord string, style Style) (int, bool) {
	if style.Roman() {
		return ParseRoman(ord)
	}
	return ParseAlpha(ord)
}

// FormatOrdinal formats a numeric value under a fancy style.
func FormatOrdinal(n int, style Style) string {
	if style.Roman() {
		return FormatRoman(n, style.Upper())
	}
	return FormatAlpha(n, style.Upper())
}

// NextOrdinal returns the ordinal following ord under the given style, or the
// empty string if ord is not valid under it.
func NextOrdinal(ord string, style Style) string {
	n, ok := OrdinalValue(ord, style)
	if !ok {
		return ""
	}
	return FormatOrdinal(n+1, style)
}

// ResolveFancyStyle decides the style of the fancy list marker on lines[i],
// consulting its preceding siblings for single letter ordinals that could be
// either alphabetic or roman. The decision is replayed from scratch over the
// sibling chain each time; no state is retained between calls.
//
// Returns NoStyle if lines[i] is not a fancy list item.
func ResolveFancyStyle(lines []string, i int) Style {
	if i < 0 || i >= len(lines) {
		return NoStyle
	}
	m, ok := MatchFancyList(lines[i])
	if !ok {
		return NoStyle
	}
	if !m.Ambiguous() {
		return m.Style
	}

	chain := fancySiblings(lines, i, m)

	var (
		prev      Marker
		prevStyle Style
		roman     bool // any prior multi letter ordinal validated as roman
	)
	for k := len(chain) - 1; k >= 0; k-- {
		sm, _ := MatchFancyList(lines[chain[k]])
		prevStyle = replayStyle(prev, prevStyle, roman, sm)
		if len(sm.Label) > 1 && prevStyle.Roman() {
			roman = true
		}
		prev = sm
	}
	return replayStyle(prev, prevStyle, roman, m)
}

func replayStyle(prev Marker, prevStyle Style, roman bool, m Marker) Style {
	if !m.Ambiguous() {
		return m.Style
	}
	upper := isUpper(m.Label[0])
	if prev.Kind == FancyList && prevStyle.Alpha() {
		if pn, ok := ParseAlpha(prev.Label); ok {
			if n, _ := ParseAlpha(m.Label); n == pn+1 {
				return styleFor(false, upper)
			}
		}
	}
	if roman {
		return styleFor(true, upper)
	}
	return guessStyle(m.Label)
}

// fancySiblings collects the line indices of the fancy items preceding
// lines[i] within the same list, nearest first. Siblings share indentation,
// letter case, and delimiter.
func fancySiblings(lines []string, i int, m Marker) (chain []int) {
	indent := len(m.Indent)
	upper := isUpper(m.Label[0])
	for j := i - 1; j >= 0; j-- {
		line := lines[j]
		if IsBlank(line) {
			continue
		}
		if sm, ok := MatchFancyList(line); ok {
			switch in := len(sm.Indent); {
			case in < indent:
				return chain // parent item
			case in > indent:
				continue // nested item
			case sm.Delim == m.Delim && isUpper(sm.Label[0]) == upper:
				chain = append(chain, j)
				continue
			default:
				return chain // a differently styled list
			}
		}
		in := IndentWidth(line)
		if in > indent {
			continue // item continuation
		}
		if sm, ok := Match(line); ok && sm.Kind.IsList() {
			return chain
		}
		// unindented text is a lazy continuation unless it starts a paragraph
		if j == 0 || IsBlank(lines[j-1]) {
			return chain
		}
	}
	return chain
}
