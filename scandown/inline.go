package scandown

import (
	"regexp"
	"strings"
)

// Span locates an inline construct within a string by byte offsets; From is
// inclusive and To is exclusive. Label holds the construct's capture: the
// example label, the raw custom label, the placeholder name, or the raw
// script text.
type Span struct {
	From, To int
	Label    string
}

// Len returns the byte length of the span.
func (s Span) Len() int { return s.To - s.From }

// Contains returns true if offset lies within the span, counting both
// boundaries as inside.
func (s Span) Contains(offset int) bool { return s.From <= offset && offset <= s.To }

// Shift returns a copy of the span moved by delta bytes.
func (s Span) Shift(delta int) Span {
	s.From += delta
	s.To += delta
	return s
}

var (
	exampleRefPattern  = regexp.MustCompile(`\(@([A-Za-z0-9_-]+)\)`)
	customRefPattern   = regexp.MustCompile(`\{::([^}\n]+)\}`)
	placeholderPattern = regexp.MustCompile(`\(#([^)\n]+)\)`)
	superscriptPattern = regexp.MustCompile(`\^((?:\\.|[^\s^~$\\])+)\^`)
	subscriptPattern   = regexp.MustCompile(`~((?:\\.|[^\s^~$\\])+)~`)
)

// FindExampleRefs finds every labeled example reference "(@label)" in s.
// Unlabeled "(@)" is never a reference.
func FindExampleRefs(s string) []Span { return findAll(exampleRefPattern, s) }

// FindCustomLabelRefs finds every custom label token "{::LABEL}" in s.
func FindCustomLabelRefs(s string) []Span { return findAll(customRefPattern, s) }

// FindPlaceholders finds every placeholder "(#name)" in s.
func FindPlaceholders(s string) []Span { return findAll(placeholderPattern, s) }

// FindSuperscripts finds every "^text^" span in s.
func FindSuperscripts(s string) []Span { return findScripts(superscriptPattern, '^', s) }

// FindSubscripts finds every "~text~" span in s; doubled tildes, as in
// "~~strike~~", never form a subscript.
func FindSubscripts(s string) []Span { return findScripts(subscriptPattern, '~', s) }

// UnescapeScript converts the escaped spaces of a script's text into literal
// spaces.
func UnescapeScript(text string) string {
	return strings.ReplaceAll(text, `\ `, " ")
}

func findAll(pattern *regexp.Regexp, s string) []Span {
	var spans []Span
	for _, m := range pattern.FindAllStringSubmatchIndex(s, -1) {
		spans = append(spans, Span{From: m[0], To: m[1], Label: s[m[2]:m[3]]})
	}
	return spans
}

func findScripts(pattern *regexp.Regexp, delim byte, s string) []Span {
	var spans []Span
	for pos := 0; pos < len(s); {
		m := pattern.FindStringSubmatchIndex(s[pos:])
		if m == nil {
			break
		}
		from, to := pos+m[0], pos+m[1]
		if from > 0 && isByte(s[from-1], delim, '[', '\\') ||
			to < len(s) && s[to] == delim {
			pos = from + 1
			continue
		}
		spans = append(spans, Span{From: from, To: to, Label: s[pos+m[2] : pos+m[3]]})
		pos = to
	}
	return spans
}
