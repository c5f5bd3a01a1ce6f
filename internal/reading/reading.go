// Package reading renders a document to static HTML for reading mode. It
// parses Markdown with blackfriday and renders extended list markers,
// references, and scripts from the same label scans the live view uses.
package reading

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/russross/blackfriday"
	"golang.org/x/net/html"

	"github.com/jcorbin/pandext/internal/config"
	"github.com/jcorbin/pandext/internal/decorate"
	"github.com/jcorbin/pandext/internal/labels"
	"github.com/jcorbin/pandext/internal/listblock"
	"github.com/jcorbin/pandext/internal/placeholder"
	"github.com/jcorbin/pandext/internal/region"
	"github.com/jcorbin/pandext/internal/textdoc"
	"github.com/jcorbin/pandext/scandown"
)

// Extensions are the blackfriday extensions used to parse documents.
const Extensions = 0 |
	blackfriday.NoIntraEmphasis |
	blackfriday.Tables |
	blackfriday.FencedCode |
	blackfriday.Autolink |
	blackfriday.Strikethrough |
	blackfriday.SpaceHeadings |
	blackfriday.HeadingIDs |
	blackfriday.BackslashLineBreak |
	blackfriday.DefinitionLists

// Options configure a render.
type Options struct {
	Settings config.Settings

	// Registry and Path select the cached placeholder numbering shared with
	// the live view; Registry may be nil.
	Registry *placeholder.Registry
	Path     string
}

// Render writes the HTML rendering of src to w.
func Render(w io.Writer, src []byte, opts Options) error {
	b := decorate.Builder{Settings: opts.Settings, Registry: opts.Registry}
	an := b.Analyze(textdoc.NewText(string(src)), opts.Path)

	md := blackfriday.New(blackfriday.WithExtensions(Extensions))
	doc := md.Parse(normalizeDefinitions(src, an.Regions))

	r := &renderer{
		HTMLRenderer: blackfriday.NewHTMLRenderer(blackfriday.HTMLRendererParameters{
			Flags: blackfriday.UseXHTML,
		}),
		an:       an,
		strict:   opts.Settings.StrictPandocMode,
		extended: opts.Settings.MoreExtendedSyntax,
		seen:     make(map[string]bool),
	}

	var buf bytes.Buffer
	buf.Grow(2 * len(src))
	r.RenderHeader(&buf, doc)
	doc.Walk(func(n *blackfriday.Node, entering bool) blackfriday.WalkStatus {
		return r.RenderNode(&buf, n, entering)
	})
	r.RenderFooter(&buf, doc)
	_, err := buf.WriteTo(w)
	return err
}

// normalizeDefinitions rewrites "~" definition markers into the ":" form
// blackfriday understands, leaving code untouched.
func normalizeDefinitions(src []byte, regions region.Set) []byte {
	out := append([]byte(nil), src...)
	doc := textdoc.NewText(string(src))
	for n := 1; n <= doc.LineCount(); n++ {
		ln := doc.Line(n)
		m, ok := scandown.MatchDefinition(ln.Text)
		if !ok || m.Delim != '~' {
			continue
		}
		if at := ln.From + m.Start(); !regions.Contains(at) {
			out[at] = ':'
		}
	}
	return out
}

// renderer is a blackfriday.Renderer that takes over paragraph text.
type renderer struct {
	*blackfriday.HTMLRenderer
	an       *decorate.Analysis
	strict   bool
	extended bool

	// per document state
	examples int             // running example display number
	seen     map[string]bool // kind qualified labels already rendered

	// per paragraph state
	lines     []string     // plain text lines of the current paragraph
	invalid   map[int]bool // 1-based paragraph lines of malformed blocks
	lineNo    int          // 0-based paragraph line being rendered
	lineStart bool
	list      *listState // non-nil within a paragraph that is a list
}

type listState struct {
	hash     int
	itemOpen bool
}

// RenderNode renders paragraphs and their text, delegating everything else.
func (r *renderer) RenderNode(w io.Writer, node *blackfriday.Node, entering bool) blackfriday.WalkStatus {
	switch node.Type {
	case blackfriday.Paragraph:
		if entering {
			r.startParagraph(node)
			if r.list != nil {
				io.WriteString(w, `<div class="pandoc-list">`+"\n")
				return blackfriday.GoToNext
			}
		} else {
			list := r.list
			r.endParagraph(w)
			if list != nil {
				io.WriteString(w, "</div>\n")
				return blackfriday.GoToNext
			}
		}

	case blackfriday.Text:
		if node.Parent == nil || node.Parent.Type != blackfriday.Link {
			r.text(w, string(node.Literal))
			return blackfriday.GoToNext
		}

	case blackfriday.Softbreak, blackfriday.Hardbreak:
		r.lineNo++
		r.lineStart = true

	default:
		if entering {
			r.lineStart = false
		}
	}
	return r.HTMLRenderer.RenderNode(w, node, entering)
}

func (r *renderer) startParagraph(node *blackfriday.Node) {
	r.lines = paragraphLines(node)
	r.lineNo = 0
	r.lineStart = true
	r.list = nil
	r.invalid = nil
	if r.strict {
		r.invalid = listblock.Validate(r.lines, nil)
	}
	if len(r.lines) > 0 {
		if _, ok := r.marker(r.lines[0]); ok {
			r.list = &listState{}
		}
	}
}

func (r *renderer) endParagraph(w io.Writer) {
	r.closeItem(w)
	r.list = nil
	r.lines = nil
	r.invalid = nil
	r.lineNo = 0
}

// paragraphLines flattens the text of a paragraph into lines, counting
// line breaks the same way text rendering does.
func paragraphLines(node *blackfriday.Node) []string {
	var sb strings.Builder
	node.Walk(func(n *blackfriday.Node, entering bool) blackfriday.WalkStatus {
		if !entering {
			return blackfriday.GoToNext
		}
		switch n.Type {
		case blackfriday.Text:
			sb.Write(n.Literal)
		case blackfriday.Code:
			sb.WriteByte('`')
			sb.Write(n.Literal)
			sb.WriteByte('`')
		case blackfriday.Softbreak, blackfriday.Hardbreak:
			sb.WriteByte('\n')
		}
		return blackfriday.GoToNext
	})
	return strings.Split(sb.String(), "\n")
}

// marker matches an item marker at the start of a paragraph line; lines of
// malformed blocks never match.
func (r *renderer) marker(line string) (scandown.Marker, bool) {
	if r.invalid[r.lineNo+1] {
		return scandown.Marker{}, false
	}
	m, ok := scandown.Match(line)
	if !ok {
		return m, false
	}
	switch m.Kind {
	case scandown.HashList, scandown.FancyList, scandown.ExampleList:
		return m, true
	case scandown.CustomLabel:
		return m, r.extended
	default:
		return m, false
	}
}

func (r *renderer) text(w io.Writer, s string) {
	for {
		line, rest, more := strings.Cut(s, "\n")
		r.line(w, line)
		if !more {
			return
		}
		io.WriteString(w, "\n")
		r.lineNo++
		r.lineStart = true
		s = rest
	}
}

func (r *renderer) line(w io.Writer, line string) {
	if line == "" {
		return
	}
	if r.lineStart {
		r.lineStart = false
		if m, ok := r.marker(line); ok {
			r.writeMarker(w, m)
			line = m.Content(line)
		}
	}
	r.inline(w, line)
}

func (r *renderer) closeItem(w io.Writer) {
	if r.list != nil && r.list.itemOpen {
		io.WriteString(w, "</div>")
		r.list.itemOpen = false
	}
}

func (r *renderer) writeMarker(w io.Writer, m scandown.Marker) {
	if r.list != nil {
		r.closeItem(w)
		io.WriteString(w, `<div class="pandoc-list-item">`)
		r.list.itemOpen = true
	} else {
		io.WriteString(w, "<br />")
	}

	class := decorate.ClassListMarker + " "
	var text, title string
	switch m.Kind {
	case scandown.HashList:
		n := 1
		if r.list != nil {
			r.list.hash++
			n = r.list.hash
		}
		class += decorate.ClassHashMarker
		text = strconv.Itoa(n) + "."

	case scandown.FancyList:
		style := scandown.ResolveFancyStyle(r.lines, r.lineNo)
		class += fmt.Sprintf("%v pandoc-fancy-%v", decorate.ClassFancyMarker, style)
		text = m.Text

	case scandown.ExampleList:
		r.examples++
		class += decorate.ClassExampleMarker
		text = "(" + strconv.Itoa(r.examples) + ")"
		title = r.duplicate("@", m.Label, r.an.Examples.Duplicates)

	case scandown.CustomLabel:
		class += decorate.ClassCustomMarker
		rendered, ok := r.an.Custom.Rendered[m.Label]
		if !ok {
			rendered = m.Label
		}
		text = "(" + rendered + ")"
		title = r.duplicate("::", m.Label, r.an.Custom.Duplicates)
	}

	if title != "" {
		class += " " + decorate.ClassDuplicate
		fmt.Fprintf(w, `<span class="%s" title="%s">%s</span> `, class, html.EscapeString(title), html.EscapeString(text))
	} else {
		fmt.Fprintf(w, `<span class="%s">%s</span> `, class, html.EscapeString(text))
	}
}

// duplicate returns a warning title if label was already rendered as a
// definition of the same kind.
func (r *renderer) duplicate(kind, label string, dups map[string]*labels.Duplicate) string {
	if label == "" {
		return ""
	}
	key := kind + label
	if !r.seen[key] {
		r.seen[key] = true
		return ""
	}
	if dup, ok := dups[label]; ok {
		return fmt.Sprintf("duplicate of line %d: %s", dup.FirstLine, dup.FirstContent)
	}
	return "duplicate label " + label
}

// replacement is an inline span rendered as HTML.
type replacement struct {
	scandown.Span
	html string
}

func (r *renderer) inline(w io.Writer, s string) {
	if r.invalid[r.lineNo+1] {
		io.WriteString(w, html.EscapeString(s))
		return
	}

	math := region.Detect(s)
	var reps []replacement
	claim := func(sp scandown.Span, h string) {
		if math.Intersects(sp.From, sp.To) {
			return
		}
		for _, rep := range reps {
			if sp.From < rep.To && rep.From < sp.To {
				return
			}
		}
		reps = append(reps, replacement{sp, h})
	}

	var refs []scandown.Span
	if r.extended && r.an.Custom != nil {
		refs = scandown.FindCustomLabelRefs(s)
		for _, sp := range refs {
			if rendered, ok := r.an.Custom.ResolveReference(sp.Label, r.an.Context); ok {
				claim(sp, span(decorate.ClassCustomRef, "("+rendered+")"))
			}
		}
	}
	for _, sp := range scandown.FindExampleRefs(s) {
		if n, ok := r.an.Examples.Number(sp.Label); ok {
			claim(sp, span(decorate.ClassExampleRef, "("+strconv.Itoa(n)+")"))
		}
	}
	scripts := func(spans []scandown.Span, tag string) {
	next:
		for _, sp := range spans {
			for _, ref := range refs {
				if sp.From < ref.To && ref.From < sp.To {
					continue next
				}
			}
			claim(sp, "<"+tag+">"+html.EscapeString(scandown.UnescapeScript(sp.Label))+"</"+tag+">")
		}
	}
	scripts(scandown.FindSuperscripts(s), "sup")
	scripts(scandown.FindSubscripts(s), "sub")

	sort.Slice(reps, func(i, j int) bool { return reps[i].From < reps[j].From })
	at := 0
	for _, rep := range reps {
		io.WriteString(w, html.EscapeString(s[at:rep.From]))
		io.WriteString(w, rep.html)
		at = rep.To
	}
	io.WriteString(w, html.EscapeString(s[at:]))
}

func span(class, text string) string {
	return `<span class="` + class + `">` + html.EscapeString(text) + `</span>`
}
