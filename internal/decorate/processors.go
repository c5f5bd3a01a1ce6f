package decorate

import (
	"fmt"
	"strconv"

	"github.com/jcorbin/pandext/internal/labels"
	"github.com/jcorbin/pandext/scandown"
)

// structural processors run in priority order until one owns the line.
var structural = []processor{
	{name: "hash-list", run: hashList},
	{name: "fancy-list", run: fancyList},
	{name: "example-list", run: exampleList},
	{name: "custom-label-list", run: customLabelList},
	{name: "definition-item", run: definitionItem, passThrough: true},
	{name: "definition-paragraph", run: definitionParagraph},
	{name: "definition-term", run: definitionTerm},
}

// inline processors all run over the content portion of every line.
var inline = []processor{
	{name: "example-reference", run: exampleReferences},
	{name: "superscript", run: superscripts},
	{name: "subscript", run: subscripts},
	{name: "custom-label-reference", run: customLabelReferences},
}

// marker matches the line against one marker kind, ignoring markers that
// start within a code or math region.
func (lc *lineContext) marker(match func(string) (scandown.Marker, bool)) (scandown.Marker, scandown.Span, bool) {
	m, ok := match(lc.ln.Text)
	if !ok || lc.Regions.Contains(lc.ln.From+m.Start()) {
		return scandown.Marker{}, scandown.Span{}, false
	}
	token := scandown.Span{
		From:  lc.ln.From + m.Start(),
		To:    lc.ln.From + m.End(),
		Label: m.Label,
	}
	lc.content = m.Width()
	return m, token, true
}

func (lc *lineContext) lineClass(class string) Decoration {
	return Decoration{From: lc.ln.From, To: lc.ln.From, Kind: Line, Class: class}
}

// numbered decorates a marker whose collapsed form is a plain number: the
// widget while the cursor is elsewhere, the marked raw text otherwise.
func (lc *lineContext) numbered(token scandown.Span, class, text string, dup *labels.Duplicate) Decoration {
	if token.Contains(lc.cursor) {
		return Decoration{From: token.From, To: token.To, Kind: Mark, Class: ClassListMarker + " " + class}
	}
	return Decoration{From: token.From, To: token.To, Kind: Replace, Widget: collapsedWidget(token, ListNumber, class, text, dup)}
}

func collapsedWidget(token scandown.Span, kind WidgetKind, class, text string, dup *labels.Duplicate) *Widget {
	w := &Widget{
		Kind:   kind,
		Text:   text,
		Class:  class,
		Label:  token.Label,
		Target: token.From,
	}
	if dup != nil {
		w.Kind = DuplicateWarning
		w.Class = class + " " + ClassDuplicate
		w.Line = dup.FirstLine
		w.Content = dup.FirstContent
	}
	return w
}

// labelled decorates a custom label token through the three state display
// machine; placeholders are the token's placeholder sub-spans in document
// offsets.
func (lc *lineContext) labelled(token scandown.Span, placeholders []scandown.Span, class, rendered string, dup *labels.Duplicate) []Decoration {
	state, under := Display(token, placeholders, lc.cursor)
	switch state {
	case Collapsed:
		return []Decoration{{
			From:   token.From,
			To:     token.To,
			Kind:   Replace,
			Widget: collapsedWidget(token, LabelWidget, class, "("+rendered+")", dup),
		}}
	case Raw:
		return []Decoration{{From: token.From, To: token.To, Kind: Mark, Class: class}}
	}

	decs := []Decoration{{From: token.From, To: token.To, Kind: Mark, Class: class + " " + ClassProcessed}}
	for i, p := range placeholders {
		if i == under {
			continue
		}
		n, ok := lc.Context.Number(p.Label)
		if !ok {
			continue
		}
		decs = append(decs, Decoration{
			From: p.From,
			To:   p.To,
			Kind: Replace,
			Widget: &Widget{
				Kind:   PlaceholderNumber,
				Text:   strconv.Itoa(n),
				Class:  ClassPlaceholder,
				Label:  p.Label,
				Target: p.From,
			},
		})
	}
	return decs
}

func hashList(lc *lineContext) ([]Decoration, bool) {
	_, token, ok := lc.marker(scandown.MatchHashList)
	if !ok {
		return nil, false
	}
	n, ok := lc.Hash[lc.ln.Number]
	if !ok {
		return nil, false
	}
	return []Decoration{
		lc.lineClass(ClassListLine),
		lc.numbered(token, ClassHashMarker, strconv.Itoa(n)+".", nil),
	}, true
}

func fancyList(lc *lineContext) ([]Decoration, bool) {
	_, token, ok := lc.marker(scandown.MatchFancyList)
	if !ok {
		return nil, false
	}
	style := scandown.ResolveFancyStyle(lc.Lines, lc.ln.Number-1)
	return []Decoration{
		lc.lineClass(ClassListLine),
		{
			From:  token.From,
			To:    token.To,
			Kind:  Mark,
			Class: fmt.Sprintf("%v %v pandoc-fancy-%v", ClassListMarker, ClassFancyMarker, style),
		},
	}, true
}

func exampleList(lc *lineContext) ([]Decoration, bool) {
	_, token, ok := lc.marker(scandown.MatchExampleList)
	if !ok {
		return nil, false
	}
	n, ok := lc.Examples.Lines[lc.ln.Number]
	if !ok {
		return nil, false
	}
	dup, _ := lc.Examples.DuplicateAt(lc.ln.Number)
	return []Decoration{
		lc.lineClass(ClassListLine),
		lc.numbered(token, ClassExampleMarker, "("+strconv.Itoa(n)+")", dup),
	}, true
}

func customLabelList(lc *lineContext) ([]Decoration, bool) {
	if lc.Custom == nil {
		return nil, false
	}
	m, token, ok := lc.marker(scandown.MatchCustomLabel)
	if !ok {
		return nil, false
	}
	if _, ok := lc.Custom.Lines[lc.ln.Number]; !ok {
		return nil, false
	}
	rendered, ok := lc.Custom.Rendered[m.Label]
	if !ok {
		rendered = m.Label
	}
	dup, _ := lc.Custom.DuplicateAt(lc.ln.Number)
	placeholders := placeholdersOf(token, m.Text)
	decs := []Decoration{lc.lineClass(ClassListLine)}
	decs = append(decs, lc.labelled(token, placeholders, ClassCustomMarker, rendered, dup)...)
	return decs, true
}

func definitionItem(lc *lineContext) ([]Decoration, bool) {
	_, token, ok := lc.marker(scandown.MatchDefinition)
	if !ok {
		return nil, false
	}
	return []Decoration{
		lc.lineClass(ClassDefinitionItem),
		{From: token.From, To: token.To, Kind: Mark, Class: ClassDefinitionMarker},
	}, true
}

func definitionParagraph(lc *lineContext) ([]Decoration, bool) {
	if !lc.DefinitionParagraphs[lc.ln.Number] {
		return nil, false
	}
	return []Decoration{lc.lineClass(ClassDefinitionParagraph)}, true
}

func definitionTerm(lc *lineContext) ([]Decoration, bool) {
	if !lc.DefinitionTerms[lc.ln.Number] {
		return nil, false
	}
	return []Decoration{lc.lineClass(ClassDefinitionTerm)}, true
}

func exampleReferences(lc *lineContext) ([]Decoration, bool) {
	var decs []Decoration
	for _, sp := range scandown.FindExampleRefs(lc.text()) {
		sp = sp.Shift(lc.base())
		n, ok := lc.Examples.Number(sp.Label)
		if !ok || lc.excluded(sp) || !lc.claim(sp) {
			continue
		}
		decs = append(decs, lc.numberedRef(sp, ClassExampleRef, "("+strconv.Itoa(n)+")"))
	}
	return decs, len(decs) > 0
}

// numberedRef decorates a reference without placeholders.
func (lc *lineContext) numberedRef(sp scandown.Span, class, text string) Decoration {
	if sp.Contains(lc.cursor) {
		return Decoration{From: sp.From, To: sp.To, Kind: Mark, Class: class}
	}
	return Decoration{From: sp.From, To: sp.To, Kind: Replace, Widget: collapsedWidget(sp, LabelWidget, class, text, nil)}
}

func superscripts(lc *lineContext) ([]Decoration, bool) {
	return lc.scripts(scandown.FindSuperscripts, ClassSuperscript)
}

func subscripts(lc *lineContext) ([]Decoration, bool) {
	return lc.scripts(scandown.FindSubscripts, ClassSubscript)
}

// scripts decorates superscript or subscript spans, leaving alone any that
// touch a custom label reference so that the reference keeps its token.
func (lc *lineContext) scripts(find func(string) []scandown.Span, class string) ([]Decoration, bool) {
	text := lc.text()
	var refs []scandown.Span
	if lc.Custom != nil {
		refs = scandown.FindCustomLabelRefs(text)
	}
	var decs []Decoration
spans:
	for _, sp := range find(text) {
		for _, ref := range refs {
			if sp.From < ref.To && ref.From < sp.To {
				continue spans
			}
		}
		sp = sp.Shift(lc.base())
		if lc.excluded(sp) || !lc.claim(sp) {
			continue
		}
		if sp.Contains(lc.cursor) {
			decs = append(decs, Decoration{From: sp.From, To: sp.To, Kind: Mark, Class: class})
			continue
		}
		decs = append(decs, Decoration{
			From: sp.From,
			To:   sp.To,
			Kind: Replace,
			Widget: &Widget{
				Kind:   ScriptWidget,
				Text:   scandown.UnescapeScript(sp.Label),
				Class:  class,
				Label:  sp.Label,
				Target: sp.From,
			},
		})
	}
	return decs, len(decs) > 0
}

func customLabelReferences(lc *lineContext) ([]Decoration, bool) {
	if lc.Custom == nil {
		return nil, false
	}
	var decs []Decoration
	for _, sp := range scandown.FindCustomLabelRefs(lc.text()) {
		sp = sp.Shift(lc.base())
		rendered, ok := lc.Custom.ResolveReference(sp.Label, lc.Context)
		if !ok || lc.excluded(sp) || !lc.claim(sp) {
			continue
		}
		text := lc.Doc.Slice(sp.From, sp.To)
		decs = append(decs, lc.labelled(sp, placeholdersOf(sp, text), ClassCustomRef, rendered, nil)...)
	}
	return decs, len(decs) > 0
}

// placeholdersOf returns the placeholder spans within a token whose text is
// given, in document offsets.
func placeholdersOf(token scandown.Span, text string) []scandown.Span {
	spans := scandown.FindPlaceholders(text)
	for i := range spans {
		spans[i] = spans[i].Shift(token.From)
	}
	return spans
}
