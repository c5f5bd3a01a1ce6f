package decorate

import (
	"github.com/jcorbin/pandext/internal/labels"
	"github.com/jcorbin/pandext/internal/listblock"
	"github.com/jcorbin/pandext/internal/placeholder"
	"github.com/jcorbin/pandext/internal/region"
	"github.com/jcorbin/pandext/internal/textdoc"
	"github.com/jcorbin/pandext/scandown"
)

// Analysis is the whole document state derived before any line is decorated.
// It is rebuilt from scratch on every build; only the placeholder Context is
// shared with the registry.
type Analysis struct {
	Doc   textdoc.Document
	Lines []string

	Regions region.Set

	// Invalid holds the lines of malformed blocks under strict mode.
	Invalid map[int]bool

	Examples *labels.Result

	// Custom and Context are nil unless the more extended syntax is enabled.
	Custom  *labels.Result
	Context *placeholder.Context

	// Hash maps each auto numbered line to its number.
	Hash map[int]int

	// DefinitionParagraphs and DefinitionTerms hold the lines of definition
	// list bodies and terms.
	DefinitionParagraphs map[int]bool
	DefinitionTerms      map[int]bool
}

// Analyze detects regions, validates blocks, and scans labels for doc. The
// placeholder context for path comes from the registry, when one is set.
func (b *Builder) Analyze(doc textdoc.Document, path string) *Analysis {
	a := &Analysis{
		Doc:   doc,
		Lines: textdoc.Lines(doc),
	}
	a.Regions = b.regions()(doc.String())

	if b.Settings.StrictPandocMode {
		a.Invalid = listblock.Validate(a.Lines, a.inCode)
	} else {
		a.Invalid = make(map[int]bool)
	}

	opts := labels.Options{Skip: func(ln textdoc.Line, m scandown.Marker) bool {
		return a.Invalid[ln.Number] || a.Regions.Contains(ln.From+m.Start())
	}}
	a.Examples = labels.ScanExamples(doc, opts)
	if b.Settings.MoreExtendedSyntax {
		raw := labels.CollectCustomLabels(doc, opts)
		if b.Registry != nil {
			a.Context = b.Registry.Resolve(path, raw)
		} else {
			a.Context = placeholder.NewContext()
			for _, label := range raw {
				a.Context.ProcessLabel(label)
			}
		}
		a.Custom = labels.ScanCustomLabels(doc, opts, a.Context)
	}

	a.numberHashes()
	a.findDefinitions()
	return a
}

// inCode returns true if the text of line n starts within a code block.
func (a *Analysis) inCode(n int) bool {
	ln := a.Doc.Line(n)
	r, ok := a.Regions.At(ln.From + scandown.IndentWidth(ln.Text))
	return ok && r.Type == region.CodeBlock
}

// skipLine returns true for lines that get no decorations at all.
func (a *Analysis) skipLine(n int) bool {
	return a.Invalid[n] || a.inCode(n)
}

// numberHashes numbers "#." items in one pass. Each indentation level of a
// list keeps its own counter; a deeper item opens a nested counter, a
// shallower one closes the nested ones, and a different kind of list item at
// the same level ends the hash list there. Unindented text after a blank line
// ends every list.
func (a *Analysis) numberHashes() {
	a.Hash = make(map[int]int)
	type level struct{ indent, count int }
	var stack []level
	prevBlank := true
	for i, line := range a.Lines {
		n := i + 1
		if scandown.IsBlank(line) {
			prevBlank = true
			continue
		}
		if a.skipLine(n) {
			prevBlank = false
			continue
		}
		m, ok := scandown.Match(line)
		indent := scandown.IndentWidth(line)
		switch {
		case ok && m.Kind == scandown.HashList:
			for len(stack) > 0 && stack[len(stack)-1].indent > indent {
				stack = stack[:len(stack)-1]
			}
			if top := len(stack) - 1; top >= 0 && stack[top].indent == indent {
				stack[top].count++
			} else {
				stack = append(stack, level{indent, 1})
			}
			a.Hash[n] = stack[len(stack)-1].count

		case ok && m.Kind.IsList():
			for len(stack) > 0 && stack[len(stack)-1].indent >= indent {
				stack = stack[:len(stack)-1]
			}

		case prevBlank && indent == 0:
			stack = stack[:0]
		}
		prevBlank = false
	}
}

// findDefinitions marks definition list terms and the body lines that follow
// definition items. A term is an unmarked line right before a definition item,
// or one blank line before it. Body lines continue a definition item either
// lazily on the next line, or indented after blank lines.
func (a *Analysis) findDefinitions() {
	a.DefinitionParagraphs = make(map[int]bool)
	a.DefinitionTerms = make(map[int]bool)

	isDef := func(i int) bool {
		if i < 0 || i >= len(a.Lines) || a.skipLine(i+1) {
			return false
		}
		m, ok := scandown.Match(a.Lines[i])
		return ok && m.Kind == scandown.Definition
	}
	plain := func(i int) bool {
		line := a.Lines[i]
		if scandown.IsBlank(line) || a.skipLine(i+1) {
			return false
		}
		_, marked := scandown.Match(line)
		return !marked
	}

	inBody := false // the previous non-blank line belongs to a definition
	blanks := 0
	for i, line := range a.Lines {
		if scandown.IsBlank(line) {
			blanks++
			continue
		}
		switch {
		case isDef(i):
			inBody = true
		case !plain(i):
			inBody = false
		default:
			nextDef := isDef(i+1) || i+2 < len(a.Lines) && scandown.IsBlank(a.Lines[i+1]) && isDef(i+2)
			body := inBody && (blanks == 0 || scandown.IndentWidth(line) >= 2)
			switch {
			case nextDef && scandown.IndentWidth(line) < 4 && (blanks > 0 || i == 0 || inBody):
				a.DefinitionTerms[i+1] = true
				inBody = false
			case body:
				a.DefinitionParagraphs[i+1] = true
			default:
				inBody = false
			}
		}
		blanks = 0
	}
}
