// Package labels scans a document for example list and custom label list
// definitions, numbering them in document order and recording duplicates.
package labels

import (
	"strings"

	"github.com/jcorbin/pandext/internal/placeholder"
	"github.com/jcorbin/pandext/internal/textdoc"
	"github.com/jcorbin/pandext/scandown"
)

// Options control which lines a scan considers.
type Options struct {
	// Skip, if set, excludes a marker line from the scan; it is used to
	// ignore lines within code regions or invalid strict mode blocks.
	Skip func(ln textdoc.Line, m scandown.Marker) bool
}

func (opts Options) skip(ln textdoc.Line, m scandown.Marker) bool {
	return opts.Skip != nil && opts.Skip(ln, m)
}

// Result holds the label identities of one construct within one document.
// Line numbers are 1-based.
type Result struct {
	// Numbers maps each label to its sequence number.
	Numbers map[string]int

	// Contents maps each label to the content of its first definition line.
	Contents map[string]string

	// FirstLines maps each label to the line of its first definition.
	FirstLines map[string]int

	// Lines maps every definition line, labeled or not, to its display number.
	Lines map[int]int

	// LineLabels maps every definition line to its raw label.
	LineLabels map[int]string

	// Duplicates records every label defined more than once.
	Duplicates map[string]*Duplicate

	// Order lists the distinct labels in first occurrence order.
	Order []string

	// Rendered maps custom labels to their placeholder substituted form.
	Rendered map[string]string
}

// Duplicate points a repeated label back at its first definition.
type Duplicate struct {
	Label        string
	FirstLine    int
	FirstContent string

	// Lines lists the repeated definition lines, excluding the first.
	Lines []int
}

func newResult() *Result {
	return &Result{
		Numbers:    make(map[string]int),
		Contents:   make(map[string]string),
		FirstLines: make(map[string]int),
		Lines:      make(map[int]int),
		LineLabels: make(map[int]string),
		Duplicates: make(map[string]*Duplicate),
		Rendered:   make(map[string]string),
	}
}

// Number returns the sequence number of label.
func (r *Result) Number(label string) (int, bool) {
	n, ok := r.Numbers[label]
	return n, ok
}

// DuplicateAt returns the duplicate record for line if it repeats an earlier
// definition; the first definition of a label is never a duplicate.
func (r *Result) DuplicateAt(line int) (*Duplicate, bool) {
	label, ok := r.LineLabels[line]
	if !ok || label == "" {
		return nil, false
	}
	if r.FirstLines[label] == line {
		return nil, false
	}
	dup, ok := r.Duplicates[label]
	return dup, ok
}

// record registers one definition line, returning false if its label is a
// repeat. Empty labels are always unique.
func (r *Result) record(line int, label, content string) bool {
	r.LineLabels[line] = label
	if label == "" {
		return true
	}
	if first, seen := r.FirstLines[label]; seen {
		dup, ok := r.Duplicates[label]
		if !ok {
			dup = &Duplicate{
				Label:        label,
				FirstLine:    first,
				FirstContent: r.Contents[label],
			}
			r.Duplicates[label] = dup
		}
		dup.Lines = append(dup.Lines, line)
		return false
	}
	r.FirstLines[label] = line
	r.Contents[label] = content
	r.Order = append(r.Order, label)
	return true
}

// ScanExamples numbers every example list item "(@label)" or "(@)". Each item
// line takes the next display number; a label's number is that of its first
// line.
func ScanExamples(doc textdoc.Document, opts Options) *Result {
	r := newResult()
	counter := 0
	each(doc, opts, scandown.MatchExampleList, func(ln textdoc.Line, m scandown.Marker) {
		counter++
		r.Lines[ln.Number] = counter
		if r.record(ln.Number, m.Label, itemContent(ln, m)) && m.Label != "" {
			r.Numbers[m.Label] = counter
		}
	})
	return r
}

// ScanCustomLabels numbers the distinct custom labels "{::LABEL}" 1..k in
// first occurrence order. Definitions are processed through ctx in document
// order, assigning placeholder numbers; ctx may be nil to skip rendering.
func ScanCustomLabels(doc textdoc.Document, opts Options, ctx *placeholder.Context) *Result {
	r := newResult()
	counter := 0
	each(doc, opts, scandown.MatchCustomLabel, func(ln textdoc.Line, m scandown.Marker) {
		counter++
		r.Lines[ln.Number] = counter
		if r.record(ln.Number, m.Label, itemContent(ln, m)) {
			r.Numbers[m.Label] = len(r.Order)
			if ctx != nil {
				r.Rendered[m.Label] = ctx.ProcessLabel(m.Label)
			}
		}
	})
	return r
}

// CollectCustomLabels returns the raw label of every custom label definition
// line in document order, repeats included.
func CollectCustomLabels(doc textdoc.Document, opts Options) []string {
	var labels []string
	each(doc, opts, scandown.MatchCustomLabel, func(_ textdoc.Line, m scandown.Marker) {
		labels = append(labels, m.Label)
	})
	return labels
}

// Render refills Rendered from ctx without assigning new numbers; labels with
// unknown placeholders are left unrendered.
func (r *Result) Render(ctx *placeholder.Context) {
	r.Rendered = make(map[string]string, len(r.Order))
	for _, label := range r.Order {
		if s, ok := ctx.ProcessedLabel(label); ok {
			r.Rendered[label] = s
		}
	}
}

// ResolveReference renders a custom label reference. A reference is valid if
// its raw label names a definition, or if every placeholder within it is
// known to ctx; invalid references return false and must stay literal.
func (r *Result) ResolveReference(raw string, ctx *placeholder.Context) (string, bool) {
	if _, ok := r.Numbers[raw]; ok {
		if s, ok := r.Rendered[raw]; ok {
			return s, true
		}
		if ctx != nil {
			return ctx.ProcessedLabel(raw)
		}
		return raw, true
	}
	if ctx == nil || len(scandown.FindPlaceholders(raw)) == 0 {
		return "", false
	}
	return ctx.ProcessedLabel(raw)
}

func each(
	doc textdoc.Document,
	opts Options,
	match func(string) (scandown.Marker, bool),
	fn func(ln textdoc.Line, m scandown.Marker),
) {
	for n := 1; n <= doc.LineCount(); n++ {
		ln := doc.Line(n)
		m, ok := match(ln.Text)
		if !ok || opts.skip(ln, m) {
			continue
		}
		fn(ln, m)
	}
}

func itemContent(ln textdoc.Line, m scandown.Marker) string {
	return strings.TrimSpace(m.Content(ln.Text))
}
