package decorate

import (
	"log/slog"

	"github.com/jcorbin/pandext/internal/config"
	"github.com/jcorbin/pandext/internal/placeholder"
	"github.com/jcorbin/pandext/internal/region"
	"github.com/jcorbin/pandext/internal/textdoc"
	"github.com/jcorbin/pandext/scandown"
)

// Builder rebuilds the decoration set of a document view.
type Builder struct {
	Settings config.Settings

	// Registry caches placeholder numbering per document path; when nil every
	// build numbers placeholders from scratch.
	Registry *placeholder.Registry

	// Logger receives processor failures at debug level; nil discards them.
	Logger *slog.Logger

	// Regions detects excluded regions; nil picks region.DetectTree when
	// Settings.Regions is config.RegionsTree, and region.Detect otherwise.
	Regions func(src string) region.Set
}

// View is the state of a host view at rebuild time.
type View struct {
	Doc textdoc.Document

	// Path identifies the document for placeholder caching.
	Path string

	// Cursor is the primary cursor offset.
	Cursor int

	// Live is false when the host shows raw source, where nothing is
	// decorated.
	Live bool

	// Viewport optionally limits the returned decorations; numbering is
	// always computed over the whole document.
	Viewport *Viewport
}

// Viewport is a visible range of document offsets.
type Viewport struct {
	From, To int
}

func (b *Builder) regions() func(string) region.Set {
	if b.Regions != nil {
		return b.Regions
	}
	if b.Settings.Regions == config.RegionsTree {
		return func(src string) region.Set { return region.DetectTree([]byte(src)) }
	}
	return region.Detect
}

func (b *Builder) logger() *slog.Logger {
	if b.Logger != nil {
		return b.Logger
	}
	return slog.New(slog.DiscardHandler)
}

// Build returns the sorted decoration set for a view. It never fails: any
// line that cannot be decorated is left as plain text.
func (b *Builder) Build(v View) Set {
	if !v.Live || v.Doc == nil {
		return nil
	}
	a := b.Analyze(v.Doc, v.Path)

	var set Set
	for n := 1; n <= v.Doc.LineCount(); n++ {
		if a.skipLine(n) || scandown.IsBlank(a.Lines[n-1]) {
			continue
		}
		lc := &lineContext{
			Analysis: a,
			settings: b.Settings,
			ln:       v.Doc.Line(n),
			cursor:   v.Cursor,
		}
		set = append(set, b.decorateLine(lc)...)
	}
	set.Sort()

	if vp := v.Viewport; vp != nil {
		visible := set[:0]
		for _, d := range set {
			if d.To >= vp.From && d.From <= vp.To {
				visible = append(visible, d)
			}
		}
		set = visible
	}
	return set
}

func (b *Builder) decorateLine(lc *lineContext) (out Set) {
	for _, p := range structural {
		decs, matched := b.safe(p, lc)
		out = append(out, decs...)
		if matched && !p.passThrough {
			break
		}
	}
	for _, p := range inline {
		decs, _ := b.safe(p, lc)
		out = append(out, decs...)
	}
	return out
}

// safe runs one processor over one line, turning a panic into no
// decorations for that unit of work.
func (b *Builder) safe(p processor, lc *lineContext) (decs []Decoration, matched bool) {
	defer func() {
		if r := recover(); r != nil {
			b.logger().Debug("decoration processor failed",
				"processor", p.name,
				"line", lc.ln.Number,
				"panic", r)
			decs, matched = nil, false
		}
	}()
	return p.run(lc)
}

// processor decorates one line. Structural processors report whether they own
// the line's marker; unless passThrough is set, that ends the structural
// phase for the line.
type processor struct {
	name        string
	passThrough bool
	run         func(lc *lineContext) ([]Decoration, bool)
}

// lineContext is the per line state shared by the processors of one line.
type lineContext struct {
	*Analysis
	settings config.Settings
	ln       textdoc.Line
	cursor   int

	content int             // offset within the line where inline content starts
	claimed []scandown.Span // replaced document ranges
}

// text returns the inline content portion of the line.
func (lc *lineContext) text() string {
	if lc.content > len(lc.ln.Text) {
		return ""
	}
	return lc.ln.Text[lc.content:]
}

// base returns the document offset of the inline content portion.
func (lc *lineContext) base() int { return lc.ln.From + lc.content }

// excluded returns true if the span touches a code or math region.
func (lc *lineContext) excluded(sp scandown.Span) bool {
	return lc.Regions.Intersects(sp.From, sp.To)
}

// claim reserves a document range, returning false if it overlaps an earlier
// claim.
func (lc *lineContext) claim(sp scandown.Span) bool {
	for _, c := range lc.claimed {
		if sp.From < c.To && c.From < sp.To {
			return false
		}
	}
	lc.claimed = append(lc.claimed, sp)
	return true
}
