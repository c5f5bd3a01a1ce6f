package region

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/jcorbin/pandext/internal/textdoc"
	"github.com/jcorbin/pandext/scandown"
)

// DetectTree finds excluded regions by walking a goldmark syntax tree: fenced
// and indented code blocks and code spans come from the tree, widened to
// cover their fence lines, indentation, and backtick delimiters. Math is not
// part of CommonMark, so math spans are found by scanning the paragraphs
// between code regions the same way Detect does.
//
// The tree follows CommonMark list rules and knows nothing of the extended
// markers, so indented text under a "#." item may come out as code here where
// Detect keeps it as a list paragraph.
func DetectTree(src []byte) Set {
	var (
		doc     = textdoc.NewText(string(src))
		root    = goldmark.New().Parser().Parse(text.NewReader(src))
		regions Set
	)

	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.FencedCodeBlock:
			if r, ok := fencedRegion(doc, node); ok {
				regions = append(regions, r)
			}
			return ast.WalkSkipChildren, nil

		case *ast.CodeBlock:
			if lines := node.Lines(); lines.Len() > 0 {
				first, last := lines.At(0), lines.At(lines.Len()-1)
				regions = append(regions, Region{
					From: doc.LineAt(first.Start).From,
					To:   doc.LineAt(last.Start).To,
					Type: CodeBlock,
				})
			}
			return ast.WalkSkipChildren, nil

		case *ast.CodeSpan:
			if r, ok := spanRegion(src, node); ok {
				regions = append(regions, r)
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	regions.sort()

	// math in the gaps between code regions, one paragraph run at a time
	var math Set
	d := detector{src: string(src), chunkFrom: -1}
	for i := 1; i <= doc.LineCount(); i++ {
		ln := doc.Line(i)
		if scandown.IsBlank(ln.Text) || regions.Intersects(ln.From, ln.To) && !onlyInline(regions, ln) {
			d.flushMath(&math)
			continue
		}
		if d.chunkFrom < 0 {
			d.chunkFrom = ln.From
		}
		d.chunkTo = ln.To
	}
	d.flushMath(&math)
	for _, r := range math {
		if !regions.Intersects(r.From, r.To) {
			regions = append(regions, r)
		}
	}
	regions.sort()
	return regions
}

func (d *detector) flushMath(math *Set) {
	if d.chunkFrom < 0 {
		return
	}
	*math = appendInline(*math, d.chunkFrom, d.src[d.chunkFrom:d.chunkTo], false)
	d.chunkFrom = -1
}

// onlyInline returns true if every region touching the line is a code span,
// so the line still takes part in its paragraph.
func onlyInline(regions Set, ln textdoc.Line) bool {
	for _, r := range regions {
		if r.To <= ln.From || r.From >= ln.To {
			continue
		}
		if r.Type != InlineCode {
			return false
		}
	}
	return true
}

// fencedRegion widens a fenced block's content lines to its fence lines. The
// opening fence is the line before the first content line, or the line
// holding the info string; the closing fence is the line after the last
// content line when one exists. Blocks with neither content nor info have no
// position in the tree and are skipped; their fence lines hold no text.
func fencedRegion(doc textdoc.Text, node *ast.FencedCodeBlock) (Region, bool) {
	var open textdoc.Line
	lines := node.Lines()
	switch {
	case node.Info != nil:
		open = doc.LineAt(node.Info.Segment.Start)
	case lines.Len() > 0:
		open = doc.Line(doc.LineAt(lines.At(0).Start).Number - 1)
	default:
		return Region{}, false
	}

	last := open
	if lines.Len() > 0 {
		last = doc.LineAt(lines.At(lines.Len() - 1).Start)
	}
	end := doc.Len()
	if f, ok := scandown.MatchFence(open.Text); ok && last.Number < doc.LineCount() {
		if cl := doc.Line(last.Number + 1); f.Closes(cl.Text) {
			end = cl.To
		}
	}
	return Region{From: open.From, To: end, Type: CodeBlock}, true
}

// spanRegion widens a code span's content to its backtick delimiters.
func spanRegion(src []byte, node *ast.CodeSpan) (Region, bool) {
	first, ok := node.FirstChild().(*ast.Text)
	if !ok {
		return Region{}, false
	}
	last, ok := node.LastChild().(*ast.Text)
	if !ok {
		return Region{}, false
	}
	from, to := first.Segment.Start, last.Segment.Stop
	for from > 0 && src[from-1] != '`' {
		from--
	}
	for from > 0 && src[from-1] == '`' {
		from--
	}
	for to < len(src) && src[to] != '`' {
		to++
	}
	for to < len(src) && src[to] == '`' {
		to++
	}
	return Region{From: from, To: to, Type: InlineCode}, true
}
