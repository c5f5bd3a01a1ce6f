// Package editing implements the list editing commands of the extended list
// syntax as document changes for the host to dispatch.
package editing

import (
	"strings"

	"github.com/jcorbin/pandext/internal/config"
	"github.com/jcorbin/pandext/internal/textdoc"
	"github.com/jcorbin/pandext/scandown"
)

// Commands computes editing changes under the given settings.
type Commands struct {
	Settings config.Settings
}

// ContinueList returns the change that breaks the line at cursor and starts
// the next item of the same list: "#." after a hash item, the next ordinal
// after a fancy item, "(@)" after an example, and the same marker after a
// definition. On an item with no content it instead removes the marker,
// ending the list. It returns false unless the cursor is within the content
// of such an item.
func (c Commands) ContinueList(doc textdoc.Document, cursor int) (textdoc.Change, bool) {
	ln := doc.LineAt(cursor)
	m, ok := scandown.Match(ln.Text)
	if !ok || cursor < ln.From+m.Width() {
		return textdoc.Change{}, false
	}

	var next string
	switch m.Kind {
	case scandown.HashList:
		next = m.Text
	case scandown.FancyList:
		style := scandown.ResolveFancyStyle(textdoc.Lines(doc), ln.Number-1)
		ord := scandown.NextOrdinal(m.Label, style)
		if ord == "" {
			return textdoc.Change{}, false
		}
		next = ord + string(m.Delim)
	case scandown.ExampleList:
		next = "(@)"
	case scandown.Definition:
		next = m.Text
	default:
		return textdoc.Change{}, false
	}

	if strings.TrimSpace(m.Content(ln.Text)) == "" {
		sel := textdoc.Cursor(ln.From)
		return textdoc.Change{From: ln.From, To: ln.To, Selection: &sel}, true
	}

	insert := "\n" + m.Indent + next + m.Space
	sel := textdoc.Cursor(cursor + len(insert))
	return textdoc.Change{From: cursor, To: cursor, Insert: insert, Selection: &sel}, true
}

// RenumberFancy returns the changes that renumber the fancy list siblings
// following the item on line, continuing from its ordinal in its style. The
// changes are in descending offset order, so they may be applied one after
// another. Nothing is renumbered unless AutoRenumberLists is set.
func (c Commands) RenumberFancy(doc textdoc.Document, line int) []textdoc.Change {
	if !c.Settings.AutoRenumberLists || line < 1 || line > doc.LineCount() {
		return nil
	}
	lines := textdoc.Lines(doc)
	m, ok := scandown.MatchFancyList(lines[line-1])
	if !ok {
		return nil
	}
	style := scandown.ResolveFancyStyle(lines, line-1)

	var changes []textdoc.Change
	ord := m.Label
	for _, i := range followingSiblings(lines, line-1, m) {
		next := scandown.NextOrdinal(ord, style)
		if next == "" {
			break
		}
		ln := doc.Line(i + 1)
		sm, _ := scandown.MatchFancyList(ln.Text)
		if sm.Label != next {
			from := ln.From + sm.Start()
			changes = append(changes, textdoc.Change{From: from, To: from + len(sm.Label), Insert: next})
		}
		ord = next
	}

	for i, j := 0, len(changes)-1; i < j; i, j = i+1, j-1 {
		changes[i], changes[j] = changes[j], changes[i]
	}
	return changes
}

// followingSiblings returns the indices of the fancy items after lines[i]
// that continue its list: same indent, delimiter, and case. Nested items and
// item continuations are stepped over; a shallower line, another kind of list
// item, or a new paragraph ends the list.
func followingSiblings(lines []string, i int, m scandown.Marker) (siblings []int) {
	indent := len(m.Indent)
	for j := i + 1; j < len(lines); j++ {
		line := lines[j]
		if scandown.IsBlank(line) {
			continue
		}
		if sm, ok := scandown.MatchFancyList(line); ok {
			switch in := len(sm.Indent); {
			case in < indent:
				return siblings
			case in > indent:
				continue
			case sm.Delim == m.Delim && sm.Style.Upper() == m.Style.Upper():
				siblings = append(siblings, j)
				continue
			default:
				return siblings
			}
		}
		if scandown.IndentWidth(line) > indent {
			continue
		}
		if sm, ok := scandown.Match(line); ok && sm.Kind.IsList() {
			return siblings
		}
		if scandown.IsBlank(lines[j-1]) {
			return siblings
		}
	}
	return siblings
}
