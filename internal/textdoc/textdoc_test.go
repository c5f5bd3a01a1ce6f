package textdoc_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/pandext/internal/textdoc"
)

func TestText(t *testing.T) {
	doc := textdoc.NewText("one\ntwo\r\n\nfour")
	assert.Equal(t, 4, doc.LineCount())
	assert.Equal(t, textdoc.Line{Number: 1, From: 0, To: 3, Text: "one"}, doc.Line(1))
	assert.Equal(t, textdoc.Line{Number: 2, From: 4, To: 7, Text: "two"}, doc.Line(2), "carriage return trimmed")
	assert.Equal(t, textdoc.Line{Number: 3, From: 9, To: 9, Text: ""}, doc.Line(3))
	assert.Equal(t, textdoc.Line{Number: 4, From: 10, To: 14, Text: "four"}, doc.Line(4))

	assert.Equal(t, 1, doc.Line(0).Number, "clamped low")
	assert.Equal(t, 4, doc.Line(99).Number, "clamped high")

	assert.Equal(t, 1, doc.LineAt(0).Number)
	assert.Equal(t, 1, doc.LineAt(3).Number, "line break belongs to its line")
	assert.Equal(t, 2, doc.LineAt(4).Number)
	assert.Equal(t, 4, doc.LineAt(14).Number)

	assert.Equal(t, "two", doc.Slice(4, 7))
	assert.Equal(t, "four", doc.Slice(10, 100))
	assert.Equal(t, "", doc.Slice(5, 2))

	assert.Equal(t, []string{"one", "two", "", "four"}, textdoc.Lines(doc))
}

func TestText_empty(t *testing.T) {
	var doc textdoc.Text
	assert.Equal(t, 1, doc.LineCount())
	assert.Equal(t, textdoc.Line{Number: 1}, doc.Line(1))

	doc = textdoc.NewText("")
	assert.Equal(t, 1, doc.LineCount())
	assert.Equal(t, "", doc.Line(1).Text)
}

func TestBuffer_Apply(t *testing.T) {
	buf := textdoc.NewBuffer("hello\nworld\n")
	buf.Select(textdoc.Cursor(6))

	require.NoError(t, buf.Apply(textdoc.Change{From: 5, To: 5, Insert: " there"}))
	assert.Equal(t, "hello there\nworld\n", buf.String())
	assert.Equal(t, 12, buf.Cursor(), "cursor after the change shifts")

	require.NoError(t, buf.Apply(textdoc.Change{From: 12, To: 12, Insert: "big "}))
	assert.Equal(t, "hello there\nbig world\n", buf.String())
	assert.Equal(t, 16, buf.Cursor(), "cursor at the insertion point moves past it")

	require.NoError(t, buf.Apply(textdoc.Change{From: 0, To: 5, Insert: "hi"}))
	assert.Equal(t, "hi there\nbig world\n", buf.String())
	assert.Equal(t, 13, buf.Cursor())

	buf.Select(textdoc.Selection{Anchor: 1, Head: 4})
	require.NoError(t, buf.Apply(textdoc.Change{From: 0, To: 8, Insert: "yo"}))
	assert.Equal(t, textdoc.Selection{Anchor: 2, Head: 2}, buf.Selection(), "replaced text collapses to the insertion end")

	sel := textdoc.Cursor(0)
	require.NoError(t, buf.Apply(textdoc.Change{From: 2, To: 2, Insert: "!", Selection: &sel}))
	assert.Equal(t, 0, buf.Cursor(), "explicit selection wins")
	assert.Equal(t, "yo!\nbig world\n", buf.String())
}

func TestBuffer_Apply_outOfRange(t *testing.T) {
	buf := textdoc.NewBuffer("abc")
	snap := buf.Snapshot()
	for _, c := range []textdoc.Change{
		{From: -1, To: 0},
		{From: 2, To: 1},
		{From: 0, To: 4},
	} {
		err := buf.Apply(c)
		assert.ErrorIs(t, err, textdoc.ErrChangeRange)
	}
	assert.Equal(t, snap, buf.Snapshot(), "failed changes leave the buffer alone")

	err := buf.ApplyAll(
		textdoc.Change{From: 3, To: 3, Insert: "d"},
		textdoc.Change{From: 9, To: 9},
	)
	assert.ErrorIs(t, err, textdoc.ErrChangeRange)
	assert.Equal(t, "abcd", buf.String())
}

func TestBuffer_snapshotsStayValid(t *testing.T) {
	buf := textdoc.NewBuffer("one")
	var doc textdoc.Document = buf.Snapshot()
	require.NoError(t, buf.Apply(textdoc.Change{From: 3, To: 3, Insert: "\ntwo"}))
	assert.Equal(t, "one", doc.String())
	assert.Equal(t, 2, buf.LineCount())
}

func TestBuffer_Format(t *testing.T) {
	buf := textdoc.NewBuffer("ab\ncd")
	buf.Select(textdoc.Selection{Anchor: 1, Head: 4})
	assert.Equal(t, "@4(anchor:1) len:5 lines:2", fmt.Sprintf("%v", buf))
	assert.Equal(t, "@4(anchor:1) len:5 lines:2\n1@0:2 \"ab\"\n2@3:5 \"cd\"", fmt.Sprintf("%+v", buf))
}
