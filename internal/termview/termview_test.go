package termview_test

import (
	"io"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/pandext/internal/config"
	"github.com/jcorbin/pandext/internal/decorate"
	"github.com/jcorbin/pandext/internal/termview"
	"github.com/jcorbin/pandext/internal/textdoc"
)

func preview(t *testing.T, src string, cursor int) string {
	t.Helper()
	doc := textdoc.NewText(src)
	b := decorate.Builder{Settings: config.Default()}
	set := b.Build(decorate.View{Doc: doc, Cursor: cursor, Live: true})

	r := lipgloss.NewRenderer(io.Discard, termenv.WithProfile(termenv.Ascii))
	surface := termview.NewSurface(doc, r, nil)
	require.NoError(t, decorate.Load(surface, set))
	return surface.Render()
}

func TestSurface_Render(t *testing.T) {
	for _, tc := range []struct {
		name   string
		src    string
		cursor int
		out    string
	}{
		{
			name:   "collapsed",
			src:    "(@a) first\n{::P(#x)} second\n\nSee (@a), {::P(#x)}, x^2^ and H~2~O.\n",
			cursor: -1,
			out:    "(1) first\n(P1) second\n\nSee (1), (P1), x² and H₂O.\n",
		},
		{
			name:   "semi expanded",
			src:    "(@a) first\n{::P(#x)} second\n",
			cursor: 13,
			out:    "(1) first\n{::P1} second\n",
		},
		{
			name:   "fully expanded",
			src:    "(@a) first\n{::P(#x)} second\n",
			cursor: 17,
			out:    "(1) first\n{::P(#x)} second\n",
		},
		{
			name:   "hash list",
			src:    "#. one\n#. two\n",
			cursor: 1,
			out:    "#. one\n2. two\n",
		},
		{
			name:   "duplicate",
			src:    "(@a) A\n(@a) B",
			cursor: -1,
			out:    "(1) A\n(2)! B",
		},
		{
			name:   "script fallback",
			src:    "a^b\\ c^ and y~ij~",
			cursor: -1,
			out:    "a^{b c} and y_{ij}",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.out, preview(t, tc.src, tc.cursor))
		})
	}
}

func TestSurface_Add(t *testing.T) {
	r := lipgloss.NewRenderer(io.Discard, termenv.WithProfile(termenv.Ascii))
	surface := termview.NewSurface(textdoc.NewText("text"), r, termview.Styles{})
	require.NoError(t, surface.Add(decorate.Decoration{From: 1, To: 2, Kind: decorate.Mark}))
	assert.ErrorIs(t, surface.Add(decorate.Decoration{From: 0, To: 2, Kind: decorate.Mark}), decorate.ErrUnordered)
	assert.Equal(t, "text", surface.Render())
}
