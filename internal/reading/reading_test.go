package reading_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/pandext/internal/config"
	"github.com/jcorbin/pandext/internal/placeholder"
	"github.com/jcorbin/pandext/internal/reading"
)

func render(t *testing.T, settings config.Settings, src string) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, reading.Render(&buf, []byte(src), reading.Options{Settings: settings}))
	return buf.String()
}

func TestRender(t *testing.T) {
	for _, tc := range []struct {
		name    string
		src     string
		has     []string
		hasNot  []string
		changes func(*config.Settings)
	}{
		{
			name: "hash list",
			src:  "#. one\n#. two\n#. three\n",
			has: []string{
				`<div class="pandoc-list">`,
				`<div class="pandoc-list-item"><span class="pandoc-list-marker pandoc-hash-marker">1.</span> one`,
				`<span class="pandoc-list-marker pandoc-hash-marker">3.</span> three`,
			},
			hasNot: []string{"#.", "<p>"},
		},
		{
			name: "fancy list",
			src:  "h. eight\ni. nine\n",
			has: []string{
				`<span class="pandoc-list-marker pandoc-fancy-marker pandoc-fancy-lower-alpha">i.</span> nine`,
			},
		},
		{
			name: "roman list",
			src:  "iv. four\nv. five\n",
			has: []string{
				`<span class="pandoc-list-marker pandoc-fancy-marker pandoc-fancy-lower-roman">v.</span> five`,
			},
		},
		{
			name: "examples and references",
			src:  "(@) first\n(@good) second\n\nAs (@good) shows, and (@missing) does not.\n",
			has: []string{
				`<span class="pandoc-list-marker pandoc-example-marker">(1)</span> first`,
				`<span class="pandoc-list-marker pandoc-example-marker">(2)</span> second`,
				`As <span class="pandoc-example-ref">(2)</span> shows`,
				`(@missing) does not`,
			},
		},
		{
			name: "custom labels",
			src:  "{::P(#a)} first\n{::Q(#b)} second\n\nSee {::P(#a)}, {::(#a)+(#b)}, and {::Unknown}.\n",
			has: []string{
				`<span class="pandoc-list-marker pandoc-custom-label">(P1)</span> first`,
				`<span class="pandoc-list-marker pandoc-custom-label">(Q2)</span> second`,
				`See <span class="pandoc-custom-label-ref">(P1)</span>`,
				`<span class="pandoc-custom-label-ref">(1+2)</span>`,
				`and {::Unknown}.`,
			},
		},
		{
			name:    "custom labels disabled",
			src:     "{::P} first\n\nSee {::P}.\n",
			has:     []string{"<p>{::P} first</p>", "See {::P}."},
			hasNot:  []string{"pandoc-custom-label"},
			changes: func(s *config.Settings) { s.MoreExtendedSyntax = false },
		},
		{
			name: "duplicates",
			src:  "{::P} A\n{::P} B\n",
			has: []string{
				`<span class="pandoc-list-marker pandoc-custom-label pandoc-duplicate-label" title="duplicate of line 1: A">(P)</span> B`,
			},
		},
		{
			name: "escaping",
			src:  "{::A\"B} quoted\n",
			has:  []string{`>(A&#34;B)</span> quoted`},
		},
		{
			name:   "scripts",
			src:    "2^10^ and H~2~O and a^b\\ c^ but not $x^2^$.\n",
			has:    []string{"2<sup>10</sup>", "H<sub>2</sub>O", "a<sup>b c</sup>", "$x^2^$"},
			hasNot: []string{"<sup>2</sup>"},
		},
		{
			name:   "code",
			src:    "```\n#. one\n(@a) two\n```\n\nUse `(@a)` here.\n",
			has:    []string{"#. one\n(@a) two", "<code>(@a)</code>"},
			hasNot: []string{"pandoc-"},
		},
		{
			name:   "definitions",
			src:    "Term\n~ the definition\n",
			has:    []string{"<dt>Term</dt>", "the definition"},
			hasNot: []string{"~"},
		},
		{
			name: "mid paragraph list",
			src:  "Some text\na. first\n",
			has:  []string{"<p>Some text\n<br />", `pandoc-fancy-marker`},
		},
		{
			name:    "strict mid paragraph list",
			src:     "Some text\na. first\n",
			has:     []string{"<p>Some text\na. first</p>"},
			hasNot:  []string{"pandoc-"},
			changes: func(s *config.Settings) { s.StrictPandocMode = true },
		},
		{
			name:    "strict capital spacing",
			src:     "A. one\nB. two\n",
			has:     []string{"<p>A. one\nB. two</p>"},
			changes: func(s *config.Settings) { s.StrictPandocMode = true },
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			settings := config.Default()
			if tc.changes != nil {
				tc.changes(&settings)
			}
			out := render(t, settings, tc.src)
			for _, want := range tc.has {
				assert.Contains(t, out, want)
			}
			for _, unwanted := range tc.hasNot {
				assert.NotContains(t, out, unwanted)
			}
		})
	}
}

func TestRender_sharedRegistry(t *testing.T) {
	reg := placeholder.NewRegistry()
	opts := reading.Options{Settings: config.Default(), Registry: reg, Path: "a.md"}
	src := []byte("{::P(#x)} one\n")

	var first, second bytes.Buffer
	require.NoError(t, reading.Render(&first, src, opts))
	ctx, ok := reg.Get("a.md")
	require.True(t, ok)
	require.NoError(t, reading.Render(&second, src, opts))
	again, _ := reg.Get("a.md")
	assert.Same(t, ctx, again)
	assert.Equal(t, first.String(), second.String())
}
