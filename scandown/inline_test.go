package scandown_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jcorbin/pandext/scandown"
)

func TestFindExampleRefs(t *testing.T) {
	assert.Equal(t, []scandown.Span{
		{From: 4, To: 11, Label: "good"},
		{From: 24, To: 30, Label: "bad"},
	}, scandown.FindExampleRefs("see (@good) and (@) and (@bad)"))
	assert.Empty(t, scandown.FindExampleRefs("no refs (@ here)"))
}

func TestFindCustomLabelRefs(t *testing.T) {
	assert.Equal(t, []scandown.Span{
		{From: 2, To: 11, Label: "P(#a)"},
	}, scandown.FindCustomLabelRefs("x {::P(#a)} y"))
	assert.Empty(t, scandown.FindCustomLabelRefs("x {::} y {::open"))
}

func TestFindPlaceholders(t *testing.T) {
	assert.Equal(t, []scandown.Span{
		{From: 1, To: 5, Label: "a"},
		{From: 6, To: 10, Label: "b"},
	}, scandown.FindPlaceholders("P(#a).(#b)"))
	assert.Empty(t, scandown.FindPlaceholders("P(#)"))
}

func TestFindScripts(t *testing.T) {
	for _, tc := range []struct {
		text string
		sup  []scandown.Span
		sub  []scandown.Span
	}{
		{text: "2^10^ and x^a\\ b^", sup: []scandown.Span{
			{From: 1, To: 5, Label: "10"},
			{From: 11, To: 17, Label: `a\ b`},
		}},
		{text: "H~2~O", sub: []scandown.Span{
			{From: 1, To: 4, Label: "2"},
		}},
		{text: "~~strike~~"},
		{text: "a^b c^"},
		{text: "footnote[^note^]"},
		{text: `escaped \^no^`},
		{text: "$R^{+}_{xy}$"},
		{text: "$x^2$ and y^2^", sup: []scandown.Span{
			{From: 11, To: 14, Label: "2"},
		}},
		{text: "~a$b~"},
	} {
		t.Run(fmt.Sprintf("%q", tc.text), func(t *testing.T) {
			assert.Equal(t, tc.sup, scandown.FindSuperscripts(tc.text), "superscripts")
			assert.Equal(t, tc.sub, scandown.FindSubscripts(tc.text), "subscripts")
		})
	}
}

func TestUnescapeScript(t *testing.T) {
	assert.Equal(t, "a b", scandown.UnescapeScript(`a\ b`))
	assert.Equal(t, "ab", scandown.UnescapeScript("ab"))
}

func TestSpan(t *testing.T) {
	s := scandown.Span{From: 3, To: 7, Label: "a"}
	assert.True(t, s.Contains(3))
	assert.True(t, s.Contains(7))
	assert.False(t, s.Contains(8))
	assert.Equal(t, 4, s.Len())
	assert.Equal(t, scandown.Span{From: 13, To: 17, Label: "a"}, s.Shift(10))
	assert.Equal(t, `[3:7] "a"`, fmt.Sprintf("%+v", s))
	assert.Equal(t, "[3:7]", fmt.Sprintf("%v", s))
}
