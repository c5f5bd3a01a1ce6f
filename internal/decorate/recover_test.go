package decorate

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jcorbin/pandext/internal/config"
	"github.com/jcorbin/pandext/internal/textdoc"
)

func TestBuild_recoversProcessorPanic(t *testing.T) {
	saved := structural
	defer func() { structural = saved }()
	structural = append([]processor{{
		name:        "boom",
		passThrough: true,
		run: func(lc *lineContext) ([]Decoration, bool) {
			if lc.ln.Number == 2 {
				panic("boom")
			}
			return nil, false
		},
	}}, saved...)

	var buf bytes.Buffer
	b := Builder{
		Settings: config.Default(),
		Logger:   slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})),
	}
	set := b.Build(View{
		Doc:    textdoc.NewText("#. one\n#. two\n"),
		Cursor: -1,
		Live:   true,
	})

	var texts []string
	for _, d := range set.Of(Replace) {
		texts = append(texts, d.Widget.Text)
	}
	assert.Equal(t, []string{"1.", "2."}, texts, "later processors still run on the failed line")
	assert.Contains(t, buf.String(), "processor=boom")
	assert.Contains(t, buf.String(), "line=2")
	assert.Contains(t, buf.String(), "panic=boom")
}
