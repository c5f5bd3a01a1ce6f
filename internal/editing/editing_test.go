package editing_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/pandext/internal/config"
	"github.com/jcorbin/pandext/internal/editing"
	"github.com/jcorbin/pandext/internal/textdoc"
)

// cursorDoc splits a "|" cursor mark out of src.
func cursorDoc(src string) (*textdoc.Buffer, int) {
	at := strings.Index(src, "|")
	buf := textdoc.NewBuffer(src[:at] + src[at+1:])
	buf.Select(textdoc.Cursor(at))
	return buf, at
}

func ExampleCommands_ContinueList() {
	buf := textdoc.NewBuffer("iv. four")
	buf.Select(textdoc.Cursor(buf.Len()))

	cmds := editing.Commands{Settings: config.Default()}
	if change, ok := cmds.ContinueList(buf, buf.Cursor()); ok {
		if err := buf.Apply(change); err != nil {
			fmt.Println(err)
		}
	}
	fmt.Printf("%q @%v\n", buf.String(), buf.Cursor())

	// Output:
	// "iv. four\nv. " @12
}

func TestContinueList(t *testing.T) {
	for _, tc := range []struct {
		name string
		in   string
		out  string
	}{
		{"hash", "#. one|", "#. one\n#. |"},
		{"hash split", "#. one| two", "#. one\n#. | two"},
		{"nested hash", "  #. one|", "  #. one\n  #. |"},
		{"alpha", "a. one|", "a. one\nb. |"},
		{"upper alpha", "B.  two|", "B.  two\nC.  |"},
		{"alpha after h", "h. eight\ni. nine|", "h. eight\ni. nine\nj. |"},
		{"past z", "z. last|", "z. last\naa. |"},
		{"past upper Z", "Z) last|", "Z) last\nAA) |"},
		{"after aa", "z. one\naa. two|", "z. one\naa. two\nab. |"},
		{"roman", "i. one|", "i. one\nii. |"},
		{"roman paren", "IX) nine|", "IX) nine\nX) |"},
		{"example", "(@good) an example|", "(@good) an example\n(@) |"},
		{"definition", "Term\n~ meaning|", "Term\n~ meaning\n~ |"},
		{"end empty hash", "#. one\n#. |", "#. one\n|"},
		{"end empty fancy", "a. one\nb. |", "a. one\n|"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			buf, cursor := cursorDoc(tc.in)
			change, ok := editing.Commands{Settings: config.Default()}.ContinueList(buf, cursor)
			require.True(t, ok)
			require.NoError(t, buf.Apply(change))
			want, at := cursorDoc(tc.out)
			assert.Equal(t, want.String(), buf.String())
			assert.Equal(t, at, buf.Cursor())
		})
	}
}

func TestContinueList_none(t *testing.T) {
	for _, in := range []string{
		"plain text|",
		"- bullet|",
		"1. decimal|",
		"#|. marker",
		"{::P} custom|",
		"```\n|",
	} {
		t.Run(in, func(t *testing.T) {
			buf, cursor := cursorDoc(in)
			_, ok := editing.Commands{Settings: config.Default()}.ContinueList(buf, cursor)
			assert.False(t, ok)
		})
	}
}

func TestRenumberFancy(t *testing.T) {
	for _, tc := range []struct {
		name string
		in   string
		line int
		out  string
	}{
		{
			name: "alpha",
			in:   "a. one\nc. two\nd. three\n",
			line: 1,
			out:  "a. one\nb. two\nc. three\n",
		},
		{
			name: "roman grows",
			in:   "iii. three\ni. four\ni. five\n",
			line: 1,
			out:  "iii. three\niv. four\nv. five\n",
		},
		{
			name: "skips nested and continuations",
			in:   "A.  one\n    1. nested\n    more\nA.  two\n\n    para\n\nA.  three\n",
			line: 1,
			out:  "A.  one\n    1. nested\n    more\nB.  two\n\n    para\n\nC.  three\n",
		},
		{
			name: "alpha past z",
			in:   "y. one\ny. two\ny. three\n",
			line: 1,
			out:  "y. one\nz. two\naa. three\n",
		},
		{
			name: "stops at other list",
			in:   "a. one\na. two\n- bullet\na. three\n",
			line: 1,
			out:  "a. one\nb. two\n- bullet\na. three\n",
		},
		{
			name: "stops at new paragraph",
			in:   "a. one\n\nText.\na. again\n",
			line: 1,
			out:  "a. one\n\nText.\na. again\n",
		},
		{
			name: "stops at other delimiter",
			in:   "a. one\na) two\n",
			line: 1,
			out:  "a. one\na) two\n",
		},
		{
			name: "from the middle",
			in:   "a. one\nb. two\nb. three\n",
			line: 2,
			out:  "a. one\nb. two\nc. three\n",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			buf := textdoc.NewBuffer(tc.in)
			changes := editing.Commands{Settings: config.Default()}.RenumberFancy(buf, tc.line)
			require.NoError(t, buf.ApplyAll(changes...))
			assert.Equal(t, tc.out, buf.String())
		})
	}
}

func TestRenumberFancy_disabled(t *testing.T) {
	settings := config.Default()
	settings.AutoRenumberLists = false
	buf := textdoc.NewBuffer("a. one\nc. two\n")
	assert.Empty(t, editing.Commands{Settings: settings}.RenumberFancy(buf, 1))
	assert.Empty(t, editing.Commands{Settings: config.Default()}.RenumberFancy(buf, 0))
	assert.Empty(t, editing.Commands{Settings: config.Default()}.RenumberFancy(buf, 9))
}
