package oututil_test

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/pandext/internal/oututil"
)

// chunks records each write it receives.
type chunks []string

func (cs *chunks) Write(p []byte) (int, error) {
	*cs = append(*cs, string(p))
	return len(p), nil
}

func TestWriteBuffer_MaybeFlush(t *testing.T) {
	var out chunks
	buf := oututil.WriteBuffer{To: &out}
	fmt.Fprint(&buf, "one\ntw")
	require.NoError(t, buf.MaybeFlush())
	fmt.Fprint(&buf, "o\nthr")
	require.NoError(t, buf.MaybeFlush())
	fmt.Fprint(&buf, "ee")
	require.NoError(t, buf.MaybeFlush())
	assert.Equal(t, chunks{"one\n", "two\n"}, out)
	require.NoError(t, buf.Flush())
	assert.Equal(t, chunks{"one\n", "two\n", "three"}, out)
}

func TestPrefixWriter(t *testing.T) {
	var sb strings.Builder
	pw := oututil.NewPrefixWriter("  > ", &sb)
	fmt.Fprint(pw, "line 1\nline")
	fmt.Fprint(pw, " 2\n\nline 4")
	assert.Equal(t, "  > line 1\n  > line 2\n  > \n", sb.String())
	require.NoError(t, pw.Close())
	assert.Equal(t, "  > line 1\n  > line 2\n  > \n  > line 4", sb.String())
}

func ExampleWriteLines() {
	labels := []string{"good", "bad", "ugly"}
	i := 0
	oututil.WriteLines(oututil.NewPrefixWriter("@", os.Stdout), func(w io.Writer) bool {
		fmt.Fprintf(w, "%v: (%v)\n", labels[i], i+1)
		i++
		return i < len(labels)
	})
	// Output:
	// @good: (1)
	// @bad: (2)
	// @ugly: (3)
}

type failAfter struct {
	n   int
	err error
}

func (fa *failAfter) Write(p []byte) (int, error) {
	if fa.n == 0 {
		return 0, fa.err
	}
	fa.n--
	return len(p), nil
}

func TestWriteLines_error(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	err := oututil.WriteLines(&failAfter{n: 2, err: boom}, func(w io.Writer) bool {
		calls++
		fmt.Fprintln(w, "row")
		return true
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 3, calls)
}
