// Package oututil provides buffered line oriented output plumbing for the
// command line tools.
package oututil

import (
	"bytes"
	"io"
)

// WriteBuffer accumulates output for a destination writer, flushing whole
// chunks as its policy allows:
//
//	buf := WriteBuffer{To: os.Stdout}
//	for _, row := range rows {
//		fmt.Fprintln(&buf, row)
//		if err := buf.MaybeFlush(); err != nil {
//			return err
//		}
//	}
//	return buf.Flush()
type WriteBuffer struct {
	// Policy returns how many leading bytes may be flushed; nil means
	// FlushLines.
	Policy func(b []byte) int

	To io.Writer
	bytes.Buffer
}

// Flush writes all buffered content, regardless of policy.
func (buf *WriteBuffer) Flush() error {
	_, err := buf.WriteTo(buf.To)
	return err
}

// MaybeFlush writes the prefix of buffered content allowed by the policy.
func (buf *WriteBuffer) MaybeFlush() error {
	policy := buf.Policy
	if policy == nil {
		policy = FlushLines
	}
	b := buf.Bytes()
	if n := policy(b); n > 0 {
		m, err := buf.To.Write(b[:n])
		buf.Next(m)
		return err
	}
	return nil
}

// FlushLines is a flush policy allowing everything through the last newline.
func FlushLines(b []byte) int {
	return bytes.LastIndexByte(b, '\n') + 1
}

// ErrWriter wraps a writer, retaining its first error and refusing any
// further writes after it.
type ErrWriter struct {
	io.Writer
	Err error
}

// Write passes p through unless an earlier write failed.
func (ew *ErrWriter) Write(p []byte) (n int, err error) {
	if ew.Err == nil {
		n, ew.Err = ew.Writer.Write(p)
	}
	return n, ew.Err
}

// PrefixWriter prepends Prefix to every line written through it. Close
// flushes any final partial line.
type PrefixWriter struct {
	Prefix string
	buf    WriteBuffer
}

// NewPrefixWriter returns a PrefixWriter writing into w.
func NewPrefixWriter(prefix string, w io.Writer) *PrefixWriter {
	pw := &PrefixWriter{Prefix: prefix}
	pw.buf.To = w
	return pw
}

// Write buffers p with prefixes inserted at line starts, flushing complete
// lines.
func (pw *PrefixWriter) Write(p []byte) (n int, err error) {
	for len(p) > 0 {
		if end := pw.buf.Len(); end == 0 || pw.buf.Bytes()[end-1] == '\n' {
			pw.buf.WriteString(pw.Prefix)
		}
		line := p
		if i := bytes.IndexByte(p, '\n'); i >= 0 {
			line = p[:i+1]
		}
		p = p[len(line):]
		m, _ := pw.buf.Write(line)
		n += m
	}
	return n, pw.buf.MaybeFlush()
}

// Close flushes any partial line.
func (pw *PrefixWriter) Close() error { return pw.buf.Flush() }

// WriteLines calls next with a buffered writer until it returns false or a
// write fails, flushing complete lines after every call.
func WriteLines(to io.Writer, next func(w io.Writer) bool) error {
	ew, ok := to.(*ErrWriter)
	if !ok {
		ew = &ErrWriter{Writer: to}
	}
	buf := WriteBuffer{To: ew}
	for ew.Err == nil && next(&buf) {
		buf.MaybeFlush()
	}
	buf.Flush()
	return ew.Err
}
