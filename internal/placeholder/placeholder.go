// Package placeholder resolves "(#name)" placeholders inside custom labels
// into sequence numbers shared by every name in one document.
package placeholder

import (
	"strconv"
	"strings"

	"github.com/jcorbin/pandext/scandown"
)

// Context numbers placeholder names in first seen order, starting at 1.
// The zero value is ready to use.
type Context struct {
	numbers map[string]int
	names   []string
}

// NewContext returns an empty context.
func NewContext() *Context { return &Context{} }

// ProcessLabel substitutes every placeholder in raw with its number,
// assigning the next number to each name not seen before. Processing a label
// whose names are all known never changes the context.
func (ctx *Context) ProcessLabel(raw string) string {
	return ctx.substitute(raw, func(name string) (int, bool) {
		if n, ok := ctx.numbers[name]; ok {
			return n, true
		}
		if ctx.numbers == nil {
			ctx.numbers = make(map[string]int)
		}
		ctx.names = append(ctx.names, name)
		n := len(ctx.names)
		ctx.numbers[name] = n
		return n, true
	})
}

// Number returns the number assigned to name, if any.
func (ctx *Context) Number(name string) (int, bool) {
	n, ok := ctx.numbers[name]
	return n, ok
}

// ProcessedLabel substitutes the placeholders of a referencing label without
// assigning any new numbers. It returns false if any placeholder name is not
// already known.
func (ctx *Context) ProcessedLabel(raw string) (string, bool) {
	ok := true
	s := ctx.substitute(raw, func(name string) (int, bool) {
		n, known := ctx.numbers[name]
		if !known {
			ok = false
		}
		return n, known
	})
	if !ok {
		return "", false
	}
	return s, true
}

// Len returns how many names have been assigned numbers.
func (ctx *Context) Len() int { return len(ctx.names) }

// Names returns the known names in number order.
func (ctx *Context) Names() []string {
	return append([]string(nil), ctx.names...)
}

// Reset forgets all assigned numbers.
func (ctx *Context) Reset() {
	ctx.numbers = nil
	ctx.names = nil
}

func (ctx *Context) substitute(raw string, number func(name string) (int, bool)) string {
	spans := scandown.FindPlaceholders(raw)
	if len(spans) == 0 {
		return raw
	}
	var sb strings.Builder
	sb.Grow(len(raw))
	last := 0
	for _, span := range spans {
		sb.WriteString(raw[last:span.From])
		if n, ok := number(span.Label); ok {
			sb.WriteString(strconv.Itoa(n))
		} else {
			sb.WriteString(raw[span.From:span.To])
		}
		last = span.To
	}
	sb.WriteString(raw[last:])
	return sb.String()
}
