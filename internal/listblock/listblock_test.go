package listblock_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jcorbin/pandext/internal/listblock"
)

func TestValidate(t *testing.T) {
	for _, tc := range []struct {
		name    string
		doc     string
		invalid []int
	}{
		{"blank before", `
Intro.

a. one
b. two`, nil},

		{"document start", `
#. one
#. two`, nil},

		{"heading before", `
# Heading
(@) one`, nil},

		{"paragraph before", `
Some text
a. one
b. two

c. three`, []int{2, 3}},

		{"standard list before", `
- bullet
#. hash`, nil},

		{"capital letter needs two spaces", `
A. Smith wrote this
B. Jones too`, []int{1, 2}},

		{"capital letter with two spaces", `
A.  first
B.  second`, nil},

		{"capital letter paren", `
A) first
B) second`, nil},

		{"roman capitals are fine", `
IV. four
V.  five`, nil},

		{"custom label after text", `
text
{::P(#a)} item`, []int{2}},

		{"definitions are not validated", `
Term
~ definition`, nil},
	} {
		t.Run(tc.name, func(t *testing.T) {
			lines := strings.Split(strings.TrimPrefix(tc.doc, "\n"), "\n")
			want := make(map[int]bool)
			for _, n := range tc.invalid {
				want[n] = true
			}
			assert.Equal(t, want, listblock.Validate(lines, nil))
		})
	}
}

func TestValidate_code(t *testing.T) {
	lines := []string{"```", "text", "a. in code", "```"}
	invalid := listblock.Validate(lines, func(line int) bool { return line >= 1 && line <= 4 })
	assert.Empty(t, invalid)
	assert.Equal(t, map[int]bool{3: true, 4: true}, listblock.Validate(lines, nil))
}
