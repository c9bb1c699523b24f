package rendering

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeLaTeX(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "plain", in: "This is normal text", want: "This is normal text"},
		{name: "backslash", in: `test\backslash`, want: `test\textbackslash{}backslash`},
		{name: "braces", in: "text{with}braces", want: `text\{with\}braces`},
		{name: "dollar", in: "$100", want: `\$100`},
		{name: "ampersand", in: "R&D", want: `R\&D`},
		{name: "percent", in: "50%", want: `50\%`},
		{name: "hash", in: "C#", want: `C\#`},
		{name: "caret", in: "x^2", want: `x\textasciicircum{}2`},
		{name: "underscore", in: "snake_case", want: `snake\_case`},
		{name: "tilde", in: "~home", want: `\textasciitilde{}home`},
		{name: "unicode", in: "Café résumé", want: "Café résumé"},
		{name: "mixed", in: "Cut costs by 30% & saved $2M", want: `Cut costs by 30\% \& saved \$2M`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EscapeLaTeX(tt.in))
		})
	}
}

func TestEscapeLaTeXParagraphs(t *testing.T) {
	assert.Equal(t, "", EscapeLaTeXParagraphs("  \n "))
	assert.Equal(t, "one\\\\\ntwo", EscapeLaTeXParagraphs("one\ntwo"))
	assert.Equal(t, "first 100\\%\n\\par\nsecond", EscapeLaTeXParagraphs("first 100%\n\n  \nsecond"))
}

func TestLaTeXColor(t *testing.T) {
	assert.Equal(t, "0369A1", LaTeXColor("#0369a1", "000000"))
	assert.Equal(t, "0099AA", LaTeXColor("#09a", "000000"))
	assert.Equal(t, "000000", LaTeXColor("blue", "000000"))
	assert.Equal(t, "000000", LaTeXColor("#12345", "000000"))
}
