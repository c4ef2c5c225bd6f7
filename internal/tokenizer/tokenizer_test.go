package tokenizer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"mixed punctuation", "Hello, World! It's ICS-101.", []string{"hello", "world", "ics101"}},
		{"apostrophe merges", "Don't panic", []string{"panic"}},
		{"hyphen merges", "well-known state-of-art", []string{"wellknown", "stateofart"}},
		{"non ascii separates", "café naïve", []string{"caf", "na", "ve"}},
		{"digits kept", "CS 161 and 2024", []string{"cs", "161", "2024"}},
		{"only separators", " ,.;!? ", []string{}},
		{"only stopwords", "the and of", []string{}},
		{"empty", "", []string{}},
		{"leading hyphen", "-abc- --", []string{"abc"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Tokenize(tt.in))
		})
	}
}

func TestTokenizeIdempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"Hello, World! It's ICS-101.",
		"<p>Informatics &amp; Computer Science — UC Irvine</p>",
		"The quick brown fox jumps over the lazy dog's 3 well-fed puppies.",
	}
	for _, in := range inputs {
		first := Tokenize(in)
		second := Tokenize(strings.Join(first, " "))
		assert.Equal(t, first, second, in)
	}
}

func TestTokenizeNeverEmpty(t *testing.T) {
	t.Parallel()

	for _, tok := range Tokenize("a -- ' b ''' c-d ...") {
		assert.NotEmpty(t, tok)
	}
}
