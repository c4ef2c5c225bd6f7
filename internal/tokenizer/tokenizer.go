// internal/tokenizer/tokenizer.go
package tokenizer

// Tokenize turns page text into lowercase ASCII-alphanumeric words.
//
// Apostrophes and hyphens are consumed without ending the current run, so
// "don't" becomes "dont" and "ICS-101" becomes "ics101". Any other byte,
// including every byte of a non-ASCII rune, ends the run. Stopwords are
// dropped from the result.
func Tokenize(text string) []string {
	tokens := make([]string, 0, len(text)/6)
	run := make([]byte, 0, 32)

	flush := func() {
		if len(run) == 0 {
			return
		}
		w := string(run)
		run = run[:0]
		if !IsStopword(w) {
			tokens = append(tokens, w)
		}
	}

	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case c >= 'A' && c <= 'Z':
			run = append(run, c+('a'-'A'))
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9':
			run = append(run, c)
		case c == '\'' || c == '-':
			// apostrophes and hyphens join the surrounding run
		default:
			flush()
		}
	}
	flush()
	return tokens
}
