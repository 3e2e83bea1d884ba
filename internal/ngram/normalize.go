package ngram

// rawConsonant marks the 21 raw lowercase consonant letters used as merge
// triggers by the y-rule. This is the letter set, not the symbol alphabet:
// synthetic symbols never occur in raw input.
var rawConsonant [256]bool

func init() {
	for _, c := range []byte("tnhsrldymwgcfbpkvjxzq") {
		rawConsonant[c] = true
	}
}

// Normalize collapses special two-letter sequences of a raw lowercase word
// into single synthetic symbols:
//
//	"qu"          -> SymbolQU
//	{a,e,o,u}+"y" -> SymbolY
//	consonant+"y" -> SymbolY
//	{a,e,o}+"w"   -> SymbolW
//
// The scan is a single left-to-right pass with one byte of lookahead and no
// backtracking. At most one rule fires per position; a firing rule absorbs
// both the current character and the lookahead into the synthetic symbol.
// qu-merging takes priority over the y/w rules. The output is never longer
// than the input and the same input always produces the same output.
func Normalize(word string) string {
	out := make([]byte, 0, len(word))

	i := 0
	for i < len(word) {
		c0 := word[i]
		i++

		// The next character decides whether a merge happens, so the
		// current one is emitted first and overwritten when a rule fires.
		out = append(out, c0)

		if i >= len(word) {
			break
		}
		c1 := word[i]

		switch {
		case c0 == 'q' && c1 == 'u':
			out[len(out)-1] = SymbolQU
			i++
		case c1 == 'y' && (c0 == 'a' || c0 == 'e' || c0 == 'o' || c0 == 'u' || rawConsonant[c0]):
			out[len(out)-1] = SymbolY
			i++
		case c1 == 'w' && (c0 == 'a' || c0 == 'e' || c0 == 'o'):
			out[len(out)-1] = SymbolW
			i++
		}
	}

	return string(out)
}
