package ngram

// Synthetic symbols stand in for collapsed two-letter sequences. Uppercase
// keeps them disjoint from the raw lowercase alphabet.
const (
	SymbolQU byte = 'Q' // "qu"
	SymbolY  byte = 'Y' // "y" after a triggering vowel or any consonant
	SymbolW  byte = 'W' // "w" after a triggering vowel
)

// Vowel and consonant symbol alphabets, in order of frequency in English.
// Both include the synthetic symbols; plain 'q' stays a consonant because an
// unmerged 'q' (not followed by 'u') survives normalization as itself.
const (
	Vowels     = "eoaiuYW"
	Consonants = "tnhsrldymwgcfbpkvjxzqQ"
)

var (
	vowelSet     [256]bool
	consonantSet [256]bool
)

func init() {
	for i := 0; i < len(Vowels); i++ {
		vowelSet[Vowels[i]] = true
	}
	for i := 0; i < len(Consonants); i++ {
		consonantSet[Consonants[i]] = true
	}
}

// IsVowelSymbol reports whether c belongs to the vowel alphabet.
func IsVowelSymbol(c byte) bool { return vowelSet[c] }

// IsConsonantSymbol reports whether c belongs to the consonant alphabet.
func IsConsonantSymbol(c byte) bool { return consonantSet[c] }

// allVowels reports whether every symbol of gram is in the vowel alphabet.
func allVowels(gram string) bool {
	for i := 0; i < len(gram); i++ {
		if !vowelSet[gram[i]] {
			return false
		}
	}
	return true
}

// allConsonants reports whether every symbol of gram is in the consonant
// alphabet.
func allConsonants(gram string) bool {
	for i := 0; i < len(gram); i++ {
		if !consonantSet[gram[i]] {
			return false
		}
	}
	return true
}
