// Package ngram accumulates frequency-weighted n-gram counts over a weighted
// lexicon. Words are normalized (special two-letter sequences collapse into
// synthetic symbols) before their substrings are counted, and the finished
// tables are partitioned into pure-vowel and pure-consonant subsets.
package ngram

import (
	"errors"
	"fmt"
	"sort"
)

// ErrInvalidWord is returned by Add for a word that is empty or contains
// characters outside lowercase ASCII letters. The importer validates words
// before they reach the analyzer; this is a fail-fast guard on that
// invariant.
var ErrInvalidWord = errors.New("invalid word")

// Table maps an n-gram's symbol sequence to its accumulated weight.
type Table map[string]float64

// Result is the finished output of an analysis pass. Tables and Totals are
// indexed by n-gram length; index 0 is unused. The tables are read-only once
// handed to a report builder.
type Result struct {
	Tables []Table
	Totals []float64

	Vowels         Table
	Consonants     Table
	VowelTotal     float64
	ConsonantTotal float64

	WordCount int
}

// GrandTotal returns the total weight of all n-grams across every length.
func (r *Result) GrandTotal() float64 {
	var sum float64
	for _, t := range r.Totals {
		sum += t
	}
	return sum
}

// Analyzer accumulates weighted words into per-length n-gram tables. The
// zero value is not usable; call NewAnalyzer.
type Analyzer struct {
	tables []Table
	totals []float64
	words  int
}

// NewAnalyzer returns an empty Analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Words returns the number of words accumulated so far.
func (a *Analyzer) Words() int { return a.words }

// Add normalizes word and accumulates weight into the table entry of every
// contiguous substring of the normalized symbol sequence, for every length
// from 1 to the full sequence. The per-length running total receives the
// same additions, so it always equals the sum of that length's entries.
func (a *Analyzer) Add(word string, weight float64) error {
	if err := checkWord(word); err != nil {
		return err
	}

	norm := Normalize(word)
	l := len(norm)

	// Grow the per-length tables to accommodate a word of this length.
	for len(a.tables) < l+1 {
		a.tables = append(a.tables, Table{})
		a.totals = append(a.totals, 0)
	}

	for n := 1; n <= l; n++ {
		for i := 0; i+n <= l; i++ {
			a.tables[n][norm[i:i+n]] += weight
			a.totals[n] += weight
		}
	}

	a.words++
	return nil
}

// Result classifies the accumulated n-grams and hands the tables off. The
// Analyzer must not be used after Result is called.
func (a *Analyzer) Result() *Result {
	res := &Result{
		Tables:     a.tables,
		Totals:     a.totals,
		Vowels:     Table{},
		Consonants: Table{},
		WordCount:  a.words,
	}
	a.tables, a.totals = nil, nil

	for _, table := range res.Tables {
		for gram, weight := range table {
			switch {
			case allVowels(gram):
				res.Vowels[gram] = weight
			case allConsonants(gram):
				res.Consonants[gram] = weight
			}
		}
	}

	// Totals come from the final table contents. Each key lives in exactly
	// one length table (its own length indexes it), so assignment above
	// never overwrites and the sums count every entry once.
	for _, w := range res.Vowels {
		res.VowelTotal += w
	}
	for _, w := range res.Consonants {
		res.ConsonantTotal += w
	}

	return res
}

// Analyze runs a full pass over a word-frequency map and returns the
// finished result. Words are visited in sorted order, so repeated runs over
// the same map produce bit-identical results; a differently ordered source
// may differ by floating-point rounding.
func Analyze(freqs map[string]float64) (*Result, error) {
	words := make([]string, 0, len(freqs))
	for w := range freqs {
		words = append(words, w)
	}
	sort.Strings(words)

	a := NewAnalyzer()
	for _, w := range words {
		if err := a.Add(w, freqs[w]); err != nil {
			return nil, err
		}
	}
	return a.Result(), nil
}

func checkWord(word string) error {
	if word == "" {
		return fmt.Errorf("%w: empty word", ErrInvalidWord)
	}
	for i := 0; i < len(word); i++ {
		if word[i] < 'a' || word[i] > 'z' {
			return fmt.Errorf("%w: %q", ErrInvalidWord, word)
		}
	}
	return nil
}
