// Package report renders an analysis result either as a human-readable
// top-K summary or as a structured JSON document.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/ngramlex/cli/internal/ngram"
)

// Format selects the output representation.
type Format int

const (
	// FormatText is the human-readable top-K report.
	FormatText Format = iota
	// FormatJSON emits all tables verbatim, untruncated, without
	// percentages.
	FormatJSON
)

// TopK bounds accepted by Render.
const (
	MinTopK = 1
	MaxTopK = 100
)

// ErrTopKRange is returned when topK falls outside [MinTopK, MaxTopK].
// Callers that want clamping must clamp before calling; the builder does
// not clamp silently.
var ErrTopKRange = errors.New("topK out of range")

// jsonReport mirrors the structured output shape: the per-length tables as
// an array indexed by n-gram length (index 0 is an empty object), plus the
// derived vowel and consonant tables.
type jsonReport struct {
	Ngrams     []ngram.Table `json:"ngrams"`
	Vowels     ngram.Table   `json:"vowels"`
	Consonants ngram.Table   `json:"consonants"`
}

// Render writes the report for res to w.
func Render(w io.Writer, res *ngram.Result, topK int, format Format) error {
	if topK < MinTopK || topK > MaxTopK {
		return fmt.Errorf("%w: %d not in [%d, %d]", ErrTopKRange, topK, MinTopK, MaxTopK)
	}

	switch format {
	case FormatJSON:
		return renderJSON(w, res)
	case FormatText:
		return renderText(w, res, topK)
	default:
		return fmt.Errorf("unknown format %d", format)
	}
}

func renderJSON(w io.Writer, res *ngram.Result) error {
	doc := jsonReport{
		Ngrams:     res.Tables,
		Vowels:     res.Vowels,
		Consonants: res.Consonants,
	}
	if doc.Ngrams == nil {
		doc.Ngrams = []ngram.Table{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

type entry struct {
	gram   string
	weight float64
}

func renderText(w io.Writer, res *ngram.Result, topK int) error {
	if _, err := fmt.Fprintf(w, "Total words processed: %d\n", res.WordCount); err != nil {
		return err
	}

	for n := 0; n < len(res.Tables); n++ {
		table := res.Tables[n]
		if len(table) == 0 {
			continue
		}

		entries := sortedEntries(table)

		fmt.Fprintf(w, "Total %d-grams counted: %d\n", n, len(entries))
		fmt.Fprintf(w, "Top %d %d-grams:\n", topK, n)

		total := res.Totals[n]
		for i := 0; i < topK && i < len(entries); i++ {
			// A zero total with live entries would divide by zero; show 0%.
			var pct float64
			if total != 0 {
				pct = entries[i].weight / total * 100
			}
			fmt.Fprintf(w, "%s: %g (%g%%)\n", entries[i].gram, entries[i].weight, pct)
		}
		fmt.Fprintln(w)
	}

	_, err := fmt.Fprintf(w, "Total weight of n-grams processed: %g\n", res.GrandTotal())
	return err
}

// sortedEntries orders a table by descending weight. Equal weights fall
// back to lexicographic order so output is stable across runs.
func sortedEntries(table ngram.Table) []entry {
	entries := make([]entry, 0, len(table))
	for gram, weight := range table {
		entries = append(entries, entry{gram, weight})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].weight != entries[j].weight {
			return entries[i].weight > entries[j].weight
		}
		return entries[i].gram < entries[j].gram
	})
	return entries
}
