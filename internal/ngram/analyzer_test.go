package ngram

import (
	"errors"
	"math"
	"testing"
)

const tolerance = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= tolerance
}

func TestAnalyzeCatCan(t *testing.T) {
	res, err := Analyze(map[string]float64{"cat": 10, "can": 5})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if res.WordCount != 2 {
		t.Errorf("WordCount = %d, want 2", res.WordCount)
	}

	wantTables := []Table{
		1: {"c": 15, "a": 15, "t": 10, "n": 5},
		2: {"ca": 15, "at": 10, "an": 5},
		3: {"cat": 10, "can": 5},
	}
	wantTotals := []float64{1: 30, 2: 30, 3: 15}

	if len(res.Tables) != 4 {
		t.Fatalf("len(Tables) = %d, want 4", len(res.Tables))
	}
	for n := 1; n < len(wantTables); n++ {
		got := res.Tables[n]
		want := wantTables[n]
		if len(got) != len(want) {
			t.Errorf("length %d: %d entries, want %d", n, len(got), len(want))
		}
		for gram, w := range want {
			if !almostEqual(got[gram], w) {
				t.Errorf("Tables[%d][%q] = %v, want %v", n, gram, got[gram], w)
			}
		}
		if !almostEqual(res.Totals[n], wantTotals[n]) {
			t.Errorf("Totals[%d] = %v, want %v", n, res.Totals[n], wantTotals[n])
		}
	}

	wantVowels := Table{"a": 15}
	wantConsonants := Table{"c": 15, "t": 10, "n": 5}
	assertTable(t, "Vowels", res.Vowels, wantVowels)
	assertTable(t, "Consonants", res.Consonants, wantConsonants)
	if !almostEqual(res.VowelTotal, 15) {
		t.Errorf("VowelTotal = %v, want 15", res.VowelTotal)
	}
	if !almostEqual(res.ConsonantTotal, 30) {
		t.Errorf("ConsonantTotal = %v, want 30", res.ConsonantTotal)
	}
	if !almostEqual(res.GrandTotal(), 75) {
		t.Errorf("GrandTotal = %v, want 75", res.GrandTotal())
	}
}

func TestAnalyzeMergedWord(t *testing.T) {
	// "boy" normalizes to bY, so the tables are built over two symbols.
	res, err := Analyze(map[string]float64{"boy": 1})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if len(res.Tables) != 3 {
		t.Fatalf("len(Tables) = %d, want 3", len(res.Tables))
	}
	assertTable(t, "Tables[1]", res.Tables[1], Table{"b": 1, "Y": 1})
	assertTable(t, "Tables[2]", res.Tables[2], Table{"bY": 1})
	if !almostEqual(res.Totals[1], 2) || !almostEqual(res.Totals[2], 1) {
		t.Errorf("Totals = %v, want [0 2 1]", res.Totals)
	}

	assertTable(t, "Vowels", res.Vowels, Table{"Y": 1})
	assertTable(t, "Consonants", res.Consonants, Table{"b": 1})
}

func TestTotalsMatchTableSums(t *testing.T) {
	res, err := Analyze(map[string]float64{
		"the": 6023.0, "quick": 2.1, "brown": 1.4, "fox": 18.9,
		"jumps": 3.3, "over": 120.5, "lazy": 4.7, "dog": 75.2,
	})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	for n := 1; n < len(res.Tables); n++ {
		var sum float64
		for _, w := range res.Tables[n] {
			sum += w
		}
		if !almostEqual(sum, res.Totals[n]) {
			t.Errorf("length %d: entry sum %v != total %v", n, sum, res.Totals[n])
		}
	}
}

func TestVowelConsonantDisjoint(t *testing.T) {
	res, err := Analyze(map[string]float64{
		"aeiou": 1, "rhythm": 2, "queue": 3, "byway": 4, "awe": 5,
	})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	for gram := range res.Vowels {
		if _, ok := res.Consonants[gram]; ok {
			t.Errorf("%q in both vowel and consonant tables", gram)
		}
	}
}

func TestAnalyzeEmptySource(t *testing.T) {
	res, err := Analyze(nil)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if res.WordCount != 0 || len(res.Tables) != 0 || res.GrandTotal() != 0 {
		t.Errorf("empty source: WordCount=%d Tables=%d GrandTotal=%v, want all zero",
			res.WordCount, len(res.Tables), res.GrandTotal())
	}
	if len(res.Vowels) != 0 || len(res.Consonants) != 0 {
		t.Error("empty source should produce empty derived tables")
	}
}

func TestAddRejectsInvalidWords(t *testing.T) {
	for _, word := range []string{"", "Boy", "don't", "naïve", "two words", "x1"} {
		a := NewAnalyzer()
		err := a.Add(word, 1)
		if !errors.Is(err, ErrInvalidWord) {
			t.Errorf("Add(%q) error = %v, want ErrInvalidWord", word, err)
		}
	}
}

func TestAnalyzerHandoff(t *testing.T) {
	a := NewAnalyzer()
	if err := a.Add("cat", 1); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if a.Words() != 1 {
		t.Errorf("Words = %d, want 1", a.Words())
	}
	res := a.Result()
	if res.WordCount != 1 {
		t.Errorf("WordCount = %d, want 1", res.WordCount)
	}
}

func assertTable(t *testing.T, name string, got, want Table) {
	t.Helper()
	if len(got) != len(want) {
		t.Errorf("%s: %d entries, want %d (got %v)", name, len(got), len(want), got)
	}
	for gram, w := range want {
		if !almostEqual(got[gram], w) {
			t.Errorf("%s[%q] = %v, want %v", name, gram, got[gram], w)
		}
	}
}
