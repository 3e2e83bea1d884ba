package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/ngramlex/cli/internal/ngram"
)

func analyzeFixture(t *testing.T, freqs map[string]float64) *ngram.Result {
	t.Helper()
	res, err := ngram.Analyze(freqs)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	return res
}

func TestRenderTextBasic(t *testing.T) {
	res := analyzeFixture(t, map[string]float64{"cat": 10, "can": 5})

	var buf bytes.Buffer
	if err := Render(&buf, res, 10, FormatText); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"Total words processed: 2",
		"Total 1-grams counted: 4",
		"Top 10 1-grams:",
		"Total 2-grams counted: 3",
		"Total 3-grams counted: 2",
		"cat: 10 (66.6666",
		"Total weight of n-grams processed: 75",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}

	// Descending weight order within a length.
	if strings.Index(out, "ca: 15") > strings.Index(out, "at: 10") {
		t.Error("2-gram entries not in descending weight order")
	}
}

func TestRenderTextTopKLargerThanTable(t *testing.T) {
	// Only 2 distinct 3-grams exist; asking for 10 prints exactly those 2.
	res := analyzeFixture(t, map[string]float64{"cat": 10, "can": 5})

	var buf bytes.Buffer
	if err := Render(&buf, res, 10, FormatText); err != nil {
		t.Fatalf("Render: %v", err)
	}

	section := extractSection(buf.String(), "Top 10 3-grams:")
	lines := nonEmptyLines(section)
	if len(lines) != 2 {
		t.Errorf("3-gram section has %d entries, want 2:\n%s", len(lines), section)
	}
}

func TestRenderTextTopKLimits(t *testing.T) {
	res := analyzeFixture(t, map[string]float64{"abcde": 1})

	var buf bytes.Buffer
	if err := Render(&buf, res, 1, FormatText); err != nil {
		t.Fatalf("Render: %v", err)
	}
	section := extractSection(buf.String(), "Top 1 1-grams:")
	if got := len(nonEmptyLines(section)); got != 1 {
		t.Errorf("top-1 printed %d entries, want 1", got)
	}
}

func TestRenderTopKOutOfRange(t *testing.T) {
	res := analyzeFixture(t, map[string]float64{"cat": 1})
	for _, k := range []int{0, -1, 101, 1000} {
		err := Render(&bytes.Buffer{}, res, k, FormatText)
		if !errors.Is(err, ErrTopKRange) {
			t.Errorf("Render(topK=%d) error = %v, want ErrTopKRange", k, err)
		}
	}
}

func TestRenderTextZeroWeights(t *testing.T) {
	// All-zero weights leave a zero total alongside live entries; the
	// report shows 0% instead of faulting.
	res := analyzeFixture(t, map[string]float64{"ab": 0})

	var buf bytes.Buffer
	if err := Render(&buf, res, 5, FormatText); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(buf.String(), "(0%)") {
		t.Errorf("zero-total percentages should display 0%%:\n%s", buf.String())
	}
}

func TestRenderTextEmptyResult(t *testing.T) {
	res := analyzeFixture(t, nil)

	var buf bytes.Buffer
	if err := Render(&buf, res, 10, FormatText); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Total words processed: 0") {
		t.Errorf("missing zero word count:\n%s", out)
	}
	if strings.Contains(out, "counted:") {
		t.Errorf("empty result should have no per-length sections:\n%s", out)
	}
	if !strings.Contains(out, "Total weight of n-grams processed: 0") {
		t.Errorf("missing zero grand total:\n%s", out)
	}
}

func TestRenderTextSkipsEmptyLengths(t *testing.T) {
	// Words of lengths 1 and 3 leave length-2 populated too (substrings),
	// so force a gap by checking that no "0-grams" section ever appears.
	res := analyzeFixture(t, map[string]float64{"a": 1, "cat": 1})

	var buf bytes.Buffer
	if err := Render(&buf, res, 10, FormatText); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if strings.Contains(buf.String(), "0-grams") {
		t.Errorf("index 0 must be skipped silently:\n%s", buf.String())
	}
}

func TestRenderPercentagesSumTo100(t *testing.T) {
	res := analyzeFixture(t, map[string]float64{"boy": 1.5, "cow": 2.25, "quit": 0.75})

	for n := 1; n < len(res.Tables); n++ {
		if len(res.Tables[n]) == 0 {
			continue
		}
		var pctSum float64
		for _, w := range res.Tables[n] {
			pctSum += w / res.Totals[n] * 100
		}
		if math.Abs(pctSum-100) > 1e-9 {
			t.Errorf("length %d: percentages sum to %v, want 100", n, pctSum)
		}
	}
}

func TestRenderJSON(t *testing.T) {
	res := analyzeFixture(t, map[string]float64{"boy": 1})

	var buf bytes.Buffer
	if err := Render(&buf, res, 10, FormatJSON); err != nil {
		t.Fatalf("Render: %v", err)
	}

	var doc struct {
		Ngrams     []map[string]float64 `json:"ngrams"`
		Vowels     map[string]float64   `json:"vowels"`
		Consonants map[string]float64   `json:"consonants"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if len(doc.Ngrams) != 3 {
		t.Fatalf("ngrams length = %d, want 3", len(doc.Ngrams))
	}
	if doc.Ngrams[1]["Y"] != 1 || doc.Ngrams[2]["bY"] != 1 {
		t.Errorf("unexpected ngram tables: %v", doc.Ngrams)
	}
	if doc.Vowels["Y"] != 1 {
		t.Errorf("vowels = %v, want Y:1", doc.Vowels)
	}
	if doc.Consonants["b"] != 1 {
		t.Errorf("consonants = %v, want b:1", doc.Consonants)
	}
}

func TestRenderJSONEmpty(t *testing.T) {
	res := analyzeFixture(t, nil)

	var buf bytes.Buffer
	if err := Render(&buf, res, 10, FormatJSON); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := strings.TrimSpace(buf.String())
	var doc map[string]any
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	for _, key := range []string{"ngrams", "vowels", "consonants"} {
		if _, ok := doc[key]; !ok {
			t.Errorf("missing %q in empty JSON report", key)
		}
	}
}

// extractSection returns the lines between header and the next blank line.
func extractSection(out, header string) string {
	idx := strings.Index(out, header)
	if idx < 0 {
		return ""
	}
	rest := out[idx+len(header):]
	rest = strings.TrimPrefix(rest, "\n")
	if end := strings.Index(rest, "\n\n"); end >= 0 {
		rest = rest[:end]
	}
	return rest
}

func nonEmptyLines(s string) []string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
