// Package subtlex imports SUBTLEX-style word frequency CSV files, validating
// the header against a fixed typed schema and parsing each row into typed
// column values.
package subtlex

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
)

// DefaultColumn is the weight column most analyses want: word frequency per
// million words.
const DefaultColumn = "SUBTLWF"

// WordColumn names the column holding the word itself.
const WordColumn = "Word"

var (
	// ErrSchema covers header problems: wrong column count, missing,
	// duplicated, or unknown columns.
	ErrSchema = errors.New("invalid SUBTLEX header")
	// ErrRow covers malformed data rows: wrong width, unparsable cells,
	// invalid or duplicate words.
	ErrRow = errors.New("invalid SUBTLEX row")
	// ErrColumn is returned when a requested column does not exist or
	// cannot be read as the requested type.
	ErrColumn = errors.New("invalid column")
)

type columnType int

const (
	colInt columnType = iota
	colFloat
	colString
)

// columnTypes is the fixed SUBTLEX schema. Every column must be present in
// an imported file, and no others.
var columnTypes = map[string]columnType{
	"Word":                 colString,
	"FREQcount":            colInt,
	"CDcount":              colInt,
	"FREQlow":              colInt,
	"Cdlow":                colInt,
	"SUBTLWF":              colFloat,
	"Lg10WF":               colFloat,
	"SUBTLCD":              colFloat,
	"Lg10CD":               colFloat,
	"Dom_PoS_SUBTLEX":      colString,
	"Freq_dom_PoS_SUBTLEX": colInt,
	"Percentage_dom_PoS":   colFloat,
	"All_PoS_SUBTLEX":      colString,
	"All_freqs_SUBTLEX":    colString,
	"Zipf-value":           colFloat,
}

// NumericColumns returns the names of all int- and float-typed columns,
// sorted for stable presentation.
func NumericColumns() []string {
	var names []string
	for name, typ := range columnTypes {
		if typ != colString {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// value holds one parsed cell. Exactly one field is meaningful, selected by
// the column's type.
type value struct {
	i int
	f float64
	s string
}

// Importer holds a fully parsed SUBTLEX dataset with typed columns and
// validated, deduplicated words.
type Importer struct {
	columns map[string]int
	rows    [][]value
	wordIdx int
}

// Load reads and parses the CSV file at path. The header must match the
// SUBTLEX schema exactly; every row must parse per its column types; words
// are lowercased and must be unique, non-empty, and purely alphabetic.
func Load(path string) (*Importer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open SUBTLEX file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // row widths are checked explicitly

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse SUBTLEX file: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: file is empty", ErrSchema)
	}

	header := records[0]
	columns, err := validateHeader(header)
	if err != nil {
		return nil, err
	}

	im := &Importer{
		columns: columns,
		rows:    make([][]value, 0, len(records)-1),
		wordIdx: columns[WordColumn],
	}

	seen := make(map[string]struct{}, len(records)-1)
	for lineNo, record := range records[1:] {
		if len(record) != len(header) {
			return nil, fmt.Errorf("%w: line %d has %d columns, want %d",
				ErrRow, lineNo+2, len(record), len(header))
		}

		word := strings.ToLower(record[im.wordIdx])
		if !validWord(word) {
			return nil, fmt.Errorf("%w: invalid word %q", ErrRow, word)
		}
		if _, dup := seen[word]; dup {
			return nil, fmt.Errorf("%w: duplicate word %q", ErrRow, word)
		}
		seen[word] = struct{}{}
		record[im.wordIdx] = word

		row := make([]value, len(record))
		for i, cell := range record {
			v, err := parseValue(cell, header[i])
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrRow, lineNo+2, err)
			}
			row[i] = v
		}
		im.rows = append(im.rows, row)
	}

	return im, nil
}

// Len returns the number of imported words.
func (im *Importer) Len() int { return len(im.rows) }

// Frequencies returns word -> weight for a numeric column, with int columns
// converted to float64. String-typed or unknown columns are an error.
func (im *Importer) Frequencies(column string) (map[string]float64, error) {
	idx, ok := im.columns[column]
	if !ok {
		return nil, fmt.Errorf("%w: unknown column %q", ErrColumn, column)
	}

	result := make(map[string]float64, len(im.rows))
	switch columnTypes[column] {
	case colInt:
		for _, row := range im.rows {
			result[row[im.wordIdx].s] = float64(row[idx].i)
		}
	case colFloat:
		for _, row := range im.rows {
			result[row[im.wordIdx].s] = row[idx].f
		}
	default:
		return nil, fmt.Errorf("%w: column %q is not numeric", ErrColumn, column)
	}
	return result, nil
}

// Strings returns word -> value for a string-typed column.
func (im *Importer) Strings(column string) (map[string]string, error) {
	idx, ok := im.columns[column]
	if !ok {
		return nil, fmt.Errorf("%w: unknown column %q", ErrColumn, column)
	}
	if columnTypes[column] != colString {
		return nil, fmt.Errorf("%w: column %q is not string-typed", ErrColumn, column)
	}

	result := make(map[string]string, len(im.rows))
	for _, row := range im.rows {
		result[row[im.wordIdx].s] = row[idx].s
	}
	return result, nil
}

func validateHeader(header []string) (map[string]int, error) {
	if len(header) != len(columnTypes) {
		return nil, fmt.Errorf("%w: %d columns, want %d", ErrSchema, len(header), len(columnTypes))
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		if _, known := columnTypes[name]; !known {
			return nil, fmt.Errorf("%w: unknown column %q", ErrSchema, name)
		}
		if _, dup := columns[name]; dup {
			return nil, fmt.Errorf("%w: duplicate column %q", ErrSchema, name)
		}
		columns[name] = i
	}

	for name := range columnTypes {
		if _, ok := columns[name]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", ErrSchema, name)
		}
	}

	return columns, nil
}

func parseValue(cell, column string) (value, error) {
	switch columnTypes[column] {
	case colInt:
		n, err := strconv.Atoi(cell)
		if err != nil {
			return value{}, fmt.Errorf("parse %q for column %q: %v", cell, column, err)
		}
		return value{i: n}, nil
	case colFloat:
		f, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return value{}, fmt.Errorf("parse %q for column %q: %v", cell, column, err)
		}
		return value{f: f}, nil
	default:
		return value{s: cell}, nil
	}
}

func validWord(word string) bool {
	if word == "" {
		return false
	}
	for i := 0; i < len(word); i++ {
		if word[i] < 'a' || word[i] > 'z' {
			return false
		}
	}
	return true
}
