// Package otp resolves matrix-card OTP challenges.
//
// A matrix card is a grid of characters addressed by row letter and 1-based
// column number. The server challenges with coordinates such as "A3" and the
// client answers with the characters stored in those cells.
package otp

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"webtrade_go/internal/domain"
)

// MatrixTable is an immutable OTP matrix card. It is safe for concurrent use.
type MatrixTable struct {
	rows map[byte][]string
}

// NewMatrixTable validates and copies rows into a MatrixTable.
// Row keys must be a single uppercase letter, rows must be non-empty and every
// cell must hold exactly one character.
func NewMatrixTable(rows map[string][]string) (*MatrixTable, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("matrix table has no rows")
	}

	t := &MatrixTable{rows: make(map[byte][]string, len(rows))}
	for key, cells := range rows {
		if len(key) != 1 || !isUpperLetter(key[0]) {
			return nil, fmt.Errorf("invalid matrix row key %q", key)
		}
		if len(cells) == 0 {
			return nil, fmt.Errorf("matrix row %s is empty", key)
		}
		row := make([]string, len(cells))
		for i, c := range cells {
			if utf8.RuneCountInString(c) != 1 {
				return nil, fmt.Errorf("matrix cell %s%d must be one character, got %q", key, i+1, c)
			}
			row[i] = c
		}
		t.rows[key[0]] = row
	}
	return t, nil
}

// Rows returns the row keys in alphabetical order.
func (t *MatrixTable) Rows() []string {
	keys := make([]string, 0, len(t.rows))
	for k := range t.rows {
		keys = append(keys, string(k))
	}
	sort.Strings(keys)
	return keys
}

// Width returns the number of columns in row, or 0 if the row does not exist.
func (t *MatrixTable) Width(row string) int {
	if len(row) != 1 {
		return 0
	}
	return len(t.rows[row[0]])
}

// Cell returns the character at row/col (col is 1-based).
func (t *MatrixTable) Cell(row string, col int) (string, bool) {
	if len(row) != 1 {
		return "", false
	}
	cells, ok := t.rows[row[0]]
	if !ok || col < 1 || col > len(cells) {
		return "", false
	}
	return cells[col-1], true
}

// ValidateCoordinate reports whether text is a coordinate addressing a cell of
// the table, ignoring surrounding whitespace.
func (t *MatrixTable) ValidateCoordinate(text string) bool {
	_, ok := t.lookup(text)
	return ok
}

// Resolve maps each coordinate to its cell, preserving input order.
// It fails on the first invalid coordinate and returns no partial result.
func (t *MatrixTable) Resolve(coords []string) ([]string, error) {
	out := make([]string, len(coords))
	for i, c := range coords {
		v, ok := t.lookup(c)
		if !ok {
			return nil, &domain.InvalidCoordinateError{Coordinate: c, Index: i}
		}
		out[i] = v
	}
	return out, nil
}

func (t *MatrixTable) lookup(text string) (string, bool) {
	s := strings.TrimSpace(text)
	if len(s) < 2 || !isUpperLetter(s[0]) {
		return "", false
	}
	digits := s[1:]
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return "", false
		}
	}
	col, err := strconv.Atoi(digits)
	if err != nil {
		return "", false
	}
	return t.Cell(s[:1], col)
}

func isUpperLetter(b byte) bool {
	return b >= 'A' && b <= 'Z'
}
