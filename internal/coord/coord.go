// Package coord converts textual cell references (e.g. "A1", "AB12") to and
// from zero-based (row, column) pairs. The letter prefix is bijective
// base-26 (A=1 .. Z=26, AA=27), the digit suffix is a 1-based row number.
package coord

import (
	"fmt"
	"strconv"
)

// Ref identifies a single cell by zero-based row and column indices.
type Ref struct {
	Row int
	Col int
}

// Parse decodes a textual reference into a Ref. The input must be one or
// more uppercase ASCII letters immediately followed by one or more digits.
// A zero column (empty letter part) or a row literal of "0" is invalid.
func Parse(s string) (Ref, error) {
	split := len(s)
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			split = i
			break
		}
	}

	col := 0
	for i := 0; i < split; i++ {
		b := s[i]
		if b < 'A' || b > 'Z' {
			return Ref{}, fmt.Errorf("invalid reference %q: letter part must be uppercase A-Z", s)
		}
		col = col*26 + int(b-'A'+1)
	}

	row, err := strconv.Atoi(s[split:])
	if err != nil {
		return Ref{}, fmt.Errorf("invalid reference %q: missing or malformed row number", s)
	}

	if row < 1 || col < 1 {
		return Ref{}, fmt.Errorf("invalid reference %q: row and column must be at least 1", s)
	}

	return Ref{Row: row - 1, Col: col - 1}, nil
}

// String serializes the Ref back into its canonical textual form.
func (r Ref) String() string {
	return ColumnLabel(r.Col) + strconv.Itoa(r.Row+1)
}

// ColumnLabel converts a zero-based column index into its bijective
// base-26 letter label (0 -> "A", 25 -> "Z", 26 -> "AA").
func ColumnLabel(col int) string {
	var buf [8]byte
	i := len(buf)
	n := col + 1
	for n > 0 {
		i--
		rem := (n - 1) % 26
		buf[i] = byte('A' + rem)
		n = (n - 1) / 26
	}
	return string(buf[i:])
}
