// Package sheet holds the grid's data model: cell values, cells with their
// operation shapes and dependent sets, and a storage interface with dense
// and sparse implementations selected by declared dimensions.
package sheet

import "strconv"

// ErrText is the sentinel shown for a cell whose evaluation failed softly
// (division by zero, or a propagated error from an operand).
const ErrText = "ERR"

// ValueKind tags the two value variants a cell can hold.
type ValueKind uint8

const (
	// ValueInt is an integer value; the zero Value is the integer 0.
	ValueInt ValueKind = iota
	// ValueText is a text value, used only for error sentinels.
	ValueText
)

// Value is the tagged union stored in a cell. Ordinary contents are
// integers; text appears only as an error sentinel.
type Value struct {
	Kind ValueKind
	Int  int
	Text string
}

// IntValue returns an integer Value.
func IntValue(n int) Value {
	return Value{Kind: ValueInt, Int: n}
}

// TextValue returns a text Value.
func TextValue(s string) Value {
	return Value{Kind: ValueText, Text: s}
}

// ErrValue returns the soft-error sentinel value.
func ErrValue() Value {
	return TextValue(ErrText)
}

// IsText reports whether the value is a text sentinel.
func (v Value) IsText() bool {
	return v.Kind == ValueText
}

// String renders the value for display and export.
func (v Value) String() string {
	if v.Kind == ValueText {
		return v.Text
	}
	return strconv.Itoa(v.Int)
}
