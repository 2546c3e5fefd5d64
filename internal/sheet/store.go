package sheet

import (
	"fmt"

	"github.com/vk/gridcalc/internal/coord"
)

// Addressable size limits. Dimensions outside these bounds are a
// construction-time error, not a recoverable engine error.
const (
	MaxRows = 999
	MaxCols = 18278
)

// denseLimit is the largest cell count for which the dense slice-backed
// store is used; larger declared grids get the sparse map-backed store so
// that an 18M-cell sheet does not allocate every cell eagerly.
const denseLimit = 1 << 16

// Store is the storage abstraction behind the engine. The engine never
// assumes which implementation it is talking to.
//
// Cell returns a pointer into the store without materializing anything; the
// boolean is false when the position has never been written. Ensure
// materializes an Empty placeholder on first access so its dependents set
// has somewhere to live.
type Store interface {
	Dims() (rows, cols int)
	Cell(ref coord.Ref) (*Cell, bool)
	Ensure(ref coord.Ref) *Cell
	Value(ref coord.Ref) Value
}

// NewStore validates the declared dimensions and picks the implementation:
// dense for small grids, sparse for anything larger.
func NewStore(rows, cols int) (Store, error) {
	if rows < 1 || rows > MaxRows {
		return nil, fmt.Errorf("rows must be between 1 and %d, got %d", MaxRows, rows)
	}
	if cols < 1 || cols > MaxCols {
		return nil, fmt.Errorf("cols must be between 1 and %d, got %d", MaxCols, cols)
	}
	if rows*cols <= denseLimit {
		return newDenseStore(rows, cols), nil
	}
	return newSparseStore(rows, cols), nil
}

// InBounds reports whether ref lies within the given dimensions.
func InBounds(ref coord.Ref, rows, cols int) bool {
	return ref.Row >= 0 && ref.Row < rows && ref.Col >= 0 && ref.Col < cols
}
