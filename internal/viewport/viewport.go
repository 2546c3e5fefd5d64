// Package viewport tracks the visible window over a larger grid. The window
// has a fixed size and scrolls in whole-window steps, clamped so it never
// leaves the grid.
package viewport

import "github.com/vk/gridcalc/internal/coord"

// Size is the edge length of the square window, in cells.
const Size = 10

// Viewport is the current window position over a rows x cols grid.
type Viewport struct {
	rows, cols int
	startRow   int
	startCol   int
}

// New positions a window at the grid origin.
func New(rows, cols int) *Viewport {
	return &Viewport{rows: rows, cols: cols}
}

// Start returns the zero-based coordinate of the window's top-left cell.
func (v *Viewport) Start() coord.Ref {
	return coord.Ref{Row: v.startRow, Col: v.startCol}
}

// Height returns the number of visible rows, at most Size.
func (v *Viewport) Height() int {
	return min(Size, v.rows-v.startRow)
}

// Width returns the number of visible columns, at most Size.
func (v *Viewport) Width() int {
	return min(Size, v.cols-v.startCol)
}

// Up scrolls one window toward row 1.
func (v *Viewport) Up() {
	v.startRow = clamp(v.startRow-Size, v.maxRow())
}

// Down scrolls one window toward the last row.
func (v *Viewport) Down() {
	v.startRow = clamp(v.startRow+Size, v.maxRow())
}

// Left scrolls one window toward column A.
func (v *Viewport) Left() {
	v.startCol = clamp(v.startCol-Size, v.maxCol())
}

// Right scrolls one window toward the last column.
func (v *Viewport) Right() {
	v.startCol = clamp(v.startCol+Size, v.maxCol())
}

// ScrollTo places the window's top-left corner at ref, clamped so the
// window stays fully inside the grid where it can.
func (v *Viewport) ScrollTo(ref coord.Ref) {
	v.startRow = clamp(ref.Row, v.maxRow())
	v.startCol = clamp(ref.Col, v.maxCol())
}

func (v *Viewport) maxRow() int {
	return max(0, v.rows-Size)
}

func (v *Viewport) maxCol() int {
	return max(0, v.cols-Size)
}

func clamp(n, hi int) int {
	if n < 0 {
		return 0
	}
	if n > hi {
		return hi
	}
	return n
}
