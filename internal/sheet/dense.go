package sheet

import "github.com/vk/gridcalc/internal/coord"

// denseStore keeps every cell in one row-major slice. Suitable for small
// declared grids where eager allocation is cheap and lookups should be a
// single index computation.
type denseStore struct {
	rows, cols int
	cells      []Cell
	written    []bool
}

func newDenseStore(rows, cols int) *denseStore {
	return &denseStore{
		rows:    rows,
		cols:    cols,
		cells:   make([]Cell, rows*cols),
		written: make([]bool, rows*cols),
	}
}

func (d *denseStore) Dims() (int, int) {
	return d.rows, d.cols
}

func (d *denseStore) index(ref coord.Ref) int {
	return ref.Row*d.cols + ref.Col
}

func (d *denseStore) Cell(ref coord.Ref) (*Cell, bool) {
	i := d.index(ref)
	if !d.written[i] {
		return nil, false
	}
	return &d.cells[i], true
}

func (d *denseStore) Ensure(ref coord.Ref) *Cell {
	i := d.index(ref)
	d.written[i] = true
	return &d.cells[i]
}

func (d *denseStore) Value(ref coord.Ref) Value {
	return d.cells[d.index(ref)].Value
}
