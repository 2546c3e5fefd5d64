package sheet

import "github.com/vk/gridcalc/internal/coord"

// sparseStore materializes cells lazily in a map keyed by linear index.
// This is the required approach for large declared grids (up to ~18M
// addressable cells), where only the touched cells ever allocate.
type sparseStore struct {
	rows, cols int
	cells      map[int]*Cell
}

func newSparseStore(rows, cols int) *sparseStore {
	return &sparseStore{
		rows:  rows,
		cols:  cols,
		cells: make(map[int]*Cell),
	}
}

func (s *sparseStore) Dims() (int, int) {
	return s.rows, s.cols
}

func (s *sparseStore) index(ref coord.Ref) int {
	return ref.Row*s.cols + ref.Col
}

func (s *sparseStore) Cell(ref coord.Ref) (*Cell, bool) {
	c, ok := s.cells[s.index(ref)]
	return c, ok
}

func (s *sparseStore) Ensure(ref coord.Ref) *Cell {
	i := s.index(ref)
	if c, ok := s.cells[i]; ok {
		return c
	}
	c := &Cell{}
	s.cells[i] = c
	return c
}

func (s *sparseStore) Value(ref coord.Ref) Value {
	if c, ok := s.cells[s.index(ref)]; ok {
		return c.Value
	}
	return Value{}
}
