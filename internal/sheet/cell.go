package sheet

import (
	"github.com/vk/gridcalc/internal/coord"
	"github.com/vk/gridcalc/internal/formula"
)

// Cell is one addressable grid position. The zero value is an Empty cell
// with integer value 0 and no dependents, which is exactly how an unwritten
// position must behave.
//
// Dependents holds forward "who reads me" edges only: the coordinates of
// cells whose shape names this cell as a direct single-cell operand. Range
// reads are tracked by the range registry, never here.
type Cell struct {
	Value      Value
	Shape      formula.Shape
	Dependents map[coord.Ref]struct{}
}

// AddDependent records that reader's shape names this cell as an operand.
// It reports whether the edge was newly inserted.
func (c *Cell) AddDependent(reader coord.Ref) bool {
	if _, ok := c.Dependents[reader]; ok {
		return false
	}
	if c.Dependents == nil {
		c.Dependents = make(map[coord.Ref]struct{})
	}
	c.Dependents[reader] = struct{}{}
	return true
}

// RemoveDependent drops the edge to reader, if present.
func (c *Cell) RemoveDependent(reader coord.Ref) {
	delete(c.Dependents, reader)
}

// HasDependent reports whether reader currently has an edge from this cell.
func (c *Cell) HasDependent(reader coord.Ref) bool {
	_, ok := c.Dependents[reader]
	return ok
}
