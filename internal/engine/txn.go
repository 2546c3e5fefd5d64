package engine

import (
	"github.com/vk/gridcalc/internal/coord"
	"github.com/vk/gridcalc/internal/formula"
	"github.com/vk/gridcalc/internal/rangeindex"
	"github.com/vk/gridcalc/internal/sheet"
)

// txn captures the pre-image of exactly the mutated cell and its touched
// edges, so a cycle failure can be undone without ad hoc field copying.
// The snapshot records the target's prior shape, value and range-registry
// footprint; the install step then records which forward edges and which
// registry rectangle were actually added speculatively.
type txn struct {
	target     coord.Ref
	priorShape formula.Shape
	priorValue sheet.Value
	priorRects []rangeindex.Rect

	// addedEdges lists operand cells whose dependents set gained the
	// target during the speculative install. Pre-existing edges (shared
	// between old and new shape) are deliberately excluded so rollback
	// never removes an edge it did not create.
	addedEdges []coord.Ref

	// addedRect is set when the speculative install registered a new
	// rectangle for the target.
	addedRect  rangeindex.Rect
	hasNewRect bool
}

// begin snapshots the target cell before any mutation.
func begin(target coord.Ref, cell *sheet.Cell, ranges *rangeindex.Registry) *txn {
	return &txn{
		target:     target,
		priorShape: cell.Shape,
		priorValue: cell.Value,
		priorRects: ranges.RectsOf(target),
	}
}

// install writes the new shape into the target cell and adds its forward
// edges and registry entry on top of the existing ones. Old edges stay in
// place until commit so rollback is a pure subtraction.
func (t *txn) install(shape formula.Shape, cell *sheet.Cell, store sheet.Store, ranges *rangeindex.Registry) {
	cell.Shape = shape

	for _, op := range shape.Operands() {
		if store.Ensure(op).AddDependent(t.target) {
			t.addedEdges = append(t.addedEdges, op)
		}
	}

	if shape.Kind == formula.KindRangeAggregate {
		t.addedRect = rangeindex.Rect{Start: shape.RefA, End: shape.RefB}
		ranges.Register(t.target, t.addedRect)
		t.hasNewRect = true
	}
}

// rollback removes everything install added and restores the snapshot.
// No other cell's value or shape was touched, so this returns the sheet to
// its exact pre-call state.
func (t *txn) rollback(cell *sheet.Cell, store sheet.Store, ranges *rangeindex.Registry) {
	for _, op := range t.addedEdges {
		if opCell, ok := store.Cell(op); ok {
			opCell.RemoveDependent(t.target)
		}
	}
	if t.hasNewRect {
		ranges.RemoveRect(t.target, t.addedRect)
	}
	cell.Shape = t.priorShape
	cell.Value = t.priorValue
}

// commit removes the edges and rectangles the prior shape implied, keeping
// any that the new shape re-established.
func (t *txn) commit(newShape formula.Shape, store sheet.Store, ranges *rangeindex.Registry) {
	kept := make(map[coord.Ref]struct{})
	for _, op := range newShape.Operands() {
		kept[op] = struct{}{}
	}
	for _, op := range t.priorShape.Operands() {
		if _, ok := kept[op]; ok {
			continue
		}
		if opCell, exists := store.Cell(op); exists {
			opCell.RemoveDependent(t.target)
		}
	}
	for _, r := range t.priorRects {
		ranges.RemoveRect(t.target, r)
	}
}
