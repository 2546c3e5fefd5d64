// Package rangeindex tracks which aggregate cells read which rectangular
// ranges. Recording one backward edge per cell of a million-cell range is
// infeasible, so membership is tested by coordinate arithmetic against the
// registered rectangles instead.
package rangeindex

import "github.com/vk/gridcalc/internal/coord"

// Rect is an inclusive rectangle between two corners.
type Rect struct {
	Start coord.Ref
	End   coord.Ref
}

// Contains reports whether ref lies inside the rectangle.
func (r Rect) Contains(ref coord.Ref) bool {
	return ref.Row >= r.Start.Row && ref.Row <= r.End.Row &&
		ref.Col >= r.Start.Col && ref.Col <= r.End.Col
}

// WellFormed reports whether the start corner is at or before the end
// corner on both axes.
func (r Rect) WellFormed() bool {
	return r.Start.Row <= r.End.Row && r.Start.Col <= r.End.Col
}

// Registry maps each aggregate cell to the rectangles it currently reads.
// A cell may briefly own more than one rectangle while an edit is
// speculatively installed; committed state holds at most one per cell.
//
// Containment queries scan all registered owners linearly, which is fine
// for modest counts of aggregate formulas.
type Registry struct {
	rects map[coord.Ref][]Rect
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{rects: make(map[coord.Ref][]Rect)}
}

// Register records that owner reads rect.
func (g *Registry) Register(owner coord.Ref, rect Rect) {
	g.rects[owner] = append(g.rects[owner], rect)
}

// Unregister drops every rectangle owned by owner.
func (g *Registry) Unregister(owner coord.Ref) {
	delete(g.rects, owner)
}

// RemoveRect drops the first registered rectangle of owner equal to rect.
func (g *Registry) RemoveRect(owner coord.Ref, rect Rect) {
	rects := g.rects[owner]
	for i, r := range rects {
		if r == rect {
			rects = append(rects[:i], rects[i+1:]...)
			break
		}
	}
	if len(rects) == 0 {
		delete(g.rects, owner)
	} else {
		g.rects[owner] = rects
	}
}

// RectsOf returns a copy of the rectangles currently owned by owner.
func (g *Registry) RectsOf(owner coord.Ref) []Rect {
	rects := g.rects[owner]
	if len(rects) == 0 {
		return nil
	}
	out := make([]Rect, len(rects))
	copy(out, rects)
	return out
}

// Containing returns every owner with at least one rectangle containing
// ref. Each owner appears at most once.
func (g *Registry) Containing(ref coord.Ref) []coord.Ref {
	var owners []coord.Ref
	for owner, rects := range g.rects {
		for _, r := range rects {
			if r.Contains(ref) {
				owners = append(owners, owner)
				break
			}
		}
	}
	return owners
}
