// Package engine owns the dependency graph of a formula-driven grid: edge
// maintenance, cycle detection and topological recomputation. SetFormula is
// the only mutating entry point; every call either commits with the whole
// affected closure recomputed, or leaves the sheet untouched.
//
// The engine assumes exclusive access to the sheet for the duration of one
// call. Callers multiplexing several writers must serialize them; there is
// no internal locking.
package engine

import (
	"context"

	"github.com/vk/gridcalc/internal/coord"
	"github.com/vk/gridcalc/internal/ctxlog"
	"github.com/vk/gridcalc/internal/eval"
	"github.com/vk/gridcalc/internal/formula"
	"github.com/vk/gridcalc/internal/rangeindex"
	"github.com/vk/gridcalc/internal/sheet"
)

// Engine orchestrates the coordinate codec, formula parser, range registry
// and evaluator over one sheet store.
type Engine struct {
	store    sheet.Store
	ranges   *rangeindex.Registry
	eval     *eval.Evaluator
	statuses map[coord.Ref]eval.Status
}

// New constructs an engine over a fresh sheet of the given dimensions,
// sleeping on the real clock for SLEEP formulas. Dimensions outside
// 1..999 rows or 1..18278 columns are a construction error.
func New(rows, cols int) (*Engine, error) {
	return NewWithSleeper(rows, cols, eval.ClockSleeper{})
}

// NewWithSleeper is New with an explicit delay policy.
func NewWithSleeper(rows, cols int, sleeper eval.Sleeper) (*Engine, error) {
	store, err := sheet.NewStore(rows, cols)
	if err != nil {
		return nil, err
	}
	return &Engine{
		store:    store,
		ranges:   rangeindex.New(),
		eval:     eval.New(store, sleeper),
		statuses: make(map[coord.Ref]eval.Status),
	}, nil
}

// Dims returns the sheet's fixed dimensions.
func (e *Engine) Dims() (rows, cols int) {
	return e.store.Dims()
}

// Value returns the current stored value at ref. Out-of-bounds or
// unwritten positions read as integer 0.
func (e *Engine) Value(ref coord.Ref) sheet.Value {
	rows, cols := e.store.Dims()
	if !sheet.InBounds(ref, rows, cols) {
		return sheet.Value{}
	}
	return e.store.Value(ref)
}

// FormulaText returns the canonical re-serialization of the cell's current
// operation shape. It is not guaranteed byte-identical to the text the
// formula was set from.
func (e *Engine) FormulaText(ref coord.Ref) string {
	rows, cols := e.store.Dims()
	if !sheet.InBounds(ref, rows, cols) {
		return ""
	}
	if cell, ok := e.store.Cell(ref); ok {
		return cell.Shape.Text()
	}
	return ""
}

// CellStatus returns the advisory status recorded by the most recent
// evaluation of ref, StatusOK if none.
func (e *Engine) CellStatus(ref coord.Ref) eval.Status {
	return e.statuses[ref]
}

// SetFormula parses text, installs the resulting operation shape at target
// and recomputes every transitively affected cell in dependency order. On
// success it returns the recomputed coordinates in that order (target
// first). On failure the sheet is unchanged: parse and bounds failures
// never mutate, cycle failures are rolled back before returning.
func (e *Engine) SetFormula(ctx context.Context, target coord.Ref, text string) ([]coord.Ref, error) {
	shape := formula.Parse(text)
	if shape.Kind == formula.KindInvalid {
		return nil, ErrUnparsableFormula
	}
	return e.apply(ctx, target, shape)
}

// Clear assigns the Empty operation to target through the same
// transactional path as SetFormula; dependents of the cell see value 0.
func (e *Engine) Clear(ctx context.Context, target coord.Ref) ([]coord.Ref, error) {
	return e.apply(ctx, target, formula.Shape{Kind: formula.KindEmpty})
}

func (e *Engine) apply(ctx context.Context, target coord.Ref, shape formula.Shape) ([]coord.Ref, error) {
	logger := ctxlog.FromContext(ctx)
	rows, cols := e.store.Dims()

	if !sheet.InBounds(target, rows, cols) {
		return nil, ErrReferenceOutOfBounds
	}
	for _, ref := range shape.Refs() {
		if !sheet.InBounds(ref, rows, cols) {
			return nil, ErrReferenceOutOfBounds
		}
	}
	if shape.Kind == formula.KindRangeAggregate {
		rect := rangeindex.Rect{Start: shape.RefA, End: shape.RefB}
		if !rect.WellFormed() {
			return nil, ErrReferenceOutOfBounds
		}
	}

	cell := e.store.Ensure(target)
	tx := begin(target, cell, e.ranges)
	tx.install(shape, cell, e.store, e.ranges)

	closure, seq := e.discoverClosure(target)
	order, ok := e.topoOrder(closure, seq, target)
	if !ok {
		tx.rollback(cell, e.store, e.ranges)
		logger.Debug("formula rejected, cycle detected", "cell", target.String())
		return nil, ErrCycleDetected
	}

	tx.commit(shape, e.store, e.ranges)
	e.recompute(ctx, order)
	logger.Debug("formula committed", "cell", target.String(), "recomputed", len(order))
	return order, nil
}

// discoverClosure walks forward from target over dependents edges and
// range containment, indexing every affected cell once. The returned map
// holds membership; seq is the visit order (target first).
func (e *Engine) discoverClosure(target coord.Ref) (map[coord.Ref]struct{}, []coord.Ref) {
	closure := map[coord.Ref]struct{}{target: {}}
	seq := []coord.Ref{target}

	for head := 0; head < len(seq); head++ {
		n := seq[head]
		visit := func(s coord.Ref) {
			if _, seen := closure[s]; !seen {
				closure[s] = struct{}{}
				seq = append(seq, s)
			}
		}
		if c, ok := e.store.Cell(n); ok {
			for d := range c.Dependents {
				visit(d)
			}
		}
		for _, owner := range e.ranges.Containing(n) {
			visit(owner)
		}
	}
	return closure, seq
}

// topoOrder runs a zero-in-degree worklist over the closure, counting only
// edges between closure members (single-cell operands plus range
// containment). The drain order is a valid topological order; failing to
// drain the whole closure, or a nonzero initial in-degree on the target,
// means a cycle.
func (e *Engine) topoOrder(closure map[coord.Ref]struct{}, seq []coord.Ref, target coord.Ref) ([]coord.Ref, bool) {
	indeg := make(map[coord.Ref]int, len(seq))
	edges := make(map[coord.Ref][]coord.Ref)

	for _, member := range seq {
		sh := e.shapeAt(member)
		for _, op := range sh.Operands() {
			if _, ok := closure[op]; ok {
				edges[op] = append(edges[op], member)
				indeg[member]++
			}
		}
		if sh.Kind == formula.KindRangeAggregate {
			rect := rangeindex.Rect{Start: sh.RefA, End: sh.RefB}
			for _, other := range seq {
				if rect.Contains(other) {
					edges[other] = append(edges[other], member)
					indeg[member]++
				}
			}
		}
	}

	if indeg[target] != 0 {
		return nil, false
	}

	var queue []coord.Ref
	for _, m := range seq {
		if indeg[m] == 0 {
			queue = append(queue, m)
		}
	}

	order := make([]coord.Ref, 0, len(seq))
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		order = append(order, n)
		for _, d := range edges[n] {
			indeg[d]--
			if indeg[d] == 0 {
				queue = append(queue, d)
			}
		}
	}

	if len(order) != len(seq) {
		return nil, false
	}
	return order, true
}

// recompute evaluates every closure member strictly in the proven order,
// writing each result into the sheet as it is produced so later cells see
// up-to-date operands. Soft evaluation outcomes are recorded as advisory
// statuses and never abort the pass.
func (e *Engine) recompute(ctx context.Context, order []coord.Ref) {
	logger := ctxlog.FromContext(ctx)
	for _, ref := range order {
		cell := e.store.Ensure(ref)
		if cell.Shape.Kind == formula.KindEmpty {
			cell.Value = sheet.IntValue(0)
			delete(e.statuses, ref)
			continue
		}
		v, st := e.eval.Evaluate(cell.Shape)
		cell.Value = v
		if st == eval.StatusOK {
			delete(e.statuses, ref)
		} else {
			e.statuses[ref] = st
			logger.Warn("cell evaluated with soft error", "cell", ref.String(), "status", st.String())
		}
	}
}

// shapeAt returns the operation shape at ref; unwritten cells are Empty.
func (e *Engine) shapeAt(ref coord.Ref) formula.Shape {
	if c, ok := e.store.Cell(ref); ok {
		return c.Shape
	}
	return formula.Shape{Kind: formula.KindEmpty}
}
