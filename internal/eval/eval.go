// Package eval computes a cell's value from its operation shape and the
// current values of its operands. Evaluation is pure given the grid state;
// the engine guarantees operands are already up to date before a cell is
// evaluated.
//
// Arithmetic uses Go's native int with two's-complement wrapping on
// overflow. This is a deliberate, documented choice over saturation or
// rejection.
package eval

import (
	"math"

	"github.com/vk/gridcalc/internal/coord"
	"github.com/vk/gridcalc/internal/formula"
	"github.com/vk/gridcalc/internal/rangeindex"
	"github.com/vk/gridcalc/internal/sheet"
)

// Status is the advisory outcome of evaluating one cell. Every non-OK
// status is soft: it never aborts the surrounding recomputation pass.
type Status uint8

const (
	StatusOK Status = iota
	// StatusDivisionByZero: the cell's value becomes the ERR sentinel.
	StatusDivisionByZero
	// StatusPropagatedError: an operand already held the ERR sentinel.
	StatusPropagatedError
	// StatusUnknownOperator: the operator was not one of + - * /; the
	// cell's value becomes 0.
	StatusUnknownOperator
	// StatusUnknownFunction: the aggregate name was not one of
	// MAX/MIN/AVG/SUM/STDEV; the cell's value becomes 0.
	StatusUnknownFunction
)

var statusNames = map[Status]string{
	StatusOK:              "ok",
	StatusDivisionByZero:  "division by zero",
	StatusPropagatedError: "propagated error",
	StatusUnknownOperator: "unknown operator",
	StatusUnknownFunction: "unknown function",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown status"
}

// Grid is the read surface the evaluator needs. sheet.Store satisfies it.
type Grid interface {
	Value(ref coord.Ref) sheet.Value
}

// Evaluator resolves shapes against a grid, delaying via the configured
// Sleeper for SLEEP shapes.
type Evaluator struct {
	grid    Grid
	sleeper Sleeper
}

// New returns an evaluator reading from grid and sleeping via sleeper.
func New(grid Grid, sleeper Sleeper) *Evaluator {
	return &Evaluator{grid: grid, sleeper: sleeper}
}

// Evaluate computes the value for a shape. Soft failures surface in the
// returned value (the ERR sentinel, or 0) and the advisory status.
func (e *Evaluator) Evaluate(s formula.Shape) (sheet.Value, Status) {
	switch s.Kind {
	case formula.KindConstant:
		return sheet.IntValue(s.A), StatusOK

	case formula.KindCellReference:
		v := e.grid.Value(s.RefA)
		if v.IsText() {
			return sheet.ErrValue(), StatusPropagatedError
		}
		return v, StatusOK

	case formula.KindConstOpConst:
		return applyOp(s.A, s.Op, s.B)

	case formula.KindConstOpRef:
		b := e.grid.Value(s.RefB)
		if b.IsText() {
			return sheet.ErrValue(), StatusPropagatedError
		}
		return applyOp(s.A, s.Op, b.Int)

	case formula.KindRefOpConst:
		a := e.grid.Value(s.RefA)
		if a.IsText() {
			return sheet.ErrValue(), StatusPropagatedError
		}
		return applyOp(a.Int, s.Op, s.B)

	case formula.KindRefOpRef:
		a := e.grid.Value(s.RefA)
		b := e.grid.Value(s.RefB)
		if a.IsText() || b.IsText() {
			return sheet.ErrValue(), StatusPropagatedError
		}
		return applyOp(a.Int, s.Op, b.Int)

	case formula.KindRangeAggregate:
		return e.aggregate(s)

	case formula.KindSleepConst:
		e.sleeper.Sleep(s.A)
		return sheet.IntValue(s.A), StatusOK

	case formula.KindSleepRef:
		v := e.grid.Value(s.RefA)
		if v.IsText() {
			return sheet.ErrValue(), StatusPropagatedError
		}
		e.sleeper.Sleep(v.Int)
		return v, StatusOK
	}

	// Empty is excluded from recomputation and Invalid is never committed;
	// both resolve to the default value if asked.
	return sheet.IntValue(0), StatusOK
}

// applyOp applies one binary integer operator. Division truncates toward
// zero; a zero divisor is a soft error yielding the ERR sentinel.
func applyOp(a int, op byte, b int) (sheet.Value, Status) {
	switch op {
	case '+':
		return sheet.IntValue(a + b), StatusOK
	case '-':
		return sheet.IntValue(a - b), StatusOK
	case '*':
		return sheet.IntValue(a * b), StatusOK
	case '/':
		if b == 0 {
			return sheet.ErrValue(), StatusDivisionByZero
		}
		return sheet.IntValue(a / b), StatusOK
	}
	return sheet.IntValue(0), StatusUnknownOperator
}

// aggregate applies MAX/MIN/SUM/AVG/STDEV over the inclusive rectangle.
// AVG truncates by cell count; STDEV is the population standard deviation
// rounded to the nearest integer.
func (e *Evaluator) aggregate(s formula.Shape) (sheet.Value, Status) {
	switch s.Fn {
	case "MAX", "MIN", "SUM", "AVG", "STDEV":
	default:
		return sheet.IntValue(0), StatusUnknownFunction
	}

	rect := rangeindex.Rect{Start: s.RefA, End: s.RefB}
	area := (rect.End.Row - rect.Start.Row + 1) * (rect.End.Col - rect.Start.Col + 1)

	maxV := math.MinInt
	minV := math.MaxInt
	sum := 0
	for row := rect.Start.Row; row <= rect.End.Row; row++ {
		for col := rect.Start.Col; col <= rect.End.Col; col++ {
			v := e.grid.Value(coord.Ref{Row: row, Col: col})
			if v.IsText() {
				return sheet.ErrValue(), StatusPropagatedError
			}
			sum += v.Int
			if v.Int > maxV {
				maxV = v.Int
			}
			if v.Int < minV {
				minV = v.Int
			}
		}
	}

	switch s.Fn {
	case "MAX":
		return sheet.IntValue(maxV), StatusOK
	case "MIN":
		return sheet.IntValue(minV), StatusOK
	case "SUM":
		return sheet.IntValue(sum), StatusOK
	case "AVG":
		return sheet.IntValue(sum / area), StatusOK
	}

	// STDEV: second pass over squared deviations from the mean.
	mean := float64(sum) / float64(area)
	variance := 0.0
	for row := rect.Start.Row; row <= rect.End.Row; row++ {
		for col := rect.Start.Col; col <= rect.End.Col; col++ {
			v := e.grid.Value(coord.Ref{Row: row, Col: col})
			d := float64(v.Int) - mean
			variance += d * d
		}
	}
	return sheet.IntValue(int(math.Round(math.Sqrt(variance / float64(area))))), StatusOK
}
