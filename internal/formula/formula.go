// Package formula classifies raw formula text into a closed set of
// operation shapes. Classification is purely syntactic: reference bounds
// and aggregate function names are validated later, by the engine and the
// evaluator respectively.
package formula

import (
	"fmt"
	"strconv"

	"github.com/vk/gridcalc/internal/coord"
)

// Kind enumerates every operation shape a cell can hold. KindEmpty is the
// zero value so an unwritten cell behaves as Empty.
type Kind uint8

const (
	KindEmpty Kind = iota
	KindConstant
	KindCellReference
	KindConstOpConst
	KindConstOpRef
	KindRefOpConst
	KindRefOpRef
	KindRangeAggregate
	KindSleepConst
	KindSleepRef
	KindInvalid
)

var kindNames = map[Kind]string{
	KindEmpty:          "Empty",
	KindConstant:       "Constant",
	KindCellReference:  "CellReference",
	KindConstOpConst:   "ConstOpConst",
	KindConstOpRef:     "ConstOpRef",
	KindRefOpConst:     "RefOpConst",
	KindRefOpRef:       "RefOpRef",
	KindRangeAggregate: "RangeAggregate",
	KindSleepConst:     "SleepConst",
	KindSleepRef:       "SleepRef",
	KindInvalid:        "Invalid",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Shape is the parsed form of a formula. Operands are stored explicitly and
// unambiguously; canonical text is always reconstructed from these fields,
// never from a cell's current value.
//
// Field usage by kind:
//
//	Constant:       A
//	CellReference:  RefA
//	ConstOpConst:   A, Op, B
//	ConstOpRef:     A, Op, RefB
//	RefOpConst:     RefA, Op, B
//	RefOpRef:       RefA, Op, RefB
//	RangeAggregate: Fn, RefA (start), RefB (end)
//	SleepConst:     A
//	SleepRef:       RefA
type Shape struct {
	Kind Kind
	A    int       // left constant operand
	B    int       // right constant operand
	RefA coord.Ref // left (or only) reference; range start
	RefB coord.Ref // right reference; range end
	Op   byte      // one of '+', '-', '*', '/'
	Fn   string    // aggregate function name, uppercase letters
}

// Refs returns every coordinate the shape names: single-cell operands, or
// both corners of a range. Used for bounds checking.
func (s Shape) Refs() []coord.Ref {
	switch s.Kind {
	case KindCellReference, KindSleepRef:
		return []coord.Ref{s.RefA}
	case KindConstOpRef:
		return []coord.Ref{s.RefB}
	case KindRefOpConst:
		return []coord.Ref{s.RefA}
	case KindRefOpRef, KindRangeAggregate:
		return []coord.Ref{s.RefA, s.RefB}
	}
	return nil
}

// Operands returns the single-cell operand coordinates that require a
// forward dependency edge. Range corners are excluded: range reads are
// tracked by the range registry, not by per-cell edges.
func (s Shape) Operands() []coord.Ref {
	if s.Kind == KindRangeAggregate {
		return nil
	}
	return s.Refs()
}

// Text reconstructs the canonical formula text for the shape. Empty and
// Invalid shapes serialize to "".
func (s Shape) Text() string {
	switch s.Kind {
	case KindConstant:
		return strconv.Itoa(s.A)
	case KindCellReference:
		return s.RefA.String()
	case KindConstOpConst:
		return strconv.Itoa(s.A) + string(s.Op) + strconv.Itoa(s.B)
	case KindConstOpRef:
		return strconv.Itoa(s.A) + string(s.Op) + s.RefB.String()
	case KindRefOpConst:
		return s.RefA.String() + string(s.Op) + strconv.Itoa(s.B)
	case KindRefOpRef:
		return s.RefA.String() + string(s.Op) + s.RefB.String()
	case KindRangeAggregate:
		return s.Fn + "(" + s.RefA.String() + ":" + s.RefB.String() + ")"
	case KindSleepConst:
		return "SLEEP(" + strconv.Itoa(s.A) + ")"
	case KindSleepRef:
		return "SLEEP(" + s.RefA.String() + ")"
	}
	return ""
}
