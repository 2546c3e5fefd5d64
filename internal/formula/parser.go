package formula

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/vk/gridcalc/internal/coord"
)

// Grammar tokens. Integers allow an optional leading '-' only; references
// are uppercase letters followed by digits, case-sensitive.
var (
	intRe    = regexp.MustCompile(`^-?\d+$`)
	refRe    = regexp.MustCompile(`^[A-Z]+\d+$`)
	binaryRe = regexp.MustCompile(`^(-?\d+|[A-Z]+\d+)([+\-*/])(-?\d+|[A-Z]+\d+)$`)
	rangeRe  = regexp.MustCompile(`^([A-Z]+)\(([A-Z]+\d+):([A-Z]+\d+)\)$`)
)

// Parse classifies trimmed formula text into a Shape. It is a pure function
// and never fails: anything outside the grammar yields KindInvalid, so
// callers detect malformed input by checking the shape, not an error.
//
// Classification priority, first match wins:
//  1. SLEEP(<int>)
//  2. SLEEP(<reference>)
//  3. lone integer
//  4. lone reference
//  5. <int><op><int>
//  6. <int><op><reference>
//  7. <reference><op><int>
//  8. <reference><op><reference>
//  9. <FUNC>(<reference>:<reference>)
func Parse(text string) Shape {
	text = strings.TrimSpace(text)

	if inner, ok := strings.CutPrefix(text, "SLEEP("); ok {
		if inner, ok := strings.CutSuffix(inner, ")"); ok {
			if intRe.MatchString(inner) {
				n, _ := strconv.Atoi(inner)
				return Shape{Kind: KindSleepConst, A: n}
			}
			if refRe.MatchString(inner) {
				return Shape{Kind: KindSleepRef, RefA: parseRef(inner)}
			}
		}
		// SLEEP over anything else falls through: "SLEEP(A1:B2)" still
		// matches the range form below, with name validity deferred to
		// evaluation.
	}

	if intRe.MatchString(text) {
		n, _ := strconv.Atoi(text)
		return Shape{Kind: KindConstant, A: n}
	}

	if refRe.MatchString(text) {
		return Shape{Kind: KindCellReference, RefA: parseRef(text)}
	}

	if m := binaryRe.FindStringSubmatch(text); m != nil {
		left, op, right := m[1], m[2][0], m[3]
		leftIsRef := refRe.MatchString(left)
		rightIsRef := refRe.MatchString(right)
		switch {
		case !leftIsRef && !rightIsRef:
			a, _ := strconv.Atoi(left)
			b, _ := strconv.Atoi(right)
			return Shape{Kind: KindConstOpConst, A: a, Op: op, B: b}
		case !leftIsRef && rightIsRef:
			a, _ := strconv.Atoi(left)
			return Shape{Kind: KindConstOpRef, A: a, Op: op, RefB: parseRef(right)}
		case leftIsRef && !rightIsRef:
			b, _ := strconv.Atoi(right)
			return Shape{Kind: KindRefOpConst, RefA: parseRef(left), Op: op, B: b}
		default:
			return Shape{Kind: KindRefOpRef, RefA: parseRef(left), Op: op, RefB: parseRef(right)}
		}
	}

	if m := rangeRe.FindStringSubmatch(text); m != nil {
		return Shape{
			Kind: KindRangeAggregate,
			Fn:   m[1],
			RefA: parseRef(m[2]),
			RefB: parseRef(m[3]),
		}
	}

	return Shape{Kind: KindInvalid}
}

// parseRef decodes a token the grammar already matched as a reference. The
// only way decoding can still fail is a zero row ("A0"); that is mapped to
// an impossible coordinate so the engine's bounds check rejects it, matching
// the invalid-range (not unparsable-formula) failure class.
func parseRef(s string) coord.Ref {
	r, err := coord.Parse(s)
	if err != nil {
		return coord.Ref{Row: -1, Col: -1}
	}
	return r
}
