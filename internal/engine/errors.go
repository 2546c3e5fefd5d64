package engine

import "errors"

// Commit-level failures. When SetFormula returns one of these, the sheet is
// exactly as it was before the call: bounds and parse failures never mutate
// anything, and cycle failures are fully rolled back before returning.
//
// Soft per-cell outcomes (division by zero, unknown operator or function)
// are not errors; they surface in the affected cell's value and advisory
// status instead.
var (
	// ErrUnparsableFormula: the text matches no grammar shape.
	ErrUnparsableFormula = errors.New("unrecognized formula")

	// ErrReferenceOutOfBounds: a named coordinate exceeds the sheet's
	// dimensions, or a range's start corner lies after its end.
	ErrReferenceOutOfBounds = errors.New("reference out of bounds")

	// ErrCycleDetected: installing the formula would make the dependency
	// graph cyclic.
	ErrCycleDetected = errors.New("cycle detected")
)

// StatusText maps an engine error to the caller-facing status strings
// ("ok", "Invalid range", "unrecognized cmd", "cycle detected").
func StatusText(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrReferenceOutOfBounds):
		return "Invalid range"
	case errors.Is(err, ErrUnparsableFormula):
		return "unrecognized cmd"
	case errors.Is(err, ErrCycleDetected):
		return "cycle detected"
	}
	return err.Error()
}
