// Package reduce: the Reducer capability and the sentinel error set.
// All engine entry points return these sentinels and tests match them via
// errors.Is; allocation failures are wrapped with %w at the outer boundary.
//
// Errors:
//
//	ErrDeviceNil         - nil *device.Device passed to Run/RunWith.
//	ErrReducerNil        - nil Reducer passed to Run/RunWith.
//	ErrSinkNil           - nil finalize callback passed to RunWith.
//	ErrNegativeWork      - negative work count.
//	ErrBadValueSize      - non-positive aggregate value size.
//	ErrValueTooLarge     - not even one aggregate slot fits in fast memory.
//	ErrValueNotFixedSize - aggregate type has no fixed binary size.
//	ErrOptionViolation   - invalid Option supplied to Run/RunWith.
package reduce

import "errors"

// Sentinel errors for the reduction engine.
var (
	// ErrDeviceNil is returned when a nil device pointer is passed.
	ErrDeviceNil = errors.New("reduce: device is nil")

	// ErrReducerNil is returned when a nil Reducer is passed.
	ErrReducerNil = errors.New("reduce: reducer is nil")

	// ErrSinkNil is returned when a nil finalize callback is passed to RunWith.
	ErrSinkNil = errors.New("reduce: finalize callback is nil")

	// ErrNegativeWork is returned for a negative work count.
	ErrNegativeWork = errors.New("reduce: negative work count")

	// ErrBadValueSize is returned by LayoutFor for a non-positive value size.
	ErrBadValueSize = errors.New("reduce: non-positive value size")

	// ErrValueTooLarge is returned before any launch when the aggregate value
	// is so large that no lane's fast-memory slot can hold it.
	ErrValueTooLarge = errors.New("reduce: aggregate value exceeds fast-memory budget")

	// ErrValueNotFixedSize is returned before any launch when the aggregate
	// type has no fixed encoding/binary size and the Reducer supplies no
	// Codec of its own. Note that plain int/uint are not fixed-size; use
	// sized types such as int64.
	ErrValueNotFixedSize = errors.New("reduce: aggregate value is not fixed-size")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("reduce: invalid option supplied")
)

// Reducer is the user capability driving one reduction over values of type V:
// Identity produces the operator's neutral element, Apply folds one work item
// into a running aggregate, and Combine merges two aggregates.
//
// Combine must be associative and commutative; the engine chooses freely in
// which order contributions meet. Apply is invoked exactly once per index in
// [0, workCount), each index by exactly one lane.
//
// A Reducer that also implements Codec[V] controls its own value⇄word
// serialization; otherwise the default fixed-size binary codec is used.
type Reducer[V any] interface {
	// Identity returns the neutral aggregate value.
	Identity() V

	// Apply folds work item index into acc and returns the new aggregate.
	Apply(index int, acc V) V

	// Combine merges two aggregates. Associative and commutative by contract.
	Combine(a, b V) V
}
