package engine

import "errors"

// Sentinel errors backing the taxonomy: callers can test the concrete
// failure with errors.Is, while the wrapping errors.E call (see count.go)
// attaches call-site context.
var (
	// ErrInvalidInterval is returned when an input collection violates its
	// preconditions: a non-dense id, or lower > upper.
	ErrInvalidInterval = errors.New("engine: invalid interval")
	// ErrAllocation is returned (wrapped) by RandomIntervals when the
	// requested N exceeds its size limit. Count does not return it.
	ErrAllocation = errors.New("engine: allocation failure")
	// ErrOverflow is returned when the total pair count would not fit in
	// the accumulator. In practice unreachable with a 64-bit accumulator
	// and 32-bit-bounded per-interval counts, but kept as a guard per the
	// error taxonomy.
	ErrOverflow = errors.New("engine: pair count overflow")
)
