package domain

import "errors"

// Domain errors represent assessment failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates a quantity is negative or non-finite, or a
	// categorical value is outside its allowed set. Always attributed to one farm.
	ErrInvalidInput = errors.New("invalid input")

	// ErrExtraction indicates no numeric total could be found in a source result
	// by any fallback strategy.
	ErrExtraction = errors.New("no numeric total in source result")

	// ErrNoContributions indicates the aggregator was called with nothing to aggregate.
	// This is a caller error, never a per-farm data condition.
	ErrNoContributions = errors.New("no contributions to aggregate")

	// ErrSkipped indicates a farm record is structurally invalid and was not computed.
	ErrSkipped = errors.New("record skipped")

	// ErrUnsupportedType indicates an unknown source model, deriver or file format.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrUnknownSource indicates a boundary names a source that does not exist.
	ErrUnknownSource = errors.New("unknown source")
)
