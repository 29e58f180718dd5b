package qcolor

import "github.com/pkg/errors"

/*
Sentinel errors for the coloring pipeline. Callers branch on them with
errors.Is; every error returned by this package wraps exactly one of them
(or a context error).
*/
var (
	// ErrInvalidWidth reports an encoding parameter inconsistency: a color
	// outside [0, 2^bitsPerColor), a non-positive width, or a register that
	// no longer fits a basis index.
	ErrInvalidWidth = errors.New("invalid color width")

	// ErrInconsistentVertexCount reports a vertex count that does not match
	// the edge list (max vertex index + 1) or the encoding.
	ErrInconsistentVertexCount = errors.New("inconsistent vertex count")

	// ErrInvalidGraph reports self-loops, negative vertex ids or duplicate edges.
	ErrInvalidGraph = errors.New("invalid graph")

	// ErrResourceExceeded reports a simulated state larger than the configured ceiling.
	ErrResourceExceeded = errors.New("resource ceiling exceeded")

	// ErrNoColoringFound is the terminal outcome once the attempt budget is spent.
	ErrNoColoringFound = errors.New("no coloring found")

	// ErrMeasured reports a second measurement of a collapsed state vector.
	ErrMeasured = errors.New("state vector already measured")

	// ErrZeroState reports a state vector with no probability mass to sample.
	ErrZeroState = errors.New("zero state vector")
)
