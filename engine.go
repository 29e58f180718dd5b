package qcolor

import (
	"context"
	"math/rand/v2"

	"github.com/pkg/errors"
)

// EngineState tracks where an amplification run is.
type EngineState int

const (
	Uninitialized EngineState = iota
	Prepared
	Iterating
	Measured
	Done
	Exhausted
)

func (s EngineState) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Prepared:
		return "prepared"
	case Iterating:
		return "iterating"
	case Measured:
		return "measured"
	case Done:
		return "done"
	case Exhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

/*
Engine drives Grover amplification over one exclusively owned state vector:
prepare, R rounds of oracle + diffusion, then a destructive measurement.
Passes run strictly one after another; only the work inside a pass fans out.
Context cancellation is honoured between passes, never inside one.
*/
type Engine struct {
	oracle    *ColoringOracle
	pool      *Pool
	governor  *ResourceGovernor
	prep      StatePrep
	state     EngineState
	iteration int
	vec       *StateVector
}

func NewEngine(oracle *ColoringOracle, pool *Pool, governor *ResourceGovernor, prep StatePrep) *Engine {
	if governor == nil {
		governor = NewResourceGovernor(NewConfig().ResourceCeilingBits)
	}
	if prep == nil {
		prep = UniformPrep
	}

	return &Engine{
		oracle:   oracle,
		pool:     pool,
		governor: governor,
		prep:     prep,
		state:    Uninitialized,
	}
}

func (e *Engine) State() EngineState {
	return e.state
}

// Iteration is the number of completed oracle + diffusion rounds.
func (e *Engine) Iteration() int {
	return e.iteration
}

// Vector exposes the live amplitudes; nil before Prepare and after Measure.
func (e *Engine) Vector() *StateVector {
	return e.vec
}

// Prepare allocates a fresh vector in the start state. The governor is
// consulted before any allocation.
func (e *Engine) Prepare(ctx context.Context) error {
	e.discard()

	qubits := e.oracle.Encoding().Qubits()
	if err := e.governor.Admit(qubits); err != nil {
		e.state = Uninitialized
		return err
	}

	e.vec = NewStateVector(qubits)
	e.iteration = 0

	if err := e.prep(ctx, e.vec, e.pool); err != nil {
		e.discard()
		e.state = Uninitialized
		return errors.Wrap(err, "prepare state")
	}

	e.state = Prepared
	return nil
}

// Step applies one oracle pass followed by one diffusion pass.
func (e *Engine) Step(ctx context.Context) error {
	if e.state != Prepared && e.state != Iterating {
		return errors.Errorf("cannot iterate an engine in state %s", e.state)
	}

	if err := e.oracle.MarkValid(ctx, e.vec); err != nil {
		return err
	}
	if err := Diffuse(ctx, e.vec, e.pool); err != nil {
		return err
	}

	e.iteration++
	e.state = Iterating
	return nil
}

func (e *Engine) Amplify(ctx context.Context, rounds int) error {
	for k := 0; k < rounds; k++ {
		if err := e.Step(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Measure samples one basis index and destroys the vector.
func (e *Engine) Measure(rng *rand.Rand) (uint64, error) {
	if e.state != Prepared && e.state != Iterating {
		return 0, errors.Errorf("cannot measure an engine in state %s", e.state)
	}

	index, err := e.vec.Measure(rng)
	e.discard()
	e.state = Measured
	return index, err
}

// Run is Prepare, Amplify and Measure in one call.
func (e *Engine) Run(ctx context.Context, rounds int, rng *rand.Rand) (uint64, error) {
	if err := e.Prepare(ctx); err != nil {
		return 0, err
	}
	if err := e.Amplify(ctx, rounds); err != nil {
		e.discard()
		e.state = Uninitialized
		return 0, err
	}
	return e.Measure(rng)
}

// Accept records that the last measurement verified.
func (e *Engine) Accept() {
	e.state = Done
}

// Exhaust records that the attempt budget ran out.
func (e *Engine) Exhaust() {
	e.discard()
	e.state = Exhausted
}

func (e *Engine) discard() {
	if e.vec == nil {
		return
	}
	e.vec = nil
	e.governor.Release(e.oracle.Encoding().Qubits())
}
