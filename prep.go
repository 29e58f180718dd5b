package qcolor

import (
	"context"
	"math"

	"github.com/pkg/errors"
)

// StatePrep puts a freshly allocated |0...0> vector into the search's start state.
type StatePrep func(ctx context.Context, sv *StateVector, pool *Pool) error

// UniformPrep writes the uniform superposition 1/sqrt(N) directly.
func UniformPrep(ctx context.Context, sv *StateVector, pool *Pool) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	amp := complex(1/math.Sqrt(float64(sv.Len())), 0)
	pool.Fan("prep.uniform", sv.Len(), func(_, lo, hi int) {
		for i := lo; i < hi; i++ {
			sv.Amplitudes[i] = amp
		}
	})
	return nil
}

/*
HadamardPrep reaches the uniform superposition the way a circuit would: one
Hadamard per qubit, starting from |0...0>. Each qubit is its own pass.
*/
func HadamardPrep(ctx context.Context, sv *StateVector, pool *Pool) error {
	for q := 0; q < sv.Qubits(); q++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		applyHadamard(sv, q, pool)
	}
	return nil
}

// applyHadamard mixes every amplitude pair that differs only in bit q:
//
//	H = 1/√2 * [1  1]
//	           [1 -1]
func applyHadamard(sv *StateVector, q int, pool *Pool) {
	bit := 1 << uint(q)
	scale := complex(1/math.Sqrt2, 0)

	pool.Fan("prep.hadamard", sv.Len(), func(_, lo, hi int) {
		for i := lo; i < hi; i++ {
			if i&bit != 0 {
				continue
			}
			alpha, beta := sv.Amplitudes[i], sv.Amplitudes[i|bit]
			sv.Amplitudes[i] = (alpha + beta) * scale
			sv.Amplitudes[i|bit] = (alpha - beta) * scale
		}
	})
}

// StatePrepByName resolves "uniform" or "hadamard".
func StatePrepByName(name string) (StatePrep, error) {
	switch name {
	case "", "uniform":
		return UniformPrep, nil
	case "hadamard":
		return HadamardPrep, nil
	default:
		return nil, errors.Errorf("unknown state preparation %q", name)
	}
}
