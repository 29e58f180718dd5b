package qcolor

import (
	"math/rand/v2"
	"sort"

	"gonum.org/v1/gonum/cmplxs"
	"gonum.org/v1/gonum/floats"
)

/*
StateVector is the dense amplitude buffer of a simulated register, indexed
by basis state. It is owned by exactly one engine and mutated in place.
*/
type StateVector struct {
	Amplitudes []complex128
	qubits     int
}

// NewStateVector allocates |0...0> on the given number of qubits.
func NewStateVector(qubits int) *StateVector {
	amps := make([]complex128, 1<<uint(qubits))
	amps[0] = 1
	return &StateVector{Amplitudes: amps, qubits: qubits}
}

func (sv *StateVector) Qubits() int {
	return sv.qubits
}

func (sv *StateVector) Len() int {
	return len(sv.Amplitudes)
}

// Norm is the total probability, the sum of squared magnitudes.
func (sv *StateVector) Norm() float64 {
	n := cmplxs.Norm(sv.Amplitudes, 2)
	return n * n
}

func (sv *StateVector) Probability(index int) float64 {
	a := sv.Amplitudes[index]
	return real(a)*real(a) + imag(a)*imag(a)
}

/*
Measure draws one basis index with probability |amp|^2 and collapses the
vector. Measurement is destructive: the amplitudes are released and any
further Measure returns ErrMeasured.
*/
func (sv *StateVector) Measure(rng *rand.Rand) (uint64, error) {
	if sv.Amplitudes == nil {
		return 0, ErrMeasured
	}

	cdf := make([]float64, len(sv.Amplitudes))
	for i := range sv.Amplitudes {
		cdf[i] = sv.Probability(i)
	}
	floats.CumSum(cdf, cdf)

	total := cdf[len(cdf)-1]
	if total <= 0 {
		return 0, ErrZeroState
	}

	r := rng.Float64() * total
	index := sort.Search(len(cdf), func(i int) bool {
		return cdf[i] > r
	})

	sv.Amplitudes = nil
	return uint64(index), nil
}
