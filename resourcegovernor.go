package qcolor

import (
	"sync"

	"github.com/pkg/errors"
)

// amplitudeBytes is the size of one complex128 amplitude.
const amplitudeBytes = 16

/*
ResourceGovernor guards the size of simulated states. Every engine asks it
for admission before allocating an amplitude vector, and releases the
reservation once the vector is measured. The governor also tracks how much
amplitude memory concurrent attempts hold at once.
*/
type ResourceGovernor struct {
	mu          sync.RWMutex
	ceilingBits int
	inFlight    uint64 // bytes of currently admitted vectors
	peak        uint64
	admitted    int64
}

func NewResourceGovernor(ceilingBits int) *ResourceGovernor {
	return &ResourceGovernor{ceilingBits: ceilingBits}
}

// Check reports ErrResourceExceeded for registers wider than the ceiling,
// without reserving anything.
func (rg *ResourceGovernor) Check(qubits int) error {
	if qubits > rg.ceilingBits || qubits >= maxIndexBits {
		return errors.Wrapf(
			ErrResourceExceeded,
			"%d qubits exceed the ceiling of %d", qubits, rg.ceilingBits,
		)
	}
	return nil
}

// Admit reserves the memory of one vector on the given number of qubits.
func (rg *ResourceGovernor) Admit(qubits int) error {
	if err := rg.Check(qubits); err != nil {
		return err
	}

	rg.mu.Lock()
	defer rg.mu.Unlock()

	rg.inFlight += amplitudeBytes << uint(qubits)
	rg.peak = max(rg.peak, rg.inFlight)
	rg.admitted++
	return nil
}

func (rg *ResourceGovernor) Release(qubits int) {
	rg.mu.Lock()
	defer rg.mu.Unlock()

	rg.inFlight -= min(rg.inFlight, amplitudeBytes<<uint(qubits))
}

// Usage returns the bytes currently reserved, the peak reservation and the
// number of admitted vectors.
func (rg *ResourceGovernor) Usage() (inFlight, peak uint64, admitted int64) {
	rg.mu.RLock()
	defer rg.mu.RUnlock()
	return rg.inFlight, rg.peak, rg.admitted
}

func (rg *ResourceGovernor) CeilingBits() int {
	return rg.ceilingBits
}
