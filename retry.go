package qcolor

import "math"

// GuessStrategy proposes a marking-set size for an attempt when the exact
// size is unknown. size is the number of basis states.
type GuessStrategy interface {
	NextGuess(attempt int, size uint64) uint64
}

// DoublingGuess proposes Initial, 2*Initial, 4*Initial, ... capped at size.
type DoublingGuess struct {
	Initial uint64
}

func (dg *DoublingGuess) NextGuess(attempt int, size uint64) uint64 {
	guess := max(dg.Initial, 1)
	for i := 0; i < attempt && guess < size; i++ {
		if guess > math.MaxUint64/2 {
			return size
		}
		guess *= 2
	}
	return min(guess, size)
}

// ExactGuess always proposes a known marking-set size.
type ExactGuess struct {
	Marked uint64
}

func (eg *ExactGuess) NextGuess(int, uint64) uint64 {
	return eg.Marked
}

/*
Iterations returns the Grover iteration count round((pi/4) * sqrt(n/m)) for
m marked states out of n. An empty marking set gives nothing to amplify and
a full one is a global phase, both return 0.
*/
func Iterations(n, m uint64) int {
	if m == 0 || m >= n {
		return 0
	}
	return int(math.Round(math.Pi / 4 * math.Sqrt(float64(n)/float64(m))))
}
