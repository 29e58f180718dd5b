package qcolor

import (
	"context"

	"gonum.org/v1/gonum/cmplxs"
)

/*
Diffuse reflects every amplitude about the mean, amp[i] = 2*mean - amp[i].
The mean is reduced from per-chunk partial sums, so the reflection only
starts once the whole vector has been read.
*/
func Diffuse(ctx context.Context, sv *StateVector, pool *Pool) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	n := sv.Len()
	partials := make([]complex128, pool.Chunks(n))

	pool.Fan("diffusion.mean", n, func(chunk, lo, hi int) {
		partials[chunk] = cmplxs.Sum(sv.Amplitudes[lo:hi])
	})

	twiceMean := 2 * cmplxs.Sum(partials) / complex(float64(n), 0)

	pool.Fan("diffusion.reflect", n, func(_, lo, hi int) {
		for i := lo; i < hi; i++ {
			sv.Amplitudes[i] = twiceMean - sv.Amplitudes[i]
		}
	})
	return nil
}
