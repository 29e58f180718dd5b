package qcolor

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/pkg/errors"
	. "github.com/smartystreets/goconvey/convey"
)

func TestIterations(t *testing.T) {
	Convey("Given the iteration count formula", t, func() {
		So(Iterations(16, 4), ShouldEqual, 2)
		So(Iterations(16, 1), ShouldEqual, 3)
		So(Iterations(65536, 2652), ShouldEqual, 4)

		Convey("Degenerate marking sets need no rounds", func() {
			So(Iterations(16, 0), ShouldEqual, 0)
			So(Iterations(16, 16), ShouldEqual, 0)
		})
	})
}

func TestEngine(t *testing.T) {
	ctx, cancel := testContext()
	defer cancel()

	Convey("Given an engine over the 4-cycle with 4 colors", t, func() {
		pool := NewPool(ctx, 4, 16)
		defer pool.Close()

		square := mustGraph(4, []Edge{{0, 1}, {1, 2}, {2, 3}, {3, 0}})
		oracle := mustOracle(square, 2, pool)
		governor := NewResourceGovernor(24)
		engine := NewEngine(oracle, pool, governor, UniformPrep)

		So(engine.State(), ShouldEqual, Uninitialized)

		Convey("Preparing yields the uniform superposition", func() {
			So(engine.Prepare(ctx), ShouldBeNil)
			So(engine.State(), ShouldEqual, Prepared)

			sv := engine.Vector()
			So(sv.Len(), ShouldEqual, 256)
			for _, amp := range sv.Amplitudes {
				So(amp, ShouldEqual, complex(1.0/16, 0))
			}
		})

		Convey("Every pass keeps the vector normalized", func() {
			So(engine.Prepare(ctx), ShouldBeNil)

			for k := 1; k <= 6; k++ {
				So(engine.Step(ctx), ShouldBeNil)
				So(engine.State(), ShouldEqual, Iterating)
				So(engine.Iteration(), ShouldEqual, k)
				So(engine.Vector().Norm(), ShouldAlmostEqual, 1, tolerance)
			}
		})

		Convey("Measuring destroys the vector and releases it", func() {
			index, err := engine.Run(ctx, 1, rand.New(rand.NewPCG(5, 6)))
			So(err, ShouldBeNil)
			So(index, ShouldBeLessThan, uint64(256))
			So(engine.State(), ShouldEqual, Measured)
			So(engine.Vector(), ShouldBeNil)

			inFlight, peak, admitted := governor.Usage()
			So(inFlight, ShouldEqual, uint64(0))
			So(peak, ShouldEqual, uint64(256*amplitudeBytes))
			So(admitted, ShouldEqual, int64(1))

			_, err = engine.Measure(rand.New(rand.NewPCG(5, 6)))
			So(err, ShouldNotBeNil)
		})

		Convey("Iterating before preparing fails", func() {
			So(engine.Step(ctx), ShouldNotBeNil)
		})

		Convey("Cancellation stops between passes without tearing the vector", func() {
			So(engine.Prepare(ctx), ShouldBeNil)
			So(engine.Step(ctx), ShouldBeNil)

			done, stop := context.WithCancel(ctx)
			stop()

			err := engine.Step(done)
			So(errors.Is(err, context.Canceled), ShouldBeTrue)
			So(engine.Iteration(), ShouldEqual, 1)
			So(engine.Vector().Norm(), ShouldAlmostEqual, 1, tolerance)
		})

		Convey("Accept and Exhaust are terminal", func() {
			engine.Accept()
			So(engine.State(), ShouldEqual, Done)
			So(engine.State().String(), ShouldEqual, "done")

			engine.Exhaust()
			So(engine.State(), ShouldEqual, Exhausted)
		})
	})

	Convey("Given the cube with 4 colors amplified optimally", t, func() {
		pool := NewPool(ctx, 4, 1024)
		defer pool.Close()

		oracle := mustOracle(mustGraph(8, cubeEdges), 2, pool)
		engine := NewEngine(oracle, pool, NewResourceGovernor(24), UniformPrep)

		So(engine.Prepare(ctx), ShouldBeNil)
		So(engine.Amplify(ctx, Iterations(65536, 2652)), ShouldBeNil)

		Convey("Most probability sits on valid colorings", func() {
			sv := engine.Vector()
			mass := 0.0
			for i := range sv.Amplitudes {
				if oracle.Valid(uint64(i)) {
					mass += sv.Probability(i)
				}
			}
			So(mass, ShouldBeGreaterThan, 0.93)
			So(sv.Norm(), ShouldAlmostEqual, 1, tolerance)
		})

		Convey("A measurement decodes to a coloring", func() {
			index, err := engine.Measure(rand.New(rand.NewPCG(9, 9)))
			So(err, ShouldBeNil)

			coloring, err := oracle.Encoding().Decode(index)
			So(err, ShouldBeNil)
			So(len(coloring), ShouldEqual, 8)
		})
	})

	Convey("Given a register wider than the ceiling", t, func() {
		oracle := mustOracle(mustGraph(8, cubeEdges), 2, nil)
		governor := NewResourceGovernor(8)
		engine := NewEngine(oracle, nil, governor, UniformPrep)

		err := engine.Prepare(ctx)

		Convey("Preparation fails before allocating", func() {
			So(errors.Is(err, ErrResourceExceeded), ShouldBeTrue)
			So(engine.Vector(), ShouldBeNil)
			So(engine.State(), ShouldEqual, Uninitialized)

			_, _, admitted := governor.Usage()
			So(admitted, ShouldEqual, int64(0))
		})
	})

	Convey("Given an engine refused after an earlier attempt", t, func() {
		oracle := mustOracle(mustGraph(2, []Edge{{0, 1}}), 2, nil)
		governor := NewResourceGovernor(4)
		engine := NewEngine(oracle, nil, governor, UniformPrep)

		_, err := engine.Run(ctx, 1, rand.New(rand.NewPCG(1, 1)))
		So(err, ShouldBeNil)
		So(engine.State(), ShouldEqual, Measured)

		governor.ceilingBits = 2
		err = engine.Prepare(ctx)

		Convey("It falls back to uninitialized", func() {
			So(errors.Is(err, ErrResourceExceeded), ShouldBeTrue)
			So(engine.State(), ShouldEqual, Uninitialized)
			So(engine.Vector(), ShouldBeNil)

			held, _, _ := governor.Usage()
			So(held, ShouldEqual, uint64(0))
		})
	})
}

func TestStatePrep(t *testing.T) {
	ctx, cancel := testContext()
	defer cancel()

	Convey("Given Hadamard and direct uniform preparation", t, func() {
		pool := NewPool(ctx, 3, 8)
		defer pool.Close()

		viaHadamard := NewStateVector(7)
		direct := NewStateVector(7)

		So(HadamardPrep(ctx, viaHadamard, pool), ShouldBeNil)
		So(UniformPrep(ctx, direct, nil), ShouldBeNil)

		Convey("Both produce the same state", func() {
			for i := range direct.Amplitudes {
				diff := viaHadamard.Amplitudes[i] - direct.Amplitudes[i]
				So(real(diff), ShouldAlmostEqual, 0, tolerance)
				So(imag(diff), ShouldAlmostEqual, 0, tolerance)
			}
		})
	})

	Convey("Given state preparation names", t, func() {
		_, err := StatePrepByName("hadamard")
		So(err, ShouldBeNil)

		_, err = StatePrepByName("uniform")
		So(err, ShouldBeNil)

		_, err = StatePrepByName("ghz")
		So(err, ShouldNotBeNil)
	})
}

func TestEngineStateNames(t *testing.T) {
	Convey("Every engine state has a name", t, func() {
		for s := Uninitialized; s <= Exhausted; s++ {
			So(s.String(), ShouldNotEqual, "unknown")
		}
		So(EngineState(42).String(), ShouldEqual, "unknown")
	})
}
