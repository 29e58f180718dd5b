package qcolor

import (
	"context"
	"math/rand/v2"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Result is a verified coloring plus how the search got there.
type Result struct {
	RunID       string
	Coloring    Coloring
	Attempts    int    // attempts started, including the successful one
	Iterations  int    // Grover rounds of the successful attempt
	Guess       uint64 // marking-set size the successful attempt assumed
	Marked      uint64 // exact marking-set size, valid when MarkedKnown
	MarkedKnown bool
}

/*
Solver runs the encode, mark, amplify, sample, verify pipeline. It owns a
worker pool shared by every pass of every attempt; Close releases it.
*/
type Solver struct {
	config   *Config
	pool     *Pool
	governor *ResourceGovernor
}

func NewSolver(ctx context.Context, opts ...Option) *Solver {
	cfg := NewConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	cfg.normalize()

	return &Solver{
		config:   cfg,
		pool:     NewPool(ctx, cfg.Workers, cfg.ChunkSize),
		governor: NewResourceGovernor(cfg.ResourceCeilingBits),
	}
}

func (s *Solver) Config() Config {
	return *s.config
}

func (s *Solver) Pool() *Pool {
	return s.pool
}

func (s *Solver) Governor() *ResourceGovernor {
	return s.governor
}

func (s *Solver) Close() {
	s.pool.Close()
}

// FindColoring is a one-shot Solver: it builds one, solves and closes it.
func FindColoring(ctx context.Context, g *Graph, bitsPerColor int, opts ...Option) (Coloring, error) {
	s := NewSolver(ctx, opts...)
	defer s.Close()

	res, err := s.FindColoring(ctx, g, bitsPerColor)
	if err != nil {
		return nil, err
	}
	return res.Coloring, nil
}

// plan is everything an attempt needs, fixed for the whole run.
type plan struct {
	runID       string
	graph       *Graph
	enc         Encoding
	oracle      *ColoringOracle
	marked      uint64
	markedKnown bool
}

type attemptOutcome struct {
	attempt    int
	coloring   Coloring
	iterations int
	guess      uint64
	verified   bool
	err        error
}

/*
FindColoring searches for a coloring of g using 2^bitsPerColor colors.
Validation and resource errors surface before any amplification. Failed
verifications are retried up to MaxAttempts; running out yields
ErrNoColoringFound.
*/
func (s *Solver) FindColoring(ctx context.Context, g *Graph, bitsPerColor int) (*Result, error) {
	enc, err := NewEncoding(g.NumVertices(), bitsPerColor)
	if err != nil {
		return nil, err
	}
	if err := s.governor.Check(enc.Qubits()); err != nil {
		return nil, err
	}

	oracle, err := NewColoringOracle(g, enc, s.pool)
	if err != nil {
		return nil, err
	}

	p := &plan{
		runID:  uuid.NewString(),
		graph:  g,
		enc:    enc,
		oracle: oracle,
	}

	if enc.Qubits() <= s.config.ExactCountBits {
		if p.marked, err = oracle.CountMarked(ctx); err != nil {
			return nil, errors.Wrap(err, "count marking set")
		}
		p.markedKnown = true
	}

	logger.Info(
		"searching",
		"run", p.runID,
		"vertices", g.NumVertices(),
		"edges", g.NumEdges(),
		"colors", enc.Colors(),
		"qubits", enc.Qubits(),
		"marked", p.marked,
		"exact", p.markedKnown,
	)

	var (
		outcome  *attemptOutcome
		attempts int
	)
	if s.config.ConcurrentAttempts > 1 {
		outcome, attempts, err = s.race(ctx, p)
	} else {
		outcome, attempts, err = s.sequential(ctx, p)
	}
	if err != nil {
		return nil, err
	}

	if outcome == nil {
		return nil, s.exhausted(p, attempts)
	}

	logger.Info(
		"coloring found",
		"run", p.runID,
		"attempt", outcome.attempt+1,
		"iterations", outcome.iterations,
		"coloring", outcome.coloring.String(),
	)

	return &Result{
		RunID:       p.runID,
		Coloring:    outcome.coloring,
		Attempts:    attempts,
		Iterations:  outcome.iterations,
		Guess:       outcome.guess,
		Marked:      p.marked,
		MarkedKnown: p.markedKnown,
	}, nil
}

func (s *Solver) exhausted(p *plan, attempts int) error {
	logger.Warn("attempts exhausted", "run", p.runID, "attempts", attempts)

	if p.markedKnown && p.marked == 0 {
		return errors.Wrapf(
			ErrNoColoringFound,
			"graph has no valid coloring with %d colors (%d attempts)", p.enc.Colors(), attempts,
		)
	}
	return errors.Wrapf(ErrNoColoringFound, "%d attempts exhausted", attempts)
}

// schedule returns the marking-set guess and iteration count of an attempt.
func (s *Solver) schedule(p *plan, attempt int) (guess uint64, rounds int) {
	size := p.enc.Size()

	switch {
	case p.markedKnown && p.marked > 0:
		guess = p.marked
	default:
		guess = s.config.Guess.NextGuess(attempt, size)
	}

	if s.config.FixedIterations >= 0 {
		return guess, s.config.FixedIterations
	}
	return guess, Iterations(size, guess)
}

// rng derives the measurement source of one attempt from the configured seed.
func (s *Solver) rng(attempt int) *rand.Rand {
	return rand.New(rand.NewPCG(s.config.Seed, uint64(attempt)))
}

func (s *Solver) attempt(ctx context.Context, p *plan, engine *Engine, attempt int) attemptOutcome {
	guess, rounds := s.schedule(p, attempt)
	out := attemptOutcome{attempt: attempt, iterations: rounds, guess: guess}

	index, err := engine.Run(ctx, rounds, s.rng(attempt))
	if err != nil {
		out.err = err
		return out
	}

	if out.coloring, out.err = p.enc.Decode(index); out.err != nil {
		return out
	}

	out.verified = Verify(out.coloring, p.oracle.edges)
	if out.verified {
		engine.Accept()
	}

	logger.Debug(
		"attempt finished",
		"run", p.runID,
		"attempt", attempt+1,
		"guess", guess,
		"iterations", rounds,
		"sample", index,
		"verified", out.verified,
	)
	return out
}

func (s *Solver) sequential(ctx context.Context, p *plan) (*attemptOutcome, int, error) {
	engine := NewEngine(p.oracle, s.pool, s.governor, s.config.StatePrep)

	for k := 0; k < s.config.MaxAttempts; k++ {
		out := s.attempt(ctx, p, engine, k)
		if out.err != nil {
			return nil, k + 1, s.attemptError(out)
		}
		if out.verified {
			return &out, k + 1, nil
		}
	}

	engine.Exhaust()
	return nil, s.config.MaxAttempts, nil
}

/*
race keeps up to ConcurrentAttempts attempts in flight. The first verified
coloring cancels the rest; they stop at their next pass boundary.
*/
func (s *Solver) race(ctx context.Context, p *plan) (*attemptOutcome, int, error) {
	raceCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make(chan attemptOutcome, s.config.MaxAttempts)
	slots := make(chan struct{}, s.config.ConcurrentAttempts)

	var (
		wg      sync.WaitGroup
		started int
	)

	go func() {
		defer func() {
			wg.Wait()
			close(results)
		}()

		for k := 0; k < s.config.MaxAttempts; k++ {
			select {
			case slots <- struct{}{}:
			case <-raceCtx.Done():
				return
			}
			if raceCtx.Err() != nil {
				return
			}

			started = k + 1
			wg.Add(1)
			go func(k int) {
				defer wg.Done()
				defer func() { <-slots }()

				engine := NewEngine(p.oracle, s.pool, s.governor, s.config.StatePrep)
				out := s.attempt(raceCtx, p, engine, k)
				if out.err == nil && !out.verified && k == s.config.MaxAttempts-1 {
					engine.Exhaust()
				}
				results <- out
			}(k)
		}
	}()

	var (
		winner *attemptOutcome
		failed error
	)
	for out := range results {
		switch {
		case out.verified && winner == nil:
			winner = &out
			cancel()
		case out.err != nil && failed == nil && !isCancellation(raceCtx, ctx, out.err):
			failed = s.attemptError(out)
			cancel()
		}
	}

	// started is only written by the launcher, which is done once results closed.
	if winner != nil {
		return winner, started, nil
	}
	if failed != nil {
		return nil, started, failed
	}
	if err := ctx.Err(); err != nil {
		return nil, started, errors.Wrap(err, "search cancelled")
	}
	return nil, started, nil
}

// isCancellation reports whether err only reflects the race being called off
// internally, as opposed to a real failure or the caller cancelling.
func isCancellation(raceCtx, parent context.Context, err error) bool {
	return raceCtx.Err() != nil && parent.Err() == nil && errors.Is(err, context.Canceled)
}

func (s *Solver) attemptError(out attemptOutcome) error {
	if errors.Is(out.err, context.Canceled) || errors.Is(out.err, context.DeadlineExceeded) {
		return errors.Wrap(out.err, "search cancelled")
	}
	return errors.Wrapf(out.err, "attempt %d", out.attempt+1)
}
