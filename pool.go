package qcolor

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

/*
Pool fans a single operator pass out over a fixed set of workers. A pass is
split into index chunks; Fan returns only after every chunk finished, which
is the barrier between consecutive passes on the same state vector.

A nil *Pool is valid and runs every pass inline on the calling goroutine.
*/
type Pool struct {
	ID        string
	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	jobs      chan Job
	metrics   *Metrics
	workers   int
	chunkSize int
	closeOnce sync.Once
}

func NewPool(ctx context.Context, workers, chunkSize int) *Pool {
	ctx, cancel := context.WithCancel(ctx)

	p := &Pool{
		ID:        uuid.NewString(),
		ctx:       ctx,
		cancel:    cancel,
		jobs:      make(chan Job),
		metrics:   NewMetrics(),
		workers:   max(workers, 1),
		chunkSize: max(chunkSize, 1),
	}

	for i := 0; i < p.workers; i++ {
		w := &Worker{id: i, pool: p}
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			w.run()
		}()
	}

	p.metrics.mu.Lock()
	p.metrics.WorkerCount = p.workers
	p.metrics.mu.Unlock()

	logger.Debug("pool started", "pool", p.ID, "workers", p.workers, "chunk", p.chunkSize)
	return p
}

// span returns the chunk size and chunk count used to cover n indices.
func (p *Pool) span(n int) (size, chunks int) {
	if p == nil || n <= 0 {
		return max(n, 1), 1
	}

	// Aim for a few chunks per worker so uneven chunks even out.
	size = max(p.chunkSize, (n+p.workers*4-1)/(p.workers*4))
	return size, (n + size - 1) / size
}

// Chunks is the number of chunks Fan will hand out for n indices, letting
// callers size per-chunk partial results.
func (p *Pool) Chunks(n int) int {
	_, chunks := p.span(n)
	return chunks
}

/*
Fan runs fn over [0, n) in chunks and waits for all of them. Once the pool
is closed the remaining chunks run inline, so a pass is never left half
applied.
*/
func (p *Pool) Fan(name string, n int, fn func(chunk, lo, hi int)) {
	if n <= 0 {
		return
	}

	start := time.Now()
	size, chunks := p.span(n)

	if p == nil || chunks == 1 || p.workers == 1 {
		for c := 0; c < chunks; c++ {
			lo := c * size
			fn(c, lo, min(lo+size, n))
		}
		p.record(start)
		return
	}

	var barrier sync.WaitGroup
	barrier.Add(chunks)

	for c := 0; c < chunks; c++ {
		lo := c * size
		job := Job{
			ID:        name,
			Chunk:     c,
			Lo:        lo,
			Hi:        min(lo+size, n),
			Fn:        fn,
			StartTime: start,
			done:      &barrier,
		}

		select {
		case p.jobs <- job:
		case <-p.ctx.Done():
			job.run()
		}
	}

	barrier.Wait()
	p.record(start)
}

func (p *Pool) record(start time.Time) {
	if p == nil {
		return
	}
	p.metrics.recordPass(start)
}

func (p *Pool) Metrics() *Metrics {
	if p == nil {
		return nil
	}
	return p.metrics
}

// Close stops the workers and waits for them to exit.
func (p *Pool) Close() {
	if p == nil {
		return
	}

	p.closeOnce.Do(func() {
		p.cancel()
		p.wg.Wait()
		logger.Debug("pool closed", "pool", p.ID)
	})
}
