package qcolor

// Worker executes chunk jobs until the pool shuts down.
type Worker struct {
	id   int
	pool *Pool
}

func (w *Worker) run() {
	for {
		select {
		case <-w.pool.ctx.Done():
			return
		case job := <-w.pool.jobs:
			// A received job always runs to completion, the pass barrier depends on it.
			job.run()
			w.pool.metrics.recordChunk()
		}
	}
}
