package qcolor

import (
	"sync"
	"time"
)

// Job is one chunk of a pass: the half-open index range [Lo, Hi).
type Job struct {
	ID        string
	Chunk     int
	Lo, Hi    int
	Fn        func(chunk, lo, hi int)
	StartTime time.Time
	done      *sync.WaitGroup
}

func (j Job) run() {
	defer j.done.Done()
	j.Fn(j.Chunk, j.Lo, j.Hi)
}
