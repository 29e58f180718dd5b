package qcolor

import (
	"slices"
	"sync"
	"time"
)

// Metrics tracks pass throughput of a Pool.
type Metrics struct {
	mu          sync.RWMutex
	WorkerCount int
	PassCount   int64
	ChunkCount  int64
	TotalPass   time.Duration

	AveragePassLatency time.Duration
	P95PassLatency     time.Duration
	P99PassLatency     time.Duration

	latencies  []time.Duration
	windowSize int
}

func NewMetrics() *Metrics {
	return &Metrics{
		latencies:  make([]time.Duration, 0, 1000),
		windowSize: 1000,
	}
}

func (m *Metrics) recordChunk() {
	m.mu.Lock()
	m.ChunkCount++
	m.mu.Unlock()
}

func (m *Metrics) recordPass(start time.Time) {
	duration := time.Since(start)

	m.mu.Lock()
	defer m.mu.Unlock()

	m.PassCount++
	m.TotalPass += duration
	m.AveragePassLatency = m.TotalPass / time.Duration(m.PassCount)

	m.latencies = append(m.latencies, duration)
	if len(m.latencies) > m.windowSize {
		m.latencies = m.latencies[1:]
	}

	sorted := slices.Clone(m.latencies)
	slices.Sort(sorted)

	p95 := min(int(float64(len(sorted))*0.95), len(sorted)-1)
	p99 := min(int(float64(len(sorted))*0.99), len(sorted)-1)
	m.P95PassLatency = sorted[p95]
	m.P99PassLatency = sorted[p99]
}

func (m *Metrics) ExportMetrics() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"worker_count": m.WorkerCount,
		"pass_count":   m.PassCount,
		"chunk_count":  m.ChunkCount,
		"avg_latency":  m.AveragePassLatency.Microseconds(),
		"p95_latency":  m.P95PassLatency.Microseconds(),
		"p99_latency":  m.P99PassLatency.Microseconds(),
	}
}
