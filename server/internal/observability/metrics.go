package observability

import (
	"math"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// Chat outcomes recorded by the chat service.
const (
	OutcomeCompletion = "completion"
	OutcomeGreeting   = "greeting"
)

// Metrics collects and aggregates in-process metrics for chat requests.
type Metrics struct {
	mu sync.Mutex

	// Counters
	requestTotal  atomic.Int64
	requestFailed atomic.Int64
	persistFailed atomic.Int64

	outcomeMetrics map[string]*OutcomeMetrics
	failuresByCode map[string]int64

	// Duration window (simplified for internal use)
	durations    []time.Duration
	maxDurations int
}

// OutcomeMetrics represents metrics for one way a chat request was answered.
type OutcomeMetrics struct {
	count         atomic.Int64
	totalDuration atomic.Int64 // milliseconds
}

// NewMetrics creates a new metrics collector.
func NewMetrics(maxDurations int) *Metrics {
	if maxDurations <= 0 {
		maxDurations = 1000 // Default to keeping last 1000 durations
	}
	return &Metrics{
		outcomeMetrics: make(map[string]*OutcomeMetrics),
		failuresByCode: make(map[string]int64),
		durations:      make([]time.Duration, 0, maxDurations),
		maxDurations:   maxDurations,
	}
}

// RecordRequest records an incoming chat request.
func (m *Metrics) RecordRequest() {
	m.requestTotal.Add(1)
}

// RecordOutcome records a successfully answered request and its duration.
func (m *Metrics) RecordOutcome(outcome string, duration time.Duration) {
	om := m.getOutcomeMetrics(outcome)
	om.count.Add(1)
	om.totalDuration.Add(duration.Milliseconds())

	m.mu.Lock()
	if len(m.durations) >= m.maxDurations {
		// Remove oldest duration (FIFO)
		m.durations = m.durations[1:]
	}
	m.durations = append(m.durations, duration)
	m.mu.Unlock()
}

// RecordFailure records a failed request by error code.
func (m *Metrics) RecordFailure(code string) {
	m.requestFailed.Add(1)
	m.mu.Lock()
	m.failuresByCode[code]++
	m.mu.Unlock()
}

// RecordPersistFailure records a reply that was returned but could not be stored.
func (m *Metrics) RecordPersistFailure() {
	m.persistFailed.Add(1)
}

func (m *Metrics) getOutcomeMetrics(outcome string) *OutcomeMetrics {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.outcomeMetrics[outcome]; !ok {
		m.outcomeMetrics[outcome] = &OutcomeMetrics{}
	}
	return m.outcomeMetrics[outcome]
}

// Reset resets all metrics (useful for testing).
func (m *Metrics) Reset() {
	m.requestTotal.Store(0)
	m.requestFailed.Store(0)
	m.persistFailed.Store(0)

	m.mu.Lock()
	m.outcomeMetrics = make(map[string]*OutcomeMetrics)
	m.failuresByCode = make(map[string]int64)
	m.durations = make([]time.Duration, 0, m.maxDurations)
	m.mu.Unlock()
}

// Snapshot returns a snapshot of current metrics.
func (m *Metrics) Snapshot() *MetricsSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	outcomes := make(map[string]*OutcomeSnapshot, len(m.outcomeMetrics))
	for outcome, om := range m.outcomeMetrics {
		count := om.count.Load()
		snapshot := &OutcomeSnapshot{Count: count}
		if count > 0 {
			snapshot.AvgLatencyMs = om.totalDuration.Load() / count
		}
		outcomes[outcome] = snapshot
	}

	failures := make(map[string]int64, len(m.failuresByCode))
	for code, n := range m.failuresByCode {
		failures[code] = n
	}

	sorted := make([]time.Duration, len(m.durations))
	copy(sorted, m.durations)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	return &MetricsSnapshot{
		RequestTotal:   m.requestTotal.Load(),
		RequestFailed:  m.requestFailed.Load(),
		PersistFailed:  m.persistFailed.Load(),
		Outcomes:       outcomes,
		FailuresByCode: failures,
		P50LatencyMs:   percentile(sorted, 0.50).Milliseconds(),
		P95LatencyMs:   percentile(sorted, 0.95).Milliseconds(),
	}
}

// percentile uses the nearest-rank method and expects sorted durations.
func percentile(sorted []time.Duration, p float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	idx := int(math.Ceil(p*float64(len(sorted)))) - 1
	if idx < 0 {
		idx = 0
	}
	return sorted[idx]
}

// MetricsSnapshot represents a point-in-time snapshot of metrics.
type MetricsSnapshot struct {
	RequestTotal   int64                       `json:"request_total"`
	RequestFailed  int64                       `json:"request_failed"`
	PersistFailed  int64                       `json:"persist_failed"`
	Outcomes       map[string]*OutcomeSnapshot `json:"outcomes"`
	FailuresByCode map[string]int64            `json:"failures_by_code"`
	P50LatencyMs   int64                       `json:"p50_latency_ms"`
	P95LatencyMs   int64                       `json:"p95_latency_ms"`
}

// OutcomeSnapshot represents metrics for one outcome.
type OutcomeSnapshot struct {
	Count        int64 `json:"count"`
	AvgLatencyMs int64 `json:"avg_latency_ms"`
}

// SuccessRate returns the success rate as a percentage (0-100).
func (s *MetricsSnapshot) SuccessRate() float64 {
	if s.RequestTotal == 0 {
		return 100.0
	}
	return float64(s.RequestTotal-s.RequestFailed) / float64(s.RequestTotal) * 100.0
}
