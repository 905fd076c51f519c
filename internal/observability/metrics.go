package observability

import (
	"strconv"
	"sync"
	"time"

	"github.com/spec-kit/signup-flow/internal/domain"
)

// Metrics provides basic in-memory counters.
type Metrics struct {
	mu            sync.Mutex
	requestCount  map[string]int64
	errorCount    map[string]int64
	outcomeCount  map[domain.OutcomeKind]int64
	submitLatency time.Duration
	submissions   int64
}

// MetricsSnapshot is a point-in-time copy of the counters.
type MetricsSnapshot struct {
	Requests         map[string]int64             `json:"requests"`
	Errors           map[string]int64             `json:"errors"`
	Outcomes         map[domain.OutcomeKind]int64 `json:"outcomes"`
	AvgSubmitLatency string                       `json:"avg_submit_latency"`
	SubmissionsSeen  int64                        `json:"submissions"`
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		requestCount: make(map[string]int64),
		errorCount:   make(map[string]int64),
		outcomeCount: make(map[domain.OutcomeKind]int64),
	}
}

// RecordRequest increments counters for requests.
func (m *Metrics) RecordRequest(path, method string, status int) {
	if m == nil {
		return
	}
	key := path + "|" + method + "|" + strconv.Itoa(status)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestCount[key]++
}

// RecordError increments error counters.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	key := path + "|" + method + "|" + code
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorCount[key]++
}

// RecordOutcome counts a resolved submit attempt.
func (m *Metrics) RecordOutcome(kind domain.OutcomeKind, took time.Duration) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.outcomeCount[kind]++
	m.submissions++
	m.submitLatency += took
}

// Snapshot copies the current counters.
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap := MetricsSnapshot{
		Requests:         make(map[string]int64, len(m.requestCount)),
		Errors:           make(map[string]int64, len(m.errorCount)),
		Outcomes:         make(map[domain.OutcomeKind]int64, len(m.outcomeCount)),
		AvgSubmitLatency: "0s",
		SubmissionsSeen:  m.submissions,
	}
	for k, v := range m.requestCount {
		snap.Requests[k] = v
	}
	for k, v := range m.errorCount {
		snap.Errors[k] = v
	}
	for k, v := range m.outcomeCount {
		snap.Outcomes[k] = v
	}
	if m.submissions > 0 {
		snap.AvgSubmitLatency = (m.submitLatency / time.Duration(m.submissions)).String()
	}
	return snap
}
