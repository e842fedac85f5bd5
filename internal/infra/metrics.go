package infra

import (
	"sync/atomic"
	"time"
)

// Metrics provides lightweight observability without external dependencies.
// Uses atomic operations for thread-safety.
type Metrics struct {
	// Counters
	otpResolved     atomic.Uint64
	otpRejected     atomic.Uint64
	ordersSigned    atomic.Uint64
	ordersSubmitted atomic.Uint64
	ordersRejected  atomic.Uint64
	ordersCanceled  atomic.Uint64
	errorsTotal     atomic.Uint64

	// Latency tracking (API round trips)
	latencySumNs atomic.Int64
	latencyCount atomic.Uint64
}

// GlobalMetrics is the singleton metrics instance.
var GlobalMetrics = &Metrics{}

// RecordOtp records a matrix challenge outcome.
func (m *Metrics) RecordOtp(ok bool) {
	if ok {
		m.otpResolved.Add(1)
		return
	}
	m.otpRejected.Add(1)
}

// RecordSigned records a generated order signature.
func (m *Metrics) RecordSigned() {
	m.ordersSigned.Add(1)
}

// RecordSubmission records an order submission with its API latency.
func (m *Metrics) RecordSubmission(accepted bool, latencyNs int64) {
	if accepted {
		m.ordersSubmitted.Add(1)
	} else {
		m.ordersRejected.Add(1)
	}
	m.latencySumNs.Add(latencyNs)
	m.latencyCount.Add(1)
}

// RecordCanceled records a canceled order.
func (m *Metrics) RecordCanceled() {
	m.ordersCanceled.Add(1)
}

// RecordError records an error occurrence.
func (m *Metrics) RecordError() {
	m.errorsTotal.Add(1)
}

// MetricsSnapshot is a point-in-time view of all metrics.
type MetricsSnapshot struct {
	OtpResolved     uint64
	OtpRejected     uint64
	OrdersSigned    uint64
	OrdersSubmitted uint64
	OrdersRejected  uint64
	OrdersCanceled  uint64
	ErrorsTotal     uint64
	AvgLatencyNs    int64
	Timestamp       time.Time
}

// Snapshot returns current metrics as a snapshot.
func (m *Metrics) Snapshot() MetricsSnapshot {
	var avgLatency int64
	count := m.latencyCount.Load()
	if count > 0 {
		avgLatency = m.latencySumNs.Load() / int64(count)
	}

	return MetricsSnapshot{
		OtpResolved:     m.otpResolved.Load(),
		OtpRejected:     m.otpRejected.Load(),
		OrdersSigned:    m.ordersSigned.Load(),
		OrdersSubmitted: m.ordersSubmitted.Load(),
		OrdersRejected:  m.ordersRejected.Load(),
		OrdersCanceled:  m.ordersCanceled.Load(),
		ErrorsTotal:     m.errorsTotal.Load(),
		AvgLatencyNs:    avgLatency,
		Timestamp:       time.Now(),
	}
}

// Reset clears all metrics (for testing).
func (m *Metrics) Reset() {
	m.otpResolved.Store(0)
	m.otpRejected.Store(0)
	m.ordersSigned.Store(0)
	m.ordersSubmitted.Store(0)
	m.ordersRejected.Store(0)
	m.ordersCanceled.Store(0)
	m.errorsTotal.Store(0)
	m.latencySumNs.Store(0)
	m.latencyCount.Store(0)
}
