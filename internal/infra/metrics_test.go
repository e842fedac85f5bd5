package infra

import (
	"sync"
	"testing"
)

func TestMetrics_RecordSubmission(t *testing.T) {
	m := &Metrics{}

	m.RecordSubmission(true, 1000)
	m.RecordSubmission(true, 2000)
	m.RecordSubmission(false, 3000)

	snap := m.Snapshot()

	if snap.OrdersSubmitted != 2 {
		t.Errorf("Expected 2 submitted, got %d", snap.OrdersSubmitted)
	}
	if snap.OrdersRejected != 1 {
		t.Errorf("Expected 1 rejected, got %d", snap.OrdersRejected)
	}

	// Average latency: (1000 + 2000 + 3000) / 3 = 2000
	if snap.AvgLatencyNs != 2000 {
		t.Errorf("Expected avg latency 2000, got %d", snap.AvgLatencyNs)
	}
}

func TestMetrics_Otp(t *testing.T) {
	m := &Metrics{}

	m.RecordOtp(true)
	m.RecordOtp(true)
	m.RecordOtp(false)

	snap := m.Snapshot()
	if snap.OtpResolved != 2 || snap.OtpRejected != 1 {
		t.Errorf("Expected 2/1 otp, got %d/%d", snap.OtpResolved, snap.OtpRejected)
	}
}

func TestMetrics_Concurrent(t *testing.T) {
	m := &Metrics{}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				m.RecordSigned()
			}
		}()
	}
	wg.Wait()

	if got := m.Snapshot().OrdersSigned; got != 1000 {
		t.Errorf("Expected 1000 signed, got %d", got)
	}
}

func TestMetrics_Reset(t *testing.T) {
	m := &Metrics{}

	m.RecordSubmission(true, 1000)
	m.RecordError()
	m.RecordCanceled()
	m.RecordOtp(false)

	m.Reset()
	snap := m.Snapshot()

	if snap.OrdersSubmitted != 0 {
		t.Error("Expected 0 submissions after reset")
	}
	if snap.ErrorsTotal != 0 {
		t.Error("Expected 0 errors after reset")
	}
	if snap.OrdersCanceled != 0 || snap.OtpRejected != 0 {
		t.Error("Expected counters cleared after reset")
	}
	if snap.AvgLatencyNs != 0 {
		t.Error("Expected 0 latency after reset")
	}
}
