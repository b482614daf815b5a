package perf

import (
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

// TestCollector_Record verifies request and query entries land in separate histograms.
func TestCollector_Record(t *testing.T) {
	c := NewCollector()
	now := time.Now()

	c.Record(Entry{Kind: KindRequest, Path: "GET /training/", StatusCode: 200, DurationMs: 10, Timestamp: now})
	c.Record(Entry{Kind: KindRequest, Path: "GET /training/", StatusCode: 200, DurationMs: 30, Timestamp: now})
	c.Record(Entry{Kind: KindQuery, Path: "ExecContext", DurationMs: 5, Timestamp: now})

	if c.TotalRecorded() != 3 {
		t.Errorf("TotalRecorded = %d, want 3", c.TotalRecorded())
	}
	if n := testutil.CollectAndCount(c.requests); n != 1 {
		t.Errorf("request series = %d, want 1", n)
	}
	if n := testutil.CollectAndCount(c.queries); n != 1 {
		t.Errorf("query series = %d, want 1", n)
	}
}

// TestCollector_RecordContact verifies the submission counter is labelled by status.
func TestCollector_RecordContact(t *testing.T) {
	c := NewCollector()
	c.RecordContact("sent")
	c.RecordContact("sent")
	c.RecordContact("failed")

	if got := testutil.ToFloat64(c.contact.WithLabelValues("sent")); got != 2 {
		t.Errorf("sent = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.contact.WithLabelValues("failed")); got != 1 {
		t.Errorf("failed = %v, want 1", got)
	}
}

// TestCollector_Handler verifies the exposition endpoint includes our metric families.
func TestCollector_Handler(t *testing.T) {
	c := NewCollector()
	c.Record(Entry{Kind: KindRequest, Path: "GET /", StatusCode: 200, DurationMs: 1})
	c.RecordContact("sent")

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body := rec.Body.String()
	for _, name := range []string{"clubsite_http_request_duration_seconds", "clubsite_contact_submissions_total"} {
		if !strings.Contains(body, name) {
			t.Errorf("metrics output missing %s", name)
		}
	}
}

// TestCollector_ConcurrentWrites verifies goroutine safety of Record.
func TestCollector_ConcurrentWrites(t *testing.T) {
	c := NewCollector()
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				c.Record(Entry{Kind: KindRequest, Path: "GET /c", StatusCode: 200, DurationMs: float64(n)})
			}
		}(i)
	}
	wg.Wait()
	if c.TotalRecorded() != 1000 {
		t.Errorf("TotalRecorded = %d, want 1000", c.TotalRecorded())
	}
}

// BenchmarkCollectorRecord measures per-call cost of Record().
func BenchmarkCollectorRecord(b *testing.B) {
	c := NewCollector()
	e := Entry{Kind: KindRequest, Path: "GET /bench", StatusCode: 200, DurationMs: 1.5, Timestamp: time.Now()}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Record(e)
	}
}
