package perf

import (
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// EntryKind distinguishes request vs query entries.
type EntryKind uint8

const (
	KindRequest EntryKind = iota
	KindQuery
)

// Entry is a single timing record.
type Entry struct {
	Kind       EntryKind
	Path       string // Route pattern (e.g. "POST /contact-us/submit") or DB operation
	StatusCode int    // HTTP status (0 for queries)
	DurationMs float64
	Timestamp  time.Time
}

// Collector exports request, query and contact-form metrics to Prometheus.
// It owns its registry so tests and multiple servers in one process do not collide.
type Collector struct {
	registry *prometheus.Registry
	requests *prometheus.HistogramVec
	queries  *prometheus.HistogramVec
	contact  *prometheus.CounterVec
	count    int64 // total entries ever recorded
}

// NewCollector creates a collector with a fresh registry.
// PRE: none
// POST: Returns a ready-to-use collector with Go and process collectors registered
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()
	c := &Collector{
		registry: reg,
		requests: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "clubsite_http_request_duration_seconds",
			Help:    "Duration of HTTP requests by route and status",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "status"}),
		queries: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "clubsite_db_query_duration_seconds",
			Help:    "Duration of database calls by operation",
			Buckets: []float64{.0005, .001, .005, .01, .05, .1, .5},
		}, []string{"op"}),
		contact: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "clubsite_contact_submissions_total",
			Help: "Contact form submissions by final status",
		}, []string{"status"}),
	}
	reg.MustRegister(
		c.requests,
		c.queries,
		c.contact,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return c
}

// Record observes a timing entry.
// PRE: e is a valid Entry
// POST: Entry observed in the matching histogram
func (c *Collector) Record(e Entry) {
	seconds := e.DurationMs / 1000
	switch e.Kind {
	case KindRequest:
		c.requests.WithLabelValues(e.Path, strconv.Itoa(e.StatusCode)).Observe(seconds)
	case KindQuery:
		c.queries.WithLabelValues(e.Path).Observe(seconds)
	}
	atomic.AddInt64(&c.count, 1)
}

// RecordContact counts a contact submission by its final status.
// PRE: status is one of the contact status constants
// POST: counter incremented
func (c *Collector) RecordContact(status string) {
	c.contact.WithLabelValues(status).Inc()
}

// TotalRecorded returns the total number of timing entries ever recorded.
// PRE: none
// POST: returns count >= 0
func (c *Collector) TotalRecorded() int64 {
	return atomic.LoadInt64(&c.count)
}

// Handler serves the registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
