// Package metrics collects and exposes Prometheus metrics for the auth core.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome label values shared by the counters.
const (
	OutcomeSuccess  = "success"
	OutcomeRejected = "rejected"
	OutcomeInvalid  = "invalid"
	OutcomeConflict = "conflict"
	OutcomeError    = "error"
)

// Recorder is what services depend on. Collector implements it; Nop ignores everything.
type Recorder interface {
	RecordLogin(outcome string)
	RecordTokenVerification(outcome string)
	RecordRegistration(outcome string)
	ObservePasswordHash(op string, d time.Duration)
}

// Collector records auth metrics into a Prometheus registry.
type Collector struct {
	loginAttempts      *prometheus.CounterVec
	tokenVerifications *prometheus.CounterVec
	registrations      *prometheus.CounterVec
	hashLatency        *prometheus.HistogramVec
}

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		loginAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "folks_login_attempts_total",
			Help: "Password logins by outcome.",
		}, []string{"outcome"}),
		tokenVerifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "folks_token_verifications_total",
			Help: "Bearer token checks by outcome.",
		}, []string{"outcome"}),
		registrations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "folks_registrations_total",
			Help: "Registration attempts by outcome.",
		}, []string{"outcome"}),
		hashLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "folks_password_hash_seconds",
			Help:    "Time spent in bcrypt, including the wait for a worker.",
			Buckets: []float64{.01, .025, .05, .1, .25, .5, 1, 2.5},
		}, []string{"op"}),
	}

	reg.MustRegister(
		c.loginAttempts,
		c.tokenVerifications,
		c.registrations,
		c.hashLatency,
	)

	return c
}

func (c *Collector) RecordLogin(outcome string) {
	c.loginAttempts.WithLabelValues(outcome).Inc()
}

func (c *Collector) RecordTokenVerification(outcome string) {
	c.tokenVerifications.WithLabelValues(outcome).Inc()
}

func (c *Collector) RecordRegistration(outcome string) {
	c.registrations.WithLabelValues(outcome).Inc()
}

func (c *Collector) ObservePasswordHash(op string, d time.Duration) {
	c.hashLatency.WithLabelValues(op).Observe(d.Seconds())
}

// NewRegistry returns a registry preloaded with the Go and process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return reg
}

// Handler returns the scrape handler for gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// Nop discards all measurements.
type Nop struct{}

func (Nop) RecordLogin(string) {}
func (Nop) RecordTokenVerification(string) {}
func (Nop) RecordRegistration(string) {}
func (Nop) ObservePasswordHash(string, time.Duration) {}
