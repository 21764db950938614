// Package metrics defines the Prometheus collectors the server exports on
// /metrics.
//
// Collectors live on a private registry rather than the global default so
// tests can build as many Metrics as they like without duplicate
// registration panics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "applyhelp"

type Metrics struct {
	registry *prometheus.Registry

	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
	RateLimited  *prometheus.CounterVec

	// business events
	Registrations       prometheus.Counter
	Logins              *prometheus.CounterVec
	ApplicationsCreated prometheus.Counter
	StatusChanges       *prometheus.CounterVec
	EmailsLogged        prometheus.Counter
	GuideViews          prometheus.Counter
	HelpfulVotes        prometheus.Counter
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route pattern and status code.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route pattern.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		RateLimited: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limited_total",
			Help:      "Requests rejected by the rate limiter, by route.",
		}, []string{"route"}),
		Registrations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "registrations_total",
			Help:      "Accounts created.",
		}),
		Logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "logins_total",
			Help:      "Successful logins by method (password, github).",
		}, []string{"method"}),
		ApplicationsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "applications_created_total",
			Help:      "Application trackers created.",
		}),
		StatusChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "application_status_changes_total",
			Help:      "Tracker status changes by target status.",
		}, []string{"status"}),
		EmailsLogged: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "emails_logged_total",
			Help:      "Email log entries recorded.",
		}),
		GuideViews: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "guide_views_total",
			Help:      "Guide detail views.",
		}),
		HelpfulVotes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "guide_helpful_votes_total",
			Help:      "Helpful votes cast on guides.",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HTTPRequests, m.HTTPDuration, m.RateLimited,
		m.Registrations, m.Logins, m.ApplicationsCreated, m.StatusChanges,
		m.EmailsLogged, m.GuideViews, m.HelpfulVotes,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// The helpers below are nil-safe so services can run without metrics.

func (m *Metrics) Registered() {
	if m != nil {
		m.Registrations.Inc()
	}
}

func (m *Metrics) LoggedIn(method string) {
	if m != nil {
		m.Logins.WithLabelValues(method).Inc()
	}
}

func (m *Metrics) ApplicationCreated() {
	if m != nil {
		m.ApplicationsCreated.Inc()
	}
}

func (m *Metrics) StatusChanged(status string) {
	if m != nil {
		m.StatusChanges.WithLabelValues(status).Inc()
	}
}

func (m *Metrics) EmailLogged() {
	if m != nil {
		m.EmailsLogged.Inc()
	}
}

func (m *Metrics) GuideViewed() {
	if m != nil {
		m.GuideViews.Inc()
	}
}

func (m *Metrics) HelpfulVoted() {
	if m != nil {
		m.HelpfulVotes.Inc()
	}
}
