package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Result labels shared by the counters below.
const (
	ResultSuccess     = "success"
	ResultFailure     = "failure"
	ResultInvalid     = "invalid"
	ResultError       = "error"
	ResultEmpty       = "empty"
	ResultCorrupt     = "corrupt"
	ResultUnavailable = "unavailable"
)

// Metrics holds the Prometheus collectors for the portal core.
type Metrics struct {
	AuthAttempts       *prometheus.CounterVec
	AuthDuration       prometheus.Histogram
	ProfileSubmissions *prometheus.CounterVec
	SessionRestores    *prometheus.CounterVec
}

// New registers the collectors with reg. Pass prometheus.NewRegistry() in
// tests so repeated construction does not collide.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		AuthAttempts: f.NewCounterVec(prometheus.CounterOpts{
			Name: "portal_auth_attempts_total",
			Help: "Login attempts by result",
		}, []string{"result"}),
		AuthDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "portal_auth_duration_seconds",
			Help:    "Duration of credential validation including simulated latency",
			Buckets: []float64{0.005, 0.025, 0.1, 0.25, 0.5, 1, 2, 5},
		}),
		ProfileSubmissions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "portal_profile_submissions_total",
			Help: "First-login profile submissions by result",
		}, []string{"result"}),
		SessionRestores: f.NewCounterVec(prometheus.CounterOpts{
			Name: "portal_session_restores_total",
			Help: "Session restore outcomes on shell start",
		}, []string{"result"}),
	}
}

// ObserveAuth records the outcome and duration of a login attempt.
// Call with time.Now() at the start of the attempt.
func (m *Metrics) ObserveAuth(result string, start time.Time) {
	if m == nil {
		return
	}
	m.AuthAttempts.WithLabelValues(result).Inc()
	m.AuthDuration.Observe(time.Since(start).Seconds())
}

// IncrementProfileSubmission records a first-login submission outcome.
func (m *Metrics) IncrementProfileSubmission(result string) {
	if m == nil {
		return
	}
	m.ProfileSubmissions.WithLabelValues(result).Inc()
}

// IncrementSessionRestore records how a restore attempt ended.
func (m *Metrics) IncrementSessionRestore(result string) {
	if m == nil {
		return
	}
	m.SessionRestores.WithLabelValues(result).Inc()
}
