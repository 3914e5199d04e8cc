// Package metrics exposes business and HTTP counters to Prometheus.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"marketplace-wallet/internal/core/domain"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "wallet"

// Metrics implements ports.MetricsRecorder. A nil *Metrics records nothing.
type Metrics struct {
	registry *prometheus.Registry

	ledgerEntries   *prometheus.CounterVec
	withdrawals     *prometheus.CounterVec
	otpVerification *prometheus.CounterVec
	webhookEvents   *prometheus.CounterVec
	rateLimited     *prometheus.CounterVec
	riskDecisions   *prometheus.CounterVec
	providerCalls   *prometheus.CounterVec
	tasksEnqueued   *prometheus.CounterVec
	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
}

// New registers all collectors on a fresh registry, together with the Go
// runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		ledgerEntries: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "ledger",
				Name:      "entries_total",
				Help:      "Ledger entries appended, by direction.",
			},
			[]string{"direction"},
		),
		withdrawals: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "withdrawal",
				Name:      "transitions_total",
				Help:      "Withdrawal state transitions.",
			},
			[]string{"from", "to"},
		),
		otpVerification: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "otp",
				Name:      "verifications_total",
				Help:      "OTP verification attempts by result.",
			},
			[]string{"result"},
		),
		webhookEvents: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "webhook",
				Name:      "events_total",
				Help:      "Processor webhook events by type and outcome.",
			},
			[]string{"event", "outcome"},
		),
		rateLimited: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "security",
				Name:      "rate_limited_total",
				Help:      "Requests rejected by the rate limiter, by action.",
			},
			[]string{"action"},
		),
		riskDecisions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "security",
				Name:      "risk_decisions_total",
				Help:      "Risk policy decisions at or above threshold.",
			},
			[]string{"action", "level", "policy"},
		),
		providerCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "provider",
				Name:      "calls_total",
				Help:      "Payment processor calls by operation and outcome.",
			},
			[]string{"op", "outcome"},
		),
		tasksEnqueued: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "tasks",
				Name:      "enqueued_total",
				Help:      "Background tasks enqueued by type and outcome.",
			},
			[]string{"type", "outcome"},
		),
		httpRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "HTTP requests by method, route and status.",
			},
			[]string{"method", "route", "status"},
		),
		httpDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request latency.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) LedgerEntry(direction domain.EntryDirection) {
	if m == nil {
		return
	}
	m.ledgerEntries.WithLabelValues(string(direction)).Inc()
}

func (m *Metrics) WithdrawalTransition(from, to domain.WithdrawalStatus) {
	if m == nil {
		return
	}
	m.withdrawals.WithLabelValues(string(from), string(to)).Inc()
}

func (m *Metrics) OtpVerification(result string) {
	if m == nil {
		return
	}
	m.otpVerification.WithLabelValues(result).Inc()
}

func (m *Metrics) WebhookEvent(eventType, outcome string) {
	if m == nil {
		return
	}
	m.webhookEvents.WithLabelValues(eventType, outcome).Inc()
}

func (m *Metrics) RateLimited(action string) {
	if m == nil {
		return
	}
	m.rateLimited.WithLabelValues(action).Inc()
}

func (m *Metrics) RiskDecision(action string, level domain.RiskLevel, policy domain.RiskPolicy) {
	if m == nil {
		return
	}
	m.riskDecisions.WithLabelValues(action, string(level), string(policy)).Inc()
}

func (m *Metrics) ProviderCall(op, outcome string) {
	if m == nil {
		return
	}
	m.providerCalls.WithLabelValues(op, outcome).Inc()
}

func (m *Metrics) TaskEnqueued(taskType domain.TaskType, outcome string) {
	if m == nil {
		return
	}
	m.tasksEnqueued.WithLabelValues(string(taskType), outcome).Inc()
}

// ObserveHTTP records one served request. route is the matched pattern, not the raw path.
func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
