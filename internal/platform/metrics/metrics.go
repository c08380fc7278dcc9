package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the counters for subscription lifecycle outcomes.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	subscriptions        *prometheus.CounterVec
	cancellations        *prometheus.CounterVec
	notificationFailures *prometheus.CounterVec
}

// New registers the lifecycle counters on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		subscriptions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fund_subscriptions_total",
			Help: "Subscribe attempts by result.",
		}, []string{"result"}),
		cancellations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fund_cancellations_total",
			Help: "Cancel attempts by result.",
		}, []string{"result"}),
		notificationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fund_notification_failures_total",
			Help: "Notification gateway failures by event.",
		}, []string{"event"}),
	}
	reg.MustRegister(m.subscriptions, m.cancellations, m.notificationFailures)
	return m
}

// ObserveSubscription counts a Subscribe outcome.
func (m *Metrics) ObserveSubscription(result string) {
	if m == nil {
		return
	}
	m.subscriptions.WithLabelValues(result).Inc()
}

// ObserveCancellation counts a Cancel outcome.
func (m *Metrics) ObserveCancellation(result string) {
	if m == nil {
		return
	}
	m.cancellations.WithLabelValues(result).Inc()
}

// ObserveNotificationFailure counts a swallowed gateway failure.
func (m *Metrics) ObserveNotificationFailure(event string) {
	if m == nil {
		return
	}
	m.notificationFailures.WithLabelValues(event).Inc()
}

// Handler exposes the registry in the Prometheus text format.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
