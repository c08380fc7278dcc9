package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveSubscription("success")
	m.ObserveSubscription("success")
	m.ObserveCancellation("already_cancelled")
	m.ObserveNotificationFailure("subscription.created")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.subscriptions.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cancellations.WithLabelValues("already_cancelled")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.notificationFailures.WithLabelValues("subscription.created")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveSubscription("success")
		m.ObserveCancellation("success")
		m.ObserveNotificationFailure("x")
	})
}

func TestHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg).ObserveSubscription("success")

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `fund_subscriptions_total{result="success"} 1`)
}
