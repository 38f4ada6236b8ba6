package service

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsServiceCounters(t *testing.T) {
	m := NewMetricsService()

	m.ObserveSubmission(submissionAccepted)
	m.ObserveSubmission(submissionAccepted)
	m.ObserveSubmission(submissionInvalid)
	m.ObserveNotification(NotificationSkipped)
	m.ObserveEmailDelivery(2, 1)
	m.RecordCacheOperation(true, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.submissions.WithLabelValues(submissionAccepted)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.submissions.WithLabelValues(submissionInvalid)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.notifications.WithLabelValues(string(NotificationSkipped))))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.emails.WithLabelValues("sent")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.emails.WithLabelValues("failed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cacheLookups.WithLabelValues("hit")))
}

func TestMetricsServiceNilSafe(t *testing.T) {
	var m *MetricsService
	assert.NotPanics(t, func() {
		m.ObserveHTTPRequest("GET", "/", http.StatusOK, time.Millisecond)
		m.ObserveSubmission(submissionFailed)
		m.ObserveNotification(NotificationFailed)
		m.ObserveEmailDelivery(0, 1)
		m.ObserveDBQuery("insert_enrollment", time.Millisecond)
		m.RecordCacheOperation(false, time.Millisecond)
	})

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestMetricsServiceHandlerExposesRegistry(t *testing.T) {
	m := NewMetricsService()
	m.ObserveSubmission(submissionAccepted)

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), `enrollment_submissions_total{outcome="accepted"} 1`))
}
