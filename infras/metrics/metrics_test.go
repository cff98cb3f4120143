package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/lucasaveiro/service-scheduler/infras/metrics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler_ExposesCounters(t *testing.T) {
	metrics.Register()
	metrics.Register()

	metrics.IncBookingCreated("created")
	metrics.IncStatusTransition("pending", "confirmed")
	metrics.IncSlotComputation(true)
	metrics.IncNotification("reminder", "sent")
	metrics.ObserveRequest(http.MethodGet, "/v1/health", "200", 0.01)

	rec := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	for _, name := range []string{
		"service_scheduler_bookings_created_total",
		"service_scheduler_booking_status_transitions_total",
		`service_scheduler_slot_computations_total{result="exhausted"}`,
		"service_scheduler_notifications_sent_total",
		"service_scheduler_http_request_duration_seconds",
	} {
		assert.True(t, strings.Contains(body, name), name)
	}
}
