package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lucasaveiro/service-scheduler/config"
	otelMocks "github.com/lucasaveiro/service-scheduler/infras/otel/mocks"
	cacheMocks "github.com/lucasaveiro/service-scheduler/shared/cache/mocks"
	"github.com/lucasaveiro/service-scheduler/shared/constant"
	"github.com/lucasaveiro/service-scheduler/transport/http/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestRateLimit(t *testing.T) {
	tests := []struct {
		name          string
		enable        bool
		count         int64
		incrementErr  error
		wantStatus    int
		wantRemaining string
		wantIncrement bool
	}{
		{
			name:       "disabled",
			wantStatus: http.StatusOK,
		},
		{
			name:          "first request of the window",
			enable:        true,
			count:         1,
			wantStatus:    http.StatusOK,
			wantRemaining: "2",
			wantIncrement: true,
		},
		{
			name:          "last allowed request",
			enable:        true,
			count:         3,
			wantStatus:    http.StatusOK,
			wantRemaining: "0",
			wantIncrement: true,
		},
		{
			name:          "over the limit",
			enable:        true,
			count:         4,
			wantStatus:    http.StatusTooManyRequests,
			wantRemaining: "0",
			wantIncrement: true,
		},
		{
			name:          "counter store down lets the request through",
			enable:        true,
			incrementErr:  errors.New("connection refused"),
			wantStatus:    http.StatusOK,
			wantIncrement: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			cache := cacheMocks.NewMockRedisCache(ctrl)

			cfg := &config.Config{}
			cfg.App.RateLimiter.Enable = tt.enable
			cfg.App.RateLimiter.MaxRequests = 3
			cfg.App.RateLimiter.WindowSeconds = 60

			if tt.wantIncrement {
				cache.EXPECT().
					Increment(gomock.Any(), "limiter:203.0.113.7:booking-widget", 60).
					Return(tt.count, tt.incrementErr)
			}

			app := middleware.NewAppMiddleware(otelMocks.NewOtel(), cfg, cache)
			handler := app.RateLimit()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, "/v1/public/businesses/biz-1/slots", nil)
			req.RemoteAddr = "203.0.113.7:52114"
			req.Header.Set(constant.RequestHeaderUserAgent, "booking-widget")

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantRemaining, rec.Header().Get(constant.RequestHeaderRateLimitRemaining))

			if tt.wantStatus == http.StatusTooManyRequests {
				assert.Equal(t, "60", rec.Header().Get(constant.RequestHeaderRetryAfter))
			}
		})
	}
}

func TestTracing(t *testing.T) {
	recorder := otelMocks.NewRecorder()

	cfg := &config.Config{}
	cfg.App.Name = "scheduler"

	app := middleware.NewAppMiddleware(recorder, cfg, nil)

	r := chi.NewRouter()
	r.Use(app.Tracing)
	r.Get("/v1/bookings/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/bookings/bk-1", nil)
	req.RemoteAddr = "198.51.100.2:40000"

	r.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, []string{"GET /v1/bookings/bk-1"}, recorder.Spans())

	route, ok := recorder.Attribute("http.route")
	assert.True(t, ok)
	assert.Equal(t, "/v1/bookings/{id}", route)

	status, _ := recorder.Attribute("http.status_code")
	assert.Equal(t, http.StatusAccepted, status)

	source, _ := recorder.Attribute("http.source")
	assert.Equal(t, "198.51.100.2", source)
}
