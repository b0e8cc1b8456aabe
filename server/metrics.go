package server

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ideaful_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ideaful_http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)

	ActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ideaful_http_active_requests",
			Help: "Current number of active HTTP requests",
		},
	)

	AuthAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ideaful_auth_attempts_total",
			Help: "API token checks by outcome",
		},
		[]string{"result"}, // success, failure, missing, malformed
	)

	StatusToggles = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ideaful_status_toggles_total",
			Help: "Status enable/disable requests by result",
		},
		[]string{"result"},
	)

	AchievementsUnlocked = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ideaful_achievements_unlocked_total",
			Help: "Achievements unlocked while the server was running",
		},
		[]string{"id"},
	)

	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ideaful_errors_total",
			Help: "Error responses by kind",
		},
		[]string{"kind"}, // validation, not_found, conflict, internal
	)
)

// metricsMiddleware records request counts and latency per route
func metricsMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		ActiveRequests.Inc()
		defer ActiveRequests.Dec()

		err := next(c)
		if err != nil {
			c.Error(err)
		}

		// label by route template
		path := c.Path()
		if path == "" {
			path = "unmatched"
		}
		method := c.Request().Method

		HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(c.Response().Status)).Inc()
		HTTPRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
		return nil
	}
}
