package middleware

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpMetricsOnce     = make(chan struct{}, 1)
)

func initHTTPMetricsOnce() {
	select {
	case httpMetricsOnce <- struct{}{}:
		httpRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fxlens_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		)
		httpRequestDuration = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fxlens_http_request_duration_seconds",
				Help:    "HTTP request latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		)
	default:
		// already initialized
	}
}

// Metrics records request counts and latency per route.
func Metrics() echo.MiddlewareFunc {
	initHTTPMetricsOnce()
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			// Route pattern, not raw URI, to keep cardinality bounded.
			path := c.Path()
			if path == "" {
				path = "unmatched"
			}
			method := c.Request().Method
			status := strconv.Itoa(c.Response().Status)

			httpRequestsTotal.WithLabelValues(method, path, status).Inc()
			httpRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())

			return err
		}
	}
}
