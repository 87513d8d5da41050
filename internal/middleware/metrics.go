package middleware

import (
	"strconv"
	"time"

	"github.com/Olocraft/propady/prometheus"
	"github.com/labstack/echo/v4"
)

// MetricsMiddleware records request counts and latencies for the marketplace
// endpoints. The /metrics scrape endpoint itself is left uninstrumented so
// Prometheus polling doesn't inflate the series.
func MetricsMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if c.Path() == "/metrics" {
			return next(c)
		}

		start := time.Now()
		err := next(c)
		duration := time.Since(start).Seconds()

		// Label by route template, not the raw URL, so property and project
		// ids don't explode the cardinality
		method := c.Request().Method
		path := c.Path()
		status := strconv.Itoa(c.Response().Status)

		prometheus.HttpRequestsTotal.WithLabelValues(method, path, status).Inc()
		prometheus.HttpRequestDuration.WithLabelValues(method, path, status).Observe(duration)

		return err
	}
}
