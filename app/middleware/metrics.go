package middleware

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "masjidapp_http_requests_total",
			Help: "HTTP requests served, partitioned by feature, route and outcome",
		},
		[]string{"feature", "method", "route", "outcome"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "masjidapp_http_request_duration_seconds",
			Help:    "HTTP request latencies in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"feature", "method"},
	)

	httpInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "masjidapp_http_inflight_requests",
			Help: "HTTP requests currently being served",
		},
	)
)

// Metrics records request counts and latencies. The route label is the
// matched template so path parameters such as digests and ids stay out of
// the label set.
func Metrics() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()
		httpInFlight.Inc()
		defer httpInFlight.Dec()

		err := c.Next()

		route := "unmatched"
		if r := c.Route(); r != nil && r.Path != "" && r.Path != "/" {
			route = r.Path
		}
		feature := featureOf(route)

		httpRequestsTotal.WithLabelValues(feature, c.Method(), route, outcomeOf(c.Response().StatusCode())).Inc()
		httpRequestDuration.WithLabelValues(feature, c.Method()).Observe(time.Since(start).Seconds())

		return err
	}
}

// featureOf maps /api/v1/[admin/]<feature>/... onto <feature>.
func featureOf(route string) string {
	parts := strings.Split(strings.Trim(route, "/"), "/")
	if len(parts) < 3 || parts[0] != "api" {
		return "other"
	}
	parts = parts[2:]
	if parts[0] == "admin" && len(parts) > 1 {
		parts = parts[1:]
	}
	return parts[0]
}

func outcomeOf(status int) string {
	switch {
	case status == fiber.StatusNotModified:
		return "not_modified"
	case status == fiber.StatusNoContent:
		return "empty"
	case status >= fiber.StatusInternalServerError:
		return "server_error"
	case status >= fiber.StatusBadRequest:
		return "client_error"
	default:
		return "ok"
	}
}
