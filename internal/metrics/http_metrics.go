package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	requestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)

func init() {
	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestDuration)
}

// Middleware records a counter and duration histogram per request.
// The route pattern, not the raw path, is used as the label so gym
// and route slugs don't explode cardinality.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		path := c.Route().Path
		status := c.Response().StatusCode()
		if err != nil {
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			}
		}
		statusStr := strconv.Itoa(status)

		requestCounter.WithLabelValues(c.Method(), path, statusStr).Inc()
		requestDuration.WithLabelValues(c.Method(), path, statusStr).Observe(time.Since(start).Seconds())

		return err
	}
}

// Handler exposes the prometheus scrape endpoint.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
