package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// CatalogMetrics holds the API and catalog counters.
type CatalogMetrics struct {
	HTTPRequestsTotal   prometheus.CounterVec
	HTTPRequestDuration prometheus.HistogramVec

	SearchesTotal         prometheus.CounterVec
	ShopsRegisteredTotal  prometheus.Counter
	ReviewsSubmittedTotal prometheus.Counter
}

func NewCatalogMetrics() *CatalogMetrics {
	return &CatalogMetrics{
		HTTPRequestsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total HTTP requests served",
			},
			[]string{"method", "path", "status"},
		),

		HTTPRequestDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.ExponentialBuckets(0.01, 2, 10), // 10ms, 20ms, 40ms...
			},
			[]string{"method", "path"},
		),

		SearchesTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalog_searches_total",
				Help: "Catalog searches by sort order",
			},
			[]string{"sort"},
		),

		ShopsRegisteredTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "catalog_shops_registered_total",
				Help: "Shops registered since start",
			},
		),

		ReviewsSubmittedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "catalog_reviews_submitted_total",
				Help: "Reviews submitted since start",
			},
		),
	}
}

// RecordSearch counts one search for the given sort order.
func (m *CatalogMetrics) RecordSearch(sort string) {
	m.SearchesTotal.WithLabelValues(sort).Inc()
}

// Middleware counts and times every request. The route template is used
// as the path label so ids do not blow up cardinality.
func (m *CatalogMetrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		m.HTTPRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}
