// Package metrics exposes taxonomy gauges and HTTP request metrics for
// Prometheus.
package metrics

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"keywordapi/internal/models"
)

const namespace = "keywordapi"

// collectTimeout bounds the stats query run on each scrape.
const collectTimeout = 5 * time.Second

var (
	entitiesDesc = prometheus.NewDesc(
		namespace+"_entities",
		"Number of stored taxonomy rows by entity",
		[]string{"entity"},
		nil,
	)
	keywordsDesc = prometheus.NewDesc(
		namespace+"_keywords",
		"Number of keywords by status",
		[]string{"status"},
		nil,
	)
	keywordLinksDesc = prometheus.NewDesc(
		namespace+"_keyword_links",
		"Sum of keyword link counters by status and kind",
		[]string{"status", "kind"},
		nil,
	)
)

// StatsSource reports aggregate table counts.
type StatsSource interface {
	Stats(ctx context.Context) (*models.Stats, error)
}

// StatsCollector is a custom Prometheus collector that reads table counts
// from the database on each scrape.
type StatsCollector struct {
	src StatsSource
}

// NewStatsCollector creates a collector over src.
func NewStatsCollector(src StatsSource) *StatsCollector {
	return &StatsCollector{src: src}
}

// Describe sends the metric descriptors to the channel.
func (c *StatsCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- entitiesDesc
	ch <- keywordsDesc
	ch <- keywordLinksDesc
}

// Collect queries the stats source and emits gauges.
func (c *StatsCollector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), collectTimeout)
	defer cancel()

	stats, err := c.src.Stats(ctx)
	if err != nil {
		slog.Error("failed to collect taxonomy metrics", "error", err)
		return
	}

	gauge := func(desc *prometheus.Desc, v int64, labels ...string) {
		ch <- prometheus.MustNewConstMetric(desc, prometheus.GaugeValue, float64(v), labels...)
	}
	gauge(entitiesDesc, stats.Domains, "domain")
	gauge(entitiesDesc, stats.Niches, "niche")
	gauge(entitiesDesc, stats.Subniches, "subniche")
	for _, k := range stats.Keywords {
		gauge(keywordsDesc, k.Count, k.Status)
		gauge(keywordLinksDesc, k.LinksScanned, k.Status, "scanned")
		gauge(keywordLinksDesc, k.LinksNew, k.Status, "new")
		gauge(keywordLinksDesc, k.LinksDuplicate, k.Status, "duplicate")
	}
}

// Metrics owns a registry with the process, stats and HTTP collectors.
type Metrics struct {
	registry        *prometheus.Registry
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// New builds a registry. src may be nil to skip the taxonomy gauges.
func New(src StatsSource) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total HTTP requests by method, route and status code",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requestsTotal,
		m.requestDuration,
	)
	if src != nil {
		m.registry.MustRegister(NewStatsCollector(src))
	}
	return m
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Middleware records request counts and latency per matched route.
func (m *Metrics) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			}
		}

		route := c.Route().Path
		method := c.Method()
		m.requestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
		m.requestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
		return err
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}
