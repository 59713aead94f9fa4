// metrics — счётчики прогона скрапера в собственном prometheus.Registry.
// Скрапер — пакетная задача, поэтому метрики отправляются в Pushgateway
// по завершении прогона (Push).
package metrics

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

const namespace = "reverb_scraper"

// Metrics — набор метрик. Методы безопасны для nil-получателя.
type Metrics struct {
	registry *prometheus.Registry

	pagesFetched       *prometheus.CounterVec
	listingsScraped    *prometheus.CounterVec
	timestampsRepaired *prometheus.CounterVec
	failures           *prometheus.CounterVec
	dumpsWritten       *prometheus.CounterVec
	lastSuccess        *prometheus.GaugeVec
}

// New регистрирует метрики в новом реестре.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		pagesFetched: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pages_fetched_total",
			Help:      "Fetched category pages, including the discovery request.",
		}, []string{"category"}),
		listingsScraped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "listings_scraped_total",
			Help:      "Listings accepted after schema validation.",
		}, []string{"category"}),
		timestampsRepaired: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "published_at_repaired_total",
			Help:      "Listings whose published_at was replaced with the scrape time.",
		}, []string{"category"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "failures_total",
			Help:      "Aborted scrapes by error kind.",
		}, []string{"category", "kind"}),
		dumpsWritten: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dumps_written_total",
			Help:      "Dump files written to disk.",
		}, []string{"category"}),
		lastSuccess: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last successful scrape.",
		}, []string{"category"}),
	}

	m.registry.MustRegister(
		m.pagesFetched,
		m.listingsScraped,
		m.timestampsRepaired,
		m.failures,
		m.dumpsWritten,
		m.lastSuccess,
	)

	return m
}

// Registry возвращает реестр (для тестов и promhttp).
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) PageFetched(category string) {
	if m == nil {
		return
	}
	m.pagesFetched.WithLabelValues(category).Inc()
}

func (m *Metrics) ListingsScraped(category string, n int) {
	if m == nil {
		return
	}
	m.listingsScraped.WithLabelValues(category).Add(float64(n))
}

func (m *Metrics) TimestampsRepaired(category string, n int) {
	if m == nil || n == 0 {
		return
	}
	m.timestampsRepaired.WithLabelValues(category).Add(float64(n))
}

func (m *Metrics) Failure(category, kind string) {
	if m == nil {
		return
	}
	m.failures.WithLabelValues(category, kind).Inc()
}

func (m *Metrics) DumpWritten(category string) {
	if m == nil {
		return
	}
	m.dumpsWritten.WithLabelValues(category).Inc()
}

// Succeeded фиксирует время успешного прогона категории.
func (m *Metrics) Succeeded(category string) {
	if m == nil {
		return
	}
	m.lastSuccess.WithLabelValues(category).SetToCurrentTime()
}

// Push отправляет все метрики реестра в Pushgateway под именем job.
func (m *Metrics) Push(ctx context.Context, url, job string) error {
	const op = "metrics.Push"

	if m == nil {
		return nil
	}

	if err := push.New(url, job).Gatherer(m.registry).PushContext(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
