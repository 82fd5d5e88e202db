package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the order bot's prometheus collectors
type Metrics struct {
	gatherer prometheus.Gatherer

	Extractions        *prometheus.CounterVec
	Resolutions        *prometheus.CounterVec
	CatalogFetches     *prometheus.CounterVec
	ChatDurations      prometheus.Histogram
	ContractViolations *prometheus.CounterVec
}

// New registers the collectors on a fresh registry
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return NewWithRegistry(reg, reg)
}

// NewWithRegistry registers the collectors on reg and serves them from gatherer
func NewWithRegistry(reg prometheus.Registerer, gatherer prometheus.Gatherer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		gatherer: gatherer,

		Extractions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orderbot_extractions_total",
				Help: "Total number of action records emitted, by action",
			},
			[]string{"action"},
		),
		Resolutions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orderbot_resolutions_total",
				Help: "Total number of catalog resolutions, by winning tier",
			},
			[]string{"tier"},
		),
		CatalogFetches: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orderbot_catalog_fetches_total",
				Help: "Catalog snapshot requests, by result",
			},
			[]string{"result"},
		),
		ChatDurations: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "orderbot_chat_duration_seconds",
				Help:    "Duration of chat message handling in seconds",
				Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5, 10},
			},
		),
		ContractViolations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orderbot_action_contract_violations_total",
				Help: "Action records that failed output schema validation",
			},
			[]string{"action"},
		),
	}
}

func (m *Metrics) Extraction(action string) {
	m.Extractions.WithLabelValues(action).Inc()
}

func (m *Metrics) Resolution(tier string) {
	m.Resolutions.WithLabelValues(tier).Inc()
}

func (m *Metrics) CatalogFetch(result string) {
	m.CatalogFetches.WithLabelValues(result).Inc()
}

func (m *Metrics) ChatDuration(d time.Duration) {
	m.ChatDurations.Observe(d.Seconds())
}

func (m *Metrics) ContractViolation(action string) {
	m.ContractViolations.WithLabelValues(action).Inc()
}

// Handler serves the registry in the prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
