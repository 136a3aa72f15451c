// Package metrics exposes pipeline counters and histograms on a standalone
// Prometheus endpoint.
package metrics

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector implements the ingestion pipeline's MetricsCollector on top of
// a dedicated Prometheus registry.
type Collector struct {
	registry              *prometheus.Registry
	transactionsIngested  prometheus.Counter
	transactionsRejected  prometheus.Counter
	fallbackPredictions   prometheus.Counter
	alertsCreated         prometheus.Counter
	snapshotFailures      prometheus.Counter
	ingestionDuration     prometheus.Histogram
	riskScoreDistribution prometheus.Histogram
}

// NewCollector creates a collector with its own registry.
func NewCollector() *Collector {
	registry := prometheus.NewRegistry()

	return &Collector{
		registry: registry,
		transactionsIngested: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "transactions_ingested_total",
			Help: "Total number of ingested transactions",
		}),
		transactionsRejected: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "transactions_rejected_total",
			Help: "Total number of transactions rejected at validation",
		}),
		fallbackPredictions: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "fallback_predictions_total",
			Help: "Predictions served by the local scorer because the ML service was unavailable",
		}),
		alertsCreated: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "alerts_created_total",
			Help: "Total number of fraud alerts created",
		}),
		snapshotFailures: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "snapshot_failures_total",
			Help: "Failed persistence snapshot writes",
		}),
		ingestionDuration: promauto.With(registry).NewHistogram(prometheus.HistogramOpts{
			Name:    "ingestion_duration_seconds",
			Help:    "Time taken to ingest a transaction end to end",
			Buckets: prometheus.DefBuckets,
		}),
		riskScoreDistribution: promauto.With(registry).NewHistogram(prometheus.HistogramOpts{
			Name:    "transaction_risk_score_distribution",
			Help:    "Distribution of transaction risk scores",
			Buckets: []float64{0, 20, 40, 60, 80, 100},
		}),
	}
}

func (c *Collector) RecordIngestion(duration time.Duration, riskScore float64, fallback bool) {
	c.transactionsIngested.Inc()
	c.ingestionDuration.Observe(duration.Seconds())
	c.riskScoreDistribution.Observe(riskScore)
	if fallback {
		c.fallbackPredictions.Inc()
	}
}

func (c *Collector) RecordRejected() {
	c.transactionsRejected.Inc()
}

func (c *Collector) RecordAlertCreated() {
	c.alertsCreated.Inc()
}

func (c *Collector) RecordSnapshotFailure() {
	c.snapshotFailures.Inc()
}

// Handler returns the scrape handler for this collector's registry.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// StartServer serves /metrics on its own listener so scrapes never compete
// with API traffic.
func (c *Collector) StartServer(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())

	server := &http.Server{Addr: addr, Handler: mux}
	go func() {
		log.Printf("metrics server listening on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("metrics server failed: %v", err)
		}
	}()
	return server
}

// Shutdown stops the metrics server.
func (c *Collector) Shutdown(ctx context.Context, server *http.Server) error {
	return server.Shutdown(ctx)
}
