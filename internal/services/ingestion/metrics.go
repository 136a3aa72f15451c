package ingestion

import "time"

// MetricsCollector receives pipeline observability events.
type MetricsCollector interface {
	RecordIngestion(duration time.Duration, riskScore float64, fallback bool)
	RecordRejected()
	RecordAlertCreated()
	RecordSnapshotFailure()
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (n *NoopMetricsCollector) RecordIngestion(time.Duration, float64, bool) {}
func (n *NoopMetricsCollector) RecordRejected()                              {}
func (n *NoopMetricsCollector) RecordAlertCreated()                          {}
func (n *NoopMetricsCollector) RecordSnapshotFailure()                       {}
