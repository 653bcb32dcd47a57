package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service is the Prometheus-backed Metrics implementation.
type Service struct {
	PlayersCreated       prometheus.Counter
	RandomizeRuns        prometheus.Counter
	MatchResultsRecorded prometheus.Counter
	NotifSent            prometheus.Counter
	NotifFailed          prometheus.Counter
	StartupTimeSeconds   prometheus.Gauge
}
