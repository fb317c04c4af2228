package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
type Service struct {
	SchedulesGenerated  prometheus.Counter
	GenerationFailures  prometheus.Counter
	GenerationDuration  prometheus.Histogram
	Edits               *prometheus.CounterVec
	EditsRejected       *prometheus.CounterVec
	PersistenceFailures prometheus.Counter
	TournamentsSaved    prometheus.Counter
	SlackNotifSent      prometheus.Counter
	SlackNotifFailed    prometheus.Counter
	StartupTimeSeconds  prometheus.Gauge
}
