package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncSchedulesGenerated()
	IncGenerationFailures()
	ObserveGenerationDuration(duration float64)
	IncEdits(op string)
	IncEditsRejected(op string)
	IncPersistenceFailures()
	IncTournamentsSaved()
	IncSlackNotifSent()
	IncSlackNotifFailed()
	SetStartupTime(duration float64)
}
