package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		SchedulesGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pool_schedules_generated_total",
			Help: "The total number of schedules generated successfully.",
		}),
		GenerationFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pool_schedule_generation_failures_total",
			Help: "The total number of schedule generations that failed.",
		}),
		GenerationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "pool_schedule_generation_duration_seconds",
			Help:    "The duration of schedule generation calls.",
			Buckets: []float64{0.01, 0.1, 0.5, 1, 2.5, 5, 10, 20, 30, 60},
		}),
		Edits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pool_schedule_edits_total",
			Help: "The total number of applied schedule edits, by operation.",
		}, []string{"op"}),
		EditsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pool_schedule_edits_rejected_total",
			Help: "The total number of rejected schedule edits, by operation.",
		}, []string{"op"}),
		PersistenceFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pool_persistence_failures_total",
			Help: "The total number of failed writes to storage.",
		}),
		TournamentsSaved: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pool_tournaments_saved_total",
			Help: "The total number of tournaments archived to history.",
		}),
		SlackNotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pool_slack_notifications_sent_total",
			Help: "The total number of Slack notifications successfully sent.",
		}),
		SlackNotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pool_slack_notifications_failed_total",
			Help: "The total number of Slack notifications that failed to send.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "pool_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.SchedulesGenerated,
		s.GenerationFailures,
		s.GenerationDuration,
		s.Edits,
		s.EditsRejected,
		s.PersistenceFailures,
		s.TournamentsSaved,
		s.SlackNotifSent,
		s.SlackNotifFailed,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncSchedulesGenerated() {
	s.SchedulesGenerated.Inc()
}

func (s *Service) IncGenerationFailures() {
	s.GenerationFailures.Inc()
}

func (s *Service) ObserveGenerationDuration(duration float64) {
	s.GenerationDuration.Observe(duration)
}

func (s *Service) IncEdits(op string) {
	s.Edits.WithLabelValues(op).Inc()
}

func (s *Service) IncEditsRejected(op string) {
	s.EditsRejected.WithLabelValues(op).Inc()
}

func (s *Service) IncPersistenceFailures() {
	s.PersistenceFailures.Inc()
}

func (s *Service) IncTournamentsSaved() {
	s.TournamentsSaved.Inc()
}

func (s *Service) IncSlackNotifSent() {
	s.SlackNotifSent.Inc()
}

func (s *Service) IncSlackNotifFailed() {
	s.SlackNotifFailed.Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
