package http

import (
	"net/http"

	"github.com/mauv0809/pool-tournament/internal/metrics"
	"github.com/mauv0809/pool-tournament/internal/notifier"
	"github.com/mauv0809/pool-tournament/internal/pubsub"
	"github.com/mauv0809/pool-tournament/internal/tracker"
)

// NewServer wires the API routes. notifier and pubsub may be nil.
func NewServer(tracker tracker.Service, metricsSvc metrics.Metrics, metricsHandler http.Handler, notifier notifier.Notifier, pubsub pubsub.PubSubClient) *Server {
	server := &Server{
		Tracker:        tracker,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Notifier:       notifier,
		Router:         http.NewServeMux(),
		pubsub:         pubsub,
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	s.Router.Handle("GET /metrics", s.MetricsHandler)

	s.handle("GET /health", s.HealthCheckHandler())

	s.handle("GET /tournament", s.GetTournamentHandler())
	s.handle("POST /tournament/generate", s.GenerateHandler())
	s.handle("POST /tournament/reset", s.ResetHandler())
	s.handle("POST /tournament/end", s.EndTournamentHandler())
	s.handle("PUT /tournament/title", s.SetTitleHandler())
	s.handle("PUT /tournament/players", s.SetPlayersHandler())

	s.handle("PUT /days/{day}/score", s.SetScoreHandler())
	s.handle("PUT /days/{day}/winner", s.SetWinnerHandler())
	s.handle("PUT /days/{day}/date", s.SetDateHandler())
	s.handle("POST /days/{day}/substitutions", s.SubstituteHandler())
	s.handle("PUT /days/{day}/rounds/{round}/matchups/{matchup}/players", s.SetMatchupPlayersHandler())
	s.handle("POST /days/{day}/rounds/{round}/shuffle", s.ShuffleRoundHandler())
	s.handle("POST /days/{day}/lock", s.ToggleLockHandler())
	s.handle("GET /days/{day}/scoreboard", s.ScoreboardHandler())

	s.handle("GET /stats", s.StatsHandler())
	s.handle("GET /stats/cumulative", s.CumulativeHandler())
	s.handle("GET /history", s.HistoryHandler())
	s.handle("DELETE /history/{id}", s.DeleteHistoryHandler())

	s.handle("POST /pubsub/tournament-saved", s.TournamentSavedHandler())
}

// handle registers h behind the common middleware stack.
func (s *Server) handle(pattern string, h http.Handler) {
	s.Router.Handle(pattern, Chain(h, requestLogMiddleware, paramsMiddleware))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
