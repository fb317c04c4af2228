package http

import (
	"encoding/json"
	"net/http"

	"github.com/mauv0809/pool-tournament/internal/metrics"
	"github.com/mauv0809/pool-tournament/internal/notifier"
	"github.com/mauv0809/pool-tournament/internal/pubsub"
	"github.com/mauv0809/pool-tournament/internal/tracker"
)

type Server struct {
	Tracker        tracker.Service
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Notifier       notifier.Notifier
	Router         *http.ServeMux
	pubsub         pubsub.PubSubClient
}

type errorResponse struct {
	Error string `json:"error"`
}

type scoreRequest struct {
	Round   int        `json:"round"`
	Matchup int        `json:"matchup"`
	Slot    int        `json:"slot"`
	Value   scoreValue `json:"value"`
}

// scoreValue accepts a JSON string, number or null. null clears the score.
type scoreValue string

func (v *scoreValue) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*v = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = scoreValue(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*v = scoreValue(n.String())
	return nil
}

type winnerRequest struct {
	Winner string `json:"winner"`
}

type dateRequest struct {
	Date string `json:"date"`
}

type substitutionRequest struct {
	Original   string `json:"original"`
	Substitute string `json:"substitute"`
}

type matchupPlayersRequest struct {
	Players [2]string `json:"players"`
}

type titleRequest struct {
	Title string `json:"title"`
}

type playersRequest struct {
	Players []string `json:"players"`
}
