package http

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/pool-tournament/internal/pubsub"
)

// TournamentSavedHandler receives tournament-saved push deliveries and posts
// the announcement.
func (s *Server) TournamentSavedHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			log.Error("Failed to read request body", "error", err)
			http.Error(w, "Failed to read request body", http.StatusInternalServerError)
			return
		}
		log.Debug("Received tournament saved message", "body", string(bodyBytes))

		var pubsubMsg pubsub.PushRequest
		if err := json.Unmarshal(bodyBytes, &pubsubMsg); err != nil {
			log.Error("Failed to unmarshal wrapper JSON", "error", err)
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		rawData, err := base64.StdEncoding.DecodeString(pubsubMsg.Message.Data)
		if err != nil {
			log.Error("Failed to decode base64 data", "error", err)
			http.Error(w, "Invalid base64 data", http.StatusBadRequest)
			return
		}

		var event pubsub.TournamentSaved
		if err := s.decodeEvent(rawData, &event); err != nil {
			http.Error(w, "Invalid message payload", http.StatusBadRequest)
			return
		}

		if s.Notifier == nil {
			log.Warn("No notifier configured, dropping tournament saved event", "id", event.Tournament.ID)
			w.Write([]byte("OK"))
			return
		}
		if err := s.Notifier.SendTournamentSaved(event.Tournament, isDryRunFromContext(r)); err != nil {
			log.Error("Failed to notify tournament saved", "error", err, "id", event.Tournament.ID)
			http.Error(w, "Failed to notify tournament saved", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("OK"))
	}
}

func (s *Server) decodeEvent(data []byte, v any) error {
	if s.pubsub != nil {
		return s.pubsub.ProcessMessage(data, v)
	}
	return pubsub.Decode(data, v)
}
