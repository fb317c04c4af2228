package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/pool-tournament/internal/tournament"
	"github.com/mauv0809/pool-tournament/internal/tracker"
)

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

func (s *Server) GetTournamentHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, s.Tracker.Snapshot())
	}
}

func (s *Server) GenerateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Info("Received request to regenerate the schedule")
		if err := s.Tracker.Regenerate(); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusAccepted, s.Tracker.Snapshot())
	}
}

func (s *Server) ResetHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Info("Received request to reset the tournament")
		if err := s.Tracker.Reset(); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusAccepted, s.Tracker.Snapshot())
	}
}

func (s *Server) EndTournamentHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		isDryRun := isDryRunFromContext(r)
		saved, err := s.Tracker.EndAndSave(isDryRun)
		if err != nil {
			log.Error("Failed to end tournament", "request_id", requestIDFromContext(r), "error", err)
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, saved)
	}
}

func (s *Server) SetTitleHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req titleRequest
		if !decodeBody(w, r, &req) {
			return
		}
		if err := s.Tracker.SetTitle(req.Title); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, s.Tracker.Snapshot())
	}
}

func (s *Server) SetPlayersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req playersRequest
		if !decodeBody(w, r, &req) {
			return
		}
		if err := s.Tracker.UpdateRoster(req.Players); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, s.Tracker.Snapshot())
	}
}

func (s *Server) SetScoreHandler() http.HandlerFunc {
	return s.dayEdit(func(r *http.Request, day int) (int, error) {
		var req scoreRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return http.StatusBadRequest, err
		}
		return 0, s.Tracker.SetScore(day, req.Round, req.Matchup, req.Slot, string(req.Value))
	})
}

func (s *Server) SetWinnerHandler() http.HandlerFunc {
	return s.dayEdit(func(r *http.Request, day int) (int, error) {
		var req winnerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return http.StatusBadRequest, err
		}
		return 0, s.Tracker.SetWinner(day, req.Winner)
	})
}

func (s *Server) SetDateHandler() http.HandlerFunc {
	return s.dayEdit(func(r *http.Request, day int) (int, error) {
		var req dateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return http.StatusBadRequest, err
		}
		return 0, s.Tracker.SetDate(day, req.Date)
	})
}

func (s *Server) SubstituteHandler() http.HandlerFunc {
	return s.dayEdit(func(r *http.Request, day int) (int, error) {
		var req substitutionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return http.StatusBadRequest, err
		}
		return 0, s.Tracker.SubstitutePlayer(day, req.Original, req.Substitute)
	})
}

func (s *Server) SetMatchupPlayersHandler() http.HandlerFunc {
	return s.dayEdit(func(r *http.Request, day int) (int, error) {
		round, err := pathIndex(r, "round")
		if err != nil {
			return http.StatusBadRequest, err
		}
		matchup, err := pathIndex(r, "matchup")
		if err != nil {
			return http.StatusBadRequest, err
		}
		var req matchupPlayersRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return http.StatusBadRequest, err
		}
		return 0, s.Tracker.SetMatchupPlayers(day, round, matchup, req.Players)
	})
}

func (s *Server) ShuffleRoundHandler() http.HandlerFunc {
	return s.dayEdit(func(r *http.Request, day int) (int, error) {
		round, err := pathIndex(r, "round")
		if err != nil {
			return http.StatusBadRequest, err
		}
		return 0, s.Tracker.ShuffleRound(day, round)
	})
}

func (s *Server) ToggleLockHandler() http.HandlerFunc {
	return s.dayEdit(func(r *http.Request, day int) (int, error) {
		return 0, s.Tracker.ToggleDayLock(day)
	})
}

func (s *Server) ScoreboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		day, err := pathIndex(r, "day")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		board, err := s.Tracker.Scoreboard(day)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, board)
	}
}

func (s *Server) StatsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats := s.Tracker.Stats()
		switch r.URL.Query().Get("sort") {
		case "points":
			stats = tournament.RankByPoints(stats)
		case "wins":
			stats = tournament.RankByWins(stats)
		}
		writeJSON(w, http.StatusOK, stats)
	}
}

func (s *Server) CumulativeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, s.Tracker.Cumulative())
	}
}

func (s *Server) HistoryHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, s.Tracker.History())
	}
}

func (s *Server) DeleteHistoryHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		if err := s.Tracker.DeleteTournament(id); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// dayEdit parses the {day} path value, runs fn and answers with the new
// state. fn returns a non-zero status to override the error mapping.
func (s *Server) dayEdit(fn func(r *http.Request, day int) (int, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		day, err := pathIndex(r, "day")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		status, err := fn(r, day)
		if err != nil {
			if status != 0 {
				log.Debug("Bad request", "url", r.URL.String(), "error", err)
				writeJSON(w, status, errorResponse{Error: err.Error()})
				return
			}
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, s.Tracker.Snapshot())
	}
}

func pathIndex(r *http.Request, name string) (int, error) {
	n, err := strconv.Atoi(r.PathValue(name))
	if err != nil {
		return 0, fmt.Errorf("invalid %s index %q", name, r.PathValue(name))
	}
	return n, nil
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		log.Debug("Invalid JSON body", "error", err)
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid JSON"})
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to encode response", "error", err)
	}
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, tournament.ErrDayLocked):
		return http.StatusLocked
	case errors.Is(err, tournament.ErrInvalidScore),
		errors.Is(err, tournament.ErrDuplicatePlayers),
		errors.Is(err, tournament.ErrInvalidSubstitution),
		errors.Is(err, tracker.ErrInvalidRoster),
		errors.Is(err, tracker.ErrTitleRequired):
		return http.StatusBadRequest
	case errors.Is(err, tournament.ErrOutOfRange),
		errors.Is(err, tracker.ErrTournamentNotFound):
		return http.StatusNotFound
	case errors.Is(err, tracker.ErrNoSchedule),
		errors.Is(err, tracker.ErrGenerating):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Error("Request failed", "error", err)
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}
