package tracker

import (
	"errors"

	"github.com/mauv0809/pool-tournament/internal/history"
	"github.com/mauv0809/pool-tournament/internal/tournament"
)

var (
	ErrNoSchedule         = tournament.ErrNoSchedule
	ErrInvalidRoster      = tournament.ErrInvalidRoster
	ErrTitleRequired      = errors.New("tournament title is required")
	ErrPersistence        = errors.New("failed to persist tournament state")
	ErrTournamentNotFound = history.ErrNotFound
	ErrGenerating         = errors.New("schedule generation in progress")
)

// generationFailedMessage is reported in State.Error when a generation fails.
const generationFailedMessage = "Failed to generate a valid schedule. The model might have returned an unexpected format. Please try again."

// State is a read-only copy of the current tournament.
type State struct {
	Players  []string            `json:"players"`
	Schedule tournament.Schedule `json:"schedule"`
	Title    string              `json:"title"`
	Loading  bool                `json:"loading"`
	Error    string              `json:"error,omitempty"`
}
