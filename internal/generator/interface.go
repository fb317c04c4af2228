package generator

import (
	"context"
	"errors"

	"github.com/mauv0809/pool-tournament/internal/tournament"
)

// ErrMalformedSchedule is returned when a generator produced something that is
// not a usable schedule.
var ErrMalformedSchedule = errors.New("generated schedule is malformed")

// Generator produces a fresh schedule for a roster. Every returned matchup has
// nil scores and every day has no winner, no date and is unlocked.
type Generator interface {
	Generate(ctx context.Context, players []string, numDays, numRounds int) (tournament.Schedule, error)
}
