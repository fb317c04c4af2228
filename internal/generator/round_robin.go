package generator

import (
	"context"
	"fmt"

	"github.com/mauv0809/pool-tournament/internal/tournament"
)

// RoundRobin builds schedules locally with the circle method: the first player
// stays put while the others rotate one seat per round. With n players every
// pairing is played once in n-1 consecutive rounds, after which the cycle
// repeats. An odd roster gets a bye seat and the player facing it sits out.
type RoundRobin struct{}

var _ Generator = RoundRobin{}

// NewRoundRobin returns a local round-robin generator.
func NewRoundRobin() RoundRobin {
	return RoundRobin{}
}

// Generate implements Generator.
func (RoundRobin) Generate(ctx context.Context, players []string, numDays, numRounds int) (tournament.Schedule, error) {
	if len(players) < 2 {
		return nil, fmt.Errorf("round robin needs at least 2 players, got %d", len(players))
	}
	if numDays < 1 || numRounds < 1 {
		return nil, fmt.Errorf("round robin needs at least one day and one round")
	}

	seats := append([]string(nil), players...)
	if len(seats)%2 == 1 {
		seats = append(seats, "")
	}
	n := len(seats)

	schedule := make(tournament.Schedule, 0, numDays)
	global := 0
	for d := 1; d <= numDays; d++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		day := tournament.Day{Day: d, Rounds: make([]tournament.Round, 0, numRounds)}
		for r := 1; r <= numRounds; r++ {
			day.Rounds = append(day.Rounds, tournament.Round{Round: r, Matchups: pairings(seats, global%(n-1))})
			global++
		}
		schedule = append(schedule, day)
	}
	return schedule, nil
}

// pairings returns the matchups of rotation k for an even number of seats.
func pairings(seats []string, k int) []tournament.Matchup {
	n := len(seats)
	rotating := seats[1:]
	at := func(i int) string {
		if i == 0 {
			return seats[0]
		}
		return rotating[(i-1+k)%(n-1)]
	}

	matchups := make([]tournament.Matchup, 0, n/2)
	for i := 0; i < n/2; i++ {
		a, b := at(i), at(n-1-i)
		if a == "" || b == "" {
			continue
		}
		matchups = append(matchups, tournament.Matchup{Players: [2]string{a, b}})
	}
	return matchups
}
