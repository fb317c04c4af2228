package tracker

import "github.com/mauv0809/pool-tournament/internal/tournament"

// Service is the set of tournament operations exposed to the outside world.
// Day, round and matchup indices are 0-based.
type Service interface {
	Snapshot() State
	Stats() []tournament.PlayerStats
	Cumulative() []tournament.CumulativePoints
	Scoreboard(day int) ([]tournament.DailyScore, error)
	History() []tournament.SavedTournament

	SetScore(day, round, matchup, slot int, raw string) error
	SetWinner(day int, name string) error
	SetDate(day int, date string) error
	SubstitutePlayer(day int, original, substitute string) error
	SetMatchupPlayers(day, round, matchup int, players [2]string) error
	ShuffleRound(day, round int) error
	ToggleDayLock(day int) error

	SetTitle(title string) error
	UpdateRoster(names []string) error
	Regenerate() error
	Reset() error
	EndAndSave(dryRun bool) (tournament.SavedTournament, error)
	DeleteTournament(id string) error
}
