package tournament

const (
	// WinThreshold is the race-to-10 rule: a slot score of 10 or more counts as a win.
	WinThreshold = 10
	// DaysPerTournament is the fixed number of game days in a season.
	DaysPerTournament = 6
	// DefaultTitle is the title a fresh tournament starts with.
	DefaultTitle = "Tournament Schedule"
	// DefaultPlayerCount is the roster size used on first start and after a reset.
	DefaultPlayerCount = 12

	subSuffix = " (Sub)"
)

// Matchup is a single 1-on-1 game. Scores[i] belongs to Players[i].
type Matchup struct {
	Players [2]string `json:"players" msgpack:"players"`
	Scores  [2]*int   `json:"scores" msgpack:"scores"`
}

// Round is a set of matchups played in parallel by every player of the day.
type Round struct {
	Round    int       `json:"round" msgpack:"round"`
	Matchups []Matchup `json:"matchups" msgpack:"matchups"`
}

// Day is one full game day with its own lock, date, winner and substitutions.
type Day struct {
	Day           int               `json:"day" msgpack:"day"`
	Rounds        []Round           `json:"rounds" msgpack:"rounds"`
	Winner        *string           `json:"winner" msgpack:"winner"`
	Date          *string           `json:"date" msgpack:"date"`
	Substitutions map[string]string `json:"substitutions,omitempty" msgpack:"substitutions,omitempty"`
	IsLocked      bool              `json:"isLocked" msgpack:"isLocked"`
}

// Schedule is the ordered list of days. Day 1 is always at index 0.
type Schedule []Day

// PlayerStats is the season-to-date record of a roster player.
type PlayerStats struct {
	Name        string `json:"name" msgpack:"name"`
	TotalPoints int    `json:"totalPoints" msgpack:"totalPoints"`
	TotalWins   int    `json:"totalWins" msgpack:"totalWins"`
}

// CumulativePoints is a row of the drop-lowest-day table.
type CumulativePoints struct {
	Name             string `json:"name"`
	DailyScores      []int  `json:"dailyScores"`
	Total            int    `json:"total"`
	LowestScoreIndex int    `json:"lowestScoreIndex"`
}

// DailyScore is a row of a single day's scoreboard. Name carries the " (Sub)"
// suffix when the points were earned by a substitute.
type DailyScore struct {
	Name   string `json:"name"`
	Points int    `json:"points"`
}

// SavedTournament is an archived season. It is never changed after creation.
type SavedTournament struct {
	ID        string        `json:"id" msgpack:"id"`
	Title     string        `json:"title" msgpack:"title"`
	SavedDate string        `json:"savedDate" msgpack:"savedDate"`
	Stats     []PlayerStats `json:"stats" msgpack:"stats"`
}
