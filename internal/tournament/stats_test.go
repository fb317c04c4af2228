package tournament

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeasonTotals(t *testing.T) {
	t.Run("single matchup", func(t *testing.T) {
		s := Schedule{{Day: 1, Rounds: []Round{{Round: 1, Matchups: []Matchup{
			{Players: [2]string{"A", "B"}, Scores: [2]*int{intp(10), intp(7)}},
		}}}}}

		stats := SeasonTotals(s, []string{"A", "B"})
		assert.Equal(t, []PlayerStats{
			{Name: "A", TotalPoints: 10, TotalWins: 1},
			{Name: "B", TotalPoints: 7, TotalWins: 0},
		}, stats)
	})

	t.Run("substituted players and outsiders earn nothing", func(t *testing.T) {
		s := Schedule{
			{
				Day: 1,
				Rounds: []Round{{Round: 1, Matchups: []Matchup{
					{Players: [2]string{"A", "B"}, Scores: [2]*int{intp(12), intp(10)}},
					{Players: [2]string{"C", "Guest"}, Scores: [2]*int{intp(3), intp(10)}},
				}}},
				Substitutions: map[string]string{"B": "Sam"},
			},
			{
				Day: 2,
				Rounds: []Round{{Round: 1, Matchups: []Matchup{
					{Players: [2]string{"A", "B"}, Scores: [2]*int{intp(2), intp(11)}},
					{Players: [2]string{"C", "D"}, Scores: [2]*int{nil, intp(9)}},
				}}},
			},
		}

		stats := SeasonTotals(s, []string{"A", "B", "C", "D"})
		assert.Equal(t, []PlayerStats{
			{Name: "A", TotalPoints: 14, TotalWins: 1},
			{Name: "B", TotalPoints: 11, TotalWins: 1},
			{Name: "C", TotalPoints: 3, TotalWins: 0},
			{Name: "D", TotalPoints: 9, TotalWins: 0},
		}, stats)
	})

	t.Run("empty schedule yields zeroed roster", func(t *testing.T) {
		stats := SeasonTotals(nil, []string{"A"})
		assert.Equal(t, []PlayerStats{{Name: "A"}}, stats)
	})
}

func TestDropLowestTotals(t *testing.T) {
	day := func(n int, a, b int) Day {
		return Day{Day: n, Rounds: []Round{{Round: 1, Matchups: []Matchup{
			{Players: [2]string{"A", "B"}, Scores: [2]*int{intp(a), intp(b)}},
		}}}}
	}

	t.Run("drops the single lowest day", func(t *testing.T) {
		s := Schedule{day(1, 10, 1), day(2, 20, 1), day(3, 5, 1)}
		rows := DropLowestTotals([]string{"A", "B"}, s)
		require.Len(t, rows, 2)
		assert.Equal(t, CumulativePoints{Name: "A", DailyScores: []int{10, 20, 5}, Total: 30, LowestScoreIndex: 2}, rows[0])
		assert.Equal(t, CumulativePoints{Name: "B", DailyScores: []int{1, 1, 1}, Total: 2, LowestScoreIndex: 0}, rows[1], "ties drop the first index")
	})

	t.Run("ranks by adjusted total", func(t *testing.T) {
		s := Schedule{day(1, 1, 9), day(2, 1, 9)}
		rows := DropLowestTotals([]string{"A", "B"}, s)
		assert.Equal(t, "B", rows[0].Name)
		assert.Equal(t, 9, rows[0].Total)
	})

	t.Run("days without scores count as zero", func(t *testing.T) {
		s := Schedule{day(1, 4, 4), {Day: 2}}
		rows := DropLowestTotals([]string{"A"}, s)
		assert.Equal(t, []int{4, 0}, rows[0].DailyScores)
		assert.Equal(t, 4, rows[0].Total)
		assert.Equal(t, 1, rows[0].LowestScoreIndex)
	})

	t.Run("substituted players are absent for the day", func(t *testing.T) {
		d := day(1, 7, 7)
		d.Substitutions = map[string]string{"A": "Z"}
		rows := DropLowestTotals([]string{"A", "B"}, Schedule{d, day(2, 3, 3)})
		byName := map[string]CumulativePoints{}
		for _, r := range rows {
			byName[r.Name] = r
		}
		assert.Equal(t, []int{0, 3}, byName["A"].DailyScores)
		assert.Equal(t, []int{7, 3}, byName["B"].DailyScores)
	})

	t.Run("no days", func(t *testing.T) {
		rows := DropLowestTotals([]string{"A"}, Schedule{})
		assert.Equal(t, []CumulativePoints{{Name: "A", DailyScores: []int{}, Total: 0, LowestScoreIndex: -1}}, rows)
	})
}

func TestDailyScoreboard(t *testing.T) {
	d := Day{
		Day: 1,
		Rounds: []Round{
			{Round: 1, Matchups: []Matchup{
				{Players: [2]string{"A", "B"}, Scores: [2]*int{intp(10), intp(4)}},
				{Players: [2]string{"C", "D"}, Scores: [2]*int{intp(6), nil}},
			}},
			{Round: 2, Matchups: []Matchup{
				{Players: [2]string{"A", "C"}, Scores: [2]*int{intp(3), intp(10)}},
				{Players: [2]string{"B", "D"}, Scores: [2]*int{intp(10), intp(8)}},
			}},
		},
		Substitutions: map[string]string{"B": "Sam"},
	}

	board := DailyScoreboard(d)
	assert.Equal(t, []DailyScore{
		{Name: "C", Points: 16},
		{Name: "Sam (Sub)", Points: 14},
		{Name: "A", Points: 13},
		{Name: "D", Points: 8},
	}, board)
}

func TestDayParticipants(t *testing.T) {
	d := Day{
		Rounds: []Round{{Matchups: []Matchup{
			{Players: [2]string{"B", "A"}},
			{Players: [2]string{"D", "C"}},
		}}},
		Substitutions: map[string]string{"C": "Zoe"},
	}
	assert.Equal(t, []string{"A", "B", "D", "Zoe"}, d.Participants())
	assert.Equal(t, []string{"A", "B", "D"}, d.SubstitutablePlayers())
}

func TestRankings(t *testing.T) {
	stats := []PlayerStats{
		{Name: "A", TotalPoints: 5, TotalWins: 2},
		{Name: "B", TotalPoints: 9, TotalWins: 0},
		{Name: "C", TotalPoints: 7, TotalWins: 1},
	}
	byPoints := RankByPoints(stats)
	byWins := RankByWins(stats)

	assert.Equal(t, []string{"B", "C", "A"}, names(byPoints))
	assert.Equal(t, []string{"A", "C", "B"}, names(byWins))
	assert.Equal(t, "A", stats[0].Name, "input must not be reordered")
}

func names(stats []PlayerStats) []string {
	out := make([]string, len(stats))
	for i, s := range stats {
		out[i] = s.Name
	}
	return out
}

func TestValidateRoster(t *testing.T) {
	roster, err := ValidateRoster(append(DefaultRoster(7), "  Alice "))
	require.NoError(t, err)
	assert.Len(t, roster, 8)
	assert.Equal(t, "Alice", roster[7])

	_, err = ValidateRoster(DefaultRoster(9))
	assert.ErrorIs(t, err, ErrInvalidRoster)

	dup := DefaultRoster(10)
	dup[3] = "Player 1"
	_, err = ValidateRoster(dup)
	assert.ErrorIs(t, err, ErrInvalidRoster)

	blank := DefaultRoster(12)
	blank[11] = " "
	_, err = ValidateRoster(blank)
	assert.ErrorIs(t, err, ErrInvalidRoster)

	assert.Equal(t, 4, RoundsPerDay(8))
	assert.Equal(t, 3, RoundsPerDay(10))
	assert.Equal(t, 3, RoundsPerDay(12))
	assert.Equal(t, map[string]string{"Player 2": "Bob"}, RenameMap([]string{"Player 1", "Player 2"}, []string{"Player 1", "Bob"}))
}
