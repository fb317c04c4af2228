package tournament

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intp(n int) *int { return &n }

func strp(s string) *string { return &s }

// newTestSchedule builds two days of two rounds with two matchups each.
func newTestSchedule() Schedule {
	day := func(n int) Day {
		return Day{
			Day: n,
			Rounds: []Round{
				{Round: 1, Matchups: []Matchup{
					{Players: [2]string{"A", "B"}},
					{Players: [2]string{"C", "D"}},
				}},
				{Round: 2, Matchups: []Matchup{
					{Players: [2]string{"A", "C"}},
					{Players: [2]string{"B", "D"}},
				}},
			},
		}
	}
	return Schedule{day(1), day(2)}
}

func TestSetScore(t *testing.T) {
	s := newTestSchedule()

	t.Run("stores a valid score without touching the input", func(t *testing.T) {
		next, err := SetScore(s, 0, 0, 1, 1, "7")
		require.NoError(t, err)
		require.NotNil(t, next[0].Rounds[0].Matchups[1].Scores[1])
		assert.Equal(t, 7, *next[0].Rounds[0].Matchups[1].Scores[1])
		assert.Nil(t, s[0].Rounds[0].Matchups[1].Scores[1], "previous schedule must not change")
	})

	t.Run("empty input clears the score", func(t *testing.T) {
		withScore, err := SetScore(s, 0, 0, 0, 0, "10")
		require.NoError(t, err)
		cleared, err := SetScore(withScore, 0, 0, 0, 0, "")
		require.NoError(t, err)
		assert.Nil(t, cleared[0].Rounds[0].Matchups[0].Scores[0])
	})

	t.Run("spaces around digits are allowed", func(t *testing.T) {
		next, err := SetScore(s, 0, 0, 0, 0, " 7 ")
		require.NoError(t, err)
		assert.Equal(t, 7, *next[0].Rounds[0].Matchups[0].Scores[0])
	})

	for _, raw := range []string{"-1", "abc", "1.5", "3x", "   "} {
		t.Run("rejects "+raw, func(t *testing.T) {
			withScore, err := SetScore(s, 0, 0, 0, 0, "4")
			require.NoError(t, err)
			next, err := SetScore(withScore, 0, 0, 0, 0, raw)
			assert.ErrorIs(t, err, ErrInvalidScore)
			assert.Equal(t, 4, *next[0].Rounds[0].Matchups[0].Scores[0], "prior value must be kept")
		})
	}

	t.Run("rejects out of range indices", func(t *testing.T) {
		_, err := SetScore(s, 5, 0, 0, 0, "1")
		assert.ErrorIs(t, err, ErrOutOfRange)
		_, err = SetScore(s, 0, 0, 9, 0, "1")
		assert.ErrorIs(t, err, ErrOutOfRange)
		_, err = SetScore(s, 0, 0, 0, 2, "1")
		assert.ErrorIs(t, err, ErrOutOfRange)
	})

	t.Run("no schedule is a no-op", func(t *testing.T) {
		for _, raw := range []string{"1", "abc", ""} {
			next, err := SetScore(nil, 0, 0, 0, 0, raw)
			assert.ErrorIs(t, err, ErrNoSchedule, raw)
			assert.Nil(t, next)
		}
	})

	t.Run("index checks come before parsing", func(t *testing.T) {
		_, err := SetScore(s, 7, 0, 0, 0, "abc")
		assert.ErrorIs(t, err, ErrOutOfRange)
	})
}

func TestWinnerAndDate(t *testing.T) {
	s := newTestSchedule()

	next, err := SetWinner(s, 1, "  A ")
	require.NoError(t, err)
	require.NotNil(t, next[1].Winner)
	assert.Equal(t, "A", *next[1].Winner)

	next, err = SetWinner(next, 1, "")
	require.NoError(t, err)
	assert.Nil(t, next[1].Winner)

	next, err = SetDate(s, 0, " July 4th ")
	require.NoError(t, err)
	assert.Equal(t, "July 4th", *next[0].Date)

	next, err = SetDate(next, 0, "   ")
	require.NoError(t, err)
	assert.Nil(t, next[0].Date)
}

func TestLockedDayRejectsEdits(t *testing.T) {
	s, err := ToggleDayLock(newTestSchedule(), 0)
	require.NoError(t, err)

	edits := map[string]func(Schedule) (Schedule, error){
		"score":   func(s Schedule) (Schedule, error) { return SetScore(s, 0, 0, 0, 0, "3") },
		"winner":  func(s Schedule) (Schedule, error) { return SetWinner(s, 0, "A") },
		"date":    func(s Schedule) (Schedule, error) { return SetDate(s, 0, "today") },
		"sub":     func(s Schedule) (Schedule, error) { return SubstitutePlayer(s, 0, "A", "Z") },
		"players": func(s Schedule) (Schedule, error) { return SetMatchupPlayers(s, 0, 0, 0, [2]string{"A", "C"}) },
		"shuffle": func(s Schedule) (Schedule, error) { return ShuffleRound(s, 0, 0, rand.New(rand.NewPCG(1, 2))) },
	}
	for name, edit := range edits {
		t.Run(name, func(t *testing.T) {
			next, err := edit(s)
			assert.ErrorIs(t, err, ErrDayLocked)
			assert.Equal(t, s, next)
		})
	}

	t.Run("other days stay editable", func(t *testing.T) {
		_, err := SetScore(s, 1, 0, 0, 0, "3")
		assert.NoError(t, err)
	})
}

func TestToggleDayLockTwiceRestoresDay(t *testing.T) {
	s, err := SetWinner(newTestSchedule(), 0, "B")
	require.NoError(t, err)

	locked, err := ToggleDayLock(s, 0)
	require.NoError(t, err)
	assert.True(t, locked[0].IsLocked)

	unlocked, err := ToggleDayLock(locked, 0)
	require.NoError(t, err)
	assert.Equal(t, s, unlocked)
}

func TestSubstitutePlayer(t *testing.T) {
	s := newTestSchedule()
	var err error
	s, err = SetScore(s, 0, 0, 0, 0, "10") // A vs B
	require.NoError(t, err)
	s, err = SetScore(s, 0, 0, 0, 1, "6")
	require.NoError(t, err)
	s, err = SetScore(s, 0, 1, 0, 0, "8") // A vs C
	require.NoError(t, err)
	s, err = SetScore(s, 1, 0, 0, 0, "9") // day 2, A vs B
	require.NoError(t, err)

	next, err := SubstitutePlayer(s, 0, "A", "Zed")
	require.NoError(t, err)

	day := next[0]
	assert.Equal(t, map[string]string{"A": "Zed"}, day.Substitutions)
	assert.Nil(t, day.Rounds[0].Matchups[0].Scores[0], "A's score in round 1 should be cleared")
	assert.Nil(t, day.Rounds[1].Matchups[0].Scores[0], "A's score in round 2 should be cleared")
	assert.Equal(t, 6, *day.Rounds[0].Matchups[0].Scores[1], "opponent score is kept")
	assert.Equal(t, "A", day.Rounds[0].Matchups[0].Players[0], "slot keeps the original player")
	assert.Equal(t, 9, *next[1].Rounds[0].Matchups[0].Scores[0], "other days are untouched")
	assert.Nil(t, s[0].Substitutions, "previous schedule must not change")

	again, err := SubstitutePlayer(next, 0, "A", "Yan")
	require.NoError(t, err)
	assert.Equal(t, "Yan", again[0].Substitutions["A"])

	_, err = SubstitutePlayer(s, 0, "A", "A")
	assert.ErrorIs(t, err, ErrInvalidSubstitution)
	_, err = SubstitutePlayer(s, 0, "", "Zed")
	assert.ErrorIs(t, err, ErrInvalidSubstitution)
}

func TestSetMatchupPlayers(t *testing.T) {
	s, err := SetScore(newTestSchedule(), 0, 0, 0, 0, "5")
	require.NoError(t, err)
	s, err = SetScore(s, 0, 0, 0, 1, "10")
	require.NoError(t, err)

	next, err := SetMatchupPlayers(s, 0, 0, 0, [2]string{"A", "D"})
	require.NoError(t, err)
	m := next[0].Rounds[0].Matchups[0]
	assert.Equal(t, [2]string{"A", "D"}, m.Players)
	assert.Equal(t, [2]*int{nil, nil}, m.Scores)

	same, err := SetMatchupPlayers(s, 0, 0, 0, [2]string{"C", "C"})
	assert.ErrorIs(t, err, ErrDuplicatePlayers)
	assert.Equal(t, s, same)
}

func TestShuffleRound(t *testing.T) {
	s := newTestSchedule()
	s[0].Rounds[0].Matchups = append(s[0].Rounds[0].Matchups,
		Matchup{Players: [2]string{"E", "F"}, Scores: [2]*int{intp(3), nil}},
		Matchup{Players: [2]string{"G", "H"}},
	)
	before := s.Clone()

	next, err := ShuffleRound(s, 0, 0, rand.New(rand.NewPCG(42, 7)))
	require.NoError(t, err)

	assert.ElementsMatch(t, before[0].Rounds[0].Matchups, next[0].Rounds[0].Matchups)
	assert.Equal(t, before[0].Rounds[1], next[0].Rounds[1], "other rounds keep their order")
	assert.Equal(t, before, s, "previous schedule must not change")

	_, err = ShuffleRound(s, 0, 4, rand.New(rand.NewPCG(1, 1)))
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestRenamePlayers(t *testing.T) {
	s := Schedule{
		{
			Day:    1,
			Winner: strp("Player 1"),
			Rounds: []Round{{Round: 1, Matchups: []Matchup{
				{Players: [2]string{"Player 1", "Player 2"}, Scores: [2]*int{intp(10), intp(4)}},
				{Players: [2]string{"Player 3", "Player 11"}},
			}}},
			Substitutions: map[string]string{"Player 3": "Player 1"},
		},
		{
			Day:    2,
			Winner: strp("Player 2"),
			Rounds: []Round{{Round: 1, Matchups: []Matchup{
				{Players: [2]string{"Player 2", "Player 1"}},
			}}},
			Substitutions: map[string]string{"Player 1": "Sam"},
		},
	}

	next := RenamePlayers(s, map[string]string{"Player 1": "Alice"})

	assert.Equal(t, "Alice", *next[0].Winner)
	assert.Equal(t, [2]string{"Alice", "Player 2"}, next[0].Rounds[0].Matchups[0].Players)
	assert.Equal(t, [2]string{"Player 3", "Player 11"}, next[0].Rounds[0].Matchups[1].Players, "prefix matches are not renamed")
	assert.Equal(t, map[string]string{"Player 3": "Player 1"}, next[0].Substitutions, "substitute names are left as entered")
	assert.Equal(t, map[string]string{"Alice": "Sam"}, next[1].Substitutions, "substituted players are renamed")
	assert.Equal(t, "Player 2", *next[1].Winner)
	assert.Equal(t, [2]string{"Player 2", "Alice"}, next[1].Rounds[0].Matchups[0].Players)
	assert.Equal(t, 10, *next[0].Rounds[0].Matchups[0].Scores[0], "scores are kept")
	assert.Equal(t, "Player 1", *s[0].Winner, "previous schedule must not change")

	t.Run("swapping two names is simultaneous", func(t *testing.T) {
		swapped := RenamePlayers(s, map[string]string{"Player 1": "Player 2", "Player 2": "Player 1"})
		assert.Equal(t, [2]string{"Player 2", "Player 1"}, swapped[0].Rounds[0].Matchups[0].Players)
	})
}

func TestCloneIsIndependent(t *testing.T) {
	s, err := SetScore(newTestSchedule(), 0, 0, 0, 0, "3")
	require.NoError(t, err)
	s, err = SubstitutePlayer(s, 1, "D", "Q")
	require.NoError(t, err)

	c := s.Clone()
	*c[0].Rounds[0].Matchups[0].Scores[0] = 99
	c[1].Substitutions["B"] = "R"
	c[0].Rounds[0].Matchups[0].Players[1] = "X"

	assert.Equal(t, 3, *s[0].Rounds[0].Matchups[0].Scores[0])
	assert.NotContains(t, s[1].Substitutions, "B")
	assert.Equal(t, "B", s[0].Rounds[0].Matchups[0].Players[1])
}
