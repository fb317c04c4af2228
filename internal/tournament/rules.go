package tournament

import (
	"fmt"
	"strconv"
	"strings"
)

// Rand is the subset of math/rand/v2 used to shuffle rounds.
type Rand interface {
	IntN(n int) int
}

// Every edit below follows the same contract: s is never modified. On success a
// new schedule is returned; on rejection s itself is returned with an error.

// SetScore parses raw and stores it in the given slot. Only the empty string
// clears the score; anything that is not a non-negative integer, including
// whitespace alone, is rejected. Surrounding spaces around digits are allowed.
func SetScore(s Schedule, day, round, matchup, slot int, raw string) (Schedule, error) {
	if slot != 0 && slot != 1 {
		return editMatchup(s, day, round, matchup, func(*Matchup) error {
			return fmt.Errorf("%w: slot %d", ErrOutOfRange, slot)
		})
	}
	return editMatchup(s, day, round, matchup, func(m *Matchup) error {
		if raw == "" {
			m.Scores[slot] = nil
			return nil
		}
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil || n < 0 {
			return fmt.Errorf("%w: %q", ErrInvalidScore, raw)
		}
		m.Scores[slot] = &n
		return nil
	})
}

// SetWinner sets the day's winner. Blank input clears it. The name is not
// checked against the day's participants.
func SetWinner(s Schedule, day int, name string) (Schedule, error) {
	return editDay(s, day, func(d *Day) error {
		d.Winner = optional(name)
		return nil
	})
}

// SetDate sets the free-text date of a day. Blank input clears it.
func SetDate(s Schedule, day int, date string) (Schedule, error) {
	return editDay(s, day, func(d *Day) error {
		d.Date = optional(date)
		return nil
	})
}

// SubstitutePlayer records that substitute plays the rest of the day in place of
// original. Every score original already has on that day is cleared. A repeated
// substitution of the same original overwrites the earlier mapping.
func SubstitutePlayer(s Schedule, day int, original, substitute string) (Schedule, error) {
	original = strings.TrimSpace(original)
	substitute = strings.TrimSpace(substitute)
	if original == "" || substitute == "" || original == substitute {
		return s, fmt.Errorf("%w: %q for %q", ErrInvalidSubstitution, substitute, original)
	}
	return editDay(s, day, func(d *Day) error {
		if d.Substitutions == nil {
			d.Substitutions = make(map[string]string)
		}
		d.Substitutions[original] = substitute
		for r := range d.Rounds {
			for m := range d.Rounds[r].Matchups {
				mu := &d.Rounds[r].Matchups[m]
				for slot := range mu.Players {
					if mu.Players[slot] == original {
						mu.Scores[slot] = nil
					}
				}
			}
		}
		return nil
	})
}

// SetMatchupPlayers replaces both players of a matchup and clears its scores.
func SetMatchupPlayers(s Schedule, day, round, matchup int, players [2]string) (Schedule, error) {
	a, b := strings.TrimSpace(players[0]), strings.TrimSpace(players[1])
	if a == "" || b == "" || a == b {
		return s, fmt.Errorf("%w: %q vs %q", ErrDuplicatePlayers, a, b)
	}
	return editMatchup(s, day, round, matchup, func(m *Matchup) error {
		m.Players = [2]string{a, b}
		m.Scores = [2]*int{}
		return nil
	})
}

// ShuffleRound reorders the matchups of one round with a Fisher-Yates shuffle.
// Player assignments and scores travel with their matchup.
func ShuffleRound(s Schedule, day, round int, rng Rand) (Schedule, error) {
	return editDay(s, day, func(d *Day) error {
		if round < 0 || round >= len(d.Rounds) {
			return fmt.Errorf("%w: round %d", ErrOutOfRange, round)
		}
		ms := d.Rounds[round].Matchups
		for i := len(ms) - 1; i > 0; i-- {
			j := rng.IntN(i + 1)
			ms[i], ms[j] = ms[j], ms[i]
		}
		return nil
	})
}

// ToggleDayLock flips the lock flag of a day. It is the only edit allowed on a
// locked day.
func ToggleDayLock(s Schedule, day int) (Schedule, error) {
	if len(s) == 0 {
		return s, ErrNoSchedule
	}
	if day < 0 || day >= len(s) {
		return s, fmt.Errorf("%w: day %d", ErrOutOfRange, day)
	}
	next := s.Clone()
	next[day].IsLocked = !next[day].IsLocked
	return next, nil
}

// RenamePlayers rewrites every reference to an old name across all days:
// winners, matchup slots and the keys of the substitution maps. Substitute
// names are free text and are left as entered.
func RenamePlayers(s Schedule, renames map[string]string) Schedule {
	if len(s) == 0 || len(renames) == 0 {
		return s
	}
	rename := func(name string) string {
		if n, ok := renames[name]; ok {
			return n
		}
		return name
	}
	next := s.Clone()
	for i := range next {
		d := &next[i]
		if d.Winner != nil {
			w := rename(*d.Winner)
			d.Winner = &w
		}
		if d.Substitutions != nil {
			subs := make(map[string]string, len(d.Substitutions))
			for orig, sub := range d.Substitutions {
				subs[rename(orig)] = sub
			}
			d.Substitutions = subs
		}
		for r := range d.Rounds {
			for m := range d.Rounds[r].Matchups {
				mu := &d.Rounds[r].Matchups[m]
				mu.Players[0] = rename(mu.Players[0])
				mu.Players[1] = rename(mu.Players[1])
			}
		}
	}
	return next
}

// editDay clones s and applies fn to the requested day, refusing locked days.
func editDay(s Schedule, day int, fn func(d *Day) error) (Schedule, error) {
	if len(s) == 0 {
		return s, ErrNoSchedule
	}
	if day < 0 || day >= len(s) {
		return s, fmt.Errorf("%w: day %d", ErrOutOfRange, day)
	}
	if s[day].IsLocked {
		return s, fmt.Errorf("%w: day %d", ErrDayLocked, day+1)
	}
	next := s.Clone()
	if err := fn(&next[day]); err != nil {
		return s, err
	}
	return next, nil
}

func editMatchup(s Schedule, day, round, matchup int, fn func(m *Matchup) error) (Schedule, error) {
	return editDay(s, day, func(d *Day) error {
		if round < 0 || round >= len(d.Rounds) {
			return fmt.Errorf("%w: round %d", ErrOutOfRange, round)
		}
		ms := d.Rounds[round].Matchups
		if matchup < 0 || matchup >= len(ms) {
			return fmt.Errorf("%w: matchup %d", ErrOutOfRange, matchup)
		}
		return fn(&ms[matchup])
	})
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
