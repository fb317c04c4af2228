package tournament

import (
	"cmp"
	"slices"
)

// substituted returns the set of players replaced on this day.
func (d Day) substituted() map[string]bool {
	out := make(map[string]bool, len(d.Substitutions))
	for orig := range d.Substitutions {
		out[orig] = true
	}
	return out
}

// SeasonTotals computes points and wins for every roster player, in roster order.
// Scores of players substituted out on a day are ignored for that day, and names
// outside the roster (substitutes included) never appear.
func SeasonTotals(s Schedule, roster []string) []PlayerStats {
	index := make(map[string]int, len(roster))
	stats := make([]PlayerStats, 0, len(roster))
	for _, name := range roster {
		if _, dup := index[name]; dup {
			continue
		}
		index[name] = len(stats)
		stats = append(stats, PlayerStats{Name: name})
	}

	for _, day := range s {
		out := day.substituted()
		for _, round := range day.Rounds {
			for _, m := range round.Matchups {
				for slot, player := range m.Players {
					score := m.Scores[slot]
					i, known := index[player]
					if score == nil || !known || out[player] {
						continue
					}
					stats[i].TotalPoints += *score
					if *score >= WinThreshold {
						stats[i].TotalWins++
					}
				}
			}
		}
	}
	return stats
}

// DropLowestTotals builds the cumulative table where each player's worst day is
// dropped from their total. Rows are ordered by total, highest first; equal
// totals keep roster order.
func DropLowestTotals(roster []string, s Schedule) []CumulativePoints {
	daily := make(map[string][]int, len(roster))
	order := make([]string, 0, len(roster))
	for _, name := range roster {
		if _, dup := daily[name]; dup {
			continue
		}
		daily[name] = make([]int, len(s))
		order = append(order, name)
	}

	for i, day := range s {
		out := day.substituted()
		for _, round := range day.Rounds {
			for _, m := range round.Matchups {
				for slot, player := range m.Players {
					score := m.Scores[slot]
					if score == nil || out[player] {
						continue
					}
					if scores, ok := daily[player]; ok {
						scores[i] += *score
					}
				}
			}
		}
	}

	rows := make([]CumulativePoints, 0, len(order))
	for _, name := range order {
		scores := daily[name]
		row := CumulativePoints{Name: name, DailyScores: scores, LowestScoreIndex: -1}
		if len(scores) > 0 {
			row.LowestScoreIndex = lowestIndex(scores)
			sum := 0
			for _, v := range scores {
				sum += v
			}
			row.Total = sum - scores[row.LowestScoreIndex]
		}
		rows = append(rows, row)
	}
	slices.SortStableFunc(rows, func(a, b CumulativePoints) int {
		return cmp.Compare(b.Total, a.Total)
	})
	return rows
}

// lowestIndex returns the first index holding the minimum value.
func lowestIndex(values []int) int {
	lowest := 0
	for i, v := range values {
		if v < values[lowest] {
			lowest = i
		}
	}
	return lowest
}

// DailyScoreboard totals a single day. Points scored in a slot whose player was
// substituted go to "<substitute> (Sub)"; the replaced players are left out.
// Every other slot occupant is listed, even with zero points.
func DailyScoreboard(d Day) []DailyScore {
	points := make(map[string]int)
	var names []string
	credit := func(name string, n int) {
		if _, seen := points[name]; !seen {
			names = append(names, name)
		}
		points[name] += n
	}

	for _, round := range d.Rounds {
		for _, m := range round.Matchups {
			for _, player := range m.Players {
				credit(player, 0)
			}
		}
	}
	for _, round := range d.Rounds {
		for _, m := range round.Matchups {
			for slot, player := range m.Players {
				if m.Scores[slot] == nil {
					continue
				}
				holder := player
				if sub, ok := d.Substitutions[player]; ok {
					holder = sub + subSuffix
				}
				credit(holder, *m.Scores[slot])
			}
		}
	}

	board := make([]DailyScore, 0, len(names))
	for _, name := range names {
		if _, replaced := d.Substitutions[name]; replaced {
			continue
		}
		board = append(board, DailyScore{Name: name, Points: points[name]})
	}
	slices.SortStableFunc(board, func(a, b DailyScore) int {
		if c := cmp.Compare(b.Points, a.Points); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return board
}

// Participants lists who actually played the day, with substitutes in place of
// the players they replaced. These are the valid winner choices.
func (d Day) Participants() []string {
	seen := make(map[string]bool)
	for _, round := range d.Rounds {
		for _, m := range round.Matchups {
			for _, player := range m.Players {
				if sub, ok := d.Substitutions[player]; ok {
					player = sub
				}
				seen[player] = true
			}
		}
	}
	return sortedKeys(seen)
}

// SubstitutablePlayers lists slot occupants of the day who have not been
// substituted yet.
func (d Day) SubstitutablePlayers() []string {
	seen := make(map[string]bool)
	for _, round := range d.Rounds {
		for _, m := range round.Matchups {
			for _, player := range m.Players {
				if _, ok := d.Substitutions[player]; !ok {
					seen[player] = true
				}
			}
		}
	}
	return sortedKeys(seen)
}

// RankByPoints returns a copy of stats ordered by points, highest first.
func RankByPoints(stats []PlayerStats) []PlayerStats {
	out := slices.Clone(stats)
	slices.SortStableFunc(out, func(a, b PlayerStats) int {
		return cmp.Compare(b.TotalPoints, a.TotalPoints)
	})
	return out
}

// RankByWins returns a copy of stats ordered by wins, highest first.
func RankByWins(stats []PlayerStats) []PlayerStats {
	out := slices.Clone(stats)
	slices.SortStableFunc(out, func(a, b PlayerStats) int {
		return cmp.Compare(b.TotalWins, a.TotalWins)
	})
	return out
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}
