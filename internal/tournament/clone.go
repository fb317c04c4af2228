package tournament

import "maps"

// Clone returns a deep copy of the schedule. The copy shares no memory with s,
// so callers holding s never observe edits made to the clone.
func (s Schedule) Clone() Schedule {
	if s == nil {
		return nil
	}
	out := make(Schedule, len(s))
	for i := range s {
		out[i] = s[i].Clone()
	}
	return out
}

// Clone returns a deep copy of the day.
func (d Day) Clone() Day {
	out := d
	out.Winner = cloneString(d.Winner)
	out.Date = cloneString(d.Date)
	if d.Substitutions != nil {
		out.Substitutions = maps.Clone(d.Substitutions)
	}
	if d.Rounds != nil {
		out.Rounds = make([]Round, len(d.Rounds))
		for i, r := range d.Rounds {
			out.Rounds[i] = r.Clone()
		}
	}
	return out
}

// Clone returns a deep copy of the round.
func (r Round) Clone() Round {
	out := Round{Round: r.Round}
	if r.Matchups != nil {
		out.Matchups = make([]Matchup, len(r.Matchups))
		for i, m := range r.Matchups {
			out.Matchups[i] = m.Clone()
		}
	}
	return out
}

// Clone returns a deep copy of the matchup.
func (m Matchup) Clone() Matchup {
	return Matchup{
		Players: m.Players,
		Scores:  [2]*int{cloneInt(m.Scores[0]), cloneInt(m.Scores[1])},
	}
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneInt(n *int) *int {
	if n == nil {
		return nil
	}
	v := *n
	return &v
}
