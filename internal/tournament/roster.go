package tournament

import (
	"fmt"
	"slices"
	"strings"
)

// SupportedPlayerCounts are the roster sizes a tournament can be played with.
var SupportedPlayerCounts = []int{8, 10, 12}

// DefaultRoster returns "Player 1" ... "Player n".
func DefaultRoster(n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("Player %d", i+1)
	}
	return names
}

// RoundsPerDay is 4 for an 8 player roster and 3 otherwise.
func RoundsPerDay(players int) int {
	if players == 8 {
		return 4
	}
	return 3
}

// ValidateRoster trims every name and checks the roster can be scheduled: a
// supported size, no blank names and no duplicates.
func ValidateRoster(names []string) ([]string, error) {
	cleaned := make([]string, 0, len(names))
	seen := make(map[string]bool, len(names))
	for i, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("%w: player %d has no name", ErrInvalidRoster, i+1)
		}
		if seen[name] {
			return nil, fmt.Errorf("%w: duplicate player %q", ErrInvalidRoster, name)
		}
		seen[name] = true
		cleaned = append(cleaned, name)
	}
	if !slices.Contains(SupportedPlayerCounts, len(cleaned)) {
		return nil, fmt.Errorf("%w: number of players must be 8, 10, or 12, got %d", ErrInvalidRoster, len(cleaned))
	}
	return cleaned, nil
}

// RenameMap pairs names by position and returns old->new for every position that
// changed. Both rosters must have the same length.
func RenameMap(previous, next []string) map[string]string {
	renames := make(map[string]string)
	for i, old := range previous {
		if i < len(next) && next[i] != old {
			renames[old] = next[i]
		}
	}
	return renames
}
