package tournament

import "errors"

var (
	ErrNoSchedule          = errors.New("no active schedule")
	ErrDayLocked           = errors.New("day is locked")
	ErrOutOfRange          = errors.New("index out of range")
	ErrInvalidScore        = errors.New("score must be a non-negative integer")
	ErrDuplicatePlayers    = errors.New("players in a matchup must be different")
	ErrInvalidSubstitution = errors.New("invalid substitution")
	ErrInvalidRoster       = errors.New("invalid roster")
)
