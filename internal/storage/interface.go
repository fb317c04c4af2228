package storage

// Keys under which tournament state is persisted.
const (
	KeySchedule        = "currentSchedule"
	KeyPlayers         = "currentPlayers"
	KeyTitle           = "currentTitle"
	KeyPastTournaments = "pastTournaments"
)

// Store is a string keyed key-value store. It has no transactions; a Set may
// fail at any time and callers decide what to do with the in-memory state.
type Store interface {
	// Get returns the value for key. ok is false when the key does not exist.
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Remove(key string) error
}
