package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/pool-tournament/internal/storage"
	"github.com/mauv0809/pool-tournament/internal/tournament"
)

// ErrNotFound is returned when no saved tournament has the requested id.
var ErrNotFound = errors.New("tournament not found")

// Repository reads and writes the list of archived tournaments, stored as a
// single JSON array under storage.KeyPastTournaments.
type Repository struct {
	store storage.Store

	mu     sync.Mutex
	lastID int64
}

// New creates a Repository on top of store.
func New(store storage.Store) *Repository {
	return &Repository{store: store}
}

// Load returns the stored tournaments. Data that is not a JSON array of
// tournaments is treated as corrupted: the key is removed and an empty list
// returned.
func (r *Repository) Load() ([]tournament.SavedTournament, error) {
	raw, ok, err := r.store.Get(storage.KeyPastTournaments)
	if err != nil {
		return nil, fmt.Errorf("failed to read past tournaments: %w", err)
	}
	if !ok {
		return []tournament.SavedTournament{}, nil
	}

	var saved []tournament.SavedTournament
	if !strings.HasPrefix(strings.TrimSpace(raw), "[") || json.Unmarshal([]byte(raw), &saved) != nil {
		log.Warn("Discarding corrupted past tournaments", "bytes", len(raw))
		if err := r.store.Remove(storage.KeyPastTournaments); err != nil {
			log.Error("Failed to remove corrupted past tournaments", "error", err)
		}
		return []tournament.SavedTournament{}, nil
	}
	if saved == nil {
		saved = []tournament.SavedTournament{}
	}
	r.observeIDs(saved)
	return saved, nil
}

// Save replaces the stored list.
func (r *Repository) Save(saved []tournament.SavedTournament) error {
	if saved == nil {
		saved = []tournament.SavedTournament{}
	}
	data, err := json.Marshal(saved)
	if err != nil {
		return err
	}
	return r.store.Set(storage.KeyPastTournaments, string(data))
}

// NewID returns now in Unix milliseconds as a decimal string. Ids are strictly
// increasing within one process even when the clock is not.
func (r *Repository) NewID(now time.Time) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := now.UnixMilli()
	if id <= r.lastID {
		id = r.lastID + 1
	}
	r.lastID = id
	return strconv.FormatInt(id, 10)
}

func (r *Repository) observeIDs(saved []tournament.SavedTournament) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range saved {
		if id, err := strconv.ParseInt(t.ID, 10, 64); err == nil && id > r.lastID {
			r.lastID = id
		}
	}
}

// Remove returns a copy of saved without the tournament with the given id.
func Remove(saved []tournament.SavedTournament, id string) ([]tournament.SavedTournament, error) {
	i := slices.IndexFunc(saved, func(t tournament.SavedTournament) bool { return t.ID == id })
	if i < 0 {
		return saved, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return slices.Delete(slices.Clone(saved), i, i+1), nil
}

// Newest returns a copy of saved ordered by id, newest first.
func Newest(saved []tournament.SavedTournament) []tournament.SavedTournament {
	out := slices.Clone(saved)
	slices.SortStableFunc(out, func(a, b tournament.SavedTournament) int {
		return compareIDs(b.ID, a.ID)
	})
	return out
}

// compareIDs orders numeric ids by value and falls back to string order.
func compareIDs(a, b string) int {
	x, errA := strconv.ParseInt(a, 10, 64)
	y, errB := strconv.ParseInt(b, 10, 64)
	if errA == nil && errB == nil {
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
		return 0
	}
	return strings.Compare(a, b)
}
