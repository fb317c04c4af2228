package storage

import (
	"database/sql"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// store keeps values in the kv table.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new Store backed by db.
func New(db *sql.DB) Store {
	return &store{
		db: db,
	}
}

func (s *store) Get(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var value string
	err := s.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (s *store) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at;
	`, key, value, time.Now().Unix())
	if err != nil {
		log.Error("Failed to write key", "error", err, "key", key)
		return err
	}
	log.Debug("Stored key", "key", key, "bytes", len(value))
	return nil
}

func (s *store) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec("DELETE FROM kv WHERE key = ?", key)
	return err
}
