package notifier

import (
	"sync"

	"github.com/mauv0809/pool-tournament/internal/tournament"
)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Spies for method calls
	SendTournamentSavedFunc func(saved tournament.SavedTournament, dryRun bool) error

	// Call records
	SendTournamentSavedCalls []SendTournamentSavedCall
}

// SendTournamentSavedCall holds the arguments of a call to SendTournamentSaved.
type SendTournamentSavedCall struct {
	Saved  tournament.SavedTournament
	DryRun bool
}

var _ Notifier = (*Mock)(nil)

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendTournamentSavedCalls = nil
}

func (m *Mock) SendTournamentSaved(saved tournament.SavedTournament, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendTournamentSavedCalls = append(m.SendTournamentSavedCalls, SendTournamentSavedCall{Saved: saved, DryRun: dryRun})
	if m.SendTournamentSavedFunc != nil {
		return m.SendTournamentSavedFunc(saved, dryRun)
	}
	return nil
}

// Calls returns a copy of the recorded SendTournamentSaved calls.
func (m *Mock) Calls() []SendTournamentSavedCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]SendTournamentSavedCall(nil), m.SendTournamentSavedCalls...)
}
