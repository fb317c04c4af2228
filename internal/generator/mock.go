package generator

import (
	"context"
	"sync"

	"github.com/mauv0809/pool-tournament/internal/tournament"
)

// Mock is a mock implementation of the Generator interface for testing.
// Without a GenerateFunc it falls back to the local round-robin generator.
type Mock struct {
	mu sync.Mutex

	// Spies for method calls
	GenerateFunc func(ctx context.Context, players []string, numDays, numRounds int) (tournament.Schedule, error)

	// Call records
	GenerateCalls []GenerateCall
}

// GenerateCall holds the arguments of a call to Generate.
type GenerateCall struct {
	Players   []string
	NumDays   int
	NumRounds int
}

var _ Generator = (*Mock)(nil)

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Generate records the call and delegates to GenerateFunc.
func (m *Mock) Generate(ctx context.Context, players []string, numDays, numRounds int) (tournament.Schedule, error) {
	m.mu.Lock()
	m.GenerateCalls = append(m.GenerateCalls, GenerateCall{
		Players:   append([]string(nil), players...),
		NumDays:   numDays,
		NumRounds: numRounds,
	})
	fn := m.GenerateFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, players, numDays, numRounds)
	}
	return RoundRobin{}.Generate(ctx, players, numDays, numRounds)
}

// Calls returns a copy of the recorded calls.
func (m *Mock) Calls() []GenerateCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]GenerateCall(nil), m.GenerateCalls...)
}
