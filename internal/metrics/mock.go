package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                  sync.Mutex
	schedulesGenerated  int
	generationFailures  int
	generationDurations []float64
	edits               map[string]int
	editsRejected       map[string]int
	persistenceFailures int
	tournamentsSaved    int
	slackNotifSent      int
	slackNotifFailed    int
	startupTime         float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		generationDurations: make([]float64, 0),
		edits:               make(map[string]int),
		editsRejected:       make(map[string]int),
	}
}

func (m *Mock) IncSchedulesGenerated() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.schedulesGenerated++
}

func (m *Mock) IncGenerationFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.generationFailures++
}

func (m *Mock) ObserveGenerationDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.generationDurations = append(m.generationDurations, duration)
}

func (m *Mock) IncEdits(op string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.edits[op]++
}

func (m *Mock) IncEditsRejected(op string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.editsRejected[op]++
}

func (m *Mock) IncPersistenceFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.persistenceFailures++
}

func (m *Mock) IncTournamentsSaved() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tournamentsSaved++
}

func (m *Mock) IncSlackNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifSent++
}

func (m *Mock) IncSlackNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifFailed++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// SchedulesGenerated returns the number of times IncSchedulesGenerated was called.
func (m *Mock) SchedulesGenerated() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.schedulesGenerated
}

// GenerationFailures returns the number of times IncGenerationFailures was called.
func (m *Mock) GenerationFailures() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.generationFailures
}

// GenerationDurations returns every observed generation duration.
func (m *Mock) GenerationDurations() []float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]float64(nil), m.generationDurations...)
}

// Edits returns how many edits of op were applied.
func (m *Mock) Edits(op string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.edits[op]
}

// EditsRejected returns how many edits of op were rejected.
func (m *Mock) EditsRejected(op string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.editsRejected[op]
}

// PersistenceFailures returns the number of times IncPersistenceFailures was called.
func (m *Mock) PersistenceFailures() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.persistenceFailures
}

// TournamentsSaved returns the number of times IncTournamentsSaved was called.
func (m *Mock) TournamentsSaved() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tournamentsSaved
}

// SlackNotifSent returns the number of times IncSlackNotifSent was called.
func (m *Mock) SlackNotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifSent
}

// SlackNotifFailed returns the number of times IncSlackNotifFailed was called.
func (m *Mock) SlackNotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifFailed
}
