package storage

import "sync"

// Mock is an in-memory Store for testing. It is safe for concurrent use.
type Mock struct {
	mu     sync.Mutex
	values map[string]string

	// Spies for method calls
	SetFunc    func(key, value string) error
	RemoveFunc func(key string) error

	// Call records
	SetCalls    []SetCall
	RemoveCalls []string
}

// SetCall holds the arguments for a call to Set.
type SetCall struct {
	Key   string
	Value string
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{values: make(map[string]string)}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SetCalls = nil
	m.RemoveCalls = nil
}

func (m *Mock) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

// Set records the call and stores the value unless SetFunc returns an error.
func (m *Mock) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SetCalls = append(m.SetCalls, SetCall{Key: key, Value: value})
	if m.SetFunc != nil {
		if err := m.SetFunc(key, value); err != nil {
			return err
		}
	}
	m.values[key] = value
	return nil
}

func (m *Mock) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RemoveCalls = append(m.RemoveCalls, key)
	if m.RemoveFunc != nil {
		if err := m.RemoveFunc(key); err != nil {
			return err
		}
	}
	delete(m.values, key)
	return nil
}

// Value returns the stored value for key, bypassing the call records.
func (m *Mock) Value(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok
}

// Put stores a value without recording a call.
func (m *Mock) Put(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
}
