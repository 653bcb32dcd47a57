package metrics

import "sync"

var _ Metrics = (*MockMetrics)(nil)

// MockMetrics is a no-op Metrics implementation that counts calls, for tests.
type MockMetrics struct {
	mu sync.Mutex

	PlayersCreatedCalls       int
	RandomizeRunsCalls        int
	MatchResultsRecordedCalls int
	NotifSentCalls            int
	NotifFailedCalls          int
	StartupTimes              []float64
}

// NewMock creates a new mock instance.
func NewMock() *MockMetrics {
	return &MockMetrics{}
}

func (m *MockMetrics) IncPlayersCreated() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PlayersCreatedCalls++
}

func (m *MockMetrics) IncRandomizeRuns() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RandomizeRunsCalls++
}

func (m *MockMetrics) IncMatchResultsRecorded() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.MatchResultsRecordedCalls++
}

func (m *MockMetrics) IncNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.NotifSentCalls++
}

func (m *MockMetrics) IncNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.NotifFailedCalls++
}

func (m *MockMetrics) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StartupTimes = append(m.StartupTimes, duration)
}
