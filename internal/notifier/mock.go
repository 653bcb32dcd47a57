package notifier

import (
	"sync"

	"github.com/gaara-aza/saimon/internal/roster"
)

var _ Notifier = (*MockNotifier)(nil)

// MockNotifier is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type MockNotifier struct {
	mu sync.Mutex

	// Spies for method calls
	SendAssignmentNotificationFunc func(teams []roster.Team, dryRun bool) error
	SendResultNotificationFunc     func(winner roster.Team, winPoints int, dryRun bool) error
	SendStandingsFunc              func(players []roster.Player, dryRun bool) error
	FormatStandingsResponseFunc    func(players []roster.Player) (any, error)

	// Call records
	AssignmentCalls [][]roster.Team
	ResultCalls     []ResultCall
	StandingsCalls  [][]roster.Player
}

// ResultCall holds the arguments of a SendResultNotification call.
type ResultCall struct {
	Winner    roster.Team
	WinPoints int
}

// NewMock creates a new mock instance.
func NewMock() *MockNotifier {
	return &MockNotifier{}
}

func (m *MockNotifier) SendAssignmentNotification(teams []roster.Team, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AssignmentCalls = append(m.AssignmentCalls, teams)
	if m.SendAssignmentNotificationFunc != nil {
		return m.SendAssignmentNotificationFunc(teams, dryRun)
	}
	return nil
}

func (m *MockNotifier) SendResultNotification(winner roster.Team, winPoints int, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ResultCalls = append(m.ResultCalls, ResultCall{Winner: winner, WinPoints: winPoints})
	if m.SendResultNotificationFunc != nil {
		return m.SendResultNotificationFunc(winner, winPoints, dryRun)
	}
	return nil
}

func (m *MockNotifier) SendStandings(players []roster.Player, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StandingsCalls = append(m.StandingsCalls, players)
	if m.SendStandingsFunc != nil {
		return m.SendStandingsFunc(players, dryRun)
	}
	return nil
}

func (m *MockNotifier) FormatStandingsResponse(players []roster.Player) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FormatStandingsResponseFunc != nil {
		return m.FormatStandingsResponseFunc(players)
	}
	return map[string]any{"players": len(players)}, nil
}
