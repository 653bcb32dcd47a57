package roster

import (
	"sync"
)

// MockStore is a mock implementation of the RosterStore interface for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	CreatePlayerFunc       func(name string) (*Player, error)
	DeletePlayerFunc       func(id int64) error
	GetPlayerFunc          func(id int64) (*Player, error)
	ListPlayersFunc        func() ([]Player, error)
	FindOrCreateTeamFunc   func(id int64, defaultName string) (*Team, error)
	ListTeamsFunc          func() ([]Team, error)
	ReplaceMembershipsFunc func(assignments []TeamAssignment) error
	AddMemberFunc          func(teamID, playerID int64) error
	RemoveMemberFunc       func(teamID, playerID int64) error
	SetCaptainFunc         func(teamID int64, playerID *int64) error
	ApplyMatchResultFunc   func(winningTeamID int64, winPoints int) error
	StandingsFunc          func() ([]Player, error)

	// Call records
	CreatePlayerCalls       []string
	DeletePlayerCalls       []int64
	ReplaceMembershipsCalls [][]TeamAssignment
	AddMemberCalls          []MemberCall
	RemoveMemberCalls       []MemberCall
	SetCaptainCalls         []CaptainCall
	ApplyMatchResultCalls   []MatchResultCall
}

// MemberCall holds the arguments of an AddMember/RemoveMember call.
type MemberCall struct {
	TeamID   int64
	PlayerID int64
}

// CaptainCall holds the arguments of a SetCaptain call.
type CaptainCall struct {
	TeamID   int64
	PlayerID *int64
}

// MatchResultCall holds the arguments of an ApplyMatchResult call.
type MatchResultCall struct {
	WinningTeamID int64
	WinPoints     int
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

func (m *MockStore) CreatePlayer(name string) (*Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreatePlayerCalls = append(m.CreatePlayerCalls, name)
	if m.CreatePlayerFunc != nil {
		return m.CreatePlayerFunc(name)
	}
	return &Player{ID: int64(len(m.CreatePlayerCalls)), Name: name, Active: true}, nil
}

func (m *MockStore) DeletePlayer(id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeletePlayerCalls = append(m.DeletePlayerCalls, id)
	if m.DeletePlayerFunc != nil {
		return m.DeletePlayerFunc(id)
	}
	return nil
}

func (m *MockStore) GetPlayer(id int64) (*Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetPlayerFunc != nil {
		return m.GetPlayerFunc(id)
	}
	return &Player{ID: id}, nil
}

func (m *MockStore) ListPlayers() ([]Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListPlayersFunc != nil {
		return m.ListPlayersFunc()
	}
	return nil, nil
}

func (m *MockStore) FindOrCreateTeam(id int64, defaultName string) (*Team, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FindOrCreateTeamFunc != nil {
		return m.FindOrCreateTeamFunc(id, defaultName)
	}
	return &Team{ID: id, Name: defaultName, Players: []Player{}}, nil
}

func (m *MockStore) ListTeams() ([]Team, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListTeamsFunc != nil {
		return m.ListTeamsFunc()
	}
	return nil, nil
}

func (m *MockStore) ReplaceMemberships(assignments []TeamAssignment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ReplaceMembershipsCalls = append(m.ReplaceMembershipsCalls, assignments)
	if m.ReplaceMembershipsFunc != nil {
		return m.ReplaceMembershipsFunc(assignments)
	}
	return nil
}

func (m *MockStore) AddMember(teamID, playerID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AddMemberCalls = append(m.AddMemberCalls, MemberCall{TeamID: teamID, PlayerID: playerID})
	if m.AddMemberFunc != nil {
		return m.AddMemberFunc(teamID, playerID)
	}
	return nil
}

func (m *MockStore) RemoveMember(teamID, playerID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RemoveMemberCalls = append(m.RemoveMemberCalls, MemberCall{TeamID: teamID, PlayerID: playerID})
	if m.RemoveMemberFunc != nil {
		return m.RemoveMemberFunc(teamID, playerID)
	}
	return nil
}

func (m *MockStore) SetCaptain(teamID int64, playerID *int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SetCaptainCalls = append(m.SetCaptainCalls, CaptainCall{TeamID: teamID, PlayerID: playerID})
	if m.SetCaptainFunc != nil {
		return m.SetCaptainFunc(teamID, playerID)
	}
	return nil
}

func (m *MockStore) ApplyMatchResult(winningTeamID int64, winPoints int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ApplyMatchResultCalls = append(m.ApplyMatchResultCalls, MatchResultCall{WinningTeamID: winningTeamID, WinPoints: winPoints})
	if m.ApplyMatchResultFunc != nil {
		return m.ApplyMatchResultFunc(winningTeamID, winPoints)
	}
	return nil
}

func (m *MockStore) Standings() ([]Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.StandingsFunc != nil {
		return m.StandingsFunc()
	}
	return nil, nil
}
