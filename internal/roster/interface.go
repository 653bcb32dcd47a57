package roster

// RosterStore defines the interface for interacting with players, teams and
// team memberships.
type RosterStore interface {
	CreatePlayer(name string) (*Player, error)
	DeletePlayer(id int64) error
	GetPlayer(id int64) (*Player, error)
	ListPlayers() ([]Player, error)
	FindOrCreateTeam(id int64, defaultName string) (*Team, error)
	ListTeams() ([]Team, error)
	ReplaceMemberships(assignments []TeamAssignment) error
	AddMember(teamID, playerID int64) error
	RemoveMember(teamID, playerID int64) error
	SetCaptain(teamID int64, playerID *int64) error
	ApplyMatchResult(winningTeamID int64, winPoints int) error
	Standings() ([]Player, error)
}
