package draft

import "github.com/gaara-aza/saimon/internal/roster"

// AssignmentEvent is published after a successful randomize.
type AssignmentEvent struct {
	Teams []roster.Team `json:"teams" msgpack:"teams"`
}

// ResultEvent is published after a match result has been recorded.
type ResultEvent struct {
	WinningTeam roster.Team `json:"winning_team" msgpack:"winning_team"`
	WinPoints   int         `json:"win_points" msgpack:"win_points"`
}
