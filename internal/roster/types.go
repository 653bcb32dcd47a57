package roster

import (
	"database/sql"
	"sync"
)

// store handles all database operations for the roster.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Player is a registered club member with cumulative match statistics.
// JSON field names follow the public API shape.
type Player struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Number      *int    `json:"number,omitempty"`
	Position    *string `json:"position,omitempty"`
	BirthDate   *string `json:"birthDate,omitempty"`
	Active      bool    `json:"active"`
	GamesPlayed int     `json:"gamesPlayed"`
	GamesWon    int     `json:"gamesWon"`
	Points      int     `json:"points"`
}

// Team is one side of a session. Captain, when set, is always a current member.
type Team struct {
	ID      int64    `json:"id"`
	Name    string   `json:"name"`
	Captain *Player  `json:"captain,omitempty"`
	Players []Player `json:"players"`
}

// TeamAssignment is one team's slice of a freshly drawn partition.
type TeamAssignment struct {
	TeamID    int64
	TeamName  string
	PlayerIDs []int64
}
