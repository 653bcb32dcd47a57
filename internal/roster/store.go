package roster

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
)

// maxNameLength bounds player display names.
const maxNameLength = 100

// New creates a new RosterStore.
func New(db *sql.DB) RosterStore {
	return &store{
		db: db,
	}
}

// CreatePlayer registers a new player with zeroed statistics.
func (s *store) CreatePlayer(name string) (*Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &ValidationError{Reason: "player name is required"}
	}
	if len(name) > maxNameLength {
		return nil, &ValidationError{Reason: fmt.Sprintf("player name exceeds %d characters", maxNameLength)}
	}

	var exists bool
	err := s.db.QueryRow("SELECT EXISTS(SELECT 1 FROM players WHERE name = ?)", name).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to check player name: %w", err)
	}
	if exists {
		return nil, &ConflictError{Reason: fmt.Sprintf("player %q already exists", name)}
	}

	res, err := s.db.Exec("INSERT INTO players (name, active) VALUES (?, 1)", name)
	if err != nil {
		return nil, fmt.Errorf("failed to insert player: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read new player id: %w", err)
	}

	log.Info("Created player", "playerID", id, "name", name)
	return &Player{ID: id, Name: name, Active: true}, nil
}

// DeletePlayer removes a player together with their team memberships. Any team
// that had the player as captain loses its captain in the same transaction.
func (s *store) DeletePlayer(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	var exists bool
	if err := tx.QueryRow("SELECT EXISTS(SELECT 1 FROM players WHERE id = ?)", id).Scan(&exists); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to check player: %w", err)
	}
	if !exists {
		tx.Rollback()
		return &NotFoundError{Entity: "player", ID: id}
	}

	if _, err := tx.Exec("UPDATE teams SET captain_id = NULL WHERE captain_id = ?", id); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to clear captaincy: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM team_players WHERE player_id = ?", id); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to remove memberships: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM players WHERE id = ?", id); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to delete player: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit player deletion: %w", err)
	}
	log.Info("Deleted player", "playerID", id)
	return nil
}

// GetPlayer retrieves a single player by id.
func (s *store) GetPlayer(id int64) (*Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(`
		SELECT id, name, number, position, birth_date, active, games_played, games_won, points
		FROM players WHERE id = ?
	`, id)
	p, err := scanPlayer(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, &NotFoundError{Entity: "player", ID: id}
		}
		return nil, fmt.Errorf("failed to query player: %w", err)
	}
	return p, nil
}

// ListPlayers returns all players in insertion order.
func (s *store) ListPlayers() ([]Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queryPlayers(`
		SELECT id, name, number, position, birth_date, active, games_played, games_won, points
		FROM players ORDER BY id
	`)
}

// Standings returns all players ordered for the leaderboard.
func (s *store) Standings() ([]Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queryPlayers(`
		SELECT id, name, number, position, birth_date, active, games_played, games_won, points
		FROM players ORDER BY points DESC, games_won DESC, name
	`)
}

func (s *store) queryPlayers(query string, args ...any) ([]Player, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		log.Error("Failed to query players", "error", err)
		return nil, err
	}
	defer rows.Close()

	var players []Player
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			log.Error("Failed to scan player row", "error", err)
			continue
		}
		players = append(players, *p)
	}
	return players, nil
}

// scanPlayer reads one player row from a row or rows scanner.
func scanPlayer(scanner interface{ Scan(...any) error }) (*Player, error) {
	var p Player
	var number sql.NullInt64
	var position, birthDate sql.NullString

	err := scanner.Scan(&p.ID, &p.Name, &number, &position, &birthDate, &p.Active, &p.GamesPlayed, &p.GamesWon, &p.Points)
	if err != nil {
		return nil, err
	}
	if number.Valid {
		n := int(number.Int64)
		p.Number = &n
	}
	if position.Valid {
		p.Position = &position.String
	}
	if birthDate.Valid {
		p.BirthDate = &birthDate.String
	}
	return &p, nil
}

// FindOrCreateTeam returns the team with the given id, creating it with the
// default name when missing. Idempotent.
func (s *store) FindOrCreateTeam(id int64, defaultName string) (*Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec("INSERT OR IGNORE INTO teams (id, name) VALUES (?, ?)", id, defaultName); err != nil {
		return nil, fmt.Errorf("failed to ensure team %d: %w", id, err)
	}

	var team Team
	var captainID sql.NullInt64
	err := s.db.QueryRow("SELECT id, name, captain_id FROM teams WHERE id = ?", id).Scan(&team.ID, &team.Name, &captainID)
	if err != nil {
		return nil, fmt.Errorf("failed to query team %d: %w", id, err)
	}
	team.Players = []Player{}
	return &team, nil
}

// ListTeams returns all teams with their member players and captain.
func (s *store) ListTeams() ([]Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT id, name, captain_id FROM teams ORDER BY id")
	if err != nil {
		log.Error("Failed to query teams", "error", err)
		return nil, err
	}
	defer rows.Close()

	var teams []Team
	captains := make(map[int64]int64)
	for rows.Next() {
		var team Team
		var captainID sql.NullInt64
		if err := rows.Scan(&team.ID, &team.Name, &captainID); err != nil {
			log.Error("Failed to scan team row", "error", err)
			continue
		}
		team.Players = []Player{}
		if captainID.Valid {
			captains[team.ID] = captainID.Int64
		}
		teams = append(teams, team)
	}

	memberRows, err := s.db.Query(`
		SELECT tp.team_id, p.id, p.name, p.number, p.position, p.birth_date, p.active, p.games_played, p.games_won, p.points
		FROM team_players tp
		JOIN players p ON p.id = tp.player_id
		ORDER BY tp.team_id, p.id
	`)
	if err != nil {
		log.Error("Failed to query team members", "error", err)
		return nil, err
	}
	defer memberRows.Close()

	members := make(map[int64][]Player)
	for memberRows.Next() {
		var teamID int64
		var p Player
		var number sql.NullInt64
		var position, birthDate sql.NullString
		err := memberRows.Scan(&teamID, &p.ID, &p.Name, &number, &position, &birthDate, &p.Active, &p.GamesPlayed, &p.GamesWon, &p.Points)
		if err != nil {
			log.Error("Failed to scan member row", "error", err)
			continue
		}
		if number.Valid {
			n := int(number.Int64)
			p.Number = &n
		}
		if position.Valid {
			p.Position = &position.String
		}
		if birthDate.Valid {
			p.BirthDate = &birthDate.String
		}
		members[teamID] = append(members[teamID], p)
	}

	for i := range teams {
		if m, ok := members[teams[i].ID]; ok {
			teams[i].Players = m
		}
		if captainID, ok := captains[teams[i].ID]; ok {
			for j := range teams[i].Players {
				if teams[i].Players[j].ID == captainID {
					captain := teams[i].Players[j]
					teams[i].Captain = &captain
					break
				}
			}
		}
	}
	return teams, nil
}

// ReplaceMemberships writes a fresh partition: every assigned team is created
// if missing, all existing memberships are cleared, captains are reset, and
// the new member sets are inserted. The whole sequence is one transaction so
// a failure never leaves some teams repopulated and others empty.
func (s *store) ReplaceMemberships(assignments []TeamAssignment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	for _, a := range assignments {
		if _, err := tx.Exec("INSERT OR IGNORE INTO teams (id, name) VALUES (?, ?)", a.TeamID, a.TeamName); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to ensure team %d: %w", a.TeamID, err)
		}
	}

	// A reassignment replaces the previous session wholesale.
	if _, err := tx.Exec("DELETE FROM team_players"); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to clear memberships: %w", err)
	}
	if _, err := tx.Exec("UPDATE teams SET captain_id = NULL"); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to reset captains: %w", err)
	}

	for _, a := range assignments {
		for _, playerID := range a.PlayerIDs {
			if _, err := tx.Exec("INSERT INTO team_players (team_id, player_id) VALUES (?, ?)", a.TeamID, playerID); err != nil {
				tx.Rollback()
				return fmt.Errorf("failed to assign player %d to team %d: %w", playerID, a.TeamID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit membership replacement: %w", err)
	}
	log.Info("Replaced team memberships", "teams", len(assignments))
	return nil
}

// AddMember places a player on a team. A player on any team already is
// rejected: teams are disjoint.
func (s *store) AddMember(teamID, playerID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	var exists bool
	if err := tx.QueryRow("SELECT EXISTS(SELECT 1 FROM teams WHERE id = ?)", teamID).Scan(&exists); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to check team: %w", err)
	}
	if !exists {
		tx.Rollback()
		return &NotFoundError{Entity: "team", ID: teamID}
	}
	if err := tx.QueryRow("SELECT EXISTS(SELECT 1 FROM players WHERE id = ?)", playerID).Scan(&exists); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to check player: %w", err)
	}
	if !exists {
		tx.Rollback()
		return &NotFoundError{Entity: "player", ID: playerID}
	}
	if err := tx.QueryRow("SELECT EXISTS(SELECT 1 FROM team_players WHERE player_id = ?)", playerID).Scan(&exists); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to check membership: %w", err)
	}
	if exists {
		tx.Rollback()
		return &ValidationError{Reason: fmt.Sprintf("player %d already belongs to a team", playerID)}
	}

	if _, err := tx.Exec("INSERT INTO team_players (team_id, player_id) VALUES (?, ?)", teamID, playerID); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to add member: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit member addition: %w", err)
	}
	log.Info("Added player to team", "playerID", playerID, "teamID", teamID)
	return nil
}

// RemoveMember takes a player off a team, clearing the captain pointer in the
// same transaction when the removed player was captain.
func (s *store) RemoveMember(teamID, playerID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	var exists bool
	if err := tx.QueryRow("SELECT EXISTS(SELECT 1 FROM team_players WHERE team_id = ? AND player_id = ?)", teamID, playerID).Scan(&exists); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to check membership: %w", err)
	}
	if !exists {
		tx.Rollback()
		return &NotFoundError{Entity: "player", ID: playerID}
	}

	if _, err := tx.Exec("UPDATE teams SET captain_id = NULL WHERE id = ? AND captain_id = ?", teamID, playerID); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to clear captaincy: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM team_players WHERE team_id = ? AND player_id = ?", teamID, playerID); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to remove member: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit member removal: %w", err)
	}
	log.Info("Removed player from team", "playerID", playerID, "teamID", teamID)
	return nil
}

// SetCaptain designates a team captain. A nil playerID clears the captain.
// The captain must be a current member of the team; nothing changes when the
// check fails.
func (s *store) SetCaptain(teamID int64, playerID *int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var exists bool
	if err := s.db.QueryRow("SELECT EXISTS(SELECT 1 FROM teams WHERE id = ?)", teamID).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check team: %w", err)
	}
	if !exists {
		return &NotFoundError{Entity: "team", ID: teamID}
	}

	if playerID == nil {
		if _, err := s.db.Exec("UPDATE teams SET captain_id = NULL WHERE id = ?", teamID); err != nil {
			return fmt.Errorf("failed to clear captain: %w", err)
		}
		log.Info("Cleared team captain", "teamID", teamID)
		return nil
	}

	if err := s.db.QueryRow("SELECT EXISTS(SELECT 1 FROM team_players WHERE team_id = ? AND player_id = ?)", teamID, *playerID).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check membership: %w", err)
	}
	if !exists {
		return &ValidationError{Reason: fmt.Sprintf("player %d is not a member of team %d", *playerID, teamID)}
	}

	if _, err := s.db.Exec("UPDATE teams SET captain_id = ? WHERE id = ?", *playerID, teamID); err != nil {
		return fmt.Errorf("failed to set captain: %w", err)
	}
	log.Info("Set team captain", "teamID", teamID, "playerID", *playerID)
	return nil
}

// ApplyMatchResult advances every affected player's counters in one
// transaction: winners get a played game, a won game and the win reward;
// members of every other team get a played game only.
func (s *store) ApplyMatchResult(winningTeamID int64, winPoints int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	var memberCount int
	if err := tx.QueryRow("SELECT COUNT(*) FROM team_players WHERE team_id = ?", winningTeamID).Scan(&memberCount); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to count winning team members: %w", err)
	}
	if memberCount == 0 {
		tx.Rollback()
		return &NotFoundError{Entity: "team", ID: winningTeamID}
	}

	_, err = tx.Exec(`
		UPDATE players
		SET games_played = games_played + 1, games_won = games_won + 1, points = points + ?
		WHERE id IN (SELECT player_id FROM team_players WHERE team_id = ?)
	`, winPoints, winningTeamID)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to update winning players: %w", err)
	}

	_, err = tx.Exec(`
		UPDATE players
		SET games_played = games_played + 1
		WHERE id IN (SELECT player_id FROM team_players WHERE team_id != ?)
	`, winningTeamID)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to update losing players: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit match result: %w", err)
	}
	log.Info("Recorded match result", "winningTeamID", winningTeamID, "winPoints", winPoints)
	return nil
}
