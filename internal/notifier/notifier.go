package notifier

import (
	"github.com/gaara-aza/saimon/internal/roster"
)

// Notifier defines a high-level interface for sending notifications about business events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// For a fresh team assignment
	SendAssignmentNotification(teams []roster.Team, dryRun bool) error
	// For a recorded match result
	SendResultNotification(winner roster.Team, winPoints int, dryRun bool) error
	// For the standings board
	SendStandings(players []roster.Player, dryRun bool) error

	// For formatting slash command responses
	FormatStandingsResponse(players []roster.Player) (any, error)
}
