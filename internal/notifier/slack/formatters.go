package slack

import (
	"fmt"
	"strings"

	"github.com/slack-go/slack"

	"github.com/gaara-aza/saimon/internal/roster"
)

// formatAssignment creates the Slack message for a fresh team draw using Block Kit.
func (s *Notifier) formatAssignment(teams []roster.Team) slack.Message {
	blocks := make([]slack.Block, 0)

	// Header - The Header block itself provides bolding. No asterisks needed.
	headerText := slack.NewTextBlockObject("plain_text", "⚽ Teams are drawn! ⚽", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	for _, team := range teams {
		var lines []string
		for _, p := range team.Players {
			line := fmt.Sprintf("• %s", p.Name)
			if team.Captain != nil && team.Captain.ID == p.ID {
				line += " (C)"
			}
			lines = append(lines, line)
		}
		if len(lines) == 0 {
			lines = append(lines, "(empty)")
		}
		teamText := fmt.Sprintf("%s:\n%s", team.Name, strings.Join(lines, "\n"))
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", teamText, true, false), nil, nil))
	}

	return slack.NewBlockMessage(blocks...)
}

// formatResult creates the Slack message for a recorded match result.
func (s *Notifier) formatResult(winner roster.Team, winPoints int) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "🏆 Match finished! 🏆", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	var names []string
	for _, p := range winner.Players {
		names = append(names, p.Name)
	}
	detailsText := fmt.Sprintf("%s wins! %s each take %d points.", winner.Name, strings.Join(names, ", "), winPoints)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", detailsText, false, false), nil, nil))

	return slack.NewBlockMessage(blocks...)
}

// formatStandings creates the standings board message.
func (s *Notifier) formatStandings(players []roster.Player) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "📊 Standings 📊", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	if len(players) == 0 {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", "No players registered yet.", false, false), nil, nil))
		return slack.NewBlockMessage(blocks...)
	}

	var lines []string
	for i, p := range players {
		lines = append(lines, fmt.Sprintf("%d. %s: %d pts (%d/%d won)", i+1, p.Name, p.Points, p.GamesWon, p.GamesPlayed))
	}
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", strings.Join(lines, "\n"), false, false), nil, nil))

	return slack.NewBlockMessage(blocks...)
}
