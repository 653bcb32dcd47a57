package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/slack-go/slack"

	"github.com/gaara-aza/saimon/internal/metrics"
	"github.com/gaara-aza/saimon/internal/notifier"
	"github.com/gaara-aza/saimon/internal/roster"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
	disabled  bool
}

// NewNotifier creates a new Notifier. When the token or channel is missing,
// messages are logged instead of sent so the service runs without Slack.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	if token == "" || channelID == "" {
		log.Info("Slack is not configured, notifications will be logged instead of sent")
		return &Notifier{
			channelID: channelID,
			metrics:   metrics,
			disabled:  true,
		}
	}
	api := slack.New(token)
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

func (s *Notifier) sendMessage(message slack.Message, dryRun bool) error {
	if dryRun || s.disabled {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)

	if err != nil {
		s.metrics.IncNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", channelID)
		return fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return nil
}

// SendAssignmentNotification announces a fresh team draw.
func (s *Notifier) SendAssignmentNotification(teams []roster.Team, dryRun bool) error {
	return s.sendMessage(s.formatAssignment(teams), dryRun)
}

// SendResultNotification announces a recorded match result.
func (s *Notifier) SendResultNotification(winner roster.Team, winPoints int, dryRun bool) error {
	return s.sendMessage(s.formatResult(winner, winPoints), dryRun)
}

// SendStandings posts the current standings board.
func (s *Notifier) SendStandings(players []roster.Player, dryRun bool) error {
	return s.sendMessage(s.formatStandings(players), dryRun)
}

// FormatStandingsResponse formats a standings message for a slash command response.
func (s *Notifier) FormatStandingsResponse(players []roster.Player) (any, error) {
	return s.formatStandings(players), nil
}
