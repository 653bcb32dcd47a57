package slack

import (
	"context"
	"errors"
	"testing"

	slackapi "github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaara-aza/saimon/internal/metrics"
	"github.com/gaara-aza/saimon/internal/roster"
)

// mockSlackAPI is a mock implementation of the parts of the slack.Client that we use.
type mockSlackAPI struct {
	postMessageContextFunc func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error)
}

func (m *mockSlackAPI) PostMessageContext(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
	if m.postMessageContextFunc != nil {
		return m.postMessageContextFunc(ctx, channelID, options...)
	}
	return "C12345", "123456789.12345", nil
}

func sampleTeams() []roster.Team {
	captain := roster.Player{ID: 1, Name: "Anna"}
	return []roster.Team{
		{ID: 1, Name: "Team 1", Captain: &captain, Players: []roster.Player{captain, {ID: 2, Name: "Boris"}}},
		{ID: 2, Name: "Team 2", Players: []roster.Player{{ID: 3, Name: "Clara"}, {ID: 4, Name: "Dan"}}},
		{ID: 3, Name: "Team 3", Players: []roster.Player{}},
	}
}

func TestSendMessage_DryRun(t *testing.T) {
	m := metrics.NewMock()
	// Pass nil for the api, as it shouldn't be called in dry-run mode.
	n := NewNotifierWithAPI(nil, "C123", m)

	err := n.SendAssignmentNotification(sampleTeams(), true)
	require.NoError(t, err)
	assert.Zero(t, m.NotifSentCalls)
}

func TestSendMessage_Unconfigured(t *testing.T) {
	m := metrics.NewMock()
	// Without a token and channel the notifier must never hit the API,
	// even when the caller did not ask for a dry run.
	n := NewNotifier("", "", m)

	err := n.SendAssignmentNotification(sampleTeams(), false)
	require.NoError(t, err)
	assert.Zero(t, m.NotifSentCalls)
	assert.Zero(t, m.NotifFailedCalls)
}

func TestSendMessage_Success(t *testing.T) {
	postMessageCalled := false
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			postMessageCalled = true
			assert.Equal(t, "C123", channelID)
			return "C123", "ts123", nil
		},
	}

	m := metrics.NewMock()
	n := NewNotifierWithAPI(api, "C123", m)

	err := n.SendAssignmentNotification(sampleTeams(), false)
	require.NoError(t, err)
	assert.True(t, postMessageCalled, "PostMessageContext should have been called")
	assert.Equal(t, 1, m.NotifSentCalls)
	assert.Equal(t, 0, m.NotifFailedCalls)
}

func TestSendMessage_Failure(t *testing.T) {
	expectedErr := errors.New("slack API is down")
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			return "", "", expectedErr
		},
	}

	m := metrics.NewMock()
	n := NewNotifierWithAPI(api, "C123", m)

	err := n.SendResultNotification(sampleTeams()[0], 3, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, expectedErr)
	assert.Equal(t, 0, m.NotifSentCalls)
	assert.Equal(t, 1, m.NotifFailedCalls)
}

func TestFormatAssignment(t *testing.T) {
	n := &Notifier{channelID: "C123"}
	msg := n.formatAssignment(sampleTeams())

	// Header plus one section per team.
	require.Len(t, msg.Blocks.BlockSet, 4)

	header, ok := msg.Blocks.BlockSet[0].(*slackapi.HeaderBlock)
	require.True(t, ok)
	assert.Contains(t, header.Text.Text, "Teams are drawn")

	first, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
	require.True(t, ok)
	assert.Contains(t, first.Text.Text, "Team 1")
	assert.Contains(t, first.Text.Text, "Anna (C)")
	assert.Contains(t, first.Text.Text, "Boris")

	empty, ok := msg.Blocks.BlockSet[3].(*slackapi.SectionBlock)
	require.True(t, ok)
	assert.Contains(t, empty.Text.Text, "(empty)")
}

func TestFormatResult(t *testing.T) {
	n := &Notifier{channelID: "C123"}
	msg := n.formatResult(sampleTeams()[1], 3)

	require.Len(t, msg.Blocks.BlockSet, 2)
	section, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
	require.True(t, ok)
	assert.Contains(t, section.Text.Text, "Team 2 wins!")
	assert.Contains(t, section.Text.Text, "Clara, Dan")
	assert.Contains(t, section.Text.Text, "3 points")
}

func TestFormatStandings(t *testing.T) {
	n := &Notifier{channelID: "C123"}

	t.Run("with players", func(t *testing.T) {
		players := []roster.Player{
			{ID: 1, Name: "Anna", GamesPlayed: 2, GamesWon: 2, Points: 6},
			{ID: 2, Name: "Boris", GamesPlayed: 2, GamesWon: 0, Points: 0},
		}
		msg := n.formatStandings(players)
		require.Len(t, msg.Blocks.BlockSet, 2)
		section, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
		require.True(t, ok)
		assert.Contains(t, section.Text.Text, "1. Anna: 6 pts (2/2 won)")
		assert.Contains(t, section.Text.Text, "2. Boris: 0 pts (0/2 won)")
	})

	t.Run("empty roster", func(t *testing.T) {
		msg := n.formatStandings(nil)
		require.Len(t, msg.Blocks.BlockSet, 2)
		section, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
		require.True(t, ok)
		assert.Contains(t, section.Text.Text, "No players registered yet")
	})
}
