package slack

import (
	"context"
	"errors"
	"testing"

	"github.com/mauv0809/pool-tournament/internal/metrics"
	"github.com/mauv0809/pool-tournament/internal/tournament"
	"github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockSlackClient struct {
	calls int
	err   error
}

func (m *mockSlackClient) PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error) {
	m.calls++
	if m.err != nil {
		return "", "", m.err
	}
	return channelID, "1234.5678", nil
}

func savedTournament() tournament.SavedTournament {
	return tournament.SavedTournament{
		ID:        "1700000000000",
		Title:     "Spring Championship",
		SavedDate: "3/14/2024",
		Stats: []tournament.PlayerStats{
			{Name: "Ann", TotalPoints: 40, TotalWins: 2},
			{Name: "Bo", TotalPoints: 55, TotalWins: 1},
			{Name: "Cy", TotalPoints: 12, TotalWins: 4},
		},
	}
}

func TestSendTournamentSaved(t *testing.T) {
	t.Run("posts and counts success", func(t *testing.T) {
		api := &mockSlackClient{}
		m := metrics.NewMock()
		n := NewNotifierWithAPI(api, "C123", m)

		require.NoError(t, n.SendTournamentSaved(savedTournament(), false))
		assert.Equal(t, 1, api.calls)
		assert.Equal(t, 1, m.SlackNotifSent())
	})

	t.Run("counts failures", func(t *testing.T) {
		api := &mockSlackClient{err: errors.New("channel_not_found")}
		m := metrics.NewMock()
		n := NewNotifierWithAPI(api, "C123", m)

		assert.Error(t, n.SendTournamentSaved(savedTournament(), false))
		assert.Equal(t, 1, m.SlackNotifFailed())
	})

	t.Run("dry run does not post", func(t *testing.T) {
		api := &mockSlackClient{}
		n := NewNotifierWithAPI(api, "C123", metrics.NewMock())

		require.NoError(t, n.SendTournamentSaved(savedTournament(), true))
		assert.Zero(t, api.calls)
	})
}

func TestFormatTournamentSaved(t *testing.T) {
	n := NewNotifierWithAPI(&mockSlackClient{}, "C123", metrics.NewMock())
	msg := n.formatTournamentSaved(savedTournament())

	blocks := msg.Blocks.BlockSet
	require.Len(t, blocks, 6)

	header, ok := blocks[0].(*slack.HeaderBlock)
	require.True(t, ok)
	assert.Contains(t, header.Text.Text, "Spring Championship")

	points, ok := blocks[2].(*slack.SectionBlock)
	require.True(t, ok)
	assert.Equal(t, "Points Leaderboard:\n1. 🥇 Bo: 55 pts\n2. 🥈 Ann: 40 pts\n3. 🥉 Cy: 12 pts", points.Text.Text)

	wins, ok := blocks[4].(*slack.SectionBlock)
	require.True(t, ok)
	assert.Equal(t, "Wins Leaderboard:\n1. 🥇 Cy: 4 wins\n2. 🥈 Ann: 2 wins\n3. 🥉 Bo: 1 wins", wins.Text.Text)
}

func TestFormatTournamentSaved_NoStats(t *testing.T) {
	n := NewNotifierWithAPI(&mockSlackClient{}, "C123", metrics.NewMock())
	saved := savedTournament()
	saved.Stats = nil

	msg := n.formatTournamentSaved(saved)
	assert.Len(t, msg.Blocks.BlockSet, 3)
}
