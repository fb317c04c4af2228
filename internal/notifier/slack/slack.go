package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/pool-tournament/internal/metrics"
	"github.com/mauv0809/pool-tournament/internal/notifier"
	"github.com/mauv0809/pool-tournament/internal/tournament"
	"github.com/slack-go/slack"
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
}

// NewNotifier creates a new Notifier.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
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

func (s *Notifier) sendMessage(message slack.Message, dryRun bool) (string, string, error) {
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-channel", "dry-run-ts", nil
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
		s.metrics.IncSlackNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", s.channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncSlackNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

// SendTournamentSaved announces the final standings of an archived tournament.
func (s *Notifier) SendTournamentSaved(saved tournament.SavedTournament, dryRun bool) error {
	msg := s.formatTournamentSaved(saved)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

// formatTournamentSaved creates the Slack message for an archived tournament using Block Kit.
func (s *Notifier) formatTournamentSaved(saved tournament.SavedTournament) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", fmt.Sprintf("🎱 %s is over! 🎱", saved.Title), true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))
	blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject("plain_text", "Saved on "+saved.SavedDate, true, false)))

	if len(saved.Stats) == 0 {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", "No games were scored.", true, false), nil, nil))
		return slack.NewBlockMessage(blocks...)
	}

	byPoints := tournament.RankByPoints(saved.Stats)
	byWins := tournament.RankByWins(saved.Stats)

	blocks = append(blocks, slack.NewSectionBlock(
		slack.NewTextBlockObject("plain_text", "Points Leaderboard:\n"+leaderboard(byPoints, func(p tournament.PlayerStats) string {
			return fmt.Sprintf("%d pts", p.TotalPoints)
		}), true, false), nil, nil))
	blocks = append(blocks, slack.NewDividerBlock())
	blocks = append(blocks, slack.NewSectionBlock(
		slack.NewTextBlockObject("plain_text", "Wins Leaderboard:\n"+leaderboard(byWins, func(p tournament.PlayerStats) string {
			return fmt.Sprintf("%d wins", p.TotalWins)
		}), true, false), nil, nil))

	champion := byPoints[0]
	blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject("plain_text", fmt.Sprintf("🏆 Congratulations %s!", champion.Name), true, false)))

	return slack.NewBlockMessage(blocks...)
}

func leaderboard(stats []tournament.PlayerStats, value func(tournament.PlayerStats) string) string {
	lines := make([]string, 0, len(stats))
	for i, stat := range stats {
		rank := i + 1
		var medal string
		switch rank {
		case 1:
			medal = "🥇 "
		case 2:
			medal = "🥈 "
		case 3:
			medal = "🥉 "
		}
		lines = append(lines, fmt.Sprintf("%d. %s%s: %s", rank, medal, stat.Name, value(stat)))
	}
	return strings.Join(lines, "\n")
}
