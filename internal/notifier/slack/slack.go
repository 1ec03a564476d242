package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/league-hub/internal/metrics"
	"github.com/mauv0809/league-hub/internal/notifier"
	"github.com/slack-go/slack"
)

const channel = "slack"

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier posts admin alerts to a Slack channel.
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

func (s *Notifier) sendMessage(ctx context.Context, message slack.Message, dryRun bool) (string, string, error) {
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-ts", "dry-run-thread-ts", nil
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)

	if err != nil {
		s.metrics.IncNotifFailed(channel)
		log.Error("Failed to send Slack message", "error", err, "channel", s.channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncNotifSent(channel)
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

func (s *Notifier) SendRegistrationReceived(ctx context.Context, n notifier.RegistrationReceived, dryRun bool) error {
	_, _, err := s.sendMessage(ctx, s.formatRegistrationReceived(n), dryRun)
	return err
}

func (s *Notifier) SendApprovalConfirmed(ctx context.Context, n notifier.ApprovalConfirmed, dryRun bool) error {
	_, _, err := s.sendMessage(ctx, s.formatApprovalConfirmed(n), dryRun)
	return err
}

func (s *Notifier) SendWelcome(ctx context.Context, n notifier.Welcome, dryRun bool) error {
	_, _, err := s.sendMessage(ctx, s.formatWelcome(n), dryRun)
	return err
}

// formatRegistrationReceived creates the admin alert for a new registration using Block Kit.
func (s *Notifier) formatRegistrationReceived(n notifier.RegistrationReceived) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "🏀 New team registration! 🏀", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	detailsText := fmt.Sprintf("Team: %s\nLeague: %s\nCaptain: %s <%s>", n.TeamName, n.LeagueName, n.CaptainName, n.To)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", detailsText, true, false), nil, nil))

	fields := []*slack.TextBlockObject{
		slack.NewTextBlockObject("plain_text", fmt.Sprintf("Players: %d", n.PlayerCount), true, false),
		slack.NewTextBlockObject("plain_text", fmt.Sprintf("Fee: %d€", n.Amount), true, false),
	}
	blocks = append(blocks, slack.NewSectionBlock(nil, fields, nil))

	if n.RegistrationID != "" {
		contextText := slack.NewTextBlockObject("plain_text", "Awaiting payment. Registration "+n.RegistrationID, true, false)
		blocks = append(blocks, slack.NewContextBlock("", contextText))
	}

	return slack.NewBlockMessage(blocks...)
}

// formatApprovalConfirmed creates the admin alert for an approved team.
func (s *Notifier) formatApprovalConfirmed(n notifier.ApprovalConfirmed) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "✅ Team approved!", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	detailsText := fmt.Sprintf("%s is now an official team in %s.\nCaptain: %s", n.TeamName, n.LeagueName, n.CaptainName)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", detailsText, true, false), nil, nil))

	return slack.NewBlockMessage(blocks...)
}

// formatWelcome creates the admin alert for a new account.
func (s *Notifier) formatWelcome(n notifier.Welcome) slack.Message {
	text := slack.NewTextBlockObject("plain_text", fmt.Sprintf("👋 New account created for %s", n.FullName), true, false)
	return slack.NewBlockMessage(slack.NewSectionBlock(text, nil, nil))
}
