package notify

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/popdeck/pop/internal/config"
	"github.com/popdeck/pop/internal/errors"

	"github.com/slack-go/slack"
)

// SlackNotifier posts notifications to a Slack channel. Message-only: Slack
// has no dismissible buttons in this setup, so button labels render as a
// hint line instead.
type SlackNotifier struct {
	client  *slack.Client
	channel string

	mu   sync.Mutex
	live map[string]string // notification ID -> message timestamp
}

func NewSlackNotifier(cfg config.SlackConfig) *SlackNotifier {
	return &SlackNotifier{
		client:  slack.New(cfg.BotToken),
		channel: cfg.Channel,
		live:    make(map[string]string),
	}
}

func (s *SlackNotifier) Name() string {
	return "slack"
}

func (s *SlackNotifier) Show(ctx context.Context, n Notification) error {
	text := n.Message
	if n.Title != "" {
		text = fmt.Sprintf("*%s*\n%s", n.Title, n.Message)
	}
	if len(n.Buttons) > 0 {
		text += "\n_Respond from the dashboard: " + fmt.Sprint(n.Buttons) + "_"
	}

	if err := s.Clear(ctx, n.ID); err != nil {
		slog.Debug("Failed to clear previous slack notification", "id", n.ID, "error", err)
	}

	_, timestamp, err := s.client.PostMessageContext(ctx, s.channel,
		slack.MsgOptionText(text, false),
	)
	if err != nil {
		return errors.MapError(err)
	}

	s.mu.Lock()
	s.live[n.ID] = timestamp
	s.mu.Unlock()

	slog.Debug("Slack notification sent", "id", n.ID, "channel", s.channel)
	return nil
}

func (s *SlackNotifier) Clear(ctx context.Context, id string) error {
	s.mu.Lock()
	timestamp, ok := s.live[id]
	delete(s.live, id)
	s.mu.Unlock()

	if !ok {
		return nil
	}

	if _, _, err := s.client.DeleteMessageContext(ctx, s.channel, timestamp); err != nil {
		return errors.MapError(err)
	}
	return nil
}

func (s *SlackNotifier) Health(ctx context.Context) error {
	if _, err := s.client.AuthTestContext(ctx); err != nil {
		return errors.Transient("slack connection failed: " + err.Error())
	}
	return nil
}
