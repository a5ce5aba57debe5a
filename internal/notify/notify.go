package notify

import (
	"context"
	"log/slog"
)

// Notification is one user-facing prompt. Buttons are optional; backends
// that cannot render buttons show the message alone.
type Notification struct {
	ID       string
	Title    string
	Message  string
	Buttons  []string
	Priority int
}

// ButtonHandler receives button clicks flowing back from a notifier backend.
type ButtonHandler func(ctx context.Context, notificationID string, buttonIndex int)

// Notifier delivers notifications to the user. Implementations degrade
// gracefully; callers treat every error here as non-fatal.
type Notifier interface {
	// Name returns the backend name (e.g. "telegram", "slack", "log").
	Name() string

	// Show delivers the notification, replacing any live notification with
	// the same ID.
	Show(ctx context.Context, n Notification) error

	// Clear dismisses a live notification. Clearing an unknown ID is a no-op.
	Clear(ctx context.Context, id string) error

	// Health checks if the backend is reachable.
	Health(ctx context.Context) error
}

// Multi fans a notification out to several backends. Show and Clear succeed
// if any backend does; per-backend failures are logged and swallowed.
type Multi struct {
	notifiers []Notifier
}

func NewMulti(notifiers ...Notifier) *Multi {
	return &Multi{notifiers: notifiers}
}

func (m *Multi) Name() string {
	return "multi"
}

func (m *Multi) Show(ctx context.Context, n Notification) error {
	for _, backend := range m.notifiers {
		if err := backend.Show(ctx, n); err != nil {
			slog.Warn("Notifier failed to show", "notifier", backend.Name(), "id", n.ID, "error", err)
		}
	}
	return nil
}

func (m *Multi) Clear(ctx context.Context, id string) error {
	for _, backend := range m.notifiers {
		if err := backend.Clear(ctx, id); err != nil {
			slog.Warn("Notifier failed to clear", "notifier", backend.Name(), "id", id, "error", err)
		}
	}
	return nil
}

func (m *Multi) Health(ctx context.Context) error {
	for _, backend := range m.notifiers {
		if err := backend.Health(ctx); err != nil {
			return err
		}
	}
	return nil
}

// LogNotifier writes notifications to the structured log. Always available;
// it is the fallback backend when nothing else is configured.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (l *LogNotifier) Name() string {
	return "log"
}

func (l *LogNotifier) Show(ctx context.Context, n Notification) error {
	slog.Info("Notification",
		"id", n.ID,
		"title", n.Title,
		"message", n.Message,
		"buttons", n.Buttons,
		"priority", n.Priority,
	)
	return nil
}

func (l *LogNotifier) Clear(ctx context.Context, id string) error {
	slog.Debug("Notification cleared", "id", id)
	return nil
}

func (l *LogNotifier) Health(ctx context.Context) error {
	return nil
}
