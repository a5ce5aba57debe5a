package components

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/popdeck/pop/internal/config"
	"github.com/popdeck/pop/internal/daemon"
	"github.com/popdeck/pop/internal/notify"
)

// NotifiersComponent assembles the notification fan-out. The log backend is
// always present; Telegram and Slack join when configured. Button clicks
// coming back from Telegram are routed to the handler installed by the
// coordinator component during its Init, which runs after this one.
type NotifiersComponent struct {
	cfg           *config.NotifiersConfig
	multi         *notify.Multi
	telegram      *notify.TelegramNotifier
	buttonHandler notify.ButtonHandler
	initialized   bool
	mu            sync.RWMutex
}

func NewNotifiersComponent(cfg *config.NotifiersConfig) *NotifiersComponent {
	return &NotifiersComponent{cfg: cfg}
}

func (n *NotifiersComponent) Name() string {
	return "Notifiers"
}

func (n *NotifiersComponent) Dependencies() []string {
	return []string{}
}

// SetButtonHandler installs the click handler for button-capable backends.
// Must be called before Start.
func (n *NotifiersComponent) SetButtonHandler(handler notify.ButtonHandler) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.buttonHandler = handler
}

func (n *NotifiersComponent) Init(ctx context.Context) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	backends := []notify.Notifier{notify.NewLogNotifier()}

	if n.cfg.Telegram.Enabled {
		n.telegram = notify.NewTelegramNotifier(n.cfg.Telegram, n.dispatchButton)
		backends = append(backends, n.telegram)
	}
	if n.cfg.Slack.Enabled {
		backends = append(backends, notify.NewSlackNotifier(n.cfg.Slack))
	}

	n.multi = notify.NewMulti(backends...)
	n.initialized = true
	slog.Info("Notifiers initialized", "component", n.Name(), "backends", len(backends),
		"telegram", n.cfg.Telegram.Enabled, "slack", n.cfg.Slack.Enabled)
	return nil
}

func (n *NotifiersComponent) dispatchButton(ctx context.Context, notificationID string, buttonIndex int) {
	n.mu.RLock()
	handler := n.buttonHandler
	n.mu.RUnlock()

	if handler == nil {
		slog.Warn("Button click with no handler installed", "notification_id", notificationID, "button", buttonIndex)
		return
	}
	handler(ctx, notificationID, buttonIndex)
}

func (n *NotifiersComponent) Start(ctx context.Context) error {
	n.mu.RLock()
	telegram := n.telegram
	initialized := n.initialized
	n.mu.RUnlock()

	if !initialized {
		return fmt.Errorf("notifiers not initialized")
	}
	if telegram != nil {
		if err := telegram.Start(ctx); err != nil {
			return fmt.Errorf("start telegram notifier: %w", err)
		}
	}
	return nil
}

func (n *NotifiersComponent) Stop(ctx context.Context) error {
	n.mu.RLock()
	telegram := n.telegram
	n.mu.RUnlock()

	if telegram != nil {
		return telegram.Stop(ctx)
	}
	return nil
}

func (n *NotifiersComponent) Health(ctx context.Context) (*daemon.ComponentHealth, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	if !n.initialized {
		return &daemon.ComponentHealth{Name: n.Name(), Healthy: false, Error: fmt.Errorf("not initialized")}, nil
	}
	if err := n.multi.Health(ctx); err != nil {
		return &daemon.ComponentHealth{Name: n.Name(), Healthy: false, Error: err}, nil
	}
	return &daemon.ComponentHealth{Name: n.Name(), Healthy: true}, nil
}

// Notifier exposes the fan-out. Valid after Init.
func (n *NotifiersComponent) Notifier() notify.Notifier {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.multi
}
