package coordinator

import (
	"context"
	"log/slog"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/popdeck/pop/internal/alarm"
	"github.com/popdeck/pop/internal/concurrency"
	"github.com/popdeck/pop/internal/notify"
	"github.com/popdeck/pop/internal/push"
	"github.com/popdeck/pop/internal/storage"
)

// Opener opens URLs and dashboard views on the user's machine. The daemon
// treats open failures as non-fatal.
type Opener interface {
	OpenURL(ctx context.Context, url string) error
	OpenDashboard(ctx context.Context, anchor string) error
}

// Coordinator owns the background checks, notification routing, message
// handling, and command dispatch. It is woken by discrete events (alarm
// fires, inbound messages, button clicks) and returns promptly.
type Coordinator struct {
	store    storage.Store
	notifier notify.Notifier
	opener   Opener
	hub      *push.Hub
	locks    *concurrency.KeyedLockManager
	now      func() time.Time
}

func New(store storage.Store, notifier notify.Notifier, opener Opener, hub *push.Hub) *Coordinator {
	return &Coordinator{
		store:    store,
		notifier: notifier,
		opener:   opener,
		hub:      hub,
		locks:    concurrency.NewKeyedLockManager(),
		now:      time.Now,
	}
}

// SetClock overrides the coordinator clock. Test hook.
func (c *Coordinator) SetClock(now func() time.Time) {
	c.now = now
}

// Hub exposes the push hub for the HTTP surface's long-poll endpoint.
func (c *Coordinator) Hub() *push.Hub {
	return c.hub
}

// HandleAlarm dispatches a fired alarm to its check. Unknown alarm names are
// ignored.
func (c *Coordinator) HandleAlarm(ctx context.Context, name string) {
	switch name {
	case alarm.FlowCheck:
		c.RunFlowCheck(ctx)
	case alarm.TabSnoozeCheck:
		c.RunTabSnoozeCheck(ctx)
	case alarm.WeeklyReviewCheck:
		c.RunWeeklyReviewCheck(ctx)
	default:
		slog.Debug("Ignoring unknown alarm", "alarm", name)
	}
}

func (c *Coordinator) notifyQuietly(ctx context.Context, n notify.Notification) {
	if err := c.notifier.Show(ctx, n); err != nil {
		slog.Warn("Notification failed", "id", n.ID, "error", err)
	}
}

func (c *Coordinator) openURLQuietly(ctx context.Context, url string) {
	if err := c.opener.OpenURL(ctx, url); err != nil {
		slog.Warn("Failed to open URL", "url", url, "error", err)
	}
}

func (c *Coordinator) openDashboardQuietly(ctx context.Context, anchor string) {
	if err := c.opener.OpenDashboard(ctx, anchor); err != nil {
		slog.Warn("Failed to open dashboard", "anchor", anchor, "error", err)
	}
}

func newID() string {
	return ulid.Make().String()
}
