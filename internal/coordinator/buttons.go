package coordinator

import (
	"context"
	"log/slog"
	"time"

	"github.com/popdeck/pop/internal/feature"
)

// HandleButton routes a notification button click. The notification is
// cleared unconditionally, even for unknown IDs.
func (c *Coordinator) HandleButton(ctx context.Context, notificationID string, buttonIndex int) {
	switch notificationID {
	case NotificationFlowCheck:
		if buttonIndex == 0 {
			// Check In
			c.openDashboardQuietly(ctx, "flow-thermometer")
		} else {
			// Any other button pauses for 30 minutes
			c.pauseFlowChecks(ctx, 30*time.Minute)
		}
	default:
		slog.Debug("Button click on unhandled notification", "id", notificationID, "index", buttonIndex)
	}

	if err := c.notifier.Clear(ctx, notificationID); err != nil {
		slog.Warn("Failed to clear notification", "id", notificationID, "error", err)
	}
}

func (c *Coordinator) pauseFlowChecks(ctx context.Context, d time.Duration) {
	c.locks.Lock(feature.KeyFlowThermometer)
	defer c.locks.Unlock(feature.KeyFlowThermometer)

	doc := feature.Load(ctx, c.store, feature.KeyFlowThermometer, feature.DefaultFlowThermometer)
	until := c.now().Add(d)
	doc.Paused = true
	doc.PausedUntil = &until

	if err := feature.Save(ctx, c.store, feature.KeyFlowThermometer, doc); err != nil {
		slog.Warn("Failed to pause flow checks", "error", err)
	}
}
