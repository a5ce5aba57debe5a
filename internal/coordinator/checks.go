package coordinator

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/popdeck/pop/internal/feature"
	"github.com/popdeck/pop/internal/notify"
)

// Notification IDs. Button clicks route on these, so they are stable.
const (
	NotificationFlowCheck    = "flowCheck"
	NotificationTabAwake     = "tabAwake"
	NotificationWeeklyReview = "weeklyReview"
	NotificationLinkSaved    = "linkSaved"
)

// RunFlowCheck prompts for a flow reading unless the feature is disabled or
// paused. A pause whose deadline has lapsed is unwound here (lazy unpause)
// before the prompt goes out. Every guard failure is a silent no-op.
func (c *Coordinator) RunFlowCheck(ctx context.Context) {
	settings := feature.LoadSettings(ctx, c.store)
	if !settings.UtilityEnabled(feature.UtilityFlowThermometer) {
		return
	}

	c.locks.Lock(feature.KeyFlowThermometer)
	defer c.locks.Unlock(feature.KeyFlowThermometer)

	doc := feature.Load(ctx, c.store, feature.KeyFlowThermometer, feature.DefaultFlowThermometer)
	if doc.Paused {
		if doc.PausedUntil == nil || doc.PausedUntil.After(c.now()) {
			return
		}

		// Pause lapsed: resume and persist the active state
		doc.Paused = false
		doc.PausedUntil = nil
		if err := feature.Save(ctx, c.store, feature.KeyFlowThermometer, doc); err != nil {
			slog.Warn("Failed to unpause flow thermometer", "error", err)
			return
		}
	}

	c.PromptFlowCheck(ctx)
}

// PromptFlowCheck sends the flow check notification unconditionally. Manual
// override path; the alarm path goes through RunFlowCheck's guards.
func (c *Coordinator) PromptFlowCheck(ctx context.Context) {
	c.notifyQuietly(ctx, notify.Notification{
		ID:       NotificationFlowCheck,
		Title:    "Flow Check 🌡️",
		Message:  "How is your current task going? Rate your flow state.",
		Buttons:  []string{"Check In", "Pause 30min"},
		Priority: 1,
	})
}

// RunTabSnoozeCheck wakes snoozed tabs whose deadline has passed: one
// get-mutate-set cycle on the tab snoozer document, opening each woken URL
// and keeping the rest. A concurrent writer between the get and the set
// loses its update; the next check period repairs any stragglers.
func (c *Coordinator) RunTabSnoozeCheck(ctx context.Context) {
	settings := feature.LoadSettings(ctx, c.store)
	if !settings.UtilityEnabled(feature.UtilityTabSnoozer) {
		return
	}

	c.locks.Lock(feature.KeyTabSnoozer)
	defer c.locks.Unlock(feature.KeyTabSnoozer)

	doc := feature.Load(ctx, c.store, feature.KeyTabSnoozer, feature.DefaultTabSnoozer)
	now := c.now()

	awake := make([]feature.SnoozedTab, 0)
	asleep := make([]feature.SnoozedTab, 0, len(doc.SnoozedTabs))
	for _, tab := range doc.SnoozedTabs {
		if !tab.WakeAt.After(now) {
			awake = append(awake, tab)
		} else {
			asleep = append(asleep, tab)
		}
	}

	if len(awake) == 0 {
		return
	}

	for _, tab := range awake {
		c.openURLQuietly(ctx, tab.URL)
	}

	doc.SnoozedTabs = asleep
	if err := feature.Save(ctx, c.store, feature.KeyTabSnoozer, doc); err != nil {
		slog.Warn("Failed to persist woken tabs", "error", err)
	}

	c.notifyQuietly(ctx, notify.Notification{
		ID:       NotificationTabAwake,
		Title:    "Tabs Awakened 😴→👀",
		Message:  fmt.Sprintf("%d snoozed tab(s) have been opened.", len(awake)),
		Priority: 1,
	})
}

// RunWeeklyReviewCheck prompts for the weekly review inside the hour-wide
// window starting at the scheduled day/hour/minute, at most once per
// calendar day. The lastPromptDate stamp is written before any side effect,
// so a crash mid-prompt skips the rest of the day instead of double
// prompting.
func (c *Coordinator) RunWeeklyReviewCheck(ctx context.Context) {
	settings := feature.LoadSettings(ctx, c.store)
	if !settings.UtilityEnabled(feature.UtilityWeeklyReview) {
		return
	}

	c.locks.Lock(feature.KeyWeeklyReview)
	defer c.locks.Unlock(feature.KeyWeeklyReview)

	doc := feature.Load(ctx, c.store, feature.KeyWeeklyReview, feature.DefaultWeeklyReview)
	now := c.now()
	schedule := doc.Schedule

	if int(now.Weekday()) != schedule.Day || now.Hour() != schedule.Hour {
		return
	}
	if now.Minute() < schedule.Minute {
		return
	}

	today := feature.DateKey(now)
	if doc.LastPromptDate == today {
		return
	}

	doc.LastPromptDate = today
	if err := feature.Save(ctx, c.store, feature.KeyWeeklyReview, doc); err != nil {
		slog.Warn("Failed to stamp weekly review prompt date", "error", err)
		return
	}

	c.PromptWeeklyReview(ctx)
}

// PromptWeeklyReview opens the review view and notifies. Manual override
// path; the alarm path goes through RunWeeklyReviewCheck's guards.
func (c *Coordinator) PromptWeeklyReview(ctx context.Context) {
	c.openDashboardQuietly(ctx, "weekly-review")
	c.notifyQuietly(ctx, notify.Notification{
		ID:       NotificationWeeklyReview,
		Title:    "Weekly Review Time 📋",
		Message:  "Time for your weekly reflection. Take 15 minutes to review your week.",
		Priority: 2,
	})
}
