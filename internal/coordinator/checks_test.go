package coordinator

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/popdeck/pop/internal/alarm"
	"github.com/popdeck/pop/internal/feature"
)

func TestFlowCheck_ActivePrompts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.coord.RunFlowCheck(ctx)

	n, ok := env.notifier.lastShown()
	require.True(t, ok)
	assert.Equal(t, NotificationFlowCheck, n.ID)
	assert.Equal(t, []string{"Check In", "Pause 30min"}, n.Buttons)
	assert.Equal(t, 1, n.Priority)
}

func TestFlowCheck_DisabledIsSilent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	settings := feature.DefaultSettings()
	settings.Utilities[feature.UtilityFlowThermometer] = feature.UtilitySetting{Enabled: false, Hotkey: "Alt+F"}
	require.NoError(t, feature.SaveSettings(ctx, env.store, settings))

	env.coord.RunFlowCheck(ctx)

	assert.Empty(t, env.notifier.Shown)
}

func TestFlowCheck_PausedIsSilent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	doc := feature.DefaultFlowThermometer()
	until := env.now.Add(20 * time.Minute)
	doc.Paused = true
	doc.PausedUntil = &until
	require.NoError(t, feature.Save(ctx, env.store, feature.KeyFlowThermometer, doc))

	env.coord.RunFlowCheck(ctx)

	assert.Empty(t, env.notifier.Shown)
}

func TestFlowCheck_LapsedPauseResumesAndPrompts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	doc := feature.DefaultFlowThermometer()
	until := env.now.Add(-time.Minute)
	doc.Paused = true
	doc.PausedUntil = &until
	require.NoError(t, feature.Save(ctx, env.store, feature.KeyFlowThermometer, doc))

	env.coord.RunFlowCheck(ctx)

	n, ok := env.notifier.lastShown()
	require.True(t, ok)
	assert.Equal(t, NotificationFlowCheck, n.ID)

	// The active state is written back
	saved := feature.Load(ctx, env.store, feature.KeyFlowThermometer, feature.DefaultFlowThermometer)
	assert.False(t, saved.Paused)
	assert.Nil(t, saved.PausedUntil)
}

func TestFlowCheck_IndefinitePauseIsSilent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	doc := feature.DefaultFlowThermometer()
	doc.Paused = true
	require.NoError(t, feature.Save(ctx, env.store, feature.KeyFlowThermometer, doc))

	env.coord.RunFlowCheck(ctx)

	assert.Empty(t, env.notifier.Shown)
}

func TestButton_FlowCheckInOpensDashboard(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.coord.HandleButton(ctx, NotificationFlowCheck, 0)

	assert.Equal(t, []string{"flow-thermometer"}, env.opener.Dashboards)
	assert.Equal(t, []string{NotificationFlowCheck}, env.notifier.Cleared)
}

func TestButton_FlowPauseWritesPauseState(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.coord.HandleButton(ctx, NotificationFlowCheck, 1)

	doc := feature.Load(ctx, env.store, feature.KeyFlowThermometer, feature.DefaultFlowThermometer)
	assert.True(t, doc.Paused)
	require.NotNil(t, doc.PausedUntil)
	assert.True(t, doc.PausedUntil.Equal(env.now.Add(30*time.Minute)))
	assert.Equal(t, []string{NotificationFlowCheck}, env.notifier.Cleared)
	assert.Empty(t, env.opener.Dashboards)
}

func TestButton_UnknownIDOnlyClears(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.coord.HandleButton(ctx, "someOtherNotification", 0)

	assert.Equal(t, []string{"someOtherNotification"}, env.notifier.Cleared)
	assert.Empty(t, env.opener.Dashboards)
	assert.Empty(t, env.opener.URLs)
}

func TestTabSnoozeCheck_WakesDueTabs(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	doc := feature.DefaultTabSnoozer()
	doc.SnoozedTabs = []feature.SnoozedTab{
		{ID: "a", URL: "https://due.example.com", WakeAt: env.now.Add(-time.Minute)},
		{ID: "b", URL: "https://exact.example.com", WakeAt: env.now},
		{ID: "c", URL: "https://later.example.com", WakeAt: env.now.Add(time.Hour)},
	}
	require.NoError(t, feature.Save(ctx, env.store, feature.KeyTabSnoozer, doc))

	env.coord.RunTabSnoozeCheck(ctx)

	assert.ElementsMatch(t, []string{"https://due.example.com", "https://exact.example.com"}, env.opener.URLs)

	saved := feature.Load(ctx, env.store, feature.KeyTabSnoozer, feature.DefaultTabSnoozer)
	require.Len(t, saved.SnoozedTabs, 1)
	assert.Equal(t, "c", saved.SnoozedTabs[0].ID)

	n, ok := env.notifier.lastShown()
	require.True(t, ok)
	assert.Equal(t, NotificationTabAwake, n.ID)
	assert.Contains(t, n.Message, "2")
}

func TestTabSnoozeCheck_NothingDueIsSilent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	doc := feature.DefaultTabSnoozer()
	doc.SnoozedTabs = []feature.SnoozedTab{
		{ID: "c", URL: "https://later.example.com", WakeAt: env.now.Add(time.Hour)},
	}
	require.NoError(t, feature.Save(ctx, env.store, feature.KeyTabSnoozer, doc))

	env.coord.RunTabSnoozeCheck(ctx)

	assert.Empty(t, env.opener.URLs)
	assert.Empty(t, env.notifier.Shown)
}

func TestTabSnoozeCheck_DisabledIsSilent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	settings := feature.DefaultSettings()
	settings.Utilities[feature.UtilityTabSnoozer] = feature.UtilitySetting{Enabled: false, Hotkey: "Alt+B"}
	require.NoError(t, feature.SaveSettings(ctx, env.store, settings))

	doc := feature.DefaultTabSnoozer()
	doc.SnoozedTabs = []feature.SnoozedTab{
		{ID: "a", URL: "https://due.example.com", WakeAt: env.now.Add(-time.Minute)},
	}
	require.NoError(t, feature.Save(ctx, env.store, feature.KeyTabSnoozer, doc))

	env.coord.RunTabSnoozeCheck(ctx)

	assert.Empty(t, env.opener.URLs)
	assert.Empty(t, env.notifier.Shown)
}

// Default schedule is Friday 16:00; 2026-08-28 is a Friday.
func reviewTime() time.Time {
	return time.Date(2026, 8, 28, 16, 10, 0, 0, time.Local)
}

func TestWeeklyReview_PromptsInsideWindowOncePerDay(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.now = reviewTime()

	env.coord.RunWeeklyReviewCheck(ctx)

	assert.Equal(t, []string{"weekly-review"}, env.opener.Dashboards)
	n, ok := env.notifier.lastShown()
	require.True(t, ok)
	assert.Equal(t, NotificationWeeklyReview, n.ID)
	assert.Equal(t, 2, n.Priority)

	saved := feature.Load(ctx, env.store, feature.KeyWeeklyReview, feature.DefaultWeeklyReview)
	assert.Equal(t, feature.DateKey(env.now), saved.LastPromptDate)

	// A second firing in the same window stays silent
	env.now = env.now.Add(30 * time.Minute)
	env.coord.RunWeeklyReviewCheck(ctx)
	assert.Len(t, env.notifier.Shown, 1)
	assert.Len(t, env.opener.Dashboards, 1)
}

func TestWeeklyReview_OutsideWindowIsSilent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// Friday but 10:00, before the 16:00 window
	env.coord.RunWeeklyReviewCheck(ctx)
	assert.Empty(t, env.notifier.Shown)

	// Right hour, wrong day (Saturday)
	env.now = time.Date(2026, 8, 29, 16, 10, 0, 0, time.Local)
	env.coord.RunWeeklyReviewCheck(ctx)
	assert.Empty(t, env.notifier.Shown)

	// Right day and hour, before the scheduled minute
	doc := feature.DefaultWeeklyReview()
	doc.Schedule.Minute = 30
	require.NoError(t, feature.Save(ctx, env.store, feature.KeyWeeklyReview, doc))
	env.now = time.Date(2026, 8, 28, 16, 10, 0, 0, time.Local)
	env.coord.RunWeeklyReviewCheck(ctx)
	assert.Empty(t, env.notifier.Shown)
}

func TestWeeklyReview_NextWeekPromptsAgain(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.now = reviewTime()

	env.coord.RunWeeklyReviewCheck(ctx)
	require.Len(t, env.notifier.Shown, 1)

	// Following Friday
	env.now = env.now.AddDate(0, 0, 7)
	env.coord.RunWeeklyReviewCheck(ctx)
	assert.Len(t, env.notifier.Shown, 2)
}

func TestWeeklyReview_DisabledIsSilent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.now = reviewTime()

	settings := feature.DefaultSettings()
	settings.Utilities[feature.UtilityWeeklyReview] = feature.UtilitySetting{Enabled: false, Hotkey: "Alt+W"}
	require.NoError(t, feature.SaveSettings(ctx, env.store, settings))

	env.coord.RunWeeklyReviewCheck(ctx)

	assert.Empty(t, env.notifier.Shown)
	assert.Empty(t, env.opener.Dashboards)
}

func TestHandleAlarm_RoutesByName(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.coord.HandleAlarm(ctx, alarm.FlowCheck)
	n, ok := env.notifier.lastShown()
	require.True(t, ok)
	assert.Equal(t, NotificationFlowCheck, n.ID)

	// Unknown names are ignored without side effects
	before := len(env.notifier.Shown)
	env.coord.HandleAlarm(ctx, "somethingElse")
	assert.Len(t, env.notifier.Shown, before)
}
