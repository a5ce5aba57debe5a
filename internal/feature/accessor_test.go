package feature

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/popdeck/pop/internal/storage"
)

func TestLoad_AbsentYieldsDefault(t *testing.T) {
	s := storage.NewMemoryStore()

	doc := Load(context.Background(), s, KeyFlowThermometer, DefaultFlowThermometer)

	assert.Equal(t, 30, doc.IntervalMinutes)
	assert.False(t, doc.Paused)
	assert.Nil(t, doc.PausedUntil)
	assert.NotNil(t, doc.Readings)
}

func TestLoad_UnparsableYieldsDefault(t *testing.T) {
	ctx := context.Background()
	s := storage.NewMemoryStore()
	require.NoError(t, s.Set(ctx, KeyTabSnoozer, json.RawMessage(`[1,2,3]`)))

	doc := Load(ctx, s, KeyTabSnoozer, DefaultTabSnoozer)

	assert.Equal(t, 5, doc.IdleThresholdMinutes)
	assert.Equal(t, 24, doc.DefaultSnoozeHours)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := storage.NewMemoryStore()

	wake := time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC)
	doc := DefaultTabSnoozer()
	doc.SnoozedTabs = append(doc.SnoozedTabs, SnoozedTab{
		ID:     "01ARZ3NDEKTSV4RRFFQ69G5FAV",
		URL:    "https://example.com/read-later",
		Title:  "Read later",
		WakeAt: wake,
	})
	require.NoError(t, Save(ctx, s, KeyTabSnoozer, doc))

	got := Load(ctx, s, KeyTabSnoozer, DefaultTabSnoozer)
	require.Len(t, got.SnoozedTabs, 1)
	assert.Equal(t, "https://example.com/read-later", got.SnoozedTabs[0].URL)
	assert.True(t, got.SnoozedTabs[0].WakeAt.Equal(wake))
}

func TestDefaultShapes(t *testing.T) {
	assert.Empty(t, DefaultCognitiveOffload().Thoughts)
	assert.Len(t, DefaultWeeklyReview().Questions, 5)
	assert.Equal(t, ReviewSchedule{Day: 5, Hour: 16, Minute: 0, Dismissible: true, DurationMinutes: 15}, DefaultWeeklyReview().Schedule)
	assert.Equal(t, 85, DefaultLifeCalculator().ExpectedLifespan)
	assert.Equal(t, 112, DefaultLifeCalculator().WeeklyHours)
	assert.NotEmpty(t, DefaultQuestionPrimer().DeepWorkSites)
	assert.Equal(t, "Progress Points", DefaultMasteryGraph().Metric.Name)
	assert.True(t, DefaultDigitalCleaner().CleanOnStartup)
	assert.Contains(t, DefaultCashFlow().Categories.Income, "Salary")
}

func TestDateKey(t *testing.T) {
	assert.Equal(t, "2026-08-29", DateKey(time.Date(2026, 8, 29, 23, 59, 0, 0, time.Local)))
}
