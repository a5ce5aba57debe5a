package overlay

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/popdeck/pop/internal/push"
)

func TestRegistry_ShowIsIdempotent(t *testing.T) {
	r := NewRegistry()

	first := r.Show(IDQuickCapture, nil)
	second := r.Show(IDQuickCapture, nil)

	assert.Same(t, first, second)
	assert.True(t, second.Visible)
	assert.Len(t, r.Live(), 1)
}

func TestRegistry_FlowCheckTogglesOnRepeatShow(t *testing.T) {
	r := NewRegistry()

	o := r.Show(IDFlowCheck, nil)
	assert.True(t, o.Visible)

	r.Show(IDFlowCheck, nil)
	assert.False(t, o.Visible)

	r.Show(IDFlowCheck, nil)
	assert.True(t, o.Visible)
}

func TestRegistry_HideThenShowMountsFresh(t *testing.T) {
	r := NewRegistry()

	r.Show(IDTruthBadge, map[string]string{"category": "deep"})
	r.Hide(IDTruthBadge)
	require.Nil(t, r.Get(IDTruthBadge))

	o := r.Show(IDTruthBadge, map[string]string{"category": "shallow"})
	assert.Equal(t, "shallow", o.Data["category"])
}

func TestRegistry_HandleAction(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		action push.Action
		wantID string
	}{
		{push.Action{Action: push.ShowQuickCapture}, IDQuickCapture},
		{push.Action{Action: push.ShowFlowCheck}, IDFlowCheck},
		{push.Action{Action: push.ShowTruthBadge, Domain: "news.site", Category: "shallow"}, IDTruthBadge},
		{push.Action{Action: push.CategorizeSite, Domain: "example.com"}, IDCategorizePrompt},
		{push.Action{Action: push.CaptureSelection, Text: "quoted"}, IDSelectionCapture},
	}

	for _, tt := range tests {
		o := r.HandleAction(tt.action)
		require.NotNil(t, o, tt.wantID)
		assert.Equal(t, tt.wantID, o.ID)
	}

	assert.Nil(t, r.HandleAction(push.Action{Action: "nonsense"}))
}

func TestRegistry_TruthBadgeCarriesData(t *testing.T) {
	r := NewRegistry()

	o := r.HandleAction(push.Action{Action: push.ShowTruthBadge, Domain: "github.com", Category: "deep"})
	require.NotNil(t, o)
	assert.Equal(t, "github.com", o.Data["domain"])
	assert.Equal(t, "deep", o.Data["category"])
}

type fakeSnoozer struct {
	mu     sync.Mutex
	url    string
	title  string
	wakeAt time.Time
	err    error
	calls  int
}

func (f *fakeSnoozer) SnoozeTab(ctx context.Context, url, title string, wakeAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.url, f.title, f.wakeAt = url, title, wakeAt
	return f.err
}

func newPromptedTracker(t *testing.T, snoozer Snoozer, closed *bool) (*IdleTracker, chan struct{}, chan struct{}) {
	t.Helper()

	prompted := make(chan struct{}, 4)
	hidden := make(chan struct{}, 4)
	tracker := NewIdleTracker(IdleTrackerOptions{
		Threshold: 20 * time.Millisecond,
		WakeHour:  9,
		Now:       func() time.Time { return time.Date(2026, 8, 28, 15, 0, 0, 0, time.UTC) },
		Snoozer:   snoozer,
		CloseTab:  func() { *closed = true },
		OnPrompt:  func() { prompted <- struct{}{} },
		OnHide:    func() { hidden <- struct{}{} },
	})
	return tracker, prompted, hidden
}

func waitSignal(t *testing.T, ch chan struct{}, what string) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for %s", what)
	}
}

func TestIdleTracker_PromptsAfterThreshold(t *testing.T) {
	closed := false
	tracker, prompted, _ := newPromptedTracker(t, nil, &closed)
	defer tracker.Stop()

	tracker.Start()
	waitSignal(t, prompted, "prompt")
	assert.Equal(t, StatePrompting, tracker.State())
}

func TestIdleTracker_ActivityReArmsAndTearsDownPrompt(t *testing.T) {
	closed := false
	tracker, prompted, hidden := newPromptedTracker(t, nil, &closed)
	defer tracker.Stop()

	tracker.Start()
	waitSignal(t, prompted, "prompt")

	tracker.Activity()
	waitSignal(t, hidden, "teardown")
	assert.Equal(t, StateCounting, tracker.State())

	// Re-armed: it prompts again after another idle period
	waitSignal(t, prompted, "second prompt")
}

func TestIdleTracker_DismissResumesCounting(t *testing.T) {
	closed := false
	tracker, prompted, hidden := newPromptedTracker(t, nil, &closed)
	defer tracker.Stop()

	tracker.Start()
	waitSignal(t, prompted, "prompt")

	tracker.Dismiss()
	waitSignal(t, hidden, "hide")
	assert.Equal(t, StateCounting, tracker.State())
	assert.False(t, closed)
}

func TestIdleTracker_SnoozeSendsTomorrowMorningAndCloses(t *testing.T) {
	closed := false
	snoozer := &fakeSnoozer{}
	tracker, prompted, _ := newPromptedTracker(t, snoozer, &closed)

	tracker.Start()
	waitSignal(t, prompted, "prompt")

	require.NoError(t, tracker.Snooze(context.Background(), "https://example.com/read", "Read later"))

	assert.Equal(t, 1, snoozer.calls)
	assert.Equal(t, "https://example.com/read", snoozer.url)
	assert.Equal(t, time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC), snoozer.wakeAt)
	assert.True(t, closed)
}

func TestIdleTracker_SnoozeFailureKeepsTabOpen(t *testing.T) {
	closed := false
	snoozer := &fakeSnoozer{err: context.DeadlineExceeded}
	tracker, prompted, _ := newPromptedTracker(t, snoozer, &closed)
	defer tracker.Stop()

	tracker.Start()
	waitSignal(t, prompted, "prompt")

	require.Error(t, tracker.Snooze(context.Background(), "https://example.com", ""))
	assert.False(t, closed)
}

func TestIdleTracker_DiscardClosesWithoutPersisting(t *testing.T) {
	closed := false
	snoozer := &fakeSnoozer{}
	tracker, prompted, _ := newPromptedTracker(t, snoozer, &closed)

	tracker.Start()
	waitSignal(t, prompted, "prompt")

	tracker.Discard()
	assert.True(t, closed)
	assert.Equal(t, 0, snoozer.calls)
}
