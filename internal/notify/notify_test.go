package notify

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/popdeck/pop/internal/errors"
)

// FakeNotifier records notifications for assertions in this and other
// packages' tests.
type FakeNotifier struct {
	mu      sync.Mutex
	Shown   []Notification
	Cleared []string
	FailAll bool
}

func NewFakeNotifier() *FakeNotifier {
	return &FakeNotifier{}
}

func (f *FakeNotifier) Name() string { return "fake" }

func (f *FakeNotifier) Show(ctx context.Context, n Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailAll {
		return errors.Unavailable("fake notifier down")
	}
	f.Shown = append(f.Shown, n)
	return nil
}

func (f *FakeNotifier) Clear(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailAll {
		return errors.Unavailable("fake notifier down")
	}
	f.Cleared = append(f.Cleared, id)
	return nil
}

func (f *FakeNotifier) Health(ctx context.Context) error {
	if f.FailAll {
		return errors.Unavailable("fake notifier down")
	}
	return nil
}

// LastShown returns the most recent notification, if any.
func (f *FakeNotifier) LastShown() (Notification, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.Shown) == 0 {
		return Notification{}, false
	}
	return f.Shown[len(f.Shown)-1], true
}

func TestMulti_FansOut(t *testing.T) {
	ctx := context.Background()
	first := NewFakeNotifier()
	second := NewFakeNotifier()
	multi := NewMulti(first, second)

	n := Notification{ID: "flowCheck", Title: "Flow Check", Buttons: []string{"Check In", "Pause 30min"}}
	require.NoError(t, multi.Show(ctx, n))
	require.NoError(t, multi.Clear(ctx, "flowCheck"))

	assert.Len(t, first.Shown, 1)
	assert.Len(t, second.Shown, 1)
	assert.Equal(t, []string{"flowCheck"}, first.Cleared)
}

func TestMulti_SwallowsBackendFailures(t *testing.T) {
	ctx := context.Background()
	broken := NewFakeNotifier()
	broken.FailAll = true
	working := NewFakeNotifier()
	multi := NewMulti(broken, working)

	require.NoError(t, multi.Show(ctx, Notification{ID: "weeklyReview"}))

	assert.Len(t, working.Shown, 1)
}

func TestLogNotifier_AlwaysSucceeds(t *testing.T) {
	ctx := context.Background()
	l := NewLogNotifier()

	require.NoError(t, l.Show(ctx, Notification{ID: "tabAwake", Message: "2 tabs woke up"}))
	require.NoError(t, l.Clear(ctx, "tabAwake"))
	require.NoError(t, l.Health(ctx))
}

func TestParseCallbackData(t *testing.T) {
	id, index, err := parseCallbackData("flowCheck:1")
	require.NoError(t, err)
	assert.Equal(t, "flowCheck", id)
	assert.Equal(t, 1, index)

	_, _, err = parseCallbackData("garbage")
	require.Error(t, err)

	_, _, err = parseCallbackData("flowCheck:notanumber")
	require.Error(t, err)
}
