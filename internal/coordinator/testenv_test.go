package coordinator

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/popdeck/pop/internal/notify"
	"github.com/popdeck/pop/internal/push"
	"github.com/popdeck/pop/internal/storage"
)

type fakeOpener struct {
	mu         sync.Mutex
	URLs       []string
	Dashboards []string
}

func (f *fakeOpener) OpenURL(ctx context.Context, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.URLs = append(f.URLs, url)
	return nil
}

func (f *fakeOpener) OpenDashboard(ctx context.Context, anchor string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Dashboards = append(f.Dashboards, anchor)
	return nil
}

type fakeNotifier struct {
	mu      sync.Mutex
	Shown   []notify.Notification
	Cleared []string
}

func (f *fakeNotifier) Name() string { return "fake" }

func (f *fakeNotifier) Show(ctx context.Context, n notify.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Shown = append(f.Shown, n)
	return nil
}

func (f *fakeNotifier) Clear(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Cleared = append(f.Cleared, id)
	return nil
}

func (f *fakeNotifier) Health(ctx context.Context) error { return nil }

func (f *fakeNotifier) lastShown() (notify.Notification, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.Shown) == 0 {
		return notify.Notification{}, false
	}
	return f.Shown[len(f.Shown)-1], true
}

type testEnv struct {
	store    *storage.MemoryStore
	notifier *fakeNotifier
	opener   *fakeOpener
	hub      *push.Hub
	coord    *Coordinator
	now      time.Time
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		store:    storage.NewMemoryStore(),
		notifier: &fakeNotifier{},
		opener:   &fakeOpener{},
		hub:      push.NewHub(),
		// Friday 2026-08-28 10:00 local
		now: time.Date(2026, 8, 28, 10, 0, 0, 0, time.Local),
	}
	env.coord = New(env.store, env.notifier, env.opener, env.hub)
	env.coord.SetClock(func() time.Time { return env.now })
	return env
}
