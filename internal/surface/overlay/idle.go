package overlay

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// IdleState is the tracker's lifecycle state.
type IdleState string

const (
	StateCounting  IdleState = "counting"
	StatePrompting IdleState = "prompting"
)

// Snoozer sends the snooze request for the tracked tab back to the daemon.
type Snoozer interface {
	SnoozeTab(ctx context.Context, url, title string, wakeAt time.Time) error
}

// IdleTracker watches one tab for inactivity. When the idle threshold
// passes without activity it prompts; the prompt offers dismiss, snooze
// until tomorrow morning, or discard.
type IdleTracker struct {
	threshold time.Duration
	wakeHour  int
	now       func() time.Time
	snoozer   Snoozer
	closeTab  func()
	onPrompt  func()
	onHide    func()

	mu      sync.Mutex
	state   IdleState
	timer   *time.Timer
	stopped bool
}

// IdleTrackerOptions carries the tracker's collaborators. OnPrompt and
// OnHide drive the visible prompt; CloseTab is invoked by snooze and
// discard.
type IdleTrackerOptions struct {
	Threshold time.Duration
	WakeHour  int
	Now       func() time.Time
	Snoozer   Snoozer
	CloseTab  func()
	OnPrompt  func()
	OnHide    func()
}

func NewIdleTracker(opts IdleTrackerOptions) *IdleTracker {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.CloseTab == nil {
		opts.CloseTab = func() {}
	}
	if opts.OnPrompt == nil {
		opts.OnPrompt = func() {}
	}
	if opts.OnHide == nil {
		opts.OnHide = func() {}
	}
	return &IdleTracker{
		threshold: opts.Threshold,
		wakeHour:  opts.WakeHour,
		now:       opts.Now,
		snoozer:   opts.Snoozer,
		closeTab:  opts.CloseTab,
		onPrompt:  opts.OnPrompt,
		onHide:    opts.OnHide,
		state:     StateCounting,
	}
}

// Start arms the idle timer.
func (t *IdleTracker) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped {
		return
	}
	t.armLocked()
}

// Activity re-arms the timer. If the prompt is showing it is torn down
// first; any interaction with the page counts as activity.
func (t *IdleTracker) Activity() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped {
		return
	}
	if t.state == StatePrompting {
		t.state = StateCounting
		t.onHide()
	}
	t.armLocked()
}

// armLocked drains any pending timer before re-arming so a stale fire
// cannot race a fresh one.
func (t *IdleTracker) armLocked() {
	if t.timer != nil {
		if !t.timer.Stop() {
			select {
			case <-t.timer.C:
			default:
			}
		}
	}
	t.timer = time.AfterFunc(t.threshold, t.fire)
}

func (t *IdleTracker) fire() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped || t.state == StatePrompting {
		return
	}
	t.state = StatePrompting
	t.onPrompt()
}

// State returns the current lifecycle state.
func (t *IdleTracker) State() IdleState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Dismiss closes the prompt and resumes counting.
func (t *IdleTracker) Dismiss() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != StatePrompting {
		return
	}
	t.state = StateCounting
	t.onHide()
	t.armLocked()
}

// Snooze sends the tab to the daemon's snoozer with a wake of tomorrow
// morning, then closes the tab. The tab survives in storage even though the
// page goes away.
func (t *IdleTracker) Snooze(ctx context.Context, url, title string) error {
	wakeAt := t.nextWake()

	if t.snoozer != nil {
		if err := t.snoozer.SnoozeTab(ctx, url, title, wakeAt); err != nil {
			slog.Warn("Snooze request failed, keeping tab open", "url", url, "error", err)
			return err
		}
	}

	t.Stop()
	t.closeTab()
	return nil
}

// Discard closes the tab without persisting anything.
func (t *IdleTracker) Discard() {
	t.Stop()
	t.closeTab()
}

// Stop halts the tracker permanently.
func (t *IdleTracker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopped = true
	if t.timer != nil {
		t.timer.Stop()
	}
}

// nextWake is tomorrow at the configured wake hour, local time.
func (t *IdleTracker) nextWake() time.Time {
	now := t.now()
	return time.Date(now.Year(), now.Month(), now.Day()+1, t.wakeHour, 0, 0, 0, now.Location())
}
