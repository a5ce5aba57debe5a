package push

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Action names pushed to tabs. They map 1:1 to overlay mounts.
const (
	ShowQuickCapture = "showQuickCapture"
	ShowFlowCheck    = "showFlowCheck"
	ShowTruthBadge   = "showTruthBadge"
	CategorizeSite   = "categorizeSite"
	CaptureSelection = "captureSelection"
)

// Action is one content-directed push.
type Action struct {
	Action   string `json:"action"`
	Category string `json:"category,omitempty"`
	Domain   string `json:"domain,omitempty"`
	Text     string `json:"text,omitempty"`
}

type tabState struct {
	queue  []Action
	signal chan struct{}
	domain string
}

// Hub queues per-tab push actions for long-polling overlay controllers.
// The most recent poller counts as the active tab.
type Hub struct {
	mu     sync.Mutex
	tabs   map[string]*tabState
	active string
}

func NewHub() *Hub {
	return &Hub{tabs: make(map[string]*tabState)}
}

func (h *Hub) tab(id string) *tabState {
	t, ok := h.tabs[id]
	if !ok {
		t = &tabState{signal: make(chan struct{}, 1)}
		h.tabs[id] = t
	}
	return t
}

// Poll returns queued actions for the tab, waiting up to timeout when the
// queue is empty. Polling marks the tab active and records its domain.
func (h *Hub) Poll(ctx context.Context, tabID, domain string, timeout time.Duration) []Action {
	h.mu.Lock()
	t := h.tab(tabID)
	if domain != "" {
		t.domain = domain
	}
	h.active = tabID

	if len(t.queue) > 0 {
		actions := t.queue
		t.queue = nil
		h.mu.Unlock()
		return actions
	}
	signal := t.signal
	h.mu.Unlock()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-signal:
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	actions := t.queue
	t.queue = nil
	return actions
}

// Push queues an action for a specific tab. Unknown tabs get a queue so a
// controller that connects late still receives the action.
func (h *Hub) Push(tabID string, action Action) {
	h.mu.Lock()
	defer h.mu.Unlock()

	t := h.tab(tabID)
	t.queue = append(t.queue, action)
	select {
	case t.signal <- struct{}{}:
	default:
	}
}

// PushActive queues an action for the active tab. With no active tab the
// action is dropped, matching a browser with no page to receive it.
func (h *Hub) PushActive(action Action) {
	h.mu.Lock()
	active := h.active
	h.mu.Unlock()

	if active == "" {
		slog.Debug("No active tab for push, dropping", "action", action.Action)
		return
	}
	h.Push(active, action)
}

// ActiveDomain returns the domain the active tab reported, if any.
func (h *Hub) ActiveDomain() (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.active == "" {
		return "", false
	}
	t, ok := h.tabs[h.active]
	if !ok || t.domain == "" {
		return "", false
	}
	return t.domain, true
}

// Forget drops a tab's queue and active status.
func (h *Hub) Forget(tabID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	delete(h.tabs, tabID)
	if h.active == tabID {
		h.active = ""
	}
}
