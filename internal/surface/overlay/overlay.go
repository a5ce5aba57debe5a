package overlay

import (
	"log/slog"
	"sync"

	"github.com/popdeck/pop/internal/push"
)

// Overlay ids. One overlay of each id can be live at a time.
const (
	IDQuickCapture     = "quick-capture"
	IDFlowCheck        = "flow-check"
	IDTruthBadge       = "truth-badge"
	IDCategorizePrompt = "categorize-prompt"
	IDSelectionCapture = "selection-capture"
)

// Overlay is one mounted widget. Data carries whatever the push action
// provided (domain, category, selected text).
type Overlay struct {
	ID      string
	Visible bool
	Data    map[string]string
}

// Registry tracks the overlays mounted on one tab. Showing an id that is
// already live is a no-op, except the flow check widget, which toggles its
// visibility so the hotkey can both open and close it.
type Registry struct {
	mu   sync.Mutex
	live map[string]*Overlay
}

func NewRegistry() *Registry {
	return &Registry{live: make(map[string]*Overlay)}
}

// Show mounts an overlay. Returns the live overlay for the id.
func (r *Registry) Show(id string, data map[string]string) *Overlay {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.live[id]; ok {
		if id == IDFlowCheck {
			existing.Visible = !existing.Visible
			slog.Debug("Flow check overlay toggled", "visible", existing.Visible)
		}
		return existing
	}

	o := &Overlay{ID: id, Visible: true, Data: data}
	r.live[id] = o
	return o
}

// Hide unmounts an overlay. Unknown ids are ignored.
func (r *Registry) Hide(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.live, id)
}

// Get returns the live overlay for an id, or nil.
func (r *Registry) Get(id string) *Overlay {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.live[id]
}

// Live returns the ids of all mounted overlays.
func (r *Registry) Live() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]string, 0, len(r.live))
	for id := range r.live {
		ids = append(ids, id)
	}
	return ids
}

// HandleAction mounts the overlay a push action asks for. Each daemon push
// action maps to exactly one overlay id.
func (r *Registry) HandleAction(a push.Action) *Overlay {
	switch a.Action {
	case push.ShowQuickCapture:
		return r.Show(IDQuickCapture, nil)
	case push.ShowFlowCheck:
		return r.Show(IDFlowCheck, nil)
	case push.ShowTruthBadge:
		return r.Show(IDTruthBadge, map[string]string{
			"domain":   a.Domain,
			"category": a.Category,
		})
	case push.CategorizeSite:
		return r.Show(IDCategorizePrompt, map[string]string{"domain": a.Domain})
	case push.CaptureSelection:
		return r.Show(IDSelectionCapture, map[string]string{"text": a.Text})
	default:
		slog.Debug("Unknown push action ignored", "action", a.Action)
		return nil
	}
}
