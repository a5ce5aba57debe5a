package coordinator

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/popdeck/pop/internal/feature"
	"github.com/popdeck/pop/internal/notify"
	"github.com/popdeck/pop/internal/push"
)

// Dispatch routes one request envelope to its handler. Handlers are
// idempotent per request and hold no session state; recoverable failures
// come back as a failed Response.
func (c *Coordinator) Dispatch(ctx context.Context, env Envelope) Response {
	action := env.Action
	if action == legacyCategorizeSite {
		action = ActionCategorizeSite
	}

	switch action {
	case ActionSaveThought:
		var p SaveThoughtPayload
		if resp, ok := decodePayload(env.Payload, &p); !ok {
			return resp
		}
		return c.handleSaveThought(ctx, p)

	case ActionGetSettings:
		return dataResponse(feature.LoadSettings(ctx, c.store))

	case ActionCategorizeSite:
		var p CategorizeSitePayload
		if resp, ok := decodePayload(env.Payload, &p); !ok {
			return resp
		}
		return c.handleCategorizeSite(ctx, p)

	case ActionLogTime:
		var p LogTimePayload
		if resp, ok := decodePayload(env.Payload, &p); !ok {
			return resp
		}
		return c.handleLogTime(ctx, p)

	case ActionOpenDashboard:
		var p OpenDashboardPayload
		if resp, ok := decodePayload(env.Payload, &p); !ok {
			return resp
		}
		c.openDashboardQuietly(ctx, p.Hash)
		return okResponse()

	case ActionSnoozeTab:
		var p SnoozeTabPayload
		if resp, ok := decodePayload(env.Payload, &p); !ok {
			return resp
		}
		return c.handleSnoozeTab(ctx, p)

	case ActionSaveLink:
		var p SaveLinkPayload
		if resp, ok := decodePayload(env.Payload, &p); !ok {
			return resp
		}
		return c.handleSaveLink(ctx, p)

	case ActionTriggerCommand:
		var p TriggerCommandPayload
		if resp, ok := decodePayload(env.Payload, &p); !ok {
			return resp
		}
		return c.HandleCommand(ctx, p.Command)

	case ActionPushToTab:
		var p PushToTabPayload
		if resp, ok := decodePayload(env.Payload, &p); !ok {
			return resp
		}
		return c.handlePushToTab(p)

	default:
		slog.Debug("Unknown message action", "action", env.Action)
		return failResponse("unknown action: " + string(env.Action))
	}
}

func decodePayload[T any](raw json.RawMessage, target *T) (Response, bool) {
	if len(raw) == 0 {
		return Response{}, true
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return failResponse("malformed payload: " + err.Error()), false
	}
	return Response{}, true
}

func (c *Coordinator) handleSaveThought(ctx context.Context, p SaveThoughtPayload) Response {
	text := strings.TrimSpace(p.Text)
	if text == "" {
		return failResponse("thought text is empty")
	}

	thoughtType := p.Type
	if thoughtType != feature.ThoughtActionable && thoughtType != feature.ThoughtReference {
		thoughtType = feature.ThoughtActionable
	}

	c.locks.Lock(feature.KeyCognitiveOffload)
	defer c.locks.Unlock(feature.KeyCognitiveOffload)

	doc := feature.Load(ctx, c.store, feature.KeyCognitiveOffload, feature.DefaultCognitiveOffload)
	thought := feature.Thought{
		ID:        newID(),
		Text:      text,
		Type:      thoughtType,
		CreatedAt: c.now(),
		Completed: false,
	}
	doc.Thoughts = append([]feature.Thought{thought}, doc.Thoughts...)

	if err := feature.Save(ctx, c.store, feature.KeyCognitiveOffload, doc); err != nil {
		return failResponse("save thought: " + err.Error())
	}
	return dataResponse(SavedThought{Thought: thought})
}

func (c *Coordinator) handleCategorizeSite(ctx context.Context, p CategorizeSitePayload) Response {
	domain := strings.TrimSpace(p.Domain)
	if domain == "" {
		return failResponse("domain is empty")
	}
	category := p.Category
	if category != feature.SiteDeep && category != feature.SiteShallow {
		return failResponse("category must be deep or shallow")
	}

	c.locks.Lock(feature.KeyTruthLogger)
	defer c.locks.Unlock(feature.KeyTruthLogger)

	doc := feature.Load(ctx, c.store, feature.KeyTruthLogger, feature.DefaultTruthLogger)
	if doc.SiteCategories == nil {
		doc.SiteCategories = make(map[string]string)
	}
	doc.SiteCategories[domain] = category

	if err := feature.Save(ctx, c.store, feature.KeyTruthLogger, doc); err != nil {
		return failResponse("categorize site: " + err.Error())
	}
	return okResponse()
}

func (c *Coordinator) handleLogTime(ctx context.Context, p LogTimePayload) Response {
	if p.Category != feature.SiteDeep && p.Category != feature.SiteShallow {
		return failResponse("category must be deep or shallow")
	}
	if p.Minutes <= 0 {
		return failResponse("minutes must be positive")
	}

	c.locks.Lock(feature.KeyTruthLogger)
	defer c.locks.Unlock(feature.KeyTruthLogger)

	doc := feature.Load(ctx, c.store, feature.KeyTruthLogger, feature.DefaultTruthLogger)
	today := feature.DateKey(c.now())

	idx := -1
	for i, entry := range doc.TimeLog {
		if entry.Date == today {
			idx = i
			break
		}
	}
	if idx == -1 {
		doc.TimeLog = append([]feature.TimeLogEntry{{Date: today}}, doc.TimeLog...)
		idx = 0
	}

	if p.Category == feature.SiteDeep {
		doc.TimeLog[idx].Deep += p.Minutes
	} else {
		doc.TimeLog[idx].Shallow += p.Minutes
	}

	if err := feature.Save(ctx, c.store, feature.KeyTruthLogger, doc); err != nil {
		return failResponse("log time: " + err.Error())
	}
	return okResponse()
}

func (c *Coordinator) handleSnoozeTab(ctx context.Context, p SnoozeTabPayload) Response {
	url := strings.TrimSpace(p.URL)
	if url == "" {
		return failResponse("url is empty")
	}

	now := c.now()

	c.locks.Lock(feature.KeyTabSnoozer)
	defer c.locks.Unlock(feature.KeyTabSnoozer)

	doc := feature.Load(ctx, c.store, feature.KeyTabSnoozer, feature.DefaultTabSnoozer)

	wakeAt := p.WakeAt
	if wakeAt.IsZero() {
		wakeAt = now.Add(time.Duration(doc.DefaultSnoozeHours) * time.Hour)
	}
	doc.SnoozedTabs = append(doc.SnoozedTabs, feature.SnoozedTab{
		ID:        newID(),
		URL:       url,
		Title:     p.Title,
		SnoozedAt: now,
		WakeAt:    wakeAt,
	})

	if err := feature.Save(ctx, c.store, feature.KeyTabSnoozer, doc); err != nil {
		return failResponse("snooze tab: " + err.Error())
	}
	return okResponse()
}

// handleSaveLink is the "Save link to POP" action: the link lands in the tab
// snoozer with an immediate wake, so the next snooze check surfaces it.
func (c *Coordinator) handleSaveLink(ctx context.Context, p SaveLinkPayload) Response {
	url := strings.TrimSpace(p.URL)
	if url == "" {
		return failResponse("url is empty")
	}

	title := p.Title
	if title == "" {
		title = url
	}

	now := c.now()

	c.locks.Lock(feature.KeyTabSnoozer)
	defer c.locks.Unlock(feature.KeyTabSnoozer)

	doc := feature.Load(ctx, c.store, feature.KeyTabSnoozer, feature.DefaultTabSnoozer)
	doc.SnoozedTabs = append(doc.SnoozedTabs, feature.SnoozedTab{
		ID:        newID(),
		URL:       url,
		Title:     title,
		SnoozedAt: now,
		WakeAt:    now, // Wake immediately (it's a save, not a snooze)
	})

	if err := feature.Save(ctx, c.store, feature.KeyTabSnoozer, doc); err != nil {
		return failResponse("save link: " + err.Error())
	}

	c.notifyQuietly(ctx, notify.Notification{
		ID:       NotificationLinkSaved,
		Title:    "Link Saved",
		Message:  "Link saved to POP Tab Snoozer.",
		Priority: 1,
	})
	return okResponse()
}

func (c *Coordinator) handlePushToTab(p PushToTabPayload) Response {
	action := push.Action{
		Action:   p.Action,
		Category: p.Category,
		Domain:   p.Domain,
		Text:     p.Text,
	}

	switch p.Action {
	case push.ShowQuickCapture, push.ShowFlowCheck, push.ShowTruthBadge, push.CategorizeSite, push.CaptureSelection:
	default:
		return failResponse("unknown push action: " + p.Action)
	}

	if p.TabID == "" {
		c.hub.PushActive(action)
	} else {
		c.hub.Push(p.TabID, action)
	}
	return okResponse()
}
