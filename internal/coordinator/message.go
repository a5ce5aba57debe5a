package coordinator

import (
	"encoding/json"
	"time"

	"github.com/popdeck/pop/internal/feature"
)

// Action tags the request union. Each action has exactly one payload type.
type Action string

const (
	ActionSaveThought    Action = "saveThought"
	ActionGetSettings    Action = "getSettings"
	ActionCategorizeSite Action = "categorizeSite"
	ActionLogTime        Action = "logTime"
	ActionOpenDashboard  Action = "openDashboard"
	ActionSnoozeTab      Action = "snoozeTab"
	ActionSaveLink       Action = "saveLink"
	ActionTriggerCommand Action = "triggerCommand"
	ActionPushToTab      Action = "pushToTab"
)

// legacyCategorizeSite is the lowercase spelling an old content script used
// for the same action. Accepted as an alias and canonicalized on entry.
const legacyCategorizeSite Action = "categorizesite"

// Envelope is the wire form of a request: the action tag plus that action's
// payload.
type Envelope struct {
	Action  Action          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type SaveThoughtPayload struct {
	Text string `json:"text"`
	Type string `json:"type"`
}

type CategorizeSitePayload struct {
	Domain   string `json:"domain"`
	Category string `json:"category"`
}

type LogTimePayload struct {
	Category string `json:"category"`
	Minutes  int    `json:"minutes"`
}

type OpenDashboardPayload struct {
	Hash string `json:"hash,omitempty"`
}

type SnoozeTabPayload struct {
	URL    string    `json:"url"`
	Title  string    `json:"title,omitempty"`
	WakeAt time.Time `json:"wakeAt"`
}

type SaveLinkPayload struct {
	URL   string `json:"url"`
	Title string `json:"title,omitempty"`
}

type TriggerCommandPayload struct {
	Command string `json:"command"`
}

// PushToTabPayload relays a content-directed action to a specific tab, or
// the active tab when TabID is empty.
type PushToTabPayload struct {
	TabID    string `json:"tabId,omitempty"`
	Action   string `json:"pushAction"`
	Category string `json:"category,omitempty"`
	Domain   string `json:"domain,omitempty"`
	Text     string `json:"text,omitempty"`
}

// Response is the wire form of a reply. Recoverable conditions come back as
// Success=false with a message, never as a transport error.
type Response struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

func okResponse() Response {
	return Response{Success: true}
}

func failResponse(message string) Response {
	return Response{Success: false, Message: message}
}

func dataResponse(v any) Response {
	raw, err := json.Marshal(v)
	if err != nil {
		return failResponse("encode response: " + err.Error())
	}
	return Response{Success: true, Data: raw}
}

// SavedThought is the data payload returned by a successful saveThought.
type SavedThought struct {
	Thought feature.Thought `json:"thought"`
}
