package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/popdeck/pop/internal/coordinator"
	"github.com/popdeck/pop/internal/push"
)

// Client talks to a running daemon over its local HTTP API. CLI surfaces
// (capture, snooze, popup, dashboard) are built on it.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New builds a client against the daemon on the given port.
func New(port int) *Client {
	return NewWithBaseURL(fmt.Sprintf("http://127.0.0.1:%d", port))
}

func NewWithBaseURL(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Send posts one envelope and returns the daemon's response. A non-2xx
// status with a decodable body still yields the response; transport
// failures come back as errors.
func (c *Client) Send(ctx context.Context, env coordinator.Envelope) (coordinator.Response, error) {
	body, err := json.Marshal(env)
	if err != nil {
		return coordinator.Response{}, fmt.Errorf("marshal envelope: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/message", bytes.NewReader(body))
	if err != nil {
		return coordinator.Response{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return coordinator.Response{}, fmt.Errorf("daemon not reachable at %s: %w", c.baseURL, err)
	}
	defer resp.Body.Close()

	var out coordinator.Response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return coordinator.Response{}, fmt.Errorf("decode response (status %d): %w", resp.StatusCode, err)
	}
	return out, nil
}

// SendAction is Send with the payload marshalled from a typed value.
func (c *Client) SendAction(ctx context.Context, action coordinator.Action, payload any) (coordinator.Response, error) {
	env := coordinator.Envelope{Action: action}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return coordinator.Response{}, fmt.Errorf("marshal payload: %w", err)
		}
		env.Payload = raw
	}
	return c.Send(ctx, env)
}

type tabEventsResponse struct {
	Actions []push.Action `json:"actions"`
}

// PollTab long-polls the daemon for actions addressed to one tab. An empty
// slice means the poll timed out with nothing queued. The request's own
// timeout must outlast the daemon's poll window, so the default client
// timeout applies here too.
func (c *Client) PollTab(ctx context.Context, tabID, domain string) ([]push.Action, error) {
	url := fmt.Sprintf("%s/api/tabs/%s/events", c.baseURL, tabID)
	if domain != "" {
		url += "?domain=" + domain
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("daemon not reachable at %s: %w", c.baseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("poll tab events: status %d: %s", resp.StatusCode, bytes.TrimSpace(body))
	}

	var out tabEventsResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode tab events: %w", err)
	}
	return out.Actions, nil
}

// ForgetTab drops a tab's queue on the daemon side. Used when a surface
// shuts down.
func (c *Client) ForgetTab(ctx context.Context, tabID string) error {
	url := fmt.Sprintf("%s/api/tabs/%s", c.baseURL, tabID)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

// Healthy reports whether the daemon answers its health endpoint.
func (c *Client) Healthy(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return false
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}
