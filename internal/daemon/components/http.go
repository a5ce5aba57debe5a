package components

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/popdeck/pop/internal/config"
	"github.com/popdeck/pop/internal/coordinator"
	"github.com/popdeck/pop/internal/daemon"
	"github.com/popdeck/pop/internal/logger"
	"github.com/popdeck/pop/internal/push"
)

// HTTPServerComponent serves the local message API: one-shot envelopes on
// /api/message, tab long-polling on /api/tabs, and the daemon health view.
type HTTPServerComponent struct {
	daemon      *daemon.Daemon
	cfg         *config.ServerConfig
	coordComp   *CoordinatorComponent
	server      *http.Server
	shutdownTTL time.Duration
	pollTimeout time.Duration
	initialized bool
	started     bool
	mu          sync.RWMutex
	startTime   time.Time
}

func NewHTTPServerComponent(d *daemon.Daemon, cfg *config.ServerConfig, coordComp *CoordinatorComponent) *HTTPServerComponent {
	return &HTTPServerComponent{
		daemon:    d,
		cfg:       cfg,
		coordComp: coordComp,
	}
}

func (h *HTTPServerComponent) Name() string {
	return "HTTPServer"
}

func (h *HTTPServerComponent) Dependencies() []string {
	return []string{"Store", "Notifiers", "Coordinator", "Alarms"}
}

func (h *HTTPServerComponent) Init(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", h.handleHealth)
	mux.HandleFunc("POST /api/message", h.handleMessage)
	mux.HandleFunc("GET /api/tabs/{tab}/events", h.handleTabEvents)
	mux.HandleFunc("DELETE /api/tabs/{tab}", h.handleTabForget)

	readTimeout, err := config.DurationOrDefault(h.cfg.ReadTimeout, config.DefaultServerReadTimeout)
	if err != nil {
		return fmt.Errorf("parse server read timeout: %w", err)
	}
	writeTimeout, err := config.DurationOrDefault(h.cfg.WriteTimeout, config.DefaultServerWriteTimeout)
	if err != nil {
		return fmt.Errorf("parse server write timeout: %w", err)
	}
	idleTimeout, err := config.DurationOrDefault(h.cfg.IdleTimeout, config.DefaultServerIdleTimeout)
	if err != nil {
		return fmt.Errorf("parse server idle timeout: %w", err)
	}
	shutdownTimeout, err := config.DurationOrDefault(h.cfg.ShutdownTimeout, config.DefaultServerShutdownTimeout)
	if err != nil {
		return fmt.Errorf("parse server shutdown timeout: %w", err)
	}
	pollTimeout, err := config.DurationOrDefault(h.cfg.PushPollTimeout, config.DefaultServerPushPollTimeout)
	if err != nil {
		return fmt.Errorf("parse push poll timeout: %w", err)
	}

	// The write timeout must outlast a full long-poll cycle or the
	// connection dies before the empty poll response is written.
	if writeTimeout < pollTimeout+5*time.Second {
		writeTimeout = pollTimeout + 5*time.Second
	}

	h.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", h.cfg.Port),
		Handler:      mux,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}
	h.shutdownTTL = shutdownTimeout
	h.pollTimeout = pollTimeout

	h.initialized = true
	slog.Info("HTTPServer initialized", "component", h.Name(), "port", h.cfg.Port)
	return nil
}

func (h *HTTPServerComponent) Start(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.initialized {
		return fmt.Errorf("HTTPServer not initialized")
	}

	go func() {
		slog.Info("HTTP server listening", "component", h.Name(), "addr", h.server.Addr)
		if err := h.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server failed", "component", h.Name(), "error", err)
		}
	}()

	h.started = true
	h.startTime = time.Now()
	slog.Info("HTTPServer started", "component", h.Name())
	return nil
}

func (h *HTTPServerComponent) Stop(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.started {
		slog.Info("HTTPServer not started, skipping stop", "component", h.Name())
		return nil
	}

	slog.Info("Stopping HTTPServer...", "component", h.Name())
	shutdownCtx, cancel := context.WithTimeout(ctx, h.shutdownTTL)
	defer cancel()

	if err := h.server.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTPServer shutdown error", "component", h.Name(), "error", err)
		return err
	}

	h.started = false
	slog.Info("HTTPServer stopped", "component", h.Name())
	return nil
}

func (h *HTTPServerComponent) Health(ctx context.Context) (*daemon.ComponentHealth, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if !h.initialized {
		return &daemon.ComponentHealth{Name: h.Name(), Healthy: false, Error: fmt.Errorf("not initialized")}, nil
	}
	if !h.started {
		return &daemon.ComponentHealth{Name: h.Name(), Healthy: false, Error: fmt.Errorf("not started")}, nil
	}
	return &daemon.ComponentHealth{Name: h.Name(), Healthy: true}, nil
}

func (h *HTTPServerComponent) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	healthResponse := map[string]interface{}{
		"status": "ok",
	}

	componentHealthMap := make(map[string]interface{})
	for name, ch := range h.daemon.ComponentHealth() {
		entry := map[string]interface{}{"healthy": ch.Healthy}
		if ch.Error != nil {
			entry["error"] = ch.Error.Error()
		}
		componentHealthMap[name] = entry
	}
	healthResponse["components"] = componentHealthMap

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(healthResponse)
}

// handleMessage runs one request envelope through the coordinator. Handler
// failures come back as success=false with HTTP 200; only a malformed
// request body is a transport-level error.
func (h *HTTPServerComponent) handleMessage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var env coordinator.Envelope
	if err := json.NewDecoder(r.Body).Decode(&env); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(coordinator.Response{Success: false, Message: "malformed request body: " + err.Error()})
		return
	}
	if env.Action == "" {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(coordinator.Response{Success: false, Message: "action is required"})
		return
	}

	ctx := logger.WithTraceID(r.Context(), ulid.Make().String())
	resp := h.coordComp.Coordinator().Dispatch(ctx, env)
	slog.Debug("Message dispatched", "action", env.Action, "success", resp.Success, "trace_id", logger.GetTraceID(ctx))

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(resp)
}

type tabEventsResponse struct {
	Actions []push.Action `json:"actions"`
}

// handleTabEvents is the long-poll endpoint for content surfaces. Polling
// marks the tab as the active one; the optional domain query names the site
// the tab is showing.
func (h *HTTPServerComponent) handleTabEvents(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	tabID := r.PathValue("tab")
	if tabID == "" {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(coordinator.Response{Success: false, Message: "tab id is required"})
		return
	}
	domain := r.URL.Query().Get("domain")

	actions := h.coordComp.Hub().Poll(r.Context(), tabID, domain, h.pollTimeout)
	if actions == nil {
		actions = []push.Action{}
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(tabEventsResponse{Actions: actions})
}

func (h *HTTPServerComponent) handleTabForget(w http.ResponseWriter, r *http.Request) {
	tabID := r.PathValue("tab")
	if tabID == "" {
		http.Error(w, "tab id is required", http.StatusBadRequest)
		return
	}
	h.coordComp.Hub().Forget(tabID)
	w.WriteHeader(http.StatusNoContent)
}
