package alarm

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/popdeck/pop/internal/concurrency"
	"github.com/popdeck/pop/internal/config"
	poperrors "github.com/popdeck/pop/internal/errors"
)

// Handler reacts to a fired alarm. Handlers log and swallow their own
// failures; a failed run waits for the next period.
type Handler func(ctx context.Context, name string)

// Scheduler drives the alarm registry with a ticker loop and dispatches due
// alarms to handlers registered by exact name. Alarms with no handler are
// ignored.
type Scheduler struct {
	registry *Registry

	mu       sync.RWMutex
	handlers map[string]Handler
	ctx      context.Context
	cancel   context.CancelFunc
	running  bool
	ticker   *time.Ticker
	inFlight sync.WaitGroup

	tickInterval    time.Duration
	shutdownTimeout time.Duration
	now             func() time.Time
}

func NewScheduler(registry *Registry, cfg config.AlarmsConfig) (*Scheduler, error) {
	tickInterval, err := config.DurationOrDefault(cfg.TickInterval, config.DefaultAlarmsTickInterval)
	if err != nil {
		return nil, fmt.Errorf("parse alarm tick interval: %w", err)
	}

	shutdownTimeout, err := config.DurationOrDefault(cfg.ShutdownTimeout, config.DefaultAlarmsShutdownTimeout)
	if err != nil {
		return nil, fmt.Errorf("parse alarm shutdown timeout: %w", err)
	}

	return &Scheduler{
		registry:        registry,
		handlers:        make(map[string]Handler),
		tickInterval:    tickInterval,
		shutdownTimeout: shutdownTimeout,
		now:             time.Now,
	}, nil
}

// Handle registers the handler for an alarm name. Must be called before
// Start.
func (s *Scheduler) Handle(name string, handler Handler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers[name] = handler
}

// SetClock overrides the scheduler clock. Test hook.
func (s *Scheduler) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *Scheduler) Init(ctx context.Context) error {
	s.ctx, s.cancel = context.WithCancel(ctx)

	if err := s.registry.EnsureDefaults(); err != nil {
		return fmt.Errorf("ensure default alarms: %w", err)
	}

	slog.Info("Alarm scheduler initialized", "alarms", len(s.registry.List()))
	return nil
}

func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = true
	s.mu.Unlock()

	s.ticker = time.NewTicker(s.tickInterval)

	// A panicking handler must not take the run loop down with it.
	concurrency.SafeGo(func() { s.run(ctx) }, nil)

	slog.Info("Alarm scheduler started", "tick_interval", s.tickInterval)
	return nil
}

func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = false
	s.mu.Unlock()

	if s.ticker != nil {
		s.ticker.Stop()
	}

	s.cancel()

	done := make(chan struct{})
	go func() {
		s.inFlight.Wait()
		close(done)
	}()

	select {
	case <-done:
		slog.Info("Alarm scheduler stopped gracefully")
		return nil
	case <-time.After(s.shutdownTimeout):
		slog.Warn("Alarm scheduler shutdown timeout, force stopping")
		return poperrors.Internal("shutdown timeout")
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Scheduler) Health(ctx context.Context) error {
	if s.ctx == nil {
		return poperrors.Internal("alarm scheduler not initialized")
	}
	if !s.IsRunning() {
		return poperrors.Internal("alarm scheduler not running")
	}
	return nil
}

func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

func (s *Scheduler) run(ctx context.Context) {
	for {
		select {
		case <-s.ticker.C:
			s.Tick(ctx)
		case <-s.ctx.Done():
			slog.Info("Alarm scheduler run loop stopped")
			return
		}
	}
}

// Tick fires every due alarm once. Exported so manual check commands and
// tests can drive the loop without waiting on the ticker.
func (s *Scheduler) Tick(ctx context.Context) {
	s.mu.RLock()
	now := s.now()
	s.mu.RUnlock()

	for _, def := range s.registry.List() {
		due, err := s.registry.ShouldFire(def.Name, now)
		if err != nil {
			slog.Error("Failed to check alarm", "alarm", def.Name, "error", err)
			continue
		}
		if !due {
			continue
		}
		s.dispatch(ctx, def.Name)
	}
}

func (s *Scheduler) dispatch(ctx context.Context, name string) {
	s.mu.RLock()
	handler, ok := s.handlers[name]
	s.mu.RUnlock()

	if !ok {
		slog.Debug("No handler for alarm, ignoring", "alarm", name)
		return
	}

	s.inFlight.Add(1)
	defer s.inFlight.Done()

	slog.Debug("Alarm fired", "alarm", name)
	handler(ctx, name)
}
