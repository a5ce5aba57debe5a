package components

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/popdeck/pop/internal/alarm"
	"github.com/popdeck/pop/internal/config"
	"github.com/popdeck/pop/internal/daemon"
	"github.com/popdeck/pop/internal/storage"
)

// AlarmsComponent runs the periodic check scheduler. Due alarms are routed
// to the coordinator, which performs the flow, tab snooze, and weekly
// review checks.
type AlarmsComponent struct {
	cfg         *config.Config
	workspaceID string
	coordComp   *CoordinatorComponent
	scheduler   *alarm.Scheduler
	registry    *alarm.Registry
	initialized bool
	mu          sync.RWMutex
}

func NewAlarmsComponent(workspaceID string, cfg *config.Config, coordComp *CoordinatorComponent) *AlarmsComponent {
	return &AlarmsComponent{
		cfg:         cfg,
		workspaceID: workspaceID,
		coordComp:   coordComp,
	}
}

func (a *AlarmsComponent) Name() string {
	return "Alarms"
}

func (a *AlarmsComponent) Dependencies() []string {
	return []string{"Coordinator"}
}

func (a *AlarmsComponent) Init(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	alarmsPath, err := storage.GetAlarmsPath(a.workspaceID, a.cfg.Daemon.WorkspacePath)
	if err != nil {
		return fmt.Errorf("resolve alarms path: %w", err)
	}

	registry, err := alarm.NewRegistry(alarmsPath)
	if err != nil {
		return fmt.Errorf("open alarm registry: %w", err)
	}
	scheduler, err := alarm.NewScheduler(registry, a.cfg.Alarms)
	if err != nil {
		return fmt.Errorf("create scheduler: %w", err)
	}

	coord := a.coordComp.Coordinator()
	if coord == nil {
		return fmt.Errorf("coordinator component not ready")
	}
	for _, name := range []string{alarm.FlowCheck, alarm.TabSnoozeCheck, alarm.WeeklyReviewCheck} {
		scheduler.Handle(name, coord.HandleAlarm)
	}

	if err := scheduler.Init(ctx); err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}

	a.registry = registry
	a.scheduler = scheduler
	a.initialized = true
	slog.Info("Alarms initialized", "component", a.Name(), "path", alarmsPath, "alarms", len(registry.List()))
	return nil
}

func (a *AlarmsComponent) Start(ctx context.Context) error {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if !a.initialized {
		return fmt.Errorf("alarms not initialized")
	}
	return a.scheduler.Start(ctx)
}

func (a *AlarmsComponent) Stop(ctx context.Context) error {
	a.mu.RLock()
	scheduler := a.scheduler
	a.mu.RUnlock()

	if scheduler == nil {
		return nil
	}
	return scheduler.Stop(ctx)
}

func (a *AlarmsComponent) Health(ctx context.Context) (*daemon.ComponentHealth, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if !a.initialized {
		return &daemon.ComponentHealth{Name: a.Name(), Healthy: false, Error: fmt.Errorf("not initialized")}, nil
	}
	if err := a.scheduler.Health(ctx); err != nil {
		return &daemon.ComponentHealth{Name: a.Name(), Healthy: false, Error: err}, nil
	}
	return &daemon.ComponentHealth{Name: a.Name(), Healthy: true}, nil
}

// Scheduler exposes the alarm scheduler. Valid after Init.
func (a *AlarmsComponent) Scheduler() *alarm.Scheduler {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.scheduler
}
