package components

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/popdeck/pop/internal/coordinator"
	"github.com/popdeck/pop/internal/daemon"
	"github.com/popdeck/pop/internal/push"
)

// CoordinatorComponent wires the message router over the store, the
// notification fan-out, and the tab push hub.
type CoordinatorComponent struct {
	storeComp   *StoreComponent
	notifComp   *NotifiersComponent
	opener      coordinator.Opener
	coord       *coordinator.Coordinator
	hub         *push.Hub
	initialized bool
	mu          sync.RWMutex
}

func NewCoordinatorComponent(storeComp *StoreComponent, notifComp *NotifiersComponent, opener coordinator.Opener) *CoordinatorComponent {
	if opener == nil {
		opener = coordinator.NewExecOpener()
	}
	return &CoordinatorComponent{
		storeComp: storeComp,
		notifComp: notifComp,
		opener:    opener,
	}
}

func (c *CoordinatorComponent) Name() string {
	return "Coordinator"
}

func (c *CoordinatorComponent) Dependencies() []string {
	return []string{"Store", "Notifiers"}
}

func (c *CoordinatorComponent) Init(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	store := c.storeComp.Store()
	if store == nil {
		return fmt.Errorf("store component not ready")
	}

	c.hub = push.NewHub()
	c.coord = coordinator.New(store, c.notifComp.Notifier(), c.opener, c.hub)
	c.notifComp.SetButtonHandler(c.coord.HandleButton)

	c.initialized = true
	slog.Info("Coordinator initialized", "component", c.Name())
	return nil
}

func (c *CoordinatorComponent) Start(ctx context.Context) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.initialized {
		return fmt.Errorf("coordinator not initialized")
	}
	return nil
}

func (c *CoordinatorComponent) Stop(ctx context.Context) error {
	return nil
}

func (c *CoordinatorComponent) Health(ctx context.Context) (*daemon.ComponentHealth, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.initialized {
		return &daemon.ComponentHealth{Name: c.Name(), Healthy: false, Error: fmt.Errorf("not initialized")}, nil
	}
	return &daemon.ComponentHealth{Name: c.Name(), Healthy: true}, nil
}

// Coordinator exposes the message router. Valid after Init.
func (c *CoordinatorComponent) Coordinator() *coordinator.Coordinator {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.coord
}

// Hub exposes the tab push hub. Valid after Init.
func (c *CoordinatorComponent) Hub() *push.Hub {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hub
}
