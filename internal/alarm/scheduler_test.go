package alarm

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/popdeck/pop/internal/config"
)

func newTestScheduler(t *testing.T) (*Scheduler, *Registry) {
	t.Helper()

	registry, err := NewRegistry(filepath.Join(t.TempDir(), "alarms.json"))
	require.NoError(t, err)

	s, err := NewScheduler(registry, config.AlarmsConfig{
		TickInterval:    "10ms",
		ShutdownTimeout: "1s",
	})
	require.NoError(t, err)
	return s, registry
}

func TestScheduler_InitEnsuresDefaults(t *testing.T) {
	s, registry := newTestScheduler(t)

	require.NoError(t, s.Init(context.Background()))

	assert.Len(t, registry.List(), 3)
}

func TestScheduler_TickDispatchesDueAlarms(t *testing.T) {
	s, _ := newTestScheduler(t)
	ctx := context.Background()
	require.NoError(t, s.Init(ctx))

	fired := make(map[string]int)
	for _, name := range []string{FlowCheck, TabSnoozeCheck, WeeklyReviewCheck} {
		s.Handle(name, func(ctx context.Context, name string) {
			fired[name]++
		})
	}

	// Jump the clock past every next run
	future := time.Now().Add(2 * time.Hour)
	s.SetClock(func() time.Time { return future })

	s.Tick(ctx)

	assert.Equal(t, 1, fired[FlowCheck])
	assert.Equal(t, 1, fired[TabSnoozeCheck])
	assert.Equal(t, 1, fired[WeeklyReviewCheck])

	// Same instant again: nothing is due
	s.Tick(ctx)
	assert.Equal(t, 1, fired[FlowCheck])
}

func TestScheduler_UnhandledAlarmIsIgnored(t *testing.T) {
	s, _ := newTestScheduler(t)
	ctx := context.Background()
	require.NoError(t, s.Init(ctx))

	// No handlers registered at all; a due tick must not panic or error
	s.SetClock(func() time.Time { return time.Now().Add(2 * time.Hour) })
	s.Tick(ctx)
}

func TestScheduler_StartStop(t *testing.T) {
	s, _ := newTestScheduler(t)
	ctx := context.Background()

	require.NoError(t, s.Init(ctx))
	require.NoError(t, s.Start(ctx))
	assert.True(t, s.IsRunning())
	require.NoError(t, s.Health(ctx))

	require.NoError(t, s.Stop(ctx))
	assert.False(t, s.IsRunning())
	require.Error(t, s.Health(ctx))
}
