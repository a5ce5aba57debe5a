package alarm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/natefinch/atomic"
	"github.com/robfig/cron/v3"
)

// Alarm names. Checks dispatch on the exact name, so these are part of the
// persisted registry format.
const (
	FlowCheck         = "flowCheck"
	TabSnoozeCheck    = "tabSnoozeCheck"
	WeeklyReviewCheck = "weeklyReviewCheck"
)

// Definition is one registered alarm. Schedule is a cron spec; the periodic
// alarms use the "@every" form.
type Definition struct {
	Name     string    `json:"name"`
	Schedule string    `json:"schedule"`
	NextRun  time.Time `json:"next_run"`
}

type definitionList struct {
	Alarms map[string]*Definition `json:"alarms"`
}

// Registry persists alarm definitions to a single JSON file with atomic
// writes, so a restarted daemon picks up where the previous run left off.
type Registry struct {
	path string
	data definitionList
	mu   sync.RWMutex
}

func NewRegistry(path string) (*Registry, error) {
	r := &Registry{
		path: path,
		data: definitionList{Alarms: make(map[string]*Definition)},
	}
	if err := r.load(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Registry) load() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	content, err := os.ReadFile(r.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	if len(content) == 0 {
		return nil
	}
	if err := json.Unmarshal(content, &r.data); err != nil {
		return err
	}
	if r.data.Alarms == nil {
		r.data.Alarms = make(map[string]*Definition)
	}
	return nil
}

func (r *Registry) save() error {
	// Internal save, lock held by caller
	b, err := json.MarshalIndent(r.data, "", "  ")
	if err != nil {
		return err
	}
	return atomic.WriteFile(r.path, bytes.NewReader(b))
}

// EnsureDefaults registers the built-in alarms. Already-registered alarms
// keep their schedule and next run, so calling this on every startup is safe.
func (r *Registry) EnsureDefaults() error {
	defaults := []Definition{
		{Name: FlowCheck, Schedule: "@every 30m"},
		{Name: TabSnoozeCheck, Schedule: "@every 5m"},
		{Name: WeeklyReviewCheck, Schedule: "@every 1h"},
	}

	for _, def := range defaults {
		if _, ok := r.Get(def.Name); ok {
			continue
		}
		if err := r.Register(def.Name, def.Schedule); err != nil {
			return err
		}
	}
	return nil
}

// Register adds or replaces an alarm and computes its first run from now.
func (r *Registry) Register(name, schedule string) error {
	parsed, err := cron.ParseStandard(schedule)
	if err != nil {
		return fmt.Errorf("invalid alarm schedule %q: %w", schedule, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.data.Alarms[name] = &Definition{
		Name:     name,
		Schedule: schedule,
		NextRun:  parsed.Next(time.Now()),
	}
	return r.save()
}

// Clear removes an alarm. Clearing an unknown name is a no-op.
func (r *Registry) Clear(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.data.Alarms[name]; !ok {
		return nil
	}
	delete(r.data.Alarms, name)
	return r.save()
}

func (r *Registry) Get(name string) (Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	def, ok := r.data.Alarms[name]
	if !ok {
		return Definition{}, false
	}
	return *def, true
}

func (r *Registry) List() []Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	alarms := make([]Definition, 0, len(r.data.Alarms))
	for _, def := range r.data.Alarms {
		alarms = append(alarms, *def)
	}
	return alarms
}

// ShouldFire reports whether the alarm is due at now, advancing NextRun past
// now when it is. A missed period collapses into a single firing; there is
// no catch-up replay.
func (r *Registry) ShouldFire(name string, now time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	def, ok := r.data.Alarms[name]
	if !ok {
		return false, fmt.Errorf("alarm not found: %s", name)
	}

	if def.NextRun.After(now) {
		return false, nil
	}

	parsed, err := cron.ParseStandard(def.Schedule)
	if err != nil {
		return false, fmt.Errorf("invalid alarm schedule %q: %w", def.Schedule, err)
	}

	def.NextRun = parsed.Next(now)
	return true, r.save()
}
