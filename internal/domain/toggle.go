package domain

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// ToggleStore persists the source-control integration toggle.
type ToggleStore interface {
	// LoadToggle returns the saved value and whether one was saved at all.
	LoadToggle() (enabled bool, found bool, err error)

	// SaveToggle persists enabled.
	SaveToggle(enabled bool) error
}

// GlobalToggle is the process-wide "source-control integration enabled" switch.
// Reads never block; Configure calls are serialized and persisted before the
// new value becomes visible.
type GlobalToggle struct {
	store   ToggleStore
	enabled atomic.Bool
	mu      sync.Mutex
}

// NewGlobalToggle creates a toggle backed by store, starting with initial
// until Load is called.
func NewGlobalToggle(store ToggleStore, initial bool) *GlobalToggle {
	t := &GlobalToggle{store: store}
	t.enabled.Store(initial)
	return t
}

// Load reads the saved value from the store. When nothing was saved the
// current value is kept.
func (t *GlobalToggle) Load() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	enabled, found, err := t.store.LoadToggle()
	if err != nil {
		return fmt.Errorf("failed to load source-control toggle: %w", err)
	}
	if found {
		t.enabled.Store(enabled)
	}
	return nil
}

// Enabled reports whether source-control integration is enabled.
func (t *GlobalToggle) Enabled() bool {
	return t.enabled.Load()
}

// Configure saves enabled and publishes it. On a save error the previous
// value stays in effect.
func (t *GlobalToggle) Configure(enabled bool) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.store.SaveToggle(enabled); err != nil {
		return fmt.Errorf("failed to save source-control toggle: %w", err)
	}
	t.enabled.Store(enabled)
	return nil
}
