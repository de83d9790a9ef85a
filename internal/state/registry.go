package state

import (
	"sync"
	"time"
)

// FlagValue is one named flag in the registry.
type FlagValue struct {
	Name    string
	Enabled bool
}

// Registry holds the feature-flag values the poller maintains. Entries
// are upserted by name and never deleted during a session; flags absent
// from a poll round keep their last known value.
type Registry struct {
	mu          sync.RWMutex
	flags       map[string]FlagValue
	lastUpdated time.Time
	lastErr     string
}

// RegistrySnapshot is an immutable view of the registry.
type RegistrySnapshot struct {
	Flags       map[string]FlagValue
	LastUpdated time.Time
	LastErr     string
}

// Upsert records the latest value for a named flag.
func (r *Registry) Upsert(name string, enabled bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.flags == nil {
		r.flags = make(map[string]FlagValue)
	}
	r.flags[name] = FlagValue{Name: name, Enabled: enabled}
	r.lastUpdated = time.Now()
	r.lastErr = ""
}

// RecordError notes a failed poll round without touching flag values.
func (r *Registry) RecordError(err error) {
	if err == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastErr = err.Error()
}

// Enabled reports the last known value of a named flag. Unknown flags
// read as disabled.
func (r *Registry) Enabled(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.flags[name].Enabled
}

// Snapshot returns a copy of the registry contents.
func (r *Registry) Snapshot() RegistrySnapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snap := RegistrySnapshot{LastUpdated: r.lastUpdated, LastErr: r.lastErr}
	if len(r.flags) > 0 {
		snap.Flags = make(map[string]FlagValue, len(r.flags))
		for name, value := range r.flags {
			snap.Flags[name] = value
		}
	}
	return snap
}
