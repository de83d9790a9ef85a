// Package maintenance holds the gate that short-circuits page rendering
// while the backend declares a maintenance window.
package maintenance

import (
	"sync"
	"time"
)

// Gate is a boolean latch driven exclusively by the classifier's 503
// MAINTENANCE_MODE signal. Nothing clears it automatically; the consoles
// expose a manual reset instead. The zero value is an open gate.
type Gate struct {
	mu          sync.RWMutex
	active      bool
	lastUpdated time.Time
}

// Enable latches the gate.
func (g *Gate) Enable() {
	g.set(true)
}

// Disable clears the gate. This is the manual reset; no transport signal
// drives it.
func (g *Gate) Disable() {
	g.set(false)
}

// Set forces the gate to the given state.
func (g *Gate) Set(active bool) {
	g.set(active)
}

func (g *Gate) set(active bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.active = active
	g.lastUpdated = time.Now()
}

// Active reports whether the maintenance fallback should render.
func (g *Gate) Active() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.active
}

// LastUpdated returns the time of the most recent state change, or the
// zero time if the gate was never touched.
func (g *Gate) LastUpdated() time.Time {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.lastUpdated
}
