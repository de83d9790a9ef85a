package maintenance

import (
	"testing"
	"time"
)

func TestGate_ZeroValueIsOpen(t *testing.T) {
	var g Gate
	if g.Active() {
		t.Fatal("Active() = true, want false for zero value")
	}
	if !g.LastUpdated().IsZero() {
		t.Fatalf("LastUpdated() = %v, want zero time", g.LastUpdated())
	}
}

func TestGate_EnableLatchesUntilManualReset(t *testing.T) {
	var g Gate

	before := time.Now()
	g.Enable()
	if !g.Active() {
		t.Fatal("Active() = false, want true after Enable")
	}
	if g.LastUpdated().Before(before) {
		t.Fatalf("LastUpdated() = %v, want >= %v", g.LastUpdated(), before)
	}

	// Repeated enables keep the latch set.
	g.Enable()
	if !g.Active() {
		t.Fatal("Active() = false, want true after repeated Enable")
	}

	g.Disable()
	if g.Active() {
		t.Fatal("Active() = true, want false after Disable")
	}
}

func TestGate_Set(t *testing.T) {
	var g Gate
	g.Set(true)
	if !g.Active() {
		t.Fatal("Active() = false, want true after Set(true)")
	}
	g.Set(false)
	if g.Active() {
		t.Fatal("Active() = true, want false after Set(false)")
	}
}
