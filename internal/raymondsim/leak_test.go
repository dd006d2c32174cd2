package raymondsim

import (
	"testing"
	"time"

	"go.uber.org/goleak"
)

// TestNoGoroutineLeaks runs a small simulation end-to-end and asserts,
// in the style of chaitanyaphalak-go-mcast's fuzzy/commit_test.go, that
// no node-driver or watchdog goroutine survives past Simulation.Run
// returning.
func TestNoGoroutineLeaks(t *testing.T) {
	defer goleak.VerifyNone(t)

	sim := fastSimulation(t, Config{Nodes: 3, Load: LoadMed, Seed: 11, Requests: 20})
	sim.cfg.WatchdogInterval = 50 * time.Millisecond
	runOrFail(t, sim)
}
