// Package ctrl serialises device access and runs the AniMe and Aura loops.
package ctrl

import (
	"sync"

	"go.uber.org/atomic"

	"github.com/coreman2200/rogmatrix/internal/led"
)

// Coordinator owns the single transport. Packets handed to one Write or
// TryWrite call go out back to back; separate callers interleave only
// between calls.
type Coordinator struct {
	mu      sync.Mutex
	drv     led.Driver
	skipped atomic.Uint64
	written atomic.Uint64
}

func NewCoordinator(d led.Driver) *Coordinator {
	return &Coordinator{drv: d}
}

// TryWrite writes pkts if the transport is free. It returns false, and
// counts a skipped tick, when another writer holds it.
func (c *Coordinator) TryWrite(pkts ...[]byte) (bool, error) {
	if !c.mu.TryLock() {
		c.skipped.Inc()
		return false, nil
	}
	defer c.mu.Unlock()
	return true, c.writeLocked(pkts)
}

// Write waits for the transport and writes pkts.
func (c *Coordinator) Write(pkts ...[]byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.writeLocked(pkts)
}

func (c *Coordinator) writeLocked(pkts [][]byte) error {
	for _, p := range pkts {
		if err := c.drv.WriteBytes(p); err != nil {
			return err
		}
		c.written.Inc()
	}
	return nil
}

// Skipped is the number of TryWrite calls that found the transport busy.
func (c *Coordinator) Skipped() uint64 { return c.skipped.Load() }

// Written is the number of packets handed to the transport.
func (c *Coordinator) Written() uint64 { return c.written.Load() }

func (c *Coordinator) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.drv.Close()
}
