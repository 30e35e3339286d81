// Package render drives the active Aura effect set one tick at a time.
package render

import (
	"sync"
	"time"

	"github.com/coreman2200/rogmatrix/internal/effect"
	"github.com/coreman2200/rogmatrix/internal/keyboard"
)

// Engine owns the active effect set. RenderOnce and SetEffects may be called
// from different goroutines.
type Engine struct {
	mu     sync.Mutex
	set    *effect.Set
	layout *keyboard.Layout

	// Last holds the duration of the most recent RenderOnce.
	Last struct {
		RenderMS float64
	}
}

// NewEngine starts with set, which may be nil for "nothing to draw".
func NewEngine(l *keyboard.Layout, set *effect.Set) *Engine {
	return &Engine{layout: l, set: set}
}

// SetEffects replaces the active set. The next tick draws the new set from
// its initial state; nothing is blended.
func (e *Engine) SetEffects(set *effect.Set) {
	e.mu.Lock()
	e.set = set
	e.mu.Unlock()
}

func (e *Engine) Effects() *effect.Set {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.set
}

func (e *Engine) Layout() *keyboard.Layout { return e.layout }

// RenderOnce advances every effect one tick and returns the reports to
// write, or nil if no set is active.
func (e *Engine) RenderOnce() [][]byte {
	start := time.Now()
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.set == nil {
		return nil
	}
	e.set.Advance(e.layout)
	out := e.set.Packets().Bytes()
	e.Last.RenderMS = float64(time.Since(start).Microseconds()) / 1000.0
	return out
}

// Zoned reports whether the active set writes the single zoned report.
func (e *Engine) Zoned() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.set != nil && e.set.Zoned()
}
