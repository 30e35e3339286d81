// Package effect produces per-tick colours for Aura LEDs.
package effect

import (
	"github.com/coreman2200/rogmatrix/internal/aura"
	"github.com/coreman2200/rogmatrix/internal/keyboard"
)

// Effect is one stateful colour generator bound to a single LED or zone.
// Advance moves it to the next tick; Colour reads the current value.
type Effect interface {
	Advance(l *keyboard.Layout)
	Colour() aura.Colour
	Target() keyboard.LedCode
	SetTarget(keyboard.LedCode)
}

// Input supplies colours from outside the engine (audio level, CPU load,
// clock). No sources ship yet; Reactive adapts one into an Effect.
type Input interface {
	Next()
	Colour() aura.Colour
}

type target struct{ led keyboard.LedCode }

func (t *target) Target() keyboard.LedCode       { return t.led }
func (t *target) SetTarget(led keyboard.LedCode) { t.led = led }

// Static holds one colour forever.
type Static struct {
	target
	colour aura.Colour
}

func NewStatic(led keyboard.LedCode, c aura.Colour) *Static {
	return &Static{target: target{led}, colour: c}
}

func (s *Static) Advance(*keyboard.Layout) {}
func (s *Static) Colour() aura.Colour      { return s.colour }

// Reactive reads its colour from an Input each tick.
type Reactive struct {
	target
	in     Input
	colour aura.Colour
}

func NewReactive(led keyboard.LedCode, in Input) *Reactive {
	return &Reactive{target: target{led}, in: in, colour: in.Colour()}
}

func (r *Reactive) Advance(*keyboard.Layout) {
	r.in.Next()
	r.colour = r.in.Colour()
}

func (r *Reactive) Colour() aura.Colour { return r.colour }
