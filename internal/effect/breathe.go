package effect

import (
	"github.com/coreman2200/rogmatrix/internal/aura"
	"github.com/coreman2200/rogmatrix/internal/keyboard"
)

// Breathe fades down to black and back up, alternating between two colours
// each time it passes through black.
type Breathe struct {
	target
	colour1, colour2 aura.Colour
	divisor          uint8

	current    aura.Colour
	rising     bool
	useColour2 bool
}

func NewBreathe(led keyboard.LedCode, c1, c2 aura.Colour, speed aura.Speed) *Breathe {
	return &Breathe{
		target:  target{led},
		colour1: c1,
		colour2: c2,
		divisor: 4 - speed.Level(),
		current: c1,
	}
}

func (b *Breathe) Colour() aura.Colour { return b.current }

func (b *Breathe) Advance(*keyboard.Layout) {
	black := b.current == aura.Black
	if black {
		b.useColour2 = !b.useColour2
	}
	want := b.colour1
	if b.useColour2 {
		want = b.colour2
	}
	step := aura.Colour{
		R: want.R / b.divisor / 2,
		G: want.G / b.divisor / 2,
		B: want.B / b.divisor / 2,
	}

	if black {
		b.rising = true
	} else if reached(b.current.R, want.R, step.R) &&
		reached(b.current.G, want.G, step.G) &&
		reached(b.current.B, want.B, step.B) {
		b.rising = false
	}

	if b.rising {
		b.current = aura.Colour{
			R: aura.AddSat(b.current.R, step.R),
			G: aura.AddSat(b.current.G, step.G),
			B: aura.AddSat(b.current.B, step.B),
		}
		return
	}
	b.current = aura.Colour{
		R: aura.SubSat(b.current.R, step.R),
		G: aura.SubSat(b.current.G, step.G),
		B: aura.SubSat(b.current.B, step.B),
	}
}

// reached treats a channel that cannot move as already there.
func reached(cur, want, step uint8) bool {
	return cur >= want || step == 0
}
