// Package tests generates hardware test patterns for the AniMe panel and
// the Aura keyboard.
package tests

import (
	"github.com/coreman2200/rogmatrix/internal/anime"
	"github.com/coreman2200/rogmatrix/internal/aura"
	"github.com/coreman2200/rogmatrix/internal/layout"
)

type Kind string

const (
	None       Kind = ""
	IndexSweep Kind = "index_sweep"
	RowSweep   Kind = "row_sweep"
	LevelRamp  Kind = "level_ramp"
	RGBTest    Kind = "rgb_channels"
)

// Kinds lists every pattern in the order the control surface shows them.
var Kinds = []Kind{IndexSweep, RowSweep, LevelRamp, RGBTest}

// Aura reports whether k drives the keyboard rather than the panel.
func (k Kind) Aura() bool { return k == RGBTest }

func (k Kind) Valid() bool {
	for _, v := range Kinds {
		if v == k {
			return true
		}
	}
	return false
}

type Plan struct{ Kind Kind }

type Runner struct {
	plan Plan
	step int
}

func NewRunner(plan Plan) *Runner { return &Runner{plan: plan} }
func (r *Runner) Kind() Kind      { return r.plan.Kind }

// Step fills buf with the next panel frame; false when the pattern is done.
func (r *Runner) Step(a layout.Address, buf *anime.DataBuffer) bool {
	*buf = anime.DataBuffer{}

	switch r.plan.Kind {
	case IndexSweep:
		if r.step >= len(buf) {
			return false
		}
		buf[r.step] = 255
	case RowSweep:
		y := r.step
		if y >= a.Height() {
			return false
		}
		for x := 0; x < a.Width(); x++ {
			if i, ok := a.Address(x, y); ok {
				buf[i] = 255
			}
		}
	case LevelRamp:
		if r.step > 8 {
			return false
		}
		v := r.step * 32
		if v > 255 {
			v = 255
		}
		for i := range buf {
			buf[i] = byte(v)
		}
	default:
		return false
	}
	r.step++
	return true
}

var rgbSteps = []aura.Colour{aura.Red, aura.Green, aura.Blue, {R: 255, G: 255, B: 255}}

// AuraStep returns the next keyboard colour; false when the pattern is done.
func (r *Runner) AuraStep() (aura.Colour, bool) {
	if r.plan.Kind != RGBTest || r.step >= len(rgbSteps) {
		return aura.Colour{}, false
	}
	c := rgbSteps[r.step]
	r.step++
	return c, true
}
