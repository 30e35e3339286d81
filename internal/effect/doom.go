package effect

import (
	"github.com/coreman2200/rogmatrix/internal/aura"
	"github.com/coreman2200/rogmatrix/internal/keyboard"
)

// rndTable is the fixed pseudo-random sequence the Doom light effects use.
var rndTable = [256]uint8{
	0, 8, 109, 220, 222, 241, 149, 107, 75, 248, 254, 140, 16, 66, 74, 21, 211, 47, 80, 242, 154,
	27, 205, 128, 161, 89, 77, 36, 95, 110, 85, 48, 212, 140, 211, 249, 22, 79, 200, 50, 28, 188,
	52, 140, 202, 120, 68, 145, 62, 70, 184, 190, 91, 197, 152, 224, 149, 104, 25, 178, 252, 182,
	202, 182, 141, 197, 4, 81, 181, 242, 145, 42, 39, 227, 156, 198, 225, 193, 219, 93, 122, 175,
	249, 0, 175, 143, 70, 239, 46, 246, 163, 53, 163, 109, 168, 135, 2, 235, 25, 92, 20, 145, 138,
	77, 69, 166, 78, 176, 173, 212, 166, 113, 94, 161, 41, 50, 239, 49, 111, 164, 70, 60, 2, 37,
	171, 75, 136, 156, 11, 56, 42, 146, 138, 229, 73, 146, 77, 61, 98, 196, 135, 106, 63, 197, 195,
	86, 96, 203, 113, 101, 170, 247, 181, 113, 80, 250, 108, 7, 255, 237, 129, 226, 79, 107, 112,
	166, 103, 241, 24, 223, 239, 120, 198, 58, 60, 82, 128, 3, 184, 66, 143, 224, 145, 224, 81,
	206, 163, 45, 63, 90, 168, 114, 59, 33, 159, 95, 28, 139, 123, 98, 125, 196, 15, 70, 194, 253,
	54, 14, 109, 226, 71, 17, 161, 93, 186, 87, 244, 138, 20, 52, 123, 251, 26, 36, 17, 46, 52,
	231, 232, 76, 31, 221, 84, 37, 216, 165, 212, 106, 197, 242, 98, 43, 39, 175, 254, 145, 190,
	84, 118, 222, 187, 136, 120, 163, 236, 249,
}

// rnd walks rndTable. Each effect owns one so effects do not disturb each
// other's sequence.
type rnd struct{ idx uint8 }

func (r *rnd) next() uint8 {
	r.idx++
	return rndTable[r.idx]
}

const flickerPeriod = 4

// DoomFlicker dips the colour by a random amount every fourth tick, never
// going below the minimum light level.
type DoomFlicker struct {
	target
	maxLight, minLight aura.Colour
	colour             aura.Colour
	count              int
	rnd                rnd
}

// NewDoomFlicker flickers between maxPct and minPct percent of c.
func NewDoomFlicker(led keyboard.LedCode, c aura.Colour, maxPct, minPct uint8) *DoomFlicker {
	return &DoomFlicker{
		target:   target{led},
		maxLight: c.Percent(maxPct),
		minLight: c.Percent(minPct),
		colour:   c,
		count:    flickerPeriod,
	}
}

func (d *DoomFlicker) Colour() aura.Colour { return d.colour }

func (d *DoomFlicker) Advance(*keyboard.Layout) {
	if d.count == 0 {
		d.count = flickerPeriod
	}
	d.count--
	if d.count != 0 {
		return
	}
	amount := float64(d.rnd.next()&7) * 8
	d.colour = aura.Colour{
		R: flicker(d.colour.R, d.maxLight.R, d.minLight.R, amount),
		G: flicker(d.colour.G, d.maxLight.G, d.minLight.G, amount),
		B: flicker(d.colour.B, d.maxLight.B, d.minLight.B, amount),
	}
	d.count = flickerPeriod
}

func flicker(cur, max, min uint8, amount float64) uint8 {
	if max == 0 {
		return 0
	}
	mx, mn := float64(max), float64(min)
	pc := amount / mx * 100
	if float64(cur)-pc*mn/100 < mn {
		return min
	}
	v := mx - pc*mx/100
	if v < 0 {
		return 0
	}
	return uint8(v)
}

// DoomLightFlash toggles between the maximum and minimum light, staying on
// each for a random number of ticks.
type DoomLightFlash struct {
	target
	maxLight, minLight aura.Colour
	maxTime, minTime   uint8
	colour             aura.Colour
	count              int
	rnd                rnd
}

func NewDoomLightFlash(led keyboard.LedCode, c aura.Colour, maxPct, minPct uint8) *DoomLightFlash {
	return &DoomLightFlash{
		target:   target{led},
		maxLight: c.Percent(maxPct),
		minLight: c.Percent(minPct),
		maxTime:  32,
		minTime:  7,
		colour:   c,
		count:    4,
	}
}

func (d *DoomLightFlash) Colour() aura.Colour { return d.colour }

func (d *DoomLightFlash) Advance(*keyboard.Layout) {
	d.count--
	if d.count > 0 {
		return
	}
	if d.colour == d.maxLight {
		d.colour = d.minLight
		d.count = int(d.rnd.next()&d.minTime) + 1
	} else {
		d.colour = d.maxLight
		d.count = int(d.rnd.next()&d.maxTime) + 1
	}
}
