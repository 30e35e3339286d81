// Package aura builds the USB messages for Aura keyboard and lightbar RGB.
package aura

import (
	"fmt"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/coreman2200/rogmatrix/internal/rogerr"
)

// Colour is one RGB value as sent on the wire.
type Colour struct {
	R, G, B uint8
}

var (
	Black  = Colour{}
	Red    = Colour{0xff, 0x00, 0x00}
	Green  = Colour{0x00, 0xff, 0x00}
	Blue   = Colour{0x00, 0x00, 0xff}
	Violet = Colour{0x9b, 0x26, 0xb6}
	Teal   = Colour{0x00, 0x7c, 0x80}
	Yellow = Colour{0xff, 0xef, 0x00}
	Orange = Colour{0xff, 0xa4, 0x00}

	// DefaultColour is the firmware's factory red.
	DefaultColour = Colour{166, 0, 0}
)

// Gradient is the seven stop rainbow used by multi-zone presets.
var Gradient = [7]Colour{Red, Violet, Blue, Teal, Green, Yellow, Orange}

var named = map[string]Colour{
	"black": Black, "red": Red, "green": Green, "blue": Blue,
	"violet": Violet, "teal": Teal, "yellow": Yellow, "orange": Orange,
}

// ParseColour accepts "rrggbb", "#rrggbb", "#rgb" or one of the named colours.
func ParseColour(s string) (Colour, error) {
	s = strings.TrimSpace(s)
	if c, ok := named[strings.ToLower(s)]; ok {
		return c, nil
	}
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return Colour{}, fmt.Errorf("aura: colour %q: %v: %w", s, err, rogerr.ErrInvalidParameter)
	}
	r, g, b := c.RGB255()
	return Colour{r, g, b}, nil
}

func (c Colour) String() string { return c.colorful().Hex() }

func (c Colour) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// Blend mixes c towards o in Luv space; t is clamped to [0,1].
func (c Colour) Blend(o Colour, t float64) Colour {
	switch {
	case t <= 0:
		return c
	case t >= 1:
		return o
	}
	r, g, b := c.colorful().BlendLuv(o.colorful(), t).Clamped().RGB255()
	return Colour{r, g, b}
}

// Percent scales every channel to p percent, truncating.
func (c Colour) Percent(p uint8) Colour {
	f := float64(p) / 100
	return Colour{sat(float64(c.R) * f), sat(float64(c.G) * f), sat(float64(c.B) * f)}
}

func sat(v float64) uint8 {
	if v >= 255 {
		return 255
	}
	if v <= 0 {
		return 0
	}
	return uint8(v)
}

// Saturating channel arithmetic.

func AddSat(a, b uint8) uint8 {
	if s := uint16(a) + uint16(b); s <= 255 {
		return uint8(s)
	}
	return 255
}

func SubSat(a, b uint8) uint8 {
	if a < b {
		return 0
	}
	return a - b
}
