// Package raster renders greyscale stills and GIF clips into AniMe data
// buffers through an address table.
package raster

import (
	"fmt"
	"math"

	"github.com/coreman2200/rogmatrix/internal/rogerr"
)

// Transform places a source image on the panel. Scale and rotation are about
// the image centre; translation is in cells (or LED pitches when Physical).
type Transform struct {
	ScaleX     float64 `yaml:"scale_x"`
	ScaleY     float64 `yaml:"scale_y"`
	Angle      float64 `yaml:"angle"`
	TX         float64 `yaml:"tx"`
	TY         float64 `yaml:"ty"`
	Brightness float64 `yaml:"brightness"`
	// Fineness is the per-axis supersample count. 0 and 1 sample the cell centre.
	Fineness int `yaml:"fineness"`
	// Physical fits the image to the real LED positions instead of the cell grid.
	Physical bool `yaml:"physical"`
}

// Identity maps source pixel (x,y) onto cell (x,y) at full brightness.
func Identity() Transform {
	return Transform{ScaleX: 1, ScaleY: 1, Brightness: 1}
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Validate rejects parameters that cannot produce an invertible transform.
// Large scales and angles outside one turn are allowed.
func (t Transform) Validate() error {
	if !finite(t.ScaleX, t.ScaleY, t.Angle, t.TX, t.TY, t.Brightness) {
		return fmt.Errorf("raster: non-finite transform %+v: %w", t, rogerr.ErrInvalidParameter)
	}
	if t.ScaleX == 0 || t.ScaleY == 0 {
		return fmt.Errorf("raster: zero scale: %w", rogerr.ErrInvalidParameter)
	}
	if t.Brightness < 0 || t.Brightness > 1 {
		return fmt.Errorf("raster: brightness %v: %w", t.Brightness, rogerr.ErrBrightness)
	}
	if t.Fineness < 0 || t.Fineness > 16 {
		return fmt.Errorf("raster: fineness %d: %w", t.Fineness, rogerr.ErrInvalidParameter)
	}
	return nil
}

func (t Transform) samples() int {
	if t.Fineness < 1 {
		return 1
	}
	return t.Fineness
}
