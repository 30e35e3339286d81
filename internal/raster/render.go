package raster

import (
	"fmt"
	"image"
	"math"

	"golang.org/x/image/math/f64"

	"github.com/coreman2200/rogmatrix/internal/anime"
	"github.com/coreman2200/rogmatrix/internal/layout"
	"github.com/coreman2200/rogmatrix/internal/rogerr"
)

// positioned is an address table that also knows where its LEDs physically
// sit, like layout.Physical.
type positioned interface {
	layout.Address
	layout.Positioner
	Extent() (w, h float64)
}

// Render samples img for every addressable cell of addr. Cells whose samples
// all fall outside the image stay 0.
func Render(img *image.Gray, t Transform, addr layout.Address) (anime.DataBuffer, error) {
	var out anime.DataBuffer
	if err := t.Validate(); err != nil {
		return out, err
	}
	b := img.Bounds()
	if b.Empty() {
		return out, fmt.Errorf("raster: empty image: %w", rogerr.ErrDecode)
	}

	var (
		fwd f64.Aff3
		pos positioned
	)
	if t.Physical {
		p, ok := addr.(positioned)
		if !ok {
			return out, fmt.Errorf("raster: %T has no physical positions: %w", addr, rogerr.ErrInvalidParameter)
		}
		pos = p
		fwd = physicalMatrix(t, b.Dx(), b.Dy(), p)
	} else {
		fwd = gridMatrix(t, b.Dx(), b.Dy())
	}
	inv, ok := invert(fwd)
	if !ok {
		return out, fmt.Errorf("raster: singular transform: %w", rogerr.ErrInvalidParameter)
	}

	n := t.samples()
	step := 1 / float64(n)
	rowPitch := layout.PitchY / layout.PitchX
	for y := 0; y < addr.Height(); y++ {
		for x := 0; x < addr.Width(); x++ {
			idx, ok := addr.Address(x, y)
			if !ok {
				continue
			}
			// top-left of the cell in destination space
			ox, oy, sy := float64(x), float64(y), 1.0
			if pos != nil {
				px, py := pos.Position(x, y)
				ox, oy, sy = px-0.5, py-0.5*rowPitch, rowPitch
			}
			sum, count := 0, 0
			for j := 0; j < n; j++ {
				for i := 0; i < n; i++ {
					dx := ox + (float64(i)+0.5)*step
					dy := oy + (float64(j)+0.5)*step*sy
					srcX, srcY := apply(inv, dx, dy)
					ix, iy := int(math.Floor(srcX)), int(math.Floor(srcY))
					if ix < 0 || iy < 0 || ix >= b.Dx() || iy >= b.Dy() {
						continue
					}
					sum += int(img.GrayAt(b.Min.X+ix, b.Min.Y+iy).Y)
					count++
				}
			}
			if count == 0 {
				continue
			}
			out[idx] = clampU8(float64(sum) / float64(count) * t.Brightness)
		}
	}
	return out, nil
}

func gridMatrix(t Transform, w, h int) f64.Aff3 {
	cx, cy := float64(w)/2, float64(h)/2
	return chain(
		translate(cx+t.TX, cy+t.TY),
		rotate(t.Angle),
		scale(t.ScaleX, t.ScaleY),
		translate(-cx, -cy),
	)
}

// physicalMatrix fits the image inside the panel extent before applying t.
func physicalMatrix(t Transform, w, h int, p positioned) f64.Aff3 {
	ew, eh := p.Extent()
	base := math.Min(ew/float64(w), eh/float64(h))
	return chain(
		translate(ew/2+t.TX, eh/2+t.TY),
		rotate(t.Angle),
		scale(t.ScaleX*base, t.ScaleY*base),
		translate(-float64(w)/2, -float64(h)/2),
	)
}

func clampU8(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return uint8(v)
}
