package raster

import (
	"fmt"
	"image"
	"image/gif"
	"io"
	"os"
	"time"

	"github.com/coreman2200/rogmatrix/internal/anime"
	"github.com/coreman2200/rogmatrix/internal/layout"
	"github.com/coreman2200/rogmatrix/internal/rogerr"
)

// Frame is one rendered clip frame and how long it stays on screen.
type Frame struct {
	Buffer anime.DataBuffer
	Delay  time.Duration
}

// DecodeGIF renders every frame of a GIF clip. Frames paint onto a working
// canvas that persists between frames: only fully opaque pixels are drawn,
// so transparent areas keep what earlier frames left there. A frame with
// background disposal starts from a blank canvas.
func DecodeGIF(r io.Reader, t Transform, addr layout.Address) ([]Frame, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	g, err := gif.DecodeAll(r)
	if err != nil {
		return nil, fmt.Errorf("raster: decode gif: %v: %w", err, rogerr.ErrDecode)
	}
	if len(g.Image) == 0 {
		return nil, fmt.Errorf("raster: gif: %w", rogerr.ErrNoFrames)
	}

	canvas := image.Rect(0, 0, g.Config.Width, g.Config.Height)
	if canvas.Empty() {
		canvas = g.Image[0].Bounds()
	}
	work := image.NewGray(canvas)
	frames := make([]Frame, 0, len(g.Image))
	for i, src := range g.Image {
		if i < len(g.Disposal) && g.Disposal[i] == gif.DisposalBackground {
			work = image.NewGray(canvas)
		}
		overlay(work, src)

		buf, err := Render(work, t, addr)
		if err != nil {
			return nil, err
		}
		var delay int
		if i < len(g.Delay) {
			delay = g.Delay[i]
		}
		frames = append(frames, Frame{Buffer: buf, Delay: time.Duration(delay*10) * time.Millisecond})
	}
	return frames, nil
}

// overlay paints the opaque pixels of src into dst as the mean of R, G and B.
func overlay(dst *image.Gray, src *image.Paletted) {
	b := src.Bounds().Intersect(dst.Bounds())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, a := src.At(x, y).RGBA()
			if a>>8 != 0xff {
				continue
			}
			dst.Pix[dst.PixOffset(x, y)] = uint8(((r >> 8) + (g >> 8) + (bl >> 8)) / 3)
		}
	}
}

// LoadGIF is DecodeGIF on a file.
func LoadGIF(path string, t Transform, addr layout.Address) ([]Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("raster: %v: %w", err, rogerr.ErrDecode)
	}
	defer f.Close()
	return DecodeGIF(f, t, addr)
}
