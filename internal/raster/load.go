package raster

import (
	"fmt"
	"image"
	"io"
	"os"

	// still formats accepted by Load
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"github.com/coreman2200/rogmatrix/internal/rogerr"
)

// Decode reads an 8-bit greyscale still. Any other colour model is rejected.
func Decode(r io.Reader) (*image.Gray, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("raster: decode: %v: %w", err, rogerr.ErrDecode)
	}
	g, ok := img.(*image.Gray)
	if !ok {
		return nil, fmt.Errorf("raster: %s image is %T, want 8-bit greyscale: %w", format, img, rogerr.ErrDecode)
	}
	return g, nil
}

func Load(path string) (*image.Gray, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("raster: %v: %w", err, rogerr.ErrDecode)
	}
	defer f.Close()
	return Decode(f)
}
