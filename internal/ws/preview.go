package ws

import (
	"image"
	"image/png"
	"math"
	"net/http"
	"strconv"

	"github.com/disintegration/gift"

	"github.com/coreman2200/rogmatrix/internal/anime"
	"github.com/coreman2200/rogmatrix/internal/layout"
)

const defaultPreviewScale = 12

// Preview draws buf back onto the cells of addr and upscales the result.
// Grid rows are squashed by the panel's row/column pitch ratio so the
// picture has the proportions of the real panel; the diagonal image is
// already square-pixelled and keeps its aspect.
func Preview(buf anime.DataBuffer, addr layout.Address, scale int) *image.Gray {
	if scale < 1 {
		scale = 1
	}
	src := image.NewGray(image.Rect(0, 0, addr.Width(), addr.Height()))
	for y := 0; y < addr.Height(); y++ {
		for x := 0; x < addr.Width(); x++ {
			if i, ok := addr.Address(x, y); ok {
				src.Pix[src.PixOffset(x, y)] = buf[i]
			}
		}
	}
	w := addr.Width() * scale
	h := addr.Height() * scale
	switch addr.(type) {
	case layout.Grid, layout.Physical:
		h = int(math.Round(float64(h) * layout.PitchY / layout.PitchX))
	}
	g := gift.New(gift.Resize(w, h, gift.NearestNeighborResampling))
	dst := image.NewGray(g.Bounds(src.Bounds()))
	g.Draw(dst, src)
	return dst
}

// HandlePreviewPNG serves the last AniMe frame. ?scale=N picks the
// upscale factor.
func (s *State) HandlePreviewPNG(w http.ResponseWriter, r *http.Request) {
	if s.core.Anime == nil {
		http.Error(w, "no anime device", http.StatusNotFound)
		return
	}
	scale := defaultPreviewScale
	if v := r.URL.Query().Get("scale"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 64 {
			http.Error(w, "bad scale", http.StatusBadRequest)
			return
		}
		scale = n
	}
	addr, err := layout.ForType(s.core.AnimeType, s.core.Scheme)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_ = png.Encode(w, Preview(s.core.Anime.Last(), addr, scale))
}
