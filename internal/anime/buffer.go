// Package anime holds the AniMe Matrix data buffer and its USB packet framing.
package anime

import (
	"fmt"

	"github.com/coreman2200/rogmatrix/internal/layout"
	"github.com/coreman2200/rogmatrix/internal/rogerr"
)

// DataBuffer is the per-LED brightness of both GA401 panes, pane 0 first.
type DataBuffer [layout.DataLen]byte

// FromSlice copies b into a DataBuffer. b must be exactly DataLen bytes.
func FromSlice(b []byte) (DataBuffer, error) {
	var d DataBuffer
	if len(b) != len(d) {
		return d, fmt.Errorf("anime: buffer length %d, want %d: %w", len(b), len(d), rogerr.ErrInvalidParameter)
	}
	copy(d[:], b)
	return d, nil
}

// maxLevel is the brightest value written after scaling.
const maxLevel = 254

// Scale multiplies every LED by f, capped at 254. f <= 0 blanks the buffer.
func (d DataBuffer) Scale(f float64) DataBuffer {
	var out DataBuffer
	if f <= 0 {
		return out
	}
	for i, v := range d {
		s := float64(v) * f
		if s > maxLevel {
			s = maxLevel
		}
		out[i] = byte(s)
	}
	return out
}

// Pane returns pane k of the buffer.
func (d *DataBuffer) Pane(k int) []byte {
	return d[k*layout.PaneLen : (k+1)*layout.PaneLen]
}

// Clear is a convenience for the all-off frame.
func Clear() DataBuffer { return DataBuffer{} }
