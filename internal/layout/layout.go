package layout

import (
	"fmt"
	"strings"

	"github.com/coreman2200/rogmatrix/internal/rogerr"
)

// DataLen is the number of LED bytes in one GA401 frame (two panes of 627).
const (
	PaneLen = 627
	DataLen = PaneLen * 2
)

// Address maps a logical pixel to a device buffer index.
// Cells without an LED behind them report ok == false and must be skipped.
type Address interface {
	Address(x, y int) (idx int, ok bool)
	Width() int
	Height() int
}

// AnimeType identifies the AniMe panel generation from the board name.
type AnimeType int

const (
	Unsupported AnimeType = iota
	GA401
	GA402
	GU604
)

func (t AnimeType) String() string {
	switch t {
	case GA401:
		return "GA401"
	case GA402:
		return "GA402"
	case GU604:
		return "GU604"
	default:
		return "Unsupported"
	}
}

// DataLen returns the frame length for the panel type, 0 when unknown.
func (t AnimeType) DataLen() int {
	switch t {
	case GA401:
		return DataLen
	case GA402, GU604:
		return PaneLen * 3
	default:
		return 0
	}
}

// AnimeTypeFromBoard resolves the panel type from a DMI board name such as "GA401IV".
func AnimeTypeFromBoard(board string) AnimeType {
	b := strings.ToUpper(board)
	switch {
	case strings.Contains(b, "GA401I"), strings.Contains(b, "GA401Q"):
		return GA401
	case strings.Contains(b, "GA402R"), strings.Contains(b, "GA402X"):
		return GA402
	case strings.Contains(b, "GU604V"):
		return GU604
	default:
		return Unsupported
	}
}

// Scheme names an addressing scheme for config files.
type Scheme string

const (
	SchemeGrid     Scheme = "grid"
	SchemeDiagonal Scheme = "diagonal"
)

// ForType returns the address space for a panel and scheme. Only the two-pane
// GA401 panel is addressable.
func ForType(t AnimeType, s Scheme) (Address, error) {
	if t != GA401 {
		return nil, fmt.Errorf("layout: %s panel has no address table: %w", t, rogerr.ErrInvalidParameter)
	}
	switch s {
	case SchemeGrid, "":
		return Grid{}, nil
	case SchemeDiagonal:
		return Diagonal{}, nil
	default:
		return nil, fmt.Errorf("layout: unknown scheme %q: %w", s, rogerr.ErrInvalidParameter)
	}
}

// Count returns how many cells of a are backed by an LED.
func Count(a Address) int {
	n := 0
	for y := 0; y < a.Height(); y++ {
		for x := 0; x < a.Width(); x++ {
			if _, ok := a.Address(x, y); ok {
				n++
			}
		}
	}
	return n
}
