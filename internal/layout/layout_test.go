package layout

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreman2200/rogmatrix/internal/rogerr"
)

func indexes(t *testing.T, a Address) map[int][2]int {
	t.Helper()
	seen := map[int][2]int{}
	for y := 0; y < a.Height(); y++ {
		for x := 0; x < a.Width(); x++ {
			idx, ok := a.Address(x, y)
			if !ok {
				continue
			}
			require.GreaterOrEqual(t, idx, 0)
			require.Less(t, idx, DataLen)
			if prev, dup := seen[idx]; dup {
				t.Fatalf("index %d used by %v and (%d,%d)", idx, prev, x, y)
			}
			seen[idx] = [2]int{x, y}
		}
	}
	return seen
}

func TestGridIsInjective(t *testing.T) {
	seen := indexes(t, Grid{})
	assert.Len(t, seen, 1249)
	assert.Equal(t, 1249, Count(Grid{}))

	// the offset rows leave their last buffer byte unused
	for _, gap := range []int{33, 67, 135, 203, DataLen - 1} {
		if at, ok := seen[gap]; ok {
			t.Fatalf("index %d addressed by %v", gap, at)
		}
	}
}

func TestGridRows(t *testing.T) {
	var g Grid
	cases := []struct {
		x, y int
		idx  int
		ok   bool
	}{
		{0, 0, 0, false},
		{1, 0, 0, true},
		{33, 0, 32, true},
		{0, 2, 68, true},
		{33, 2, 101, true},
		{0, 5, 0, false},
		{1, 5, 170, true},
		{0, 6, 0, false},
		{1, 6, 204, true},
		{33, 6, 236, true},
		{1, 7, 0, false},
		{2, 7, 237, true},
		{33, 55, 1252, true},
		{-1, 3, 0, false},
		{34, 3, 0, false},
		{3, 56, 0, false},
	}
	for _, c := range cases {
		idx, ok := g.Address(c.x, c.y)
		assert.Equal(t, c.ok, ok, "(%d,%d)", c.x, c.y)
		if c.ok {
			assert.Equal(t, c.idx, idx, "(%d,%d)", c.x, c.y)
		}
	}
}

func TestGridRowStartShrinks(t *testing.T) {
	var g Grid
	assert.Equal(t, 1, g.RowStart(0))
	assert.Equal(t, 0, g.RowStart(2))
	assert.Equal(t, 1, g.RowStart(6))
	assert.Equal(t, 2, g.RowStart(7))
	assert.Equal(t, 3, g.RowStart(9))
	// last row keeps eight LEDs
	assert.Equal(t, GridWidth-8, g.RowStart(55))
}

func TestDiagonalIsInjective(t *testing.T) {
	seen := indexes(t, Diagonal{})
	total := 0
	for _, r := range ga401Runs {
		total += r.n
	}
	assert.Len(t, seen, total)

	idx, ok := Diagonal{}.Address(0, 32)
	require.True(t, ok)
	assert.Equal(t, 1, idx)
	idx, ok = Diagonal{}.Address(3, 35)
	require.True(t, ok)
	assert.Equal(t, 204, idx)
	_, ok = Diagonal{}.Address(73, 0)
	assert.False(t, ok)
}

func TestAnimeTypeFromBoard(t *testing.T) {
	for board, want := range map[string]AnimeType{
		"GA401IV":    GA401,
		"ga401qm":    GA401,
		"GA402RJ":    GA402,
		"GA402XY":    GA402,
		"GU604VY":    GU604,
		"G513QY":     Unsupported,
		"":           Unsupported,
		"ROG GA401I": GA401,
	} {
		assert.Equal(t, want, AnimeTypeFromBoard(board), board)
	}
	assert.Equal(t, DataLen, GA401.DataLen())
	assert.Equal(t, 0, Unsupported.DataLen())
}

func TestForType(t *testing.T) {
	a, err := ForType(GA401, SchemeDiagonal)
	require.NoError(t, err)
	assert.Equal(t, DiagonalWidth, a.Width())

	a, err = ForType(GA401, "")
	require.NoError(t, err)
	assert.Equal(t, GridHeight, a.Height())

	_, err = ForType(GA402, SchemeGrid)
	assert.True(t, errors.Is(err, rogerr.ErrInvalidParameter))
	_, err = ForType(GA401, "spiral")
	assert.True(t, errors.Is(err, rogerr.ErrInvalidParameter))
}

func TestPhysicalOffsetsOddRows(t *testing.T) {
	var p Physical
	x0, y0 := p.Position(4, 0)
	x1, y1 := p.Position(4, 1)
	assert.InDelta(t, 0.5, x0-x1, 1e-9)
	assert.InDelta(t, PitchY/PitchX, y1-y0, 1e-9)
}
