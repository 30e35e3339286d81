package tests

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/coreman2200/rogmatrix/internal/anime"
	"github.com/coreman2200/rogmatrix/internal/aura"
	"github.com/coreman2200/rogmatrix/internal/layout"
)

func lit(buf anime.DataBuffer) int {
	n := 0
	for _, v := range buf {
		if v != 0 {
			n++
		}
	}
	return n
}

func TestIndexSweepLightsOneLED(t *testing.T) {
	r := NewRunner(Plan{Kind: IndexSweep})
	var buf anime.DataBuffer
	steps := 0
	for r.Step(layout.Grid{}, &buf) {
		if lit(buf) != 1 || buf[steps] != 255 {
			t.Fatalf("step %d: want only LED %d lit", steps, steps)
		}
		steps++
	}
	assert.Equal(t, layout.DataLen, steps)
}

func TestRowSweepCoversGrid(t *testing.T) {
	r := NewRunner(Plan{Kind: RowSweep})
	var buf anime.DataBuffer
	total := 0
	for r.Step(layout.Grid{}, &buf) {
		total += lit(buf)
	}
	assert.Equal(t, layout.Count(layout.Grid{}), total)
}

func TestLevelRampEndsAtFull(t *testing.T) {
	r := NewRunner(Plan{Kind: LevelRamp})
	var buf, last anime.DataBuffer
	for r.Step(layout.Grid{}, &buf) {
		last = buf
	}
	assert.Equal(t, byte(255), last[0])
}

func TestRGBTest(t *testing.T) {
	r := NewRunner(Plan{Kind: RGBTest})
	var got []aura.Colour
	for c, ok := r.AuraStep(); ok; c, ok = r.AuraStep() {
		got = append(got, c)
	}
	assert.Equal(t, []aura.Colour{aura.Red, aura.Green, aura.Blue, {R: 255, G: 255, B: 255}}, got)
	assert.True(t, RGBTest.Aura())
	assert.False(t, RowSweep.Aura())
	assert.False(t, Kind("plane_z").Valid())

	var buf anime.DataBuffer
	assert.False(t, r.Step(layout.Grid{}, &buf))
}
