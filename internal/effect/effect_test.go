package effect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreman2200/rogmatrix/internal/aura"
	"github.com/coreman2200/rogmatrix/internal/keyboard"
)

func TestStaticNeverChanges(t *testing.T) {
	s := NewStatic(keyboard.F, aura.Colour{R: 255, G: 127, B: 0})
	l := keyboard.Fallback()
	for i := 0; i < 10; i++ {
		s.Advance(&l)
	}
	assert.Equal(t, aura.Colour{R: 255, G: 127, B: 0}, s.Colour())
	s.SetTarget(keyboard.G)
	assert.Equal(t, keyboard.G, s.Target())
}

func TestBreatheSequence(t *testing.T) {
	c1 := aura.Colour{R: 255, G: 127, B: 0}
	c2 := aura.Colour{R: 127, G: 0, B: 255}
	b := NewBreathe(keyboard.F, c1, c2, aura.Med)
	assert.Equal(t, c1, b.Colour())

	want := []aura.Colour{
		{R: 192, G: 96, B: 0}, {R: 129, G: 65, B: 0}, {R: 66, G: 34, B: 0}, {R: 3, G: 3, B: 0}, {R: 0, G: 0, B: 0},
		// black: switch to colour2 and rise
		{R: 31, G: 0, B: 63}, {R: 62, G: 0, B: 126}, {R: 93, G: 0, B: 189}, {R: 124, G: 0, B: 252}, {R: 155, G: 0, B: 255},
		// every channel at or past colour2: fall
		{R: 124, G: 0, B: 192}, {R: 93, G: 0, B: 129}, {R: 62, G: 0, B: 66}, {R: 31, G: 0, B: 3}, {R: 0, G: 0, B: 0},
		// back to colour1
		{R: 63, G: 31, B: 0},
	}
	for i, w := range want {
		b.Advance(nil)
		if b.Colour() != w {
			t.Fatalf("tick %d: got %v want %v", i+1, b.Colour(), w)
		}
	}
}

func TestBreatheDimChannelDoesNotStallRise(t *testing.T) {
	// colour2's green is too small to step at this speed
	b := NewBreathe(keyboard.F, aura.Colour{R: 200, G: 0, B: 0}, aura.Colour{R: 200, G: 1, B: 0}, aura.Med)
	blacks := 0
	for i := 0; i < 40; i++ {
		b.Advance(nil)
		c := b.Colour()
		if c.R > 200 {
			t.Fatalf("tick %d: rose past colour2 to %v", i+1, c)
		}
		if c == aura.Black {
			blacks++
		}
	}
	assert.GreaterOrEqual(t, blacks, 3)
}

func TestBreatheAlternatesAndStaysInRange(t *testing.T) {
	c1 := aura.Colour{R: 255, G: 127, B: 0}
	c2 := aura.Colour{R: 127, G: 0, B: 255}
	for _, sp := range []aura.Speed{aura.Low, aura.Med, aura.High} {
		b := NewBreathe(keyboard.F, c1, c2, sp)
		blacks := 0
		sawBlue := false
		for i := 0; i < 500; i++ {
			b.Advance(nil)
			c := b.Colour()
			if c == aura.Black {
				blacks++
			}
			if c.B > 0 {
				sawBlue = true
			}
			// colour1 has no blue, colour2 no green: only one is ever active
			require.False(t, c.B > 0 && c.G > 0, "speed %v tick %d: %v", sp, i, c)
		}
		assert.Greater(t, blacks, 2, "speed %v", sp)
		assert.True(t, sawBlue, "speed %v", sp)
	}
}

func TestBreatheZeroStepChannelCountsAsReached(t *testing.T) {
	// green step is 1/1/2 == 0 at High speed, so green can never climb to 1
	c := aura.Colour{R: 200, G: 1, B: 0}
	b := NewBreathe(keyboard.F, c, c, aura.High)
	b.current = aura.Black
	want := []aura.Colour{{R: 100, G: 0, B: 0}, {R: 200, G: 0, B: 0}, {R: 100, G: 0, B: 0}, {R: 0, G: 0, B: 0}, {R: 100, G: 0, B: 0}}
	for i, w := range want {
		b.Advance(nil)
		if b.Colour() != w {
			t.Fatalf("tick %d: got %v want %v", i+1, b.Colour(), w)
		}
	}
}

func TestDoomFlicker(t *testing.T) {
	d := NewDoomFlicker(keyboard.F, aura.Colour{R: 255, G: 127, B: 80}, 100, 10)
	for i := 0; i < 4; i++ {
		d.Advance(nil)
	}
	assert.Equal(t, aura.Colour{R: 255, G: 127, B: 80}, d.Colour())
	for i := 0; i < 4; i++ {
		d.Advance(nil)
	}
	assert.Equal(t, aura.Colour{R: 215, G: 87, B: 40}, d.Colour())
}

func TestDoomLightFlashToggles(t *testing.T) {
	start := aura.Colour{R: 200, G: 100, B: 50}
	d := NewDoomLightFlash(keyboard.F, start, 100, 20)
	for i := 0; i < 3; i++ {
		d.Advance(nil)
		assert.Equal(t, start, d.Colour())
	}
	d.Advance(nil)
	assert.Equal(t, start.Percent(20), d.Colour())

	seen := map[aura.Colour]bool{}
	for i := 0; i < 200; i++ {
		d.Advance(nil)
		seen[d.Colour()] = true
	}
	assert.Len(t, seen, 2)
}

type rampInput struct{ v uint8 }

func (r *rampInput) Next()                { r.v += 10 }
func (r *rampInput) Colour() aura.Colour { return aura.Colour{R: r.v} }

func TestReactiveFollowsInput(t *testing.T) {
	r := NewReactive(keyboard.Esc, &rampInput{})
	r.Advance(nil)
	r.Advance(nil)
	assert.Equal(t, aura.Colour{R: 20}, r.Colour())
}

func TestSetPackets(t *testing.T) {
	s := NewSet(false, NewStatic(keyboard.F, aura.Colour{R: 255, G: 127, B: 0}))
	s.Advance(nil)
	b := s.Packets().Bytes()
	assert.Equal(t, byte(0x5d), b[0][0])
	assert.Equal(t, []byte{255, 127, 0}, b[5][33:36])

	z := NewSet(true)
	z.Push(NewStatic(keyboard.ZonedKbLeft, aura.Red))
	z.Push(NewStatic(keyboard.F, aura.Blue))
	zb := z.Packets().Bytes()
	require.Len(t, zb, 1)
	assert.Equal(t, []byte{0xff, 0, 0}, zb[0][9:12])
}

func TestSetInsertRemove(t *testing.T) {
	a := NewStatic(keyboard.A, aura.Red)
	b := NewStatic(keyboard.B, aura.Green)
	c := NewStatic(keyboard.C, aura.Blue)
	s := NewSet(false, a, c)
	s.Insert(1, b)
	s.Insert(99, a)
	assert.Equal(t, 4, s.Len())

	got, ok := s.Remove(1)
	require.True(t, ok)
	assert.Equal(t, keyboard.B, got.Target())
	_, ok = s.Remove(3)
	assert.False(t, ok)
	assert.Equal(t, 3, s.Len())
}
