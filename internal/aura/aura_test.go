package aura

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreman2200/rogmatrix/internal/keyboard"
	"github.com/coreman2200/rogmatrix/internal/rogerr"
)

func TestZonedNoBleed(t *testing.T) {
	p := NewZonedPackets(true)
	require.True(t, p.Set(keyboard.ZonedKbRight, Colour{1, 2, 3}))

	b := p.Bytes()
	require.Len(t, b, 1)
	assert.Equal(t, []byte{0x5d, 0xbc, 0x01, 0x01, 0x04}, b[0][:5])
	assert.Equal(t, []byte{1, 2, 3}, b[0][18:21])
	for i, v := range b[0] {
		if i < 5 || (i >= 18 && i < 21) {
			continue
		}
		if v != 0 {
			t.Fatalf("byte %d = %#x, want 0", i, v)
		}
	}
}

func TestZonedRejectsPerKeyCodes(t *testing.T) {
	p := NewZonedPackets(true)
	p.Set(keyboard.ZonedKbRightMid, Colour{9, 9, 9})
	// VolDown shares ZonedKbRightMid's bytes in the per-key table
	assert.False(t, p.Set(keyboard.VolDown, Colour{1, 1, 1}))
	got, ok := p.Get(keyboard.ZonedKbRightMid)
	require.True(t, ok)
	assert.Equal(t, Colour{9, 9, 9}, got)

	assert.True(t, p.Set(keyboard.LightbarLeft, Colour{4, 5, 6}))
	assert.Equal(t, []byte{4, 5, 6}, p.Bytes()[0][42:45])
}

func TestSingleZoneSharesLeft(t *testing.T) {
	p := NewZonedPackets(false)
	assert.Equal(t, byte(0), p.Bytes()[0][4])
	p.Set(keyboard.SingleZone, Colour{7, 8, 9})
	got, _ := p.Get(keyboard.ZonedKbLeft)
	assert.Equal(t, Colour{7, 8, 9}, got)
}

func TestPerKeyHeaders(t *testing.T) {
	b := NewPerKeyPackets().Bytes()
	require.Len(t, b, 11)
	for i, row := range b {
		assert.Equal(t, []byte{0x5d, 0xbc, 0x00, 0x01, 0x01, 0x01, byte(i << 4)}, row[:7], "row %d", i)
		want := byte(0x10)
		if i == 10 {
			want = 0x08
		}
		assert.Equal(t, want, row[7], "row %d", i)
		assert.Equal(t, byte(0), row[8])
	}
}

func TestPerKeyOffsets(t *testing.T) {
	p := NewPerKeyPackets()
	for _, c := range []struct {
		code     keyboard.LedCode
		row, col int
	}{
		{keyboard.D, 5, 30},
		{keyboard.O, 4, 33},
		{keyboard.M, 7, 12},
		{keyboard.N0, 3, 21},
		{keyboard.Right, 10, 12},
	} {
		require.True(t, p.Set(c.code, Colour{0xaa, 0xbb, 0xcc}), c.code)
		assert.Equal(t, []byte{0xaa, 0xbb, 0xcc}, p.Bytes()[c.row][c.col:c.col+3], c.code)
	}

	assert.False(t, p.Set(keyboard.LidLogo, Red))
	assert.False(t, p.Set(keyboard.LightbarLeft, Red))
	assert.False(t, p.Set(keyboard.Spacing, Red))
	assert.False(t, p.Set(keyboard.NumLock, Red))
}

func TestBuiltinMessage(t *testing.T) {
	e := Effect{Mode: Static, Colour1: Colour{0xff, 0x11, 0xdd}, Colour2: DefaultColour, Speed: Med}
	m := e.Message()
	assert.Equal(t, Message{0x5d, 0xb3, 0, 0, 0xff, 0x11, 0xdd, 0xeb, 0, 0, 0xa6, 0, 0, 0, 0, 0, 0}, m)

	e = Effect{Mode: Static, Zone: ZoneKey2, Colour1: Colour{0xff, 0xff, 0}, Speed: Low, Direction: Left}
	m = e.Message()
	assert.Equal(t, []byte{0x5d, 0xb3, 0x02, 0x00, 0xff, 0xff, 0x00, 0xe1, 0x01}, m[:9])

	e = Effect{Mode: Flash, Speed: High, Direction: Down}
	m = e.Message()
	assert.Equal(t, byte(12), m[3])
	assert.Equal(t, byte(0xf5), m[7])
	assert.Equal(t, byte(3), m[8])
}

func TestControlMessages(t *testing.T) {
	assert.Equal(t, []byte{0x5d, 0xb5}, LEDSet[:2])
	assert.Equal(t, []byte{0x5d, 0xb4}, LEDApply[:2])
	bm := BrightnessMessage(2)
	assert.Equal(t, []byte{0x5a, 0xba, 0xc5, 0xc4, 0x02}, bm[:5])
	assert.Equal(t, byte(3), BrightnessMessage(9)[4])

	msgs := InitMessages()
	require.Len(t, msgs, 3)
	assert.Equal(t, byte(0x5d), msgs[1][0])
	ci := CustomInit()
	assert.Equal(t, []byte{0x5d, 0xbc}, ci[:2])
	pm := PowerMessage([4]byte{1, 2, 3, 4})
	assert.Equal(t, []byte{0x5d, 0xbd, 0x01, 1, 2, 3, 4}, pm[:7])
}

func TestAllowedParameters(t *testing.T) {
	assert.Equal(t, Parameters{true, true, true, true, false}, AllowedParameters(Breathe))
	assert.Equal(t, Parameters{true, false, false, true, true}, AllowedParameters(Rainbow))
	assert.False(t, AllowedParameters(Static).Speed)
	assert.True(t, AllowedParameters(Laser).Speed)
}

func TestParsing(t *testing.T) {
	c, err := ParseColour("ff11dd")
	require.NoError(t, err)
	assert.Equal(t, Colour{0xff, 0x11, 0xdd}, c)
	c, err = ParseColour("#0f0")
	require.NoError(t, err)
	assert.Equal(t, Green, c)
	c, err = ParseColour("Teal")
	require.NoError(t, err)
	assert.Equal(t, Teal, c)
	_, err = ParseColour("zz")
	assert.True(t, errors.Is(err, rogerr.ErrInvalidParameter))

	m, err := ParseMode("stars")
	require.NoError(t, err)
	assert.Equal(t, Star, m)
	s, err := ParseSpeed("HIGH")
	require.NoError(t, err)
	assert.Equal(t, uint8(3), s.Level())
	_, err = ParseDirection("sideways")
	assert.Error(t, err)
	z, err := ParseZone("lightbar-left")
	require.NoError(t, err)
	assert.Equal(t, ZoneBarLeft, z)
}

func TestColourMath(t *testing.T) {
	assert.Equal(t, uint8(255), AddSat(200, 100))
	assert.Equal(t, uint8(0), SubSat(10, 20))
	assert.Equal(t, Colour{127, 50, 0}, Colour{255, 100, 0}.Percent(50))
	assert.Equal(t, Red, Red.Blend(Blue, 0))
	assert.Equal(t, Blue, Red.Blend(Blue, 1))
	assert.Equal(t, "#ff0000", Red.String())
}
