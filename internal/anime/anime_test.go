package anime

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreman2200/rogmatrix/internal/rogerr"
)

func pattern() DataBuffer {
	var d DataBuffer
	for i := range d {
		d[i] = byte(i % 256)
	}
	return d
}

func TestFrameRoundTrip(t *testing.T) {
	d := pattern()
	p := Frame(d)
	assert.Equal(t, d, Unframe(p))

	// pane bytes land at [7:634] verbatim
	assert.True(t, bytes.Equal(d[:627], p[0][7:634]))
	assert.True(t, bytes.Equal(d[627:], p[1][7:634]))
	for k := range p {
		for i := 634; i < PacketLen; i++ {
			if p[k][i] != 0 {
				t.Fatalf("packet %d byte %d = %#x, want 0", k, i, p[k][i])
			}
		}
	}
}

func TestFramePrefixes(t *testing.T) {
	p := Frame(DataBuffer{})
	assert.Equal(t, []byte{0x5e, 0xc0, 0x02, 0x01, 0x00, 0x73, 0x02}, p[0][:7])
	assert.Equal(t, []byte{0x5e, 0xc0, 0x02, 0x74, 0x02, 0x73, 0x02}, p[1][:7])
}

func TestFromSlice(t *testing.T) {
	d := pattern()
	got, err := FromSlice(d[:])
	require.NoError(t, err)
	assert.Equal(t, d, got)

	_, err = FromSlice(make([]byte, 100))
	assert.True(t, errors.Is(err, rogerr.ErrInvalidParameter))
}

func TestScaleCaps(t *testing.T) {
	var d DataBuffer
	d[0], d[1], d[2] = 255, 100, 10
	got := d.Scale(2)
	assert.Equal(t, byte(254), got[0])
	assert.Equal(t, byte(200), got[1])
	assert.Equal(t, byte(20), got[2])

	full := d.Scale(1)
	assert.Equal(t, byte(254), full[0], "full brightness still caps")
	assert.Equal(t, byte(100), full[1])
	assert.Equal(t, byte(10), full[2])
	assert.Equal(t, DataBuffer{}, d.Scale(0))
	assert.Equal(t, byte(50), d.Scale(0.5)[1])
}

func TestControlPackets(t *testing.T) {
	ip := InitPackets()
	assert.Equal(t, append([]byte{0x5e}, "ASUS TECH.INC."...), ip[0][:15])
	assert.Equal(t, byte(0), ip[0][15])
	assert.Equal(t, []byte{0x5e, 0xc2, 0}, ip[1][:3])

	cases := []struct {
		name string
		p    Packet
		want []byte
	}{
		{"flush", FlushPacket(), []byte{0x5e, 0xc0, 0x03}},
		{"on", OnOffPacket(true), []byte{0x5e, 0xc0, 0x04, 0x03}},
		{"off", OnOffPacket(false), []byte{0x5e, 0xc0, 0x04, 0x00}},
		{"boot on", BootPacket(true), []byte{0x5e, 0xc3, 0x01, 0x00}},
		{"boot off", BootPacket(false), []byte{0x5e, 0xc3, 0x01, 0x80}},
		{"apply", ApplyPacket(), []byte{0x5e, 0xc4, 0x01, 0x80}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, c.p[:len(c.want)])
			assert.Len(t, c.p, PacketLen)
		})
	}
}
