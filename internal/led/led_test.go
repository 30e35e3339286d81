package led

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/conntest"

	"github.com/coreman2200/rogmatrix/internal/rogerr"
)

func TestConnWritesExactBytes(t *testing.T) {
	p := &conntest.Playback{
		D: conn.Half,
		Ops: []conntest.IO{
			{W: []byte{0x5e, 0xc0, 0x03}},
			{W: []byte{0x5d, 0xb4}},
		},
	}
	c := NewConn(p)
	require.NoError(t, c.WriteBytes([]byte{0x5e, 0xc0, 0x03}))
	require.NoError(t, c.WriteBytes([]byte{0x5d, 0xb4}))
	assert.Equal(t, uint64(2), c.Written())
	if err := p.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestConnWrapsTxErrors(t *testing.T) {
	p := &conntest.Playback{D: conn.Half, DontPanic: true}
	c := NewConn(p)
	err := c.WriteBytes([]byte{1})
	assert.True(t, errors.Is(err, rogerr.ErrIO))
	assert.Equal(t, uint64(0), c.Written())
}

func TestSimCounts(t *testing.T) {
	s := NewSim()
	for i := 0; i < 5; i++ {
		require.NoError(t, s.WriteBytes(make([]byte, 640)))
	}
	assert.Equal(t, uint64(5), s.Written())
	assert.NoError(t, s.Close())
}

func TestHIDRawWritesReports(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hidraw0")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	h, err := OpenHIDRaw(path)
	require.NoError(t, err)
	require.NoError(t, h.WriteBytes([]byte{0x5d, 0xb9}))
	require.NoError(t, h.WriteBytes([]byte{0x5d, 0xb4}))
	require.NoError(t, h.Close())

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x5d, 0xb9, 0x5d, 0xb4}, got)

	err = h.WriteBytes([]byte{0})
	assert.True(t, errors.Is(err, rogerr.ErrIO))
}

func TestHIDRawMissingNode(t *testing.T) {
	_, err := OpenHIDRaw(filepath.Join(t.TempDir(), "nope"))
	assert.True(t, errors.Is(err, rogerr.ErrDeviceNotFound))
}
