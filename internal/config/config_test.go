package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreman2200/rogmatrix/internal/aura"
	"github.com/coreman2200/rogmatrix/internal/render"
	"github.com/coreman2200/rogmatrix/internal/rogerr"
	"github.com/coreman2200/rogmatrix/internal/sequence"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	c := Default()
	c.Board = "GA401IV"
	c.Anime.Brightness = 0.6
	c.Anime.Actions.System = []sequence.Loader{
		{Kind: "gif", File: "/usr/share/rog/spin.gif", Brightness: 0.8, Cycles: 2},
		{Kind: "pause", Duration: 1500 * time.Millisecond},
	}
	c.Anime.Actions.Boot = []sequence.Loader{
		{Kind: "image", File: "logo.png", Fade: &sequence.Fade{In: time.Second, Show: 2 * time.Second, Out: time.Second}},
	}
	c.Aura.Effects = []render.EffectConfig{{Kind: "breathe", Led: "F", Colour1: "ff0000", Colour2: "0000ff", Speed: "high"}}

	path := filepath.Join(t.TempDir(), "rogled.yaml")
	require.NoError(t, Save(path, c))
	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, c, got)
}

func TestLoadKeepsDefaultsForMissingKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rogled.yaml")
	require.NoError(t, os.WriteFile(path, []byte("fps: 60\naura:\n  driver: sim\n"), 0644))
	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 60, c.FPS)
	assert.Equal(t, "sim", c.Aura.Driver)
	assert.Equal(t, "usb", c.Anime.Driver)
	assert.Equal(t, ":8080", c.Addr)
}

func TestLoadErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("fps: [1"), 0644))
	_, err := Load(path)
	assert.True(t, errors.Is(err, rogerr.ErrDecode))

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestModeEffect(t *testing.T) {
	e, err := Mode{Mode: "breathe", Colour1: "00ff00", Colour2: "#0000ff", Speed: "low"}.Effect()
	require.NoError(t, err)
	assert.Equal(t, aura.Breathe, e.Mode)
	assert.Equal(t, aura.Colour{G: 255}, e.Colour1)
	assert.Equal(t, aura.Colour{B: 255}, e.Colour2)
	assert.Equal(t, aura.Low, e.Speed)

	_, err = Mode{Mode: "disco"}.Effect()
	assert.True(t, errors.Is(err, rogerr.ErrInvalidParameter))
	_, err = Mode{Mode: "static", Speed: "warp"}.Effect()
	assert.True(t, errors.Is(err, rogerr.ErrInvalidParameter))
}
