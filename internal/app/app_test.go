package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreman2200/rogmatrix/internal/config"
	"github.com/coreman2200/rogmatrix/internal/layout"
	"github.com/coreman2200/rogmatrix/internal/render"
	"github.com/coreman2200/rogmatrix/internal/rogerr"
	"github.com/coreman2200/rogmatrix/internal/sequence"
)

func simConfig() *config.Config {
	c := config.Default()
	c.Anime.Driver = "sim"
	c.Aura.Driver = "sim"
	return c
}

func TestInitCoreWithSim(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ga401.yaml"),
		[]byte("matches: [GA401]\nlocale: US\nrows:\n  - height: 1\n    row: [Esc, F1]\n"), 0644))

	c := simConfig()
	c.LayoutsDir = dir
	core, err := InitCore(context.Background(), c, "GA401IV")
	require.NoError(t, err)
	defer core.Close()

	assert.Equal(t, layout.GA401, core.AnimeType)
	assert.Equal(t, "US", core.Layout.Locale)
	assert.Equal(t, "sim", core.AnimeDriver)
	assert.Equal(t, "sim", core.AuraDriver)
	require.NotNil(t, core.Anime)
	require.NotNil(t, core.Aura)
	assert.Nil(t, core.Engine.Effects())
}

func TestInitCoreFallsBackToZonedLayout(t *testing.T) {
	c := simConfig()
	c.LayoutsDir = t.TempDir()
	core, err := InitCore(context.Background(), c, "FX505")
	require.NoError(t, err)
	defer core.Close()
	// no AniMe on this board, but the sim driver still gets a GA401 panel
	assert.Equal(t, layout.GA401, core.AnimeType)
	assert.Len(t, core.Layout.Rows, 2)
}

func TestInitCoreRejectsBadEffects(t *testing.T) {
	c := simConfig()
	c.Aura.Effects = []render.EffectConfig{{Kind: "plasma", Led: "F", Colour1: "red"}}
	_, err := InitCore(context.Background(), c, "GA401")
	assert.True(t, errors.Is(err, rogerr.ErrInvalidParameter))
}

func TestOpenDriverUnknown(t *testing.T) {
	_, err := OpenDriver(config.Device{Driver: "serial"}, 1, 2)
	assert.True(t, errors.Is(err, rogerr.ErrInvalidParameter))

	_, err = OpenDriver(config.Device{Driver: "hidraw", Dev: filepath.Join(t.TempDir(), "hidraw9")}, 1, 2)
	assert.True(t, errors.Is(err, rogerr.ErrDeviceNotFound))
}

func TestConductorBootThenSystem(t *testing.T) {
	c := simConfig()
	c.Anime.Actions.Boot = []sequence.Loader{{Kind: "pause", Duration: 5 * time.Millisecond}}
	c.Anime.Actions.System = []sequence.Loader{{Kind: "pause", Duration: time.Hour}}
	c.Aura.Effects = []render.EffectConfig{{Kind: "static", Led: "ZonedKbLeft", Colour1: "red"}}
	c.Aura.Zoned = true
	c.FPS = 200

	core, err := InitCore(context.Background(), c, "GA401")
	require.NoError(t, err)
	defer core.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	cond := NewConductor(core, c)
	require.NoError(t, cond.Start(ctx))

	assert.Eventually(t, func() bool { return core.Aura.Ticks() > 0 }, time.Second, 5*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	assert.True(t, core.Anime.Running(), "system actions should be playing after boot")

	cond.Stop()
	assert.False(t, core.Anime.Running())
	assert.False(t, core.Aura.Running())
}

func TestConductorKeepsCommandStartedDuringBoot(t *testing.T) {
	c := simConfig()
	c.Anime.Actions.Boot = []sequence.Loader{{Kind: "pause", Duration: 300 * time.Millisecond}}
	c.Anime.Actions.System = []sequence.Loader{{Kind: "pause", Duration: time.Hour}}

	core, err := InitCore(context.Background(), c, "GA401")
	require.NoError(t, err)
	defer core.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	cond := NewConductor(core, c)
	require.NoError(t, cond.Start(ctx))

	time.Sleep(50 * time.Millisecond)
	var img sequence.Image
	img.Buffer[0] = 7
	user := core.Anime.Run(ctx, sequence.New(img), false)

	time.Sleep(600 * time.Millisecond)
	select {
	case err := <-user:
		t.Fatalf("command playback ended early: %v", err)
	default:
	}
	assert.Equal(t, byte(7), core.Anime.Last()[0])
	cond.Stop()
}

func TestConductorSequenceErrors(t *testing.T) {
	c := simConfig()
	c.Anime.Actions.Wake = []sequence.Loader{{Kind: "gif", File: filepath.Join(t.TempDir(), "missing.gif")}}
	core, err := InitCore(context.Background(), c, "GA401")
	require.NoError(t, err)
	defer core.Close()

	_, err = NewConductor(core, c).Play(context.Background(), Wake)
	assert.True(t, errors.Is(err, rogerr.ErrDecode))
}
