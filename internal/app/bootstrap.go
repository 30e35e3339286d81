// Package app wires configuration, transports and controllers into a
// running daemon core.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/coreman2200/rogmatrix/internal/anime"
	"github.com/coreman2200/rogmatrix/internal/aura"
	"github.com/coreman2200/rogmatrix/internal/config"
	"github.com/coreman2200/rogmatrix/internal/ctrl"
	"github.com/coreman2200/rogmatrix/internal/effect"
	"github.com/coreman2200/rogmatrix/internal/keyboard"
	"github.com/coreman2200/rogmatrix/internal/layout"
	"github.com/coreman2200/rogmatrix/internal/led"
	"github.com/coreman2200/rogmatrix/internal/render"
	"github.com/coreman2200/rogmatrix/internal/rogerr"
)

var boardNamePath = "/sys/class/dmi/id/board_name"

// BoardName reads the DMI board name, or "" when it is unavailable.
func BoardName() string {
	b, err := os.ReadFile(boardNamePath)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(b))
}

type Core struct {
	Anime    *ctrl.Anime
	Aura     *ctrl.Aura
	Engine   *render.Engine
	Registry *render.Registry
	Layout   *keyboard.Layout

	Board     string
	AnimeType layout.AnimeType
	Scheme    layout.Scheme

	AnimeDriver string
	AuraDriver  string

	coords []*ctrl.Coordinator
}

// OpenDriver opens the transport named by d for the first matching pid.
// Dev, when set, skips the lookup.
func OpenDriver(d config.Device, vid uint16, pids ...uint16) (led.Driver, error) {
	var lastErr error = rogerr.ErrDeviceNotFound
	for _, pid := range pids {
		var (
			drv led.Driver
			err error
		)
		switch strings.ToLower(d.Driver) {
		case "sim", "":
			return led.NewSim(), nil
		case "usb":
			path := d.Dev
			if path == "" {
				path, err = led.FindUSB(vid, pid)
			}
			if err == nil {
				drv, err = led.OpenUSB(path)
			}
		case "hidraw":
			path := d.Dev
			if path == "" {
				path, err = led.FindHIDRaw(vid, pid)
			}
			if err == nil {
				drv, err = led.OpenHIDRaw(path)
			}
		case "hid":
			drv, err = led.OpenHID(vid, pid)
		default:
			return nil, fmt.Errorf("app: driver %q: %w", d.Driver, rogerr.ErrInvalidParameter)
		}
		if err == nil {
			return drv, nil
		}
		lastErr = err
		if d.Dev != "" {
			break
		}
	}
	return nil, lastErr
}

// openOrSim falls back to the simulator when the hardware cannot be opened.
func openOrSim(name string, d config.Device, vid uint16, pids ...uint16) (led.Driver, string) {
	drv, err := OpenDriver(d, vid, pids...)
	if err != nil {
		log.Warn().Err(err).Str("device", name).Str("driver", d.Driver).Msg("transport init failed; falling back to SIM")
		return led.NewSim(), "sim"
	}
	if d.Driver == "" {
		return drv, "sim"
	}
	return drv, d.Driver
}

// InitCore opens the devices enabled in cfg and brings them to the
// configured state. board overrides the DMI board name when set.
func InitCore(ctx context.Context, cfg *config.Config, board string) (*Core, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if board == "" {
		board = cfg.Board
	}
	if board == "" {
		board = BoardName()
	}
	c := &Core{
		Board:    board,
		Registry: render.DefaultRegistry(),
		Scheme:   layout.Scheme(cfg.Scheme),
	}

	if err := c.initLayout(cfg); err != nil {
		return nil, err
	}
	if cfg.Aura.Enabled {
		if err := c.initAura(cfg); err != nil {
			c.Close()
			return nil, err
		}
	}
	if cfg.Anime.Enabled {
		if err := c.initAnime(cfg); err != nil {
			c.Close()
			return nil, err
		}
	}
	return c, nil
}

func (c *Core) initLayout(cfg *config.Config) error {
	fallback := keyboard.Fallback()
	c.Layout = &fallback
	if cfg.LayoutsDir == "" {
		return nil
	}
	ls, err := keyboard.LoadDir(cfg.LayoutsDir)
	if err != nil {
		return err
	}
	l, err := keyboard.Select(c.Board, ls)
	if errors.Is(err, rogerr.ErrLayoutNotFound) {
		log.Warn().Str("board", c.Board).Msg("no keyboard layout matches; using four-zone fallback")
		return nil
	}
	if err != nil {
		return err
	}
	log.Info().Str("board", c.Board).Str("locale", l.Locale).Msg("keyboard layout selected")
	c.Layout = l
	return nil
}

func (c *Core) initAura(cfg *config.Config) error {
	drv, name := openOrSim("aura", cfg.Aura.Device, aura.VendorID, aura.KeyboardProductIDs...)
	c.AuraDriver = name
	co := ctrl.NewCoordinator(drv)
	c.coords = append(c.coords, co)

	var set *effect.Set
	if len(cfg.Aura.Effects) > 0 {
		s, err := c.Registry.Build(cfg.Aura.Zoned, cfg.Aura.Effects)
		if err != nil {
			return err
		}
		set = s
	}
	c.Engine = render.NewEngine(c.Layout, set)

	a, err := ctrl.NewAura(co, c.Engine)
	if err != nil {
		return err
	}
	c.Aura = a
	if err := a.SetBrightness(cfg.Aura.Brightness); err != nil {
		return err
	}
	if len(cfg.Aura.Effects) == 0 {
		e, err := cfg.Aura.Mode.Effect()
		if err != nil {
			return err
		}
		if err := a.WriteMode(e); err != nil {
			return err
		}
	}
	return nil
}

func (c *Core) initAnime(cfg *config.Config) error {
	c.AnimeType = layout.AnimeTypeFromBoard(c.Board)
	if c.AnimeType == layout.Unsupported {
		if !strings.EqualFold(cfg.Anime.Driver, "sim") {
			log.Warn().Str("board", c.Board).Msg("board has no AniMe Matrix; anime disabled")
			return nil
		}
		c.AnimeType = layout.GA401
	}
	drv, name := openOrSim("anime", cfg.Anime.Device, anime.VendorID, anime.ProductID)
	c.AnimeDriver = name
	co := ctrl.NewCoordinator(drv)
	c.coords = append(c.coords, co)

	a, err := ctrl.NewAnime(co, cfg.Anime.Brightness)
	if err != nil {
		return err
	}
	c.Anime = a
	if err := a.SetOn(cfg.Anime.On); err != nil {
		return err
	}
	return a.SetBoot(cfg.Anime.Boot)
}

// Skipped sums the ticks dropped on busy transports.
func (c *Core) Skipped() uint64 {
	var n uint64
	for _, co := range c.coords {
		n += co.Skipped()
	}
	return n
}

// Close stops the loops and releases the transports.
func (c *Core) Close() error {
	if c.Anime != nil {
		c.Anime.Stop()
	}
	if c.Aura != nil {
		c.Aura.Stop()
	}
	var first error
	for _, co := range c.coords {
		if err := co.Close(); err != nil && first == nil {
			first = err
		}
	}
	c.coords = nil
	return first
}
