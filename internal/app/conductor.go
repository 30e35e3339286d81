package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/coreman2200/rogmatrix/internal/config"
	"github.com/coreman2200/rogmatrix/internal/ctrl"
	"github.com/coreman2200/rogmatrix/internal/sequence"
)

// Event names a daemon lifecycle point that has its own AniMe actions.
type Event string

const (
	System   Event = "system"
	Boot     Event = "boot"
	Wake     Event = "wake"
	Shutdown Event = "shutdown"
)

// Conductor plays the configured AniMe actions on lifecycle events and
// keeps the Aura effect loop running.
type Conductor struct {
	core *Core
	cfg  *config.Config
}

func NewConductor(core *Core, cfg *config.Config) *Conductor {
	return &Conductor{core: core, cfg: cfg}
}

func (c *Conductor) loaders(ev Event) []sequence.Loader {
	a := c.cfg.Anime.Actions
	switch ev {
	case Boot:
		return a.Boot
	case Wake:
		return a.Wake
	case Shutdown:
		return a.Shutdown
	}
	return a.System
}

// Sequence decodes the actions configured for ev.
func (c *Conductor) Sequence(ev Event) (*sequence.Sequence, error) {
	seq, err := sequence.Build(c.core.AnimeType, c.loaders(ev))
	if err != nil {
		return nil, fmt.Errorf("app: %s actions: %w", ev, err)
	}
	return seq, nil
}

// Play starts the actions for ev, replacing whatever is playing. System
// actions loop; the others play once.
func (c *Conductor) Play(ctx context.Context, ev Event) (<-chan error, error) {
	if c.core.Anime == nil {
		return nil, fmt.Errorf("app: no anime device")
	}
	seq, err := c.Sequence(ev)
	if err != nil {
		return nil, err
	}
	log.Info().Str("event", string(ev)).Int("actions", seq.Len()).Msg("anime event")
	return c.core.Anime.Run(ctx, seq, ev != System), nil
}

// Start plays the boot actions, then the system actions, and starts the
// Aura effect loop when effects are configured. A command that replaces the
// boot actions also cancels the switch to the system actions.
func (c *Conductor) Start(ctx context.Context) error {
	if c.core.Aura != nil && c.core.Engine.Effects() != nil {
		c.core.Aura.Run(ctx, c.cfg.FPS)
	}
	if c.core.Anime == nil {
		return nil
	}
	if len(c.cfg.Anime.Actions.Boot) == 0 {
		_, err := c.Play(ctx, System)
		return err
	}
	done, err := c.Play(ctx, Boot)
	if err != nil {
		return err
	}
	go func() {
		err := <-done
		if errors.Is(err, ctrl.ErrReplaced) {
			log.Debug().Msg("boot actions replaced; system actions not started")
			return
		}
		if err != nil {
			log.Warn().Err(err).Msg("boot actions failed")
		}
		if ctx.Err() != nil {
			return
		}
		if _, err := c.Play(ctx, System); err != nil {
			log.Warn().Err(err).Msg("system actions")
		}
	}()
	return nil
}

// Stop plays the shutdown actions, bounded by the configured timeout, and
// stops every loop.
func (c *Conductor) Stop() {
	if c.core.Anime != nil && len(c.cfg.Anime.Actions.Shutdown) > 0 {
		timeout := c.cfg.Shutdown
		if timeout <= 0 {
			timeout = 3 * time.Second
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if done, err := c.Play(ctx, Shutdown); err != nil {
			log.Warn().Err(err).Msg("shutdown actions")
		} else if err := <-done; err != nil {
			log.Debug().Err(err).Msg("shutdown actions ended")
		}
	}
	if c.core.Anime != nil {
		c.core.Anime.Stop()
	}
	if c.core.Aura != nil {
		c.core.Aura.Stop()
	}
}
