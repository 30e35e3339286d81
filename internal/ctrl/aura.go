package ctrl

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"go.uber.org/atomic"

	"github.com/coreman2200/rogmatrix/internal/aura"
	"github.com/coreman2200/rogmatrix/internal/render"
)

// Aura drives the keyboard: builtin modes on the command path, the custom
// effect engine on the tick path.
type Aura struct {
	co     *Coordinator
	engine *render.Engine
	custom atomic.Bool
	ticks  atomic.Uint64
	run    task

	mu       sync.Mutex
	observer func([][]byte)
}

// NewAura wakes the keyboard controller. engine may be nil when only
// builtin modes are used.
func NewAura(co *Coordinator, engine *render.Engine) (*Aura, error) {
	if err := co.Write(aura.InitMessages()...); err != nil {
		return nil, fmt.Errorf("ctrl: aura init: %w", err)
	}
	return &Aura{co: co, engine: engine}, nil
}

func (a *Aura) Engine() *render.Engine { return a.engine }

// Observe registers fn to receive every effect block that reached the device.
func (a *Aura) Observe(fn func([][]byte)) {
	a.mu.Lock()
	a.observer = fn
	a.mu.Unlock()
}

// WriteMode writes a builtin effect followed by LED_SET and LED_APPLY.
// The keyboard leaves custom mode, so the next effect block re-sends the
// custom init.
func (a *Aura) WriteMode(e aura.Effect) error {
	m := e.Message()
	if err := a.co.Write(m[:], aura.LEDSet[:], aura.LEDApply[:]); err != nil {
		return fmt.Errorf("ctrl: aura mode %s: %w", e.Mode, err)
	}
	a.custom.Store(false)
	log.Debug().Str("mode", e.Mode.String()).Uint8("zone", uint8(e.Zone)).Msg("aura mode written")
	return nil
}

func (a *Aura) SetBrightness(level uint8) error {
	m := aura.BrightnessMessage(level)
	if err := a.co.Write(m[:]); err != nil {
		return fmt.Errorf("ctrl: aura brightness: %w", err)
	}
	return nil
}

func (a *Aura) SetPower(states [4]byte) error {
	m := aura.PowerMessage(states)
	if err := a.co.Write(m[:], aura.LEDApply[:]); err != nil {
		return fmt.Errorf("ctrl: aura power: %w", err)
	}
	return nil
}

// WriteEffectBlock writes one custom-colour block. The first block after a
// builtin mode is preceded by the custom init report, sent under the same
// lock. With blocking unset a busy transport skips both and the result is
// false.
func (a *Aura) WriteEffectBlock(pkts [][]byte, blocking bool) (bool, error) {
	out := pkts
	initing := !a.custom.Load()
	if initing {
		ci := aura.CustomInit()
		out = append([][]byte{ci[:]}, pkts...)
	}
	if blocking {
		if err := a.co.Write(out...); err != nil {
			return false, fmt.Errorf("ctrl: aura effect block: %w", err)
		}
	} else {
		ok, err := a.co.TryWrite(out...)
		if err != nil {
			return false, fmt.Errorf("ctrl: aura effect block: %w", err)
		}
		if !ok {
			return false, nil
		}
	}
	if initing {
		a.custom.Store(true)
	}
	a.mu.Lock()
	fn := a.observer
	a.mu.Unlock()
	if fn != nil {
		fn(pkts)
	}
	return true, nil
}

// Ticks is the number of effect blocks written by Run.
func (a *Aura) Ticks() uint64 { return a.ticks.Load() }

// Run advances the engine fps times a second and writes each block,
// replacing any loop already running.
func (a *Aura) Run(ctx context.Context, fps int) <-chan error {
	if fps <= 0 {
		fps = 30
	}
	dt := time.Second / time.Duration(fps)
	return a.run.start(ctx, func(ctx context.Context) error {
		if a.engine == nil {
			return fmt.Errorf("ctrl: aura run without an effect engine")
		}
		ticker := time.NewTicker(dt)
		defer ticker.Stop()
		log.Info().Int("fps", fps).Msg("aura effects started")
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				pkts := a.engine.RenderOnce()
				if pkts == nil {
					continue
				}
				ok, err := a.WriteEffectBlock(pkts, false)
				if err != nil {
					log.Warn().Err(err).Msg("aura tick dropped")
					continue
				}
				if !ok {
					log.Trace().Msg("aura transport busy, tick skipped")
					continue
				}
				a.ticks.Inc()
			}
		}
	})
}

func (a *Aura) Stop() { a.run.stop() }

func (a *Aura) Running() bool { return a.run.running() }
