package ctrl

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/rs/zerolog/log"
	"go.uber.org/atomic"

	"github.com/coreman2200/rogmatrix/internal/anime"
	"github.com/coreman2200/rogmatrix/internal/rogerr"
	"github.com/coreman2200/rogmatrix/internal/sequence"
)

// Anime drives the AniMe Matrix. Commands write through the blocking path;
// the playback loop only writes when the transport is free.
type Anime struct {
	co         *Coordinator
	brightness atomic.Float64
	run        task

	mu       sync.Mutex
	last     anime.DataBuffer
	observer func(anime.DataBuffer)
}

// NewAnime writes the init packets, so no data reaches the panel before
// them.
func NewAnime(co *Coordinator, brightness float64) (*Anime, error) {
	a := &Anime{co: co}
	if err := a.SetBrightness(brightness); err != nil {
		return nil, err
	}
	ip := anime.InitPackets()
	if err := co.Write(ip[0][:], ip[1][:]); err != nil {
		return nil, fmt.Errorf("ctrl: anime init: %w", err)
	}
	return a, nil
}

// SetBrightness sets the global factor applied to every written buffer.
func (a *Anime) SetBrightness(f float64) error {
	if math.IsNaN(f) || f < 0 || f > 1 {
		return fmt.Errorf("ctrl: anime brightness %v: %w", f, rogerr.ErrBrightness)
	}
	a.brightness.Store(f)
	return nil
}

func (a *Anime) Brightness() float64 { return a.brightness.Load() }

// Observe registers fn to receive every buffer that reached the device.
func (a *Anime) Observe(fn func(anime.DataBuffer)) {
	a.mu.Lock()
	a.observer = fn
	a.mu.Unlock()
}

// Last is the most recent buffer that reached the device.
func (a *Anime) Last() anime.DataBuffer {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.last
}

func (a *Anime) publish(buf anime.DataBuffer) {
	a.mu.Lock()
	a.last = buf
	fn := a.observer
	a.mu.Unlock()
	if fn != nil {
		fn(buf)
	}
}

func (a *Anime) packets(buf anime.DataBuffer) (anime.DataBuffer, [][]byte) {
	scaled := buf.Scale(a.Brightness())
	p := anime.Frame(scaled)
	flush := anime.FlushPacket()
	return scaled, [][]byte{p[0][:], p[1][:], flush[:]}
}

// WriteImage writes buf, waiting for the transport if needed.
func (a *Anime) WriteImage(buf anime.DataBuffer) error {
	scaled, pkts := a.packets(buf)
	if err := a.co.Write(pkts...); err != nil {
		return fmt.Errorf("ctrl: anime write: %w", err)
	}
	a.publish(scaled)
	return nil
}

// tryImage is the tick path: a busy transport skips the frame.
func (a *Anime) tryImage(buf anime.DataBuffer) {
	scaled, pkts := a.packets(buf)
	ok, err := a.co.TryWrite(pkts...)
	if err != nil {
		log.Warn().Err(err).Msg("anime frame dropped")
		return
	}
	if !ok {
		log.Trace().Msg("anime transport busy, frame skipped")
		return
	}
	a.publish(scaled)
}

func (a *Anime) SetOn(on bool) error {
	p := anime.OnOffPacket(on)
	if err := a.co.Write(p[:]); err != nil {
		return fmt.Errorf("ctrl: anime on/off: %w", err)
	}
	return nil
}

// SetBoot toggles the builtin boot animation and applies it.
func (a *Anime) SetBoot(on bool) error {
	b, ap := anime.BootPacket(on), anime.ApplyPacket()
	if err := a.co.Write(b[:], ap[:]); err != nil {
		return fmt.Errorf("ctrl: anime boot: %w", err)
	}
	return nil
}

// Run plays seq in the background, replacing any sequence already
// playing. The display is cleared when playback ends. The returned channel
// yields the playback result once: nil when cancelled or stopped, and
// ErrReplaced when a later Run took over.
func (a *Anime) Run(ctx context.Context, seq *sequence.Sequence, once bool) <-chan error {
	return a.run.start(ctx, func(ctx context.Context) error {
		log.Info().Int("actions", seq.Len()).Bool("once", once).Msg("anime sequence started")
		err := sequence.Run(ctx, seq, once, func(buf anime.DataBuffer) bool {
			a.tryImage(buf)
			return false
		})
		if cerr := a.WriteImage(anime.Clear()); cerr != nil {
			log.Warn().Err(cerr).Msg("anime clear after playback")
		}
		err = endResult(ctx, err)
		log.Info().Err(err).Msg("anime sequence ended")
		return err
	})
}

// Stop ends playback and waits for the loop to exit.
func (a *Anime) Stop() { a.run.stop() }

func (a *Anime) Running() bool { return a.run.running() }
