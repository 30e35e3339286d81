package sequence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/coreman2200/rogmatrix/internal/anime"
	"github.com/coreman2200/rogmatrix/internal/rogerr"
)

// WriteFunc receives every buffer to show. Returning true stops playback.
type WriteFunc func(buf anime.DataBuffer) (stop bool)

// ErrStopped is returned by Play when the WriteFunc asked to stop.
var ErrStopped = errors.New("sequence: stopped by writer")

const (
	// fadeSlack lets the last fade-out frame land before a faded clip ends.
	fadeSlack = 250 * time.Millisecond
	// minDelay stands in for zero frame delays so a clip cannot spin.
	minDelay = 10 * time.Millisecond
)

func frameTime(a Animation) time.Duration {
	var d time.Duration
	for _, f := range a.Frames {
		d += f.Delay
	}
	return d
}

// Play shows an animation until its AnimTime policy ends it, the context is
// cancelled or write asks to stop. Time and Fade policies finish the frame
// that crosses the deadline; Cycles counts whole passes over the frames.
func Play(ctx context.Context, a Animation, write WriteFunc) error {
	if len(a.Frames) == 0 {
		return fmt.Errorf("sequence: play: %w", rogerr.ErrNoFrames)
	}
	start := time.Now()

	run, timed := frameTime(a), false
	var env *Envelope
	switch a.Time.Kind {
	case Time:
		run, timed = a.Time.D, true
	case Faded:
		f := a.Time.Fade
		if f.Show > 0 {
			run = f.Show + f.total()
		}
		run += fadeSlack
		timed = true
		in, out := f.In, f.Out
		if f.total() > run {
			in, out = run/2, run/2
		}
		e := fadeEnvelope(in, out, run, "linear")
		env = &e
	}

	passes := 0
	for {
		for _, f := range a.Frames {
			if err := ctx.Err(); err != nil {
				return err
			}
			buf := f.Buffer
			if env != nil {
				buf = buf.Scale(env.Eval(time.Since(start)))
			}
			if write(buf) {
				return ErrStopped
			}
			if timed && time.Since(start) > run {
				return nil
			}
			d := f.Delay
			if d <= 0 {
				d = minDelay
			}
			if err := sleep(ctx, d); err != nil {
				return err
			}
		}
		if a.Time.Kind == Cycles {
			passes++
			if passes >= a.Time.Count {
				return nil
			}
		}
	}
}

// Run plays s from the start. With once set it stops after one pass, unless
// the pass showed an Image, in which case it keeps the image up and loops
// like an unbounded run. A pass that spends no time (only images) holds
// until ctx is done instead of rewriting the same frame.
func Run(ctx context.Context, s *Sequence, once bool, write WriteFunc) error {
	if s.Len() == 0 {
		log.Warn().Msg("anime sequence is empty")
		return nil
	}
	it := s.Iter()
	for {
		spent := false
		for a, ok := it.Next(); ok; a, ok = it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			switch a := a.(type) {
			case Image:
				once = false
				if write(a.Buffer) {
					return nil
				}
			case Animation:
				spent = true
				err := Play(ctx, a, write)
				if errors.Is(err, ErrStopped) {
					return nil
				}
				if err != nil {
					return err
				}
			case Pause:
				spent = true
				if err := sleep(ctx, a.D); err != nil {
					return err
				}
			}
		}
		if once {
			return nil
		}
		if !spent {
			<-ctx.Done()
			return ctx.Err()
		}
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
