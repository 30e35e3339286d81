package ws

import (
	"context"
	"sync"
	"time"

	"github.com/coreman2200/rogmatrix/internal/anime"
	"github.com/coreman2200/rogmatrix/internal/aura"
	diag "github.com/coreman2200/rogmatrix/internal/diagnostics"
	"github.com/coreman2200/rogmatrix/internal/layout"
	"github.com/coreman2200/rogmatrix/internal/tests"
)

// auraStepTime is how long each keyboard test colour stays up.
const auraStepTime = time.Second

type testTask struct {
	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func (t *testTask) start(ctx context.Context, run func(context.Context)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopLocked()
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	t.cancel, t.done = cancel, done
	go func() {
		defer close(done)
		run(ctx)
	}()
}

func (t *testTask) stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopLocked()
}

func (t *testTask) stopLocked() {
	if t.cancel != nil {
		t.cancel()
		<-t.done
		t.cancel, t.done = nil, nil
	}
}

func (s *State) runTest(k tests.Kind) error {
	if !k.Valid() {
		s.pushDiag(diag.Diagnostic{
			Severity: diag.Warn, Code: "TEST.UNKNOWN", Summary: "Unknown test name",
			Evidence: map[string]any{"name": string(k), "known": tests.Kinds},
		})
		return bad("test %q", k)
	}
	s.pushDiag(diag.Diagnostic{Severity: diag.Info, Code: "TEST.RUNNING", Summary: "Running test", Detail: string(k)})
	r := tests.NewRunner(tests.Plan{Kind: k})

	if k.Aura() {
		a := s.core.Aura
		if a == nil {
			return bad("no aura device for %q", k)
		}
		a.Stop()
		s.tests.start(s.ctx, func(ctx context.Context) {
			for c, ok := r.AuraStep(); ok; c, ok = r.AuraStep() {
				e := aura.DefaultEffect(aura.Static)
				e.Colour1 = c
				if err := a.WriteMode(e); err != nil {
					s.pushDiag(diag.FromError(err))
					return
				}
				if !sleepCtx(ctx, auraStepTime) {
					return
				}
			}
			s.pushDiag(diag.Diagnostic{Severity: diag.Info, Code: "TEST.DONE", Summary: "Test complete"})
		})
		return nil
	}

	a := s.core.Anime
	if a == nil {
		return bad("no anime device for %q", k)
	}
	a.Stop()
	fps := s.cfg.FPS
	if fps <= 0 {
		fps = 30
	}
	addr, err := layout.ForType(s.core.AnimeType, s.core.Scheme)
	if err != nil {
		return err
	}
	s.tests.start(s.ctx, func(ctx context.Context) {
		var buf anime.DataBuffer
		for r.Step(addr, &buf) {
			if err := a.WriteImage(buf); err != nil {
				s.pushDiag(diag.FromError(err))
				return
			}
			if !sleepCtx(ctx, time.Second/time.Duration(fps)) {
				return
			}
		}
		_ = a.WriteImage(anime.Clear())
		s.pushDiag(diag.Diagnostic{Severity: diag.Info, Code: "TEST.DONE", Summary: "Test complete"})
	})
	return nil
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
