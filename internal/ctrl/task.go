package ctrl

import (
	"context"
	"errors"
	"sync"
)

// ErrReplaced is the result of a run that another start cancelled.
var ErrReplaced = errors.New("ctrl: run replaced")

// task is a restartable background loop. Starting it again cancels the
// running loop with ErrReplaced as the cause and waits for it before the
// new one begins.
type task struct {
	mu     sync.Mutex
	cancel context.CancelCauseFunc
	done   chan struct{}
}

func (t *task) start(ctx context.Context, run func(context.Context) error) <-chan error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopLocked(ErrReplaced)

	ctx, cancel := context.WithCancelCause(ctx)
	done := make(chan struct{})
	res := make(chan error, 1)
	t.cancel, t.done = cancel, done
	go func() {
		err := run(ctx)
		close(done)
		res <- err
	}()
	return res
}

func (t *task) stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopLocked(nil)
}

func (t *task) stopLocked(cause error) {
	if t.cancel == nil {
		return
	}
	t.cancel(cause)
	<-t.done
	t.cancel, t.done = nil, nil
}

func (t *task) running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done == nil {
		return false
	}
	select {
	case <-t.done:
		return false
	default:
		return true
	}
}

// endResult maps a cancelled run to nil, or to ErrReplaced when a newer
// start cancelled it.
func endResult(ctx context.Context, err error) error {
	if !errors.Is(err, context.Canceled) {
		return err
	}
	if errors.Is(context.Cause(ctx), ErrReplaced) {
		return ErrReplaced
	}
	return nil
}
