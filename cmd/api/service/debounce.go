package service

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrSuperseded is returned when a newer call for the same key arrives while
// this one is waiting out the quiet period or still in flight. The superseded
// caller must discard the outcome; only the newest call's result is delivered.
var ErrSuperseded = errors.New("superseded by newer query")

// Debouncer serializes interactive lookups per key (one key per typing user).
// A call waits out a quiet period before running fn; a newer call for the
// same key cancels the pending wait and the in-flight fn of the older one, so
// typing "B", "Bu", "Bue" inside the quiet period yields a single upstream
// call, for "Bue".
type Debouncer struct {
	quiet time.Duration

	mu      sync.Mutex
	gen     uint64
	pending map[string]*pendingCall
}

type pendingCall struct {
	cancel context.CancelFunc
	gen    uint64
}

// NewDebouncer creates a debouncer with the given quiet period
func NewDebouncer(quiet time.Duration) *Debouncer {
	return &Debouncer{
		quiet:   quiet,
		pending: make(map[string]*pendingCall),
	}
}

// Do runs fn after the quiet period unless a newer call for key supersedes it
// first. Returns ErrSuperseded for the displaced call.
func (d *Debouncer) Do(ctx context.Context, key string, fn func(context.Context) error) error {
	callCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	d.mu.Lock()
	if prev, ok := d.pending[key]; ok {
		prev.cancel()
	}
	d.gen++
	gen := d.gen
	d.pending[key] = &pendingCall{cancel: cancel, gen: gen}
	d.mu.Unlock()

	defer func() {
		d.mu.Lock()
		if cur, ok := d.pending[key]; ok && cur.gen == gen {
			delete(d.pending, key)
		}
		d.mu.Unlock()
	}()

	timer := time.NewTimer(d.quiet)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-callCtx.Done():
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return ErrSuperseded
	}

	if err := fn(callCtx); err != nil {
		if callCtx.Err() != nil && ctx.Err() == nil {
			return ErrSuperseded
		}
		return err
	}

	return nil
}
