// Package pipeline serializes re-renders of one editing session.
//
// Every submission gets a generation number one higher than the last. A new
// submission cancels the context of the pass still in flight, and a pass
// that finishes after a newer one was submitted reports ErrSuperseded so its
// result is never shown.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// ErrSuperseded is returned for results whose generation is no longer the
// latest.
var ErrSuperseded = errors.New("render superseded by a newer request")

// Pipeline runs passes that produce a T.
type Pipeline[T any] struct {
	mu      sync.Mutex
	latest  uint64
	cancel  context.CancelFunc
	logger  *slog.Logger
	onStale func()
}

// New returns an empty pipeline. onStale, if non-nil, is called once for
// every discarded result.
func New[T any](logger *slog.Logger, onStale func()) *Pipeline[T] {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline[T]{logger: logger, onStale: onStale}
}

// Run starts a new generation and calls fn with a context that is cancelled
// when ctx ends or a newer generation starts.
func (p *Pipeline[T]) Run(ctx context.Context, fn func(context.Context) (T, error)) (T, error) {
	v, gen, err := p.run(ctx, fn)
	if !p.current(gen) {
		var zero T
		return zero, p.stale(gen)
	}
	return v, err
}

// RunThen runs fn like Run and hands a successful result to publish while
// holding the pipeline, so publish only ever sees the latest generation and
// no newer generation starts until it returns.
func (p *Pipeline[T]) RunThen(ctx context.Context, fn func(context.Context) (T, error), publish func(T) error) error {
	v, gen, err := p.run(ctx, fn)

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.latest != gen {
		return p.stale(gen)
	}
	if err != nil {
		return err
	}
	return publish(v)
}

func (p *Pipeline[T]) run(ctx context.Context, fn func(context.Context) (T, error)) (T, uint64, error) {
	runCtx, gen := p.begin(ctx)
	defer p.end(gen)
	v, err := fn(runCtx)
	return v, gen, err
}

// stale records a discarded result. It must not take p.mu.
func (p *Pipeline[T]) stale(gen uint64) error {
	p.logger.Debug("discarding stale render", "generation", gen)
	if p.onStale != nil {
		p.onStale()
	}
	return fmt.Errorf("generation %d: %w", gen, ErrSuperseded)
}

// Latest is the generation of the most recent submission.
func (p *Pipeline[T]) Latest() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.latest
}

// Cancel aborts the pass in flight, if any.
func (p *Pipeline[T]) Cancel() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
}

func (p *Pipeline[T]) begin(ctx context.Context) (context.Context, uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		p.cancel()
	}
	p.latest++
	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	return runCtx, p.latest
}

func (p *Pipeline[T]) end(gen uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.latest == gen && p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
}

func (p *Pipeline[T]) current(gen uint64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.latest == gen
}
