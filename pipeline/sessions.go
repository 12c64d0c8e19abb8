package pipeline

import (
	"context"
	"log/slog"
	"sync"
)

// Sessions keeps one Pipeline per session key, so that previews of
// different editors never supersede each other. A session lives only while
// it has passes in flight; the next submission after it goes idle starts a
// fresh pipeline.
type Sessions[T any] struct {
	mu      sync.Mutex
	byKey   map[string]*session[T]
	logger  *slog.Logger
	onStale func()
}

type session[T any] struct {
	p      *Pipeline[T]
	active int
}

// NewSessions returns an empty session set.
func NewSessions[T any](logger *slog.Logger, onStale func()) *Sessions[T] {
	return &Sessions[T]{byKey: map[string]*session[T]{}, logger: logger, onStale: onStale}
}

// Run submits fn to the pipeline of key.
func (s *Sessions[T]) Run(ctx context.Context, key string, fn func(context.Context) (T, error)) (T, error) {
	sess := s.acquire(key)
	defer s.release(key, sess)
	return sess.p.Run(ctx, fn)
}

// Forget cancels and drops the pipeline of key.
func (s *Sessions[T]) Forget(key string) {
	s.mu.Lock()
	sess, ok := s.byKey[key]
	delete(s.byKey, key)
	s.mu.Unlock()
	if ok {
		sess.p.Cancel()
	}
}

// Len is the number of sessions with passes in flight.
func (s *Sessions[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byKey)
}

func (s *Sessions[T]) acquire(key string) *session[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.byKey[key]
	if !ok {
		sess = &session[T]{p: New[T](s.logger, s.onStale)}
		s.byKey[key] = sess
	}
	sess.active++
	return sess
}

func (s *Sessions[T]) release(key string, sess *session[T]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess.active--
	if sess.active == 0 && s.byKey[key] == sess {
		delete(s.byKey, key)
	}
}
