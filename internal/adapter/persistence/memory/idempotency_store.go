package memory

import (
	"context"
	"sync"
	"time"

	"qutlas/internal/usecase/interfaces"
	"qutlas/pkg/clock"
)

type idempotencyEntry struct {
	fingerprint string
	completed   bool
	response    interfaces.CachedHTTPResponse
	expiresAt   time.Time
}

// IdempotencyStore mirrors the Redis script semantics in process.
type IdempotencyStore struct {
	mu      sync.Mutex
	entries map[string]idempotencyEntry
	clock   clock.Clock
}

var _ interfaces.IIdempotencyStore = (*IdempotencyStore)(nil)

func NewIdempotencyStore(c clock.Clock) *IdempotencyStore {
	if c == nil {
		c = clock.NewRealClock()
	}
	return &IdempotencyStore{entries: make(map[string]idempotencyEntry), clock: c}
}

func idempotencyKey(scope, key string) string {
	return scope + ":" + key
}

func (s *IdempotencyStore) Begin(ctx context.Context, scope, key, fingerprint string, ttl time.Duration) (interfaces.IdempotencyBeginResult, error) {
	if err := ctx.Err(); err != nil {
		return interfaces.IdempotencyBeginResult{}, err
	}
	now := s.clock.Now()
	k := idempotencyKey(scope, key)

	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[k]
	if !ok || !now.Before(e.expiresAt) {
		s.entries[k] = idempotencyEntry{fingerprint: fingerprint, expiresAt: now.Add(ttl)}
		return interfaces.IdempotencyBeginResult{State: interfaces.IdempotencyStateNew}, nil
	}
	if e.fingerprint != fingerprint {
		return interfaces.IdempotencyBeginResult{State: interfaces.IdempotencyStateConflict}, nil
	}
	if e.completed {
		cached := e.response
		cached.Body = append([]byte(nil), e.response.Body...)
		return interfaces.IdempotencyBeginResult{State: interfaces.IdempotencyStateReplay, Cached: &cached}, nil
	}
	return interfaces.IdempotencyBeginResult{State: interfaces.IdempotencyStateInProgress}, nil
}

func (s *IdempotencyStore) Complete(ctx context.Context, scope, key, fingerprint string, response interfaces.CachedHTTPResponse, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	k := idempotencyKey(scope, key)
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[k]
	if !ok || e.fingerprint != fingerprint {
		return nil
	}
	e.completed = true
	e.response = response
	e.response.Body = append([]byte(nil), response.Body...)
	e.expiresAt = s.clock.Now().Add(ttl)
	s.entries[k] = e
	return nil
}

// Release forgets an unfinished claim so the client may retry.
func (s *IdempotencyStore) Release(ctx context.Context, scope, key, fingerprint string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	k := idempotencyKey(scope, key)
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.entries[k]; ok && e.fingerprint == fingerprint && !e.completed {
		delete(s.entries, k)
	}
	return nil
}
