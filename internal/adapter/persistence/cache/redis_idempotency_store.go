// Package cache holds the Redis-backed quote store and idempotency store.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"qutlas/internal/usecase/interfaces"
	"qutlas/pkg/errs"

	"github.com/redis/go-redis/v9"
)

// idempotencyRecord is the JSON value stored under a key. A claim in flight
// has Done false and no response.
type idempotencyRecord struct {
	Fingerprint string `json:"fp"`
	Done        bool   `json:"done"`
	StatusCode  int    `json:"status,omitempty"`
	ContentType string `json:"contentType,omitempty"`
	Body        []byte `json:"body,omitempty"`
}

// swapIfPending replaces (or deletes, when ARGV[2] is empty) the value only
// while it still equals the pending claim written by SetNX.
var swapIfPending = redis.NewScript(`
if redis.call("GET", KEYS[1]) ~= ARGV[1] then
  return 0
end
if ARGV[2] == "" then
  return redis.call("DEL", KEYS[1])
end
redis.call("SET", KEYS[1], ARGV[2], "PX", ARGV[3])
return 1
`)

// RedisIdempotencyStore claims keys with SET NX and settles them with a
// compare-and-swap on the pending value.
type RedisIdempotencyStore struct {
	client redis.UniversalClient
	prefix string
}

var _ interfaces.IIdempotencyStore = (*RedisIdempotencyStore)(nil)

func NewRedisIdempotencyStore(client redis.UniversalClient, prefix string) *RedisIdempotencyStore {
	prefix = strings.TrimSuffix(prefix, ":")
	if prefix == "" {
		prefix = "idem"
	}
	return &RedisIdempotencyStore{client: client, prefix: prefix}
}

func (s *RedisIdempotencyStore) key(scope, key string) string {
	return s.prefix + ":" + scope + ":" + key
}

func (s *RedisIdempotencyStore) Begin(ctx context.Context, scope, key, fingerprint string, ttl time.Duration) (interfaces.IdempotencyBeginResult, error) {
	k := s.key(scope, key)
	claimed, err := s.client.SetNX(ctx, k, pendingValue(fingerprint), clampTTL(ttl)).Result()
	if err != nil {
		return interfaces.IdempotencyBeginResult{}, errs.Mark(errs.Wrap(err, "idempotency claim"), errs.ErrDataUnavailable)
	}
	if claimed {
		return interfaces.IdempotencyBeginResult{State: interfaces.IdempotencyStateNew}, nil
	}

	raw, err := s.client.Get(ctx, k).Bytes()
	if errors.Is(err, redis.Nil) {
		// Released or expired since SetNX; the client retries.
		return interfaces.IdempotencyBeginResult{State: interfaces.IdempotencyStateInProgress}, nil
	}
	if err != nil {
		return interfaces.IdempotencyBeginResult{}, errs.Mark(errs.Wrap(err, "idempotency lookup"), errs.ErrDataUnavailable)
	}
	var rec idempotencyRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return interfaces.IdempotencyBeginResult{}, errs.Mark(errs.Wrapf(err, "decode idempotency record %s", k), errs.ErrDataUnavailable)
	}

	switch {
	case rec.Fingerprint != fingerprint:
		return interfaces.IdempotencyBeginResult{State: interfaces.IdempotencyStateConflict}, nil
	case !rec.Done:
		return interfaces.IdempotencyBeginResult{State: interfaces.IdempotencyStateInProgress}, nil
	default:
		return interfaces.IdempotencyBeginResult{
			State:  interfaces.IdempotencyStateReplay,
			Cached: &interfaces.CachedHTTPResponse{StatusCode: rec.StatusCode, ContentType: rec.ContentType, Body: rec.Body},
		}, nil
	}
}

func (s *RedisIdempotencyStore) Complete(ctx context.Context, scope, key, fingerprint string, response interfaces.CachedHTTPResponse, ttl time.Duration) error {
	done, err := json.Marshal(idempotencyRecord{
		Fingerprint: fingerprint,
		Done:        true,
		StatusCode:  response.StatusCode,
		ContentType: response.ContentType,
		Body:        response.Body,
	})
	if err != nil {
		return errs.Wrap(err, "encode idempotency record")
	}
	return s.swap(ctx, "complete", s.key(scope, key), fingerprint, string(done), ttl)
}

func (s *RedisIdempotencyStore) Release(ctx context.Context, scope, key, fingerprint string) error {
	return s.swap(ctx, "release", s.key(scope, key), fingerprint, "", 0)
}

func (s *RedisIdempotencyStore) swap(ctx context.Context, op, k, fingerprint, next string, ttl time.Duration) error {
	err := swapIfPending.Run(ctx, s.client, []string{k}, pendingValue(fingerprint), next, clampTTL(ttl).Milliseconds()).Err()
	if err != nil && !errors.Is(err, redis.Nil) {
		return errs.Mark(errs.Wrapf(err, "idempotency %s", op), errs.ErrDataUnavailable)
	}
	return nil
}

func pendingValue(fingerprint string) string {
	raw, _ := json.Marshal(idempotencyRecord{Fingerprint: fingerprint})
	return string(raw)
}

func clampTTL(ttl time.Duration) time.Duration {
	if ttl < time.Millisecond {
		return time.Millisecond
	}
	return ttl
}
