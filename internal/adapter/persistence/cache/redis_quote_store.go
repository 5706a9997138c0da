package cache

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"qutlas/internal/domain/entities"
	"qutlas/internal/usecase/interfaces"
	"qutlas/pkg/errs"

	"github.com/redis/go-redis/v9"
)

// RedisQuoteStore keeps issued quotes as JSON strings that expire with the
// quote validity window.
type RedisQuoteStore struct {
	client redis.UniversalClient
	prefix string
}

var _ interfaces.IQuoteStore = (*RedisQuoteStore)(nil)

func NewRedisQuoteStore(client redis.UniversalClient, prefix string) *RedisQuoteStore {
	prefix = strings.TrimSuffix(prefix, ":")
	if prefix == "" {
		prefix = "qutlas"
	}
	return &RedisQuoteStore{client: client, prefix: prefix + ":quote"}
}

func (s *RedisQuoteStore) key(id string) string {
	return s.prefix + ":" + id
}

func (s *RedisQuoteStore) Save(ctx context.Context, q entities.Quote, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	payload, err := json.Marshal(q)
	if err != nil {
		return errs.Wrapf(err, "encode quote %s", q.ID)
	}
	if err := s.client.Set(ctx, s.key(q.ID), payload, ttl).Err(); err != nil {
		return errs.Wrapf(err, "store quote %s", q.ID)
	}
	return nil
}

func (s *RedisQuoteStore) Get(ctx context.Context, id string) (entities.Quote, bool, error) {
	raw, err := s.client.Get(ctx, s.key(id)).Bytes()
	if err != nil {
		if errs.Is(err, redis.Nil) {
			return entities.Quote{}, false, nil
		}
		return entities.Quote{}, false, errs.Wrapf(err, "load quote %s", id)
	}
	var q entities.Quote
	if err := json.Unmarshal(raw, &q); err != nil {
		return entities.Quote{}, false, errs.Wrapf(err, "decode quote %s", id)
	}
	return q, true, nil
}
