package memory

import (
	"context"
	"sync"
	"time"

	"qutlas/internal/domain/entities"
	"qutlas/internal/usecase/interfaces"
	"qutlas/pkg/clock"
)

type quoteEntry struct {
	quote     entities.Quote
	expiresAt time.Time
}

// QuoteStore keeps quotes until their TTL runs out. Expired entries are
// dropped lazily on read and on write.
type QuoteStore struct {
	mu     sync.Mutex
	quotes map[string]quoteEntry
	clock  clock.Clock
}

var _ interfaces.IQuoteStore = (*QuoteStore)(nil)

func NewQuoteStore(c clock.Clock) *QuoteStore {
	if c == nil {
		c = clock.NewRealClock()
	}
	return &QuoteStore{quotes: make(map[string]quoteEntry), clock: c}
}

func (s *QuoteStore) Save(ctx context.Context, q entities.Quote, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if ttl <= 0 {
		return nil
	}
	now := s.clock.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, e := range s.quotes {
		if !now.Before(e.expiresAt) {
			delete(s.quotes, id)
		}
	}
	q.Warnings = append([]string(nil), q.Warnings...)
	s.quotes[q.ID] = quoteEntry{quote: q, expiresAt: now.Add(ttl)}
	return nil
}

func (s *QuoteStore) Get(ctx context.Context, id string) (entities.Quote, bool, error) {
	if err := ctx.Err(); err != nil {
		return entities.Quote{}, false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.quotes[id]
	if !ok {
		return entities.Quote{}, false, nil
	}
	if !s.clock.Now().Before(e.expiresAt) {
		delete(s.quotes, id)
		return entities.Quote{}, false, nil
	}
	q := e.quote
	q.Warnings = append([]string(nil), e.quote.Warnings...)
	return q, true, nil
}
