package interfaces

import (
	"context"
	"time"

	"qutlas/internal/domain/entities"
)

// IQuoteStore caches issued quotes until they expire. Get reports found=false
// for unknown or evicted ids.
type IQuoteStore interface {
	Save(ctx context.Context, q entities.Quote, ttl time.Duration) error
	Get(ctx context.Context, id string) (q entities.Quote, found bool, err error)
}
