package interfaces

import (
	"context"
	"qutlas/internal/domain/entities"
)

// IHubRepository abstracts persistence for the hub registry.
//
// UpdateLoad is a compare-and-set on Version and returns errs.ErrConflict
// when another writer got there first.
type IHubRepository interface {
	List(ctx context.Context) ([]entities.Hub, error)
	GetByID(ctx context.Context, id string) (entities.Hub, error)
	Upsert(ctx context.Context, hub entities.Hub) (entities.Hub, error)
	UpdateLoad(ctx context.Context, id string, load float64, expectedVersion int64) (entities.Hub, error)
}
