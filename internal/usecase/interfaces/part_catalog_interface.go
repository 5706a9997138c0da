package interfaces

import (
	"context"
	"qutlas/internal/domain/entities"
)

// IPartCatalog resolves part templates. GetTemplate returns errs.ErrNotFound
// for unknown ids.
type IPartCatalog interface {
	GetTemplate(ctx context.Context, id string) (entities.PartTemplate, error)
	ListTemplates(ctx context.Context) ([]entities.PartTemplate, error)
}
