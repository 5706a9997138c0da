package interfaces

import (
	"context"
	"time"

	"qutlas/internal/domain/entities"
)

// IDesignStorage is the object storage holding uploaded design files.
type IDesignStorage interface {
	Exists(ctx context.Context, loc entities.DesignLocation) (bool, error)
	PresignDownload(ctx context.Context, loc entities.DesignLocation, expiry time.Duration) (string, error)
}
