package fetcher

import (
	"context"

	"komari/internal/domain/entity"
)

// Fetcher opens the body of a remote image. Callers must close the body.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*entity.RemoteImage, error)
}
