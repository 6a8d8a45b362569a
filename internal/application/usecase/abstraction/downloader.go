package abstraction

import (
	"context"

	"komari/internal/domain/entity"
)

type Downloader interface {
	Download(ctx context.Context, id string) (entity.DownloadResult, error)
}
