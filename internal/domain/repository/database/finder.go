package database

import (
	"context"

	"komari/internal/domain/model"
	"komari/internal/domain/query"
)

// Finder runs read-only queries against the wallpaper collection.
//
// Find is lossy on purpose: every document is decoded on its own and documents
// that fail to decode are dropped, so the result can be shorter than the number
// of matching documents. Only failures of the query itself are returned.
type Finder interface {
	Find(ctx context.Context, spec query.Spec) ([]model.Wallpaper, error)
	Count(ctx context.Context, spec query.Spec) (int64, error)
}
