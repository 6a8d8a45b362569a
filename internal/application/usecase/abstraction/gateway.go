package abstraction

import (
	"context"

	"komari/internal/domain/model"
	"komari/internal/domain/result"
)

// Gateway issues the catalog queries. Every returned channel yields one
// Loading envelope, then one terminal envelope, then closes.
type Gateway interface {
	Featured(ctx context.Context) <-chan result.Result[[]model.Wallpaper]
	All(ctx context.Context) <-chan result.Result[[]model.Wallpaper]
	Search(ctx context.Context, text string) <-chan result.Result[[]model.Wallpaper]
	Category(ctx context.Context, category string) <-chan result.Result[[]model.Wallpaper]
	Probe(ctx context.Context) <-chan result.Result[int]
	ByID(ctx context.Context, id string) (*model.Wallpaper, error)
}
