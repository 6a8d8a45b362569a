package usecase

import (
	"context"
	"fmt"
	"strings"

	"komari/internal/domain/model"
	"komari/internal/domain/query"
	"komari/internal/domain/repository/database"
	"komari/internal/domain/result"
	"komari/pkg/logger"
)

const (
	FeaturedLimit         = 50
	FeaturedFallbackLimit = 10
	AllLimit              = 100
	SearchLimit           = 50
	CategoryLimit         = 50
	ProbeSampleSize       = 5
)

// Gateway implements the Gateway abstraction on top of a database finder.
type Gateway struct {
	finder    database.Finder
	retriever database.Retriever
}

func NewGateway(finder database.Finder, retriever database.Retriever) *Gateway {
	return &Gateway{
		finder:    finder,
		retriever: retriever,
	}
}

func published() query.Spec {
	return query.New().Where(model.FieldStatus, query.Equal, model.StatusPublished)
}

func FeaturedSpec() query.Spec {
	return published().
		Where(model.FieldFeatured, query.Equal, true).
		OrderBy(model.FieldDateAdded, query.Descending).
		Take(FeaturedLimit)
}

func FeaturedFallbackSpec() query.Spec {
	return published().
		OrderBy(model.FieldDateAdded, query.Descending).
		Take(FeaturedFallbackLimit)
}

func AllSpec() query.Spec {
	return published().
		OrderBy(model.FieldDateAdded, query.Descending).
		Take(AllLimit)
}

// SearchSpec matches post ids starting with text. It is a prefix match on the
// post id, not a search over titles or tags.
func SearchSpec(text string) query.Spec {
	return published().
		Prefix(model.FieldPostID, text).
		OrderBy(model.FieldPostID, query.Ascending).
		Take(SearchLimit)
}

func CategorySpec(category string) query.Spec {
	return query.New().
		Where(model.FieldRating, query.Equal, strings.ToLower(category)).
		Where(model.FieldStatus, query.Equal, model.StatusPublished).
		OrderBy(model.FieldDateAdded, query.Descending).
		Take(CategoryLimit)
}

// Featured returns published featured wallpapers, newest first. When none are
// featured it falls back to the newest published ones.
func (g *Gateway) Featured(ctx context.Context) <-chan result.Result[[]model.Wallpaper] {
	return fetch(ctx, "featured", func(ctx context.Context) ([]model.Wallpaper, error) {
		wallpapers, err := g.finder.Find(ctx, FeaturedSpec())
		if err != nil {
			return nil, err
		}

		logger.Debug("featured query completed", "count", len(wallpapers))

		if len(wallpapers) > 0 {
			return wallpapers, nil
		}

		logger.Info("no published featured wallpapers, falling back to latest published")

		return g.finder.Find(ctx, FeaturedFallbackSpec())
	})
}

func (g *Gateway) All(ctx context.Context) <-chan result.Result[[]model.Wallpaper] {
	return fetch(ctx, "all", func(ctx context.Context) ([]model.Wallpaper, error) {
		return g.finder.Find(ctx, AllSpec())
	})
}

func (g *Gateway) Search(ctx context.Context, text string) <-chan result.Result[[]model.Wallpaper] {
	return fetch(ctx, "search", func(ctx context.Context) ([]model.Wallpaper, error) {
		return g.finder.Find(ctx, SearchSpec(text))
	})
}

func (g *Gateway) Category(ctx context.Context, category string) <-chan result.Result[[]model.Wallpaper] {
	return fetch(ctx, "category", func(ctx context.Context) ([]model.Wallpaper, error) {
		return g.finder.Find(ctx, CategorySpec(category))
	})
}

// Probe samples a few documents and logs diagnostic counts. The success value
// is the number of sampled documents.
func (g *Gateway) Probe(ctx context.Context) <-chan result.Result[int] {
	return fetch(ctx, "probe", func(ctx context.Context) (int, error) {
		sample, err := g.finder.Find(ctx, query.New().Take(ProbeSampleSize))
		if err != nil {
			return 0, err
		}

		logger.Info("connection test succeeded", "sampled", len(sample))
		for _, w := range sample {
			logger.Debug("sampled wallpaper", "id", w.ID, "status", w.Status,
				"featured", w.Featured, "title", w.Title)
		}

		counts := []struct {
			name string
			spec query.Spec
		}{
			{"published", published()},
			{"featured", query.New().Where(model.FieldFeatured, query.Equal, true)},
			{"published_featured", published().Where(model.FieldFeatured, query.Equal, true)},
		}

		for _, c := range counts {
			n, err := g.finder.Count(ctx, c.spec)
			if err != nil {
				return 0, err
			}

			logger.Info("wallpaper count", "scope", c.name, "count", n)
		}

		return len(sample), nil
	})
}

func (g *Gateway) ByID(ctx context.Context, id string) (*model.Wallpaper, error) {
	return g.retriever.GetByID(ctx, id)
}

// fetch runs do on its own goroutine and streams Loading followed by the
// terminal envelope. Errors and panics both end as a Failure.
func fetch[T any](ctx context.Context, name string, do func(context.Context) (T, error)) <-chan result.Result[T] {
	out := make(chan result.Result[T], 2)
	out <- result.Loading[T]{}

	go func() {
		defer close(out)

		data, err := guard(ctx, do)
		if err != nil {
			logger.Error("wallpaper fetch failed", "query", name, "err", err)
			out <- result.Failure[T]{Err: err}

			return
		}

		out <- result.Success[T]{Data: data}
	}()

	return out
}

func guard[T any](ctx context.Context, do func(context.Context) (T, error)) (data T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("fetch panicked: %v", r)
		}
	}()

	return do(ctx)
}
