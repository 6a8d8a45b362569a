package usecase

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"komari/internal/domain/repository/broker"
	"komari/internal/domain/repository/database"
	"komari/internal/domain/repository/fetcher"
	"komari/internal/domain/repository/wallpaper"
	"komari/pkg/logger"
)

type Applier struct {
	publisher broker.Publisher
	retriever database.Retriever
	fetcher   fetcher.Fetcher
	setter    wallpaper.Setter
}

func NewApplier(publisher broker.Publisher, retriever database.Retriever, fetcher fetcher.Fetcher,
	setter wallpaper.Setter,
) *Applier {
	return &Applier{
		publisher: publisher,
		retriever: retriever,
		fetcher:   fetcher,
		setter:    setter,
	}
}

// Apply fetches the full-size image of wallpaper id and sets it as the device
// wallpaper.
func (a *Applier) Apply(ctx context.Context, id string) bool {
	if err := a.apply(ctx, id); err != nil {
		logger.Error("failed to set wallpaper", "id", id, "err", err)
		notify(ctx, a.publisher, NoticeWallpaperFail)

		return false
	}

	logger.Info("wallpaper set", "id", id)
	notify(ctx, a.publisher, NoticeWallpaperSet)

	return true
}

func (a *Applier) apply(ctx context.Context, id string) error {
	w, err := a.retriever.GetByID(ctx, id)
	if err != nil {
		return err
	}

	remote, err := a.fetcher.Fetch(ctx, w.ImageURL)
	if err != nil {
		return err
	}
	defer remote.Body.Close()

	img, format, err := image.Decode(remote.Body)
	if err != nil {
		return fmt.Errorf("decode image: %w", err)
	}

	logger.Debug("decoded wallpaper", "id", id, "format", format, "bounds", img.Bounds().String())

	return a.setter.SetBitmap(ctx, img)
}
