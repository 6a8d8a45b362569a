package handler

import (
	"context"

	"komari/internal/domain/dto"
	"komari/internal/domain/model"
	"komari/internal/domain/result"
)

// envelope renders r in its wire form, mapping Success data through data.
func envelope[T any](r result.Result[T], data func(T) any) dto.Envelope {
	return result.Match(r,
		func() dto.Envelope {
			return dto.Envelope{State: result.Name[T](r)}
		},
		func(v T) dto.Envelope {
			return dto.Envelope{State: result.Name[T](r), Data: data(v)}
		},
		func(err error) dto.Envelope {
			return dto.Envelope{State: result.Name[T](r), Error: err.Error()}
		},
	)
}

func wallpaperList(wallpapers []model.Wallpaper) any {
	out := make([]dto.WallpaperDescriptor, 0, len(wallpapers))
	for _, w := range wallpapers {
		out = append(out, descriptor(w))
	}

	return out
}

func descriptor(w model.Wallpaper) dto.WallpaperDescriptor {
	tags := w.Tags
	if tags == nil {
		tags = []string{}
	}

	return dto.WallpaperDescriptor{
		ID:            w.ID,
		PostID:        w.PostID,
		ImageURL:      w.ImageURL,
		ThumbnailURL:  w.ThumbnailURL,
		Title:         w.Title,
		Tags:          tags,
		Width:         w.Width,
		Height:        w.Height,
		FileSize:      w.FileSize,
		FileSizeLabel: w.HumanFileSize(),
		Rating:        w.Rating,
		Category:      w.Category(),
		Featured:      w.Featured,
		CreatedAt:     w.CreatedAt(),
		CuratorNotes:  w.CuratorNotes,
		Source:        w.Source,
		SourceLabel:   w.SourceLabel(),
		Status:        w.Status,
	}
}

// terminal drains a fetch and returns its terminal envelope.
func terminal[T any](ctx context.Context, envelopes <-chan result.Result[T]) result.Result[T] {
	var last result.Result[T] = result.Loading[T]{}

	for {
		select {
		case <-ctx.Done():
			return result.Failure[T]{Err: ctx.Err()}
		case r, ok := <-envelopes:
			if !ok {
				return last
			}

			last = r
		}
	}
}
