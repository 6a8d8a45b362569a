package database

import (
	"context"

	"komari/internal/domain/model"
)

type Retriever interface {
	GetByID(ctx context.Context, id string) (*model.Wallpaper, error)
}
