package database

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"komari/internal/domain/model"
	dbRepository "komari/internal/domain/repository/database"
	"komari/pkg/logger"
)

type WallpaperRetriever struct {
	db *Database
}

func NewWallpaperRetriever(db *Database) *WallpaperRetriever {
	return &WallpaperRetriever{
		db: db,
	}
}

func (r *WallpaperRetriever) GetByID(ctx context.Context, id string) (*model.Wallpaper, error) {
	ctx, cancel := context.WithTimeout(ctx, r.db.QueryTimeout)
	defer cancel()

	raw, err := r.db.coll().FindOne(ctx, bson.M{idField: bson.M{"$in": idCandidates(id)}}).Raw()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, dbRepository.ErrNotFound
		}

		logger.Error("failed to retrieve wallpaper by id", "id", id, "err", err)

		return nil, err
	}

	w, err := decodeWallpaper(raw)
	if err != nil {
		logger.Warn("wallpaper document is malformed", "id", id, "err", err.Error())

		return nil, dbRepository.ErrNotFound
	}

	return &w, nil
}
