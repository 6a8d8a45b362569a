package database

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"komari/internal/domain/model"
	"komari/pkg/logger"
)

var errMissingID = errors.New("document has no usable _id")

// decodeWallpaper decodes a single stored document through wallpaperFields.
// Absent and null fields keep their zero value unless the mapping marks them
// required.
func decodeWallpaper(raw bson.Raw) (model.Wallpaper, error) {
	var w model.Wallpaper

	for _, f := range wallpaperFields {
		rv := raw.Lookup(f.Stored)
		if rv.Type == 0 || rv.Type == bson.TypeNull {
			if f.Required {
				return model.Wallpaper{}, fmt.Errorf("missing required field %s", f.Stored)
			}

			continue
		}

		if err := f.decode(rv, &w); err != nil {
			return model.Wallpaper{}, fmt.Errorf("field %s: %w", f.Stored, err)
		}
	}

	id, err := documentID(raw)
	if err != nil {
		return model.Wallpaper{}, err
	}
	w.ID = id

	return w, nil
}

// decodeWallpapers drains cursor, keeping every document that decodes and
// dropping the rest. Only cursor errors fail the batch.
func decodeWallpapers(ctx context.Context, cursor *mongo.Cursor) ([]model.Wallpaper, error) {
	wallpapers := make([]model.Wallpaper, 0, cursor.RemainingBatchLength())
	dropped := 0

	for cursor.Next(ctx) {
		w, err := decodeWallpaper(cursor.Current)
		if err != nil {
			id, _ := documentID(cursor.Current)
			logger.Warn("skipping malformed wallpaper document", "id", id, "err", err.Error())
			dropped++

			continue
		}

		wallpapers = append(wallpapers, w)
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}

	if dropped > 0 {
		logger.Warn("dropped malformed wallpaper documents", "dropped", dropped, "kept", len(wallpapers))
	}

	return wallpapers, nil
}

func documentID(raw bson.Raw) (string, error) {
	rv := raw.Lookup(idField)

	switch rv.Type {
	case bson.TypeString:
		return rv.StringValue(), nil
	case bson.TypeObjectID:
		return rv.ObjectID().Hex(), nil
	default:
		return "", errMissingID
	}
}

// idCandidates lists the stored forms a document key may take.
func idCandidates(id string) []any {
	candidates := []any{id}
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		candidates = append(candidates, oid)
	}

	return candidates
}
