package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"komari/internal/domain/model"
	"komari/internal/domain/query"
	"komari/pkg/logger"
)

type WallpaperFinder struct {
	db *Database
}

func NewWallpaperFinder(db *Database) *WallpaperFinder {
	return &WallpaperFinder{
		db: db,
	}
}

func (f *WallpaperFinder) Find(ctx context.Context, spec query.Spec) ([]model.Wallpaper, error) {
	filter, err := buildFilter(spec)
	if err != nil {
		return nil, err
	}

	opts, err := buildFindOptions(spec)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, f.db.QueryTimeout)
	defer cancel()

	cursor, err := f.db.coll().Find(ctx, filter, opts)
	if err != nil {
		logger.Error("failed to query wallpapers", "err", err)

		return nil, err
	}
	defer cursor.Close(ctx)

	wallpapers, err := decodeWallpapers(ctx, cursor)
	if err != nil {
		logger.Error("failed to read wallpaper cursor", "err", err)

		return nil, err
	}

	return wallpapers, nil
}

func (f *WallpaperFinder) Count(ctx context.Context, spec query.Spec) (int64, error) {
	filter, err := buildFilter(spec)
	if err != nil {
		return 0, err
	}

	ctx, cancel := context.WithTimeout(ctx, f.db.QueryTimeout)
	defer cancel()

	opts := options.Count()
	if spec.Limit > 0 {
		opts.SetLimit(spec.Limit)
	}

	n, err := f.db.coll().CountDocuments(ctx, filter, opts)
	if err != nil {
		logger.Error("failed to count wallpapers", "err", err)

		return 0, err
	}

	return n, nil
}

// buildFilter turns query filters into a document filter. Conditions on the
// same field are merged, so a prefix range becomes {field: {$gte, $lt}}.
func buildFilter(spec query.Spec) (bson.D, error) {
	filter := bson.D{}
	positions := make(map[string]int)

	for _, cond := range spec.Filters {
		name, err := storedName(cond.Field)
		if err != nil {
			return nil, err
		}

		op, err := mongoOperator(cond.Op)
		if err != nil {
			return nil, err
		}

		i, ok := positions[name]
		if !ok {
			positions[name] = len(filter)
			filter = append(filter, bson.E{Key: name, Value: bson.D{{Key: op, Value: cond.Value}}})

			continue
		}

		ops, _ := filter[i].Value.(bson.D)
		filter[i].Value = append(ops, bson.E{Key: op, Value: cond.Value})
	}

	return filter, nil
}

func buildFindOptions(spec query.Spec) (*options.FindOptions, error) {
	opts := options.Find()

	if spec.Order != nil {
		name, err := storedName(spec.Order.Field)
		if err != nil {
			return nil, err
		}

		dir := 1
		if spec.Order.Direction == query.Descending {
			dir = -1
		}
		opts.SetSort(bson.D{{Key: name, Value: dir}})
	}

	if spec.Limit > 0 {
		opts.SetLimit(spec.Limit)
	}

	return opts, nil
}

func mongoOperator(op query.Operator) (string, error) {
	switch op {
	case query.Equal:
		return "$eq", nil
	case query.GreaterOrEqual:
		return "$gte", nil
	case query.LessThan:
		return "$lt", nil
	default:
		return "", fmt.Errorf("unsupported operator %s", op)
	}
}
