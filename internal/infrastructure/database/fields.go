package database

import (
	"fmt"
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"komari/internal/domain/model"
)

const idField = "_id"

type fieldDecoder func(rv bson.RawValue, w *model.Wallpaper) error

// fieldMapping ties an in-memory Wallpaper field to its stored document field.
type fieldMapping struct {
	Field    string
	Stored   string
	Required bool
	decode   fieldDecoder
}

// wallpaperFields is the single source of truth for stored field names.
// The document key is handled separately and always wins over stored data.
var wallpaperFields = []fieldMapping{
	{model.FieldPostID, "post_id", true, stringField(func(w *model.Wallpaper) *string { return &w.PostID })},
	{model.FieldImageURL, "file_url", true, stringField(func(w *model.Wallpaper) *string { return &w.ImageURL })},
	{model.FieldThumbnailURL, "preview_url", false, stringField(func(w *model.Wallpaper) *string { return &w.ThumbnailURL })},
	{model.FieldTitle, "title", false, stringField(func(w *model.Wallpaper) *string { return &w.Title })},
	{model.FieldTags, "tags", false, decodeTags},
	{model.FieldWidth, "width", false, intField(func(w *model.Wallpaper) *int { return &w.Width })},
	{model.FieldHeight, "height", false, intField(func(w *model.Wallpaper) *int { return &w.Height })},
	{model.FieldFileSize, "file_size", false, decodeFileSize},
	{model.FieldRating, "rating", false, stringField(func(w *model.Wallpaper) *string { return &w.Rating })},
	{model.FieldFeatured, "is_featured", false, decodeFeatured},
	{model.FieldDateAdded, "date_added", false, decodeDateAdded},
	{model.FieldCuratorNotes, "curator_notes", false, stringField(func(w *model.Wallpaper) *string { return &w.CuratorNotes })},
	{model.FieldSource, "source", false, stringField(func(w *model.Wallpaper) *string { return &w.Source })},
	{model.FieldStatus, "status", false, stringField(func(w *model.Wallpaper) *string { return &w.Status })},
}

var storedNames = func() map[string]string {
	names := make(map[string]string, len(wallpaperFields)+1)
	names[model.FieldID] = idField
	for _, f := range wallpaperFields {
		names[f.Field] = f.Stored
	}

	return names
}()

// storedName resolves an in-memory field name to its document field name.
func storedName(field string) (string, error) {
	name, ok := storedNames[field]
	if !ok {
		return "", fmt.Errorf("unknown wallpaper field %q", field)
	}

	return name, nil
}

func stringField(target func(*model.Wallpaper) *string) fieldDecoder {
	return func(rv bson.RawValue, w *model.Wallpaper) error {
		s, ok := rv.StringValueOK()
		if !ok {
			return mismatch(rv, "string")
		}
		*target(w) = s

		return nil
	}
}

func intField(target func(*model.Wallpaper) *int) fieldDecoder {
	return func(rv bson.RawValue, w *model.Wallpaper) error {
		n, ok := integer(rv)
		if !ok || n > math.MaxInt32 || n < math.MinInt32 {
			return mismatch(rv, "int")
		}
		*target(w) = int(n)

		return nil
	}
}

func decodeFileSize(rv bson.RawValue, w *model.Wallpaper) error {
	n, ok := integer(rv)
	if !ok {
		return mismatch(rv, "long")
	}
	w.FileSize = n

	return nil
}

func decodeFeatured(rv bson.RawValue, w *model.Wallpaper) error {
	b, ok := rv.BooleanOK()
	if !ok {
		return mismatch(rv, "bool")
	}
	w.Featured = b

	return nil
}

func decodeTags(rv bson.RawValue, w *model.Wallpaper) error {
	if rv.Type != bson.TypeArray {
		return mismatch(rv, "array")
	}

	var tags []string
	if err := rv.Unmarshal(&tags); err != nil {
		return fmt.Errorf("tags: %w", err)
	}
	w.Tags = tags

	return nil
}

func decodeDateAdded(rv bson.RawValue, w *model.Wallpaper) error {
	var t time.Time

	switch rv.Type {
	case bson.TypeDateTime:
		t = rv.Time()
	case bson.TypeTimestamp:
		sec, _ := rv.Timestamp()
		t = time.Unix(int64(sec), 0)
	default:
		return mismatch(rv, "date")
	}

	t = t.UTC()
	w.DateAdded = &t

	return nil
}

func integer(rv bson.RawValue) (int64, bool) {
	switch rv.Type {
	case bson.TypeInt32:
		return int64(rv.Int32()), true
	case bson.TypeInt64:
		return rv.Int64(), true
	case bson.TypeDouble:
		f := rv.Double()
		if f != math.Trunc(f) || f >= math.MaxInt64 || f < math.MinInt64 {
			return 0, false
		}

		return int64(f), true
	default:
		return 0, false
	}
}

func mismatch(rv bson.RawValue, want string) error {
	return fmt.Errorf("expected %s, got %s", want, rv.Type)
}
