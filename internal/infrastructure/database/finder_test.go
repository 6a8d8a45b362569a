package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"komari/internal/domain/model"
	"komari/internal/domain/query"
)

func TestBuildFilter(t *testing.T) {
	t.Parallel()

	spec := query.New().
		Where(model.FieldStatus, query.Equal, model.StatusPublished).
		Prefix(model.FieldPostID, "abc")

	filter, err := buildFilter(spec)
	require.NoError(t, err)

	assert.Equal(t, bson.D{
		{Key: "status", Value: bson.D{{Key: "$eq", Value: "published"}}},
		{Key: "post_id", Value: bson.D{
			{Key: "$gte", Value: "abc"},
			{Key: "$lt", Value: "abc\uf8ff"},
		}},
	}, filter)

	_, err = buildFilter(query.New().Where("unknown", query.Equal, 1))
	assert.Error(t, err)
}

func TestBuildFindOptions(t *testing.T) {
	t.Parallel()

	opts, err := buildFindOptions(query.New().OrderBy(model.FieldDateAdded, query.Descending).Take(50))
	require.NoError(t, err)
	assert.Equal(t, bson.D{{Key: "date_added", Value: -1}}, opts.Sort)
	require.NotNil(t, opts.Limit)
	assert.Equal(t, int64(50), *opts.Limit)

	opts, err = buildFindOptions(query.New())
	require.NoError(t, err)
	assert.Nil(t, opts.Sort)
	assert.Nil(t, opts.Limit)
}

func TestFind(t *testing.T) {
	t.Parallel()

	uri := setupMongo(t)
	db := connectTestDB(t, uri)
	finder := NewWallpaperFinder(db)

	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)

	docs := []any{
		bson.M{"_id": "w1", "post_id": "abc1", "file_url": "u1", "status": "published", "is_featured": true, "rating": "nature", "date_added": now.Add(-3 * time.Hour)},
		bson.M{"_id": "w2", "post_id": "abc2", "file_url": "u2", "status": "published", "is_featured": true, "rating": "city", "date_added": now.Add(-2 * time.Hour)},
		bson.M{"_id": "w3", "post_id": "abd1", "file_url": "u3", "status": "published", "is_featured": false, "rating": "nature", "date_added": now.Add(-1 * time.Hour)},
		bson.M{"_id": "w4", "post_id": "abc3", "file_url": "u4", "status": "draft", "is_featured": true, "rating": "nature", "date_added": now},
		bson.M{"_id": "w5", "post_id": "abc4", "status": "published", "is_featured": true, "date_added": now.Add(-30 * time.Minute)},
	}
	_, err := db.coll().InsertMany(ctx, docs)
	require.NoError(t, err)

	published := query.New().Where(model.FieldStatus, query.Equal, model.StatusPublished)

	tests := []struct {
		name    string
		spec    query.Spec
		wantIDs []string
	}{
		{
			name: "published and featured, newest first, malformed dropped",
			spec: published.Where(model.FieldFeatured, query.Equal, true).
				OrderBy(model.FieldDateAdded, query.Descending),
			wantIDs: []string{"w2", "w1"},
		},
		{
			name:    "limit applies before decoding",
			spec:    published.OrderBy(model.FieldDateAdded, query.Descending).Take(2),
			wantIDs: []string{"w3"},
		},
		{
			name:    "prefix range on post id",
			spec:    published.Prefix(model.FieldPostID, "abc").OrderBy(model.FieldPostID, query.Ascending),
			wantIDs: []string{"w1", "w2"},
		},
		{
			name: "category",
			spec: query.New().Where(model.FieldRating, query.Equal, "nature").
				Where(model.FieldStatus, query.Equal, model.StatusPublished).
				OrderBy(model.FieldDateAdded, query.Descending),
			wantIDs: []string{"w3", "w1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := finder.Find(ctx, tt.spec)
			require.NoError(t, err)

			ids := make([]string, 0, len(got))
			for _, w := range got {
				ids = append(ids, w.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}

	t.Run("count", func(t *testing.T) {
		n, err := finder.Count(ctx, published)
		require.NoError(t, err)
		assert.Equal(t, int64(4), n)

		n, err = finder.Count(ctx, query.New().Where(model.FieldFeatured, query.Equal, true))
		require.NoError(t, err)
		assert.Equal(t, int64(4), n)
	})
}
