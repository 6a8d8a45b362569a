package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpecBuilderDoesNotAlias(t *testing.T) {
	t.Parallel()

	base := New().Where("status", Equal, "published")
	a := base.Where("featured", Equal, true)
	b := base.Where("rating", Equal, "nature")

	assert.Len(t, base.Filters, 1)
	assert.Equal(t, "featured", a.Filters[1].Field)
	assert.Equal(t, "rating", b.Filters[1].Field)
}

func TestPrefix(t *testing.T) {
	t.Parallel()

	s := New().Prefix("postId", "abc").OrderBy("postId", Ascending).Take(50)

	assert.Equal(t, []Filter{
		{Field: "postId", Op: GreaterOrEqual, Value: "abc"},
		{Field: "postId", Op: LessThan, Value: "abc\uf8ff"},
	}, s.Filters)
	assert.Equal(t, &Order{Field: "postId", Direction: Ascending}, s.Order)
	assert.Equal(t, int64(50), s.Limit)

	upper := s.Filters[1].Value.(string)
	assert.True(t, "abc" >= "abc" && "abc" < upper)
	assert.True(t, "abc123" < upper)
	assert.False(t, "abd" < upper)
}
