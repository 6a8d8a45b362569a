package usecase

import (
	"context"
	"image"
	"io"
	"sort"
	"sync"

	"github.com/stretchr/testify/mock"

	"komari/internal/domain/entity"
	"komari/internal/domain/model"
	"komari/internal/domain/query"
	"komari/internal/domain/result"
)

type MockFinder struct {
	mock.Mock
}

func (m *MockFinder) Find(ctx context.Context, spec query.Spec) ([]model.Wallpaper, error) {
	args := m.Called(ctx, spec)
	wallpapers, _ := args.Get(0).([]model.Wallpaper)

	return wallpapers, args.Error(1)
}

func (m *MockFinder) Count(ctx context.Context, spec query.Spec) (int64, error) {
	args := m.Called(ctx, spec)

	return args.Get(0).(int64), args.Error(1)
}

type MockRetriever struct {
	mock.Mock
}

func (m *MockRetriever) GetByID(ctx context.Context, id string) (*model.Wallpaper, error) {
	args := m.Called(ctx, id)
	w, _ := args.Get(0).(*model.Wallpaper)

	return w, args.Error(1)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, message string) error {
	return m.Called(ctx, message).Error(0)
}

type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) Fetch(ctx context.Context, url string) (*entity.RemoteImage, error) {
	args := m.Called(ctx, url)
	img, _ := args.Get(0).(*entity.RemoteImage)

	return img, args.Error(1)
}

type MockUploader struct {
	mock.Mock
}

func (m *MockUploader) UploadFile(ctx context.Context, body io.Reader, fileSize int64,
	objectName string,
) (entity.UploadResult, error) {
	args := m.Called(ctx, body, fileSize, objectName)

	return args.Get(0).(entity.UploadResult), args.Error(1)
}

type MockSetter struct {
	mock.Mock
}

func (m *MockSetter) SetBitmap(ctx context.Context, img image.Image) error {
	return m.Called(ctx, img).Error(0)
}

// memoryFinder evaluates query specs over an in-memory collection.
type memoryFinder struct {
	mu   sync.Mutex
	docs []model.Wallpaper
	err  error
}

func (f *memoryFinder) Find(_ context.Context, spec query.Spec) ([]model.Wallpaper, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}

	var out []model.Wallpaper
	for _, w := range f.docs {
		if matches(w, spec.Filters) {
			out = append(out, w)
		}
	}

	if spec.Order != nil {
		sort.SliceStable(out, func(i, j int) bool {
			less := compare(value(out[i], spec.Order.Field), value(out[j], spec.Order.Field)) < 0
			if spec.Order.Direction == query.Descending {
				return compare(value(out[i], spec.Order.Field), value(out[j], spec.Order.Field)) > 0
			}

			return less
		})
	}

	if spec.Limit > 0 && int64(len(out)) > spec.Limit {
		out = out[:spec.Limit]
	}

	return out, nil
}

func (f *memoryFinder) Count(ctx context.Context, spec query.Spec) (int64, error) {
	spec.Limit = 0
	out, err := f.Find(ctx, spec)

	return int64(len(out)), err
}

func (f *memoryFinder) fail(err error) {
	f.mu.Lock()
	f.err = err
	f.mu.Unlock()
}

func matches(w model.Wallpaper, filters []query.Filter) bool {
	for _, cond := range filters {
		c := compare(value(w, cond.Field), cond.Value)
		switch cond.Op {
		case query.Equal:
			if c != 0 {
				return false
			}
		case query.GreaterOrEqual:
			if c < 0 {
				return false
			}
		case query.LessThan:
			if c >= 0 {
				return false
			}
		}
	}

	return true
}

func value(w model.Wallpaper, field string) any {
	switch field {
	case model.FieldStatus:
		return w.Status
	case model.FieldFeatured:
		return w.Featured
	case model.FieldRating:
		return w.Rating
	case model.FieldPostID:
		return w.PostID
	case model.FieldDateAdded:
		return w.CreatedAt()
	default:
		return nil
	}
}

func compare(a, b any) int {
	switch av := a.(type) {
	case string:
		bv, _ := b.(string)
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		}
	case int64:
		bv, _ := b.(int64)
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		}
	case bool:
		bv, _ := b.(bool)
		if av != bv {
			return 1
		}
	}

	return 0
}

func drain[T any](ch <-chan result.Result[T]) []result.Result[T] {
	var out []result.Result[T]
	for r := range ch {
		out = append(out, r)
	}

	return out
}
