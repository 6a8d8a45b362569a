package state

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"komari/internal/domain/model"
	"komari/internal/domain/result"
)

type listResult = result.Result[[]model.Wallpaper]

// scriptedGateway hands out channels the test feeds by hand.
type scriptedGateway struct {
	mu       sync.Mutex
	featured []chan listResult
	all      []chan listResult
	probe    []chan result.Result[int]
}

func (g *scriptedGateway) Featured(context.Context) <-chan listResult {
	g.mu.Lock()
	defer g.mu.Unlock()

	ch := make(chan listResult, 2)
	g.featured = append(g.featured, ch)

	return ch
}

func (g *scriptedGateway) All(context.Context) <-chan listResult {
	g.mu.Lock()
	defer g.mu.Unlock()

	ch := make(chan listResult, 2)
	g.all = append(g.all, ch)

	return ch
}

func (g *scriptedGateway) Search(context.Context, string) <-chan listResult {
	panic("not used")
}

func (g *scriptedGateway) Category(context.Context, string) <-chan listResult {
	panic("not used")
}

func (g *scriptedGateway) Probe(context.Context) <-chan result.Result[int] {
	g.mu.Lock()
	defer g.mu.Unlock()

	ch := make(chan result.Result[int], 2)
	g.probe = append(g.probe, ch)

	return ch
}

func (g *scriptedGateway) ByID(context.Context, string) (*model.Wallpaper, error) {
	return nil, errors.New("not used")
}

func finish[T any](ch chan result.Result[T], terminal result.Result[T]) {
	ch <- result.Loading[T]{}
	ch <- terminal
	close(ch)
}

func TestHolderInitialState(t *testing.T) {
	t.Parallel()

	h := NewHolder(context.Background(), &scriptedGateway{})

	assert.Equal(t, result.Loading[[]model.Wallpaper]{}, h.Featured().Value())
	assert.Equal(t, result.Loading[[]model.Wallpaper]{}, h.All().Value())
	assert.Equal(t, result.Loading[int]{}, h.Connection().Value())
	assert.Equal(t, TabFeatured, h.SelectedTab())

	h.SelectTab(TabAll)
	assert.Equal(t, TabAll, h.SelectedTab())
}

func TestHolderLoadFeaturedPublishesLoadingThenSuccess(t *testing.T) {
	t.Parallel()

	gw := &scriptedGateway{}
	h := NewHolder(context.Background(), gw)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	watch := h.Featured().Watch(ctx)
	assert.Equal(t, result.Loading[[]model.Wallpaper]{}, receive(t, watch))

	h.LoadFeatured()

	data := []model.Wallpaper{{ID: "w1"}}
	finish(gw.featured[0], listResult(result.Success[[]model.Wallpaper]{Data: data}))
	h.Wait()

	assert.Equal(t, result.Loading[[]model.Wallpaper]{}, receive(t, watch))
	assert.Equal(t, result.Success[[]model.Wallpaper]{Data: data}, receive(t, watch))
	assert.Equal(t, result.Success[[]model.Wallpaper]{Data: data}, h.Featured().Value())
}

func TestHolderRefreshRecoversFromFailure(t *testing.T) {
	t.Parallel()

	gw := &scriptedGateway{}
	h := NewHolder(context.Background(), gw)
	boom := errors.New("offline")

	h.Refresh()
	finish(gw.featured[0], listResult(result.Failure[[]model.Wallpaper]{Err: boom}))
	finish(gw.all[0], listResult(result.Failure[[]model.Wallpaper]{Err: boom}))
	h.Wait()

	assert.Equal(t, result.Failure[[]model.Wallpaper]{Err: boom}, h.Featured().Value())
	assert.Equal(t, result.Failure[[]model.Wallpaper]{Err: boom}, h.All().Value())

	h.Refresh()
	finish(gw.featured[1], listResult(result.Success[[]model.Wallpaper]{Data: []model.Wallpaper{}}))
	finish(gw.all[1], listResult(result.Success[[]model.Wallpaper]{Data: []model.Wallpaper{{ID: "a"}}}))
	h.Wait()

	assert.Equal(t, result.Success[[]model.Wallpaper]{Data: []model.Wallpaper{}}, h.Featured().Value())
	assert.Equal(t, result.Success[[]model.Wallpaper]{Data: []model.Wallpaper{{ID: "a"}}}, h.All().Value())
}

func TestHolderDropsStaleFetch(t *testing.T) {
	t.Parallel()

	gw := &scriptedGateway{}
	h := NewHolder(context.Background(), gw)

	h.LoadFeatured()
	h.LoadFeatured()

	older := listResult(result.Success[[]model.Wallpaper]{Data: []model.Wallpaper{{ID: "older"}}})
	newer := listResult(result.Success[[]model.Wallpaper]{Data: []model.Wallpaper{{ID: "newer"}}})

	finish(gw.featured[1], newer)
	assert.Eventually(t, func() bool {
		return result.Name[[]model.Wallpaper](h.Featured().Value()) == "success"
	}, waitFor, tick)

	finish(gw.featured[0], older)
	h.Wait()

	assert.Equal(t, newer, h.Featured().Value())
}

func TestHolderTestConnection(t *testing.T) {
	t.Parallel()

	gw := &scriptedGateway{}
	h := NewHolder(context.Background(), gw)

	h.TestConnection()
	finish(gw.probe[0], result.Result[int](result.Success[int]{Data: 5}))
	h.Wait()

	assert.Equal(t, result.Success[int]{Data: 5}, h.Connection().Value())
}
