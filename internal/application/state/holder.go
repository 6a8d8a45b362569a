package state

import (
	"context"
	"sync"
	"sync/atomic"

	"komari/internal/application/usecase/abstraction"
	"komari/internal/domain/model"
	"komari/internal/domain/result"
	"komari/pkg/logger"
)

// Holder keeps the latest envelope of each catalog list, the connection probe
// and the selected tab. Each fetch takes a number from a shared counter and a
// slot ignores envelopes from fetches older than the last one it published.
type Holder struct {
	ctx     context.Context
	gateway abstraction.Gateway

	featured   *Slot[result.Result[[]model.Wallpaper]]
	all        *Slot[result.Result[[]model.Wallpaper]]
	connection *Slot[result.Result[int]]
	tab        *Slot[Tab]

	seq atomic.Uint64
	wg  sync.WaitGroup
}

// NewHolder creates a holder whose fetches run under ctx. Every slot starts
// out Loading and the tab starts on TabFeatured. No fetch is started.
func NewHolder(ctx context.Context, gateway abstraction.Gateway) *Holder {
	return &Holder{
		ctx:        ctx,
		gateway:    gateway,
		featured:   NewSlot[result.Result[[]model.Wallpaper]](result.Loading[[]model.Wallpaper]{}),
		all:        NewSlot[result.Result[[]model.Wallpaper]](result.Loading[[]model.Wallpaper]{}),
		connection: NewSlot[result.Result[int]](result.Loading[int]{}),
		tab:        NewSlot(TabFeatured),
	}
}

func (h *Holder) Featured() *Slot[result.Result[[]model.Wallpaper]] { return h.featured }

func (h *Holder) All() *Slot[result.Result[[]model.Wallpaper]] { return h.all }

func (h *Holder) Connection() *Slot[result.Result[int]] { return h.connection }

func (h *Holder) LoadFeatured() {
	run(h, "featured", h.featured, h.gateway.Featured)
}

func (h *Holder) LoadAll() {
	run(h, "all", h.all, h.gateway.All)
}

// Refresh reloads both lists concurrently. Fetches already in flight keep
// running; their results are dropped if they finish after the new ones.
func (h *Holder) Refresh() {
	h.LoadFeatured()
	h.LoadAll()
}

func (h *Holder) TestConnection() {
	run(h, "connection", h.connection, h.gateway.Probe)
}

func (h *Holder) SelectTab(t Tab) {
	h.tab.Set(t)
}

func (h *Holder) SelectedTab() Tab {
	return h.tab.Value()
}

// Wait blocks until every fetch started so far has finished.
func (h *Holder) Wait() {
	h.wg.Wait()
}

func run[T any](h *Holder, name string, slot *Slot[result.Result[T]],
	start func(context.Context) <-chan result.Result[T],
) {
	seq := h.seq.Add(1)
	envelopes := start(h.ctx)
	h.wg.Add(1)

	go func() {
		defer h.wg.Done()

		for envelope := range envelopes {
			if !slot.publish(seq, envelope) {
				logger.Debug("dropped stale envelope", "slot", name, "seq", seq,
					"state", result.Name[T](envelope))
			}
		}
	}()
}
