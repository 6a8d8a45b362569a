package state

import (
	"context"
	"sync"
)

// Slot is a latest-value cell. Readers see the newest published value and
// watchers receive every publication in order.
type Slot[T any] struct {
	mu       sync.Mutex
	value    T
	seq      uint64
	watchers map[*watcher[T]]struct{}
}

func NewSlot[T any](initial T) *Slot[T] {
	return &Slot[T]{
		value:    initial,
		watchers: make(map[*watcher[T]]struct{}),
	}
}

func (s *Slot[T]) Value() T {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.value
}

// Set replaces the value regardless of sequence.
func (s *Slot[T]) Set(v T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.store(v)
}

// publish stores v unless a newer fetch already published into the slot.
// It reports whether v was kept.
func (s *Slot[T]) publish(seq uint64, v T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq < s.seq {
		return false
	}

	s.seq = seq
	s.store(v)

	return true
}

func (s *Slot[T]) store(v T) {
	s.value = v
	for w := range s.watchers {
		w.push(v)
	}
}

// Watch returns a channel that yields the current value, then every later
// value in publication order. The channel closes when ctx is done.
// Publishers never block on slow watchers.
func (s *Slot[T]) Watch(ctx context.Context) <-chan T {
	w := &watcher[T]{
		signal: make(chan struct{}, 1),
		out:    make(chan T),
	}

	s.mu.Lock()
	w.push(s.value)
	s.watchers[w] = struct{}{}
	s.mu.Unlock()

	go func() {
		defer close(w.out)
		defer func() {
			s.mu.Lock()
			delete(s.watchers, w)
			s.mu.Unlock()
		}()

		w.pump(ctx)
	}()

	return w.out
}

type watcher[T any] struct {
	mu     sync.Mutex
	queue  []T
	signal chan struct{}
	out    chan T
}

func (w *watcher[T]) push(v T) {
	w.mu.Lock()
	w.queue = append(w.queue, v)
	w.mu.Unlock()

	select {
	case w.signal <- struct{}{}:
	default:
	}
}

func (w *watcher[T]) pump(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.signal:
		}

		w.mu.Lock()
		pending := w.queue
		w.queue = nil
		w.mu.Unlock()

		for _, v := range pending {
			select {
			case w.out <- v:
			case <-ctx.Done():
				return
			}
		}
	}
}
