package fetcher

import (
	"context"
	"io"
	"sync/atomic"
	"time"

	fetcherRepository "komari/internal/domain/repository/fetcher"
)

// stallGuardedBody bounds each Read of a response body by timeout. A read
// that blocks longer cancels the request and reports ErrReadTimeout. Time
// spent between reads is not counted.
type stallGuardedBody struct {
	body    io.ReadCloser
	timeout time.Duration
	timer   *time.Timer
	cancel  context.CancelFunc
	stalled atomic.Bool
}

func newStallGuardedBody(body io.ReadCloser, timeout time.Duration, cancel context.CancelFunc) *stallGuardedBody {
	b := &stallGuardedBody{body: body, timeout: timeout, cancel: cancel}
	b.timer = time.AfterFunc(timeout, func() {
		b.stalled.Store(true)
		cancel()
	})
	b.timer.Stop()

	return b
}

func (b *stallGuardedBody) Read(p []byte) (int, error) {
	if b.stalled.Load() {
		return 0, fetcherRepository.ErrReadTimeout
	}

	b.timer.Reset(b.timeout)
	n, err := b.body.Read(p)
	b.timer.Stop()

	if err != nil && b.stalled.Load() {
		return n, fetcherRepository.ErrReadTimeout
	}

	return n, err
}

func (b *stallGuardedBody) Close() error {
	b.timer.Stop()
	err := b.body.Close()
	b.cancel()

	return err
}
