package fetcher

import (
	"context"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"komari/internal/domain/entity"
	fetcherRepository "komari/internal/domain/repository/fetcher"
	"komari/pkg/logger"
)

const (
	UserAgent = "Mozilla/5.0 (Linux; Android 11; SM-G991B) AppleWebKit/537.36 " +
		"(KHTML, like Gecko) Chrome/91.0.4472.77 Mobile Safari/537.36"
	Accept         = "image/webp,image/apng,image/png,image/jpg,image/jpeg,*/*;q=0.8"
	AcceptLanguage = "en-US,en;q=0.9"

	gelbooruHost    = "gelbooru.com"
	gelbooruReferer = "https://gelbooru.com/"
)

type Fetcher struct {
	client      *http.Client
	readTimeout time.Duration
}

// New builds a fetcher whose read timeout bounds the wait for response
// headers and every later read of the body.
func New(cfg Config) *Fetcher {
	readTimeout := time.Duration(cfg.ReadTimeout) * time.Millisecond
	dialer := &net.Dialer{Timeout: time.Duration(cfg.ConnectTimeout) * time.Millisecond}

	return &Fetcher{
		client: &http.Client{
			Transport: &http.Transport{
				Proxy:                 http.ProxyFromEnvironment,
				DialContext:           dialer.DialContext,
				TLSHandshakeTimeout:   time.Duration(cfg.ConnectTimeout) * time.Millisecond,
				ResponseHeaderTimeout: readTimeout,
				MaxIdleConns:          10,
				IdleConnTimeout:       90 * time.Second,
			},
		},
		readTimeout: readTimeout,
	}
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*entity.RemoteImage, error) {
	ctx, cancel := context.WithCancel(ctx)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		cancel()

		return nil, err
	}

	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", Accept)
	req.Header.Set("Accept-Language", AcceptLanguage)
	req.Header.Set("Connection", "keep-alive")

	if strings.Contains(url, gelbooruHost) {
		req.Header.Set("Referer", gelbooruReferer)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		cancel()

		return nil, err
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		_ = resp.Body.Close()
		cancel()
		logger.Warn("image host rejected request", "url", url, "status", resp.StatusCode)

		return nil, &fetcherRepository.StatusError{Code: resp.StatusCode}
	}

	var body io.ReadCloser = &cancelOnClose{ReadCloser: resp.Body, cancel: cancel}
	if f.readTimeout > 0 {
		body = newStallGuardedBody(resp.Body, f.readTimeout, cancel)
	}

	return &entity.RemoteImage{
		Body:        body,
		Size:        resp.ContentLength,
		ContentType: resp.Header.Get("Content-Type"),
	}, nil
}

type cancelOnClose struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (c *cancelOnClose) Close() error {
	err := c.ReadCloser.Close()
	c.cancel()

	return err
}
