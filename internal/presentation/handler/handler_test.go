package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"komari/internal/application/state"
	"komari/internal/application/usecase"
	"komari/internal/domain/entity"
	"komari/internal/domain/model"
	"komari/internal/domain/repository/database"
	"komari/internal/domain/result"
)

type fakeGateway struct {
	mu           sync.Mutex
	featured     result.Result[[]model.Wallpaper]
	all          result.Result[[]model.Wallpaper]
	search       result.Result[[]model.Wallpaper]
	category     result.Result[[]model.Wallpaper]
	probe        result.Result[int]
	byID         map[string]model.Wallpaper
	lastSearch   string
	lastCategory string
}

func emit[T any](r result.Result[T]) <-chan result.Result[T] {
	ch := make(chan result.Result[T], 2)
	ch <- result.Loading[T]{}
	ch <- r
	close(ch)

	return ch
}

func (g *fakeGateway) Featured(context.Context) <-chan result.Result[[]model.Wallpaper] {
	return emit[[]model.Wallpaper](g.featured)
}

func (g *fakeGateway) All(context.Context) <-chan result.Result[[]model.Wallpaper] {
	return emit[[]model.Wallpaper](g.all)
}

func (g *fakeGateway) Search(_ context.Context, text string) <-chan result.Result[[]model.Wallpaper] {
	g.mu.Lock()
	g.lastSearch = text
	g.mu.Unlock()

	return emit[[]model.Wallpaper](g.search)
}

func (g *fakeGateway) Category(_ context.Context, category string) <-chan result.Result[[]model.Wallpaper] {
	g.mu.Lock()
	g.lastCategory = category
	g.mu.Unlock()

	return emit[[]model.Wallpaper](g.category)
}

func (g *fakeGateway) Probe(context.Context) <-chan result.Result[int] {
	return emit[int](g.probe)
}

func (g *fakeGateway) ByID(_ context.Context, id string) (*model.Wallpaper, error) {
	w, ok := g.byID[id]
	if !ok {
		return nil, database.ErrNotFound
	}

	return &w, nil
}

type MockDownloader struct {
	mock.Mock
}

func (m *MockDownloader) Download(ctx context.Context, id string) (entity.DownloadResult, error) {
	args := m.Called(ctx, id)

	return args.Get(0).(entity.DownloadResult), args.Error(1)
}

type MockApplier struct {
	mock.Mock
}

func (m *MockApplier) Apply(ctx context.Context, id string) bool {
	return m.Called(ctx, id).Bool(0)
}

type testServer struct {
	echo       *echo.Echo
	holder     *state.Holder
	gateway    *fakeGateway
	downloader *MockDownloader
	applier    *MockApplier
}

func passThrough(next echo.HandlerFunc) echo.HandlerFunc {
	return next
}

func newTestServer(gw *fakeGateway) *testServer {
	holder := state.NewHolder(context.Background(), gw)
	downloader, applier := &MockDownloader{}, &MockApplier{}

	e := echo.New()
	Register(e, Handlers{
		Wallpaper:   NewWallpaperHandler(holder, gw),
		Tab:         NewTabHandler(holder),
		Download:    NewDownloadHandler(downloader),
		Set:         NewSetHandler(applier),
		Diagnostics: NewDiagnosticsHandler(holder),
	}, passThrough)

	return &testServer{echo: e, holder: holder, gateway: gw, downloader: downloader, applier: applier}
}

func (s *testServer) do(t *testing.T, method, target string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, target, http.NoBody)
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)

	body := map[string]any{}
	if strings.HasPrefix(rec.Header().Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	}

	return rec, body
}

var (
	added   = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	sunrise = model.Wallpaper{
		ID:        "w1",
		PostID:    "1001",
		ImageURL:  "https://img.example.com/1001.png",
		Title:     "Sunrise",
		Rating:    "nature",
		Featured:  true,
		FileSize:  1536,
		DateAdded: &added,
		Status:    model.StatusPublished,
	}
)

func TestSlotEndpointsFollowHolder(t *testing.T) {
	t.Parallel()

	srv := newTestServer(&fakeGateway{
		featured: result.Success[[]model.Wallpaper]{Data: []model.Wallpaper{sunrise}},
		all:      result.Failure[[]model.Wallpaper]{Err: errors.New("network unreachable")},
	})

	rec, body := srv.do(t, http.MethodGet, "/wallpapers/featured")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]any{"state": "loading"}, body)

	rec, _ = srv.do(t, http.MethodPost, "/wallpapers/refresh")
	assert.Equal(t, http.StatusAccepted, rec.Code)
	srv.holder.Wait()

	_, body = srv.do(t, http.MethodGet, "/wallpapers/featured")
	assert.Equal(t, "success", body["state"])
	data, ok := body["data"].([]any)
	require.True(t, ok)
	require.Len(t, data, 1)

	first := data[0].(map[string]any)
	assert.Equal(t, "w1", first["id"])
	assert.Equal(t, "Nature", first["category"])
	assert.Equal(t, float64(added.UnixMilli()), first["created_at"])
	assert.Equal(t, "1.5 KB", first["file_size_label"])

	_, body = srv.do(t, http.MethodGet, "/wallpapers")
	assert.Equal(t, map[string]any{"state": "error", "error": "network unreachable"}, body)
}

func TestSearchAndCategory(t *testing.T) {
	t.Parallel()

	srv := newTestServer(&fakeGateway{
		search:   result.Success[[]model.Wallpaper]{Data: []model.Wallpaper{}},
		category: result.Failure[[]model.Wallpaper]{Err: errors.New("timeout")},
	})

	rec, body := srv.do(t, http.MethodGet, "/wallpapers/search?q=100")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]any{"state": "success", "data": []any{}}, body)
	assert.Equal(t, "100", srv.gateway.lastSearch)

	rec, _ = srv.do(t, http.MethodGet, "/wallpapers/search?q=")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = srv.do(t, http.MethodGet, "/wallpapers/search?q=%20%20")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = srv.do(t, http.MethodGet, "/wallpapers/search?q=abc%20")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "abc ", srv.gateway.lastSearch)

	rec, body = srv.do(t, http.MethodGet, "/wallpapers/category/Nature")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "error", body["state"])
	assert.Equal(t, "Nature", srv.gateway.lastCategory)
}

func TestGetWallpaper(t *testing.T) {
	t.Parallel()

	srv := newTestServer(&fakeGateway{byID: map[string]model.Wallpaper{"w1": sunrise}})

	rec, body := srv.do(t, http.MethodGet, "/wallpapers/w1")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1001", body["post_id"])
	assert.Equal(t, []any{}, body["tags"])

	rec, _ = srv.do(t, http.MethodGet, "/wallpapers/missing")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTab(t *testing.T) {
	t.Parallel()

	srv := newTestServer(&fakeGateway{})

	_, body := srv.do(t, http.MethodGet, "/tab")
	assert.Equal(t, "featured", body["tab"])

	rec, body := srv.do(t, http.MethodPut, "/tab/all")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "all", body["tab"])
	assert.Equal(t, state.TabAll, srv.holder.SelectedTab())

	rec, _ = srv.do(t, http.MethodPut, "/tab/favorites")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, state.TabAll, srv.holder.SelectedTab())
}

func TestDownload(t *testing.T) {
	t.Parallel()

	srv := newTestServer(&fakeGateway{})
	srv.downloader.On("Download", mock.Anything, "w1").Return(entity.DownloadResult{
		FileName: "Sunrise.png",
		Location: "Komari Wallpapers/Sunrise.png",
		Size:     3,
		Type:     "image/png",
		Notice:   usecase.NoticeDownloadSaved,
	}, nil)
	srv.downloader.On("Download", mock.Anything, "w2").
		Return(entity.DownloadResult{Notice: "Download failed: HTTP 404"}, errors.New("HTTP 404"))
	srv.downloader.On("Download", mock.Anything, "w3").Return(entity.DownloadResult{}, database.ErrNotFound)

	rec, body := srv.do(t, http.MethodPost, "/wallpapers/w1/download")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, usecase.NoticeDownloadSaved, body["notice"])
	assert.Equal(t, "Sunrise.png", body["file_name"])

	rec, body = srv.do(t, http.MethodPost, "/wallpapers/w2/download")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, map[string]any{"message": "Download failed: HTTP 404", "success": false}, body)

	rec, _ = srv.do(t, http.MethodPost, "/wallpapers/w3/download")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSetWallpaper(t *testing.T) {
	t.Parallel()

	srv := newTestServer(&fakeGateway{})
	srv.applier.On("Apply", mock.Anything, "w1").Return(true)
	srv.applier.On("Apply", mock.Anything, "w2").Return(false)

	_, body := srv.do(t, http.MethodPost, "/wallpapers/w1/set")
	assert.Equal(t, map[string]any{"message": usecase.NoticeWallpaperSet, "success": true}, body)

	_, body = srv.do(t, http.MethodPost, "/wallpapers/w2/set")
	assert.Equal(t, map[string]any{"message": usecase.NoticeWallpaperFail, "success": false}, body)
}

func TestDiagnostics(t *testing.T) {
	t.Parallel()

	srv := newTestServer(&fakeGateway{probe: result.Success[int]{Data: 5}})

	_, body := srv.do(t, http.MethodGet, "/diagnostics/connection")
	assert.Equal(t, map[string]any{"state": "loading"}, body)

	rec, _ := srv.do(t, http.MethodPost, "/diagnostics/connection")
	assert.Equal(t, http.StatusAccepted, rec.Code)
	srv.holder.Wait()

	_, body = srv.do(t, http.MethodGet, "/diagnostics/connection")
	assert.Equal(t, map[string]any{"state": "success", "data": float64(5)}, body)
}

func TestTerminalHonoursContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got := terminal(ctx, make(chan result.Result[int]))
	assert.Equal(t, result.Failure[int]{Err: context.Canceled}, got)
}
