package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"komari/internal/presentation"
)

type Handlers struct {
	Wallpaper   *WallpaperHandler
	Tab         *TabHandler
	Download    *DownloadHandler
	Set         *SetHandler
	Diagnostics *DiagnosticsHandler
}

// Register mounts every route on e. diagnoseAuth guards the diagnostics routes.
func Register(e *echo.Echo, h Handlers, diagnoseAuth echo.MiddlewareFunc) {
	id := fmt.Sprintf(":%s", presentation.IDParam)

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})

	e.GET("/wallpapers", h.Wallpaper.HandleAll)
	e.GET("/wallpapers/featured", h.Wallpaper.HandleFeatured)
	e.GET("/wallpapers/search", h.Wallpaper.HandleSearch)
	e.GET(fmt.Sprintf("/wallpapers/category/:%s", presentation.CategoryParam), h.Wallpaper.HandleCategory)
	e.POST("/wallpapers/refresh", h.Wallpaper.HandleRefresh)
	e.GET("/wallpapers/"+id, h.Wallpaper.HandleGet)
	e.POST("/wallpapers/"+id+"/download", h.Download.Handle)
	e.POST("/wallpapers/"+id+"/set", h.Set.Handle)

	e.GET("/tab", h.Tab.HandleGet)
	e.PUT(fmt.Sprintf("/tab/:%s", presentation.TabParam), h.Tab.HandleSelect)

	e.POST("/diagnostics/connection", h.Diagnostics.HandleTest, diagnoseAuth)
	e.GET("/diagnostics/connection", h.Diagnostics.HandleStatus, diagnoseAuth)
}
