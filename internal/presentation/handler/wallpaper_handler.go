package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"komari/internal/application/state"
	"komari/internal/application/usecase/abstraction"
	"komari/internal/domain/dto"
	"komari/internal/domain/model"
	"komari/internal/domain/repository/database"
	"komari/internal/domain/result"
	"komari/internal/presentation"
)

type WallpaperHandler struct {
	holder  *state.Holder
	gateway abstraction.Gateway
}

func NewWallpaperHandler(holder *state.Holder, gateway abstraction.Gateway) *WallpaperHandler {
	return &WallpaperHandler{
		holder:  holder,
		gateway: gateway,
	}
}

// HandleFeatured handles GET /wallpapers/featured requests.
func (h *WallpaperHandler) HandleFeatured(c echo.Context) error {
	return c.JSON(http.StatusOK, envelope(h.holder.Featured().Value(), wallpaperList))
}

// HandleAll handles GET /wallpapers requests.
func (h *WallpaperHandler) HandleAll(c echo.Context) error {
	return c.JSON(http.StatusOK, envelope(h.holder.All().Value(), wallpaperList))
}

// HandleRefresh handles POST /wallpapers/refresh requests.
func (h *WallpaperHandler) HandleRefresh(c echo.Context) error {
	h.holder.Refresh()

	return c.NoContent(http.StatusAccepted)
}

// HandleSearch handles GET /wallpapers/search?q= requests.
func (h *WallpaperHandler) HandleSearch(c echo.Context) error {
	q := c.QueryParam(presentation.QueryParam)
	if strings.TrimSpace(q) == "" {
		c.Response().Header().Set(presentation.ReasonTag, "missing search query")

		return c.NoContent(http.StatusBadRequest)
	}

	ctx := c.Request().Context()

	return respond(c, terminal(ctx, h.gateway.Search(ctx, q)))
}

// HandleCategory handles GET /wallpapers/category/:category requests.
func (h *WallpaperHandler) HandleCategory(c echo.Context) error {
	category := c.Param(presentation.CategoryParam)
	if category == "" {
		c.Response().Header().Set(presentation.ReasonTag, "missing category")

		return c.NoContent(http.StatusBadRequest)
	}

	ctx := c.Request().Context()

	return respond(c, terminal(ctx, h.gateway.Category(ctx, category)))
}

// HandleGet handles GET /wallpapers/:id requests.
func (h *WallpaperHandler) HandleGet(c echo.Context) error {
	w, err := h.gateway.ByID(c.Request().Context(), c.Param(presentation.IDParam))
	if err != nil {
		c.Response().Header().Set(presentation.ReasonTag, err.Error())

		if errors.Is(err, database.ErrNotFound) {
			return c.NoContent(http.StatusNotFound)
		}

		return c.NoContent(http.StatusServiceUnavailable)
	}

	return c.JSON(http.StatusOK, descriptor(*w))
}

func respond(c echo.Context, r result.Result[[]model.Wallpaper]) error {
	status := result.Match(r,
		func() int { return http.StatusOK },
		func([]model.Wallpaper) int { return http.StatusOK },
		func(error) int { return http.StatusServiceUnavailable },
	)

	return c.JSON(status, envelope(r, wallpaperList))
}

type TabHandler struct {
	holder *state.Holder
}

func NewTabHandler(holder *state.Holder) *TabHandler {
	return &TabHandler{holder: holder}
}

// HandleGet handles GET /tab requests.
func (h *TabHandler) HandleGet(c echo.Context) error {
	return c.JSON(http.StatusOK, dto.TabState{Tab: h.holder.SelectedTab().String()})
}

// HandleSelect handles PUT /tab/:tab requests.
func (h *TabHandler) HandleSelect(c echo.Context) error {
	tab, err := state.ParseTab(c.Param(presentation.TabParam))
	if err != nil {
		c.Response().Header().Set(presentation.ReasonTag, err.Error())

		return c.NoContent(http.StatusBadRequest)
	}

	h.holder.SelectTab(tab)

	return c.JSON(http.StatusOK, dto.TabState{Tab: tab.String()})
}
