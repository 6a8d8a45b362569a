package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"komari/internal/application/usecase"
	"komari/internal/application/usecase/abstraction"
	"komari/internal/domain/dto"
	"komari/internal/domain/repository/database"
	"komari/internal/presentation"
)

type DownloadHandler struct {
	downloader abstraction.Downloader
}

func NewDownloadHandler(downloader abstraction.Downloader) *DownloadHandler {
	return &DownloadHandler{downloader: downloader}
}

// Handle handles POST /wallpapers/:id/download requests.
func (h *DownloadHandler) Handle(c echo.Context) error {
	res, err := h.downloader.Download(c.Request().Context(), c.Param(presentation.IDParam))
	if err != nil {
		c.Response().Header().Set(presentation.ReasonTag, err.Error())

		if errors.Is(err, database.ErrNotFound) {
			return c.NoContent(http.StatusNotFound)
		}

		return c.JSON(http.StatusBadGateway, dto.Notice{Message: res.Notice, Success: false})
	}

	return c.JSON(http.StatusOK, res)
}

type SetHandler struct {
	applier abstraction.Applier
}

func NewSetHandler(applier abstraction.Applier) *SetHandler {
	return &SetHandler{applier: applier}
}

// Handle handles POST /wallpapers/:id/set requests.
func (h *SetHandler) Handle(c echo.Context) error {
	if h.applier.Apply(c.Request().Context(), c.Param(presentation.IDParam)) {
		return c.JSON(http.StatusOK, dto.Notice{Message: usecase.NoticeWallpaperSet, Success: true})
	}

	return c.JSON(http.StatusOK, dto.Notice{Message: usecase.NoticeWallpaperFail, Success: false})
}
