package usecase

import (
	"context"
	"errors"
	"fmt"

	"komari/internal/domain/repository/broker"
	"komari/internal/domain/repository/fetcher"
	"komari/pkg/logger"
)

const (
	NoticeDownloadSaved = "Image saved to Photos! Check your gallery."
	NoticeWallpaperSet  = "Wallpaper set successfully!"
	NoticeWallpaperFail = "Failed to set wallpaper"
)

// DownloadFailedNotice renders the notice shown when a download fails.
func DownloadFailedNotice(err error) string {
	var statusErr *fetcher.StatusError
	if errors.As(err, &statusErr) {
		return fmt.Sprintf("Download failed: HTTP %d", statusErr.Code)
	}

	return "Download failed: " + err.Error()
}

// notify publishes a notice. Notices are transient, a failed publish is only
// logged.
func notify(ctx context.Context, publisher broker.Publisher, message string) {
	if err := publisher.Publish(ctx, message); err != nil {
		logger.Warn("failed to publish notice", "notice", message, "err", err)
	}
}
