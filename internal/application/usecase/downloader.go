package usecase

import (
	"context"
	"fmt"

	"komari/internal/domain/entity"
	"komari/internal/domain/repository/broker"
	"komari/internal/domain/repository/database"
	"komari/internal/domain/repository/fetcher"
	"komari/internal/domain/repository/minio"
	"komari/pkg/logger"
	"komari/pkg/utils"
)

type Downloader struct {
	publisher     broker.Publisher
	retriever     database.Retriever
	fetcher       fetcher.Fetcher
	minioUploader minio.Uploader
}

func NewDownloader(publisher broker.Publisher, retriever database.Retriever, fetcher fetcher.Fetcher,
	minioUploader minio.Uploader,
) *Downloader {
	return &Downloader{
		publisher:     publisher,
		retriever:     retriever,
		fetcher:       fetcher,
		minioUploader: minioUploader,
	}
}

// Download saves the full-size image of wallpaper id to the picture store.
// Once the wallpaper is found, every outcome is also published as a notice.
func (d *Downloader) Download(ctx context.Context, id string) (entity.DownloadResult, error) {
	w, err := d.retriever.GetByID(ctx, id)
	if err != nil {
		return entity.DownloadResult{}, err
	}

	ext := utils.ImageExtension(w.ImageURL)
	fileName := fmt.Sprintf("%s.%s", utils.WallpaperFileName(w.Title, w.PostID), ext)

	remote, err := d.fetcher.Fetch(ctx, w.ImageURL)
	if err != nil {
		return d.fail(ctx, id, err)
	}
	defer remote.Body.Close()

	stored, err := d.minioUploader.UploadFile(ctx, remote.Body, remote.Size, fileName)
	if err != nil {
		return d.fail(ctx, id, err)
	}

	logger.Info("wallpaper downloaded", "id", id, "object", stored.Location, "size", stored.Size)
	notify(ctx, d.publisher, NoticeDownloadSaved)

	return entity.DownloadResult{
		FileName: fileName,
		Location: stored.Location,
		Size:     stored.Size,
		Type:     utils.ImageMimeType(ext),
		Notice:   NoticeDownloadSaved,
	}, nil
}

func (d *Downloader) fail(ctx context.Context, id string, err error) (entity.DownloadResult, error) {
	notice := DownloadFailedNotice(err)
	logger.Error("wallpaper download failed", "id", id, "err", err)
	notify(ctx, d.publisher, notice)

	return entity.DownloadResult{Notice: notice}, err
}
