package minio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"komari/internal/domain/entity"
	"komari/pkg/logger"
	"komari/pkg/utils"
)

const chunkSize = 5 * 1024 * 1024

var (
	ErrNotImage  = errors.New("not an image")
	ErrEmptyFile = errors.New("read error: empty file")
)

type Uploader struct {
	minioClient *minio.Client
	cfg         *UploaderConfig
}

func NewUploader(minioClient *minio.Client, config *UploaderConfig) *Uploader {
	return &Uploader{
		minioClient: minioClient,
		cfg:         config,
	}
}

// UploadFile streams body into the picture folder as objectName. The body is
// written in chunks that are composed into the final object; the first chunk
// must sniff as an image.
func (u *Uploader) UploadFile(ctx context.Context, body io.Reader, fileSize int64,
	objectName string,
) (entity.UploadResult, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(u.cfg.Timeout)*time.Millisecond)
	defer cancel()

	bucketName := u.cfg.Bucket
	var chunkNames []string

	detectedMIME, totalBytes, err := u.processFileChunks(ctx, body, bucketName, &chunkNames)
	defer u.cleanupChunks(context.WithoutCancel(ctx), bucketName, &chunkNames)

	if err != nil {
		return entity.UploadResult{}, err
	}

	if len(chunkNames) == 0 {
		return entity.UploadResult{}, ErrEmptyFile
	}

	if err := u.validateFileSize(totalBytes, fileSize); err != nil {
		return entity.UploadResult{}, err
	}

	finalName := path.Join(u.cfg.Folder, objectName)
	if err := u.composeChunks(ctx, bucketName, chunkNames, finalName); err != nil {
		return entity.UploadResult{}, err
	}

	logger.Info("picture stored", "bucket", bucketName, "object", finalName, "size", totalBytes)

	return entity.UploadResult{
		Size:     totalBytes,
		Type:     detectedMIME,
		Location: finalName,
		Bucket:   bucketName,
	}, nil
}

func (u *Uploader) processFileChunks(ctx context.Context, body io.Reader, bucketName string,
	chunkNames *[]string,
) (string, int64, error) {
	var detectedMIME string
	var totalBytes int64
	buf := make([]byte, chunkSize)
	chunkIndex := 0

	for {
		n, err := io.ReadFull(body, buf)
		if n > 0 { //nolint
			chunk := buf[:n]

			if chunkIndex == 0 {
				detectedMIME = mimetype.Detect(chunk).String()
				if !utils.IsImageMimeType(detectedMIME) {
					return "", 0, fmt.Errorf("%w: detected %s", ErrNotImage, detectedMIME)
				}
			}

			chunkName := fmt.Sprintf("chunk-%s-%d", uuid.New().String(), chunkIndex)
			*chunkNames = append(*chunkNames, chunkName)

			_, err := u.minioClient.PutObject(ctx, bucketName, chunkName, bytes.NewReader(chunk), int64(len(chunk)),
				minio.PutObjectOptions{
					ContentType: detectedMIME,
				})
			if err != nil {
				logger.Error("failed to upload chunk", "chunk", chunkName, "err", err)

				return "", 0, fmt.Errorf("chunk upload failed: %w", err)
			}

			totalBytes += int64(len(chunk))
			chunkIndex++
		}
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			break
		}
		if err != nil {
			logger.Error("read error", "err", err.Error())

			return "", 0, fmt.Errorf("read error: %w", err)
		}
	}

	return detectedMIME, totalBytes, nil
}

func (u *Uploader) composeChunks(ctx context.Context, bucketName string, chunkNames []string, finalName string) error {
	sources := make([]minio.CopySrcOptions, len(chunkNames))
	for i, name := range chunkNames {
		sources[i] = minio.CopySrcOptions{Bucket: bucketName, Object: name}
	}

	dst := minio.CopyDestOptions{Bucket: bucketName, Object: finalName}
	_, err := u.minioClient.ComposeObject(ctx, dst, sources...)
	if err != nil {
		logger.Error("failed to compose chunks", "object", finalName, "err", err)

		return fmt.Errorf("compose error: %w", err)
	}

	return nil
}

func (u *Uploader) validateFileSize(totalBytes, expectedSize int64) error {
	if totalBytes != expectedSize && expectedSize != -1 {
		return fmt.Errorf("file size mismatch: read %d bytes, expected %d", totalBytes, expectedSize)
	}

	return nil
}

func (u *Uploader) cleanupChunks(ctx context.Context, bucketName string, chunkNames *[]string) {
	for _, name := range *chunkNames {
		err := u.minioClient.RemoveObject(ctx, bucketName, name, minio.RemoveObjectOptions{})
		if err != nil {
			logger.Warn("failed to cleanup chunk", "chunk", name, "err", err)
		}
	}
}
