package minio

import (
	"context"
	"io"

	"komari/internal/domain/entity"
)

// Uploader stores an image stream in the picture store under objectName.
// fileSize may be -1 when the length is unknown.
type Uploader interface {
	UploadFile(ctx context.Context, body io.Reader, fileSize int64, objectName string) (entity.UploadResult, error)
}
