package entity

import "io"

type RemoteImage struct {
	Body        io.ReadCloser
	Size        int64
	ContentType string
}
