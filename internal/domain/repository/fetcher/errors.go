package fetcher

import (
	"errors"
	"fmt"
)

// ErrReadTimeout is returned when the image host stops sending mid-response.
var ErrReadTimeout = errors.New("read timed out")

// StatusError is returned when the image host answers with a non-2xx status.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d", e.Code)
}
