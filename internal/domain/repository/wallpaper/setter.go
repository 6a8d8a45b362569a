package wallpaper

import (
	"context"
	"image"
)

// Setter hands a decoded bitmap to the device wallpaper facility.
type Setter interface {
	SetBitmap(ctx context.Context, img image.Image) error
}
