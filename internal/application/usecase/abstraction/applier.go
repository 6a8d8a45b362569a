package abstraction

import "context"

// Applier sets a wallpaper on the device. It reports only success or failure;
// the user-facing notice is published on the notice stream.
type Applier interface {
	Apply(ctx context.Context, id string) bool
}
