package grpcclient

import "context"

type IClient interface {
	// Check returns true when the remote service reports SERVING.
	Check(ctx context.Context, service string) (bool, error)
	Close() error
}
