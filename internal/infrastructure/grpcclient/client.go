package grpcclient

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// Client asks a komari server for the health of its catalog connection.
type Client struct {
	HealthService healthpb.HealthClient
	config        Config
	conn          *grpc.ClientConn
}

func New(cfg Config) (*Client, error) {
	conn, err := grpc.NewClient(cfg.Endpoint, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, err
	}

	return &Client{
		HealthService: healthpb.NewHealthClient(conn),
		config:        cfg,
		conn:          conn,
	}, nil
}

func (c *Client) Check(ctx context.Context, service string) (bool, error) {
	if c.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(c.config.Timeout)*time.Millisecond)
		defer cancel()
	}

	resp, err := c.HealthService.Check(ctx, &healthpb.HealthCheckRequest{Service: service})
	if err != nil {
		return false, err
	}

	return resp.GetStatus() == healthpb.HealthCheckResponse_SERVING, nil
}

func (c *Client) Close() error {
	return c.conn.Close()
}
