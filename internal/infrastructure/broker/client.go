package broker

import (
	"context"
	"strings"

	"github.com/redis/go-redis/v9"

	"komari/pkg/logger"
)

type Client struct {
	redis  *redis.Client
	stream string
	group  string
}

func NewClient(cfg Config) (*Client, error) {
	opt, err := redis.ParseURL(cfg.URI)
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(opt)
	ctx := context.Background()

	err = rdb.XGroupCreateMkStream(ctx, cfg.StreamName, cfg.GroupName, "$").Err()
	if err != nil && !isBusyGroup(err) {
		_ = rdb.Close()

		return nil, err
	}

	logger.Info("connected to notice stream", "stream", cfg.StreamName, "group", cfg.GroupName)

	return &Client{
		redis:  rdb,
		stream: cfg.StreamName,
		group:  cfg.GroupName,
	}, nil
}

func (c *Client) Close() error {
	return c.redis.Close()
}

func isBusyGroup(err error) bool {
	return err != nil && strings.HasPrefix(err.Error(), "BUSYGROUP")
}
