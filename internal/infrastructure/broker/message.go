package broker

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const ackTimeout = 2 * time.Second

type noticeMessage struct {
	stream    string
	group     string
	id        string
	body      string
	createdAt time.Time
	redis     *redis.Client
}

func newNoticeMessage(r *Receiver, msg redis.XMessage, body string) *noticeMessage {
	return &noticeMessage{
		stream:    r.stream,
		group:     r.group,
		id:        msg.ID,
		body:      body,
		createdAt: parseCreatedAt(msg.Values["created_at"]),
		redis:     r.redis,
	}
}

func (m *noticeMessage) Body() string {
	return m.body
}

func (m *noticeMessage) CreatedAt() time.Time {
	return m.createdAt
}

func (m *noticeMessage) Ack() error {
	ctx, cancel := context.WithTimeout(context.Background(), ackTimeout)
	defer cancel()

	return m.redis.XAck(ctx, m.stream, m.group, m.id).Err()
}

// Nack leaves the entry in the group's pending list.
func (m *noticeMessage) Nack() error {
	return nil
}

// parseCreatedAt reads the publisher's unix-millis stamp. Entries written
// without one report the zero time.
func parseCreatedAt(v any) time.Time {
	s, ok := v.(string)
	if !ok {
		return time.Time{}
	}

	ms, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return time.Time{}
	}

	return time.UnixMilli(ms)
}
