package broker

import "time"

// Message is one notice read from the stream.
type Message interface {
	Body() string
	CreatedAt() time.Time
	Ack() error
	Nack() error
}
