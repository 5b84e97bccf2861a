package shared

import (
	"context"

	"github.com/ThreeDotsLabs/watermill/message"
)

// EventBus is the messaging boundary the modules publish through. The
// concrete implementation lives in app/eventbus and speaks NATS
// JetStream via Watermill.
type EventBus interface {
	// Publish sends a message to the stream. The subject is carried in
	// the message metadata under the "subject" key.
	Publish(ctx context.Context, streamName string, msg *message.Message) error

	// Subscribe attaches a handler to a subject. Handler errors nack
	// the message for redelivery.
	Subscribe(ctx context.Context, streamName string, subject string, handler func(ctx context.Context, msg *message.Message) error) error

	// CreateStream ensures the JetStream stream exists and covers the
	// subject.
	CreateStream(ctx context.Context, streamName string, subject string) error

	Close() error
}
