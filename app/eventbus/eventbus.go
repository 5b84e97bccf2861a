package eventbus

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	nc "github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/ladderleague/ladder-bot/app/shared"
	"github.com/ladderleague/ladder-bot/app/shared/attr"
)

// eventBus implements shared.EventBus over NATS JetStream with
// Watermill publisher/subscriber plumbing.
type eventBus struct {
	publisher      message.Publisher
	subscriber     message.Subscriber
	js             jetstream.JetStream
	natsConn       *nc.Conn
	logger         *slog.Logger
	createdStreams map[string]bool
	streamMutex    sync.Mutex
}

// NewEventBus connects to NATS and returns an EventBus backed by
// JetStream.
func NewEventBus(ctx context.Context, natsURL string, logger *slog.Logger) (shared.EventBus, error) {
	natsConn, err := nc.Connect(natsURL)
	if err != nil {
		logger.ErrorContext(ctx, "failed to connect to NATS", attr.Error(err))
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(natsConn)
	if err != nil {
		natsConn.Close()
		logger.ErrorContext(ctx, "failed to initialize JetStream", attr.Error(err))
		return nil, fmt.Errorf("failed to initialize JetStream: %w", err)
	}

	watermillLogger := watermill.NewSlogLogger(logger)
	marshaller := &nats.NATSMarshaler{}

	publisher, err := nats.NewPublisher(
		nats.PublisherConfig{
			URL:       natsURL,
			Marshaler: marshaller,
			NatsOptions: []nc.Option{
				nc.RetryOnFailedConnect(true),
			},
		},
		watermillLogger,
	)
	if err != nil {
		natsConn.Close()
		logger.ErrorContext(ctx, "failed to create Watermill publisher", attr.Error(err))
		return nil, fmt.Errorf("failed to create Watermill publisher: %w", err)
	}

	subscriber, err := nats.NewSubscriber(
		nats.SubscriberConfig{
			URL:         natsURL,
			Unmarshaler: marshaller,
			NatsOptions: []nc.Option{
				nc.RetryOnFailedConnect(true),
			},
		},
		watermillLogger,
	)
	if err != nil {
		natsConn.Close()
		publisher.Close()
		logger.ErrorContext(ctx, "failed to create Watermill subscriber", attr.Error(err))
		return nil, fmt.Errorf("failed to create Watermill subscriber: %w", err)
	}

	return &eventBus{
		publisher:      publisher,
		subscriber:     subscriber,
		js:             js,
		natsConn:       natsConn,
		logger:         logger,
		createdStreams: make(map[string]bool),
	}, nil
}

// Publish sends the message to the subject carried in its metadata.
func (eb *eventBus) Publish(ctx context.Context, streamName string, msg *message.Message) error {
	if msg.UUID == "" {
		msg.UUID = watermill.NewUUID()
	}

	subject := msg.Metadata.Get("subject")
	if subject == "" {
		return fmt.Errorf("message does not have a subject set in metadata")
	}

	eb.logger.DebugContext(ctx, "publishing message",
		slog.String("stream_name", streamName),
		slog.String("subject", subject),
	)

	ack, err := eb.js.Publish(ctx, subject, msg.Payload)
	if err != nil {
		eb.logger.ErrorContext(ctx, "failed to publish message",
			slog.String("subject", subject),
			slog.String("stream_name", streamName),
			attr.Error(err),
		)
		return fmt.Errorf("failed to publish message to JetStream: %w", err)
	}

	eb.logger.InfoContext(ctx, "message published",
		slog.String("stream_name", streamName),
		slog.String("subject", subject),
		slog.Uint64("sequence", ack.Sequence),
	)

	return nil
}

func (eb *eventBus) Subscribe(ctx context.Context, streamName string, subject string, handler func(ctx context.Context, msg *message.Message) error) error {
	messages, err := eb.subscriber.Subscribe(ctx, subject)
	if err != nil {
		return fmt.Errorf("failed to subscribe to subject %s: %w", subject, err)
	}

	eb.logger.InfoContext(ctx, "subscription started", slog.String("subject", subject))

	go func() {
		for msg := range messages {
			if err := handler(ctx, msg); err != nil {
				eb.logger.ErrorContext(ctx, "handler error", slog.String("subject", subject), attr.Error(err))
				msg.Nack()
				continue
			}
			msg.Ack()
		}
	}()

	return nil
}

// CreateStream ensures the stream exists and includes the subject.
// Safe to call repeatedly; creation is tracked per process.
func (eb *eventBus) CreateStream(ctx context.Context, streamName string, subject string) error {
	eb.streamMutex.Lock()
	defer eb.streamMutex.Unlock()

	if eb.createdStreams[streamName+"/"+subject] {
		return nil
	}

	stream, err := eb.js.Stream(ctx, streamName)
	if err != nil && err != jetstream.ErrStreamNotFound {
		return fmt.Errorf("failed to check if stream exists: %w", err)
	}

	if err == jetstream.ErrStreamNotFound {
		_, err = eb.js.CreateStream(ctx, jetstream.StreamConfig{
			Name:     streamName,
			Subjects: []string{subject},
		})
		if err != nil {
			return fmt.Errorf("failed to create stream: %w", err)
		}
		eb.logger.InfoContext(ctx, "stream created",
			slog.String("stream_name", streamName), slog.String("subject", subject))
	} else {
		streamInfo, err := stream.Info(ctx)
		if err != nil {
			return fmt.Errorf("failed to get stream info: %w", err)
		}

		found := false
		for _, existing := range streamInfo.Config.Subjects {
			if existing == subject {
				found = true
				break
			}
		}

		if !found {
			streamInfo.Config.Subjects = append(streamInfo.Config.Subjects, subject)
			_, err = eb.js.UpdateStream(ctx, streamInfo.Config)
			if err != nil {
				return fmt.Errorf("failed to update stream with new subject: %w", err)
			}
			eb.logger.InfoContext(ctx, "stream updated with new subject",
				slog.String("stream_name", streamName), slog.String("subject", subject))
		}
	}

	// JetStream stream creation is async; confirm before first publish.
	retries := 5
	retryInterval := 100 * time.Millisecond
	for i := 0; i < retries; i++ {
		_, err = eb.js.Stream(ctx, streamName)
		if err == nil {
			break
		}
		if err != jetstream.ErrStreamNotFound {
			return fmt.Errorf("failed to check if stream exists: %w", err)
		}
		time.Sleep(retryInterval)
	}
	if err != nil {
		return fmt.Errorf("failed to confirm stream creation after retries: %w", err)
	}

	eb.createdStreams[streamName+"/"+subject] = true
	return nil
}

// Close releases Watermill and NATS resources.
func (eb *eventBus) Close() error {
	if eb.publisher != nil {
		if err := eb.publisher.Close(); err != nil {
			eb.logger.Error("error closing publisher", attr.Error(err))
		}
	}
	if eb.subscriber != nil {
		if err := eb.subscriber.Close(); err != nil {
			eb.logger.Error("error closing subscriber", attr.Error(err))
		}
	}
	if eb.natsConn != nil {
		eb.natsConn.Close()
	}
	return nil
}
