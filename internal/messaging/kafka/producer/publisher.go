package producer

import (
	"context"

	"go-geoattend/internal/messaging/kafka"

	kafkago "github.com/segmentio/kafka-go"
)

// MessageWriter is the part of *kafkago.Writer the relay needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// toMessage keys a row by its aggregate so one employee's events land on
// one partition in outbox order.
func toMessage(event kafka.OutboxEvent) kafkago.Message {
	headers := make([]kafkago.Header, 0, 4)
	for _, h := range [][2]string{
		{"event_type", event.EventType},
		{"aggregate_type", event.AggregateType},
		{"outbox_id", event.ID},
		{"request_id", event.RequestID},
	} {
		if h[1] == "" {
			continue
		}
		headers = append(headers, kafkago.Header{Key: h[0], Value: []byte(h[1])})
	}

	return kafkago.Message{
		Topic:   event.Topic,
		Key:     []byte(event.AggregateID),
		Value:   event.Payload,
		Headers: headers,
		Time:    event.CreatedAt,
	}
}

func publishEvent(ctx context.Context, writer MessageWriter, event kafka.OutboxEvent) error {
	return writer.WriteMessages(ctx, toMessage(event))
}
