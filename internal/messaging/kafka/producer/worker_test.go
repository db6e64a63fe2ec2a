package producer_test

import (
	"context"
	"errors"
	"testing"

	"go-geoattend/internal/messaging/kafka"
	outboxMock "go-geoattend/internal/messaging/kafka/mock"
	"go-geoattend/internal/messaging/kafka/producer"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type fakeWriter struct {
	messages []kafkago.Message
	failFor  map[string]error
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	for _, m := range msgs {
		if err, ok := w.failFor[string(m.Key)]; ok {
			return err
		}
		w.messages = append(w.messages, m)
	}
	return nil
}

func event(id, aggregateID string) kafka.OutboxEvent {
	return kafka.OutboxEvent{
		ID:            id,
		RequestID:     "req-" + id,
		AggregateType: "attendance",
		AggregateID:   aggregateID,
		EventType:     "attendance.login_recorded",
		Topic:         "hr.attendance.recorded.v1",
		Payload:       []byte(`{}`),
		Status:        kafka.OutboxStatusPending,
	}
}

func header(m kafkago.Message, key string) string {
	for _, h := range m.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func TestRelay_ProcessPending(t *testing.T) {
	ctx := context.Background()

	t.Run("publishes and marks sent", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := outboxMock.NewMockOutboxRepository(ctrl)
		writer := &fakeWriter{}

		repo.EXPECT().ListPending(ctx, 50, gomock.Any()).
			Return([]kafka.OutboxEvent{event("e1", "101"), event("e2", "102")}, nil)
		repo.EXPECT().MarkSent(ctx, "e1", gomock.Any()).Return(nil)
		repo.EXPECT().MarkSent(ctx, "e2", gomock.Any()).Return(nil)

		sent, err := producer.NewRelay(repo, writer, zap.NewNop()).ProcessPending(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, sent)
		require.Len(t, writer.messages, 2)
		assert.Equal(t, "101", string(writer.messages[0].Key))
		assert.Equal(t, "hr.attendance.recorded.v1", writer.messages[0].Topic)
		assert.Equal(t, "attendance.login_recorded", header(writer.messages[0], "event_type"))
		assert.Equal(t, "req-e1", header(writer.messages[0], "request_id"))
	})

	t.Run("publish failure marks failed and continues", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := outboxMock.NewMockOutboxRepository(ctrl)
		writer := &fakeWriter{failFor: map[string]error{"101": errors.New("leader not available")}}

		failing := event("e1", "101")
		repo.EXPECT().ListPending(ctx, 50, gomock.Any()).
			Return([]kafka.OutboxEvent{failing, event("e2", "102")}, nil)
		repo.EXPECT().MarkFailed(ctx, failing, "leader not available", gomock.Any()).Return(nil)
		repo.EXPECT().MarkSent(ctx, "e2", gomock.Any()).Return(nil)

		sent, err := producer.NewRelay(repo, writer, zap.NewNop()).ProcessPending(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, sent)
	})

	t.Run("list error is returned", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := outboxMock.NewMockOutboxRepository(ctrl)

		repo.EXPECT().ListPending(ctx, 50, gomock.Any()).Return(nil, errors.New("db down"))

		_, err := producer.NewRelay(repo, &fakeWriter{}, nil).ProcessPending(ctx)
		assert.Error(t, err)
	})

	t.Run("nothing pending", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := outboxMock.NewMockOutboxRepository(ctrl)

		repo.EXPECT().ListPending(ctx, 50, gomock.Any()).Return(nil, nil)

		sent, err := producer.NewRelay(repo, &fakeWriter{}, zap.NewNop()).ProcessPending(ctx)
		require.NoError(t, err)
		assert.Zero(t, sent)
	})
}

func TestRelay_RunStopsOnCancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := outboxMock.NewMockOutboxRepository(ctrl)
	repo.EXPECT().ListPending(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		producer.NewRelay(repo, &fakeWriter{}, zap.NewNop()).Run(ctx, 0)
		close(done)
	}()
	cancel()
	<-done
}
