package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"myLocalMarket/domain"
	"myLocalMarket/pkg/logger"

	"github.com/cenkalti/backoff/v4"
	kafkago "github.com/segmentio/kafka-go"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// PointsPublisher emits PointsGranted events keyed by customer id, so all
// events for one customer land on the same partition in order.
type PointsPublisher struct {
	writer     messageWriter
	topic      string
	maxRetries uint64
	newBackOff func() backoff.BackOff
}

func NewPointsPublisher(brokers []string, topic string, maxRetries uint64) *PointsPublisher {
	return &PointsPublisher{
		writer: &kafkago.Writer{
			Addr:                   kafkago.TCP(brokers...),
			Balancer:               &kafkago.Hash{},
			RequiredAcks:           kafkago.RequireOne,
			AllowAutoTopicCreation: true,
			WriteTimeout:           5 * time.Second,
		},
		topic:      topic,
		maxRetries: maxRetries,
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 100 * time.Millisecond
			b.MaxElapsedTime = 5 * time.Second
			return b
		},
	}
}

func (p *PointsPublisher) PublishPointsGranted(ctx context.Context, event domain.PointsGranted) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal points event: %w", err)
	}

	msg := kafkago.Message{
		Topic: p.topic,
		Key:   []byte(strconv.FormatUint(uint64(event.CustomerID), 10)),
		Value: value,
		Time:  event.OccurredAt,
	}

	operation := func() error {
		return p.writer.WriteMessages(ctx, msg)
	}

	err = backoff.RetryNotify(
		operation,
		backoff.WithContext(backoff.WithMaxRetries(p.newBackOff(), p.maxRetries), ctx),
		func(err error, d time.Duration) {
			logger.Warn("Points event publish attempt failed", "event_id", event.EventID, "backoff", d, err)
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish points event after %d retries: %w", p.maxRetries, err)
	}

	return nil
}

func (p *PointsPublisher) Close() error {
	return p.writer.Close()
}
