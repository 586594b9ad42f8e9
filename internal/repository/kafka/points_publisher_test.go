package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"myLocalMarket/domain"

	"github.com/cenkalti/backoff/v4"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	failures int
	calls    int
	written  []kafkago.Message
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	w.calls++
	if w.calls <= w.failures {
		return errors.New("leader not available")
	}
	w.written = append(w.written, msgs...)
	return nil
}

func (w *fakeWriter) Close() error { return nil }

func newTestPublisher(w *fakeWriter, maxRetries uint64) *PointsPublisher {
	return &PointsPublisher{
		writer:     w,
		topic:      "customer.points.granted",
		maxRetries: maxRetries,
		newBackOff: func() backoff.BackOff {
			return backoff.NewConstantBackOff(time.Millisecond)
		},
	}
}

func sampleEvent() domain.PointsGranted {
	return domain.PointsGranted{
		EventID:        "evt-1",
		CustomerID:     42,
		Action:         domain.ActionLoginBonus,
		Amount:         20,
		PreviousPoints: 40,
		Points:         60,
		Tiers:          []string{"Iron", "Silver"},
		NewTiers:       []string{"Silver"},
		Title:          "Intermediate",
		OccurredAt:     time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestPublishPointsGranted(t *testing.T) {
	w := &fakeWriter{}
	pub := newTestPublisher(w, 3)

	require.NoError(t, pub.PublishPointsGranted(context.Background(), sampleEvent()))
	require.Len(t, w.written, 1)

	msg := w.written[0]
	assert.Equal(t, "customer.points.granted", msg.Topic)
	assert.Equal(t, "42", string(msg.Key))

	var decoded domain.PointsGranted
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, sampleEvent(), decoded)
}

func TestPublishPointsGranted_RetriesThenSucceeds(t *testing.T) {
	w := &fakeWriter{failures: 2}
	pub := newTestPublisher(w, 3)

	require.NoError(t, pub.PublishPointsGranted(context.Background(), sampleEvent()))
	assert.Equal(t, 3, w.calls)
}

func TestPublishPointsGranted_GivesUp(t *testing.T) {
	w := &fakeWriter{failures: 10}
	pub := newTestPublisher(w, 2)

	err := pub.PublishPointsGranted(context.Background(), sampleEvent())
	assert.Error(t, err)
	assert.Equal(t, 3, w.calls)
	assert.Empty(t, w.written)
}
