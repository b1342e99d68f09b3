package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/twgdev/sigma-scheduler/internal/domain/entities"
)

// ChangeType mirrors the row-level operation that produced a change event
type ChangeType string

const (
	ChangeInsert ChangeType = "INSERT"
	ChangeUpdate ChangeType = "UPDATE"
	ChangeDelete ChangeType = "DELETE"
)

// ChangeEvent is the payload delivered to subscribers when a meeting row
// changes. Meeting is nil for deletes; MeetingID is always set.
type ChangeEvent struct {
	Type       ChangeType        `json:"type"`
	EventID    string            `json:"event_id"`
	MeetingID  string            `json:"meeting_id"`
	Meeting    *entities.Meeting `json:"meeting,omitempty"`
	OccurredAt time.Time         `json:"occurred_at"`
}

// Bus fans meeting change events out over Redis pub/sub, one channel per
// trade event.
type Bus struct {
	rdb    *redis.Client
	logger *zap.Logger
}

// NewBus creates a new change-event bus
func NewBus(rdb *redis.Client, logger *zap.Logger) *Bus {
	return &Bus{rdb: rdb, logger: logger}
}

func channelFor(eventID string) string {
	return fmt.Sprintf("meetings:changes:%s", eventID)
}

// Publish broadcasts a change event to every subscriber of its trade event
func (b *Bus) Publish(ctx context.Context, ev ChangeEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to encode change event: %w", err)
	}
	return b.rdb.Publish(ctx, channelFor(ev.EventID), payload).Err()
}

// Subscribe registers a callback for all change events of one trade event.
// The callback runs on the subscription's own goroutine; a broken connection
// is retried with exponential backoff until Unsubscribe is called.
func (b *Bus) Subscribe(eventID string, callback func(ChangeEvent)) (Subscription, error) {
	ctx, cancel := context.WithCancel(context.Background())
	pubsub := b.rdb.Subscribe(ctx, channelFor(eventID))

	// Fail fast if the initial SUBSCRIBE is rejected
	if _, err := pubsub.Receive(ctx); err != nil {
		cancel()
		_ = pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to %s: %w", channelFor(eventID), err)
	}

	sub := &redisSubscription{
		cancel: cancel,
		pubsub: pubsub,
	}

	go b.receive(ctx, eventID, pubsub, callback)

	return sub, nil
}

func (b *Bus) receive(ctx context.Context, eventID string, pubsub *redis.PubSub, callback func(ChangeEvent)) {
	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 0 // retry until unsubscribed

	for {
		msg, err := pubsub.ReceiveMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			wait := bo.NextBackOff()
			b.logger.Warn("realtime.receive_failed",
				zap.String("event_id", eventID),
				zap.Duration("retry_in", wait),
				zap.Error(err),
			)
			select {
			case <-time.After(wait):
				continue
			case <-ctx.Done():
				return
			}
		}
		bo.Reset()

		var ev ChangeEvent
		if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
			b.logger.Warn("realtime.bad_payload",
				zap.String("event_id", eventID),
				zap.Error(err),
			)
			continue
		}
		callback(ev)
	}
}

// Subscription is the handle returned to a subscriber. Unsubscribe must be
// called when the consuming view is torn down to avoid leaking a live
// registration; extra calls are no-ops.
type Subscription interface {
	Unsubscribe()
}

type redisSubscription struct {
	cancel context.CancelFunc
	pubsub *redis.PubSub
	once   sync.Once
}

// Unsubscribe tears down the registration and stops the receive goroutine
func (s *redisSubscription) Unsubscribe() {
	s.once.Do(func() {
		s.cancel()
		_ = s.pubsub.Close()
	})
}
