package notifycenter

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/primind-reminder-engine/internal/domain"
)

// EventEnvelope is the pub/sub message format for open application views.
type EventEnvelope struct {
	Type domain.EventType `json:"type"`
	Data json.RawMessage  `json:"data"`
}

func (c *Center) Broadcast(ctx context.Context, userID string, event domain.Event) error {
	if event == nil {
		return ErrInvalidEvent
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidEvent, err)
	}

	msg, err := json.Marshal(EventEnvelope{Type: event.Type(), Data: data})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidEvent, err)
	}

	return c.client.Publish(ctx, c.eventsChannel(userID), msg).Err()
}

type Subscription struct {
	pubsub *redis.PubSub
	events chan EventEnvelope
}

// Subscribe returns once redis has confirmed the subscription.
func (c *Center) Subscribe(ctx context.Context, userID string) (*Subscription, error) {
	pubsub := c.client.Subscribe(ctx, c.eventsChannel(userID))
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to events: %w", err)
	}

	sub := &Subscription{
		pubsub: pubsub,
		events: make(chan EventEnvelope, 16),
	}
	go sub.forward(ctx)

	return sub, nil
}

func (s *Subscription) Events() <-chan EventEnvelope {
	return s.events
}

func (s *Subscription) Close() error {
	return s.pubsub.Close()
}

func (s *Subscription) forward(ctx context.Context) {
	defer close(s.events)

	for msg := range s.pubsub.Channel() {
		var env EventEnvelope
		if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
			slog.WarnContext(ctx, "dropping malformed event",
				slog.String("channel", msg.Channel),
				slog.String("error", err.Error()),
			)
			continue
		}

		select {
		case s.events <- env:
		case <-ctx.Done():
			return
		}
	}
}
