package events

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"startex/logx"
)

type SubscriberID string

type Subscriber struct {
	ID      SubscriberID
	Channel chan Event
}

// Bus fans events out to every subscriber. Publishing never blocks: a
// subscriber that stops draining its channel misses events instead of
// stalling the writer.
type Bus struct {
	subscribers map[SubscriberID]*Subscriber
	mu          sync.RWMutex
}

func NewBus() *Bus {
	return &Bus{
		subscribers: make(map[SubscriberID]*Subscriber),
	}
}

func (b *Bus) generateID() SubscriberID {
	id := uuid.Must(uuid.NewV7())
	return SubscriberID(id.String())
}

func (b *Bus) Subscribe() (SubscriberID, chan Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.generateID()

	ch := make(chan Event, 50) // Buffer for events
	subscriber := &Subscriber{
		ID:      id,
		Channel: ch,
	}

	b.subscribers[id] = subscriber

	logx.Debug("EVENTBUS", fmt.Sprintf("Subscribed | subscriber_id=%s | total_subscribers=%d", id, len(b.subscribers)))

	return id, ch
}

// Unsubscribe removes a subscription by ID
func (b *Bus) Unsubscribe(id SubscriberID) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	subscriber, exists := b.subscribers[id]
	if !exists {
		logx.Warn("EVENTBUS", fmt.Sprintf("Attempted to unsubscribe non-existent subscriber | subscriber_id=%s", id))
		return false
	}

	delete(b.subscribers, id)
	close(subscriber.Channel)

	logx.Debug("EVENTBUS", fmt.Sprintf("Unsubscribed | subscriber_id=%s | remaining_subscribers=%d", id, len(b.subscribers)))
	return true
}

// Publish publishes an event to all subscribers
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for id, subscriber := range b.subscribers {
		select {
		case subscriber.Channel <- event:
			// Event sent successfully
		default:
			// Channel is full, skip this subscriber
			logx.Warn("EVENTBUS", fmt.Sprintf("Subscriber channel full | subscriber_id=%s | event_type=%s", id, event.Type()))
		}
	}
}

// TotalSubscriptions returns the number of active subscriptions
func (b *Bus) TotalSubscriptions() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return len(b.subscribers)
}

// HasSubscriber checks if a subscriber with the given ID exists
func (b *Bus) HasSubscriber(id SubscriberID) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()

	_, exists := b.subscribers[id]
	return exists
}
