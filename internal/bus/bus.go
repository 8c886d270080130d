// Package bus is the panel's in-process notification channel. Completing a
// create/update/delete publishes an event; views that are currently open
// subscribe and refetch their own data. Delivery is best effort: subscribers
// that are not listening at publish time miss the event, there is no replay,
// and no ordering is guaranteed across topics.
package bus

import (
	"sync"

	"github.com/google/uuid"
)

// Topics published by the panel modules.
const (
	TopicCustomersChanged = "customers.changed"
	TopicInventoryChanged = "inventory.changed"
	TopicUsersChanged     = "users.changed"
	TopicSalesCreated     = "sales.created"
	TopicCartChanged      = "cart.changed"
)

// Event is one change notification.
type Event struct {
	ID     uuid.UUID
	Topic  string
	Action string // "create", "update", "delete"
	Key    string // entity key, e.g. a CI or product id
}

// Bus fans events out to current subscribers.
type Bus struct {
	mu   sync.RWMutex
	subs map[string][]chan Event
}

// New builds an empty Bus.
func New() *Bus {
	return &Bus{subs: make(map[string][]chan Event)}
}

// Subscribe registers interest in a topic. The returned channel is buffered;
// a subscriber that falls behind drops events rather than blocking the
// publisher. Call the cancel func when the view closes.
func (b *Bus) Subscribe(topic string) (<-chan Event, func()) {
	ch := make(chan Event, 16)

	b.mu.Lock()
	b.subs[topic] = append(b.subs[topic], ch)
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		subs := b.subs[topic]
		for i, c := range subs {
			if c == ch {
				b.subs[topic] = append(subs[:i], subs[i+1:]...)
				close(c)
				return
			}
		}
	}
	return ch, cancel
}

// Publish delivers the event to everyone currently subscribed to the topic.
func (b *Bus) Publish(topic, action, key string) {
	ev := Event{ID: uuid.New(), Topic: topic, Action: action, Key: key}

	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, ch := range b.subs[topic] {
		select {
		case ch <- ev:
		default:
			// Slow subscriber; drop rather than block the event loop.
		}
	}
}
