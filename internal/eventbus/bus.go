package eventbus

import (
	"context"
	"sync"

	"pkt.systems/pslog"
	"pkt.systems/tabdeck/schema"
)

// DefaultDepth is the per-subscriber channel depth.
const DefaultDepth = 256

// Bus fans session lifecycle events out to per-topic subscribers.
// Delivery is FIFO per subscriber and never blocks the publisher.
type Bus struct {
	mu    sync.Mutex
	subs  map[string]map[chan schema.SessionStateEvent]struct{}
	log   pslog.Logger
	depth int
}

// New constructs a Bus.
func New(logger pslog.Logger) *Bus {
	return NewWithDepth(logger, DefaultDepth)
}

// NewWithDepth constructs a Bus with a custom subscriber channel depth.
func NewWithDepth(logger pslog.Logger, depth int) *Bus {
	if logger == nil {
		logger = pslog.Ctx(context.Background())
	}
	if depth <= 0 {
		depth = DefaultDepth
	}
	return &Bus{
		subs:  make(map[string]map[chan schema.SessionStateEvent]struct{}),
		log:   logger,
		depth: depth,
	}
}

// Subscribe registers a subscriber on the topic and returns a channel plus a
// cancel func. Cancel removes the subscription and closes the channel.
func (b *Bus) Subscribe(topic string) (<-chan schema.SessionStateEvent, func()) {
	if b == nil {
		return nil, func() {}
	}
	ch := make(chan schema.SessionStateEvent, b.depth)
	b.mu.Lock()
	topicSubs := b.subs[topic]
	if topicSubs == nil {
		topicSubs = make(map[chan schema.SessionStateEvent]struct{})
		b.subs[topic] = topicSubs
	}
	topicSubs[ch] = struct{}{}
	count := len(topicSubs)
	b.mu.Unlock()
	if b.log != nil {
		b.log.With("topic", topic).Debug("eventbus subscribe", "subs", count)
	}
	return ch, func() {
		b.mu.Lock()
		if subs := b.subs[topic]; subs != nil {
			delete(subs, ch)
			if len(subs) == 0 {
				delete(b.subs, topic)
			}
		}
		b.mu.Unlock()
		close(ch)
		if b.log != nil {
			b.log.With("topic", topic).Debug("eventbus unsubscribe")
		}
	}
}

// Publish delivers the event to every subscriber of the topic. Subscribers
// with a full channel miss the event. Sends happen under the bus lock so an
// unsubscribing cancel cannot close a channel mid-send.
func (b *Bus) Publish(topic string, event schema.SessionStateEvent) {
	if b == nil {
		return
	}
	dropped := 0
	b.mu.Lock()
	for sub := range b.subs[topic] {
		select {
		case sub <- event:
		default:
			dropped++
		}
	}
	b.mu.Unlock()
	if dropped > 0 && b.log != nil {
		b.log.With("topic", topic).Warn("eventbus dropped", "session", event.SessionID, "count", dropped)
	}
}
