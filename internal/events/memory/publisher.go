// Package memory provides an in-process events backend. It is the default
// backend and the one used in tests.
package memory

import (
	"context"
	"log/slog"
	"sync"

	"recipebox/internal/events"
)

// Publisher fans events out to in-process subscribers. Slow subscribers do
// not block publishing: an event is dropped for a subscriber whose channel
// is full.
type Publisher struct {
	mu     sync.Mutex
	subs   map[int]chan events.Event
	nextID int
	buffer int
	closed bool
}

// NewPublisher creates a memory publisher with the given per-subscriber
// channel buffer.
func NewPublisher(buffer int) *Publisher {
	if buffer <= 0 {
		buffer = 16
	}
	return &Publisher{
		subs:   make(map[int]chan events.Event),
		buffer: buffer,
	}
}

// Publish delivers the event to every subscriber.
func (p *Publisher) Publish(ctx context.Context, evt events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	for id, ch := range p.subs {
		select {
		case ch <- evt:
		default:
			slog.Warn("Dropping event for slow subscriber", "subscriber", id, "type", evt.Type)
		}
	}
	return nil
}

// Subscribe registers a new subscriber. The returned cancel function removes
// the subscription and closes its channel.
func (p *Publisher) Subscribe() (<-chan events.Event, func()) {
	p.mu.Lock()
	defer p.mu.Unlock()

	id := p.nextID
	p.nextID++
	ch := make(chan events.Event, p.buffer)
	p.subs[id] = ch

	cancel := func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		if sub, ok := p.subs[id]; ok {
			delete(p.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// Close removes all subscribers and closes their channels.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	for id, ch := range p.subs {
		delete(p.subs, id)
		close(ch)
	}
	return nil
}
