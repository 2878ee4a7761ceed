// Package nats provides a NATS-backed events publisher. Events are published
// as JSON on "<prefix>.<type>" subjects.
package nats

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"

	"recipebox/internal/events"
)

// Conn is the subset of *nats.Conn used by the publisher. It exists to allow
// mocking in tests.
type Conn interface {
	Publish(subj string, data []byte) error
	Drain() error
}

type publisher struct {
	nc     Conn
	prefix string
}

// Connect dials the NATS server and returns a publisher on top of the
// connection.
func Connect(url string, prefix string) (events.Publisher, error) {
	nc, err := nats.Connect(url, nats.Name("recipebox"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to nats: %w", err)
	}
	return NewPublisher(nc, prefix), nil
}

// NewPublisher creates a publisher over an existing connection.
func NewPublisher(nc Conn, prefix string) events.Publisher {
	if prefix == "" {
		prefix = "recipes.events"
	}
	return &publisher{nc: nc, prefix: prefix}
}

func (p *publisher) Publish(ctx context.Context, evt events.Event) error {
	data, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	subject := p.prefix + "." + string(evt.Type)
	if err := p.nc.Publish(subject, data); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", subject, err)
	}
	return nil
}

func (p *publisher) Close() error {
	return p.nc.Drain()
}
