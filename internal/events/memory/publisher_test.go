package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipebox/internal/events"
)

func TestPublisherFanOut(t *testing.T) {
	p := NewPublisher(4)
	defer p.Close()

	ch1, cancel1 := p.Subscribe()
	ch2, cancel2 := p.Subscribe()
	defer cancel1()
	defer cancel2()

	ctx := context.Background()
	require.NoError(t, p.Publish(ctx, events.Event{Type: events.TypeCreated, RecipeID: "r1"}))
	require.NoError(t, p.Publish(ctx, events.Event{Type: events.TypeLiked, RecipeID: "r1"}))

	for _, ch := range []<-chan events.Event{ch1, ch2} {
		evt := <-ch
		assert.Equal(t, events.TypeCreated, evt.Type)
		assert.Equal(t, "r1", evt.RecipeID)

		evt = <-ch
		assert.Equal(t, events.TypeLiked, evt.Type)
	}
}

func TestPublisherDropsWhenFull(t *testing.T) {
	p := NewPublisher(1)
	defer p.Close()

	ch, cancel := p.Subscribe()
	defer cancel()

	ctx := context.Background()
	require.NoError(t, p.Publish(ctx, events.Event{Type: events.TypeCreated, RecipeID: "a"}))
	// Buffer is full; this one is dropped rather than blocking.
	require.NoError(t, p.Publish(ctx, events.Event{Type: events.TypeUpdated, RecipeID: "b"}))

	evt := <-ch
	assert.Equal(t, "a", evt.RecipeID)
	select {
	case evt, ok := <-ch:
		assert.False(t, ok, "unexpected event %v", evt)
	default:
	}
}

func TestPublisherCancelAndClose(t *testing.T) {
	p := NewPublisher(4)

	ch, cancel := p.Subscribe()
	cancel()
	_, ok := <-ch
	assert.False(t, ok)

	// Cancel twice is safe.
	cancel()

	ch2, _ := p.Subscribe()
	require.NoError(t, p.Close())
	_, ok = <-ch2
	assert.False(t, ok)

	// Publish after close is a no-op.
	assert.NoError(t, p.Publish(context.Background(), events.Event{Type: events.TypeDeleted}))
	assert.NoError(t, p.Close())
}
