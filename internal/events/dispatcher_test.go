package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryDispatcher_PublishRunsAllHandlers(t *testing.T) {
	d := NewInMemoryDispatcher()
	var seen []string
	boom := errors.New("boom")

	d.Subscribe(EventSubmissionResolved, func(context.Context, Event) error {
		seen = append(seen, "first")
		return boom
	})
	d.Subscribe(EventSubmissionResolved, func(_ context.Context, e Event) error {
		seen = append(seen, "second:"+e.ID)
		return nil
	})
	d.Subscribe(EventSessionEstablished, func(context.Context, Event) error {
		seen = append(seen, "other")
		return nil
	})

	err := d.Publish(context.Background(), Event{ID: "e1", Type: EventSubmissionResolved})

	require.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"first", "second:e1"}, seen)
}

func TestInMemoryDispatcher_NoListeners(t *testing.T) {
	assert.NoError(t, NewInMemoryDispatcher().Publish(context.Background(), Event{Type: EventSessionEstablished}))
}
