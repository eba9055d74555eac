package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDispatcher_DeliversToAllHandlers(t *testing.T) {
	d := NewInMemoryDispatcher(nil)

	var got []string
	d.Subscribe(EventJobDeleted, func(_ context.Context, e Event) error {
		got = append(got, "first:"+e.TargetID)
		return errors.New("boom")
	})
	d.Subscribe(EventJobDeleted, func(_ context.Context, e Event) error {
		got = append(got, "second:"+e.TargetID)
		return nil
	})
	d.Subscribe(EventJobCreated, func(context.Context, Event) error {
		got = append(got, "unrelated")
		return nil
	})

	err := d.Publish(context.Background(), Event{Type: EventJobDeleted, TargetID: "j1"})
	assert.NoError(t, err)
	assert.Equal(t, []string{"first:j1", "second:j1"}, got)
}
