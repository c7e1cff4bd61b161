package sse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_SubscribePublishCleanup(t *testing.T) {
	h := NewHub()

	ch1, cleanup1 := h.Subscribe("u1")
	ch2, cleanup2 := h.Subscribe("u1")
	_, cleanup3 := h.Subscribe("u2")

	assert.Equal(t, 2, h.SubscriberCount("u1"))
	assert.Equal(t, 3, h.TotalSubscribers())
	assert.Equal(t, []string{"u1", "u2"}, h.UserIDs())

	n := h.Publish("u1", Event{Event: "ping", Data: 1})
	assert.Equal(t, 2, n)

	ev := <-ch1
	assert.Equal(t, "u1", ev.UserID)
	assert.Equal(t, "ping", ev.Event)
	<-ch2

	cleanup1()
	cleanup2()
	cleanup3()

	_, open := <-ch1
	assert.False(t, open)
	assert.Zero(t, h.TotalSubscribers())
	assert.Empty(t, h.UserIDs())
	assert.Zero(t, h.Publish("u1", Event{Event: "ping"}))
}

func TestHub_PublishDoesNotBlockOnFullBuffer(t *testing.T) {
	h := NewHub()
	_, cleanup := h.Subscribe("u1")
	defer cleanup()

	for range bufferSize {
		require.Equal(t, 1, h.Publish("u1", Event{Event: "x"}))
	}
	assert.Equal(t, 0, h.Publish("u1", Event{Event: "x"}))
}
