package sse

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubDeliversToSubscriber(t *testing.T) {
	h := NewHub()
	ch, cancel := h.Subscribe("run-1")
	defer cancel()

	h.Publish("run-1", "hello")

	select {
	case msg := <-ch:
		assert.Equal(t, "hello", msg)
	default:
		t.Fatal("expected a buffered message")
	}
}

func TestHubIsolatesRuns(t *testing.T) {
	h := NewHub()
	a, cancelA := h.Subscribe("run-a")
	defer cancelA()
	b, cancelB := h.Subscribe("run-b")
	defer cancelB()

	h.Publish("run-a", "for-a")

	require.Len(t, a, 1)
	assert.Empty(t, b)
}

func TestHubFansOut(t *testing.T) {
	h := NewHub()
	first, cancel1 := h.Subscribe("run-1")
	defer cancel1()
	second, cancel2 := h.Subscribe("run-1")
	defer cancel2()

	h.Publish("run-1", "both")

	assert.Equal(t, "both", <-first)
	assert.Equal(t, "both", <-second)
}

func TestHubUnsubscribeStopsDelivery(t *testing.T) {
	h := NewHub()
	ch, cancel := h.Subscribe("run-1")
	cancel()

	h.Publish("run-1", "late")

	assert.Empty(t, ch)
}

func TestHubSkipsFullSubscriber(t *testing.T) {
	h := NewHub()
	ch, cancel := h.Subscribe("run-1")
	defer cancel()

	// overfill the buffer; publish must not block once it is full
	for i := 0; i < 40; i++ {
		h.Publish("run-1", fmt.Sprintf("msg-%d", i))
	}

	assert.Len(t, ch, cap(ch))
	assert.Equal(t, "msg-0", <-ch)
}
