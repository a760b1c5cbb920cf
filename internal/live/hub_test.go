package live

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T) (*Hub, context.CancelFunc) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	h := NewHub()
	go h.Run(ctx)
	t.Cleanup(cancel)
	return h, cancel
}

func receive(t *testing.T, c *Client) []byte {
	t.Helper()
	select {
	case msg, ok := <-c.Send:
		require.True(t, ok, "send channel closed")
		return msg
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for broadcast")
		return nil
	}
}

func TestHub_BroadcastReachesTopicOnly(t *testing.T) {
	h, _ := startHub(t)
	cup := NewClient("cup")
	other := NewClient("other")
	require.True(t, h.Register(cup))
	require.True(t, h.Register(other))

	h.Broadcast("cup", []byte("state-1"))

	assert.Equal(t, "state-1", string(receive(t, cup)))
	select {
	case msg := <-other.Send:
		t.Fatalf("unexpected message on other topic: %s", msg)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_UnregisterClosesSend(t *testing.T) {
	h, _ := startHub(t)
	c := NewClient("cup")
	require.True(t, h.Register(c))
	require.Eventually(t, func() bool { return h.Count("cup") == 1 }, time.Second, 5*time.Millisecond)

	h.Unregister(c)
	h.Unregister(c)

	_, ok := <-c.Send
	assert.False(t, ok)
	assert.Equal(t, 0, h.Count("cup"))
}

func TestHub_SlowClientIsDropped(t *testing.T) {
	h, _ := startHub(t)
	c := NewClient("cup")
	require.True(t, h.Register(c))

	for range cap(c.Send) + 1 {
		h.Broadcast("cup", []byte("x"))
	}

	require.Eventually(t, func() bool { return h.Count("cup") == 0 }, time.Second, 5*time.Millisecond)
}

func TestHub_StopClosesClientsAndRejectsNewOnes(t *testing.T) {
	h, cancel := startHub(t)
	c := NewClient("cup")
	require.True(t, h.Register(c))

	cancel()

	require.Eventually(t, func() bool {
		select {
		case _, ok := <-c.Send:
			return !ok
		default:
			return false
		}
	}, time.Second, 5*time.Millisecond)
	assert.False(t, h.Register(NewClient("cup")))
	h.Broadcast("cup", []byte("ignored"))
}
