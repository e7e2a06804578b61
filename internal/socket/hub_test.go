package socket

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

var quietLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func startHub(t *testing.T) (*Hub, context.CancelFunc, <-chan struct{}) {
	t.Helper()
	hub := NewHub(quietLogger)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(done)
	}()
	return hub, cancel, done
}

func testClient(hub *Hub, id, userID string, buffer int) *Client {
	return &Client{ID: id, UserID: userID, Hub: hub, Send: make(chan []byte, buffer)}
}

func receive(t *testing.T, c *Client) Message {
	t.Helper()
	select {
	case data, ok := <-c.Send:
		require.True(t, ok, "send channel closed")
		var msg Message
		require.NoError(t, json.Unmarshal(data, &msg))
		return msg
	case <-time.After(time.Second):
		t.Fatalf("client %s received nothing", c.ID)
		return Message{}
	}
}

func TestHubDeliversToEveryConnectionOfUser(t *testing.T) {
	defer goleak.VerifyNone(t)
	hub, cancel, done := startHub(t)

	a1 := testClient(hub, "a1", "alice", 4)
	a2 := testClient(hub, "a2", "alice", 4)
	b := testClient(hub, "b", "bob", 4)
	for _, c := range []*Client{a1, a2, b} {
		require.True(t, hub.Register(c))
	}

	hub.SendToUser("alice", MessageSwapRequestReceived, map[string]any{"id": "r1"})

	for _, c := range []*Client{a1, a2} {
		msg := receive(t, c)
		assert.Equal(t, MessageSwapRequestReceived, msg.Type)
		assert.Equal(t, "r1", msg.Payload["id"])
	}
	assert.Empty(t, b.Send)
	assert.True(t, hub.IsUserOnline("bob"))
	assert.Equal(t, 3, hub.GetConnectedClientsCount())

	cancel()
	<-done

	_, open := <-a1.Send
	assert.False(t, open)
	assert.False(t, hub.Register(testClient(hub, "late", "carol", 1)))
	hub.SendToUser("alice", MessagePing, nil)
	hub.Unregister(a1)
}

func TestHubUnregisterRemovesUser(t *testing.T) {
	defer goleak.VerifyNone(t)
	hub, cancel, done := startHub(t)
	defer func() { cancel(); <-done }()

	c := testClient(hub, "c", "carol", 1)
	require.True(t, hub.Register(c))
	hub.Unregister(c)

	require.Eventually(t, func() bool { return !hub.IsUserOnline("carol") }, time.Second, 5*time.Millisecond)
	_, open := <-c.Send
	assert.False(t, open)
}

func TestHubDropsSlowClient(t *testing.T) {
	defer goleak.VerifyNone(t)
	hub, cancel, done := startHub(t)
	defer func() { cancel(); <-done }()

	slow := testClient(hub, "slow", "dave", 1)
	require.True(t, hub.Register(slow))

	hub.SendToUser("dave", MessageNotification, map[string]any{"n": 1})
	hub.SendToUser("dave", MessageNotification, map[string]any{"n": 2})

	require.Eventually(t, func() bool { return hub.GetConnectedClientsCount() == 0 }, time.Second, 5*time.Millisecond)
	msg := receive(t, slow)
	assert.Equal(t, MessageNotification, msg.Type)
	_, open := <-slow.Send
	assert.False(t, open)
}

func TestBroadcasterDecisionTypes(t *testing.T) {
	defer goleak.VerifyNone(t)
	hub, cancel, done := startHub(t)
	defer func() { cancel(); <-done }()

	c := testClient(hub, "e", "erin", 4)
	require.True(t, hub.Register(c))
	b := NewBroadcaster(hub)

	b.SwapRequestDecided("erin", true, map[string]any{"id": "1"})
	b.SwapRequestDecided("erin", false, map[string]any{"id": "2"})

	assert.Equal(t, MessageSwapRequestAccepted, receive(t, c).Type)
	assert.Equal(t, MessageSwapRequestRejected, receive(t, c).Type)
}
