package core

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockTransport implements Transport for testing.
type MockTransport struct {
	mu        sync.Mutex
	connected bool
	messages  []Message
}

func NewMockTransport() *MockTransport {
	return &MockTransport{connected: true}
}

func (m *MockTransport) Send(msg Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.connected {
		return ErrSocketClosed
	}
	m.messages = append(m.messages, msg)
	return nil
}

func (m *MockTransport) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.connected = false
	return nil
}

func (m *MockTransport) IsConnected() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.connected
}

func (m *MockTransport) Messages() []Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Message(nil), m.messages...)
}

func TestNewSocket(t *testing.T) {
	socket := NewSocket("test-id", NewMockTransport())

	assert.Equal(t, "test-id", socket.ID())
	assert.Equal(t, "lv:test-id", socket.Topic())
	assert.True(t, socket.IsConnected())
	assert.False(t, socket.ConnectedAt().IsZero())
}

func TestSocket_PushAndCommand(t *testing.T) {
	transport := NewMockTransport()
	socket := NewSocket("s1", transport)

	require.NoError(t, socket.Push("diff", map[string]any{"v": 1}))
	require.NoError(t, socket.PushCommand("clipboard", map[string]any{"text": "hello"}))

	msgs := transport.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, "lv:s1", msgs[0].Topic)
	assert.Equal(t, "diff", msgs[0].Event)
	assert.Equal(t, "cmd", msgs[1].Event)
	assert.Equal(t, "clipboard", msgs[1].Payload["name"])
}

func TestSocket_SendAfterClose(t *testing.T) {
	socket := NewSocket("s1", NewMockTransport())
	require.NoError(t, socket.Close())
	require.NoError(t, socket.Close())

	assert.False(t, socket.IsConnected())
	assert.ErrorIs(t, socket.Push("diff", nil), ErrSocketClosed)
}

func TestSocket_SendInfo(t *testing.T) {
	socket := NewSocket("s1", NewMockTransport())

	assert.True(t, socket.SendInfo("tick"))
	assert.Equal(t, "tick", <-socket.Infos())

	for i := 0; i < DefaultMailboxSize; i++ {
		require.True(t, socket.SendInfo(i))
	}
	assert.False(t, socket.SendInfo("overflow"), "full mailbox drops")

	socket.Close()
	assert.False(t, socket.SendInfo("late"))
}

func TestSocket_SendDiffSkipsEmpty(t *testing.T) {
	transport := NewMockTransport()
	socket := NewSocket("s1", transport)

	require.NoError(t, socket.SendDiff(&DiffPayload{Version: 1}))
	require.NoError(t, socket.SendDiff(nil))
	assert.Empty(t, transport.Messages())

	require.NoError(t, socket.SendDiff(&DiffPayload{Version: 2, Slots: map[string]string{"a": "b"}}))
	assert.Len(t, transport.Messages(), 1)
}

func TestBuildContext(t *testing.T) {
	socket := NewSocket("s1", NewMockTransport())
	ctx := BuildContext(context.Background(), socket, Session{"k": "v"}, Params{"q": "1"})

	assert.Same(t, socket, SocketFromContext(ctx))
	assert.Equal(t, "v", SessionFromContext(ctx).GetString("k"))
	assert.Equal(t, "1", ParamsFromContext(ctx).Get("q"))
	assert.Equal(t, "d", ParamsFromContext(ctx).GetDefault("missing", "d"))
}

func TestStringValue(t *testing.T) {
	assert.Equal(t, "member_leave", StringValue(map[string]any{"value": "member_leave"}))
	assert.Equal(t, "", StringValue(map[string]any{"value": 3}))
	assert.Equal(t, "", StringValue(nil))
}

func TestSocket_PostInfoWaitsForRoom(t *testing.T) {
	socket := NewSocket("s1", NewMockTransport())
	for i := 0; i < DefaultMailboxSize; i++ {
		require.True(t, socket.SendInfo(i))
	}

	posted := make(chan bool, 1)
	go func() { posted <- socket.PostInfo("expired") }()

	for i := 0; i < DefaultMailboxSize; i++ {
		assert.Equal(t, i, <-socket.Infos())
	}
	assert.Equal(t, "expired", <-socket.Infos())
	assert.True(t, <-posted)
}

func TestSocket_PostInfoAfterClose(t *testing.T) {
	socket := NewSocket("s1", NewMockTransport())
	for i := 0; i < DefaultMailboxSize; i++ {
		require.True(t, socket.SendInfo(i))
	}

	posted := make(chan bool, 1)
	go func() { posted <- socket.PostInfo("expired") }()
	require.NoError(t, socket.Close())

	select {
	case ok := <-posted:
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("PostInfo did not return after close")
	}
	assert.False(t, socket.PostInfo("late"))
}
