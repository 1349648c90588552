package core

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// Common socket errors.
var (
	ErrSocketClosed = errors.New("socket is closed")
	ErrSendFailed   = errors.New("failed to send message")
)

// DefaultMailboxSize is the number of info messages a socket buffers before
// SendInfo starts dropping them.
const DefaultMailboxSize = 16

// Transport is the interface for the underlying connection.
type Transport interface {
	Send(msg Message) error
	Close() error
	IsConnected() bool
}

// Message represents a message sent over the socket.
type Message struct {
	Ref     string         `json:"ref,omitempty" msgpack:"ref,omitempty"`
	Topic   string         `json:"topic" msgpack:"topic"`
	Event   string         `json:"event" msgpack:"event"`
	Payload map[string]any `json:"payload,omitempty" msgpack:"payload,omitempty"`
}

// Socket represents one live connection to a browser.
type Socket struct {
	id          string
	connectedAt time.Time

	// lastActivity holds Unix nanoseconds.
	lastActivity atomic.Int64

	transport Transport

	infos     chan any
	done      chan struct{}
	closeOnce sync.Once
}

// NewSocket creates a new socket with the given ID and transport.
func NewSocket(id string, transport Transport) *Socket {
	now := time.Now()
	s := &Socket{
		id:          id,
		connectedAt: now,
		transport:   transport,
		infos:       make(chan any, DefaultMailboxSize),
		done:        make(chan struct{}),
	}
	s.lastActivity.Store(now.UnixNano())
	return s
}

// ID returns the socket's unique identifier.
func (s *Socket) ID() string {
	return s.id
}

// Topic is the channel name the client joins for this socket.
func (s *Socket) Topic() string {
	return "lv:" + s.id
}

// IsConnected returns true until Close is called and while the transport is up.
func (s *Socket) IsConnected() bool {
	select {
	case <-s.done:
		return false
	default:
	}
	return s.transport != nil && s.transport.IsConnected()
}

// ConnectedAt returns when the socket connected.
func (s *Socket) ConnectedAt() time.Time {
	return s.connectedAt
}

// LastActivity returns the time of last activity.
func (s *Socket) LastActivity() time.Time {
	return time.Unix(0, s.lastActivity.Load())
}

// UpdateActivity updates the last activity timestamp.
func (s *Socket) UpdateActivity() {
	s.lastActivity.Store(time.Now().UnixNano())
}

// Send sends a message to the client.
func (s *Socket) Send(msg Message) error {
	if !s.IsConnected() {
		return ErrSocketClosed
	}
	s.UpdateActivity()

	if err := s.transport.Send(msg); err != nil {
		if !s.IsConnected() {
			return ErrSocketClosed
		}
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}
	return nil
}

// Push sends an event to the client on the socket topic.
func (s *Socket) Push(event string, payload map[string]any) error {
	return s.Send(Message{
		Topic:   s.Topic(),
		Event:   event,
		Payload: payload,
	})
}

// PushCommand asks the client script to run a named command, for example
// writing text to the clipboard or navigating away.
func (s *Socket) PushCommand(name string, args map[string]any) error {
	return s.Push("cmd", map[string]any{
		"name": name,
		"args": args,
	})
}

// SendInfo posts msg to the socket mailbox. The router delivers it to the
// component's HandleInfo on the connection goroutine. It returns false when
// the socket is closed or the mailbox is full. Safe for concurrent use.
func (s *Socket) SendInfo(msg any) bool {
	select {
	case <-s.done:
		return false
	default:
	}

	select {
	case s.infos <- msg:
		return true
	case <-s.done:
		return false
	default:
		return false
	}
}

// PostInfo posts msg to the socket mailbox, waiting for room while the
// mailbox is full. It returns false once the socket is closed. Use it from
// timer and background goroutines whose message must not be lost.
func (s *Socket) PostInfo(msg any) bool {
	select {
	case <-s.done:
		return false
	default:
	}

	select {
	case s.infos <- msg:
		return true
	case <-s.done:
		return false
	}
}

// Infos returns the mailbox channel.
func (s *Socket) Infos() <-chan any {
	return s.infos
}

// Done is closed when the socket is closed.
func (s *Socket) Done() <-chan struct{} {
	return s.done
}

// Close marks the socket closed and closes the transport. It is idempotent.
func (s *Socket) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.done)
		if s.transport != nil {
			err = s.transport.Close()
		}
	})
	return err
}

// DiffPayload is the diff format sent to clients.
type DiffPayload struct {
	Version   uint64            `json:"v"`
	Slots     map[string]string `json:"s,omitempty"` // text-only slots
	HTMLSlots map[string]string `json:"h,omitempty"` // innerHTML slots
	Full      string            `json:"f,omitempty"` // full render fallback
}

// IsEmpty returns true if the payload has no changes.
func (d *DiffPayload) IsEmpty() bool {
	return len(d.Slots) == 0 && len(d.HTMLSlots) == 0 && d.Full == ""
}

// SendDiff sends a diff payload to the client. Empty payloads are skipped.
func (s *Socket) SendDiff(payload *DiffPayload) error {
	if payload == nil || payload.IsEmpty() {
		return nil
	}
	return s.Push("diff", map[string]any{
		"v": payload.Version,
		"s": payload.Slots,
		"h": payload.HTMLSlots,
		"f": payload.Full,
	})
}
