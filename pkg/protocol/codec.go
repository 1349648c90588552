// Package protocol defines the wire codecs used by live connections.
package protocol

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/monebot/website/pkg/core"
)

// Common codec errors.
var (
	ErrInvalidMessage = errors.New("invalid message format")
)

// Codec handles message encoding/decoding.
type Codec interface {
	// Encode serializes a message to bytes.
	Encode(msg core.Message) ([]byte, error)

	// Decode deserializes bytes to a message.
	Decode(data []byte) (core.Message, error)

	// Name returns the codec name.
	Name() string

	// Binary reports whether frames must be sent as binary websocket messages.
	Binary() bool
}

// JSONCodec implements Codec using JSON text frames. This is what the
// embedded browser client speaks.
type JSONCodec struct{}

// NewJSONCodec creates a new JSON codec.
func NewJSONCodec() *JSONCodec {
	return &JSONCodec{}
}

func (c *JSONCodec) Encode(msg core.Message) ([]byte, error) {
	return json.Marshal(msg)
}

func (c *JSONCodec) Decode(data []byte) (core.Message, error) {
	var msg core.Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return core.Message{}, fmt.Errorf("%w: %v", ErrInvalidMessage, err)
	}
	if msg.Event == "" {
		return core.Message{}, fmt.Errorf("%w: missing event", ErrInvalidMessage)
	}
	return msg, nil
}

func (c *JSONCodec) Name() string { return "json" }

func (c *JSONCodec) Binary() bool { return false }

// MsgPackCodec implements Codec using MessagePack binary frames.
type MsgPackCodec struct{}

// NewMsgPackCodec creates a new MsgPack codec.
func NewMsgPackCodec() *MsgPackCodec {
	return &MsgPackCodec{}
}

func (c *MsgPackCodec) Encode(msg core.Message) ([]byte, error) {
	return msgpack.Marshal(msg)
}

func (c *MsgPackCodec) Decode(data []byte) (core.Message, error) {
	var msg core.Message
	if err := msgpack.Unmarshal(data, &msg); err != nil {
		return core.Message{}, fmt.Errorf("%w: %v", ErrInvalidMessage, err)
	}
	if msg.Event == "" {
		return core.Message{}, fmt.Errorf("%w: missing event", ErrInvalidMessage)
	}
	return msg, nil
}

func (c *MsgPackCodec) Name() string { return "msgpack" }

func (c *MsgPackCodec) Binary() bool { return true }

// ForVersion picks a codec from the vsn query parameter the client sends.
// Anything other than "msgpack" gets JSON.
func ForVersion(vsn string) Codec {
	if vsn == "msgpack" {
		return NewMsgPackCodec()
	}
	return NewJSONCodec()
}
