// Package transport carries live messages between the browser and the
// server over a WebSocket.
package transport

import (
	"errors"
	"time"
)

// Common transport errors.
var (
	ErrNotConnected     = errors.New("transport not connected")
	ErrConnectionClosed = errors.New("connection closed")
	ErrSendTimeout      = errors.New("send timeout")
	ErrOriginNotAllowed = errors.New("origin not allowed")
)

// Config configures a WebSocket transport.
type Config struct {
	// ReadTimeout bounds the wait for the next client frame. The client
	// heartbeats well inside it.
	ReadTimeout time.Duration

	// WriteTimeout bounds a single frame write and a blocked Send.
	WriteTimeout time.Duration

	// PingInterval is the period of protocol-level pings.
	PingInterval time.Duration

	// MaxMessageSize is the largest frame accepted from the client.
	MaxMessageSize int64

	// SendBufferSize is the outgoing queue length.
	SendBufferSize int

	// ReceiveBufferSize is the incoming queue length.
	ReceiveBufferSize int

	// AllowedOrigins lists cross-origin pages allowed to connect. Same-origin
	// connections are always allowed. "*" allows every origin.
	AllowedOrigins []string

	// InsecureSkipOriginCheck disables origin validation. Development only.
	InsecureSkipOriginCheck bool
}

// DefaultConfig returns the defaults used by the site.
func DefaultConfig() Config {
	return Config{
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      10 * time.Second,
		PingInterval:      30 * time.Second,
		MaxMessageSize:    64 * 1024,
		SendBufferSize:    64,
		ReceiveBufferSize: 64,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.ReadTimeout <= 0 {
		c.ReadTimeout = d.ReadTimeout
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = d.WriteTimeout
	}
	if c.PingInterval <= 0 {
		c.PingInterval = d.PingInterval
	}
	if c.MaxMessageSize <= 0 {
		c.MaxMessageSize = d.MaxMessageSize
	}
	if c.SendBufferSize <= 0 {
		c.SendBufferSize = d.SendBufferSize
	}
	if c.ReceiveBufferSize <= 0 {
		c.ReceiveBufferSize = d.ReceiveBufferSize
	}
	return c
}
