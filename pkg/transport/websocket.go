package transport

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"github.com/coder/websocket"

	"github.com/monebot/website/pkg/core"
	"github.com/monebot/website/pkg/logging"
	"github.com/monebot/website/pkg/protocol"
)

// WebSocket implements core.Transport on top of a server-side WebSocket.
type WebSocket struct {
	conn   *websocket.Conn
	codec  protocol.Codec
	config Config
	logger logging.Logger

	connected atomic.Bool
	sendCh    chan core.Message
	recvCh    chan core.Message
	closeCh   chan struct{}
	closeOnce sync.Once
}

// IsOriginAllowed reports whether a page served from origin may open a
// socket on requestHost.
func IsOriginAllowed(origin, requestHost string, cfg Config) bool {
	if cfg.InsecureSkipOriginCheck || origin == "" {
		return true
	}

	originURL, err := url.Parse(origin)
	if err != nil || originURL.Host == "" {
		return false
	}
	if originURL.Host == requestHost {
		return true
	}

	for _, allowed := range cfg.AllowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
		if allowedURL, err := url.Parse(allowed); err == nil && allowedURL.Host == originURL.Host {
			return true
		}
	}
	return false
}

// Accept validates the request origin and upgrades the connection. On
// origin failure it writes 403 and returns ErrOriginNotAllowed.
func Accept(w http.ResponseWriter, r *http.Request, codec protocol.Codec, cfg Config, logger logging.Logger) (*WebSocket, error) {
	cfg = cfg.withDefaults()
	if logger == nil {
		logger = logging.NopLogger{}
	}

	if !IsOriginAllowed(r.Header.Get("Origin"), r.Host, cfg) {
		http.Error(w, "Forbidden: Origin not allowed", http.StatusForbidden)
		return nil, ErrOriginNotAllowed
	}

	// The origin has been validated above.
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{InsecureSkipVerify: true})
	if err != nil {
		return nil, fmt.Errorf("accept websocket: %w", err)
	}
	conn.SetReadLimit(cfg.MaxMessageSize)

	t := &WebSocket{
		conn:    conn,
		codec:   codec,
		config:  cfg,
		logger:  logger.With(logging.String("codec", codec.Name())),
		sendCh:  make(chan core.Message, cfg.SendBufferSize),
		recvCh:  make(chan core.Message, cfg.ReceiveBufferSize),
		closeCh: make(chan struct{}),
	}
	t.connected.Store(true)

	go t.readLoop()
	go t.writeLoop()
	go t.pingLoop()

	return t, nil
}

// Send queues msg for delivery.
func (t *WebSocket) Send(msg core.Message) error {
	if !t.IsConnected() {
		return ErrNotConnected
	}

	timer := time.NewTimer(t.config.WriteTimeout)
	defer timer.Stop()

	select {
	case t.sendCh <- msg:
		return nil
	case <-t.closeCh:
		return ErrConnectionClosed
	case <-timer.C:
		return ErrSendTimeout
	}
}

// Receive returns the channel of decoded client messages. It is never
// closed; watch Closed to learn when the connection is gone.
func (t *WebSocket) Receive() <-chan core.Message {
	return t.recvCh
}

// Closed is closed once the connection is gone.
func (t *WebSocket) Closed() <-chan struct{} {
	return t.closeCh
}

// IsConnected reports whether the connection is still open.
func (t *WebSocket) IsConnected() bool {
	return t.connected.Load()
}

// Close closes the connection. It is idempotent.
func (t *WebSocket) Close() error {
	var err error
	t.closeOnce.Do(func() {
		t.connected.Store(false)
		close(t.closeCh)
		err = t.conn.Close(websocket.StatusNormalClosure, "closing")
	})
	return err
}

func (t *WebSocket) readLoop() {
	defer t.Close()

	for {
		ctx, cancel := context.WithTimeout(context.Background(), t.config.ReadTimeout)
		_, data, err := t.conn.Read(ctx)
		cancel()

		if err != nil {
			if websocket.CloseStatus(err) != websocket.StatusNormalClosure &&
				websocket.CloseStatus(err) != websocket.StatusGoingAway {
				t.logger.Debug("websocket read ended", logging.Err(err))
			}
			return
		}

		msg, err := t.codec.Decode(data)
		if err != nil {
			t.logger.Debug("dropping undecodable frame", logging.Err(err))
			continue
		}

		select {
		case t.recvCh <- msg:
		case <-t.closeCh:
			return
		}
	}
}

func (t *WebSocket) writeLoop() {
	typ := websocket.MessageText
	if t.codec.Binary() {
		typ = websocket.MessageBinary
	}

	for {
		select {
		case msg := <-t.sendCh:
			data, err := t.codec.Encode(msg)
			if err != nil {
				t.logger.Warn("encode failed", logging.String("event", msg.Event), logging.Err(err))
				continue
			}

			ctx, cancel := context.WithTimeout(context.Background(), t.config.WriteTimeout)
			err = t.conn.Write(ctx, typ, data)
			cancel()

			if err != nil {
				t.logger.Debug("websocket write failed", logging.Err(err))
				t.Close()
				return
			}

		case <-t.closeCh:
			return
		}
	}
}

func (t *WebSocket) pingLoop() {
	ticker := time.NewTicker(t.config.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), t.config.WriteTimeout)
			err := t.conn.Ping(ctx)
			cancel()
			if err != nil {
				t.Close()
				return
			}
		case <-t.closeCh:
			return
		}
	}
}
