package router

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/monebot/website/pkg/core"
	"github.com/monebot/website/pkg/logging"
	"github.com/monebot/website/pkg/protocol"
	"github.com/monebot/website/pkg/transport"
)

// Protocol events sent by the client script. Any other event name is
// dispatched to the component.
const (
	EventJoin      = "join"
	EventHeartbeat = "heartbeat"
	EventLeave     = "leave"
	EventReply     = "reply"
)

type socketBinder interface {
	SetSocket(*core.Socket)
}

// handleWebSocket upgrades the request and runs the session loop on the
// handler goroutine until the connection ends.
func (r *Router) handleWebSocket(w http.ResponseWriter, req *http.Request, route *LiveRoute) {
	if r.baseCtx.Err() != nil {
		http.Error(w, ErrRouterShutdown.Error(), http.StatusServiceUnavailable)
		return
	}

	component := route.Component()
	socketID := uuid.NewString()

	session, err := r.sessions.Create(socketID, component, extractParams(req), extractSession(req))
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	logger := r.logger.With(
		logging.String("socket_id", socketID),
		logging.String("component", component.Name()),
	)

	codec := protocol.ForVersion(req.URL.Query().Get("vsn"))
	ws, err := transport.Accept(w, req, codec, r.transport, logger)
	if err != nil {
		r.sessions.Remove(socketID)
		logger.Warn("websocket upgrade failed", logging.Err(err))
		return
	}

	session.Socket = core.NewSocket(socketID, ws)
	session.logger = logger
	if b, ok := component.(socketBinder); ok {
		b.SetSocket(session.Socket)
	}

	r.wg.Add(1)
	defer r.wg.Done()

	if r.hooks.OnConnect != nil {
		r.hooks.OnConnect(component.Name())
	}
	logger.Debug("live session opened", logging.String("codec", codec.Name()))

	ctx := core.BuildContext(r.baseCtx, session.Socket, session.Session, session.Params)
	ctx = logging.ContextWithLogger(ctx, logger)

	reason := r.messageLoop(ctx, session, ws)
	r.handleDisconnect(ctx, session, reason)
}

// messageLoop serializes every interaction with the component: client
// frames and mailbox infos are handled one at a time on this goroutine.
func (r *Router) messageLoop(ctx context.Context, session *LiveSession, ws *transport.WebSocket) core.TerminateReason {
	for {
		select {
		case msg := <-ws.Receive():
			session.Socket.UpdateActivity()

			switch msg.Event {
			case EventHeartbeat:
				r.sendReply(session, msg, map[string]any{})

			case EventJoin:
				r.handleJoin(ctx, session, msg)

			case EventLeave:
				r.sendReply(session, msg, map[string]any{})
				return core.TerminateNormal

			default:
				if !session.Mounted {
					r.sendError(session, msg, ErrNotJoined)
					continue
				}
				err := session.Component.HandleEvent(ctx, msg.Event, payloadOf(msg))
				if r.hooks.OnEvent != nil {
					r.hooks.OnEvent(session.Component.Name(), msg.Event, err)
				}
				if err != nil {
					session.logger.Warn("event failed", logging.String("event", msg.Event), logging.Err(err))
					r.sendError(session, msg, err)
					continue
				}
				if msg.Ref != "" {
					r.sendReply(session, msg, map[string]any{})
				}
				r.renderAndSendDiff(ctx, session)
			}

		case info := <-session.Socket.Infos():
			if !session.Mounted {
				continue
			}
			if err := session.Component.HandleInfo(ctx, info); err != nil {
				session.logger.Warn("info failed", logging.Err(err))
				continue
			}
			r.renderAndSendDiff(ctx, session)

		case <-ws.Closed():
			return core.TerminateShutdown

		case <-ctx.Done():
			return core.TerminateShutdown
		}
	}
}

// handleJoin mounts the component and replies with its full render.
func (r *Router) handleJoin(ctx context.Context, session *LiveSession, msg core.Message) {
	if session.Mounted {
		r.sendError(session, msg, ErrAlreadyJoined)
		return
	}

	if err := session.Component.Mount(ctx, session.Params, session.Session); err != nil {
		session.logger.Error("mount failed", logging.Err(err))
		r.sendError(session, msg, err)
		return
	}
	session.Mounted = true

	html, err := renderToString(ctx, session.Component)
	if err != nil {
		r.sendError(session, msg, err)
		return
	}

	// Seed slot hashes so the first diff only carries real changes.
	r.buildDiffPayload(session, html)

	r.sendReply(session, msg, map[string]any{
		"topic":    session.Socket.Topic(),
		"rendered": html,
	})
}

// renderAndSendDiff renders the component and sends the changed slots.
func (r *Router) renderAndSendDiff(ctx context.Context, session *LiveSession) {
	html, err := renderToString(ctx, session.Component)
	if err != nil {
		session.logger.Error("render failed", logging.Err(err))
		return
	}

	payload := r.buildDiffPayload(session, html)
	if payload.IsEmpty() {
		return
	}

	if err := session.Socket.SendDiff(payload); err != nil && !errors.Is(err, core.ErrSocketClosed) {
		session.logger.Warn("send diff", logging.Err(err))
		return
	}
	if r.hooks.OnDiff != nil {
		r.hooks.OnDiff(session.Component.Name(), len(payload.Slots)+len(payload.HTMLSlots))
	}
}

// buildDiffPayload compares slot hashes with the previous render.
func (r *Router) buildDiffPayload(session *LiveSession, html string) *core.DiffPayload {
	session.Version++
	payload := &core.DiffPayload{
		Version:   session.Version,
		Slots:     make(map[string]string),
		HTMLSlots: make(map[string]string),
	}

	textSlots, htmlSlots := extractSlots(html)
	newHashes := make(map[string]uint64, len(textSlots)+len(htmlSlots))

	for id, content := range textSlots {
		h := hashSlotContent(content)
		newHashes[id] = h
		if prev, ok := session.slotHashes[id]; !ok || prev != h {
			payload.Slots[id] = content
		}
	}
	for id, content := range htmlSlots {
		h := hashSlotContent(content)
		newHashes[id] = h
		if prev, ok := session.slotHashes[id]; !ok || prev != h {
			payload.HTMLSlots[id] = content
		}
	}

	if len(newHashes) == 0 {
		full := hashSlotContent(html)
		if session.fullHash != full {
			payload.Full = html
		}
		session.fullHash = full
	}

	session.slotHashes = newHashes
	return payload
}

func (r *Router) handleDisconnect(ctx context.Context, session *LiveSession, reason core.TerminateReason) {
	if session.Mounted {
		if err := session.Component.Terminate(context.WithoutCancel(ctx), reason); err != nil {
			session.logger.Warn("terminate failed", logging.Err(err))
		}
	}

	session.Socket.Close()
	r.sessions.Remove(session.SocketID)

	if r.hooks.OnDisconnect != nil {
		r.hooks.OnDisconnect(session.Component.Name(), reason)
	}
	session.logger.Debug("live session closed", logging.String("reason", reason.String()))
}

func (r *Router) sendReply(session *LiveSession, msg core.Message, response map[string]any) {
	r.send(session, msg, map[string]any{
		"status":   "ok",
		"response": response,
	})
}

func (r *Router) sendError(session *LiveSession, msg core.Message, err error) {
	r.send(session, msg, map[string]any{
		"status":   "error",
		"response": map[string]any{"reason": err.Error()},
	})
}

func (r *Router) send(session *LiveSession, msg core.Message, payload map[string]any) {
	topic := msg.Topic
	if topic == "" {
		topic = session.Socket.Topic()
	}
	err := session.Socket.Send(core.Message{
		Ref:     msg.Ref,
		Topic:   topic,
		Event:   EventReply,
		Payload: payload,
	})
	if err != nil && !errors.Is(err, core.ErrSocketClosed) {
		session.logger.Debug("send reply", logging.Err(err))
	}
}

func payloadOf(msg core.Message) map[string]any {
	if msg.Payload == nil {
		return map[string]any{}
	}
	return msg.Payload
}
