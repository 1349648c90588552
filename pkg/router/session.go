package router

import (
	"sync"
	"time"

	"github.com/monebot/website/pkg/core"
	"github.com/monebot/website/pkg/logging"
)

// LiveSession binds one component instance to one WebSocket connection.
// Only the connection goroutine touches the mutable fields.
type LiveSession struct {
	SocketID  string
	Component core.Component
	Socket    *core.Socket
	Params    core.Params
	Session   core.Session
	CreatedAt time.Time

	Mounted bool
	Version uint64

	slotHashes map[string]uint64
	fullHash   uint64
	logger     logging.Logger
}

// SessionManager tracks active live sessions.
type SessionManager struct {
	max      int
	sessions map[string]*LiveSession
	mu       sync.RWMutex
}

// NewSessionManager creates a manager that admits at most max sessions.
// Zero means unlimited.
func NewSessionManager(max int) *SessionManager {
	return &SessionManager{
		max:      max,
		sessions: make(map[string]*LiveSession),
	}
}

// Create registers a new session.
func (m *SessionManager) Create(socketID string, comp core.Component, params core.Params, session core.Session) (*LiveSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.max > 0 && len(m.sessions) >= m.max {
		return nil, ErrTooManySessions
	}

	s := &LiveSession{
		SocketID:   socketID,
		Component:  comp,
		Params:     params,
		Session:    session,
		CreatedAt:  time.Now(),
		slotHashes: make(map[string]uint64),
		logger:     logging.NopLogger{},
	}
	m.sessions[socketID] = s
	return s, nil
}

// Get returns the session for socketID.
func (m *SessionManager) Get(socketID string) (*LiveSession, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[socketID]
	return s, ok
}

// Remove forgets the session for socketID.
func (m *SessionManager) Remove(socketID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, socketID)
}

// Count returns the number of active sessions.
func (m *SessionManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
