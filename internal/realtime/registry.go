package realtime

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/frahmantamala/budget-tracker/internal"
)

// Envelope is the wire shape of one pushed event.
type Envelope struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// Session is one live, authenticated client connection. Events is the
// session's outbound buffer; the transport layer drains it into the
// underlying connection.
type Session struct {
	ID        string
	UserID    string
	Events    chan Envelope
	CreatedAt time.Time

	dropped atomic.Int64
	closed  bool // guarded by the registry mutex
}

// Dropped returns how many events were discarded because this session's
// buffer was full.
func (s *Session) Dropped() int64 {
	return s.dropped.Load()
}

// Registry maps user identities to their currently attached live
// sessions. State is purely in-memory and process-local; its lifecycle
// is the process uptime. All methods are safe for concurrent use.
type Registry struct {
	mu         sync.RWMutex
	sessions   map[string][]*Session
	bufferSize int
}

func NewRegistry(bufferSize int) *Registry {
	if bufferSize <= 0 {
		bufferSize = internal.DefaultSessionBufferSize
	}
	return &Registry{
		sessions:   make(map[string][]*Session),
		bufferSize: bufferSize,
	}
}

// Attach registers a new live session for an already-verified user
// identity. Credential checks happen before this is called; the
// registry only ever sees a userID.
func (r *Registry) Attach(userID string) *Session {
	session := &Session{
		ID:        internal.NewID("ses"),
		UserID:    userID,
		Events:    make(chan Envelope, r.bufferSize),
		CreatedAt: time.Now(),
	}

	r.mu.Lock()
	r.sessions[userID] = append(r.sessions[userID], session)
	r.mu.Unlock()

	return session
}

// Detach removes a session and closes its event channel. Calling it
// again for the same session is a no-op.
func (r *Registry) Detach(session *Session) {
	if session == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if session.closed {
		return
	}

	subs := r.sessions[session.UserID]
	for i, s := range subs {
		if s == session {
			r.sessions[session.UserID] = append(subs[:i], subs[i+1:]...)
			break
		}
	}
	if len(r.sessions[session.UserID]) == 0 {
		delete(r.sessions, session.UserID)
	}

	session.closed = true
	close(session.Events)
}

// SessionsFor returns a snapshot of the sessions attached for a user.
func (r *Registry) SessionsFor(userID string) []*Session {
	r.mu.RLock()
	defer r.mu.RUnlock()

	subs := r.sessions[userID]
	out := make([]*Session, len(subs))
	copy(out, subs)
	return out
}

// Broadcast pushes an event to every live session of one user with
// non-blocking sends: a session whose buffer is full has the event
// dropped so a slow consumer can never stall the others or the caller.
// Sends happen under the read lock so a concurrent Detach (which closes
// the channel under the write lock) cannot race a send.
func (r *Registry) Broadcast(userID string, env Envelope) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	delivered := 0
	for _, session := range r.sessions[userID] {
		select {
		case session.Events <- env:
			delivered++
		default:
			session.dropped.Add(1)
		}
	}
	return delivered
}

// SessionCount returns the number of live sessions for a user.
func (r *Registry) SessionCount(userID string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions[userID])
}

// TotalSessions returns the number of live sessions across all users.
func (r *Registry) TotalSessions() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	total := 0
	for _, subs := range r.sessions {
		total += len(subs)
	}
	return total
}
