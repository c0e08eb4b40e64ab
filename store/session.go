package store

import (
	"sync"

	"github.com/grovetools/staffdesk/state"
)

// Role is an explicit claim on the session rather than a username
// comparison scattered through consumers.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// DeriveRole maps a username to its role. The service has no role claim
// in its token yet, so the privileged account is recognized by name;
// this is the only place that knows that.
func DeriveRole(user string) Role {
	if user == "admin" {
		return RoleAdmin
	}
	return RoleMember
}

// Session is the authentication state. Exactly two shapes are ever
// observable: the zero value (anonymous) and a fully populated one.
type Session struct {
	User            string
	Token           string
	Role            Role
	IsAuthenticated bool
}

// SessionStore holds the session and broadcasts every transition to
// subscribers (the realtime supervisor and the dashboard).
type SessionStore struct {
	mu          sync.RWMutex
	session     Session
	subscribers []chan Session
}

// NewSessionStore creates an anonymous session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{}
}

// Snapshot returns a copy of the current session.
func (s *SessionStore) Snapshot() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session
}

// SetCredentials transitions to the authenticated state, setting all
// session fields together so no partial-credential state is observable.
func (s *SessionStore) SetCredentials(user, token string) {
	s.mu.Lock()
	s.session = Session{
		User:            user,
		Token:           token,
		Role:            DeriveRole(user),
		IsAuthenticated: true,
	}
	session := s.session
	subs := append([]chan Session(nil), s.subscribers...)
	s.mu.Unlock()

	broadcast(subs, session)
}

// Logout unconditionally clears the session. Idempotent.
func (s *SessionStore) Logout() {
	s.mu.Lock()
	s.session = Session{}
	session := s.session
	subs := append([]chan Session(nil), s.subscribers...)
	s.mu.Unlock()

	broadcast(subs, session)
}

// Restore seeds the session from persisted credentials at startup.
// Partial credentials leave the store anonymous.
func (s *SessionStore) Restore(creds state.Credentials) {
	if creds.User == "" || creds.Token == "" {
		return
	}

	role := Role(creds.Role)
	if role != RoleAdmin && role != RoleMember {
		role = DeriveRole(creds.User)
	}

	s.mu.Lock()
	s.session = Session{
		User:            creds.User,
		Token:           creds.Token,
		Role:            role,
		IsAuthenticated: true,
	}
	session := s.session
	subs := append([]chan Session(nil), s.subscribers...)
	s.mu.Unlock()

	broadcast(subs, session)
}

// Subscribe registers for session transitions. The returned channel is
// buffered; a slow consumer drops intermediate states, never blocks the
// store.
func (s *SessionStore) Subscribe() <-chan Session {
	ch := make(chan Session, 8)
	s.mu.Lock()
	s.subscribers = append(s.subscribers, ch)
	s.mu.Unlock()
	return ch
}

// Unsubscribe removes a subscription channel.
func (s *SessionStore) Unsubscribe(ch <-chan Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, sub := range s.subscribers {
		if sub == ch {
			s.subscribers = append(s.subscribers[:i], s.subscribers[i+1:]...)
			return
		}
	}
}

func broadcast(subs []chan Session, session Session) {
	for _, ch := range subs {
		select {
		case ch <- session:
		default:
		}
	}
}
