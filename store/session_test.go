package store

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/grovetools/staffdesk/state"
)

func TestSessionInitialState(t *testing.T) {
	s := NewSessionStore()
	assert.Equal(t, Session{}, s.Snapshot())
}

func TestSetCredentials(t *testing.T) {
	s := NewSessionStore()
	s.SetCredentials("alice", "tok1")

	session := s.Snapshot()
	assert.Equal(t, "alice", session.User)
	assert.Equal(t, "tok1", session.Token)
	assert.Equal(t, RoleMember, session.Role)
	assert.True(t, session.IsAuthenticated)
}

func TestLogoutRestoresInitialState(t *testing.T) {
	s := NewSessionStore()
	initial := s.Snapshot()

	s.SetCredentials("alice", "tok1")
	s.Logout()

	assert.Equal(t, initial, s.Snapshot())

	// Logout is idempotent.
	s.Logout()
	assert.Equal(t, initial, s.Snapshot())
}

func TestDeriveRole(t *testing.T) {
	assert.Equal(t, RoleAdmin, DeriveRole("admin"))
	assert.Equal(t, RoleMember, DeriveRole("alice"))
	assert.Equal(t, RoleMember, DeriveRole(""))
}

func TestRestore(t *testing.T) {
	t.Run("full credentials", func(t *testing.T) {
		s := NewSessionStore()
		s.Restore(state.Credentials{User: "admin", Token: "tok", Role: "admin"})

		session := s.Snapshot()
		assert.True(t, session.IsAuthenticated)
		assert.Equal(t, RoleAdmin, session.Role)
	})

	t.Run("role re-derived when persisted value is junk", func(t *testing.T) {
		s := NewSessionStore()
		s.Restore(state.Credentials{User: "bob", Token: "tok", Role: "superuser"})
		assert.Equal(t, RoleMember, s.Snapshot().Role)
	})

	t.Run("partial credentials stay anonymous", func(t *testing.T) {
		s := NewSessionStore()
		s.Restore(state.Credentials{User: "bob"})
		assert.Equal(t, Session{}, s.Snapshot())
	})
}

func TestSubscribeReceivesTransitions(t *testing.T) {
	s := NewSessionStore()
	ch := s.Subscribe()

	s.SetCredentials("alice", "tok1")
	got := <-ch
	assert.True(t, got.IsAuthenticated)

	s.Logout()
	got = <-ch
	assert.False(t, got.IsAuthenticated)

	s.Unsubscribe(ch)
	s.SetCredentials("alice", "tok2")
	select {
	case session, ok := <-ch:
		if ok {
			t.Errorf("unsubscribed channel received %+v", session)
		}
	default:
	}
}
