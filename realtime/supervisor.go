package realtime

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/grovetools/staffdesk/store"
)

// Supervisor keeps the channel's lifetime locked to the session: it
// subscribes to session transitions and connects on login, disconnects
// on logout. Exactly one connection attempt is made per transition
// into the authenticated state.
type Supervisor struct {
	channel  *Channel
	sessions *store.SessionStore
	log      *logrus.Entry
}

// NewSupervisor wires a channel to a session store.
func NewSupervisor(channel *Channel, sessions *store.SessionStore, log *logrus.Entry) *Supervisor {
	return &Supervisor{
		channel:  channel,
		sessions: sessions,
		log:      log,
	}
}

// Run blocks until ctx is cancelled, driving the channel from session
// state. The channel is stopped on every exit path.
func (s *Supervisor) Run(ctx context.Context) {
	updates := s.sessions.Subscribe()
	defer s.sessions.Unsubscribe(updates)
	defer s.channel.Stop()

	// A session restored before Run started never hits the
	// subscription, so seed from the current snapshot.
	s.apply(s.sessions.Snapshot())

	for {
		select {
		case <-ctx.Done():
			return
		case session := <-updates:
			s.apply(session)
		}
	}
}

func (s *Supervisor) apply(session store.Session) {
	if !session.IsAuthenticated {
		s.channel.Stop()
		return
	}
	if err := s.channel.Start(session); err != nil {
		s.log.WithError(err).Warn("realtime channel unavailable")
	}
}
