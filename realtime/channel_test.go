package realtime

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/staffdesk/store"
)

func testLogger() *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logrus.NewEntry(logger)
}

// recordingSink collects delivered notifications behind a mutex so
// tests can poll without racing the read loop.
type recordingSink struct {
	mu     sync.Mutex
	events []store.NotificationEvent
}

func (s *recordingSink) Add(event store.NotificationEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
}

func (s *recordingSink) snapshot() []store.NotificationEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]store.NotificationEvent, len(s.events))
	copy(out, s.events)
	return out
}

func (s *recordingSink) waitFor(t *testing.T, n int) []store.NotificationEvent {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if events := s.snapshot(); len(events) >= n {
			return events
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d notifications, have %d", n, len(s.snapshot()))
	return nil
}

type wsServer struct {
	*httptest.Server

	mu       sync.Mutex
	conns    []*websocket.Conn
	dials    int
	headers  []http.Header
	received [][]byte
}

// newWSServer upgrades every request on /ws and records inbound frames.
func newWSServer(t *testing.T) *wsServer {
	t.Helper()
	s := &wsServer{}
	upgrader := websocket.Upgrader{}

	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		s.mu.Lock()
		s.conns = append(s.conns, conn)
		s.dials++
		s.headers = append(s.headers, r.Header.Clone())
		s.mu.Unlock()

		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			s.mu.Lock()
			s.received = append(s.received, data)
			s.mu.Unlock()
		}
	}))
	t.Cleanup(s.Close)
	return s
}

func (s *wsServer) send(t *testing.T, event Event) {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	require.NotEmpty(t, s.conns, "no connection to send on")
	conn := s.conns[len(s.conns)-1]
	require.NoError(t, conn.WriteJSON(event))
}

func (s *wsServer) dialCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dials
}

func (s *wsServer) receivedFrames() [][]byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([][]byte, len(s.received))
	copy(out, s.received)
	return out
}

func (s *wsServer) waitForConn(t *testing.T, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if s.dialCount() >= n {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for connection %d", n)
}

func memberSession() store.Session {
	return store.Session{
		User:            "carol",
		Token:           "tok-member",
		Role:            store.RoleMember,
		IsAuthenticated: true,
	}
}

func adminSession() store.Session {
	return store.Session{
		User:            "admin",
		Token:           "tok-admin",
		Role:            store.RoleAdmin,
		IsAuthenticated: true,
	}
}

func TestChannelDeliversNotifications(t *testing.T) {
	server := newWSServer(t)
	sink := &recordingSink{}
	channel := NewChannel(server.URL, "/ws", sink, testLogger())

	require.NoError(t, channel.Start(memberSession()))
	defer channel.Stop()
	server.waitForConn(t, 1)

	payload, _ := json.Marshal(store.NotificationEvent{
		Type:      "employee.created",
		Message:   "New employee added",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
	server.send(t, Event{Event: "notification", Payload: payload})
	server.send(t, Event{Event: "ping"})
	server.send(t, Event{Event: "notification", Payload: payload})

	events := sink.waitFor(t, 2)
	assert.Len(t, events, 2)
	assert.Equal(t, "employee.created", events[0].Type)
	assert.Equal(t, "New employee added", events[0].Message)
}

func TestChannelSendsBearerToken(t *testing.T) {
	server := newWSServer(t)
	channel := NewChannel(server.URL, "/ws", &recordingSink{}, testLogger())

	require.NoError(t, channel.Start(memberSession()))
	defer channel.Stop()
	server.waitForConn(t, 1)

	server.mu.Lock()
	header := server.headers[0]
	server.mu.Unlock()
	assert.Equal(t, "Bearer tok-member", header.Get("Authorization"))
}

func TestAdminJoinsPrivilegedRoom(t *testing.T) {
	server := newWSServer(t)
	channel := NewChannel(server.URL, "/ws", &recordingSink{}, testLogger())

	require.NoError(t, channel.Start(adminSession()))
	defer channel.Stop()
	server.waitForConn(t, 1)

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) && len(server.receivedFrames()) == 0 {
		time.Sleep(5 * time.Millisecond)
	}
	frames := server.receivedFrames()
	require.NotEmpty(t, frames, "expected a join frame")

	var join Event
	require.NoError(t, json.Unmarshal(frames[0], &join))
	assert.Equal(t, "join", join.Event)
	assert.JSONEq(t, `{"room":"admin"}`, string(join.Payload))
}

func TestMemberDoesNotJoin(t *testing.T) {
	server := newWSServer(t)
	channel := NewChannel(server.URL, "/ws", &recordingSink{}, testLogger())

	require.NoError(t, channel.Start(memberSession()))
	server.waitForConn(t, 1)
	channel.Stop()

	// The close frame is the only thing the server may have seen.
	for _, frame := range server.receivedFrames() {
		var event Event
		if json.Unmarshal(frame, &event) == nil {
			assert.NotEqual(t, "join", event.Event)
		}
	}
}

func TestStartRequiresAuthentication(t *testing.T) {
	channel := NewChannel("http://localhost:1", "/ws", &recordingSink{}, testLogger())
	err := channel.Start(store.Session{})
	require.Error(t, err)
	assert.False(t, channel.Connected())
}

func TestStartIsIdempotentWhileConnected(t *testing.T) {
	server := newWSServer(t)
	channel := NewChannel(server.URL, "/ws", &recordingSink{}, testLogger())

	require.NoError(t, channel.Start(memberSession()))
	defer channel.Stop()
	require.NoError(t, channel.Start(memberSession()))

	server.waitForConn(t, 1)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 1, server.dialCount())
}

func TestStopSilencesOldConnection(t *testing.T) {
	server := newWSServer(t)
	sink := &recordingSink{}
	channel := NewChannel(server.URL, "/ws", sink, testLogger())

	require.NoError(t, channel.Start(memberSession()))
	server.waitForConn(t, 1)

	channel.Stop()
	assert.False(t, channel.Connected())

	// Anything written after Stop must never reach the sink.
	server.mu.Lock()
	conn := server.conns[0]
	server.mu.Unlock()
	payload, _ := json.Marshal(store.NotificationEvent{Type: "late", Message: "too late"})
	_ = conn.WriteJSON(Event{Event: "notification", Payload: payload})

	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, sink.snapshot())

	// Stop is idempotent.
	channel.Stop()
}

// gatedSink blocks inside Add until released, so tests can hold a
// delivery in flight.
type gatedSink struct {
	entered chan struct{}
	release chan struct{}
}

func (s *gatedSink) Add(event store.NotificationEvent) {
	s.entered <- struct{}{}
	<-s.release
}

func TestStopWaitsForInFlightDelivery(t *testing.T) {
	server := newWSServer(t)
	sink := &gatedSink{
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	channel := NewChannel(server.URL, "/ws", sink, testLogger())

	require.NoError(t, channel.Start(memberSession()))
	server.waitForConn(t, 1)

	payload, _ := json.Marshal(store.NotificationEvent{Type: "slow", Message: "held"})
	server.send(t, Event{Event: "notification", Payload: payload})
	<-sink.entered

	stopped := make(chan struct{})
	go func() {
		channel.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
		t.Fatal("Stop returned while a delivery was still in flight")
	case <-time.After(50 * time.Millisecond):
	}

	close(sink.release)
	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not return after the delivery settled")
	}
	assert.False(t, channel.Connected())
}

func TestConnectFailureReturnsError(t *testing.T) {
	channel := NewChannel("http://127.0.0.1:1", "/ws", &recordingSink{}, testLogger())
	err := channel.Start(memberSession())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ws://127.0.0.1:1/ws")
	assert.False(t, channel.Connected())
}

func TestSupervisorFollowsSession(t *testing.T) {
	server := newWSServer(t)
	sessions := store.NewSessionStore()
	channel := NewChannel(server.URL, "/ws", &recordingSink{}, testLogger())
	supervisor := NewSupervisor(channel, sessions, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		supervisor.Run(ctx)
	}()

	sessions.SetCredentials("alice", "tok")
	server.waitForConn(t, 1)
	assert.True(t, channel.Connected())

	sessions.Logout()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) && channel.Connected() {
		time.Sleep(5 * time.Millisecond)
	}
	assert.False(t, channel.Connected())

	// Logging back in reconnects.
	sessions.SetCredentials("alice", "tok2")
	server.waitForConn(t, 2)
	assert.True(t, channel.Connected())

	cancel()
	<-done
	assert.False(t, channel.Connected())
}

func TestSupervisorSeedsFromRestoredSession(t *testing.T) {
	server := newWSServer(t)
	sessions := store.NewSessionStore()
	sessions.SetCredentials("admin", "tok")

	channel := NewChannel(server.URL, "/ws", &recordingSink{}, testLogger())
	supervisor := NewSupervisor(channel, sessions, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go supervisor.Run(ctx)

	server.waitForConn(t, 1)
	assert.True(t, channel.Connected())
}
