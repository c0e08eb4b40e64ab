// Package realtime maintains the push-notification channel: a single
// websocket connection that exists only while the session is
// authenticated, relaying inbound events into the notification store.
package realtime

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/grovetools/staffdesk/errors"
	"github.com/grovetools/staffdesk/store"
)

// Event is the wire envelope for both directions of the channel.
type Event struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Sink receives inbound notification payloads. *store.NotificationStore
// satisfies it.
type Sink interface {
	Add(event store.NotificationEvent)
}

// Channel owns at most one websocket connection at a time. Start and
// Stop are safe to call from any goroutine and in any order; a
// generation counter guarantees that no callback from a torn-down
// connection ever reaches the sink.
type Channel struct {
	baseURL string
	path    string
	sink    Sink
	log     *logrus.Entry
	dialer  *websocket.Dialer

	mu         sync.Mutex
	conn       *websocket.Conn
	generation int
}

// NewChannel creates a channel against the API host. path is the
// websocket endpoint, normally /ws.
func NewChannel(baseURL, path string, sink Sink, log *logrus.Entry) *Channel {
	return &Channel{
		baseURL: baseURL,
		path:    path,
		sink:    sink,
		log:     log,
		dialer:  websocket.DefaultDialer,
	}
}

// Start opens the connection for an authenticated session. It no-ops if
// a connection is already up. Admin sessions additionally join the
// privileged broadcast group before the read loop begins.
func (c *Channel) Start(session store.Session) error {
	if !session.IsAuthenticated {
		return errors.AuthRequired()
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		return nil
	}

	url := websocketURL(c.baseURL) + c.path
	header := http.Header{}
	header.Set("Authorization", "Bearer "+session.Token)

	conn, resp, err := c.dialer.Dial(url, header)
	if err != nil {
		if resp != nil {
			resp.Body.Close()
		}
		return errors.ChannelConnect(url, err)
	}

	if session.Role == store.RoleAdmin {
		join := Event{Event: "join", Payload: json.RawMessage(`{"room":"admin"}`)}
		if err := conn.WriteJSON(join); err != nil {
			conn.Close()
			return errors.ChannelConnect(url, err)
		}
	}

	c.generation++
	c.conn = conn
	go c.readLoop(conn, c.generation)

	c.log.WithField("url", url).Info("realtime channel connected")
	return nil
}

// Stop tears down the connection. Idempotent; after Stop returns, the
// old read loop can no longer deliver events.
func (c *Channel) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return
	}

	c.generation++
	c.conn.Close()
	c.conn = nil
	c.log.Info("realtime channel closed")
}

// Connected reports whether a connection is currently up.
func (c *Channel) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn != nil
}

func (c *Channel) readLoop(conn *websocket.Conn, generation int) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			c.mu.Lock()
			// Only clear state if this loop still owns the connection;
			// otherwise Stop (or a restart) already took care of it.
			if c.generation == generation {
				c.conn = nil
				c.generation++
			}
			c.mu.Unlock()
			return
		}

		var event Event
		if err := json.Unmarshal(data, &event); err != nil {
			c.log.WithError(err).Debug("dropping malformed realtime frame")
			continue
		}
		if event.Event != "notification" {
			continue
		}

		var notification store.NotificationEvent
		if err := json.Unmarshal(event.Payload, &notification); err != nil {
			c.log.WithError(err).Debug("dropping malformed notification payload")
			continue
		}

		// Deliver under the lock so Stop cannot return while an event
		// is in flight to the sink.
		c.mu.Lock()
		if c.generation != generation {
			c.mu.Unlock()
			return
		}
		c.sink.Add(notification)
		c.mu.Unlock()
	}
}

// websocketURL maps the API base URL onto the ws scheme.
func websocketURL(baseURL string) string {
	switch {
	case strings.HasPrefix(baseURL, "https://"):
		return "wss://" + strings.TrimPrefix(baseURL, "https://")
	case strings.HasPrefix(baseURL, "http://"):
		return "ws://" + strings.TrimPrefix(baseURL, "http://")
	default:
		return baseURL
	}
}
