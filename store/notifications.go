package store

import (
	"encoding/json"
	"sync"

	"github.com/google/uuid"
)

// NotificationEvent is an inbound push event as the realtime channel
// delivers it. Data stays opaque; the store never inspects it.
type NotificationEvent struct {
	Type      string          `json:"type"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data"`
	Timestamp string          `json:"timestamp"`
}

// Notification is a stored event with local bookkeeping attached.
type Notification struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data"`
	Timestamp string          `json:"timestamp"`
	IsRead    bool            `json:"isRead"`
}

// NotificationState is a point-in-time snapshot: notifications
// newest-first, plus the unread counter.
type NotificationState struct {
	Notifications []Notification
	UnreadCount   int
}

// NotificationStore is a pure in-memory log of push events. It performs
// no network calls; the realtime channel feeds it.
type NotificationStore struct {
	mu            sync.RWMutex
	notifications []Notification
	unreadCount   int
}

// NewNotificationStore creates an empty notification store.
func NewNotificationStore() *NotificationStore {
	return &NotificationStore{}
}

// Snapshot returns a copy of the current state.
func (s *NotificationStore) Snapshot() NotificationState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return NotificationState{
		Notifications: append([]Notification(nil), s.notifications...),
		UnreadCount:   s.unreadCount,
	}
}

// Add records an inbound event: fresh local id, unread, prepended so the
// newest entry is always first.
func (s *NotificationStore) Add(event NotificationEvent) {
	notification := Notification{
		ID:        uuid.NewString(),
		Type:      event.Type,
		Message:   event.Message,
		Data:      event.Data,
		Timestamp: event.Timestamp,
		IsRead:    false,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications = append([]Notification{notification}, s.notifications...)
	s.unreadCount++
}

// MarkAllRead flips every entry to read and zeroes the counter. Opening
// the notification panel calls this.
func (s *NotificationStore) MarkAllRead() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.notifications {
		s.notifications[i].IsRead = true
	}
	s.unreadCount = 0
}

// Clear empties the log and zeroes the counter.
func (s *NotificationStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications = nil
	s.unreadCount = 0
}

// UnreadCount returns the number of unread notifications.
func (s *NotificationStore) UnreadCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.unreadCount
}
