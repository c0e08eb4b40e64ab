// Package store holds the client-side application state: the session,
// the employee collection, and the notification log. Each store owns its
// state exclusively; nothing outside a store mutates it. Network effects
// live on the employee store's operations; the session and notification
// stores are pure.
package store

import (
	"github.com/sirupsen/logrus"

	"github.com/grovetools/staffdesk/api"
)

// Store is the application-state container, passed by reference to every
// consumer. There are no ambient singletons; tests build their own.
type Store struct {
	Session       *SessionStore
	Employees     *EmployeeStore
	Notifications *NotificationStore
}

// New assembles a store on top of the given API gateway.
func New(client *api.Client, log *logrus.Entry) *Store {
	return &Store{
		Session:       NewSessionStore(),
		Employees:     NewEmployeeStore(client, log),
		Notifications: NewNotificationStore(),
	}
}
