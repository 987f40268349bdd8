package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// NotificationEvent is an admin-facing reserve alert. At most one unseen
// event per ReserveType is intended to exist at a time; the check that
// enforces this is check-then-create and therefore racy under concurrent
// triggers. Events are never deleted, only acknowledged (Seen = true).
type NotificationEvent struct {
	ID          uuid.UUID
	ReserveType string // bucket name, e.g. "LOCAL GOLD"
	Message     string
	Seen        bool
	Link        string // admin screen the alert points at
	CreatedAt   time.Time
}

// Validate checks required fields
func (n *NotificationEvent) Validate() error {
	if n.ReserveType == "" {
		return errors.New("notification must have a reserve type")
	}
	if n.Message == "" {
		return errors.New("notification must have a message")
	}
	return nil
}
