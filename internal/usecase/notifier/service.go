package notifier

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/kamaljewellers/reserveops-backend/internal/domain"
)

// Forwarder pushes an alert to an out-of-band channel (e.g. Discord).
// Forwarding is best-effort; failures never affect the stored event.
type Forwarder interface {
	Forward(ctx context.Context, event *domain.NotificationEvent) error
}

// Service creates and acknowledges admin reserve alerts with at-most-one
// unseen event per reserve type intended. The guard is check-then-create:
// two concurrent triggers can both pass the check and both create, so the
// real guarantee is at-least-once and the admin screen tolerates duplicates.
type Service struct {
	Notifications domain.NotificationRepository
	Forwarder     Forwarder // optional
}

// NewService creates a new notifier Service instance
func NewService(notifications domain.NotificationRepository, forwarder Forwarder) *Service {
	return &Service{
		Notifications: notifications,
		Forwarder:     forwarder,
	}
}

// NotifyOnce creates event unless an unseen notification for the same
// reserve type already exists. Returns whether a new event was created.
func (s *Service) NotifyOnce(ctx context.Context, event *domain.NotificationEvent) (bool, error) {
	if err := event.Validate(); err != nil {
		return false, err
	}

	existing, err := s.Notifications.QueryUnseen(ctx, event.ReserveType)
	if err != nil {
		return false, domain.NewStorageError("query unseen notifications", err)
	}
	if len(existing) > 0 {
		return false, nil
	}

	event.ID = uuid.New()
	event.Seen = false
	event.CreatedAt = time.Now()

	if err := s.Notifications.Create(ctx, event); err != nil {
		return false, domain.NewStorageError("create notification", err)
	}

	if s.Forwarder != nil {
		if err := s.Forwarder.Forward(ctx, event); err != nil {
			log.Printf("notifier: forward failed for %s: %v", event.ReserveType, err)
		}
	}

	return true, nil
}

// ListUnseen returns the unseen notifications for a reserve type, or for all
// types when reserveType is empty.
func (s *Service) ListUnseen(ctx context.Context, reserveType string) ([]*domain.NotificationEvent, error) {
	events, err := s.Notifications.QueryUnseen(ctx, reserveType)
	if err != nil {
		return nil, domain.NewStorageError("query unseen notifications", err)
	}
	return events, nil
}

// MarkSeen acknowledges a notification. Only an administrator does this;
// events are never deleted.
func (s *Service) MarkSeen(ctx context.Context, id uuid.UUID) error {
	if err := s.Notifications.MarkSeen(ctx, id); err != nil {
		return domain.NewStorageError("mark notification seen", err)
	}
	return nil
}
