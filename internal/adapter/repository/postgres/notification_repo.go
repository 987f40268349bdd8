package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/kamaljewellers/reserveops-backend/internal/domain"
)

// notificationRepository implements domain.NotificationRepository
type notificationRepository struct {
	db *DB
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *DB) domain.NotificationRepository {
	return &notificationRepository{db: db}
}

// QueryUnseen returns unseen notifications for a reserve type, oldest first.
// An empty reserveType matches every type.
func (r *notificationRepository) QueryUnseen(ctx context.Context, reserveType string) ([]*domain.NotificationEvent, error) {
	query := `
		SELECT id, reserve_type, message, seen, link, created_at
		FROM admin_notifications
		WHERE seen = FALSE AND ($1 = '' OR reserve_type = $1)
		ORDER BY created_at
	`

	rows, err := r.db.QueryContext(ctx, query, reserveType)
	if err != nil {
		return nil, fmt.Errorf("failed to query unseen notifications: %w", err)
	}
	defer rows.Close()

	var events []*domain.NotificationEvent
	for rows.Next() {
		var event domain.NotificationEvent
		if err := rows.Scan(
			&event.ID,
			&event.ReserveType,
			&event.Message,
			&event.Seen,
			&event.Link,
			&event.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		events = append(events, &event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate notifications: %w", err)
	}

	return events, nil
}

// Create stores a new notification event
func (r *notificationRepository) Create(ctx context.Context, event *domain.NotificationEvent) error {
	query := `
		INSERT INTO admin_notifications (id, reserve_type, message, seen, link, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(ctx, query,
		event.ID,
		event.ReserveType,
		event.Message,
		event.Seen,
		event.Link,
		event.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	return nil
}

// MarkSeen acknowledges a notification
func (r *notificationRepository) MarkSeen(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE admin_notifications
		SET seen = TRUE
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to mark notification seen: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("notification %s not found", id)
	}

	return nil
}
