package domain

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReserveRepository defines the document-store contract for reserve buckets.
// The store offers per-document operations only; there are no multi-document
// transactions, so callers get no atomicity across a read and a write.
type ReserveRepository interface {
	// QueryBucket returns all documents matching the bucket's logical key.
	// Duplicates are possible and expected to be tolerated by callers.
	QueryBucket(ctx context.Context, kind ReserveKind, name string) ([]ReserveDocument, error)

	// UpdateBalance overwrites the balance of the document at id.
	// The write is unconditioned: last write wins.
	UpdateBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error

	// CreateDocument creates a new reserve document.
	CreateDocument(ctx context.Context, doc *ReserveDocument) error
}

// NotificationRepository persists admin reserve alerts
type NotificationRepository interface {
	// QueryUnseen returns all unseen notifications for a reserve type.
	QueryUnseen(ctx context.Context, reserveType string) ([]*NotificationEvent, error)

	// Create stores a new notification event.
	Create(ctx context.Context, event *NotificationEvent) error

	// MarkSeen acknowledges a notification (seen false -> true).
	MarkSeen(ctx context.Context, id uuid.UUID) error
}

// TransactionRecordRepository persists the durable transaction log
type TransactionRecordRepository interface {
	// Create stores a new record. Records are immutable once created.
	Create(ctx context.Context, record *TransactionRecord) error

	// List retrieves records of one kind, newest first.
	List(ctx context.Context, kind TransactionKind, limit, offset int) ([]*TransactionRecord, error)

	// Count returns the number of records of one kind.
	Count(ctx context.Context, kind TransactionKind) (int, error)
}

// CashMovementRepository persists the cash audit trail
type CashMovementRepository interface {
	Create(ctx context.Context, movement *CashMovement) error
}

// UserRepository resolves employee identities (read-only)
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
}

// TokenRepository persists printed shop tokens
type TokenRepository interface {
	Create(ctx context.Context, token *Token) error

	// Count returns the total number of tokens ever issued; token numbering
	// is derived from it (count+1, duplicate-prone under concurrency).
	Count(ctx context.Context) (int, error)
}

// OrderRepository persists customer ornament orders
type OrderRepository interface {
	Create(ctx context.Context, order *Order) error

	// ListIDs returns every human-readable order ID; order numbering scans
	// them for max+1 (duplicate-prone under concurrency).
	ListIDs(ctx context.Context) ([]string, error)

	List(ctx context.Context) ([]*Order, error)
}
