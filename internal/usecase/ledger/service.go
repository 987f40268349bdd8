package ledger

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/kamaljewellers/reserveops-backend/internal/domain"
)

// Service reads and mutates the balance of named reserve buckets.
//
// Read policy: a bucket may be backed by several duplicate documents; the
// highest-valued one is treated as authoritative. This mirrors the behavior
// the shop has always run with (duplicates should be at the same value, and
// when they are not, the max survives). It is intentionally preserved, not
// endorsed - see DESIGN.md.
type Service struct {
	Reserves domain.ReserveRepository
}

// NewService creates a new ledger Service instance
func NewService(reserves domain.ReserveRepository) *Service {
	return &Service{Reserves: reserves}
}

// GetBalance returns the maximum balance among all documents matching the
// bucket, or zero when none exist.
func (s *Service) GetBalance(ctx context.Context, kind domain.ReserveKind, name string) (decimal.Decimal, error) {
	balance, _, err := s.readMax(ctx, kind, name)
	return balance, err
}

// ApplyDelta re-reads the bucket's current maximum balance, computes
// current+delta, and writes it back to the document the re-read identified.
// delta is negative for consumption, positive for replenishment. When no
// document exists one is created with balance = delta.
//
// The read and the write are separate store operations with no version
// check between them: two concurrent callers can both read the same current
// balance and the second write silently overwrites the first (lost update).
// That race is a documented property of this ledger, not a guarantee it
// tries to give.
func (s *Service) ApplyDelta(ctx context.Context, kind domain.ReserveKind, name string, delta decimal.Decimal) (decimal.Decimal, error) {
	current, docID, err := s.readMax(ctx, kind, name)
	if err != nil {
		return decimal.Zero, err
	}

	newBalance := current.Add(delta)

	if docID != uuid.Nil {
		if err := s.Reserves.UpdateBalance(ctx, docID, newBalance); err != nil {
			return decimal.Zero, domain.NewStorageError("update reserve balance", err)
		}
		return newBalance, nil
	}

	doc := &domain.ReserveDocument{
		ID:      uuid.New(),
		Kind:    kind,
		Type:    name,
		Balance: newBalance,
	}
	if err := doc.Validate(); err != nil {
		return decimal.Zero, err
	}
	if err := s.Reserves.CreateDocument(ctx, doc); err != nil {
		return decimal.Zero, domain.NewStorageError("create reserve document", err)
	}
	return newBalance, nil
}

// readMax scans the bucket's documents for the highest balance and the
// document carrying it. Starts from zero, so documents at or below zero are
// never picked as the write target.
func (s *Service) readMax(ctx context.Context, kind domain.ReserveKind, name string) (decimal.Decimal, uuid.UUID, error) {
	docs, err := s.Reserves.QueryBucket(ctx, kind, name)
	if err != nil {
		return decimal.Zero, uuid.Nil, domain.NewStorageError("query reserve bucket", err)
	}

	max := decimal.Zero
	var docID uuid.UUID
	for _, doc := range docs {
		if doc.Balance.GreaterThan(max) {
			max = doc.Balance
			docID = doc.ID
		}
	}
	return max, docID, nil
}
