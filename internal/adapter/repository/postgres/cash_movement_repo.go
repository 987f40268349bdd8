package postgres

import (
	"context"
	"fmt"

	"github.com/kamaljewellers/reserveops-backend/internal/domain"
)

// cashMovementRepository implements domain.CashMovementRepository
type cashMovementRepository struct {
	db *DB
}

// NewCashMovementRepository creates a new cash movement repository
func NewCashMovementRepository(db *DB) domain.CashMovementRepository {
	return &cashMovementRepository{db: db}
}

// Create stores a new cash movement entry
func (r *cashMovementRepository) Create(ctx context.Context, movement *domain.CashMovement) error {
	query := `
		INSERT INTO cash_movements (id, date, type, change, new_balance, reason, by_employee, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.ExecContext(ctx, query,
		movement.ID,
		movement.Date,
		movement.Type,
		movement.Change.String(),
		movement.NewBalance.String(),
		movement.Reason,
		movement.By,
		movement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create cash movement: %w", err)
	}

	return nil
}
