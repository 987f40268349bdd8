package postgres

import (
	"context"
	"fmt"

	"github.com/kamaljewellers/reserveops-backend/internal/domain"
)

// tokenRepository implements domain.TokenRepository
type tokenRepository struct {
	db *DB
}

// NewTokenRepository creates a new token repository
func NewTokenRepository(db *DB) domain.TokenRepository {
	return &tokenRepository{db: db}
}

// Create stores a new token
func (r *tokenRepository) Create(ctx context.Context, token *domain.Token) error {
	query := `
		INSERT INTO tokens (id, token_no, name, purpose, amount, date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.ExecContext(ctx, query,
		token.ID,
		token.TokenNo,
		token.Name,
		token.Purpose,
		token.Amount.String(),
		token.Date,
		token.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create token: %w", err)
	}

	return nil
}

// Count returns the total number of tokens ever issued
func (r *tokenRepository) Count(ctx context.Context) (int, error) {
	query := `SELECT COUNT(*) FROM tokens`

	var count int
	if err := r.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count tokens: %w", err)
	}
	return count, nil
}
