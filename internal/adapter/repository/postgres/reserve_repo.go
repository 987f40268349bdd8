package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/kamaljewellers/reserveops-backend/internal/domain"
)

// reserveRepository implements domain.ReserveRepository
type reserveRepository struct {
	db *DB
}

// NewReserveRepository creates a new reserve repository
func NewReserveRepository(db *DB) domain.ReserveRepository {
	return &reserveRepository{db: db}
}

// QueryBucket returns all documents matching the bucket's logical key.
// No uniqueness is enforced on (kind, type); duplicates come back as-is.
func (r *reserveRepository) QueryBucket(ctx context.Context, kind domain.ReserveKind, name string) ([]domain.ReserveDocument, error) {
	query := `
		SELECT id, kind, type, balance
		FROM reserve_documents
		WHERE kind = $1 AND type = $2
	`

	rows, err := r.db.QueryContext(ctx, query, string(kind), name)
	if err != nil {
		return nil, fmt.Errorf("failed to query reserve bucket: %w", err)
	}
	defer rows.Close()

	var docs []domain.ReserveDocument
	for rows.Next() {
		var doc domain.ReserveDocument
		var balanceStr string

		if err := rows.Scan(&doc.ID, &doc.Kind, &doc.Type, &balanceStr); err != nil {
			return nil, fmt.Errorf("failed to scan reserve document: %w", err)
		}

		balance, err := decimal.NewFromString(balanceStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse balance: %w", err)
		}
		doc.Balance = balance

		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reserve documents: %w", err)
	}

	return docs, nil
}

// UpdateBalance overwrites the balance at id, unconditioned
func (r *reserveRepository) UpdateBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error {
	query := `
		UPDATE reserve_documents
		SET balance = $2
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, id, balance.String())
	if err != nil {
		return fmt.Errorf("failed to update reserve balance: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("reserve document %s not found", id)
	}

	return nil
}

// CreateDocument creates a new reserve document
func (r *reserveRepository) CreateDocument(ctx context.Context, doc *domain.ReserveDocument) error {
	query := `
		INSERT INTO reserve_documents (id, kind, type, balance)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.db.ExecContext(ctx, query,
		doc.ID,
		string(doc.Kind),
		doc.Type,
		doc.Balance.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to create reserve document: %w", err)
	}

	return nil
}
