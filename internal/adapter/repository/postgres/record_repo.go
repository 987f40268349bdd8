package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/kamaljewellers/reserveops-backend/internal/domain"
)

// recordRepository implements domain.TransactionRecordRepository.
// All three transaction kinds share one table with a kind discriminator;
// kind-specific columns sit at their zero values for the other kinds.
type recordRepository struct {
	db *DB
}

// NewRecordRepository creates a new transaction record repository
func NewRecordRepository(db *DB) domain.TransactionRecordRepository {
	return &recordRepository{db: db}
}

// Create stores a new transaction record
func (r *recordRepository) Create(ctx context.Context, record *domain.TransactionRecord) error {
	query := `
		INSERT INTO transaction_records (
			id, kind, customer_name, metal, sub_type,
			weight, touch, less, less_auto, fine, rate, amount,
			mode, payment_type, cash_mode, source, employee, date, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
	`

	_, err := r.db.ExecContext(ctx, query,
		record.ID,
		string(record.Kind),
		record.CustomerName,
		string(record.Metal),
		string(record.SubType),
		record.Weight.String(),
		record.Touch.String(),
		record.Less.String(),
		record.LessAuto.String(),
		record.Fine.String(),
		record.Rate.String(),
		record.Amount.String(),
		string(record.Mode),
		string(record.PaymentType),
		string(record.CashMode),
		record.Source,
		record.Employee,
		record.Date,
		record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction record: %w", err)
	}

	return nil
}

// List retrieves records of one kind, newest first
func (r *recordRepository) List(ctx context.Context, kind domain.TransactionKind, limit, offset int) ([]*domain.TransactionRecord, error) {
	query := `
		SELECT id, kind, customer_name, metal, sub_type,
		       weight, touch, less, less_auto, fine, rate, amount,
		       mode, payment_type, cash_mode, source, employee, date, created_at
		FROM transaction_records
		WHERE kind = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, string(kind), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction records: %w", err)
	}
	defer rows.Close()

	var records []*domain.TransactionRecord
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transaction records: %w", err)
	}

	return records, nil
}

// Count returns the number of records of one kind
func (r *recordRepository) Count(ctx context.Context, kind domain.TransactionKind) (int, error) {
	query := `SELECT COUNT(*) FROM transaction_records WHERE kind = $1`

	var count int
	if err := r.db.QueryRowContext(ctx, query, string(kind)).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count transaction records: %w", err)
	}
	return count, nil
}

// rowScanner covers *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRecord(row rowScanner) (*domain.TransactionRecord, error) {
	var record domain.TransactionRecord
	var weight, touch, less, lessAuto, fine, rate, amount string

	if err := row.Scan(
		&record.ID,
		&record.Kind,
		&record.CustomerName,
		&record.Metal,
		&record.SubType,
		&weight,
		&touch,
		&less,
		&lessAuto,
		&fine,
		&rate,
		&amount,
		&record.Mode,
		&record.PaymentType,
		&record.CashMode,
		&record.Source,
		&record.Employee,
		&record.Date,
		&record.CreatedAt,
	); err != nil {
		return nil, fmt.Errorf("failed to scan transaction record: %w", err)
	}

	fields := []struct {
		dst *decimal.Decimal
		src string
	}{
		{&record.Weight, weight},
		{&record.Touch, touch},
		{&record.Less, less},
		{&record.LessAuto, lessAuto},
		{&record.Fine, fine},
		{&record.Rate, rate},
		{&record.Amount, amount},
	}
	for _, f := range fields {
		d, err := decimal.NewFromString(f.src)
		if err != nil {
			return nil, fmt.Errorf("failed to parse record decimal: %w", err)
		}
		*f.dst = d
	}

	return &record, nil
}
