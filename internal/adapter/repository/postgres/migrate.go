package postgres

import (
	"context"
	"fmt"
)

// Migrate creates the schema if it does not exist yet. Decimal columns are
// TEXT on purpose: balances and weights round-trip through
// shopspring/decimal strings and never touch float arithmetic.
//
// reserve_documents deliberately has no unique constraint on (kind, type);
// duplicate documents per bucket are part of the data model and reads take
// the maximum balance.
func Migrate(ctx context.Context, db *DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS reserve_documents (
			id UUID PRIMARY KEY,
			kind TEXT NOT NULL,
			type TEXT NOT NULL,
			balance TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS admin_notifications (
			id UUID PRIMARY KEY,
			reserve_type TEXT NOT NULL,
			message TEXT NOT NULL,
			seen BOOLEAN NOT NULL DEFAULT FALSE,
			link TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS transaction_records (
			id UUID PRIMARY KEY,
			kind TEXT NOT NULL,
			customer_name TEXT NOT NULL,
			metal TEXT NOT NULL,
			sub_type TEXT NOT NULL DEFAULT '',
			weight TEXT NOT NULL,
			touch TEXT NOT NULL,
			less TEXT NOT NULL,
			less_auto TEXT NOT NULL,
			fine TEXT NOT NULL,
			rate TEXT NOT NULL,
			amount TEXT NOT NULL,
			mode TEXT NOT NULL DEFAULT '',
			payment_type TEXT NOT NULL DEFAULT '',
			cash_mode TEXT NOT NULL DEFAULT '',
			source TEXT NOT NULL DEFAULT '',
			employee TEXT NOT NULL,
			date TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS cash_movements (
			id UUID PRIMARY KEY,
			date TEXT NOT NULL,
			type TEXT NOT NULL,
			change TEXT NOT NULL,
			new_balance TEXT NOT NULL,
			reason TEXT NOT NULL,
			by_employee TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS users (
			email TEXT PRIMARY KEY,
			name TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS tokens (
			id UUID PRIMARY KEY,
			token_no TEXT NOT NULL,
			name TEXT NOT NULL,
			purpose TEXT NOT NULL,
			amount TEXT NOT NULL,
			date TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			id UUID PRIMARY KEY,
			order_id TEXT NOT NULL,
			customer_name TEXT NOT NULL,
			customer_contact TEXT NOT NULL DEFAULT '',
			receiver TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS order_items (
			id UUID PRIMARY KEY,
			order_id UUID NOT NULL REFERENCES orders(id),
			metal TEXT NOT NULL,
			ornament TEXT NOT NULL,
			quantity INTEGER NOT NULL,
			weight TEXT NOT NULL
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to migrate schema: %w", err)
		}
	}
	return nil
}
