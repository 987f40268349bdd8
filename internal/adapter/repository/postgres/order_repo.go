package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/kamaljewellers/reserveops-backend/internal/domain"
)

// orderRepository implements domain.OrderRepository
type orderRepository struct {
	db *DB
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *DB) domain.OrderRepository {
	return &orderRepository{db: db}
}

// Create stores an order and its items in a database transaction
func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	dbTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer dbTx.Rollback()

	insertOrderQuery := `
		INSERT INTO orders (id, order_id, customer_name, customer_contact, receiver, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err = dbTx.ExecContext(ctx, insertOrderQuery,
		order.ID,
		order.OrderID,
		order.CustomerName,
		order.CustomerContact,
		order.Receiver,
		order.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	insertItemQuery := `
		INSERT INTO order_items (id, order_id, metal, ornament, quantity, weight)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	for _, item := range order.Items {
		_, err = dbTx.ExecContext(ctx, insertItemQuery,
			item.ID,
			item.OrderID,
			item.Metal,
			item.Ornament,
			item.Quantity,
			item.Weight.String(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert order item: %w", err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// ListIDs returns every human-readable order ID
func (r *orderRepository) ListIDs(ctx context.Context) ([]string, error) {
	query := `SELECT order_id FROM orders`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list order IDs: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan order ID: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate order IDs: %w", err)
	}

	return ids, nil
}

// List returns all orders with their items, newest first
func (r *orderRepository) List(ctx context.Context) ([]*domain.Order, error) {
	query := `
		SELECT id, order_id, customer_name, customer_contact, receiver, created_at
		FROM orders
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	var orders []*domain.Order
	byID := make(map[uuid.UUID]*domain.Order)
	for rows.Next() {
		var order domain.Order
		if err := rows.Scan(
			&order.ID,
			&order.OrderID,
			&order.CustomerName,
			&order.CustomerContact,
			&order.Receiver,
			&order.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, &order)
		byID[order.ID] = &order
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate orders: %w", err)
	}

	itemQuery := `
		SELECT id, order_id, metal, ornament, quantity, weight
		FROM order_items
	`

	itemRows, err := r.db.QueryContext(ctx, itemQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to list order items: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var item domain.OrderItem
		var weightStr string
		if err := itemRows.Scan(
			&item.ID,
			&item.OrderID,
			&item.Metal,
			&item.Ornament,
			&item.Quantity,
			&weightStr,
		); err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}

		weight, err := decimal.NewFromString(weightStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse item weight: %w", err)
		}
		item.Weight = weight

		if order, ok := byID[item.OrderID]; ok {
			order.Items = append(order.Items, item)
		}
	}
	if err := itemRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate order items: %w", err)
	}

	return orders, nil
}
