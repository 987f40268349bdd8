// Package sequence issues the human-readable token and order numbers the
// shop prints on receipts. Both schemes scan existing records and take the
// next number, so two terminals issuing at the same moment can mint the
// same ID. Preserved for parity with how the shop has always numbered;
// a single-row counter with an atomic increment is the known fix.
package sequence

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/kamaljewellers/reserveops-backend/internal/domain"
)

// TokenService issues shop tokens numbered Tk-01, Tk-02, ...
type TokenService struct {
	Tokens domain.TokenRepository
}

// NewTokenService creates a new TokenService instance
func NewTokenService(tokens domain.TokenRepository) *TokenService {
	return &TokenService{Tokens: tokens}
}

// NextTokenNo derives the next token number from the total count of tokens
// ever issued (count+1, zero-padded to two digits).
func (s *TokenService) NextTokenNo(ctx context.Context) (string, error) {
	count, err := s.Tokens.Count(ctx)
	if err != nil {
		return "", domain.NewStorageError("count tokens", err)
	}
	return FormatTokenNo(count + 1), nil
}

// Issue creates and stores a new token
func (s *TokenService) Issue(ctx context.Context, name, purpose string, amount decimal.Decimal) (*domain.Token, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("token requires a name")
	}
	if strings.TrimSpace(purpose) == "" {
		return nil, fmt.Errorf("token requires a purpose")
	}

	tokenNo, err := s.NextTokenNo(ctx)
	if err != nil {
		return nil, err
	}

	token := &domain.Token{
		ID:        uuid.New(),
		TokenNo:   tokenNo,
		Name:      name,
		Purpose:   purpose,
		Amount:    amount,
		Date:      time.Now().Format("02/01/2006"),
		CreatedAt: time.Now(),
	}
	if err := s.Tokens.Create(ctx, token); err != nil {
		return nil, domain.NewStorageError("create token", err)
	}
	return token, nil
}

// FormatTokenNo renders a token sequence number as Tk-NN
func FormatTokenNo(n int) string {
	return fmt.Sprintf("Tk-%02d", n)
}

// OrderService issues customer orders numbered ORD-00001, ORD-00002, ...
type OrderService struct {
	Orders domain.OrderRepository
}

// NewOrderService creates a new OrderService instance
func NewOrderService(orders domain.OrderRepository) *OrderService {
	return &OrderService{Orders: orders}
}

// NextOrderID scans the existing order IDs for the highest numeric part and
// returns max+1, zero-padded to five digits. Unparsable IDs are skipped.
func NextOrderID(existing []string) string {
	max := 0
	for _, id := range existing {
		n, err := strconv.Atoi(strings.TrimPrefix(id, "ORD-"))
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	return fmt.Sprintf("ORD-%05d", max+1)
}

// Create numbers and stores a new order
func (s *OrderService) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if strings.TrimSpace(order.CustomerName) == "" {
		return nil, fmt.Errorf("order requires a customer name")
	}
	if len(order.Items) == 0 {
		return nil, fmt.Errorf("order requires at least one item")
	}

	ids, err := s.Orders.ListIDs(ctx)
	if err != nil {
		return nil, domain.NewStorageError("list order IDs", err)
	}

	order.ID = uuid.New()
	order.OrderID = NextOrderID(ids)
	order.CreatedAt = time.Now()
	for i := range order.Items {
		order.Items[i].ID = uuid.New()
		order.Items[i].OrderID = order.ID
	}

	if err := s.Orders.Create(ctx, order); err != nil {
		return nil, domain.NewStorageError("create order", err)
	}
	return order, nil
}

// List returns all orders
func (s *OrderService) List(ctx context.Context) ([]*domain.Order, error) {
	orders, err := s.Orders.List(ctx)
	if err != nil {
		return nil, domain.NewStorageError("list orders", err)
	}
	return orders, nil
}
