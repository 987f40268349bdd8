package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Token is a printed shop token (Tk-01, Tk-02, ...)
type Token struct {
	ID        uuid.UUID
	TokenNo   string
	Name      string
	Purpose   string
	Amount    decimal.Decimal
	Date      string // display date, dd/mm/yyyy
	CreatedAt time.Time
}

// Order is a customer ornament order (ORD-00001, ...)
type Order struct {
	ID              uuid.UUID
	OrderID         string
	CustomerName    string
	CustomerContact string
	Receiver        string
	Items           []OrderItem
	CreatedAt       time.Time
}

// OrderItem is one ornament line on an order
type OrderItem struct {
	ID       uuid.UUID
	OrderID  uuid.UUID
	Metal    string
	Ornament string
	Quantity int
	Weight   decimal.Decimal
}
