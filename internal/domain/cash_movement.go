package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CashMovement is the audit entry written whenever a cash reserve is
// credited by a sale. Downstream reporting reads these; nothing feeds back.
type CashMovement struct {
	ID         uuid.UUID
	Date       string // display date, dd/mm/yyyy
	Type       string // LEDGER or ONLINE
	Change     decimal.Decimal
	NewBalance decimal.Decimal
	Reason     string
	By         string // employee display name
	CreatedAt  time.Time
}
