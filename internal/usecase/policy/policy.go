// Package policy holds the pure decision logic for reserve sufficiency and
// admin alerting. Nothing here touches storage; callers feed it balances and
// act on the answers.
package policy

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/kamaljewellers/reserveops-backend/internal/domain"
)

// LowStockThreshold is the balance below which a low-stock alert fires.
// Shared across metal (grams) and cash (currency units).
var LowStockThreshold = decimal.NewFromInt(10)

// Sufficiency is the outcome of a consumption check
type Sufficiency struct {
	Remaining    decimal.Decimal
	Insufficient bool
}

// CheckSufficiency evaluates whether a bucket at current can cover
// requested. The boundary current == requested is sufficient. Callers must
// only apply this to the bucket a transaction consumes from, never to one
// being credited.
func CheckSufficiency(current, requested decimal.Decimal) Sufficiency {
	remaining := current.Sub(requested)
	return Sufficiency{
		Remaining:    remaining,
		Insufficient: remaining.IsNegative(),
	}
}

// EvaluateLowStock reports whether a post-apply balance warrants a low-stock
// alert. Independent of sufficiency: a transaction can go through and still
// leave the bucket low.
func EvaluateLowStock(newBalance decimal.Decimal) bool {
	return newBalance.LessThan(LowStockThreshold)
}

// EvaluateInsufficientAlert reports whether a projected (pre-commit) balance
// warrants an insufficiency alert, so the admin is warned even while the
// transaction itself is blocked.
func EvaluateInsufficientAlert(projected decimal.Decimal) bool {
	return projected.IsNegative()
}

// LowStockMessage builds the admin alert text for a low bucket
func LowStockMessage(bucket domain.ReserveBucket, newBalance decimal.Decimal) string {
	return fmt.Sprintf("%s is low: %s%s remaining!", bucket.Name, newBalance.String(), bucket.Unit())
}

// InsufficientMessage builds the admin alert text for a bucket that cannot
// cover a requested amount
func InsufficientMessage(bucket domain.ReserveBucket, available decimal.Decimal) string {
	return fmt.Sprintf("%s is insufficient for transaction! Only %s%s available.", bucket.Name, available.String(), bucket.Unit())
}

// AdminLink is the admin screen an alert for this bucket points at
func AdminLink(bucket domain.ReserveBucket) string {
	switch bucket.Kind {
	case domain.ReserveKindGold:
		return "/admin/gold-reserves"
	case domain.ReserveKindSilver:
		return "/admin/silver-reserves"
	default:
		return "/admin/cash-reserves"
	}
}
