// Package valuation derives the computed figures of a transaction (fine
// weight, amounts) from its raw form inputs, the way the shop's terminals
// always have.
package valuation

import (
	"strings"

	"github.com/shopspring/decimal"
)

var (
	hundred        = decimal.NewFromInt(100)
	exchangeFactor = decimal.RequireFromString("0.25")
)

// ParseAmount parses a numeric form field leniently: surrounding whitespace
// is ignored and anything unparsable becomes zero. Negative values are a
// caller error and must be rejected before the policy layer; this helper
// does not do that.
func ParseAmount(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ExchangeFigures are the derived fields of an exchange
type ExchangeFigures struct {
	LessAuto decimal.Decimal // touch - less, the effective purity percentage
	Fine     decimal.Decimal // pure-metal-equivalent grams, 2 dp
	Amount   decimal.Decimal // commission: fine * 0.25, rounded to a whole unit
}

// Exchange computes fine weight and commission for a metal exchange.
// Fine is rounded to 2 decimals for the ledger delta; the commission is
// computed from the unrounded fine, matching the terminal forms.
func Exchange(weight, touch, less decimal.Decimal) ExchangeFigures {
	lessAuto := touch.Sub(less)
	rawFine := lessAuto.Div(hundred).Mul(weight)
	return ExchangeFigures{
		LessAuto: lessAuto,
		Fine:     rawFine.Round(2),
		Amount:   rawFine.Mul(exchangeFactor).Round(0),
	}
}

// PurchaseFigures are the derived fields of a purchase
type PurchaseFigures struct {
	LessAuto decimal.Decimal
	Fine     decimal.Decimal // 3 dp for kacha, raw weight for fine metal
	Amount   decimal.Decimal
}

// KachaPurchase computes figures for impure (kacha) metal: purity-adjusted
// fine weight at 3 decimals, amount from the unrounded fine times rate.
func KachaPurchase(weight, touch, less, rate decimal.Decimal) PurchaseFigures {
	lessAuto := touch.Sub(less)
	rawFine := lessAuto.Div(hundred).Mul(weight)
	return PurchaseFigures{
		LessAuto: lessAuto,
		Fine:     rawFine.Round(3),
		Amount:   rawFine.Mul(rate).Round(0),
	}
}

// FinePurchase computes figures for already-pure metal: fine equals weight.
func FinePurchase(weight, rate decimal.Decimal) PurchaseFigures {
	return PurchaseFigures{
		Fine:   weight,
		Amount: weight.Mul(rate).Round(0),
	}
}

// SaleAmount is weight times rate, rounded to a whole unit
func SaleAmount(weight, rate decimal.Decimal) decimal.Decimal {
	return weight.Mul(rate).Round(0)
}
