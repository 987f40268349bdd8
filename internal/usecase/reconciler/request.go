package reconciler

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/kamaljewellers/reserveops-backend/internal/domain"
)

// Request is a confirmed transaction awaiting reconciliation. Exactly one
// of ExchangeRequest, SaleRequest, PurchaseRequest implements it; each kind
// binds the workflow to the bucket it consumes and, for sales, the cash
// bucket it credits.
type Request interface {
	// plan resolves the bucket bindings and the record skeleton for this
	// transaction kind, validating the request along the way.
	plan() (*reconcilePlan, error)
}

type consumption struct {
	bucket domain.ReserveBucket
	amount decimal.Decimal
}

type cashCredit struct {
	bucket domain.ReserveBucket
	amount decimal.Decimal
	reason string
}

type reconcilePlan struct {
	consume *consumption
	credit  *cashCredit
	record  *domain.TransactionRecord
}

// ExchangeRequest exchanges customer metal for commission; the chosen metal
// bucket pays out the fine weight.
type ExchangeRequest struct {
	CustomerName string
	Metal        domain.MetalType
	Weight       decimal.Decimal
	Touch        decimal.Decimal
	Less         decimal.Decimal
	LessAuto     decimal.Decimal
	Fine         decimal.Decimal
	Amount       decimal.Decimal
	Source       string // LOCAL GOLD / BANK GOLD / LOCAL SILVER / KAMAL SILVER
}

func (r ExchangeRequest) plan() (*reconcilePlan, error) {
	kind, err := domain.MetalKind(r.Metal)
	if err != nil {
		return nil, err
	}
	bucket := domain.ReserveBucket{Kind: kind, Name: r.Source}
	if err := bucket.Validate(); err != nil {
		return nil, err
	}
	if r.Fine.IsNegative() {
		return nil, errors.New("exchange fine weight must not be negative")
	}

	return &reconcilePlan{
		consume: &consumption{bucket: bucket, amount: r.Fine},
		record: &domain.TransactionRecord{
			Kind:         domain.TransactionExchange,
			CustomerName: r.CustomerName,
			Metal:        r.Metal,
			Weight:       r.Weight,
			Touch:        r.Touch,
			Less:         r.Less,
			LessAuto:     r.LessAuto,
			Fine:         r.Fine,
			Amount:       r.Amount,
			Source:       r.Source,
		},
	}, nil
}

// SaleRequest sells shop metal: the cash bucket for the payment mode is
// credited with the amount, the chosen metal bucket pays out the weight.
// Only the metal side is checked for sufficiency; the cash side is a credit.
type SaleRequest struct {
	CustomerName string
	Metal        domain.MetalType
	Weight       decimal.Decimal
	Rate         decimal.Decimal
	Amount       decimal.Decimal
	Mode         domain.PaymentMode
	Source       string
}

func (r SaleRequest) plan() (*reconcilePlan, error) {
	kind, err := domain.MetalKind(r.Metal)
	if err != nil {
		return nil, err
	}
	bucket := domain.ReserveBucket{Kind: kind, Name: r.Source}
	if err := bucket.Validate(); err != nil {
		return nil, err
	}
	if r.Weight.IsNegative() {
		return nil, errors.New("sale weight must not be negative")
	}
	if r.Amount.IsNegative() {
		return nil, errors.New("sale amount must not be negative")
	}

	cashName := domain.ReserveOnline
	if r.Mode == domain.PaymentModeCash {
		cashName = domain.ReserveLedger
	}

	return &reconcilePlan{
		consume: &consumption{bucket: bucket, amount: r.Weight},
		credit: &cashCredit{
			bucket: domain.ReserveBucket{Kind: domain.ReserveKindCash, Name: cashName},
			amount: r.Amount,
			reason: "sale",
		},
		record: &domain.TransactionRecord{
			Kind:         domain.TransactionSale,
			CustomerName: r.CustomerName,
			Metal:        r.Metal,
			Weight:       r.Weight,
			Rate:         r.Rate,
			Amount:       r.Amount,
			Mode:         r.Mode,
			Source:       r.Source,
		},
	}, nil
}

// PurchaseRequest buys customer metal. When paid from available cash the
// amount is consumed from LEDGER or ONLINE with a blocking sufficiency
// check; out-of-accounts purchases touch no reserve. The purchased metal is
// not credited to any bucket - booking it into stock is a separate, manual
// step, as it always has been.
type PurchaseRequest struct {
	CustomerName string
	Metal        domain.MetalType
	SubType      domain.PurchaseSubType
	Weight       decimal.Decimal
	Touch        decimal.Decimal
	Less         decimal.Decimal
	LessAuto     decimal.Decimal
	Fine         decimal.Decimal
	Rate         decimal.Decimal
	Amount       decimal.Decimal
	PaymentType  domain.PurchasePayment
	CashMode     domain.CashMode
}

func (r PurchaseRequest) plan() (*reconcilePlan, error) {
	if r.Amount.IsNegative() {
		return nil, errors.New("purchase amount must not be negative")
	}

	record := &domain.TransactionRecord{
		Kind:         domain.TransactionPurchase,
		CustomerName: r.CustomerName,
		Metal:        r.Metal,
		SubType:      r.SubType,
		Weight:       r.Weight,
		Touch:        r.Touch,
		Less:         r.Less,
		LessAuto:     r.LessAuto,
		Fine:         r.Fine,
		Rate:         r.Rate,
		Amount:       r.Amount,
		PaymentType:  r.PaymentType,
		CashMode:     r.CashMode,
	}

	if r.PaymentType != domain.PurchasePaymentCash {
		return &reconcilePlan{record: record}, nil
	}

	var cashName string
	switch r.CashMode {
	case domain.CashModePhysical:
		cashName = domain.ReserveLedger
	case domain.CashModeOnline:
		cashName = domain.ReserveOnline
	default:
		return nil, fmt.Errorf("CASH purchase has invalid cash mode %q", r.CashMode)
	}
	record.Source = cashName

	return &reconcilePlan{
		consume: &consumption{
			bucket: domain.ReserveBucket{Kind: domain.ReserveKindCash, Name: cashName},
			amount: r.Amount,
		},
		record: record,
	}, nil
}
