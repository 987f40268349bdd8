package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionKind discriminates the three confirmed-transaction flows
type TransactionKind string

const (
	TransactionExchange TransactionKind = "EXCHANGE"
	TransactionSale     TransactionKind = "SALE"
	TransactionPurchase TransactionKind = "PURCHASE"
)

// MetalType is the metal a transaction deals in
type MetalType string

const (
	MetalGold   MetalType = "GOLD"
	MetalSilver MetalType = "SILVER"
)

// PaymentMode is how a sale is paid out
type PaymentMode string

const (
	PaymentModeCash   PaymentMode = "CASH"
	PaymentModeOnline PaymentMode = "ONLINE"
)

// PurchasePayment is where purchase money comes from
type PurchasePayment string

const (
	PurchasePaymentCash     PurchasePayment = "CASH"     // paid from the shop's cash reserves
	PurchasePaymentAccounts PurchasePayment = "ACCOUNTS" // settled out of accounts, reserves untouched
)

// CashMode picks the cash bucket a CASH purchase draws from
type CashMode string

const (
	CashModePhysical CashMode = "PHYSICAL" // LEDGER
	CashModeOnline   CashMode = "ONLINE"
)

// PurchaseSubType distinguishes kacha (impure, touch/less adjusted) from fine metal
type PurchaseSubType string

const (
	SubTypeKachaGold   PurchaseSubType = "KACHA_GOLD"
	SubTypeFineGold    PurchaseSubType = "FINE_GOLD"
	SubTypeKachaSilver PurchaseSubType = "KACHA_SILVER"
	SubTypeFineSilver  PurchaseSubType = "FINE_SILVER"
)

// TransactionRecord is the durable log entry written once per confirmed
// transaction. Immutable once created. Kind-specific fields are zero for
// kinds that do not use them.
type TransactionRecord struct {
	ID           uuid.UUID
	Kind         TransactionKind
	CustomerName string
	Metal        MetalType
	SubType      PurchaseSubType // purchases only
	Weight       decimal.Decimal
	Touch        decimal.Decimal
	Less         decimal.Decimal
	LessAuto     decimal.Decimal
	Fine         decimal.Decimal
	Rate         decimal.Decimal
	Amount       decimal.Decimal
	Mode         PaymentMode     // sales only
	PaymentType  PurchasePayment // purchases only
	CashMode     CashMode        // CASH purchases only
	Source       string          // reserve bucket name resolved at confirmation
	Employee     string
	Date         string // display date, dd/mm/yyyy
	CreatedAt    time.Time
}

// Validate ensures the record carries the fields its kind requires
func (r *TransactionRecord) Validate() error {
	if r.CustomerName == "" {
		return errors.New("transaction record must have a customer name")
	}
	if r.Employee == "" {
		return errors.New("transaction record must have an employee")
	}

	switch r.Kind {
	case TransactionExchange:
		if r.Metal != MetalGold && r.Metal != MetalSilver {
			return errors.New("exchange metal must be GOLD or SILVER")
		}
		if r.Fine.LessThanOrEqual(decimal.Zero) {
			return errors.New("exchange fine weight must be positive")
		}
		if r.Source == "" {
			return errors.New("exchange must reference a source bucket")
		}
	case TransactionSale:
		if r.Metal != MetalGold && r.Metal != MetalSilver {
			return errors.New("sale metal must be GOLD or SILVER")
		}
		if r.Weight.LessThanOrEqual(decimal.Zero) {
			return errors.New("sale weight must be positive")
		}
		if r.Mode != PaymentModeCash && r.Mode != PaymentModeOnline {
			return errors.New("sale mode must be CASH or ONLINE")
		}
		if r.Source == "" {
			return errors.New("sale must reference a source bucket")
		}
	case TransactionPurchase:
		switch r.SubType {
		case SubTypeKachaGold, SubTypeFineGold, SubTypeKachaSilver, SubTypeFineSilver:
		default:
			return fmt.Errorf("purchase sub type %q is not valid", r.SubType)
		}
		if r.PaymentType != PurchasePaymentCash && r.PaymentType != PurchasePaymentAccounts {
			return errors.New("purchase payment type must be CASH or ACCOUNTS")
		}
		if r.PaymentType == PurchasePaymentCash {
			if r.CashMode != CashModePhysical && r.CashMode != CashModeOnline {
				return errors.New("CASH purchase must set cash mode to PHYSICAL or ONLINE")
			}
		}
		if r.Amount.LessThanOrEqual(decimal.Zero) {
			return errors.New("purchase amount must be positive")
		}
	default:
		return fmt.Errorf("unknown transaction kind %q", r.Kind)
	}

	return nil
}
