package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func validExchangeRecord() *TransactionRecord {
	return &TransactionRecord{
		ID:           uuid.New(),
		Kind:         TransactionExchange,
		CustomerName: "Walk-in",
		Metal:        MetalGold,
		Weight:       decimal.NewFromInt(10),
		Touch:        decimal.NewFromInt(92),
		Less:         decimal.NewFromInt(2),
		LessAuto:     decimal.NewFromInt(90),
		Fine:         decimal.NewFromInt(9),
		Amount:       decimal.NewFromInt(2),
		Source:       ReserveLocalGold,
		Employee:     "Asha",
		Date:         "01/09/2026",
	}
}

func TestTransactionRecord_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *TransactionRecord)
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid exchange should pass",
			mutate:  func(r *TransactionRecord) {},
			wantErr: false,
		},
		{
			name:    "missing customer name should fail",
			mutate:  func(r *TransactionRecord) { r.CustomerName = "" },
			wantErr: true,
			errMsg:  "customer name",
		},
		{
			name:    "missing employee should fail",
			mutate:  func(r *TransactionRecord) { r.Employee = "" },
			wantErr: true,
			errMsg:  "employee",
		},
		{
			name:    "exchange with zero fine should fail",
			mutate:  func(r *TransactionRecord) { r.Fine = decimal.Zero },
			wantErr: true,
			errMsg:  "fine weight must be positive",
		},
		{
			name:    "exchange without source should fail",
			mutate:  func(r *TransactionRecord) { r.Source = "" },
			wantErr: true,
			errMsg:  "source bucket",
		},
		{
			name:    "exchange with unknown metal should fail",
			mutate:  func(r *TransactionRecord) { r.Metal = MetalType("COPPER") },
			wantErr: true,
			errMsg:  "GOLD or SILVER",
		},
		{
			name:    "unknown kind should fail",
			mutate:  func(r *TransactionRecord) { r.Kind = TransactionKind("REFUND") },
			wantErr: true,
			errMsg:  "unknown transaction kind",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := validExchangeRecord()
			tt.mutate(record)
			err := record.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTransactionRecord_Validate_Sale(t *testing.T) {
	sale := &TransactionRecord{
		ID:           uuid.New(),
		Kind:         TransactionSale,
		CustomerName: "Walk-in",
		Metal:        MetalSilver,
		Weight:       decimal.NewFromInt(5),
		Rate:         decimal.NewFromInt(90),
		Amount:       decimal.NewFromInt(450),
		Mode:         PaymentModeCash,
		Source:       ReserveLocalSilver,
		Employee:     "Asha",
	}
	assert.NoError(t, sale.Validate())

	sale.Weight = decimal.Zero
	assert.Error(t, sale.Validate())
	sale.Weight = decimal.NewFromInt(5)

	sale.Mode = PaymentMode("CHEQUE")
	assert.Error(t, sale.Validate())
	sale.Mode = PaymentModeOnline
	assert.NoError(t, sale.Validate())

	sale.Source = ""
	assert.Error(t, sale.Validate())
}

func TestTransactionRecord_Validate_Purchase(t *testing.T) {
	purchase := &TransactionRecord{
		ID:           uuid.New(),
		Kind:         TransactionPurchase,
		CustomerName: "Walk-in",
		Metal:        MetalGold,
		SubType:      SubTypeKachaGold,
		Weight:       decimal.NewFromInt(10),
		Fine:         decimal.NewFromInt(9),
		Rate:         decimal.NewFromInt(6000),
		Amount:       decimal.NewFromInt(54000),
		PaymentType:  PurchasePaymentCash,
		CashMode:     CashModePhysical,
		Employee:     "Asha",
	}
	assert.NoError(t, purchase.Validate())

	// CASH purchases need a cash mode, ACCOUNTS purchases do not
	purchase.CashMode = ""
	assert.Error(t, purchase.Validate())
	purchase.PaymentType = PurchasePaymentAccounts
	assert.NoError(t, purchase.Validate())

	purchase.SubType = PurchaseSubType("SCRAP")
	assert.Error(t, purchase.Validate())
	purchase.SubType = SubTypeFineSilver
	assert.NoError(t, purchase.Validate())

	purchase.Amount = decimal.Zero
	assert.Error(t, purchase.Validate())
}
