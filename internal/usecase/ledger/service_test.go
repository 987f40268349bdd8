package ledger

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/kamaljewellers/reserveops-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockReserveRepository is a mock implementation of ReserveRepository for testing
type MockReserveRepository struct {
	mock.Mock
}

func (m *MockReserveRepository) QueryBucket(ctx context.Context, kind domain.ReserveKind, name string) ([]domain.ReserveDocument, error) {
	args := m.Called(ctx, kind, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReserveDocument), args.Error(1)
}

func (m *MockReserveRepository) UpdateBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error {
	args := m.Called(ctx, id, balance)
	return args.Error(0)
}

func (m *MockReserveRepository) CreateDocument(ctx context.Context, doc *domain.ReserveDocument) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func TestGetBalance_MaxOfDuplicates(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockReserveRepository)
	service := NewService(mockRepo)

	// Setup: three duplicate documents for the same bucket
	docs := []domain.ReserveDocument{
		{ID: uuid.New(), Kind: domain.ReserveKindGold, Type: domain.ReserveLocalGold, Balance: decimal.NewFromInt(40)},
		{ID: uuid.New(), Kind: domain.ReserveKindGold, Type: domain.ReserveLocalGold, Balance: decimal.NewFromInt(55)},
		{ID: uuid.New(), Kind: domain.ReserveKindGold, Type: domain.ReserveLocalGold, Balance: decimal.NewFromInt(12)},
	}
	mockRepo.On("QueryBucket", ctx, domain.ReserveKindGold, domain.ReserveLocalGold).Return(docs, nil)

	// Execute
	balance, err := service.GetBalance(ctx, domain.ReserveKindGold, domain.ReserveLocalGold)

	// Assert: the highest balance wins
	assert.NoError(t, err)
	assert.True(t, decimal.NewFromInt(55).Equal(balance))
	mockRepo.AssertExpectations(t)
}

func TestGetBalance_NoDocuments(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockReserveRepository)
	service := NewService(mockRepo)

	mockRepo.On("QueryBucket", ctx, domain.ReserveKindCash, domain.ReserveLedger).Return([]domain.ReserveDocument{}, nil)

	balance, err := service.GetBalance(ctx, domain.ReserveKindCash, domain.ReserveLedger)

	assert.NoError(t, err)
	assert.True(t, balance.IsZero())
	mockRepo.AssertExpectations(t)
}

func TestGetBalance_NegativeDocumentsIgnored(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockReserveRepository)
	service := NewService(mockRepo)

	// All documents at or below zero: the scan never picks them and the
	// bucket reads as zero.
	docs := []domain.ReserveDocument{
		{ID: uuid.New(), Kind: domain.ReserveKindSilver, Type: domain.ReserveLocalSilver, Balance: decimal.NewFromInt(-3)},
		{ID: uuid.New(), Kind: domain.ReserveKindSilver, Type: domain.ReserveLocalSilver, Balance: decimal.Zero},
	}
	mockRepo.On("QueryBucket", ctx, domain.ReserveKindSilver, domain.ReserveLocalSilver).Return(docs, nil)

	balance, err := service.GetBalance(ctx, domain.ReserveKindSilver, domain.ReserveLocalSilver)

	assert.NoError(t, err)
	assert.True(t, balance.IsZero())
}

func TestGetBalance_StorageError(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockReserveRepository)
	service := NewService(mockRepo)

	mockRepo.On("QueryBucket", ctx, domain.ReserveKindGold, domain.ReserveLocalGold).Return(nil, errors.New("connection refused"))

	_, err := service.GetBalance(ctx, domain.ReserveKindGold, domain.ReserveLocalGold)

	assert.Error(t, err)
	assert.True(t, domain.IsStorageError(err))
}

func TestApplyDelta_WritesToMaxDocument(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockReserveRepository)
	service := NewService(mockRepo)

	maxDocID := uuid.New()
	docs := []domain.ReserveDocument{
		{ID: uuid.New(), Kind: domain.ReserveKindGold, Type: domain.ReserveLocalGold, Balance: decimal.NewFromInt(20)},
		{ID: maxDocID, Kind: domain.ReserveKindGold, Type: domain.ReserveLocalGold, Balance: decimal.NewFromInt(50)},
	}
	mockRepo.On("QueryBucket", ctx, domain.ReserveKindGold, domain.ReserveLocalGold).Return(docs, nil)

	// Consuming 7g must overwrite the max document with 43
	mockRepo.On("UpdateBalance", ctx, maxDocID, mock.MatchedBy(func(b decimal.Decimal) bool {
		return b.Equal(decimal.NewFromInt(43))
	})).Return(nil)

	newBalance, err := service.ApplyDelta(ctx, domain.ReserveKindGold, domain.ReserveLocalGold, decimal.NewFromInt(-7))

	assert.NoError(t, err)
	assert.True(t, decimal.NewFromInt(43).Equal(newBalance))
	mockRepo.AssertExpectations(t)
	mockRepo.AssertNotCalled(t, "CreateDocument")
}

func TestApplyDelta_CreatesDocumentWhenNoneExists(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockReserveRepository)
	service := NewService(mockRepo)

	mockRepo.On("QueryBucket", ctx, domain.ReserveKindCash, domain.ReserveOnline).Return([]domain.ReserveDocument{}, nil)

	mockRepo.On("CreateDocument", ctx, mock.MatchedBy(func(doc *domain.ReserveDocument) bool {
		return doc.Kind == domain.ReserveKindCash &&
			doc.Type == domain.ReserveOnline &&
			doc.Balance.Equal(decimal.NewFromInt(500)) &&
			doc.ID != uuid.Nil
	})).Return(nil)

	newBalance, err := service.ApplyDelta(ctx, domain.ReserveKindCash, domain.ReserveOnline, decimal.NewFromInt(500))

	assert.NoError(t, err)
	assert.True(t, decimal.NewFromInt(500).Equal(newBalance))
	mockRepo.AssertExpectations(t)
	mockRepo.AssertNotCalled(t, "UpdateBalance")
}

func TestApplyDelta_UpdateFailureWrapped(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockReserveRepository)
	service := NewService(mockRepo)

	docID := uuid.New()
	docs := []domain.ReserveDocument{
		{ID: docID, Kind: domain.ReserveKindGold, Type: domain.ReserveBankGold, Balance: decimal.NewFromInt(30)},
	}
	mockRepo.On("QueryBucket", ctx, domain.ReserveKindGold, domain.ReserveBankGold).Return(docs, nil)
	mockRepo.On("UpdateBalance", ctx, docID, mock.Anything).Return(errors.New("write timeout"))

	_, err := service.ApplyDelta(ctx, domain.ReserveKindGold, domain.ReserveBankGold, decimal.NewFromInt(-5))

	assert.Error(t, err)
	assert.True(t, domain.IsStorageError(err))
}
