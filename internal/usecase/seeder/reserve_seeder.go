package seeder

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/kamaljewellers/reserveops-backend/internal/domain"
)

// ReserveSeeder ensures the six singleton reserve buckets exist at startup.
// Buckets found already present are left alone, whatever their balance.
type ReserveSeeder struct {
	repo domain.ReserveRepository
}

// NewReserveSeeder creates a new ReserveSeeder instance
func NewReserveSeeder(repo domain.ReserveRepository) *ReserveSeeder {
	return &ReserveSeeder{
		repo: repo,
	}
}

// Seed creates a zero-balance document for every bucket in the fixed
// vocabulary that has none yet.
func (s *ReserveSeeder) Seed(ctx context.Context) error {
	kinds := []domain.ReserveKind{
		domain.ReserveKindGold,
		domain.ReserveKindSilver,
		domain.ReserveKindCash,
	}

	for _, kind := range kinds {
		for _, name := range domain.ReserveNames(kind) {
			docs, err := s.repo.QueryBucket(ctx, kind, name)
			if err != nil {
				return domain.NewStorageError("query reserve bucket", err)
			}
			if len(docs) > 0 {
				continue
			}

			doc := &domain.ReserveDocument{
				ID:      uuid.New(),
				Kind:    kind,
				Type:    name,
				Balance: decimal.Zero,
			}
			if err := doc.Validate(); err != nil {
				return err
			}
			if err := s.repo.CreateDocument(ctx, doc); err != nil {
				return domain.NewStorageError("create reserve document", err)
			}
		}
	}

	return nil
}
