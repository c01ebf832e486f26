package repository

import (
	"context"

	"github.com/trackwise/trackwise-api/internal/domain/entity"
)

// CompanyRepository is the persistence port for Company (DIP).
// Implementations live in infrastructure.
type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	GetByID(ctx context.Context, id string) (*entity.Company, error)
	// GetFirst returns the oldest company, or nil if none exist. Used only by
	// the fallback that adopts a profile-less user into the first tenant.
	GetFirst(ctx context.Context) (*entity.Company, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Company, error)
	Update(ctx context.Context, company *entity.Company) error
}
