package repository

import (
	"context"
	"time"

	"github.com/trackwise/trackwise-api/internal/domain/entity"
)

// ProductFilter narrows product listings and reports. Zero values mean "no
// filter". From/To bound created_at (inclusive dates).
type ProductFilter struct {
	Category string
	From     *time.Time
	To       *time.Time
}

// ProductRepository is the read port over the inventory app's products.
// This service only consumes them for dashboards, reports and listings, so
// the port is read-only. All queries are company-scoped.
type ProductRepository interface {
	GetForCompany(ctx context.Context, companyID, id string) (*entity.Product, error)
	ListByCompany(ctx context.Context, companyID string, filter ProductFilter, limit, offset int) ([]*entity.Product, error)
	// AllByCompany returns every matching product without pagination; the
	// report aggregator iterates the full set to compute values in app code.
	AllByCompany(ctx context.Context, companyID string, filter ProductFilter) ([]*entity.Product, error)
	CountByCompany(ctx context.Context, companyID string, filter ProductFilter) (int, error)
}
