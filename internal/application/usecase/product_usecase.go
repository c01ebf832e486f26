package usecase

import (
	"context"

	"github.com/trackwise/trackwise-api/internal/application/dto"
	"github.com/trackwise/trackwise-api/internal/domain"
	"github.com/trackwise/trackwise-api/internal/domain/entity"
	"github.com/trackwise/trackwise-api/internal/domain/repository"
)

// ProductUseCase company-scoped reads over the inventory products.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase builds the use case with the persistence port.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// List returns the company's products, filtered and paginated.
func (uc *ProductUseCase) List(ctx context.Context, companyID string, filter repository.ProductFilter, limit, offset int) (*dto.ProductListResponse, error) {
	products, err := uc.repo.ListByCompany(ctx, companyID, filter, limit, offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.repo.CountByCompany(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}
	out := &dto.ProductListResponse{
		Products: make([]dto.ProductResponse, 0, len(products)),
		Page:     dto.PageResponse{Limit: limit, Offset: offset, Total: total},
	}
	for _, p := range products {
		out.Products = append(out.Products, toProductResponse(p))
	}
	return out, nil
}

// Get returns one product of the company, or ErrNotFound. Rows that exist
// under another tenant are also ErrNotFound.
func (uc *ProductUseCase) Get(ctx context.Context, companyID, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetForCompany(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	resp := toProductResponse(product)
	return &resp, nil
}

func toProductResponse(p *entity.Product) dto.ProductResponse {
	state := "in_stock"
	switch {
	case p.OutOfStock():
		state = "out_of_stock"
	case p.LowStock():
		state = "low_stock"
	}
	return dto.ProductResponse{
		ID:         p.ID,
		ItemName:   p.ItemName,
		Category:   p.Category,
		Quantity:   p.Quantity,
		CostPrice:  p.CostPrice,
		TotalValue: p.TotalValue(),
		StockState: state,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}
