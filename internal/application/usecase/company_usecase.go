package usecase

import (
	"context"

	"github.com/trackwise/trackwise-api/internal/application/dto"
	"github.com/trackwise/trackwise-api/internal/domain/entity"
	"github.com/trackwise/trackwise-api/internal/domain/repository"
)

// CompanyUseCase read operations over companies. Creation happens inside
// business-owner registration, not here.
type CompanyUseCase struct {
	repo repository.CompanyRepository
}

// NewCompanyUseCase builds the use case with the persistence port.
func NewCompanyUseCase(repo repository.CompanyRepository) *CompanyUseCase {
	return &CompanyUseCase{repo: repo}
}

// List returns companies for the registration dropdown.
func (uc *CompanyUseCase) List(ctx context.Context, limit, offset int) (*dto.CompanyListResponse, error) {
	companies, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	out := &dto.CompanyListResponse{
		Companies: make([]dto.CompanyResponse, 0, len(companies)),
		Page:      dto.PageResponse{Limit: limit, Offset: offset},
	}
	for _, c := range companies {
		out.Companies = append(out.Companies, toCompanyResponse(c))
	}
	return out, nil
}

// GetByID returns one company, or nil when absent.
func (uc *CompanyUseCase) GetByID(ctx context.Context, id string) (*dto.CompanyResponse, error) {
	company, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, nil
	}
	resp := toCompanyResponse(company)
	return &resp, nil
}

func toCompanyResponse(c *entity.Company) dto.CompanyResponse {
	return dto.CompanyResponse{
		ID:          c.ID,
		Name:        c.Name,
		Address:     c.Address,
		ContactInfo: c.ContactInfo,
		CreatedAt:   c.CreatedAt,
	}
}
