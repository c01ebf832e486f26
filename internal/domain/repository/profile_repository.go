package repository

import (
	"context"

	"github.com/trackwise/trackwise-api/internal/domain/entity"
)

// StaffFilter narrows staff listings. Zero values mean "no filter".
type StaffFilter struct {
	Search     string // matches username, first/last name, department, position
	Department string
	Active     *bool // nil = both active and inactive
}

// StaffRecord is the raw row for staff listings: the profile joined with the
// identity fields the UI shows. Produced by the DB; use cases map it to DTOs.
type StaffRecord struct {
	Profile   entity.UserProfile
	Username  string
	Email     string
	FirstName string
	LastName  string
}

// ProfileRepository is the persistence port for UserProfile (DIP).
// Every company-scoped query REQUIRES the caller's companyID; there is no
// unscoped staff listing on purpose.
type ProfileRepository interface {
	Create(ctx context.Context, profile *entity.UserProfile) error
	GetByUserID(ctx context.Context, userID string) (*entity.UserProfile, error)
	// GetStaffByID returns the staff record only when it belongs to companyID;
	// rows outside the tenant come back as nil, not as an error leak.
	GetStaffByID(ctx context.Context, companyID, profileID string) (*StaffRecord, error)
	// ListStaff pages through the company's staff; limit <= 0 disables
	// pagination (the report aggregator walks the full set).
	ListStaff(ctx context.Context, companyID string, filter StaffFilter, limit, offset int) ([]*StaffRecord, error)
	CountStaff(ctx context.Context, companyID string, filter StaffFilter) (int, error)
	Update(ctx context.Context, profile *entity.UserProfile) error
}
