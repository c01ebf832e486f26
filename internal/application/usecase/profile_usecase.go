package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/trackwise/trackwise-api/internal/application/dto"
	"github.com/trackwise/trackwise-api/internal/domain"
	"github.com/trackwise/trackwise-api/internal/domain/repository"
)

// ProfileUseCase reads and edits the caller's own profile. Role and company
// binding are never mutated here.
type ProfileUseCase struct {
	users     repository.UserRepository
	profiles  repository.ProfileRepository
	companies repository.CompanyRepository
}

// NewProfileUseCase builds the use case.
func NewProfileUseCase(users repository.UserRepository, profiles repository.ProfileRepository, companies repository.CompanyRepository) *ProfileUseCase {
	return &ProfileUseCase{users: users, profiles: profiles, companies: companies}
}

// Get returns the joined identity+profile view for the user.
// A missing profile is an error state (ErrProfileMissing), not a permission
// failure; handlers turn it into a safe redirect-style response.
func (uc *ProfileUseCase) Get(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	profile, err := uc.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, domain.ErrProfileMissing
	}

	companyName := ""
	if company, err := uc.companies.GetByID(ctx, profile.CompanyID); err != nil {
		return nil, err
	} else if company != nil {
		companyName = company.Name
	}

	return &dto.UserResponse{
		ID:               user.ID,
		Username:         user.Username,
		Email:            user.Email,
		FirstName:        user.FirstName,
		LastName:         user.LastName,
		ProfileID:        profile.ID,
		CompanyID:        profile.CompanyID,
		CompanyName:      companyName,
		Role:             profile.Role,
		PhoneNumber:      profile.PhoneNumber,
		AssignedLocation: profile.AssignedLocation,
		Department:       profile.Department,
		Position:         profile.Position,
		IsActive:         profile.IsActive,
		DateJoined:       profile.DateJoined,
	}, nil
}

// Update edits the HR-ish fields of the caller's own profile and name fields
// of the identity. Empty strings leave names untouched so partial submissions
// do not wipe them.
func (uc *ProfileUseCase) Update(ctx context.Context, userID string, in dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	profile, err := uc.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, domain.ErrProfileMissing
	}

	now := time.Now()
	if name := strings.TrimSpace(in.FirstName); name != "" {
		user.FirstName = name
	}
	if name := strings.TrimSpace(in.LastName); name != "" {
		user.LastName = name
	}
	user.UpdatedAt = now
	if err := uc.users.Update(ctx, user); err != nil {
		return nil, err
	}

	profile.PhoneNumber = strings.TrimSpace(in.PhoneNumber)
	if loc := strings.TrimSpace(in.AssignedLocation); loc != "" {
		profile.AssignedLocation = loc
	}
	if dep := strings.TrimSpace(in.Department); dep != "" {
		profile.Department = dep
	}
	if pos := strings.TrimSpace(in.Position); pos != "" {
		profile.Position = pos
	}
	profile.Notes = in.Notes
	profile.UpdatedAt = now
	if err := uc.profiles.Update(ctx, profile); err != nil {
		return nil, err
	}

	return uc.Get(ctx, userID)
}
