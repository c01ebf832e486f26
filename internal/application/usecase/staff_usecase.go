package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/trackwise/trackwise-api/internal/application/auth"
	"github.com/trackwise/trackwise-api/internal/application/dto"
	"github.com/trackwise/trackwise-api/internal/domain"
	"github.com/trackwise/trackwise-api/internal/domain/entity"
	"github.com/trackwise/trackwise-api/internal/domain/repository"
)

// StaffUseCase owner-side staff management. Every operation takes the
// caller's companyID from the session token; staff of other tenants are
// invisible, not forbidden.
type StaffUseCase struct {
	txRunner auth.TxRunner
	users    repository.UserRepository
	profiles repository.ProfileRepository
}

// NewStaffUseCase builds the use case.
func NewStaffUseCase(txRunner auth.TxRunner, users repository.UserRepository, profiles repository.ProfileRepository) *StaffUseCase {
	return &StaffUseCase{txRunner: txRunner, users: users, profiles: profiles}
}

// List returns the company's staff, filtered and paginated.
func (uc *StaffUseCase) List(ctx context.Context, companyID string, filter repository.StaffFilter, limit, offset int) (*dto.StaffListResponse, error) {
	records, err := uc.profiles.ListStaff(ctx, companyID, filter, limit, offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.profiles.CountStaff(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}

	out := &dto.StaffListResponse{
		Staff: make([]dto.StaffResponse, 0, len(records)),
		Page:  dto.PageResponse{Limit: limit, Offset: offset, Total: total},
	}
	for _, rec := range records {
		out.Staff = append(out.Staff, toStaffResponse(rec))
	}
	return out, nil
}

// Get returns one staff member of the company, or ErrNotFound. A profile
// that exists under another tenant is also ErrNotFound.
func (uc *StaffUseCase) Get(ctx context.Context, companyID, profileID string) (*dto.StaffResponse, error) {
	rec, err := uc.profiles.GetStaffByID(ctx, companyID, profileID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, domain.ErrNotFound
	}
	resp := toStaffResponse(rec)
	return &resp, nil
}

// Add creates a staff identity + profile in the owner's company, in one
// transaction.
func (uc *StaffUseCase) Add(ctx context.Context, companyID string, in dto.AddStaffRequest) (*dto.StaffResponse, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if username == "" || email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: username, email and password are required", domain.ErrInvalidInput)
	}
	if len(in.Password) < 8 {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", domain.ErrInvalidInput)
	}
	if existing, err := uc.users.GetByUsername(ctx, username); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrUsernameAlreadyExists
	}
	if existing, err := uc.users.GetByEmail(ctx, email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	department := strings.TrimSpace(in.Department)
	if department == "" {
		department = entity.DefaultStaffDepartment
	}
	location := strings.TrimSpace(in.AssignedLocation)
	if location == "" {
		location = entity.DefaultLocation
	}
	profile := &entity.UserProfile{
		ID:               uuid.New().String(),
		UserID:           user.ID,
		CompanyID:        companyID,
		Role:             entity.RoleStaff,
		PhoneNumber:      strings.TrimSpace(in.PhoneNumber),
		AssignedLocation: location,
		Department:       department,
		Position:         strings.TrimSpace(in.Position),
		Notes:            in.Notes,
		IsActive:         true,
		DateJoined:       now,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	err = uc.txRunner.Run(ctx, func(
		users repository.UserRepository,
		companies repository.CompanyRepository,
		profiles repository.ProfileRepository,
		tickets repository.VerificationRepository,
	) error {
		if err := users.Create(ctx, user); err != nil {
			return err
		}
		return profiles.Create(ctx, profile)
	})
	if err != nil {
		return nil, err
	}

	return uc.Get(ctx, companyID, profile.ID)
}

// SetActive toggles the active flag on a staff profile of the company.
func (uc *StaffUseCase) SetActive(ctx context.Context, companyID, profileID string, active bool) (*dto.StaffResponse, error) {
	rec, err := uc.profiles.GetStaffByID(ctx, companyID, profileID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, domain.ErrNotFound
	}
	rec.Profile.IsActive = active
	rec.Profile.UpdatedAt = time.Now()
	if err := uc.profiles.Update(ctx, &rec.Profile); err != nil {
		return nil, err
	}
	return uc.Get(ctx, companyID, profileID)
}

func toStaffResponse(rec *repository.StaffRecord) dto.StaffResponse {
	return dto.StaffResponse{
		ProfileID:        rec.Profile.ID,
		UserID:           rec.Profile.UserID,
		Username:         rec.Username,
		Email:            rec.Email,
		FirstName:        rec.FirstName,
		LastName:         rec.LastName,
		PhoneNumber:      rec.Profile.PhoneNumber,
		AssignedLocation: rec.Profile.AssignedLocation,
		Department:       rec.Profile.Department,
		Position:         rec.Profile.Position,
		Notes:            rec.Profile.Notes,
		IsActive:         rec.Profile.IsActive,
		DateJoined:       rec.Profile.DateJoined,
	}
}
