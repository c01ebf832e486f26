// Package auth implements registration, login and password change: the
// account lifecycle binding identity, profile and company together.
package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/trackwise/trackwise-api/internal/application/dto"
	"github.com/trackwise/trackwise-api/internal/domain"
	"github.com/trackwise/trackwise-api/internal/domain/entity"
	"github.com/trackwise/trackwise-api/internal/domain/repository"
	"github.com/trackwise/trackwise-api/pkg/jwt"
)

// JWTConfig token-generation settings for the session.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// UseCase authentication and account-lifecycle operations.
type UseCase struct {
	txRunner  TxRunner
	users     repository.UserRepository
	companies repository.CompanyRepository
	profiles  repository.ProfileRepository
	tickets   repository.VerificationRepository
	jwtCfg    JWTConfig

	// requireVerification gates account creation on a verified email ticket.
	// The policy is explicit because it differed between past deployments.
	requireVerification bool
}

// NewUseCase wires the auth use case.
func NewUseCase(
	txRunner TxRunner,
	users repository.UserRepository,
	companies repository.CompanyRepository,
	profiles repository.ProfileRepository,
	tickets repository.VerificationRepository,
	jwtCfg JWTConfig,
	requireVerification bool,
) *UseCase {
	return &UseCase{
		txRunner:            txRunner,
		users:               users,
		companies:           companies,
		profiles:            profiles,
		tickets:             tickets,
		jwtCfg:              jwtCfg,
		requireVerification: requireVerification,
	}
}

// RegisterBusinessOwner creates identity + company (when new) + owner profile
// in one transaction. Selecting an existing company defers the session to the
// processing/login step (Pending=true, no token); a new company logs the
// owner straight in.
func (uc *UseCase) RegisterBusinessOwner(ctx context.Context, in dto.RegisterOwnerRequest) (*dto.RegistrationResponse, error) {
	email, err := uc.validateIdentity(ctx, in.Username, in.Email, in.Password)
	if err != nil {
		return nil, err
	}

	switch in.CompanyChoice {
	case dto.CompanyChoiceNew:
		if strings.TrimSpace(in.NewCompanyName) == "" {
			return nil, fmt.Errorf("%w: company name is required when creating a new company", domain.ErrInvalidInput)
		}
	case dto.CompanyChoiceExisting:
		if in.CompanyID == "" {
			return nil, fmt.Errorf("%w: please select an existing company", domain.ErrInvalidInput)
		}
	default:
		return nil, fmt.Errorf("%w: company_choice must be new or existing", domain.ErrInvalidInput)
	}

	now := time.Now()
	user := &entity.User{
		ID:        uuid.New().String(),
		Username:  strings.TrimSpace(in.Username),
		Email:     email,
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if user.PasswordHash, err = hashPassword(in.Password); err != nil {
		return nil, err
	}

	var company *entity.Company
	profile := &entity.UserProfile{
		ID:               uuid.New().String(),
		UserID:           user.ID,
		Role:             entity.RoleBusinessOwner,
		AssignedLocation: entity.DefaultLocation,
		Department:       entity.OwnerDepartment,
		Position:         entity.OwnerPosition,
		Notes:            "Business owner account",
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
		if in.CompanyChoice == dto.CompanyChoiceNew {
			company = &entity.Company{
				ID:          uuid.New().String(),
				Name:        strings.TrimSpace(in.NewCompanyName),
				Address:     strings.TrimSpace(in.CompanyAddress),
				ContactInfo: strings.TrimSpace(in.CompanyContact),
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			if err := companies.Create(ctx, company); err != nil {
				return err
			}
		} else {
			var err error
			if company, err = companies.GetByID(ctx, in.CompanyID); err != nil {
				return err
			}
			if company == nil {
				return domain.ErrCompanyNotFound
			}
		}
		profile.CompanyID = company.ID
		if err := profiles.Create(ctx, profile); err != nil {
			return err
		}
		// The verification ticket is consumed by a successful registration.
		return tickets.DeleteByEmail(ctx, email)
	})
	if err != nil {
		return nil, err
	}

	out := &dto.RegistrationResponse{
		User:    toUserResponse(user, profile, company.Name),
		Pending: in.CompanyChoice == dto.CompanyChoiceExisting,
	}
	if !out.Pending {
		if out.Token, err = uc.generateToken(user, profile); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// RegisterStaff creates identity + staff profile bound to an existing company
// in one transaction. Staff always go through the processing/login step, so
// the response is Pending with no token.
func (uc *UseCase) RegisterStaff(ctx context.Context, in dto.RegisterStaffRequest) (*dto.RegistrationResponse, error) {
	email, err := uc.validateIdentity(ctx, in.Username, in.Email, in.Password)
	if err != nil {
		return nil, err
	}
	if in.CompanyID == "" {
		return nil, fmt.Errorf("%w: please select your company", domain.ErrInvalidInput)
	}

	now := time.Now()
	user := &entity.User{
		ID:        uuid.New().String(),
		Username:  strings.TrimSpace(in.Username),
		Email:     email,
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if user.PasswordHash, err = hashPassword(in.Password); err != nil {
		return nil, err
	}

	department := strings.TrimSpace(in.Department)
	if department == "" {
		department = entity.DefaultStaffDepartment
	}
	position := strings.TrimSpace(in.Position)
	if position == "" {
		position = entity.StaffPosition
	}
	profile := &entity.UserProfile{
		ID:               uuid.New().String(),
		UserID:           user.ID,
		CompanyID:        in.CompanyID,
		Role:             entity.RoleStaff,
		AssignedLocation: entity.DefaultLocation,
		Department:       department,
		Position:         position,
		Notes:            "Staff account",
		IsActive:         true,
		DateJoined:       now,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	var companyName string
	err = uc.txRunner.Run(ctx, func(
		users repository.UserRepository,
		companies repository.CompanyRepository,
		profiles repository.ProfileRepository,
		tickets repository.VerificationRepository,
	) error {
		company, err := companies.GetByID(ctx, in.CompanyID)
		if err != nil {
			return err
		}
		if company == nil {
			return domain.ErrCompanyNotFound
		}
		companyName = company.Name
		if err := users.Create(ctx, user); err != nil {
			return err
		}
		if err := profiles.Create(ctx, profile); err != nil {
			return err
		}
		return tickets.DeleteByEmail(ctx, email)
	})
	if err != nil {
		return nil, err
	}

	return &dto.RegistrationResponse{
		User:    toUserResponse(user, profile, companyName),
		Pending: true,
	}, nil
}

// Login verifies username/password, resolves the profile and returns a JWT
// scoped to the profile's company. A missing profile triggers the documented
// fallback: a staff profile bound to the first available company is created,
// but only when no profile exists; an existing one is never overwritten.
func (uc *UseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.users.GetByUsername(ctx, strings.TrimSpace(in.Username))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}

	profile, err := uc.profiles.GetByUserID(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		if profile, err = uc.adoptIntoFirstCompany(ctx, user); err != nil {
			return nil, err
		}
	}
	if !profile.IsActive {
		return nil, domain.ErrForbidden
	}

	company, err := uc.companies.GetByID(ctx, profile.CompanyID)
	if err != nil {
		return nil, err
	}
	companyName := ""
	if company != nil {
		companyName = company.Name
	}

	token, err := uc.generateToken(user, profile)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  toUserResponse(user, profile, companyName),
	}, nil
}

// ChangePassword verifies the current password and stores a new bcrypt hash.
func (uc *UseCase) ChangePassword(ctx context.Context, userID string, in dto.ChangePasswordRequest) error {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.CurrentPassword)); err != nil {
		return fmt.Errorf("%w: current password is incorrect", domain.ErrUnauthorized)
	}
	if len(in.NewPassword) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters", domain.ErrInvalidInput)
	}
	if user.PasswordHash, err = hashPassword(in.NewPassword); err != nil {
		return err
	}
	user.UpdatedAt = time.Now()
	return uc.users.Update(ctx, user)
}

// IsEmailAvailable reports whether no identity holds the address
// (case-insensitive).
func (uc *UseCase) IsEmailAvailable(ctx context.Context, email string) (bool, error) {
	user, err := uc.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return false, err
	}
	return user == nil, nil
}

// IsUsernameAvailable reports whether no identity holds the username.
func (uc *UseCase) IsUsernameAvailable(ctx context.Context, username string) (bool, error) {
	user, err := uc.users.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return false, err
	}
	return user == nil, nil
}

// validateIdentity runs the shared registration checks and returns the
// normalized email. Duplicate pre-checks here give friendly field errors; the
// unique indexes remain the safety net against races.
func (uc *UseCase) validateIdentity(ctx context.Context, username, email, password string) (string, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))

	if username == "" || email == "" || password == "" {
		return "", fmt.Errorf("%w: username, email and password are required", domain.ErrInvalidInput)
	}
	if !strings.Contains(email, "@") {
		return "", fmt.Errorf("%w: malformed email address", domain.ErrInvalidInput)
	}
	if len(password) < 8 {
		return "", fmt.Errorf("%w: password must be at least 8 characters", domain.ErrInvalidInput)
	}

	if existing, err := uc.users.GetByUsername(ctx, username); err != nil {
		return "", err
	} else if existing != nil {
		return "", domain.ErrUsernameAlreadyExists
	}
	if existing, err := uc.users.GetByEmail(ctx, email); err != nil {
		return "", err
	} else if existing != nil {
		return "", domain.ErrEmailAlreadyExists
	}

	if uc.requireVerification {
		ticket, err := uc.tickets.GetUsed(ctx, email)
		if err != nil {
			return "", err
		}
		if ticket == nil {
			return "", domain.ErrEmailNotVerified
		}
	}
	return email, nil
}

// adoptIntoFirstCompany creates a staff profile bound to the oldest company
// for an identity that has none. Errors when no company exists at all.
func (uc *UseCase) adoptIntoFirstCompany(ctx context.Context, user *entity.User) (*entity.UserProfile, error) {
	company, err := uc.companies.GetFirst(ctx)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrProfileMissing
	}
	now := time.Now()
	profile := &entity.UserProfile{
		ID:               uuid.New().String(),
		UserID:           user.ID,
		CompanyID:        company.ID,
		Role:             entity.RoleStaff,
		AssignedLocation: entity.DefaultLocation,
		Department:       entity.DefaultStaffDepartment,
		Position:         entity.StaffPosition,
		Notes:            "Profile auto-created at login",
		IsActive:         true,
		DateJoined:       now,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uc.profiles.Create(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (uc *UseCase) generateToken(user *entity.User, profile *entity.UserProfile) (string, error) {
	return jwt.Generate(uc.jwtCfg.Secret, user.ID, profile.CompanyID, profile.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
}

func hashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func toUserResponse(u *entity.User, p *entity.UserProfile, companyName string) dto.UserResponse {
	return dto.UserResponse{
		ID:               u.ID,
		Username:         u.Username,
		Email:            u.Email,
		FirstName:        u.FirstName,
		LastName:         u.LastName,
		ProfileID:        p.ID,
		CompanyID:        p.CompanyID,
		CompanyName:      companyName,
		Role:             p.Role,
		PhoneNumber:      p.PhoneNumber,
		AssignedLocation: p.AssignedLocation,
		Department:       p.Department,
		Position:         p.Position,
		IsActive:         p.IsActive,
		DateJoined:       p.DateJoined,
	}
}
