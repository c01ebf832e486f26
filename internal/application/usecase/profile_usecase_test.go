package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trackwise/trackwise-api/internal/application/dto"
	"github.com/trackwise/trackwise-api/internal/application/usecase"
	"github.com/trackwise/trackwise-api/internal/domain"
	"github.com/trackwise/trackwise-api/internal/domain/entity"
)

func buildProfileUseCase(s *memStore) *usecase.ProfileUseCase {
	return usecase.NewProfileUseCase(memUserRepo{s}, memProfileRepo{s}, memCompanyRepo{s})
}

func seedIdentity(s *memStore, companyID string) *entity.User {
	u := &entity.User{
		ID: uuid.New().String(), Username: "ana", Email: "ana@example.com",
		FirstName: "Ana", LastName: "Gomez",
	}
	s.users[u.ID] = u
	p := &entity.UserProfile{
		ID: uuid.New().String(), UserID: u.ID, CompanyID: companyID,
		Role: entity.RoleBusinessOwner, Department: entity.OwnerDepartment,
		Position: entity.OwnerPosition, IsActive: true, DateJoined: time.Now(),
	}
	s.profiles[p.ID] = p
	return u
}

func TestProfileGet(t *testing.T) {
	s := newMemStore()
	company := seedCompany(s, "Acme Retail")
	user := seedIdentity(s, company.ID)
	uc := buildProfileUseCase(s)

	out, err := uc.Get(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "ana", out.Username)
	assert.Equal(t, "Acme Retail", out.CompanyName)
	assert.Equal(t, entity.RoleBusinessOwner, out.Role)
}

func TestProfileGet_MissingUserAndProfile(t *testing.T) {
	s := newMemStore()
	uc := buildProfileUseCase(s)
	ctx := context.Background()

	_, err := uc.Get(ctx, uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	orphan := &entity.User{ID: uuid.New().String(), Username: "bob"}
	s.users[orphan.ID] = orphan
	_, err = uc.Get(ctx, orphan.ID)
	assert.ErrorIs(t, err, domain.ErrProfileMissing)
}

func TestProfileUpdate_EmptyNamesLeaveIdentityUntouched(t *testing.T) {
	s := newMemStore()
	company := seedCompany(s, "Acme Retail")
	user := seedIdentity(s, company.ID)
	uc := buildProfileUseCase(s)

	out, err := uc.Update(context.Background(), user.ID, dto.UpdateProfileRequest{
		PhoneNumber: "+1 555 0100",
		Notes:       "prefers mornings",
	})
	require.NoError(t, err)

	assert.Equal(t, "Ana", out.FirstName, "an omitted name must not be wiped")
	assert.Equal(t, "Gomez", out.LastName)
	assert.Equal(t, "+1 555 0100", out.PhoneNumber)
}

func TestProfileUpdate_NeverMutatesRoleOrCompany(t *testing.T) {
	s := newMemStore()
	company := seedCompany(s, "Acme Retail")
	user := seedIdentity(s, company.ID)
	uc := buildProfileUseCase(s)

	out, err := uc.Update(context.Background(), user.ID, dto.UpdateProfileRequest{
		FirstName:  "Anna",
		Department: "Operations",
		Position:   "Director",
	})
	require.NoError(t, err)

	assert.Equal(t, "Anna", out.FirstName)
	assert.Equal(t, "Operations", out.Department)
	assert.Equal(t, entity.RoleBusinessOwner, out.Role, "role is immutable through this endpoint")
	assert.Equal(t, company.ID, out.CompanyID, "the company binding is immutable")
}
