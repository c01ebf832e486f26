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
	"github.com/trackwise/trackwise-api/internal/domain/repository"
)

func seedStaff(s *memStore, companyID, username, firstName, department string, active bool) *entity.UserProfile {
	u := &entity.User{
		ID: uuid.New().String(), Username: username,
		Email: username + "@example.com", FirstName: firstName,
	}
	s.users[u.ID] = u
	p := &entity.UserProfile{
		ID: uuid.New().String(), UserID: u.ID, CompanyID: companyID,
		Role: entity.RoleStaff, Department: department, Position: entity.StaffPosition,
		IsActive: active, DateJoined: time.Now(),
	}
	s.profiles[p.ID] = p
	return p
}

func buildStaffUseCase(s *memStore) *usecase.StaffUseCase {
	return usecase.NewStaffUseCase(memTxRunner{s}, memUserRepo{s}, memProfileRepo{s})
}

func TestStaffList_ScopedToCompany(t *testing.T) {
	s := newMemStore()
	seedStaff(s, "co-a", "alice", "Alice", "Sales", true)
	seedStaff(s, "co-a", "bob", "Bob", "Warehouse", true)
	seedStaff(s, "co-b", "carol", "Carol", "Sales", true)
	uc := buildStaffUseCase(s)

	out, err := uc.List(context.Background(), "co-a", repository.StaffFilter{}, 20, 0)
	require.NoError(t, err)

	assert.Equal(t, 2, out.Page.Total)
	require.Len(t, out.Staff, 2)
	for _, member := range out.Staff {
		assert.NotEqual(t, "carol", member.Username, "another tenant's staff must never appear")
	}
}

func TestStaffList_Filters(t *testing.T) {
	s := newMemStore()
	seedStaff(s, "co-a", "alice", "Alice", "Sales", true)
	seedStaff(s, "co-a", "bob", "Bob", "Warehouse", false)
	uc := buildStaffUseCase(s)
	ctx := context.Background()

	out, err := uc.List(ctx, "co-a", repository.StaffFilter{Department: "Sales"}, 20, 0)
	require.NoError(t, err)
	require.Len(t, out.Staff, 1)
	assert.Equal(t, "alice", out.Staff[0].Username)

	active := false
	out, err = uc.List(ctx, "co-a", repository.StaffFilter{Active: &active}, 20, 0)
	require.NoError(t, err)
	require.Len(t, out.Staff, 1)
	assert.Equal(t, "bob", out.Staff[0].Username)

	out, err = uc.List(ctx, "co-a", repository.StaffFilter{Search: "ali"}, 20, 0)
	require.NoError(t, err)
	require.Len(t, out.Staff, 1)
	assert.Equal(t, "alice", out.Staff[0].Username)
}

func TestStaffGet_OtherTenantIsNotFound(t *testing.T) {
	s := newMemStore()
	foreign := seedStaff(s, "co-b", "carol", "Carol", "Sales", true)
	uc := buildStaffUseCase(s)

	_, err := uc.Get(context.Background(), "co-a", foreign.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound,
		"a profile under another tenant reads as missing, not forbidden")
}

func TestStaffAdd_CreatesIdentityAndProfile(t *testing.T) {
	s := newMemStore()
	uc := buildStaffUseCase(s)

	out, err := uc.Add(context.Background(), "co-a", dto.AddStaffRequest{
		Username:  "dave",
		Email:     "dave@example.com",
		Password:  "secret-pass-1",
		FirstName: "Dave",
		LastName:  "Lopez",
	})
	require.NoError(t, err)

	assert.Equal(t, "co-a", profileByUser(s, out.UserID).CompanyID)
	assert.Equal(t, entity.RoleStaff, profileByUser(s, out.UserID).Role)
	assert.Equal(t, entity.DefaultStaffDepartment, out.Department)
	assert.True(t, out.IsActive)
}

func TestStaffAdd_DuplicateChecks(t *testing.T) {
	s := newMemStore()
	seedStaff(s, "co-a", "alice", "Alice", "Sales", true)
	uc := buildStaffUseCase(s)
	ctx := context.Background()

	_, err := uc.Add(ctx, "co-a", dto.AddStaffRequest{
		Username: "alice", Email: "new@example.com", Password: "secret-pass-1",
	})
	assert.ErrorIs(t, err, domain.ErrUsernameAlreadyExists)

	_, err = uc.Add(ctx, "co-a", dto.AddStaffRequest{
		Username: "newname", Email: "alice@example.com", Password: "secret-pass-1",
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestStaffSetActive(t *testing.T) {
	s := newMemStore()
	p := seedStaff(s, "co-a", "alice", "Alice", "Sales", true)
	uc := buildStaffUseCase(s)
	ctx := context.Background()

	out, err := uc.SetActive(ctx, "co-a", p.ID, false)
	require.NoError(t, err)
	assert.False(t, out.IsActive)
	assert.False(t, s.profiles[p.ID].IsActive)

	// Deactivating across tenants must fail.
	_, err = uc.SetActive(ctx, "co-b", p.ID, true)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.False(t, s.profiles[p.ID].IsActive, "the cross-tenant call must not touch the row")
}

func profileByUser(s *memStore, userID string) *entity.UserProfile {
	for _, p := range s.profiles {
		if p.UserID == userID {
			return p
		}
	}
	return nil
}
