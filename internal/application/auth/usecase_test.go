package auth_test

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/trackwise/trackwise-api/internal/application/auth"
	"github.com/trackwise/trackwise-api/internal/application/dto"
	"github.com/trackwise/trackwise-api/internal/domain"
	"github.com/trackwise/trackwise-api/internal/domain/entity"
	"github.com/trackwise/trackwise-api/internal/domain/repository"
	pkgjwt "github.com/trackwise/trackwise-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// In-memory fakes (shared store so the tx runner sees the same data)
// ──────────────────────────────────────────────────────────────────────────────

type store struct {
	users     map[string]*entity.User
	companies map[string]*entity.Company
	profiles  map[string]*entity.UserProfile
	tickets   map[string]*entity.EmailVerificationTicket

	failUserCreate bool // simulates a mid-transaction failure
}

func newStore() *store {
	return &store{
		users:     map[string]*entity.User{},
		companies: map[string]*entity.Company{},
		profiles:  map[string]*entity.UserProfile{},
		tickets:   map[string]*entity.EmailVerificationTicket{},
	}
}

func (s *store) addCompany(name string) *entity.Company {
	c := &entity.Company{ID: uuid.New().String(), Name: name, CreatedAt: time.Now()}
	s.companies[c.ID] = c
	return c
}

func (s *store) addVerifiedTicket(email string) {
	id := uuid.New().String()
	s.tickets[id] = &entity.EmailVerificationTicket{
		ID: id, Email: email, Code: "123456", IsUsed: true, CreatedAt: time.Now(),
	}
}

func (s *store) addUser(username, email, password string) *entity.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	u := &entity.User{
		ID: uuid.New().String(), Username: username, Email: email, PasswordHash: string(hash),
	}
	s.users[u.ID] = u
	return u
}

func (s *store) profileOf(userID string) *entity.UserProfile {
	for _, p := range s.profiles {
		if p.UserID == userID {
			return p
		}
	}
	return nil
}

type userRepo struct{ s *store }

func (r userRepo) Create(_ context.Context, u *entity.User) error {
	if r.s.failUserCreate {
		return errInjected
	}
	cp := *u
	r.s.users[u.ID] = &cp
	return nil
}
func (r userRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	return r.s.users[id], nil
}
func (r userRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	for _, u := range r.s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}
func (r userRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}
func (r userRepo) Update(_ context.Context, u *entity.User) error {
	cp := *u
	r.s.users[u.ID] = &cp
	return nil
}

type companyRepo struct{ s *store }

func (r companyRepo) Create(_ context.Context, c *entity.Company) error {
	cp := *c
	r.s.companies[c.ID] = &cp
	return nil
}
func (r companyRepo) GetByID(_ context.Context, id string) (*entity.Company, error) {
	return r.s.companies[id], nil
}
func (r companyRepo) GetFirst(_ context.Context) (*entity.Company, error) {
	var all []*entity.Company
	for _, c := range r.s.companies {
		all = append(all, c)
	}
	if len(all) == 0 {
		return nil, nil
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.Before(all[j].CreatedAt) })
	return all[0], nil
}
func (r companyRepo) List(_ context.Context, _, _ int) ([]*entity.Company, error) { return nil, nil }
func (r companyRepo) Update(_ context.Context, _ *entity.Company) error           { return nil }

type profileRepo struct{ s *store }

func (r profileRepo) Create(_ context.Context, p *entity.UserProfile) error {
	cp := *p
	r.s.profiles[p.ID] = &cp
	return nil
}
func (r profileRepo) GetByUserID(_ context.Context, userID string) (*entity.UserProfile, error) {
	return r.s.profileOf(userID), nil
}
func (r profileRepo) GetStaffByID(_ context.Context, _, _ string) (*repository.StaffRecord, error) {
	return nil, nil
}
func (r profileRepo) ListStaff(_ context.Context, _ string, _ repository.StaffFilter, _, _ int) ([]*repository.StaffRecord, error) {
	return nil, nil
}
func (r profileRepo) CountStaff(_ context.Context, _ string, _ repository.StaffFilter) (int, error) {
	return 0, nil
}
func (r profileRepo) Update(_ context.Context, p *entity.UserProfile) error {
	cp := *p
	r.s.profiles[p.ID] = &cp
	return nil
}

type ticketRepo struct{ s *store }

func (r ticketRepo) Create(_ context.Context, t *entity.EmailVerificationTicket) error {
	cp := *t
	r.s.tickets[t.ID] = &cp
	return nil
}
func (r ticketRepo) GetLatestUnused(_ context.Context, email string) (*entity.EmailVerificationTicket, error) {
	return r.latest(email, false), nil
}
func (r ticketRepo) GetUsed(_ context.Context, email string) (*entity.EmailVerificationTicket, error) {
	return r.latest(email, true), nil
}
func (r ticketRepo) latest(email string, used bool) *entity.EmailVerificationTicket {
	var best *entity.EmailVerificationTicket
	for _, t := range r.s.tickets {
		if t.Email == email && t.IsUsed == used && (best == nil || t.CreatedAt.After(best.CreatedAt)) {
			best = t
		}
	}
	return best
}
func (r ticketRepo) MarkUsed(_ context.Context, id string) error {
	if t, ok := r.s.tickets[id]; ok {
		t.IsUsed = true
	}
	return nil
}
func (r ticketRepo) Delete(_ context.Context, id string) error {
	delete(r.s.tickets, id)
	return nil
}
func (r ticketRepo) DeleteByEmail(_ context.Context, email string, exceptIDs ...string) error {
	keep := map[string]bool{}
	for _, id := range exceptIDs {
		keep[id] = true
	}
	for id, t := range r.s.tickets {
		if t.Email == email && !keep[id] {
			delete(r.s.tickets, id)
		}
	}
	return nil
}

// txRunner runs the callback against the shared store, snapshotting first so a
// failing callback leaves no partial writes (all-or-nothing, like the real
// transaction).
type txRunner struct{ s *store }

func (r txRunner) Run(_ context.Context, fn func(
	users repository.UserRepository,
	companies repository.CompanyRepository,
	profiles repository.ProfileRepository,
	tickets repository.VerificationRepository,
) error) error {
	snapshot := struct {
		users     map[string]*entity.User
		companies map[string]*entity.Company
		profiles  map[string]*entity.UserProfile
		tickets   map[string]*entity.EmailVerificationTicket
	}{
		users:     copyMap(r.s.users),
		companies: copyMap(r.s.companies),
		profiles:  copyMap(r.s.profiles),
		tickets:   copyMap(r.s.tickets),
	}
	err := fn(userRepo{r.s}, companyRepo{r.s}, profileRepo{r.s}, ticketRepo{r.s})
	if err != nil {
		r.s.users = snapshot.users
		r.s.companies = snapshot.companies
		r.s.profiles = snapshot.profiles
		r.s.tickets = snapshot.tickets
	}
	return err
}

func copyMap[V any](src map[string]V) map[string]V {
	dst := make(map[string]V, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

type failErr string

func (e failErr) Error() string { return string(e) }

const errInjected = failErr("injected failure")

const (
	testSecret = "test-secret-key-for-unit-tests"
	testIssuer = "trackwise-test"
)

func buildUseCase(s *store, requireVerification bool) *auth.UseCase {
	return auth.NewUseCase(
		txRunner{s}, userRepo{s}, companyRepo{s}, profileRepo{s}, ticketRepo{s},
		auth.JWTConfig{Secret: testSecret, ExpMinutes: 60, Issuer: testIssuer},
		requireVerification,
	)
}

func ownerRequest() dto.RegisterOwnerRequest {
	return dto.RegisterOwnerRequest{
		Username:       "ana",
		Email:          "ana@example.com",
		Password:       "secret-pass-1",
		FirstName:      "Ana",
		LastName:       "Gomez",
		CompanyChoice:  dto.CompanyChoiceNew,
		NewCompanyName: "Acme Retail",
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Business-owner registration
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterOwner_NewCompanyLogsStraightIn(t *testing.T) {
	s := newStore()
	s.addVerifiedTicket("ana@example.com")
	uc := buildUseCase(s, true)

	out, err := uc.RegisterBusinessOwner(context.Background(), ownerRequest())
	require.NoError(t, err)

	assert.False(t, out.Pending, "a new company means an immediate session")
	require.NotEmpty(t, out.Token)
	assert.Equal(t, entity.RoleBusinessOwner, out.User.Role)
	assert.Equal(t, "Acme Retail", out.User.CompanyName)
	assert.Equal(t, entity.OwnerDepartment, out.User.Department)
	assert.Equal(t, entity.OwnerPosition, out.User.Position)

	// The token is scoped to the freshly created company with the owner role.
	userID, companyID, role, err := pkgjwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, out.User.ID, userID)
	assert.Equal(t, out.User.CompanyID, companyID)
	assert.Equal(t, entity.RoleBusinessOwner, role)

	require.Len(t, s.companies, 1)
	assert.Empty(t, s.tickets, "registration consumes the verification ticket")
}

func TestRegisterOwner_ExistingCompanyIsPending(t *testing.T) {
	s := newStore()
	company := s.addCompany("Acme Retail")
	s.addVerifiedTicket("ana@example.com")
	uc := buildUseCase(s, true)

	in := ownerRequest()
	in.CompanyChoice = dto.CompanyChoiceExisting
	in.CompanyID = company.ID
	in.NewCompanyName = ""

	out, err := uc.RegisterBusinessOwner(context.Background(), in)
	require.NoError(t, err)

	assert.True(t, out.Pending, "joining an existing company defers the session")
	assert.Empty(t, out.Token, "no token until the processing step completes")
	assert.Equal(t, company.ID, out.User.CompanyID)
	assert.Len(t, s.companies, 1, "no second company may be created")
}

func TestRegisterOwner_UnknownExistingCompany(t *testing.T) {
	s := newStore()
	s.addVerifiedTicket("ana@example.com")
	uc := buildUseCase(s, true)

	in := ownerRequest()
	in.CompanyChoice = dto.CompanyChoiceExisting
	in.CompanyID = uuid.New().String()

	_, err := uc.RegisterBusinessOwner(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrCompanyNotFound)
	assert.Empty(t, s.users, "the transaction must roll the identity back")
	assert.Empty(t, s.profiles)
}

func TestRegisterOwner_InvalidCompanyChoice(t *testing.T) {
	s := newStore()
	s.addVerifiedTicket("ana@example.com")
	uc := buildUseCase(s, true)

	in := ownerRequest()
	in.CompanyChoice = "both"

	_, err := uc.RegisterBusinessOwner(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegisterOwner_UnverifiedEmailRejected(t *testing.T) {
	s := newStore()
	uc := buildUseCase(s, true)

	_, err := uc.RegisterBusinessOwner(context.Background(), ownerRequest())
	assert.ErrorIs(t, err, domain.ErrEmailNotVerified)
	assert.Empty(t, s.users)
	assert.Empty(t, s.companies)
}

func TestRegisterOwner_VerificationOptionalWhenDisabled(t *testing.T) {
	s := newStore()
	uc := buildUseCase(s, false)

	out, err := uc.RegisterBusinessOwner(context.Background(), ownerRequest())
	require.NoError(t, err)
	assert.False(t, out.Pending)
}

func TestRegisterOwner_DuplicateUsernameAndEmail(t *testing.T) {
	s := newStore()
	s.addUser("ana", "other@example.com", "whatever-pass")
	s.addVerifiedTicket("ana@example.com")
	uc := buildUseCase(s, true)

	_, err := uc.RegisterBusinessOwner(context.Background(), ownerRequest())
	assert.ErrorIs(t, err, domain.ErrUsernameAlreadyExists)

	s2 := newStore()
	s2.addUser("bob", "ana@example.com", "whatever-pass")
	s2.addVerifiedTicket("ana@example.com")
	uc2 := buildUseCase(s2, true)

	_, err = uc2.RegisterBusinessOwner(context.Background(), ownerRequest())
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegisterOwner_MidTransactionFailureLeavesNothing(t *testing.T) {
	s := newStore()
	s.addVerifiedTicket("ana@example.com")
	s.failUserCreate = true
	uc := buildUseCase(s, true)

	_, err := uc.RegisterBusinessOwner(context.Background(), ownerRequest())
	require.Error(t, err)
	assert.Empty(t, s.users)
	assert.Empty(t, s.companies)
	assert.Empty(t, s.profiles)
	assert.Len(t, s.tickets, 1, "the ticket survives a rolled-back registration")
}

// ──────────────────────────────────────────────────────────────────────────────
// Staff registration
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterStaff_AlwaysPending(t *testing.T) {
	s := newStore()
	company := s.addCompany("Acme Retail")
	s.addVerifiedTicket("tom@example.com")
	uc := buildUseCase(s, true)

	out, err := uc.RegisterStaff(context.Background(), dto.RegisterStaffRequest{
		Username:  "tom",
		Email:     "tom@example.com",
		Password:  "secret-pass-1",
		FirstName: "Tom",
		LastName:  "Diaz",
		CompanyID: company.ID,
	})
	require.NoError(t, err)

	assert.True(t, out.Pending, "staff never get an immediate session")
	assert.Empty(t, out.Token)
	assert.Equal(t, entity.RoleStaff, out.User.Role)
	assert.Equal(t, entity.DefaultStaffDepartment, out.User.Department, "department defaults when omitted")
	assert.Equal(t, entity.StaffPosition, out.User.Position)
	assert.Equal(t, "Acme Retail", out.User.CompanyName)
}

func TestRegisterStaff_CompanyRequired(t *testing.T) {
	s := newStore()
	s.addVerifiedTicket("tom@example.com")
	uc := buildUseCase(s, true)

	_, err := uc.RegisterStaff(context.Background(), dto.RegisterStaffRequest{
		Username: "tom", Email: "tom@example.com", Password: "secret-pass-1",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.RegisterStaff(context.Background(), dto.RegisterStaffRequest{
		Username: "tom", Email: "tom@example.com", Password: "secret-pass-1",
		CompanyID: uuid.New().String(),
	})
	assert.ErrorIs(t, err, domain.ErrCompanyNotFound)
	assert.Empty(t, s.users)
}

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_Success(t *testing.T) {
	s := newStore()
	company := s.addCompany("Acme Retail")
	user := s.addUser("ana", "ana@example.com", "secret-pass-1")
	s.profiles["p1"] = &entity.UserProfile{
		ID: "p1", UserID: user.ID, CompanyID: company.ID,
		Role: entity.RoleBusinessOwner, IsActive: true,
	}
	uc := buildUseCase(s, true)

	out, err := uc.Login(context.Background(), dto.LoginRequest{Username: "ana", Password: "secret-pass-1"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, company.ID, out.User.CompanyID)
	assert.Equal(t, "Acme Retail", out.User.CompanyName)
}

func TestLogin_BadCredentials(t *testing.T) {
	s := newStore()
	s.addUser("ana", "ana@example.com", "secret-pass-1")
	uc := buildUseCase(s, true)

	_, err := uc.Login(context.Background(), dto.LoginRequest{Username: "ana", Password: "wrong"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Username: "nobody", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_InactiveProfileForbidden(t *testing.T) {
	s := newStore()
	company := s.addCompany("Acme Retail")
	user := s.addUser("ana", "ana@example.com", "secret-pass-1")
	s.profiles["p1"] = &entity.UserProfile{
		ID: "p1", UserID: user.ID, CompanyID: company.ID,
		Role: entity.RoleStaff, IsActive: false,
	}
	uc := buildUseCase(s, true)

	_, err := uc.Login(context.Background(), dto.LoginRequest{Username: "ana", Password: "secret-pass-1"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestLogin_MissingProfileAdoptsFirstCompany(t *testing.T) {
	s := newStore()
	first := s.addCompany("First Co")
	first.CreatedAt = time.Now().Add(-time.Hour)
	s.addCompany("Second Co")
	user := s.addUser("ana", "ana@example.com", "secret-pass-1")
	uc := buildUseCase(s, true)

	out, err := uc.Login(context.Background(), dto.LoginRequest{Username: "ana", Password: "secret-pass-1"})
	require.NoError(t, err)

	assert.Equal(t, first.ID, out.User.CompanyID, "the oldest company adopts the orphan")
	assert.Equal(t, entity.RoleStaff, out.User.Role)

	profile := s.profileOf(user.ID)
	require.NotNil(t, profile, "the fallback must persist the profile")
	assert.Equal(t, entity.DefaultStaffDepartment, profile.Department)
}

func TestLogin_ExistingProfileNeverOverwritten(t *testing.T) {
	s := newStore()
	company := s.addCompany("Owner Co")
	s.addCompany("Other Co")
	user := s.addUser("ana", "ana@example.com", "secret-pass-1")
	s.profiles["p1"] = &entity.UserProfile{
		ID: "p1", UserID: user.ID, CompanyID: company.ID,
		Role: entity.RoleBusinessOwner, IsActive: true,
	}
	uc := buildUseCase(s, true)

	out, err := uc.Login(context.Background(), dto.LoginRequest{Username: "ana", Password: "secret-pass-1"})
	require.NoError(t, err)

	assert.Equal(t, company.ID, out.User.CompanyID, "the existing binding stays")
	assert.Equal(t, entity.RoleBusinessOwner, out.User.Role, "the role stays")
	assert.Len(t, s.profiles, 1, "no second profile may appear")
}

func TestLogin_NoProfileAndNoCompanies(t *testing.T) {
	s := newStore()
	s.addUser("ana", "ana@example.com", "secret-pass-1")
	uc := buildUseCase(s, true)

	_, err := uc.Login(context.Background(), dto.LoginRequest{Username: "ana", Password: "secret-pass-1"})
	assert.ErrorIs(t, err, domain.ErrProfileMissing)
}

// ──────────────────────────────────────────────────────────────────────────────
// Password change and availability probes
// ──────────────────────────────────────────────────────────────────────────────

func TestChangePassword(t *testing.T) {
	s := newStore()
	user := s.addUser("ana", "ana@example.com", "secret-pass-1")
	uc := buildUseCase(s, true)
	ctx := context.Background()

	err := uc.ChangePassword(ctx, user.ID, dto.ChangePasswordRequest{
		CurrentPassword: "wrong", NewPassword: "another-pass-1",
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	err = uc.ChangePassword(ctx, user.ID, dto.ChangePasswordRequest{
		CurrentPassword: "secret-pass-1", NewPassword: "short",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	require.NoError(t, uc.ChangePassword(ctx, user.ID, dto.ChangePasswordRequest{
		CurrentPassword: "secret-pass-1", NewPassword: "another-pass-1",
	}))
	stored := s.users[user.ID]
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("another-pass-1")))
}

func TestAvailabilityProbes(t *testing.T) {
	s := newStore()
	s.addUser("ana", "ana@example.com", "secret-pass-1")
	uc := buildUseCase(s, true)
	ctx := context.Background()

	ok, err := uc.IsEmailAvailable(ctx, "Ana@Example.com")
	require.NoError(t, err)
	assert.False(t, ok, "availability is case-insensitive on email")

	ok, err = uc.IsEmailAvailable(ctx, "free@example.com")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = uc.IsUsernameAvailable(ctx, "ana")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = uc.IsUsernameAvailable(ctx, "Ana")
	require.NoError(t, err)
	assert.True(t, ok, "usernames are case-sensitive, unlike emails")
}
