package usecase_test

import (
	"context"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/trackwise/trackwise-api/internal/domain/entity"
	"github.com/trackwise/trackwise-api/internal/domain/repository"
)

// In-memory fakes shared by the use-case tests. They honor company scoping
// the same way the SQL adapters do, so tenant-isolation tests are meaningful.

type memStore struct {
	users     map[string]*entity.User
	companies map[string]*entity.Company
	profiles  map[string]*entity.UserProfile
	products  map[string]*entity.Product
}

func newMemStore() *memStore {
	return &memStore{
		users:     map[string]*entity.User{},
		companies: map[string]*entity.Company{},
		profiles:  map[string]*entity.UserProfile{},
		products:  map[string]*entity.Product{},
	}
}

func (s *memStore) staffRecord(p *entity.UserProfile) *repository.StaffRecord {
	rec := &repository.StaffRecord{Profile: *p}
	if u, ok := s.users[p.UserID]; ok {
		rec.Username = u.Username
		rec.Email = u.Email
		rec.FirstName = u.FirstName
		rec.LastName = u.LastName
	}
	return rec
}

type memUserRepo struct{ s *memStore }

func (r memUserRepo) Create(_ context.Context, u *entity.User) error {
	cp := *u
	r.s.users[u.ID] = &cp
	return nil
}
func (r memUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	return r.s.users[id], nil
}
func (r memUserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	for _, u := range r.s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}
func (r memUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, nil
}
func (r memUserRepo) Update(_ context.Context, u *entity.User) error {
	cp := *u
	r.s.users[u.ID] = &cp
	return nil
}

type memCompanyRepo struct{ s *memStore }

func (r memCompanyRepo) Create(_ context.Context, c *entity.Company) error {
	cp := *c
	r.s.companies[c.ID] = &cp
	return nil
}
func (r memCompanyRepo) GetByID(_ context.Context, id string) (*entity.Company, error) {
	return r.s.companies[id], nil
}
func (r memCompanyRepo) GetFirst(_ context.Context) (*entity.Company, error) { return nil, nil }
func (r memCompanyRepo) List(_ context.Context, _, _ int) ([]*entity.Company, error) {
	return nil, nil
}
func (r memCompanyRepo) Update(_ context.Context, _ *entity.Company) error { return nil }

type memProfileRepo struct{ s *memStore }

func (r memProfileRepo) Create(_ context.Context, p *entity.UserProfile) error {
	cp := *p
	r.s.profiles[p.ID] = &cp
	return nil
}
func (r memProfileRepo) GetByUserID(_ context.Context, userID string) (*entity.UserProfile, error) {
	for _, p := range r.s.profiles {
		if p.UserID == userID {
			return p, nil
		}
	}
	return nil, nil
}
func (r memProfileRepo) GetStaffByID(_ context.Context, companyID, profileID string) (*repository.StaffRecord, error) {
	p, ok := r.s.profiles[profileID]
	if !ok || p.CompanyID != companyID || p.Role != entity.RoleStaff {
		return nil, nil
	}
	return r.s.staffRecord(p), nil
}
func (r memProfileRepo) ListStaff(_ context.Context, companyID string, filter repository.StaffFilter, limit, offset int) ([]*repository.StaffRecord, error) {
	var out []*repository.StaffRecord
	for _, p := range r.s.profiles {
		if p.CompanyID != companyID || p.Role != entity.RoleStaff {
			continue
		}
		rec := r.s.staffRecord(p)
		if !matchesStaffFilter(rec, filter) {
			continue
		}
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FirstName < out[j].FirstName })
	if limit > 0 {
		if offset >= len(out) {
			return nil, nil
		}
		out = out[offset:]
		if len(out) > limit {
			out = out[:limit]
		}
	}
	return out, nil
}
func (r memProfileRepo) CountStaff(ctx context.Context, companyID string, filter repository.StaffFilter) (int, error) {
	recs, _ := r.ListStaff(ctx, companyID, filter, 0, 0)
	return len(recs), nil
}
func (r memProfileRepo) Update(_ context.Context, p *entity.UserProfile) error {
	cp := *p
	r.s.profiles[p.ID] = &cp
	return nil
}

func matchesStaffFilter(rec *repository.StaffRecord, filter repository.StaffFilter) bool {
	if filter.Department != "" && rec.Profile.Department != filter.Department {
		return false
	}
	if filter.Active != nil && rec.Profile.IsActive != *filter.Active {
		return false
	}
	if filter.Search != "" {
		q := strings.ToLower(filter.Search)
		hay := strings.ToLower(strings.Join([]string{
			rec.Username, rec.FirstName, rec.LastName, rec.Profile.Department, rec.Profile.Position,
		}, " "))
		if !strings.Contains(hay, q) {
			return false
		}
	}
	return true
}

type memProductRepo struct{ s *memStore }

func (r memProductRepo) GetForCompany(_ context.Context, companyID, id string) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok || p.CompanyID != companyID {
		return nil, nil
	}
	return p, nil
}
func (r memProductRepo) ListByCompany(ctx context.Context, companyID string, filter repository.ProductFilter, limit, offset int) ([]*entity.Product, error) {
	all, _ := r.AllByCompany(ctx, companyID, filter)
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}
func (r memProductRepo) AllByCompany(_ context.Context, companyID string, filter repository.ProductFilter) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.s.products {
		if p.CompanyID != companyID {
			continue
		}
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		if filter.From != nil && p.CreatedAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && p.CreatedAt.After(*filter.To) {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ItemName < out[j].ItemName })
	return out, nil
}
func (r memProductRepo) CountByCompany(ctx context.Context, companyID string, filter repository.ProductFilter) (int, error) {
	all, _ := r.AllByCompany(ctx, companyID, filter)
	return len(all), nil
}

// memTxRunner runs the callback directly against the store.
type memTxRunner struct{ s *memStore }

func (r memTxRunner) Run(_ context.Context, fn func(
	users repository.UserRepository,
	companies repository.CompanyRepository,
	profiles repository.ProfileRepository,
	tickets repository.VerificationRepository,
) error) error {
	return fn(memUserRepo{r.s}, memCompanyRepo{r.s}, memProfileRepo{r.s}, nopTicketRepo{})
}

type nopTicketRepo struct{}

func (nopTicketRepo) Create(_ context.Context, _ *entity.EmailVerificationTicket) error { return nil }
func (nopTicketRepo) GetLatestUnused(_ context.Context, _ string) (*entity.EmailVerificationTicket, error) {
	return nil, nil
}
func (nopTicketRepo) GetUsed(_ context.Context, _ string) (*entity.EmailVerificationTicket, error) {
	return nil, nil
}
func (nopTicketRepo) MarkUsed(_ context.Context, _ string) error            { return nil }
func (nopTicketRepo) Delete(_ context.Context, _ string) error              { return nil }
func (nopTicketRepo) DeleteByEmail(_ context.Context, _ string, _ ...string) error { return nil }

func price(v string) decimal.Decimal {
	d, _ := decimal.NewFromString(v)
	return d
}
