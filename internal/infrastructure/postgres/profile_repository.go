package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/trackwise/trackwise-api/internal/domain/entity"
	"github.com/trackwise/trackwise-api/internal/domain/repository"
)

var _ repository.ProfileRepository = (*ProfileRepo)(nil)

const profileColumns = `id, user_id, company_id, role, phone_number, assigned_location,
	department, position, notes, is_active, date_joined, created_at, updated_at`

// ProfileRepo implements the ProfileRepository port over PostgreSQL.
// Works with a pool or a transaction (Querier).
type ProfileRepo struct {
	q Querier
}

// NewProfileRepository builds the persistence adapter for user profiles.
func NewProfileRepository(q Querier) *ProfileRepo {
	return &ProfileRepo{q: q}
}

// Create persists a new profile. The unique index on user_id keeps the
// one-to-one with users.
func (r *ProfileRepo) Create(ctx context.Context, p *entity.UserProfile) error {
	query := `
		INSERT INTO user_profiles (id, user_id, company_id, role, phone_number, assigned_location,
			department, position, notes, is_active, date_joined, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.UserID, p.CompanyID, p.Role, p.PhoneNumber, p.AssignedLocation,
		p.Department, p.Position, p.Notes, p.IsActive, p.DateJoined, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert profile: %w", err)
	}
	return nil
}

// GetByUserID fetches the profile of an identity, or nil when absent.
func (r *ProfileRepo) GetByUserID(ctx context.Context, userID string) (*entity.UserProfile, error) {
	query := `SELECT ` + profileColumns + ` FROM user_profiles WHERE user_id = $1`
	var p entity.UserProfile
	err := r.q.QueryRow(ctx, query, userID).Scan(
		&p.ID, &p.UserID, &p.CompanyID, &p.Role, &p.PhoneNumber, &p.AssignedLocation,
		&p.Department, &p.Position, &p.Notes, &p.IsActive, &p.DateJoined, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get profile by user id: %w", err)
	}
	return &p, nil
}

// GetStaffByID fetches one staff record scoped to the company. Rows of other
// tenants come back as nil.
func (r *ProfileRepo) GetStaffByID(ctx context.Context, companyID, profileID string) (*repository.StaffRecord, error) {
	query := staffSelect + ` WHERE p.company_id = $1 AND p.id = $2 AND p.role = 'staff'`
	rec, err := scanStaffRecord(r.q.QueryRow(ctx, query, companyID, profileID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get staff by id: %w", err)
	}
	return rec, nil
}

// ListStaff pages through the company's staff, ordered by first name.
// limit <= 0 disables pagination.
func (r *ProfileRepo) ListStaff(ctx context.Context, companyID string, filter repository.StaffFilter, limit, offset int) ([]*repository.StaffRecord, error) {
	query, args := buildStaffQuery(staffSelect, companyID, filter)
	query += ` ORDER BY u.first_name ASC, u.username ASC`
	if limit > 0 {
		query += ` LIMIT $` + strconv.Itoa(len(args)+1) + ` OFFSET $` + strconv.Itoa(len(args)+2)
		args = append(args, limit, offset)
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list staff: %w", err)
	}
	defer rows.Close()

	var list []*repository.StaffRecord
	for rows.Next() {
		rec, err := scanStaffRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan staff: %w", err)
		}
		list = append(list, rec)
	}
	return list, rows.Err()
}

// CountStaff counts the company's staff under the same filter as ListStaff.
func (r *ProfileRepo) CountStaff(ctx context.Context, companyID string, filter repository.StaffFilter) (int, error) {
	query, args := buildStaffQuery(
		`SELECT COUNT(*) FROM user_profiles p JOIN users u ON u.id = p.user_id`,
		companyID, filter,
	)
	var count int
	if err := r.q.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count staff: %w", err)
	}
	return count, nil
}

// Update persists profile changes. Role and company are deliberately not in
// the SET list; they are immutable post-creation.
func (r *ProfileRepo) Update(ctx context.Context, p *entity.UserProfile) error {
	query := `
		UPDATE user_profiles SET phone_number = $2, assigned_location = $3, department = $4,
			position = $5, notes = $6, is_active = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.PhoneNumber, p.AssignedLocation, p.Department,
		p.Position, p.Notes, p.IsActive, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	return nil
}

const staffSelect = `
	SELECT p.id, p.user_id, p.company_id, p.role, p.phone_number, p.assigned_location,
		p.department, p.position, p.notes, p.is_active, p.date_joined, p.created_at, p.updated_at,
		u.username, u.email, u.first_name, u.last_name
	FROM user_profiles p
	JOIN users u ON u.id = p.user_id`

// buildStaffQuery appends the shared WHERE clause for staff listing/counting.
func buildStaffQuery(base, companyID string, filter repository.StaffFilter) (string, []any) {
	clauses := []string{`p.company_id = $1`, `p.role = 'staff'`}
	args := []any{companyID}

	if filter.Search != "" {
		n := strconv.Itoa(len(args) + 1)
		clauses = append(clauses, `(u.username ILIKE $`+n+` OR u.first_name ILIKE $`+n+
			` OR u.last_name ILIKE $`+n+` OR p.department ILIKE $`+n+` OR p.position ILIKE $`+n+`)`)
		args = append(args, "%"+filter.Search+"%")
	}
	if filter.Department != "" {
		clauses = append(clauses, `p.department = $`+strconv.Itoa(len(args)+1))
		args = append(args, filter.Department)
	}
	if filter.Active != nil {
		clauses = append(clauses, `p.is_active = $`+strconv.Itoa(len(args)+1))
		args = append(args, *filter.Active)
	}
	return base + ` WHERE ` + strings.Join(clauses, ` AND `), args
}

func scanStaffRecord(row pgx.Row) (*repository.StaffRecord, error) {
	var rec repository.StaffRecord
	p := &rec.Profile
	err := row.Scan(
		&p.ID, &p.UserID, &p.CompanyID, &p.Role, &p.PhoneNumber, &p.AssignedLocation,
		&p.Department, &p.Position, &p.Notes, &p.IsActive, &p.DateJoined, &p.CreatedAt, &p.UpdatedAt,
		&rec.Username, &rec.Email, &rec.FirstName, &rec.LastName,
	)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}
