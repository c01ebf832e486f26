package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/trackwise/trackwise-api/internal/domain/entity"
	"github.com/trackwise/trackwise-api/internal/domain/repository"
)

var _ repository.VerificationRepository = (*VerificationRepo)(nil)

const ticketColumns = `id, email, code, is_used, created_at`

// VerificationRepo implements the VerificationRepository port over
// PostgreSQL. Works with a pool or a transaction (Querier).
type VerificationRepo struct {
	q Querier
}

// NewVerificationRepository builds the persistence adapter for tickets.
func NewVerificationRepository(q Querier) *VerificationRepo {
	return &VerificationRepo{q: q}
}

// Create persists a new ticket.
func (r *VerificationRepo) Create(ctx context.Context, t *entity.EmailVerificationTicket) error {
	query := `
		INSERT INTO email_verification_tickets (id, email, code, is_used, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query, t.ID, t.Email, t.Code, t.IsUsed, t.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert verification ticket: %w", err)
	}
	return nil
}

// GetLatestUnused fetches the most recent unused ticket for the email, or nil.
func (r *VerificationRepo) GetLatestUnused(ctx context.Context, email string) (*entity.EmailVerificationTicket, error) {
	query := `SELECT ` + ticketColumns + `
		FROM email_verification_tickets
		WHERE email = $1 AND is_used = FALSE
		ORDER BY created_at DESC LIMIT 1`
	return r.scanOne(ctx, query, email, "get latest unused ticket")
}

// GetUsed fetches the most recent used ticket for the email, or nil.
func (r *VerificationRepo) GetUsed(ctx context.Context, email string) (*entity.EmailVerificationTicket, error) {
	query := `SELECT ` + ticketColumns + `
		FROM email_verification_tickets
		WHERE email = $1 AND is_used = TRUE
		ORDER BY created_at DESC LIMIT 1`
	return r.scanOne(ctx, query, email, "get used ticket")
}

// MarkUsed flips the ticket to its terminal Used state.
func (r *VerificationRepo) MarkUsed(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `UPDATE email_verification_tickets SET is_used = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("mark ticket used: %w", err)
	}
	return nil
}

// Delete removes one ticket.
func (r *VerificationRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM email_verification_tickets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete ticket: %w", err)
	}
	return nil
}

// DeleteByEmail purges the email's tickets, keeping the given IDs if any.
func (r *VerificationRepo) DeleteByEmail(ctx context.Context, email string, exceptIDs ...string) error {
	var err error
	if len(exceptIDs) == 0 {
		_, err = r.q.Exec(ctx, `DELETE FROM email_verification_tickets WHERE email = $1`, email)
	} else {
		_, err = r.q.Exec(ctx,
			`DELETE FROM email_verification_tickets WHERE email = $1 AND id <> ALL($2)`,
			email, exceptIDs,
		)
	}
	if err != nil {
		return fmt.Errorf("delete tickets by email: %w", err)
	}
	return nil
}

func (r *VerificationRepo) scanOne(ctx context.Context, query, email, op string) (*entity.EmailVerificationTicket, error) {
	var t entity.EmailVerificationTicket
	err := r.q.QueryRow(ctx, query, email).Scan(&t.ID, &t.Email, &t.Code, &t.IsUsed, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &t, nil
}
