package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/trackwise/trackwise-api/internal/application/auth"
	"github.com/trackwise/trackwise-api/internal/domain/repository"
)

// Ensure TxRunner implements the auth port.
var _ auth.TxRunner = (*TxRunner)(nil)

// TxRunner executes callbacks inside one PostgreSQL transaction so account
// creation (identity + company + profile) is all-or-nothing.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner builds the runner on the pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run begins a transaction, executes fn with repositories bound to it, and
// commits. Any error from fn rolls the whole transaction back.
func (r *TxRunner) Run(ctx context.Context, fn func(
	users repository.UserRepository,
	companies repository.CompanyRepository,
	profiles repository.ProfileRepository,
	tickets repository.VerificationRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	users := NewUserRepository(tx)
	companies := NewCompanyRepository(tx)
	profiles := NewProfileRepository(tx)
	tickets := NewVerificationRepository(tx)

	if err := fn(users, companies, profiles, tickets); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
