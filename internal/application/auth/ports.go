package auth

import (
	"context"

	"github.com/trackwise/trackwise-api/internal/domain/repository"
)

// TxRunner executes fn with repositories bound to one database transaction.
// Registration writes identity, company and profile through it so account
// creation is all-or-nothing; a failure anywhere rolls everything back.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		users repository.UserRepository,
		companies repository.CompanyRepository,
		profiles repository.ProfileRepository,
		tickets repository.VerificationRepository,
	) error) error
}
