package repository

import (
	"context"

	"github.com/trackwise/trackwise-api/internal/domain/entity"
)

// VerificationRepository is the persistence port for email-verification
// tickets (DIP). Emails are lowercased before they reach this port.
type VerificationRepository interface {
	Create(ctx context.Context, ticket *entity.EmailVerificationTicket) error
	// GetLatestUnused returns the most recent unused ticket for the email,
	// or nil if there is none.
	GetLatestUnused(ctx context.Context, email string) (*entity.EmailVerificationTicket, error)
	// GetUsed returns the most recent used ticket for the email, or nil.
	// Registration checks it when the verified-email gate is on.
	GetUsed(ctx context.Context, email string) (*entity.EmailVerificationTicket, error)
	MarkUsed(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	// DeleteByEmail purges every ticket for the email except the given IDs
	// (pass none to purge all). Used on reissue and after registration.
	DeleteByEmail(ctx context.Context, email string, exceptIDs ...string) error
}
