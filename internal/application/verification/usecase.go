// Package verification implements the email-verification ticket flow:
// issuing one-time 6-digit codes and checking them prior to registration.
package verification

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/trackwise/trackwise-api/internal/domain"
	"github.com/trackwise/trackwise-api/internal/domain/entity"
	"github.com/trackwise/trackwise-api/internal/domain/repository"
	"github.com/trackwise/trackwise-api/pkg/logger"
)

// Mailer is the outbound-mail collaborator. The SMTP implementation lives in
// infrastructure; tests substitute a fake.
type Mailer interface {
	SendVerificationCode(ctx context.Context, toEmail, code string) error
}

// UseCase issues and checks email-verification tickets.
type UseCase struct {
	tickets repository.VerificationRepository
	users   repository.UserRepository
	mailer  Mailer
	log     *logger.Logger

	// failOnMailError makes a mail-delivery failure fail the request
	// (development only). In production the ticket is still created and the
	// failure is logged, so a transient mail outage never blocks sign-up.
	failOnMailError bool
}

// NewUseCase wires the verification flow.
func NewUseCase(tickets repository.VerificationRepository, users repository.UserRepository, mailer Mailer, log *logger.Logger, failOnMailError bool) *UseCase {
	return &UseCase{
		tickets:         tickets,
		users:           users,
		mailer:          mailer,
		log:             log,
		failOnMailError: failOnMailError,
	}
}

// NormalizeEmail lowercases and trims an address. Every ticket and identity
// lookup goes through this so email uniqueness is case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SendCode issues a fresh ticket for the address and mails the code.
// Any previous tickets for the address are purged first, so at most one
// active ticket exists per email.
func (uc *UseCase) SendCode(ctx context.Context, email string) error {
	email = NormalizeEmail(email)
	if !strings.Contains(email, "@") {
		return fmt.Errorf("%w: malformed email address", domain.ErrInvalidInput)
	}

	existing, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil {
		return domain.ErrEmailAlreadyExists
	}

	if err := uc.tickets.DeleteByEmail(ctx, email); err != nil {
		return err
	}

	code, err := randomCode()
	if err != nil {
		return err
	}
	ticket := &entity.EmailVerificationTicket{
		ID:        uuid.New().String(),
		Email:     email,
		Code:      code,
		IsUsed:    false,
		CreatedAt: time.Now(),
	}
	if err := uc.tickets.Create(ctx, ticket); err != nil {
		return err
	}

	if err := uc.mailer.SendVerificationCode(ctx, email, code); err != nil {
		if uc.failOnMailError {
			return err
		}
		// The ticket already exists; a support path can still verify the user.
		uc.log.Warn().Err(err).Str("email", email).Msg("verification mail delivery failed")
	}
	return nil
}

// VerifyCode checks (email, code) against the most recent unused ticket.
// Ordered checks: missing -> ErrCodeNotFound; older than the TTL -> ticket
// deleted, ErrCodeExpired; wrong code -> ErrCodeMismatch with the ticket kept
// so the user may retry until expiry; match -> ticket marked used and sibling
// tickets purged.
func (uc *UseCase) VerifyCode(ctx context.Context, email, code string) error {
	email = NormalizeEmail(email)

	ticket, err := uc.tickets.GetLatestUnused(ctx, email)
	if err != nil {
		return err
	}
	if ticket == nil {
		return domain.ErrCodeNotFound
	}
	if ticket.Expired(time.Now()) {
		if err := uc.tickets.Delete(ctx, ticket.ID); err != nil {
			return err
		}
		return domain.ErrCodeExpired
	}
	if ticket.Code != strings.TrimSpace(code) {
		return domain.ErrCodeMismatch
	}

	if err := uc.tickets.MarkUsed(ctx, ticket.ID); err != nil {
		return err
	}
	return uc.tickets.DeleteByEmail(ctx, email, ticket.ID)
}

// IsVerified reports whether the address holds a used (verified) ticket.
// The registration gate calls this when VERIFICATION_REQUIRED is on.
func (uc *UseCase) IsVerified(ctx context.Context, email string) (bool, error) {
	ticket, err := uc.tickets.GetUsed(ctx, NormalizeEmail(email))
	if err != nil {
		return false, err
	}
	return ticket != nil, nil
}

// randomCode returns a cryptographically random 6-digit code, zero-padded.
func randomCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", fmt.Errorf("generate verification code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
