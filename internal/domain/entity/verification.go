package entity

import "time"

// CodeTTL is how long an email-verification code stays valid after issuance.
const CodeTTL = 10 * time.Minute

// EmailVerificationTicket is a one-time 6-digit code proving control of an
// email address before account creation. At most one active ticket exists per
// email: issuing a new one purges the older ones. Lifecycle is
// Created -> Used, or Created -> Expired/Deleted; nothing else.
type EmailVerificationTicket struct {
	ID        string
	Email     string // lowercased
	Code      string // 6 decimal digits
	IsUsed    bool
	CreatedAt time.Time
}

// Expired reports whether the ticket is older than CodeTTL at the given time.
func (t *EmailVerificationTicket) Expired(now time.Time) bool {
	return now.Sub(t.CreatedAt) > CodeTTL
}
