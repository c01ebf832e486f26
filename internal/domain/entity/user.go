package entity

import "time"

// User is the login identity: username/password credential plus contact email.
// Exactly one per human account; the company/role binding lives in UserProfile.
type User struct {
	ID           string
	Username     string
	Email        string // stored lowercased; unique case-insensitively
	PasswordHash string // bcrypt hash, never plaintext past registration
	FirstName    string
	LastName     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FullName returns "First Last", falling back to the username.
func (u *User) FullName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	default:
		return u.Username
	}
}
