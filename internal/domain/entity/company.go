package entity

import "time"

// Company represents an organization/tenant. Every profile and product hangs
// off a company; it is the unit of data isolation.
type Company struct {
	ID          string
	Name        string
	Address     string
	ContactInfo string // phone or primary contact email
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
