package entity

import "time"

// Valid roles for UserProfile. The set is closed; route authorization maps
// onto these two constants and nothing else.
const (
	RoleBusinessOwner = "business_owner"
	RoleStaff         = "staff"
)

// ValidRole reports whether role is one of the closed role constants.
func ValidRole(role string) bool {
	return role == RoleBusinessOwner || role == RoleStaff
}

// Default profile attributes applied at registration.
const (
	DefaultLocation        = "Main Office"
	DefaultStaffDepartment = "General"
	OwnerDepartment        = "Management"
	OwnerPosition          = "Owner"
	StaffPosition          = "Staff Member"
)

// UserProfile binds a User to a Company with a role and HR-ish attributes.
// One-to-one with User; the company is required. Role is immutable after
// creation.
type UserProfile struct {
	ID               string
	UserID           string
	CompanyID        string
	Role             string // RoleBusinessOwner or RoleStaff
	PhoneNumber      string
	AssignedLocation string
	Department       string
	Position         string
	Notes            string
	IsActive         bool
	DateJoined       time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
