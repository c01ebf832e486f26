package dto

import "time"

// UserResponse the identity+profile view returned after auth operations.
type UserResponse struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`

	ProfileID        string    `json:"profile_id"`
	CompanyID        string    `json:"company_id"`
	CompanyName      string    `json:"company_name,omitempty"`
	Role             string    `json:"role"`
	PhoneNumber      string    `json:"phone_number,omitempty"`
	AssignedLocation string    `json:"assigned_location,omitempty"`
	Department       string    `json:"department,omitempty"`
	Position         string    `json:"position,omitempty"`
	IsActive         bool      `json:"is_active"`
	DateJoined       time.Time `json:"date_joined"`
}

// UpdateProfileRequest editable profile fields. Role and company are
// intentionally absent: neither is editable through this endpoint.
type UpdateProfileRequest struct {
	FirstName        string `json:"first_name" validate:"omitempty,max=30"`
	LastName         string `json:"last_name" validate:"omitempty,max=30"`
	PhoneNumber      string `json:"phone_number" validate:"omitempty,max=20"`
	AssignedLocation string `json:"assigned_location" validate:"omitempty,max=100"`
	Department       string `json:"department" validate:"omitempty,max=100"`
	Position         string `json:"position" validate:"omitempty,max=100"`
	Notes            string `json:"notes"`
}
