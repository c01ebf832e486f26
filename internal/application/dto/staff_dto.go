package dto

import "time"

// StaffResponse one staff member in the management views.
type StaffResponse struct {
	ProfileID        string    `json:"profile_id"`
	UserID           string    `json:"user_id"`
	Username         string    `json:"username"`
	Email            string    `json:"email"`
	FirstName        string    `json:"first_name"`
	LastName         string    `json:"last_name"`
	PhoneNumber      string    `json:"phone_number,omitempty"`
	AssignedLocation string    `json:"assigned_location,omitempty"`
	Department       string    `json:"department"`
	Position         string    `json:"position"`
	Notes            string    `json:"notes,omitempty"`
	IsActive         bool      `json:"is_active"`
	DateJoined       time.Time `json:"date_joined"`
}

// StaffListResponse paged, filtered staff listing.
type StaffListResponse struct {
	Staff []StaffResponse `json:"staff"`
	Page  PageResponse    `json:"page"`
}

// AddStaffRequest owner-side staff creation. The company is always the
// caller's own; it is never taken from the request.
type AddStaffRequest struct {
	Username         string `json:"username" validate:"required,min=3,max=150"`
	Email            string `json:"email" validate:"required,email"`
	Password         string `json:"password" validate:"required,min=8"`
	FirstName        string `json:"first_name" validate:"required,max=30"`
	LastName         string `json:"last_name" validate:"required,max=30"`
	Department       string `json:"department" validate:"omitempty,max=100"`
	Position         string `json:"position" validate:"omitempty,max=100"`
	PhoneNumber      string `json:"phone_number" validate:"omitempty,max=20"`
	AssignedLocation string `json:"assigned_location" validate:"omitempty,max=100"`
	Notes            string `json:"notes"`
}

// SetStaffActiveRequest toggles the active flag on a staff profile.
type SetStaffActiveRequest struct {
	IsActive bool `json:"is_active"`
}
