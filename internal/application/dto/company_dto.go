package dto

import "time"

// CompanyResponse public company view (registration dropdown and admin).
type CompanyResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Address     string    `json:"address,omitempty"`
	ContactInfo string    `json:"contact_info,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// CompanyListResponse paged company listing.
type CompanyListResponse struct {
	Companies []CompanyResponse `json:"companies"`
	Page      PageResponse      `json:"page"`
}
