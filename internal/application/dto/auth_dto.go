package dto

// Company choice values for business-owner registration.
const (
	CompanyChoiceNew      = "new"
	CompanyChoiceExisting = "existing"
)

// RegisterOwnerRequest input for business-owner registration. The company is
// either created from the new_company_* fields or referenced by id.
type RegisterOwnerRequest struct {
	Username  string `json:"username" validate:"required,min=3,max=150"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"first_name" validate:"required,max=30"`
	LastName  string `json:"last_name" validate:"required,max=30"`

	CompanyChoice  string `json:"company_choice" validate:"required,oneof=new existing"`
	CompanyID      string `json:"company_id" validate:"omitempty,uuid"`
	NewCompanyName string `json:"new_company_name" validate:"omitempty,max=200"`
	CompanyAddress string `json:"company_address"`
	CompanyContact string `json:"company_contact" validate:"omitempty,max=100"`
}

// RegisterStaffRequest input for staff registration; an existing company is
// mandatory.
type RegisterStaffRequest struct {
	Username   string `json:"username" validate:"required,min=3,max=150"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=8"`
	FirstName  string `json:"first_name" validate:"required,max=30"`
	LastName   string `json:"last_name" validate:"required,max=30"`
	CompanyID  string `json:"company_id" validate:"required,uuid"`
	Department string `json:"department" validate:"omitempty,max=100"`
	Position   string `json:"position" validate:"omitempty,max=100"`
}

// RegistrationResponse output of both registration flows. Pending means the
// account was created but the session is deferred to the processing/login
// step; Token is empty in that case.
type RegistrationResponse struct {
	User    UserResponse `json:"user"`
	Token   string       `json:"token,omitempty"`
	Pending bool         `json:"pending"`
}

// LoginRequest username + password, as on the login form.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse JWT plus the logged-in user view.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// ChangePasswordRequest input for the authenticated password change.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}
