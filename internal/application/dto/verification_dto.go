package dto

// SendCodeRequest body of POST /api/send-verification-code.
type SendCodeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// VerifyCodeRequest body of POST /api/verify-email-code.
type VerifyCodeRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,len=6"`
}

// CheckEmailRequest body of POST /api/check-email.
type CheckEmailRequest struct {
	Email string `json:"email" validate:"required"`
}

// CheckUsernameRequest body of POST /api/check-username.
type CheckUsernameRequest struct {
	Username string `json:"username" validate:"required"`
}
