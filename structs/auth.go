package structs

// RegisterRequest starts the email verification flow.
type RegisterRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// VerifyRequest completes registration with the mailed code.
type VerifyRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required"`
}
