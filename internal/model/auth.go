package model

// RegisterRequest is the self-service registration payload.
type RegisterRequest struct {
	FirstName      string  `json:"firstName" binding:"required"`
	LastName       string  `json:"lastName" binding:"required"`
	Email          string  `json:"email" binding:"required,email"`
	Password       string  `json:"password" binding:"required"`
	PhoneNumber    *string `json:"phoneNumber"`
	Address        string  `json:"address"`
	Specialization *string `json:"specialization"`
	AvailableDays  *string `json:"availableDays"`
}

// CreateAdminRequest is the admin-creation payload. All named fields are
// mandatory; the handler reports a single "missing fields" error.
type CreateAdminRequest struct {
	FirstName   string  `json:"firstName"`
	LastName    string  `json:"lastName"`
	Email       string  `json:"email"`
	Password    string  `json:"password"`
	Role        string  `json:"role"`
	PhoneNumber *string `json:"phoneNumber"`
	Address     string  `json:"address"`
}

func (r *CreateAdminRequest) Complete() bool {
	return r.FirstName != "" && r.LastName != "" && r.Email != "" &&
		r.Password != "" && r.Role != ""
}

// LoginRequest carries login credentials.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// VerifyRequest carries an email/code pair for account verification.
type VerifyRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required"`
}

// AuthResult pairs a user row with a freshly signed session token.
type AuthResult struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}
