package model

import "time"

// User roles
const (
	RoleUser   = "user"
	RoleAdmin  = "admin"
	RoleDoctor = "doctor"
)

const DefaultImageURL = "https://www.gravatar.com/avatar/00000000000000000000000000000000?d=mp&f=y"

// User represents a platform account. Doctor-specific columns live on the
// same row for users with role "doctor".
type User struct {
	UserID           int64     `json:"userId" db:"user_id"`
	FirstName        string    `json:"firstName" db:"first_name"`
	LastName         string    `json:"lastName" db:"last_name"`
	Email            string    `json:"email" db:"email"`
	Password         string    `json:"-" db:"password"`
	PhoneNumber      *string   `json:"phoneNumber,omitempty" db:"phone_number"`
	Address          string    `json:"address" db:"address"`
	Role             string    `json:"role" db:"role"`
	ImageURL         string    `json:"imageUrl" db:"image_url"`
	VerificationCode *string   `json:"-" db:"verification_code"`
	Verified         bool      `json:"verified" db:"verified"`
	Specialization   *string   `json:"specialization,omitempty" db:"specialization"`
	AvailableDays    *string   `json:"availableDays,omitempty" db:"available_days"`
	CreatedAt        time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time `json:"updatedAt" db:"updated_at"`
}

// AdminSummary is the trimmed admin shape returned by the admin-create endpoint.
type AdminSummary struct {
	UserID    int64  `json:"userId"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Role      string `json:"role"`
}

func (u *User) AdminSummary() AdminSummary {
	return AdminSummary{
		UserID:    u.UserID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Role:      u.Role,
	}
}

// CreateUserRequest is the payload for the plain user CRUD create.
type CreateUserRequest struct {
	FirstName      string  `json:"firstName" binding:"required"`
	LastName       string  `json:"lastName" binding:"required"`
	Email          string  `json:"email" binding:"required,email"`
	Password       string  `json:"password" binding:"required"`
	PhoneNumber    *string `json:"phoneNumber"`
	Address        string  `json:"address" binding:"required"`
	Role           string  `json:"role" binding:"omitempty,role"`
	Specialization *string `json:"specialization"`
	AvailableDays  *string `json:"availableDays"`
}

// UserPatch enumerates the fields a partial user update may touch.
// Unknown keys are rejected at the binding layer.
type UserPatch struct {
	FirstName      *string `json:"firstName"`
	LastName       *string `json:"lastName"`
	Email          *string `json:"email" binding:"omitempty,email"`
	Password       *string `json:"password"`
	PhoneNumber    *string `json:"phoneNumber"`
	Address        *string `json:"address"`
	Role           *string `json:"role" binding:"omitempty,role"`
	ImageURL       *string `json:"imageUrl"`
	Specialization *string `json:"specialization"`
	AvailableDays  *string `json:"availableDays"`
}

func (p *UserPatch) Empty() bool {
	return p.FirstName == nil && p.LastName == nil && p.Email == nil &&
		p.Password == nil && p.PhoneNumber == nil && p.Address == nil &&
		p.Role == nil && p.ImageURL == nil && p.Specialization == nil &&
		p.AvailableDays == nil
}
