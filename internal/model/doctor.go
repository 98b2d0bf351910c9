package model

import "time"

// Doctor is a practice profile owned by a user with role "doctor".
type Doctor struct {
	DoctorID       int64     `json:"doctorId" db:"doctor_id"`
	UserID         int64     `json:"userId" db:"user_id"`
	Specialization string    `json:"specialization" db:"specialization"`
	AvailableDays  string    `json:"availableDays" db:"available_days"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time `json:"updatedAt" db:"updated_at"`
}

type CreateDoctorRequest struct {
	UserID         int64  `json:"userId" binding:"required"`
	Specialization string `json:"specialization" binding:"required"`
	AvailableDays  string `json:"availableDays" binding:"required"`
}

type DoctorPatch struct {
	Specialization *string `json:"specialization"`
	AvailableDays  *string `json:"availableDays"`
}

func (p *DoctorPatch) Empty() bool {
	return p.Specialization == nil && p.AvailableDays == nil
}
