package model

import "time"

// Appointment statuses
const (
	AppointmentStatusPending   = "pending"
	AppointmentStatusConfirmed = "confirmed"
	AppointmentStatusCancelled = "cancelled"
)

// Appointment links a patient and a doctor at a point in time.
type Appointment struct {
	AppointmentID   int64      `json:"appointmentId" db:"appointment_id"`
	UserID          int64      `json:"userId" db:"user_id"`
	DoctorID        int64      `json:"doctorId" db:"doctor_id"`
	AppointmentDate Date       `json:"appointmentDate" db:"appointment_date"`
	Time            *time.Time `json:"time,omitempty" db:"time"`
	TotalAmount     string     `json:"totalAmount" db:"total_amount"`
	Status          string     `json:"status" db:"status"`
	CreatedAt       time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time  `json:"updatedAt" db:"updated_at"`
}

type CreateAppointmentRequest struct {
	UserID          int64      `json:"userId" binding:"required"`
	DoctorID        int64      `json:"doctorId" binding:"required"`
	AppointmentDate Date       `json:"appointmentDate" binding:"required"`
	Time            *time.Time `json:"time"`
	TotalAmount     string     `json:"totalAmount" binding:"required"`
	Status          string     `json:"status" binding:"omitempty,oneof=pending confirmed cancelled"`
}

// AppointmentPatch enumerates the fields a partial update may touch.
type AppointmentPatch struct {
	AppointmentDate *Date      `json:"appointmentDate"`
	Time            *time.Time `json:"time"`
	TotalAmount     *string    `json:"totalAmount"`
	Status          *string    `json:"status" binding:"omitempty,oneof=pending confirmed cancelled"`
	DoctorID        *int64     `json:"doctorId"`
}

func (p *AppointmentPatch) Empty() bool {
	return p.AppointmentDate == nil && p.Time == nil && p.TotalAmount == nil &&
		p.Status == nil && p.DoctorID == nil
}
