package model

import "time"

// Prescription is issued by a doctor against an appointment.
type Prescription struct {
	PrescriptionID int64     `json:"prescriptionId" db:"prescription_id"`
	AppointmentID  int64     `json:"appointmentId" db:"appointment_id"`
	DoctorID       int64     `json:"doctorId" db:"doctor_id"`
	PatientID      int64     `json:"patientId" db:"patient_id"`
	Notes          string    `json:"notes" db:"notes"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time `json:"updatedAt" db:"updated_at"`
}

type CreatePrescriptionRequest struct {
	AppointmentID int64  `json:"appointmentId" binding:"required"`
	DoctorID      int64  `json:"doctorId" binding:"required"`
	PatientID     int64  `json:"patientId" binding:"required"`
	Notes         string `json:"notes" binding:"required"`
}

type PrescriptionPatch struct {
	Notes *string `json:"notes"`
}

func (p *PrescriptionPatch) Empty() bool {
	return p.Notes == nil
}
