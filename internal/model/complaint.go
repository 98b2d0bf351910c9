package model

import "time"

// Complaint statuses
const (
	ComplaintStatusOpen       = "Open"
	ComplaintStatusInProgress = "In Progress"
	ComplaintStatusResolved   = "Resolved"
	ComplaintStatusClosed     = "Closed"
)

// Complaint is filed by a user against an appointment.
type Complaint struct {
	ComplaintID   int64     `json:"complaintId" db:"complaint_id"`
	UserID        int64     `json:"userId" db:"user_id"`
	AppointmentID int64     `json:"appointmentId" db:"appointment_id"`
	Subject       string    `json:"subject" db:"subject"`
	Description   string    `json:"description" db:"description"`
	Status        string    `json:"status" db:"status"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`
}

type CreateComplaintRequest struct {
	UserID        int64  `json:"userId" binding:"required"`
	AppointmentID int64  `json:"appointmentId" binding:"required"`
	Subject       string `json:"subject" binding:"required"`
	Description   string `json:"description" binding:"required"`
	Status        string `json:"status" binding:"omitempty,oneof='Open' 'In Progress' 'Resolved' 'Closed'"`
}

type ComplaintPatch struct {
	Subject     *string `json:"subject"`
	Description *string `json:"description"`
	Status      *string `json:"status" binding:"omitempty,oneof='Open' 'In Progress' 'Resolved' 'Closed'"`
}

func (p *ComplaintPatch) Empty() bool {
	return p.Subject == nil && p.Description == nil && p.Status == nil
}
