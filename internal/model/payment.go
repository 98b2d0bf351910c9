package model

import "time"

// Payment settles an appointment and references the backing transaction.
// Logically one-to-one with both.
type Payment struct {
	PaymentID     int64     `json:"paymentId" db:"payment_id"`
	AppointmentID int64     `json:"appointmentId" db:"appointment_id"`
	Amount        string    `json:"amount" db:"amount"`
	Status        bool      `json:"status" db:"status"`
	TransactionID int64     `json:"transactionId" db:"transaction_id"`
	PaymentDate   Date      `json:"paymentDate" db:"payment_date"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`
}

type CreatePaymentRequest struct {
	AppointmentID int64  `json:"appointmentId" binding:"required"`
	Amount        string `json:"amount" binding:"required"`
	Status        *bool  `json:"status"`
	TransactionID int64  `json:"transactionId" binding:"required"`
	PaymentDate   Date   `json:"paymentDate" binding:"required"`
}

type PaymentPatch struct {
	Amount      *string `json:"amount"`
	Status      *bool   `json:"status"`
	PaymentDate *Date   `json:"paymentDate"`
}

func (p *PaymentPatch) Empty() bool {
	return p.Amount == nil && p.Status == nil && p.PaymentDate == nil
}
