package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/medportal/portal-api/internal/model"
)

// All repository interfaces in one file
type (
	UserRepository interface {
		Create(ctx context.Context, user *model.User) (*model.User, error)
		List(ctx context.Context) ([]*model.User, error)
		Get(ctx context.Context, id int64) (*model.User, error)
		GetByEmail(ctx context.Context, email string) (*model.User, error)
		Update(ctx context.Context, id int64, patch *model.UserPatch) (*model.User, error)
		Delete(ctx context.Context, id int64) error
		ListDoctors(ctx context.Context) ([]*model.User, error)
		// VerifyByEmailAndCode flips the verified flag for the row matching
		// both email and code in a single transaction and returns the
		// refreshed row. No match reports sql.ErrNoRows.
		VerifyByEmailAndCode(ctx context.Context, email, code string) (*model.User, error)
	}

	DoctorRepository interface {
		Create(ctx context.Context, doctor *model.Doctor) (*model.Doctor, error)
		List(ctx context.Context) ([]*model.Doctor, error)
		Get(ctx context.Context, id int64) (*model.Doctor, error)
		Update(ctx context.Context, id int64, patch *model.DoctorPatch) (*model.Doctor, error)
		Delete(ctx context.Context, id int64) error
	}

	AppointmentRepository interface {
		Create(ctx context.Context, appointment *model.Appointment) (*model.Appointment, error)
		List(ctx context.Context) ([]*model.Appointment, error)
		Get(ctx context.Context, id int64) (*model.Appointment, error)
		Update(ctx context.Context, id int64, patch *model.AppointmentPatch) (*model.Appointment, error)
		Delete(ctx context.Context, id int64) error
		ListByUser(ctx context.Context, userID int64) ([]*model.Appointment, error)
	}

	PrescriptionRepository interface {
		Create(ctx context.Context, prescription *model.Prescription) (*model.Prescription, error)
		List(ctx context.Context) ([]*model.Prescription, error)
		Get(ctx context.Context, id int64) (*model.Prescription, error)
		Update(ctx context.Context, id int64, patch *model.PrescriptionPatch) (*model.Prescription, error)
		Delete(ctx context.Context, id int64) error
	}

	PaymentRepository interface {
		Create(ctx context.Context, payment *model.Payment) (*model.Payment, error)
		List(ctx context.Context) ([]*model.Payment, error)
		Get(ctx context.Context, id int64) (*model.Payment, error)
		Update(ctx context.Context, id int64, patch *model.PaymentPatch) (*model.Payment, error)
		Delete(ctx context.Context, id int64) error
	}

	TransactionRepository interface {
		Create(ctx context.Context, transaction *model.Transaction) (*model.Transaction, error)
		List(ctx context.Context) ([]*model.Transaction, error)
		Get(ctx context.Context, id int64) (*model.Transaction, error)
		Update(ctx context.Context, id int64, patch *model.TransactionPatch) (*model.Transaction, error)
		Delete(ctx context.Context, id int64) error
	}

	ComplaintRepository interface {
		Create(ctx context.Context, complaint *model.Complaint) (*model.Complaint, error)
		List(ctx context.Context) ([]*model.Complaint, error)
		Get(ctx context.Context, id int64) (*model.Complaint, error)
		Update(ctx context.Context, id int64, patch *model.ComplaintPatch) (*model.Complaint, error)
		Delete(ctx context.Context, id int64) error
		ListByUser(ctx context.Context, userID int64) ([]*model.Complaint, error)
	}

	OutboxRepository interface {
		Create(ctx context.Context, event *model.OutboxEvent) error
		GetPendingEvents(ctx context.Context, limit int) ([]*model.OutboxEvent, error)
		UpdateStatus(ctx context.Context, id uuid.UUID, status string, errMsg *string) error
	}
)
