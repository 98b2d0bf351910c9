package appointment

import (
	"context"
	"database/sql"
	"errors"

	"github.com/medportal/portal-api/internal/model"
	"github.com/medportal/portal-api/internal/repository"
	"github.com/medportal/portal-api/internal/repository/postgres"
	"github.com/medportal/portal-api/internal/service/event"
	apperrors "github.com/medportal/portal-api/pkg/errors"
)

type Service struct {
	repo   repository.AppointmentRepository
	events *event.Service
}

func NewService(repo repository.AppointmentRepository, events *event.Service) *Service {
	return &Service{repo: repo, events: events}
}

func (s *Service) Create(ctx context.Context, req *model.CreateAppointmentRequest) (*model.Appointment, error) {
	status := req.Status
	if status == "" {
		status = model.AppointmentStatusPending
	}

	appointment := &model.Appointment{
		UserID:          req.UserID,
		DoctorID:        req.DoctorID,
		AppointmentDate: req.AppointmentDate,
		Time:            req.Time,
		TotalAmount:     req.TotalAmount,
		Status:          status,
	}

	created, err := s.repo.Create(ctx, appointment)
	if err != nil {
		switch {
		case errors.Is(err, postgres.ErrInvalidReference):
			return nil, apperrors.Validation("unknown user or doctor id")
		case errors.Is(err, sql.ErrNoRows):
			return nil, apperrors.Validation("Failed to create appointment")
		}
		return nil, apperrors.Internal(err)
	}

	s.events.Record(ctx, event.TypeAppointmentCreated, created)
	return created, nil
}

func (s *Service) List(ctx context.Context) ([]*model.Appointment, error) {
	appointments, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return appointments, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*model.Appointment, error) {
	appointment, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("Appointment")
		}
		return nil, apperrors.Internal(err)
	}
	return appointment, nil
}

func (s *Service) Update(ctx context.Context, id int64, patch *model.AppointmentPatch) (*model.Appointment, error) {
	if patch.Empty() {
		return nil, apperrors.Validation("no fields to update")
	}

	appointment, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, apperrors.NotFound("Appointment")
		case errors.Is(err, postgres.ErrInvalidReference):
			return nil, apperrors.Validation("unknown doctor id")
		}
		return nil, apperrors.Internal(err)
	}

	s.events.Record(ctx, event.TypeAppointmentUpdated, appointment)
	return appointment, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.NotFound("Appointment")
		}
		return apperrors.Internal(err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.NotFound("Appointment")
		}
		return apperrors.Internal(err)
	}

	s.events.Record(ctx, event.TypeAppointmentDeleted, existing)
	return nil
}

// ListByUser returns a user's own appointments.
func (s *Service) ListByUser(ctx context.Context, userID int64) ([]*model.Appointment, error) {
	appointments, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return appointments, nil
}
