package prescription

import (
	"context"
	"database/sql"
	"errors"

	"github.com/medportal/portal-api/internal/model"
	"github.com/medportal/portal-api/internal/repository"
	"github.com/medportal/portal-api/internal/repository/postgres"
	apperrors "github.com/medportal/portal-api/pkg/errors"
)

type Service struct {
	repo repository.PrescriptionRepository
}

func NewService(repo repository.PrescriptionRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, req *model.CreatePrescriptionRequest) (*model.Prescription, error) {
	prescription := &model.Prescription{
		AppointmentID: req.AppointmentID,
		DoctorID:      req.DoctorID,
		PatientID:     req.PatientID,
		Notes:         req.Notes,
	}

	created, err := s.repo.Create(ctx, prescription)
	if err != nil {
		switch {
		case errors.Is(err, postgres.ErrInvalidReference):
			return nil, apperrors.Validation("unknown appointment, doctor or patient id")
		case errors.Is(err, sql.ErrNoRows):
			return nil, apperrors.Validation("Failed to create prescription")
		}
		return nil, apperrors.Internal(err)
	}
	return created, nil
}

func (s *Service) List(ctx context.Context) ([]*model.Prescription, error) {
	prescriptions, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return prescriptions, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*model.Prescription, error) {
	prescription, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("Prescription")
		}
		return nil, apperrors.Internal(err)
	}
	return prescription, nil
}

func (s *Service) Update(ctx context.Context, id int64, patch *model.PrescriptionPatch) (*model.Prescription, error) {
	if patch.Empty() {
		return nil, apperrors.Validation("no fields to update")
	}

	prescription, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("Prescription")
		}
		return nil, apperrors.Internal(err)
	}
	return prescription, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.Get(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.NotFound("Prescription")
		}
		return apperrors.Internal(err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.NotFound("Prescription")
		}
		return apperrors.Internal(err)
	}
	return nil
}
