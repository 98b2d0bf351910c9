package doctor

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
	repo repository.DoctorRepository
}

func NewService(repo repository.DoctorRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, req *model.CreateDoctorRequest) (*model.Doctor, error) {
	doctor := &model.Doctor{
		UserID:         req.UserID,
		Specialization: req.Specialization,
		AvailableDays:  req.AvailableDays,
	}

	created, err := s.repo.Create(ctx, doctor)
	if err != nil {
		switch {
		case errors.Is(err, postgres.ErrInvalidReference):
			return nil, apperrors.Validation("unknown user id")
		case errors.Is(err, sql.ErrNoRows):
			return nil, apperrors.Validation("Failed to create doctor")
		}
		return nil, apperrors.Internal(err)
	}
	return created, nil
}

func (s *Service) List(ctx context.Context) ([]*model.Doctor, error) {
	doctors, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return doctors, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*model.Doctor, error) {
	doctor, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("Doctor")
		}
		return nil, apperrors.Internal(err)
	}
	return doctor, nil
}

func (s *Service) Update(ctx context.Context, id int64, patch *model.DoctorPatch) (*model.Doctor, error) {
	if patch.Empty() {
		return nil, apperrors.Validation("no fields to update")
	}

	doctor, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("Doctor")
		}
		return nil, apperrors.Internal(err)
	}
	return doctor, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.Get(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.NotFound("Doctor")
		}
		return apperrors.Internal(err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.NotFound("Doctor")
		}
		return apperrors.Internal(err)
	}
	return nil
}
