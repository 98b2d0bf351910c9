package complaint

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
	repo   repository.ComplaintRepository
	events *event.Service
}

func NewService(repo repository.ComplaintRepository, events *event.Service) *Service {
	return &Service{repo: repo, events: events}
}

func (s *Service) Create(ctx context.Context, req *model.CreateComplaintRequest) (*model.Complaint, error) {
	status := req.Status
	if status == "" {
		status = model.ComplaintStatusOpen
	}

	complaint := &model.Complaint{
		UserID:        req.UserID,
		AppointmentID: req.AppointmentID,
		Subject:       req.Subject,
		Description:   req.Description,
		Status:        status,
	}

	created, err := s.repo.Create(ctx, complaint)
	if err != nil {
		switch {
		case errors.Is(err, postgres.ErrInvalidReference):
			return nil, apperrors.Validation("unknown user or appointment id")
		case errors.Is(err, sql.ErrNoRows):
			return nil, apperrors.Validation("Failed to create complaint")
		}
		return nil, apperrors.Internal(err)
	}

	s.events.Record(ctx, event.TypeComplaintCreated, created)
	return created, nil
}

func (s *Service) List(ctx context.Context) ([]*model.Complaint, error) {
	complaints, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return complaints, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*model.Complaint, error) {
	complaint, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("Complaint")
		}
		return nil, apperrors.Internal(err)
	}
	return complaint, nil
}

func (s *Service) Update(ctx context.Context, id int64, patch *model.ComplaintPatch) (*model.Complaint, error) {
	if patch.Empty() {
		return nil, apperrors.Validation("no fields to update")
	}

	complaint, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("Complaint")
		}
		return nil, apperrors.Internal(err)
	}

	s.events.Record(ctx, event.TypeComplaintUpdated, complaint)
	return complaint, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.NotFound("Complaint")
		}
		return apperrors.Internal(err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.NotFound("Complaint")
		}
		return apperrors.Internal(err)
	}

	s.events.Record(ctx, event.TypeComplaintDeleted, existing)
	return nil
}

// ListByUser returns the complaints filed by one user.
func (s *Service) ListByUser(ctx context.Context, userID int64) ([]*model.Complaint, error) {
	complaints, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return complaints, nil
}
