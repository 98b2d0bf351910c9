package payment

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
	repo   repository.PaymentRepository
	events *event.Service
}

func NewService(repo repository.PaymentRepository, events *event.Service) *Service {
	return &Service{repo: repo, events: events}
}

func (s *Service) Create(ctx context.Context, req *model.CreatePaymentRequest) (*model.Payment, error) {
	payment := &model.Payment{
		AppointmentID: req.AppointmentID,
		Amount:        req.Amount,
		TransactionID: req.TransactionID,
		PaymentDate:   req.PaymentDate,
	}
	if req.Status != nil {
		payment.Status = *req.Status
	}

	created, err := s.repo.Create(ctx, payment)
	if err != nil {
		switch {
		case errors.Is(err, postgres.ErrInvalidReference):
			return nil, apperrors.Validation("unknown appointment or transaction id")
		case errors.Is(err, postgres.ErrDuplicate):
			return nil, apperrors.Conflict("appointment already paid", err)
		case errors.Is(err, sql.ErrNoRows):
			return nil, apperrors.Validation("Failed to create payment")
		}
		return nil, apperrors.Internal(err)
	}

	s.events.Record(ctx, event.TypePaymentCreated, created)
	return created, nil
}

func (s *Service) List(ctx context.Context) ([]*model.Payment, error) {
	payments, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return payments, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*model.Payment, error) {
	payment, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("Payment")
		}
		return nil, apperrors.Internal(err)
	}
	return payment, nil
}

func (s *Service) Update(ctx context.Context, id int64, patch *model.PaymentPatch) (*model.Payment, error) {
	if patch.Empty() {
		return nil, apperrors.Validation("no fields to update")
	}

	payment, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("Payment")
		}
		return nil, apperrors.Internal(err)
	}

	s.events.Record(ctx, event.TypePaymentUpdated, payment)
	return payment, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.NotFound("Payment")
		}
		return apperrors.Internal(err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.NotFound("Payment")
		}
		return apperrors.Internal(err)
	}

	s.events.Record(ctx, event.TypePaymentDeleted, existing)
	return nil
}
