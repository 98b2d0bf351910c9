package transaction

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
	repo repository.TransactionRepository
}

func NewService(repo repository.TransactionRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, req *model.CreateTransactionRequest) (*model.Transaction, error) {
	transaction := &model.Transaction{
		UserID:      req.UserID,
		Description: req.Description,
		Amount:      req.Amount,
	}
	if req.Status != nil {
		transaction.Status = *req.Status
	}

	created, err := s.repo.Create(ctx, transaction)
	if err != nil {
		switch {
		case errors.Is(err, postgres.ErrInvalidReference):
			return nil, apperrors.Validation("unknown user id")
		case errors.Is(err, sql.ErrNoRows):
			return nil, apperrors.Validation("Failed to create transaction")
		}
		return nil, apperrors.Internal(err)
	}
	return created, nil
}

func (s *Service) List(ctx context.Context) ([]*model.Transaction, error) {
	transactions, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return transactions, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*model.Transaction, error) {
	transaction, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("Transaction")
		}
		return nil, apperrors.Internal(err)
	}
	return transaction, nil
}

func (s *Service) Update(ctx context.Context, id int64, patch *model.TransactionPatch) (*model.Transaction, error) {
	if patch.Empty() {
		return nil, apperrors.Validation("no fields to update")
	}

	transaction, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("Transaction")
		}
		return nil, apperrors.Internal(err)
	}
	return transaction, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.Get(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.NotFound("Transaction")
		}
		return apperrors.Internal(err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.NotFound("Transaction")
		}
		return apperrors.Internal(err)
	}
	return nil
}
