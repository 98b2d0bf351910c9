package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/medportal/portal-api/internal/model"
	"github.com/medportal/portal-api/internal/repository"
	"github.com/medportal/portal-api/internal/repository/postgres"
	apperrors "github.com/medportal/portal-api/pkg/errors"
	"github.com/medportal/portal-api/pkg/security"
	"github.com/medportal/portal-api/pkg/verification"
)

type Service struct {
	repo   repository.UserRepository
	hasher security.PasswordHasher
	codes  verification.CodeGenerator
}

func NewService(repo repository.UserRepository, hasher security.PasswordHasher, codes verification.CodeGenerator) *Service {
	return &Service{repo: repo, hasher: hasher, codes: codes}
}

// Create inserts a user through the plain CRUD surface. Passwords are
// hashed and a verification code is assigned just as in registration, but
// no emails are sent and no token is issued.
func (s *Service) Create(ctx context.Context, req *model.CreateUserRequest) (*model.User, error) {
	hashed, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to hash password: %w", err))
	}

	code, err := s.codes.Generate()
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	role := req.Role
	if role == "" {
		role = model.RoleUser
	}

	user := &model.User{
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Email:            strings.ToLower(req.Email),
		Password:         hashed,
		PhoneNumber:      req.PhoneNumber,
		Address:          req.Address,
		Role:             role,
		ImageURL:         model.DefaultImageURL,
		VerificationCode: &code,
		Specialization:   req.Specialization,
		AvailableDays:    req.AvailableDays,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		switch {
		case errors.Is(err, postgres.ErrDuplicate):
			return nil, apperrors.Conflict("email already registered", err)
		case errors.Is(err, sql.ErrNoRows):
			return nil, apperrors.Validation("Failed to create user")
		}
		return nil, apperrors.Internal(err)
	}
	return created, nil
}

func (s *Service) List(ctx context.Context) ([]*model.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return users, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("User")
		}
		return nil, apperrors.Internal(err)
	}
	return user, nil
}

// Update applies a partial patch. A patched password is re-hashed and a
// patched email is lowercased before hitting the database.
func (s *Service) Update(ctx context.Context, id int64, patch *model.UserPatch) (*model.User, error) {
	if patch.Empty() {
		return nil, apperrors.Validation("no fields to update")
	}

	if patch.Password != nil {
		hashed, err := s.hasher.Hash(*patch.Password)
		if err != nil {
			return nil, apperrors.Internal(fmt.Errorf("failed to hash password: %w", err))
		}
		patch.Password = &hashed
	}
	if patch.Email != nil {
		lowered := strings.ToLower(*patch.Email)
		patch.Email = &lowered
	}

	user, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, apperrors.NotFound("User")
		case errors.Is(err, postgres.ErrDuplicate):
			return nil, apperrors.Conflict("email already registered", err)
		}
		return nil, apperrors.Internal(err)
	}
	return user, nil
}

// Delete removes the user, reporting not found when the id has no row.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.Get(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.NotFound("User")
		}
		return apperrors.Internal(err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.NotFound("User")
		}
		return apperrors.Internal(err)
	}
	return nil
}

// ListDoctors returns the user rows carrying the doctor role.
func (s *Service) ListDoctors(ctx context.Context) ([]*model.User, error) {
	doctors, err := s.repo.ListDoctors(ctx)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return doctors, nil
}
