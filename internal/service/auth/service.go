package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/medportal/portal-api/internal/email"
	"github.com/medportal/portal-api/internal/model"
	"github.com/medportal/portal-api/internal/repository"
	"github.com/medportal/portal-api/internal/repository/postgres"
	"github.com/medportal/portal-api/internal/service/event"
	"github.com/medportal/portal-api/pkg/auth"
	apperrors "github.com/medportal/portal-api/pkg/errors"
	"github.com/medportal/portal-api/pkg/security"
	"github.com/medportal/portal-api/pkg/verification"
)

// Unknown email and wrong password share one message.
const invalidCredentialsMsg = "Invalid email or password"

type Service struct {
	userRepo repository.UserRepository
	tokenSvc auth.TokenService
	emailSvc email.Service
	hasher   security.PasswordHasher
	codes    verification.CodeGenerator
	events   *event.Service
}

func NewService(
	userRepo repository.UserRepository,
	tokenSvc auth.TokenService,
	emailSvc email.Service,
	hasher security.PasswordHasher,
	codes verification.CodeGenerator,
	events *event.Service,
) *Service {
	return &Service{
		userRepo: userRepo,
		tokenSvc: tokenSvc,
		emailSvc: emailSvc,
		hasher:   hasher,
		codes:    codes,
		events:   events,
	}
}

// Register creates an unverified account with a fresh verification code and
// returns the persisted row plus a session token. The verification and
// welcome emails are sent before returning; either failure fails the call.
func (s *Service) Register(ctx context.Context, req *model.RegisterRequest) (*model.AuthResult, error) {
	return s.register(ctx, req, model.RoleUser)
}

// CreateAdmin runs the registration flow with the admin role.
func (s *Service) CreateAdmin(ctx context.Context, req *model.CreateAdminRequest) (*model.AuthResult, error) {
	return s.register(ctx, &model.RegisterRequest{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Password:    req.Password,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
	}, model.RoleAdmin)
}

func (s *Service) register(ctx context.Context, req *model.RegisterRequest, role string) (*model.AuthResult, error) {
	normalizedEmail := strings.ToLower(req.Email)

	if existing, _ := s.userRepo.GetByEmail(ctx, normalizedEmail); existing != nil {
		return nil, apperrors.Conflict("email already registered", nil)
	}

	hashed, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to hash password: %w", err))
	}

	code, err := s.codes.Generate()
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	user := &model.User{
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Email:            normalizedEmail,
		Password:         hashed,
		PhoneNumber:      req.PhoneNumber,
		Address:          req.Address,
		Role:             role,
		ImageURL:         model.DefaultImageURL,
		VerificationCode: &code,
		Verified:         false,
		Specialization:   req.Specialization,
		AvailableDays:    req.AvailableDays,
	}

	created, err := s.userRepo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, postgres.ErrDuplicate) {
			return nil, apperrors.Conflict("email already registered", err)
		}
		return nil, apperrors.Internal(err)
	}

	token, err := s.tokenSvc.Generate(created.UserID)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to generate token: %w", err))
	}

	if err := s.emailSvc.SendVerification(ctx, created.Email, created.FirstName, code); err != nil {
		return nil, apperrors.Internal(err)
	}
	if err := s.emailSvc.SendWelcome(ctx, created.Email, created.FirstName); err != nil {
		return nil, apperrors.Internal(err)
	}

	s.events.Record(ctx, event.TypeUserRegistered, created)

	return &model.AuthResult{User: created, Token: token}, nil
}

// Login checks credentials and issues a fresh session token.
func (s *Service) Login(ctx context.Context, creds *model.LoginRequest) (*model.AuthResult, error) {
	if creds.Email == "" || creds.Password == "" {
		return nil, apperrors.Validation("Missing email or password")
	}

	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(creds.Email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.Unauthorized(invalidCredentialsMsg)
		}
		return nil, apperrors.Internal(err)
	}

	if err := s.hasher.Compare(user.Password, creds.Password); err != nil {
		return nil, apperrors.Unauthorized(invalidCredentialsMsg)
	}

	token, err := s.tokenSvc.Generate(user.UserID)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to generate token: %w", err))
	}

	return &model.AuthResult{User: user, Token: token}, nil
}

// Verify flips the verified flag for the row matching both email and code.
// A code is only valid paired with its owning email; a code belonging to a
// different account never matches.
func (s *Service) Verify(ctx context.Context, req *model.VerifyRequest) (*model.AuthResult, error) {
	user, err := s.userRepo.VerifyByEmailAndCode(ctx, strings.ToLower(req.Email), req.Code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.Validation("Invalid verification code")
		}
		return nil, apperrors.Internal(err)
	}

	token, err := s.tokenSvc.Generate(user.UserID)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to generate token: %w", err))
	}

	s.events.Record(ctx, event.TypeUserVerified, user)

	return &model.AuthResult{User: user, Token: token}, nil
}

// CurrentUser resolves a validated token's subject to its user row.
func (s *Service) CurrentUser(ctx context.Context, userID int64) (*model.User, error) {
	user, err := s.userRepo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.Unauthorized("user not found")
		}
		return nil, apperrors.Internal(err)
	}
	return user, nil
}

// ValidateToken parses a session token into its claims.
func (s *Service) ValidateToken(token string) (*auth.TokenClaims, error) {
	claims, err := s.tokenSvc.Validate(token)
	if err != nil {
		return nil, apperrors.Unauthorized("Invalid or expired token")
	}
	return claims, nil
}
