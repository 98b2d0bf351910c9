package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medportal/portal-api/internal/model"
	"github.com/medportal/portal-api/internal/repository/memory"
	"github.com/medportal/portal-api/internal/service/event"
	pkgauth "github.com/medportal/portal-api/pkg/auth"
	apperrors "github.com/medportal/portal-api/pkg/errors"
	"github.com/medportal/portal-api/pkg/security"
	"github.com/medportal/portal-api/pkg/verification"
)

type sentEmail struct {
	kind string
	to   string
	name string
	code string
}

type fakeEmailService struct {
	sent            []sentEmail
	verificationErr error
	welcomeErr      error
}

func (f *fakeEmailService) SendVerification(_ context.Context, to, name, code string) error {
	if f.verificationErr != nil {
		return f.verificationErr
	}
	f.sent = append(f.sent, sentEmail{kind: "verification", to: to, name: name, code: code})
	return nil
}

func (f *fakeEmailService) SendWelcome(_ context.Context, to, name string) error {
	if f.welcomeErr != nil {
		return f.welcomeErr
	}
	f.sent = append(f.sent, sentEmail{kind: "welcome", to: to, name: name})
	return nil
}

type fixture struct {
	svc      *Service
	users    *memory.UserRepository
	emails   *fakeEmailService
	outbox   *memory.OutboxRepository
	tokenSvc pkgauth.TokenService
	hasher   security.PasswordHasher
}

func newFixture() *fixture {
	users := memory.NewUserRepository()
	emails := &fakeEmailService{}
	outbox := memory.NewOutboxRepository()
	tokenSvc := pkgauth.NewJWTService("test-secret", time.Hour)
	hasher := security.NewBcryptHasher(4)

	svc := NewService(users, tokenSvc, emails, hasher, verification.NewCodeGenerator(), event.NewService(outbox))
	return &fixture{svc: svc, users: users, emails: emails, outbox: outbox, tokenSvc: tokenSvc, hasher: hasher}
}

func registerRequest() *model.RegisterRequest {
	return &model.RegisterRequest{
		FirstName: "John",
		LastName:  "Doe",
		Email:     "John.Doe@Example.com",
		Password:  "hunter22",
		Address:   "1 Main St",
	}
}

func TestRegister(t *testing.T) {
	f := newFixture()

	result, err := f.svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)
	require.NotNil(t, result.User)

	user := result.User
	assert.Equal(t, "john.doe@example.com", user.Email)
	assert.Equal(t, model.RoleUser, user.Role)
	assert.False(t, user.Verified)
	assert.NotEqual(t, "hunter22", user.Password)
	assert.NoError(t, f.hasher.Compare(user.Password, "hunter22"))
	require.NotNil(t, user.VerificationCode)
	assert.Len(t, *user.VerificationCode, 6)

	claims, err := f.tokenSvc.Validate(result.Token)
	require.NoError(t, err)
	assert.Equal(t, user.UserID, claims.UserID)

	require.Len(t, f.emails.sent, 2)
	assert.Equal(t, "verification", f.emails.sent[0].kind)
	assert.Equal(t, *user.VerificationCode, f.emails.sent[0].code)
	assert.Equal(t, "welcome", f.emails.sent[1].kind)
	assert.Equal(t, "john.doe@example.com", f.emails.sent[1].to)

	events := f.outbox.Events()
	require.Len(t, events, 1)
	assert.Equal(t, event.TypeUserRegistered, events[0].EventType)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	_, err = f.svc.Register(context.Background(), registerRequest())
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeConflict, apperrors.CodeOf(err))
}

func TestRegisterVerificationEmailFailure(t *testing.T) {
	f := newFixture()
	f.emails.verificationErr = errors.New("smtp down")

	_, err := f.svc.Register(context.Background(), registerRequest())
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeInternal, apperrors.CodeOf(err))
	assert.Empty(t, f.emails.sent)
}

func TestRegisterWelcomeEmailFailure(t *testing.T) {
	f := newFixture()
	f.emails.welcomeErr = errors.New("smtp down")

	_, err := f.svc.Register(context.Background(), registerRequest())
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeInternal, apperrors.CodeOf(err))
}

func TestCreateAdmin(t *testing.T) {
	f := newFixture()

	result, err := f.svc.CreateAdmin(context.Background(), &model.CreateAdminRequest{
		FirstName: "Ada",
		LastName:  "Admin",
		Email:     "ada@example.com",
		Password:  "pw123456",
		Role:      "admin",
	})
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, result.User.Role)
}

func TestLogin(t *testing.T) {
	f := newFixture()
	_, err := f.svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	result, err := f.svc.Login(context.Background(), &model.LoginRequest{
		Email:    "john.doe@example.com",
		Password: "hunter22",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)

	// Email lookup is case-insensitive.
	_, err = f.svc.Login(context.Background(), &model.LoginRequest{
		Email:    "John.Doe@Example.com",
		Password: "hunter22",
	})
	assert.NoError(t, err)
}

func TestLoginBadCredentials(t *testing.T) {
	f := newFixture()
	_, err := f.svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	// Unknown email and wrong password produce the exact same error.
	_, errUnknown := f.svc.Login(context.Background(), &model.LoginRequest{
		Email:    "nobody@example.com",
		Password: "hunter22",
	})
	_, errWrongPw := f.svc.Login(context.Background(), &model.LoginRequest{
		Email:    "john.doe@example.com",
		Password: "wrong",
	})

	require.Error(t, errUnknown)
	require.Error(t, errWrongPw)
	assert.Equal(t, apperrors.CodeUnauthorized, apperrors.CodeOf(errUnknown))
	assert.Equal(t, apperrors.MessageOf(errUnknown), apperrors.MessageOf(errWrongPw))
	assert.Equal(t, "Invalid email or password", apperrors.MessageOf(errUnknown))
}

type failingUserRepo struct {
	*memory.UserRepository
	err error
}

func (r *failingUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return nil, r.err
}

func TestLoginRepositoryFailure(t *testing.T) {
	f := newFixture()
	repo := &failingUserRepo{UserRepository: f.users, err: errors.New("connection refused")}
	svc := NewService(repo, f.tokenSvc, f.emails, f.hasher, verification.NewCodeGenerator(), event.NewService(f.outbox))

	_, err := svc.Login(context.Background(), &model.LoginRequest{
		Email:    "john.doe@example.com",
		Password: "hunter22",
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeInternal, apperrors.CodeOf(err))
	assert.NotEqual(t, "Invalid email or password", apperrors.MessageOf(err))
}

func TestLoginMissingFields(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Login(context.Background(), &model.LoginRequest{Email: "a@b.c"})
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeValidation, apperrors.CodeOf(err))
	assert.Equal(t, "Missing email or password", apperrors.MessageOf(err))
}

func TestVerify(t *testing.T) {
	f := newFixture()
	registered, err := f.svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)
	code := *registered.User.VerificationCode

	result, err := f.svc.Verify(context.Background(), &model.VerifyRequest{
		Email: "john.doe@example.com",
		Code:  code,
	})
	require.NoError(t, err)
	assert.True(t, result.User.Verified)
	assert.NotEmpty(t, result.Token)

	// Codes survive verification, so verifying again still succeeds.
	again, err := f.svc.Verify(context.Background(), &model.VerifyRequest{
		Email: "john.doe@example.com",
		Code:  code,
	})
	require.NoError(t, err)
	assert.True(t, again.User.Verified)
}

func TestVerifyWrongCode(t *testing.T) {
	f := newFixture()
	_, err := f.svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	_, err = f.svc.Verify(context.Background(), &model.VerifyRequest{
		Email: "john.doe@example.com",
		Code:  "000000",
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeValidation, apperrors.CodeOf(err))
	assert.Equal(t, "Invalid verification code", apperrors.MessageOf(err))
}

func TestVerifyCodeBoundToEmail(t *testing.T) {
	f := newFixture()
	first, err := f.svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	other := registerRequest()
	other.Email = "jane@example.com"
	_, err = f.svc.Register(context.Background(), other)
	require.NoError(t, err)

	// First user's code must not verify the second account.
	_, err = f.svc.Verify(context.Background(), &model.VerifyRequest{
		Email: "jane@example.com",
		Code:  *first.User.VerificationCode,
	})
	if err == nil {
		// The two random codes can collide; only fail when they differ.
		second, _ := f.users.GetByEmail(context.Background(), "jane@example.com")
		assert.Equal(t, *first.User.VerificationCode, *second.VerificationCode)
		return
	}
	assert.Equal(t, apperrors.CodeValidation, apperrors.CodeOf(err))
}
