package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medportal/portal-api/internal/model"
	"github.com/medportal/portal-api/internal/repository/memory"
	apperrors "github.com/medportal/portal-api/pkg/errors"
	"github.com/medportal/portal-api/pkg/security"
	"github.com/medportal/portal-api/pkg/verification"
)

func newService() (*Service, security.PasswordHasher) {
	hasher := security.NewBcryptHasher(4)
	return NewService(memory.NewUserRepository(), hasher, verification.NewCodeGenerator()), hasher
}

func createRequest() *model.CreateUserRequest {
	return &model.CreateUserRequest{
		FirstName: "Jane",
		LastName:  "Smith",
		Email:     "Jane@Example.com",
		Password:  "pass1234",
		Address:   "2 Side St",
	}
}

func TestCreate(t *testing.T) {
	svc, hasher := newService()

	created, err := svc.Create(context.Background(), createRequest())
	require.NoError(t, err)

	assert.Equal(t, "jane@example.com", created.Email)
	assert.Equal(t, model.RoleUser, created.Role)
	assert.Equal(t, model.DefaultImageURL, created.ImageURL)
	assert.NoError(t, hasher.Compare(created.Password, "pass1234"))
	require.NotNil(t, created.VerificationCode)
	assert.Len(t, *created.VerificationCode, 6)
	assert.Positive(t, created.UserID)
}

func TestCreateDuplicateEmail(t *testing.T) {
	svc, _ := newService()

	_, err := svc.Create(context.Background(), createRequest())
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), createRequest())
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeConflict, apperrors.CodeOf(err))
}

func TestGetMissing(t *testing.T) {
	svc, _ := newService()

	_, err := svc.Get(context.Background(), 99)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeNotFound, apperrors.CodeOf(err))
	assert.Equal(t, "User not found", apperrors.MessageOf(err))
}

func TestUpdateRehashesPassword(t *testing.T) {
	svc, hasher := newService()
	created, err := svc.Create(context.Background(), createRequest())
	require.NoError(t, err)

	newPassword := "newpass99"
	updated, err := svc.Update(context.Background(), created.UserID, &model.UserPatch{Password: &newPassword})
	require.NoError(t, err)

	assert.NotEqual(t, newPassword, updated.Password)
	assert.NoError(t, hasher.Compare(updated.Password, newPassword))
}

func TestUpdateLowercasesEmail(t *testing.T) {
	svc, _ := newService()
	created, err := svc.Create(context.Background(), createRequest())
	require.NoError(t, err)

	email := "NewAddr@Example.com"
	updated, err := svc.Update(context.Background(), created.UserID, &model.UserPatch{Email: &email})
	require.NoError(t, err)
	assert.Equal(t, "newaddr@example.com", updated.Email)
}

func TestUpdateEmptyPatch(t *testing.T) {
	svc, _ := newService()
	created, err := svc.Create(context.Background(), createRequest())
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), created.UserID, &model.UserPatch{})
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeValidation, apperrors.CodeOf(err))
}

func TestDeleteTwice(t *testing.T) {
	svc, _ := newService()
	created, err := svc.Create(context.Background(), createRequest())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.UserID))

	err = svc.Delete(context.Background(), created.UserID)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeNotFound, apperrors.CodeOf(err))
}

func TestListDoctors(t *testing.T) {
	svc, _ := newService()

	req := createRequest()
	req.Role = model.RoleDoctor
	_, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	other := createRequest()
	other.Email = "plain@example.com"
	_, err = svc.Create(context.Background(), other)
	require.NoError(t, err)

	doctors, err := svc.ListDoctors(context.Background())
	require.NoError(t, err)
	require.Len(t, doctors, 1)
	assert.Equal(t, model.RoleDoctor, doctors[0].Role)
}
