package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medportal/portal-api/internal/middleware"
	"github.com/medportal/portal-api/internal/repository/memory"
	authService "github.com/medportal/portal-api/internal/service/auth"
	"github.com/medportal/portal-api/internal/service/event"
	pkgauth "github.com/medportal/portal-api/pkg/auth"
	"github.com/medportal/portal-api/pkg/security"
	"github.com/medportal/portal-api/pkg/verification"
)

type fakeEmailService struct{ fail bool }

func (f *fakeEmailService) SendVerification(context.Context, string, string, string) error {
	if f.fail {
		return assert.AnError
	}
	return nil
}

func (f *fakeEmailService) SendWelcome(context.Context, string, string) error {
	if f.fail {
		return assert.AnError
	}
	return nil
}

func newTestServer() *gin.Engine {
	gin.SetMode(gin.TestMode)

	users := memory.NewUserRepository()
	svc := authService.NewService(
		users,
		pkgauth.NewJWTService("test-secret", time.Hour),
		&fakeEmailService{},
		security.NewBcryptHasher(4),
		verification.NewCodeGenerator(),
		event.NewService(memory.NewOutboxRepository()),
	)

	engine := gin.New()
	NewHandler(svc).RegisterRoutes(engine, middleware.NewAuthMiddleware(svc).Authenticate())
	return engine
}

func doRequest(engine *gin.Engine, method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

const registerBody = `{"firstName":"John","lastName":"Doe","email":"John.Doe@Example.com","password":"hunter22","address":"1 Main St"}`

func TestRegisterEndpoint(t *testing.T) {
	engine := newTestServer()

	w := doRequest(engine, http.MethodPost, "/auth/register", registerBody, "")
	require.Equal(t, http.StatusCreated, w.Code)

	body := decode(t, w)
	assert.Equal(t, "User created successfully", body["message"])
	assert.NotEmpty(t, body["token"])

	user := body["user"].(map[string]interface{})
	assert.Equal(t, "john.doe@example.com", user["email"])
	assert.Equal(t, "user", user["role"])
	assert.Equal(t, false, user["verified"])
	// Credentials never leak into responses.
	assert.NotContains(t, user, "password")
	assert.NotContains(t, w.Body.String(), "hunter22")
}

func TestRegisterMissingFields(t *testing.T) {
	engine := newTestServer()

	w := doRequest(engine, http.MethodPost, "/auth/register", `{"email":"a@b.c"}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegisterDuplicate(t *testing.T) {
	engine := newTestServer()

	doRequest(engine, http.MethodPost, "/auth/register", registerBody, "")
	w := doRequest(engine, http.MethodPost, "/auth/register", registerBody, "")
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCreateAdminEndpoint(t *testing.T) {
	engine := newTestServer()

	w := doRequest(engine, http.MethodPost, "/auth/admin/create",
		`{"firstName":"Ada","lastName":"Admin","email":"ada@example.com","password":"pw123456","role":"admin"}`, "")
	require.Equal(t, http.StatusCreated, w.Code)

	body := decode(t, w)
	user := body["user"].(map[string]interface{})
	assert.Equal(t, "admin", user["role"])
	// Trimmed admin shape only.
	assert.Len(t, user, 5)
	assert.Contains(t, user, "userId")
	assert.NotContains(t, user, "verified")
}

func TestCreateAdminMissingFields(t *testing.T) {
	engine := newTestServer()

	w := doRequest(engine, http.MethodPost, "/auth/admin/create",
		`{"firstName":"Ada","email":"ada@example.com"}`, "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Missing required admin fields", decode(t, w)["error"])
}

func TestLoginEndpoint(t *testing.T) {
	engine := newTestServer()
	doRequest(engine, http.MethodPost, "/auth/register", registerBody, "")

	w := doRequest(engine, http.MethodPost, "/auth/login",
		`{"email":"john.doe@example.com","password":"hunter22"}`, "")
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	assert.Equal(t, "Login successful", body["message"])
	assert.NotEmpty(t, body["token"])
}

func TestLoginMissingCredentials(t *testing.T) {
	engine := newTestServer()

	w := doRequest(engine, http.MethodPost, "/auth/login", `{"email":"a@b.c"}`, "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Missing email or password", decode(t, w)["error"])
}

func TestLoginInvalidCredentials(t *testing.T) {
	engine := newTestServer()
	doRequest(engine, http.MethodPost, "/auth/register", registerBody, "")

	wUnknown := doRequest(engine, http.MethodPost, "/auth/login",
		`{"email":"nobody@example.com","password":"hunter22"}`, "")
	wWrongPw := doRequest(engine, http.MethodPost, "/auth/login",
		`{"email":"john.doe@example.com","password":"wrong"}`, "")

	require.Equal(t, http.StatusUnauthorized, wUnknown.Code)
	require.Equal(t, http.StatusUnauthorized, wWrongPw.Code)
	assert.Equal(t, "Invalid email or password", decode(t, wUnknown)["error"])
	assert.Equal(t, decode(t, wUnknown)["error"], decode(t, wWrongPw)["error"])
}

func TestVerifyEndpointWrongCode(t *testing.T) {
	engine := newTestServer()
	doRequest(engine, http.MethodPost, "/auth/register", registerBody, "")

	w := doRequest(engine, http.MethodPost, "/auth/verify",
		`{"email":"john.doe@example.com","code":"000000"}`, "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid verification code", decode(t, w)["error"])
}

func TestMeEndpoint(t *testing.T) {
	engine := newTestServer()

	w := doRequest(engine, http.MethodPost, "/auth/register", registerBody, "")
	token := decode(t, w)["token"].(string)

	w = doRequest(engine, http.MethodGet, "/auth/me", "", token)
	require.Equal(t, http.StatusOK, w.Code)

	user := decode(t, w)["user"].(map[string]interface{})
	assert.Equal(t, "john.doe@example.com", user["email"])
}

func TestMeEndpointUnauthorized(t *testing.T) {
	engine := newTestServer()

	w := doRequest(engine, http.MethodGet, "/auth/me", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(engine, http.MethodGet, "/auth/me", "", "garbage-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
