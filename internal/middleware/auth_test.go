package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medportal/portal-api/internal/model"
	"github.com/medportal/portal-api/internal/repository/memory"
	authService "github.com/medportal/portal-api/internal/service/auth"
	"github.com/medportal/portal-api/internal/service/event"
	pkgauth "github.com/medportal/portal-api/pkg/auth"
	"github.com/medportal/portal-api/pkg/security"
	"github.com/medportal/portal-api/pkg/verification"
)

type nopEmailService struct{}

func (nopEmailService) SendVerification(context.Context, string, string, string) error { return nil }
func (nopEmailService) SendWelcome(context.Context, string, string) error              { return nil }

// countingUserRepo counts Get calls so the token cache is observable.
type countingUserRepo struct {
	*memory.UserRepository
	gets int64
}

func (r *countingUserRepo) Get(ctx context.Context, id int64) (*model.User, error) {
	atomic.AddInt64(&r.gets, 1)
	return r.UserRepository.Get(ctx, id)
}

type testEnv struct {
	engine *gin.Engine
	token  string
	repo   *countingUserRepo
	mw     *AuthMiddleware
}

func setup(t *testing.T, role string) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := &countingUserRepo{UserRepository: memory.NewUserRepository()}
	svc := authService.NewService(
		repo,
		pkgauth.NewJWTService("test-secret", time.Hour),
		nopEmailService{},
		security.NewBcryptHasher(4),
		verification.NewCodeGenerator(),
		event.NewService(memory.NewOutboxRepository()),
	)

	result, err := svc.Register(context.Background(), &model.RegisterRequest{
		FirstName: "Test",
		LastName:  "User",
		Email:     "test@example.com",
		Password:  "pw123456",
	})
	require.NoError(t, err)

	if role != model.RoleUser {
		_, err = repo.Update(context.Background(), result.User.UserID, &model.UserPatch{Role: &role})
		require.NoError(t, err)
	}

	mw := NewAuthMiddleware(svc)
	engine := gin.New()
	return &testEnv{engine: engine, token: result.Token, repo: repo, mw: mw}
}

func get(engine *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestAuthenticate(t *testing.T) {
	env := setup(t, model.RoleUser)
	env.engine.GET("/protected", env.mw.Authenticate(), func(c *gin.Context) {
		user, ok := CurrentUser(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"email": user.Email})
	})

	assert.Equal(t, http.StatusOK, get(env.engine, "/protected", env.token).Code)
	assert.Equal(t, http.StatusUnauthorized, get(env.engine, "/protected", "").Code)
	assert.Equal(t, http.StatusUnauthorized, get(env.engine, "/protected", "bogus").Code)
}

func TestAuthenticateCachesUser(t *testing.T) {
	env := setup(t, model.RoleUser)
	env.engine.GET("/protected", env.mw.Authenticate(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	before := atomic.LoadInt64(&env.repo.gets)
	get(env.engine, "/protected", env.token)
	get(env.engine, "/protected", env.token)
	after := atomic.LoadInt64(&env.repo.gets)

	assert.Equal(t, int64(1), after-before)
}

func TestRequireRole(t *testing.T) {
	env := setup(t, model.RoleAdmin)
	env.engine.GET("/admin", env.mw.Authenticate(), env.mw.RequireRole(model.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	env.engine.GET("/doctor", env.mw.Authenticate(), env.mw.RequireRole(model.RoleDoctor), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	assert.Equal(t, http.StatusOK, get(env.engine, "/admin", env.token).Code)
	assert.Equal(t, http.StatusForbidden, get(env.engine, "/doctor", env.token).Code)
}

func TestRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(NewRateLimiter(1, 1).RateLimit())
	engine.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, get(engine, "/", "").Code)
	assert.Equal(t, http.StatusTooManyRequests, get(engine, "/", "").Code)
}
