package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appointmenthandler "github.com/medportal/portal-api/internal/handler/appointment"
	authhandler "github.com/medportal/portal-api/internal/handler/auth"
	complainthandler "github.com/medportal/portal-api/internal/handler/complaint"
	doctorhandler "github.com/medportal/portal-api/internal/handler/doctor"
	healthhandler "github.com/medportal/portal-api/internal/handler/health"
	paymenthandler "github.com/medportal/portal-api/internal/handler/payment"
	prescriptionhandler "github.com/medportal/portal-api/internal/handler/prescription"
	transactionhandler "github.com/medportal/portal-api/internal/handler/transaction"
	userhandler "github.com/medportal/portal-api/internal/handler/user"
	"github.com/medportal/portal-api/internal/middleware"
	"github.com/medportal/portal-api/internal/repository/memory"
	appointmentService "github.com/medportal/portal-api/internal/service/appointment"
	authService "github.com/medportal/portal-api/internal/service/auth"
	complaintService "github.com/medportal/portal-api/internal/service/complaint"
	doctorService "github.com/medportal/portal-api/internal/service/doctor"
	"github.com/medportal/portal-api/internal/service/event"
	paymentService "github.com/medportal/portal-api/internal/service/payment"
	prescriptionService "github.com/medportal/portal-api/internal/service/prescription"
	transactionService "github.com/medportal/portal-api/internal/service/transaction"
	userService "github.com/medportal/portal-api/internal/service/user"
	pkgauth "github.com/medportal/portal-api/pkg/auth"
	"github.com/medportal/portal-api/pkg/security"
	"github.com/medportal/portal-api/pkg/verification"
)

type nopEmailService struct{}

func (nopEmailService) SendVerification(context.Context, string, string, string) error { return nil }
func (nopEmailService) SendWelcome(context.Context, string, string) error              { return nil }

func newTestRouter(t *testing.T) *Router {
	t.Helper()

	// Open allocates a handle without dialing, so readiness probes fail
	// while everything else works.
	db, err := sqlx.Open("postgres", "host=localhost port=1 user=x dbname=x sslmode=disable")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	userRepo := memory.NewUserRepository()
	outbox := memory.NewOutboxRepository()
	events := event.NewService(outbox)
	hasher := security.NewBcryptHasher(4)
	codes := verification.NewCodeGenerator()

	authSvc := authService.NewService(
		userRepo,
		pkgauth.NewJWTService("test-secret", time.Hour),
		nopEmailService{},
		hasher,
		codes,
		events,
	)

	return New(Handlers{
		Auth:         authhandler.NewHandler(authSvc),
		User:         userhandler.NewHandler(userService.NewService(userRepo, hasher, codes)),
		Doctor:       doctorhandler.NewHandler(doctorService.NewService(memory.NewDoctorRepository())),
		Appointment:  appointmenthandler.NewHandler(appointmentService.NewService(memory.NewAppointmentRepository(), events)),
		Prescription: prescriptionhandler.NewHandler(prescriptionService.NewService(memory.NewPrescriptionRepository())),
		Payment:      paymenthandler.NewHandler(paymentService.NewService(memory.NewPaymentRepository(), events)),
		Transaction:  transactionhandler.NewHandler(transactionService.NewService(memory.NewTransactionRepository())),
		Complaint:    complainthandler.NewHandler(complaintService.NewService(memory.NewComplaintRepository(), events)),
		Health:       healthhandler.NewHandler(db),
	}, middleware.NewAuthMiddleware(authSvc), Config{
		CORS: middleware.DefaultCORSConfig(),
	})
}

func doRequest(r *Router, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.Engine().ServeHTTP(w, req)
	return w
}

func TestHealthEndpoints(t *testing.T) {
	r := newTestRouter(t)

	assert.Equal(t, http.StatusOK, doRequest(r, http.MethodGet, "/health/live", "").Code)
	assert.Equal(t, http.StatusServiceUnavailable, doRequest(r, http.MethodGet, "/health/ready", "").Code)
}

func TestMetricsEndpoint(t *testing.T) {
	r := newTestRouter(t)

	doRequest(r, http.MethodGet, "/health/live", "")

	w := doRequest(r, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_requests_total")
	assert.Contains(t, w.Body.String(), "http_request_duration_seconds")
}

func TestRoleValidation(t *testing.T) {
	r := newTestRouter(t)

	w := doRequest(r, http.MethodPost, "/user",
		`{"firstName":"A","lastName":"B","email":"a@b.c","password":"pw123456","address":"x","role":"banana"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(r, http.MethodPost, "/user",
		`{"firstName":"A","lastName":"B","email":"a@b.c","password":"pw123456","address":"x","role":"doctor"}`)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func doAuthedRequest(r *Router, method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.Engine().ServeHTTP(w, req)
	return w
}

func registerForToken(t *testing.T, r *Router, path, body string) string {
	t.Helper()
	w := doRequest(r, http.MethodPost, path, body)
	require.Equal(t, http.StatusCreated, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	token := resp["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestDoctorsListing(t *testing.T) {
	r := newTestRouter(t)

	doRequest(r, http.MethodPost, "/user",
		`{"firstName":"Doc","lastName":"Tor","email":"doc@b.c","password":"pw123456","address":"x","role":"doctor"}`)
	doRequest(r, http.MethodPost, "/user",
		`{"firstName":"Pat","lastName":"Ient","email":"pat@b.c","password":"pw123456","address":"x"}`)

	w := doRequest(r, http.MethodGet, "/doctors", "")
	require.Equal(t, http.StatusUnauthorized, w.Code)

	token := registerForToken(t, r, "/auth/register",
		`{"firstName":"Vis","lastName":"Itor","email":"vis@b.c","password":"pw123456","address":"x"}`)

	w = doAuthedRequest(r, http.MethodGet, "/doctors", "", token)
	require.Equal(t, http.StatusOK, w.Code)

	var list []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "doctor", list[0]["role"])
}

func TestUserGetRequiresAdmin(t *testing.T) {
	r := newTestRouter(t)

	w := doRequest(r, http.MethodPost, "/user",
		`{"firstName":"Tar","lastName":"Get","email":"target@b.c","password":"pw123456","address":"x"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(r, http.MethodGet, "/user/1", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	userToken := registerForToken(t, r, "/auth/register",
		`{"firstName":"Plain","lastName":"User","email":"plain@b.c","password":"pw123456","address":"x"}`)
	w = doAuthedRequest(r, http.MethodGet, "/user/1", "", userToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	adminToken := registerForToken(t, r, "/auth/admin/create",
		`{"firstName":"Ad","lastName":"Min","email":"admin@b.c","password":"pw123456","role":"admin"}`)
	w = doAuthedRequest(r, http.MethodGet, "/user/1", "", adminToken)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "target@b.c", body["email"])
}

func TestComplaintFlow(t *testing.T) {
	r := newTestRouter(t)

	w := doRequest(r, http.MethodPost, "/complaint",
		`{"userId":1,"appointmentId":1,"subject":"Late start","description":"Waited an hour"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "Open", data["status"])

	w = doRequest(r, http.MethodGet, "/complaint/user/1", "")
	require.Equal(t, http.StatusOK, w.Code)

	var list []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 1)

	w = doRequest(r, http.MethodPut, "/complaint/1", `{"status":"Resolved"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(r, http.MethodDelete, "/complaint/1", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestAuthFlowThroughRouter(t *testing.T) {
	r := newTestRouter(t)

	w := doRequest(r, http.MethodPost, "/auth/register",
		`{"firstName":"John","lastName":"Doe","email":"john@example.com","password":"hunter22","address":"1 Main St"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	token := body["token"].(string)
	require.NotEmpty(t, token)

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	r.Engine().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}
