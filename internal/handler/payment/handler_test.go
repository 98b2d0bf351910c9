package payment

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medportal/portal-api/internal/repository/memory"
	"github.com/medportal/portal-api/internal/service/event"
	paymentService "github.com/medportal/portal-api/internal/service/payment"
)

func newTestServer() *gin.Engine {
	gin.SetMode(gin.TestMode)

	svc := paymentService.NewService(memory.NewPaymentRepository(), event.NewService(memory.NewOutboxRepository()))
	engine := gin.New()
	NewHandler(svc).RegisterRoutes(engine)
	return engine
}

func doRequest(engine *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

const createBody = `{"appointmentId":1,"amount":"120.00","transactionId":3,"paymentDate":"2025-04-10"}`

func TestCreatePayment(t *testing.T) {
	engine := newTestServer()

	w := doRequest(engine, http.MethodPost, "/payment", createBody)
	require.Equal(t, http.StatusCreated, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Payment created successfully", body["message"])

	data := body["data"].(map[string]interface{})
	assert.Equal(t, float64(1), data["paymentId"])
	assert.Equal(t, "120.00", data["amount"])
	assert.Equal(t, false, data["status"])
	assert.Equal(t, "2025-04-10", data["paymentDate"])
}

func TestCreatePaymentDuplicateAppointment(t *testing.T) {
	engine := newTestServer()

	w := doRequest(engine, http.MethodPost, "/payment", createBody)
	require.Equal(t, http.StatusCreated, w.Code)

	// Payments are one-to-one with appointments.
	w = doRequest(engine, http.MethodPost, "/payment", createBody)
	require.Equal(t, http.StatusConflict, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "appointment already paid", body["error"])
}

func TestDeletePayment(t *testing.T) {
	engine := newTestServer()
	doRequest(engine, http.MethodPost, "/payment", createBody)

	w := doRequest(engine, http.MethodDelete, "/payment/1", "")
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	w = doRequest(engine, http.MethodDelete, "/payment/1", "")
	require.Equal(t, http.StatusNotFound, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Payment not found", body["error"])
}

func TestPaymentInvalidID(t *testing.T) {
	engine := newTestServer()

	for _, path := range []string{"/payment/abc", "/payment/-1", "/payment/0"} {
		w := doRequest(engine, http.MethodGet, path, "")
		require.Equal(t, http.StatusBadRequest, w.Code, "path %s", path)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "Invalid payment id", body["error"])
	}
}

func TestUpdatePaymentStatus(t *testing.T) {
	engine := newTestServer()
	doRequest(engine, http.MethodPost, "/payment", createBody)

	w := doRequest(engine, http.MethodPut, "/payment/1", `{"status":true}`)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Payment updated successfully", body["message"])
	data := body["data"].(map[string]interface{})
	assert.Equal(t, true, data["status"])
}
