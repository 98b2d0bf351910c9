package payment

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medportal/portal-api/internal/handler"
	"github.com/medportal/portal-api/internal/model"
	"github.com/medportal/portal-api/internal/service/payment"
)

type Handler struct {
	service *payment.Service
}

func NewHandler(service *payment.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.POST("/payment", h.Create)
	r.GET("/payment_all", h.List)
	r.GET("/payment/:id", h.Get)
	r.PUT("/payment/:id", h.Update)
	r.DELETE("/payment/:id", h.Delete)
}

func (h *Handler) Create(c *gin.Context) {
	var req model.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindingError(c, err)
		return
	}

	created, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		handler.CreateError(c, err)
		return
	}

	handler.Created(c, "Payment created successfully", created)
}

func (h *Handler) List(c *gin.Context) {
	payments, err := h.service.List(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, payments)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := handler.ParseID(c, "id", "payment")
	if !ok {
		return
	}

	found, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, found)
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := handler.ParseID(c, "id", "payment")
	if !ok {
		return
	}

	var patch model.PaymentPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		handler.BindingError(c, err)
		return
	}

	updated, err := h.service.Update(c.Request.Context(), id, &patch)
	if err != nil {
		handler.Error(c, err)
		return
	}

	handler.Updated(c, "Payment updated successfully", updated)
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := handler.ParseID(c, "id", "payment")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		handler.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
