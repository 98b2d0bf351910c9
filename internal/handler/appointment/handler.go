package appointment

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medportal/portal-api/internal/handler"
	"github.com/medportal/portal-api/internal/model"
	"github.com/medportal/portal-api/internal/service/appointment"
)

type Handler struct {
	service *appointment.Service
}

func NewHandler(service *appointment.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.POST("/appointment", h.Create)
	r.GET("/appointment_all", h.List)
	r.GET("/appointment/:id", h.Get)
	r.PUT("/appointment/:id", h.Update)
	r.DELETE("/appointment/:id", h.Delete)
	r.GET("/appointment/user/:userId", h.ListByUser)
}

func (h *Handler) Create(c *gin.Context) {
	var req model.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindingError(c, err)
		return
	}

	created, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		handler.CreateError(c, err)
		return
	}

	handler.Created(c, "Appointment created successfully", created)
}

func (h *Handler) List(c *gin.Context) {
	appointments, err := h.service.List(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, appointments)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := handler.ParseID(c, "id", "appointment")
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
	id, ok := handler.ParseID(c, "id", "appointment")
	if !ok {
		return
	}

	var patch model.AppointmentPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		handler.BindingError(c, err)
		return
	}

	updated, err := h.service.Update(c.Request.Context(), id, &patch)
	if err != nil {
		handler.Error(c, err)
		return
	}

	handler.Updated(c, "Appointment updated successfully", updated)
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := handler.ParseID(c, "id", "appointment")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		handler.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) ListByUser(c *gin.Context) {
	userID, ok := handler.ParseID(c, "userId", "user")
	if !ok {
		return
	}

	appointments, err := h.service.ListByUser(c.Request.Context(), userID)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, appointments)
}
