package doctor

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medportal/portal-api/internal/handler"
	"github.com/medportal/portal-api/internal/model"
	"github.com/medportal/portal-api/internal/service/doctor"
)

type Handler struct {
	service *doctor.Service
}

func NewHandler(service *doctor.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.POST("/doctor", h.Create)
	r.GET("/doctor_all", h.List)
	r.GET("/doctor/:id", h.Get)
	r.PUT("/doctor/:id", h.Update)
	r.DELETE("/doctor/:id", h.Delete)
}

func (h *Handler) Create(c *gin.Context) {
	var req model.CreateDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindingError(c, err)
		return
	}

	created, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		handler.CreateError(c, err)
		return
	}

	handler.Created(c, "Doctor created successfully", created)
}

func (h *Handler) List(c *gin.Context) {
	doctors, err := h.service.List(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, doctors)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := handler.ParseID(c, "id", "doctor")
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
	id, ok := handler.ParseID(c, "id", "doctor")
	if !ok {
		return
	}

	var patch model.DoctorPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		handler.BindingError(c, err)
		return
	}

	updated, err := h.service.Update(c.Request.Context(), id, &patch)
	if err != nil {
		handler.Error(c, err)
		return
	}

	handler.Updated(c, "Doctor updated successfully", updated)
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := handler.ParseID(c, "id", "doctor")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		handler.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
