package complaint

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medportal/portal-api/internal/handler"
	"github.com/medportal/portal-api/internal/model"
	"github.com/medportal/portal-api/internal/service/complaint"
)

type Handler struct {
	service *complaint.Service
}

func NewHandler(service *complaint.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.POST("/complaint", h.Create)
	r.GET("/complaint_all", h.List)
	r.GET("/complaint/:id", h.Get)
	r.PUT("/complaint/:id", h.Update)
	r.DELETE("/complaint/:id", h.Delete)
	r.GET("/complaint/user/:userId", h.ListByUser)
}

func (h *Handler) Create(c *gin.Context) {
	var req model.CreateComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindingError(c, err)
		return
	}

	created, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		handler.CreateError(c, err)
		return
	}

	handler.Created(c, "Complaint created successfully", created)
}

func (h *Handler) List(c *gin.Context) {
	complaints, err := h.service.List(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, complaints)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := handler.ParseID(c, "id", "complaint")
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
	id, ok := handler.ParseID(c, "id", "complaint")
	if !ok {
		return
	}

	var patch model.ComplaintPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		handler.BindingError(c, err)
		return
	}

	updated, err := h.service.Update(c.Request.Context(), id, &patch)
	if err != nil {
		handler.Error(c, err)
		return
	}

	handler.Updated(c, "Complaint updated successfully", updated)
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := handler.ParseID(c, "id", "complaint")
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

	complaints, err := h.service.ListByUser(c.Request.Context(), userID)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, complaints)
}
