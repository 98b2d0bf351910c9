package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medportal/portal-api/internal/handler"
	"github.com/medportal/portal-api/internal/middleware"
	"github.com/medportal/portal-api/internal/model"
	"github.com/medportal/portal-api/internal/service/auth"
)

type Handler struct {
	service *auth.Service
}

func NewHandler(service *auth.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r gin.IRouter, authn gin.HandlerFunc) {
	grp := r.Group("/auth")
	grp.POST("/register", h.Register)
	grp.POST("/admin/create", h.CreateAdmin)
	grp.POST("/login", h.Login)
	grp.POST("/verify", h.Verify)
	grp.GET("/me", authn, h.Me)
}

func (h *Handler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindingError(c, err)
		return
	}

	result, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User created successfully",
		"user":    result.User,
		"token":   result.Token,
	})
}

func (h *Handler) CreateAdmin(c *gin.Context) {
	var req model.CreateAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindingError(c, err)
		return
	}
	if !req.Complete() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required admin fields"})
		return
	}

	result, err := h.service.CreateAdmin(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Admin created successfully",
		"user":    result.User.AdminSummary(),
		"token":   result.Token,
	})
}

func (h *Handler) Login(c *gin.Context) {
	var creds model.LoginRequest
	if err := c.ShouldBindJSON(&creds); err != nil {
		handler.BindingError(c, err)
		return
	}
	if creds.Email == "" || creds.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing email or password"})
		return
	}

	result, err := h.service.Login(c.Request.Context(), &creds)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"user":    result.User,
		"token":   result.Token,
	})
}

func (h *Handler) Verify(c *gin.Context) {
	var req model.VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindingError(c, err)
		return
	}

	result, err := h.service.Verify(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Email verified successfully",
		"user":    result.User,
		"token":   result.Token,
	})
}

func (h *Handler) Me(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}
