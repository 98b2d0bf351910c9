package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/medportal/portal-api/pkg/errors"
)

// StatusOf maps an application error code to its HTTP status.
func StatusOf(err error) int {
	switch apperrors.CodeOf(err) {
	case apperrors.CodeValidation:
		return http.StatusBadRequest
	case apperrors.CodeNotFound:
		return http.StatusNotFound
	case apperrors.CodeConflict:
		return http.StatusConflict
	case apperrors.CodeUnauthorized:
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}

// Error writes err using the {"error": message} body shape.
func Error(c *gin.Context, err error) {
	c.JSON(StatusOf(err), gin.H{"error": apperrors.MessageOf(err)})
}

// CreateError writes a create-path failure. Validation failures on create
// respond with the {"message": ...} body shape.
func CreateError(c *gin.Context, err error) {
	if apperrors.CodeOf(err) == apperrors.CodeValidation {
		c.JSON(http.StatusBadRequest, gin.H{"message": apperrors.MessageOf(err)})
		return
	}
	Error(c, err)
}

// Created writes the 201 envelope shared by the create endpoints.
func Created(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, gin.H{"message": message, "data": data})
}

// Updated writes the 200 envelope shared by the update endpoints.
func Updated(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"message": message, "data": data})
}

// ParseID parses the named path parameter as a positive integer id. On
// failure it writes the 400 response and reports false; resource is the
// lowercase path segment used in the error message.
func ParseID(c *gin.Context, param, resource string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + resource + " id"})
		return 0, false
	}
	return id, true
}

// BindingError writes a request-body binding failure.
func BindingError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
