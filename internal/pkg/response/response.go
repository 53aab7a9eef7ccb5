package response

import (
	"net/http"
	"reflect"

	"github.com/gin-gonic/gin"
	"github.com/rutalab/core/internal/pkg/errid"
)

// OK sends a 200 response. Arrays/slices are wrapped in {data: [...]}.
func OK(c *gin.Context, data interface{}) {
	if data != nil {
		v := reflect.ValueOf(data)
		if v.Kind() == reflect.Slice {
			c.JSON(http.StatusOK, gin.H{"data": data})
			return
		}
	}
	c.JSON(http.StatusOK, data)
}

// Created sends a 201 response.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// NoContent sends a 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// BadRequest sends a 400 error envelope and returns the correlation id so the
// caller can log the same identifier.
func BadRequest(c *gin.Context, message string) string {
	id := errid.New()
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": message, "errorId": id})
	return id
}

// Unauthorized sends a 401 error envelope.
func Unauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "no autorizado", "errorId": errid.New()})
}

// NotFoundMsg sends a 404 error envelope with a custom message.
func NotFoundMsg(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": message, "errorId": errid.New()})
}

// NotFound sends a 404 error envelope.
func NotFound(c *gin.Context) {
	NotFoundMsg(c, "no encontrado")
}

// MethodNotAllowed sends a 405 error envelope.
func MethodNotAllowed(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusMethodNotAllowed, gin.H{"error": "método no permitido", "errorId": errid.New()})
}

// InternalError sends a 500 error envelope and returns the correlation id.
func InternalError(c *gin.Context, message string) string {
	id := errid.New()
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": message, "errorId": id})
	return id
}

// TooManyRequests sends a 429 error envelope.
func TooManyRequests(c *gin.Context, message string) {
	c.Header("Retry-After", "1")
	c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": message, "errorId": errid.New()})
}

// Conflict sends a 409 error envelope.
func Conflict(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": message, "errorId": errid.New()})
}
