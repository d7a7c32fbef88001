// Package api holds shared HTTP plumbing for the REST handlers.
package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"aura/marketplace/marketplace-backend/internal/domain"
)

// Error writes the response for a service error: validation failures map to
// 400 with field detail, missing entities to 404, illegal lifecycle
// transitions to 409, anything else to 500.
func Error(c *gin.Context, err error) {
	var notFound *domain.NotFoundError
	var validation *domain.ValidationError
	var transition *domain.TransitionError
	switch {
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"message": notFound.Error()})
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{"message": "validation failed", "fields": validation.Fields})
	case errors.As(err, &transition):
		c.JSON(http.StatusConflict, gin.H{"message": transition.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
	}
}

// BadRequest writes a 400 for payloads that do not decode at all.
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"message": message})
}
