package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shareloop/service-sharing/internal/domain"
)

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error string `json:"error"`
}

// Success writes a 200 response with the given payload.
func Success(c *gin.Context, payload interface{}) {
	c.JSON(http.StatusOK, payload)
}

// Created writes a 201 response with the given payload.
func Created(c *gin.Context, payload interface{}) {
	c.JSON(http.StatusCreated, payload)
}

// NoContent writes an empty 200 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusOK)
}

// BadRequest writes a 400 response with the given message.
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, errorBody{Error: message})
}

// Error maps a domain error kind to its HTTP status. Unrecognized errors
// become 500 without leaking their message.
func Error(c *gin.Context, err error) {
	var (
		notFound   *domain.NotFoundError
		validation *domain.ValidationError
		forbidden  *domain.ForbiddenError
		conflict   *domain.ConflictError
	)
	switch {
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, errorBody{Error: notFound.Message})
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, errorBody{Error: validation.Message})
	case errors.As(err, &forbidden):
		c.JSON(http.StatusForbidden, errorBody{Error: forbidden.Message})
	case errors.As(err, &conflict):
		c.JSON(http.StatusConflict, errorBody{Error: conflict.Message})
	default:
		c.JSON(http.StatusInternalServerError, errorBody{Error: "internal server error"})
	}
}
