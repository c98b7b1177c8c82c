package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope is the JSON body every handler responds with. Error responses
// leave Data empty and carry the failure reason in Error.
type Envelope struct {
	Status  int         `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Success writes a 200 envelope around data.
func Success(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Envelope{
		Status:  http.StatusOK,
		Message: message,
		Data:    data,
	})
}

// Created writes a 201 envelope around the newly created resource.
func Created(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, Envelope{
		Status:  http.StatusCreated,
		Message: message,
		Data:    data,
	})
}

// Error writes an error envelope. The message is the standard status text;
// reason tells the caller what actually went wrong.
func Error(c *gin.Context, status int, reason string) {
	c.JSON(status, Envelope{
		Status:  status,
		Message: http.StatusText(status),
		Error:   reason,
	})
}

func BadRequest(c *gin.Context, reason string) {
	Error(c, http.StatusBadRequest, reason)
}

func Unauthorized(c *gin.Context, reason string) {
	Error(c, http.StatusUnauthorized, reason)
}

func Forbidden(c *gin.Context, reason string) {
	Error(c, http.StatusForbidden, reason)
}

func NotFound(c *gin.Context, reason string) {
	Error(c, http.StatusNotFound, reason)
}

func Conflict(c *gin.Context, reason string) {
	Error(c, http.StatusConflict, reason)
}

func InternalServerError(c *gin.Context, reason string) {
	Error(c, http.StatusInternalServerError, reason)
}
