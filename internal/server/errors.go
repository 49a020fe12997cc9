package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ims/ims/internal/messaging"
)

const internalErrorMessage = "internal server error"

// errorResponse is the body of every failed request
type errorResponse struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Message string `json:"message"`
}

func abortWithError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, errorResponse{Error: errorDetail{Message: message}})
}

// respondServiceError maps registry errors to a status code: not-found kinds become
// 404 with their message, anything else is logged and hidden behind a 500
func respondServiceError(as *AppState, c *gin.Context, err error, action string, fields ...zap.Field) {
	if messaging.IsNotFound(err) {
		abortWithError(c, http.StatusNotFound, err.Error())
		return
	}

	fields = append(fields, zap.String("request_id", c.GetString(requestIDKey)), zap.Error(err))
	as.Logger.Error("Failed to "+action, fields...)
	abortWithError(c, http.StatusInternalServerError, internalErrorMessage)
}

// respondBindError rejects a request whose body could not be decoded or validated
func respondBindError(c *gin.Context, err error) {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		abortWithError(c, http.StatusRequestEntityTooLarge, "request body too large")
		return
	}
	abortWithError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
}

// uuidParam parses a path parameter, answering 400 when it is not a uuid
func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	raw := c.Param(name)
	id, err := uuid.Parse(raw)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid "+name+": "+raw)
		return uuid.Nil, false
	}
	return id, true
}
