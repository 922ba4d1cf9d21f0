package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Guyuepp/blog-threads/domain"
)

// ResponseError represent the response error struct
type ResponseError struct {
	Message string `json:"message"`
}

func abortWithError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(getStatusCode(err), ResponseError{Message: err.Error()})
}

func badRequest(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
}

// getStatusCode maps an error kind from the usecases to an http status
func getStatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrOwnershipDenied), errors.Is(err, domain.ErrCommentsDisabled):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrBadParamInput), errors.Is(err, domain.ErrInvalidValue):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	default:
		logrus.Error(err)
		return http.StatusInternalServerError
	}
}
