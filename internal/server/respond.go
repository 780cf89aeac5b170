package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"stylemart-backend/internal/usecase"
)

func errorBody(code, message string) gin.H {
	return gin.H{"error": gin.H{"code": code, "message": message}}
}

// errorResponse maps the service error taxonomy onto HTTP statuses. Unknown
// errors become an opaque 500; their detail stays in the logs.
func errorResponse(err error) (int, gin.H) {
	var (
		unauthorized usecase.ErrUnauthorized
		forbidden    usecase.ErrForbidden
	)
	switch {
	case usecase.IsNotFound(err):
		return http.StatusNotFound, errorBody("NotFound", err.Error())
	case usecase.IsInvalidState(err):
		return http.StatusBadRequest, errorBody("BadRequest", err.Error())
	case usecase.IsGateway(err):
		return http.StatusBadGateway, errorBody("GatewayError", err.Error())
	case errors.As(err, &unauthorized):
		return http.StatusUnauthorized, errorBody("Unauthorized", err.Error())
	case errors.As(err, &forbidden):
		return http.StatusForbidden, errorBody("Forbidden", err.Error())
	}
	return http.StatusInternalServerError, errorBody("ServerError", "internal error")
}

func (s *Server) fail(c *gin.Context, err error) {
	status, body := errorResponse(err)
	if status == http.StatusInternalServerError {
		s.log.Error("request failed", zap.Error(err),
			zap.String("path", c.Request.URL.Path))
	}
	c.JSON(status, body)
}
