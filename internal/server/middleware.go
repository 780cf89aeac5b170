package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"stylemart-backend/internal/domain"
	"stylemart-backend/internal/usecase"
)

const ctxUserKey = "currentUser"

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Info("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)))
	}
}

func (s *Server) recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				s.log.Error("panic recovered", zap.Any("panic", r),
					zap.String("path", c.Request.URL.Path))
				c.AbortWithStatusJSON(http.StatusInternalServerError, errorBody("ServerError", "internal error"))
			}
		}()
		c.Next()
	}
}

// requireAuth resolves the bearer token to a live user or aborts with 401.
func (s *Server) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := s.userFromRequest(c)
		if err != nil {
			status, body := errorResponse(err)
			c.AbortWithStatusJSON(status, body)
			return
		}
		c.Set(ctxUserKey, user)
		c.Next()
	}
}

// optionalAuth attaches the user when a valid token is present and proceeds
// anonymously otherwise.
func (s *Server) optionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if user, err := s.userFromRequest(c); err == nil {
			c.Set(ctxUserKey, user)
		}
		c.Next()
	}
}

func (s *Server) requireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorBody("Unauthorized", "authentication required"))
			return
		}
		for _, r := range roles {
			if string(user.Role) == r {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, errorBody("Forbidden", "insufficient permissions"))
	}
}

func (s *Server) userFromRequest(c *gin.Context) (*domain.User, error) {
	header := c.GetHeader("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return nil, usecase.ErrUnauthorized("missing bearer token")
	}
	return s.svc.Auth.UserFromToken(c.Request.Context(), token)
}

func currentUser(c *gin.Context) *domain.User {
	v, ok := c.Get(ctxUserKey)
	if !ok {
		return nil
	}
	user, _ := v.(*domain.User)
	return user
}

func currentUserID(c *gin.Context) *int64 {
	user := currentUser(c)
	if user == nil {
		return nil
	}
	id := user.ID
	return &id
}
