package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stylemart-backend/internal/domain"
	"stylemart-backend/internal/usecase"
)

type signupReq struct {
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirmPassword"`
	Role            string `json:"role"`
}

func (s *Server) handleSignup(c *gin.Context) {
	var req signupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, usecase.ErrInvalidState("invalid request body"))
		return
	}
	user, token, err := s.svc.Auth.Signup(c.Request.Context(),
		req.Email, req.Password, req.ConfirmPassword, domain.UserRole(req.Role))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": user, "token": token})
}

type signinReq struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (s *Server) handleSignin(c *gin.Context) {
	var req signinReq
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, usecase.ErrInvalidState("invalid request body"))
		return
	}
	user, token, err := s.svc.Auth.Signin(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user, "token": token})
}

func (s *Server) handleMe(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"user": currentUser(c)})
}
