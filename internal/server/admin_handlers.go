package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"stylemart-backend/internal/domain"
	"stylemart-backend/internal/usecase"
)

func (s *Server) handleAdminListUsers(c *gin.Context) {
	f := usecase.UserFilter{
		Search: c.Query("query"),
		Role:   domain.UserRole(c.Query("role")),
		Status: domain.UserStatus(c.Query("status")),
		Page:   pageFromQuery(c),
	}
	users, total, err := s.svc.Admin.ListUsers(c.Request.Context(), f)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users, "total": total})
}

type setUserStatusReq struct {
	Status string `json:"status" binding:"required"`
}

func (s *Server) handleAdminSetUserStatus(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	var req setUserStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, usecase.ErrInvalidState("invalid request body"))
		return
	}
	user, err := s.svc.Admin.SetUserStatus(c.Request.Context(), id, domain.UserStatus(req.Status))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (s *Server) handleAdminListProducts(c *gin.Context) {
	f := usecase.ProductFilter{
		Search: c.Query("query"),
		Status: domain.ProductStatus(c.Query("status")),
		Page:   pageFromQuery(c),
	}
	if v := c.Query("flagged"); v != "" {
		flagged := v == "true"
		f.Flagged = &flagged
	}
	if v := c.Query("hidden"); v != "" {
		hidden := v == "true"
		f.Hidden = &hidden
	}
	if v := c.Query("sellerId"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			f.SellerID = &id
		}
	}
	products, total, err := s.svc.Admin.ListProducts(c.Request.Context(), f)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products, "total": total})
}

type moderateProductReq struct {
	Action string `json:"action" binding:"required"`
	Reason string `json:"reason"`
}

func (s *Server) handleAdminModerateProduct(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	var req moderateProductReq
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, usecase.ErrInvalidState("invalid request body"))
		return
	}
	product, err := s.svc.Admin.ModerateProduct(c.Request.Context(), id, req.Action, req.Reason)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": product})
}

func (s *Server) handleAdminListOrders(c *gin.Context) {
	f := usecase.OrderFilter{
		Status: domain.OrderStatus(c.Query("status")),
		Page:   pageFromQuery(c),
	}
	if v := c.Query("userId"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			f.UserID = &id
		}
	}
	orders, total, err := s.svc.Admin.ListOrders(c.Request.Context(), f)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders, "total": total})
}

type upsertPresetReq struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name" binding:"required"`
	Description string            `json:"description"`
	Status      string            `json:"status"`
	Parameters  map[string]string `json:"parameters"`
}

func (s *Server) handleAdminUpsertPreset(c *gin.Context) {
	var req upsertPresetReq
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, usecase.ErrInvalidState("invalid request body"))
		return
	}
	preset, err := s.svc.Avatars.UpsertPreset(c.Request.Context(), &domain.AvatarPreset{
		ID:          req.ID,
		Name:        req.Name,
		Description: req.Description,
		Status:      domain.AvatarPresetStatus(req.Status),
		Parameters:  req.Parameters,
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"preset": preset})
}
