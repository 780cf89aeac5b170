package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stylemart-backend/internal/ai"
	"stylemart-backend/internal/usecase"
)

type chatReq struct {
	ConversationID string `json:"conversationId"`
	Message        string `json:"message" binding:"required"`
	ProductID      *int64 `json:"productId"`
}

func (s *Server) handleStylistChat(c *gin.Context) {
	var req chatReq
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, usecase.ErrInvalidState("invalid request body"))
		return
	}
	reply, err := s.svc.Stylist.Chat(c.Request.Context(), currentUser(c).ID,
		req.ConversationID, req.Message, req.ProductID)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, reply)
}

func (s *Server) handleStylistHistory(c *gin.Context) {
	conv, err := s.svc.Stylist.History(c.Request.Context(), currentUser(c).ID, c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"conversation": conv})
}

func (s *Server) handleSellerChat(c *gin.Context) {
	var req chatReq
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, usecase.ErrInvalidState("invalid request body"))
		return
	}
	reply, err := s.svc.Seller.Chat(c.Request.Context(), currentUser(c).ID,
		req.ConversationID, req.Message, req.ProductID)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, reply)
}

type generateListingReq struct {
	Name                string   `json:"name"`
	Category            string   `json:"category"`
	Gender              string   `json:"gender"`
	Price               string   `json:"price"`
	StyleKeywords       []string `json:"styleKeywords"`
	TargetAudience      string   `json:"targetAudience"`
	ExistingDescription string   `json:"existingDescription"`
}

func (s *Server) handleGenerateListing(c *gin.Context) {
	var req generateListingReq
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, usecase.ErrInvalidState("invalid request body"))
		return
	}
	listing, err := s.svc.Seller.GenerateListing(c.Request.Context(), ai.ListingFields{
		Name:                req.Name,
		Category:            req.Category,
		Gender:              req.Gender,
		Price:               req.Price,
		StyleKeywords:       req.StyleKeywords,
		TargetAudience:      req.TargetAudience,
		ExistingDescription: req.ExistingDescription,
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"listing": listing})
}

func (s *Server) handleListPresets(c *gin.Context) {
	presets, err := s.svc.Avatars.ListPresets(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"presets": presets})
}

type renderAvatarReq struct {
	PresetID    int64             `json:"presetId" binding:"required"`
	ProductID   *int64            `json:"productId"`
	StyleParams map[string]string `json:"styleParams"`
	ImageCount  int               `json:"imageCount"`
}

func (s *Server) handleRenderAvatar(c *gin.Context) {
	var req renderAvatarReq
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, usecase.ErrInvalidState("invalid request body"))
		return
	}
	result, err := s.svc.Avatars.Render(c.Request.Context(), currentUser(c).ID,
		req.PresetID, req.ProductID, req.StyleParams, req.ImageCount)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
