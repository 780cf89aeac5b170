package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stylemart-backend/internal/usecase"
)

func (s *Server) handleGetCart(c *gin.Context) {
	cart, err := s.svc.Carts.CartForUser(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cart": cart})
}

type addCartItemReq struct {
	ProductID   int64             `json:"productId" binding:"required"`
	Quantity    int               `json:"quantity" binding:"required"`
	VariantData map[string]string `json:"variantData"`
}

func (s *Server) handleAddCartItem(c *gin.Context) {
	var req addCartItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, usecase.ErrInvalidState("invalid request body"))
		return
	}
	cart, err := s.svc.Carts.AddItem(c.Request.Context(), currentUser(c).ID,
		req.ProductID, req.Quantity, req.VariantData)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cart": cart})
}

type updateCartItemReq struct {
	Quantity int `json:"quantity" binding:"required"`
}

func (s *Server) handleUpdateCartItem(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	var req updateCartItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, usecase.ErrInvalidState("invalid request body"))
		return
	}
	cart, err := s.svc.Carts.UpdateItemQuantity(c.Request.Context(), currentUser(c).ID, id, req.Quantity)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cart": cart})
}

func (s *Server) handleRemoveCartItem(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	cart, err := s.svc.Carts.RemoveItem(c.Request.Context(), currentUser(c).ID, id)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cart": cart})
}
