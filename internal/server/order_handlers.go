package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type createOrderReq struct {
	Currency string `json:"currency"`
}

func (s *Server) handleCreateOrder(c *gin.Context) {
	var req createOrderReq
	_ = c.ShouldBindJSON(&req)

	result, err := s.svc.Orders.CreateOrderFromCart(c.Request.Context(), currentUser(c).ID, req.Currency)
	if err != nil {
		s.fail(c, err)
		return
	}
	ordersCreated.Inc()
	c.JSON(http.StatusCreated, result)
}

func (s *Server) handleListOrders(c *gin.Context) {
	orders, err := s.svc.Orders.ListOrdersForUser(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

func (s *Server) handleOrderDetail(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	order, err := s.svc.Orders.OrderDetailForUser(c.Request.Context(), currentUser(c).ID, id)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}
