package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"stylemart-backend/internal/usecase"
)

type createPayPalOrderReq struct {
	OrderID int64 `json:"orderId" binding:"required"`
}

func (s *Server) handleCreatePayPalOrder(c *gin.Context) {
	var req createPayPalOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, usecase.ErrInvalidState("invalid request body"))
		return
	}
	result, err := s.svc.Payments.CreatePayPalOrder(c.Request.Context(), currentUser(c).ID, req.OrderID)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (s *Server) handleCapturePayPalOrder(c *gin.Context) {
	providerID := c.Param("providerId")
	if providerID == "" {
		s.fail(c, usecase.ErrInvalidState("provider order id required"))
		return
	}
	payment, order, err := s.svc.Payments.CapturePayPalOrder(c.Request.Context(), currentUser(c).ID, providerID)
	if err != nil {
		paymentsCaptured.WithLabelValues("failed").Inc()
		s.fail(c, err)
		return
	}
	paymentsCaptured.WithLabelValues("completed").Inc()
	c.JSON(http.StatusOK, gin.H{"payment": payment, "order": order})
}

// handlePayPalWebhook always answers 200 with no body: the provider retries
// on anything else, and retries of a recorded event are no-ops anyway.
func (s *Server) handlePayPalWebhook(c *gin.Context) {
	var event usecase.WebhookEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		c.Status(http.StatusOK)
		return
	}
	webhookEvents.WithLabelValues(event.EventType).Inc()
	if err := s.svc.Payments.HandleWebhook(c.Request.Context(), event); err != nil {
		s.log.Error("webhook handling failed",
			zap.String("event_id", event.ID), zap.Error(err))
	}
	c.Status(http.StatusOK)
}
