package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"stylemart-backend/internal/usecase"
)

func (s *Server) handleSearchSuggestions(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	suggestions, err := s.svc.Search.Suggest(c.Request.Context(), c.Query("query"), limit)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}

func (s *Server) handleSearchHistory(c *gin.Context) {
	history, err := s.svc.Search.History(c.Request.Context(), currentUserID(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"history": history})
}

type addSearchHistoryReq struct {
	Keyword     string `json:"keyword" binding:"required"`
	Destination string `json:"destination"`
}

func (s *Server) handleAddSearchHistory(c *gin.Context) {
	var req addSearchHistoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, usecase.ErrInvalidState("invalid request body"))
		return
	}
	entry, err := s.svc.Search.AddHistory(c.Request.Context(), currentUserID(c), req.Keyword, req.Destination)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"entry": entry})
}

func (s *Server) handleDeleteSearchHistory(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	if err := s.svc.Search.DeleteHistory(c.Request.Context(), currentUserID(c), id); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
