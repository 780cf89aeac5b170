package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"stylemart-backend/internal/domain"
	"stylemart-backend/internal/usecase"
)

func (s *Server) handleListProducts(c *gin.Context) {
	f := usecase.ProductFilter{
		Search:     c.Query("query"),
		Category:   c.Query("category"),
		Gender:     c.Query("gender"),
		Size:       c.Query("size"),
		Color:      c.Query("color"),
		Sort:       c.Query("sort"),
		PublicOnly: true,
		Page:       pageFromQuery(c),
	}
	if v := c.Query("priceMin"); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			f.PriceMin = &d
		}
	}
	if v := c.Query("priceMax"); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			f.PriceMax = &d
		}
	}
	if v := c.Query("sellerId"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			f.SellerID = &id
		}
	}

	products, total, err := s.svc.Products.List(c.Request.Context(), f)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products, "total": total})
}

func (s *Server) handleProductDetail(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	product, err := s.svc.Products.Detail(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": product})
}

type createProductReq struct {
	Name         string   `json:"name" binding:"required"`
	Description  string   `json:"description"`
	Price        string   `json:"price" binding:"required"`
	Category     string   `json:"category"`
	Gender       string   `json:"gender"`
	SizeOptions  []string `json:"sizeOptions"`
	ColorOptions []string `json:"colorOptions"`
	Stock        int      `json:"stock"`
	Status       string   `json:"status"`
}

func (s *Server) handleCreateProduct(c *gin.Context) {
	var req createProductReq
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, usecase.ErrInvalidState("invalid request body"))
		return
	}
	price, err := decimal.NewFromString(req.Price)
	if err != nil || !price.IsPositive() {
		s.fail(c, usecase.ErrInvalidState("price must be a positive decimal"))
		return
	}
	if req.Stock < 0 {
		s.fail(c, usecase.ErrInvalidState("stock must not be negative"))
		return
	}

	product, err := s.svc.Products.CreateForSeller(c.Request.Context(), currentUser(c), &domain.Product{
		Name:         req.Name,
		Description:  req.Description,
		Price:        price,
		Category:     req.Category,
		Gender:       req.Gender,
		SizeOptions:  req.SizeOptions,
		ColorOptions: req.ColorOptions,
		Stock:        req.Stock,
		Status:       domain.ProductStatus(req.Status),
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"product": product})
}

type updateProductReq struct {
	Name         *string   `json:"name"`
	Description  *string   `json:"description"`
	Price        *string   `json:"price"`
	Category     *string   `json:"category"`
	Gender       *string   `json:"gender"`
	SizeOptions  *[]string `json:"sizeOptions"`
	ColorOptions *[]string `json:"colorOptions"`
	Stock        *int      `json:"stock"`
	Status       *string   `json:"status"`
}

func (s *Server) handleUpdateProduct(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	var req updateProductReq
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, usecase.ErrInvalidState("invalid request body"))
		return
	}

	patch := usecase.ProductPatch{
		Name:         req.Name,
		Description:  req.Description,
		Category:     req.Category,
		Gender:       req.Gender,
		SizeOptions:  req.SizeOptions,
		ColorOptions: req.ColorOptions,
		Stock:        req.Stock,
	}
	if req.Price != nil {
		price, err := decimal.NewFromString(*req.Price)
		if err != nil || !price.IsPositive() {
			s.fail(c, usecase.ErrInvalidState("price must be a positive decimal"))
			return
		}
		patch.Price = &price
	}
	if req.Status != nil {
		st := domain.ProductStatus(*req.Status)
		if st != domain.ProductActive && st != domain.ProductDraft {
			s.fail(c, usecase.ErrInvalidState("status must be active or draft"))
			return
		}
		patch.Status = &st
	}

	product, err := s.svc.Products.UpdateForSeller(c.Request.Context(), currentUser(c), id, patch)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": product})
}

func (s *Server) handleDeleteProduct(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	if err := s.svc.Products.SoftDelete(c.Request.Context(), currentUser(c), id); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func pathID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, usecase.ErrInvalidState("invalid id")
	}
	return id, nil
}

func pageFromQuery(c *gin.Context) usecase.Page {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))
	return usecase.Page{Page: page, PageSize: size}
}
