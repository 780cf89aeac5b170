// Package server wires the HTTP surface: routing, authentication, error
// translation and metrics. Business rules live in the usecase services; the
// handlers here only parse requests and shape responses.
package server

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"stylemart-backend/internal/config"
	"stylemart-backend/internal/usecase"
)

type Services struct {
	Auth     *usecase.AuthService
	Products *usecase.ProductService
	Carts    *usecase.CartService
	Orders   *usecase.OrderService
	Payments *usecase.PaymentService
	Search   *usecase.SearchService
	Stylist  *usecase.StylistService
	Seller   *usecase.SellerAssistantService
	Avatars  *usecase.AvatarService
	Admin    *usecase.AdminService
}

type Server struct {
	cfg config.Config
	log *zap.Logger
	svc Services
	eng *gin.Engine
}

func New(cfg config.Config, log *zap.Logger, svc Services) *Server {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	s := &Server{cfg: cfg, log: log, svc: svc, eng: gin.New()}

	s.eng.Use(s.requestLogger(), s.recovery(), metricsMiddleware())

	corsCfg := cors.DefaultConfig()
	if len(cfg.CORSOrigins) > 0 && cfg.CORSOrigins[0] != "*" {
		corsCfg.AllowOrigins = cfg.CORSOrigins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	s.eng.Use(cors.New(corsCfg))

	s.routes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.eng
}

func (s *Server) routes() {
	s.eng.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	s.eng.GET("/metrics", metricsHandler())

	api := s.eng.Group("/api/v1")

	auth := api.Group("/auth")
	auth.POST("/signup", s.handleSignup)
	auth.POST("/signin", s.handleSignin)
	auth.GET("/me", s.requireAuth(), s.handleMe)

	products := api.Group("/products")
	products.GET("", s.handleListProducts)
	products.GET("/:id", s.handleProductDetail)
	products.POST("", s.requireAuth(), s.handleCreateProduct)
	products.PATCH("/:id", s.requireAuth(), s.handleUpdateProduct)
	products.DELETE("/:id", s.requireAuth(), s.handleDeleteProduct)

	cart := api.Group("/cart", s.requireAuth())
	cart.GET("", s.handleGetCart)
	cart.POST("/items", s.handleAddCartItem)
	cart.PATCH("/items/:id", s.handleUpdateCartItem)
	cart.DELETE("/items/:id", s.handleRemoveCartItem)

	orders := api.Group("/orders", s.requireAuth())
	orders.POST("", s.handleCreateOrder)
	orders.GET("", s.handleListOrders)
	orders.GET("/:id", s.handleOrderDetail)

	payments := api.Group("/payments")
	payments.POST("/paypal/orders", s.requireAuth(), s.handleCreatePayPalOrder)
	payments.POST("/paypal/orders/:providerId/capture", s.requireAuth(), s.handleCapturePayPalOrder)
	payments.POST("/paypal/webhook", s.handlePayPalWebhook)

	search := api.Group("/search")
	search.GET("/suggestions", s.handleSearchSuggestions)
	search.GET("/history", s.optionalAuth(), s.handleSearchHistory)
	search.POST("/history", s.optionalAuth(), s.handleAddSearchHistory)
	search.DELETE("/history/:id", s.optionalAuth(), s.handleDeleteSearchHistory)

	assistant := api.Group("/assistant", s.requireAuth())
	assistant.POST("/stylist/chat", s.handleStylistChat)
	assistant.GET("/stylist/conversations/:id", s.handleStylistHistory)
	assistant.POST("/seller/chat", s.requireRole("seller", "admin"), s.handleSellerChat)
	assistant.POST("/seller/listing", s.requireRole("seller", "admin"), s.handleGenerateListing)

	avatars := api.Group("/avatars", s.requireAuth())
	avatars.GET("/presets", s.handleListPresets)
	avatars.POST("/render", s.handleRenderAvatar)

	admin := api.Group("/admin", s.requireAuth(), s.requireRole("admin"))
	admin.GET("/users", s.handleAdminListUsers)
	admin.PATCH("/users/:id/status", s.handleAdminSetUserStatus)
	admin.GET("/products", s.handleAdminListProducts)
	admin.POST("/products/:id/moderate", s.handleAdminModerateProduct)
	admin.GET("/orders", s.handleAdminListOrders)
	admin.POST("/avatars/presets", s.handleAdminUpsertPreset)
}
