package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"stylemart-backend/internal/ai"
	"stylemart-backend/internal/config"
	"stylemart-backend/internal/env"
	"stylemart-backend/internal/infrastructure/imagegen"
	"stylemart-backend/internal/infrastructure/llm"
	"stylemart-backend/internal/infrastructure/paypal"
	"stylemart-backend/internal/infrastructure/postgres"
	"stylemart-backend/internal/server"
	"stylemart-backend/internal/usecase"
)

func main() {
	env.Load(".env", ".env.local")
	envDefaults := config.EnvDefaults()

	envName := flag.String("env", envDefaults.Env, "")
	port := flag.Int("port", envDefaults.Port, "")
	databaseURL := flag.String("database-url", envDefaults.DatabaseURL, "")
	migrationsDir := flag.String("migrations", envDefaults.MigrationsDir, "")
	jwtSecret := flag.String("jwt-secret", envDefaults.JWTSecret, "")
	tokenTTL := flag.Int("token-ttl-min", envDefaults.TokenTTLMin, "")
	corsOrigins := flag.String("cors-origins", strings.Join(envDefaults.CORSOrigins, ","), "")

	flag.Parse()

	cfg := envDefaults
	cfg.Env = *envName
	cfg.Port = *port
	cfg.DatabaseURL = *databaseURL
	cfg.MigrationsDir = *migrationsDir
	cfg.JWTSecret = *jwtSecret
	cfg.TokenTTLMin = *tokenTTL
	if *corsOrigins != "" {
		cfg.CORSOrigins = strings.Split(*corsOrigins, ",")
	}

	log, err := buildLogger(cfg.Env)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer log.Sync()

	if cfg.JWTSecret == "" {
		log.Fatal("jwt secret is required (STYLEMART_JWT_SECRET)")
	}

	store, err := postgres.New(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("open database", zap.Error(err))
	}
	defer store.Close()
	if err := store.Migrate(cfg.MigrationsDir); err != nil {
		log.Fatal("migrate database", zap.Error(err))
	}

	var chat ai.ChatModel
	if cfg.LLMAPIKey != "" {
		chat = llm.New(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel)
	} else {
		log.Warn("no llm api key configured, assistants run in echo mode")
		chat = llm.Echo{}
	}
	images := imagegen.New(cfg.ImageBaseURL, cfg.ImageAPIKey)
	gateway := paypal.New(cfg.PayPalClientID, cfg.PayPalSecret, cfg.PayPalBaseURL)

	searchTool := &usecase.ProductSearchTool{Stores: store}
	svc := server.Services{
		Auth: &usecase.AuthService{
			Stores:    store,
			JWTSecret: []byte(cfg.JWTSecret),
			TokenTTL:  time.Duration(cfg.TokenTTLMin) * time.Minute,
		},
		Products: &usecase.ProductService{Stores: store},
		Carts:    &usecase.CartService{Stores: store},
		Orders:   &usecase.OrderService{Stores: store, Log: log},
		Payments: &usecase.PaymentService{Stores: store, Gateway: gateway, Log: log},
		Search:   &usecase.SearchService{Stores: store},
		Stylist: &usecase.StylistService{
			Stores: store,
			Chain:  &ai.StylistChain{LLM: chat, Search: searchTool},
			Log:    log,
		},
		Seller: &usecase.SellerAssistantService{
			Stores: store,
			Chain:  &ai.SellerChain{LLM: chat},
			Log:    log,
		},
		Avatars: &usecase.AvatarService{
			Stores: store,
			Chain:  &ai.AvatarChain{Images: images},
			Log:    log,
		},
		Admin: &usecase.AdminService{Stores: store, Log: log},
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: server.New(cfg, log, svc).Handler(),
	}

	go func() {
		log.Info("server listening", zap.Int("port", cfg.Port), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("serve", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("shutdown", zap.Error(err))
	}
	log.Info("server stopped")
}

func buildLogger(envName string) (*zap.Logger, error) {
	if envName == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
