package main

import (
	"context"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/thecryptoview/cryptoview-api/handlers"
	"github.com/thecryptoview/cryptoview-api/internal/config"
	"github.com/thecryptoview/cryptoview-api/internal/database"
	"github.com/thecryptoview/cryptoview-api/internal/gateway"
	"github.com/thecryptoview/cryptoview-api/internal/market"
	"github.com/thecryptoview/cryptoview-api/internal/store"
	"github.com/thecryptoview/cryptoview-api/pkg/logger"
	"github.com/thecryptoview/cryptoview-api/pkg/middleware"
)

// Local development server: permissive CORS, memory-store fallback when
// MongoDB is not reachable. Same routes, same executor, same outcomes as
// the production server.
func main() {
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}

	var users store.UserStore
	client, err := database.Connect(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.Timeout, 1)
	if err != nil {
		logger.Warnf("cannot connect to MongoDB (%v) — using memory-backed store", err)
		users = store.NewMemoryUserStore()
	} else {
		users = store.NewMongoUserStore(client.Database(cfg.MongoDB.Database).Collection("users"))
	}

	fetcher := market.NewHTTPFetcher(cfg.Upstream.PricesURL, cfg.Upstream.NewsURL, cfg.Upstream.Timeout)
	exec := gateway.NewExecutor(users, fetcher)

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(middleware.CORS("*"))

	handlers.RegisterRoutes(r, exec)

	port := cfg.Server.Port
	if v := os.Getenv("PORT"); v != "" {
		port = v
	}
	logger.Infof("server running locally on http://localhost:%s", port)
	if err := r.Run(":" + port); err != nil {
		logger.Fatalf("server failed: %v", err)
	}
}
