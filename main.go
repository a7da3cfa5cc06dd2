package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/thecryptoview/cryptoview-api/handlers"
	"github.com/thecryptoview/cryptoview-api/internal/config"
	"github.com/thecryptoview/cryptoview-api/internal/database"
	"github.com/thecryptoview/cryptoview-api/internal/gateway"
	"github.com/thecryptoview/cryptoview-api/internal/market"
	"github.com/thecryptoview/cryptoview-api/internal/store"
	"github.com/thecryptoview/cryptoview-api/pkg/logger"
	"github.com/thecryptoview/cryptoview-api/pkg/metrics"
	"github.com/thecryptoview/cryptoview-api/pkg/middleware"
)

var startTime = time.Now()

// Production server: CORS restricted to the configured frontend origin,
// Prometheus metrics, optional rate limiting. Operation semantics are
// identical to the local server and the serverless handler; only the
// deployment wrapping differs.
func main() {
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}

	ctx := context.Background()
	client, err := database.Connect(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout, 5)
	if err != nil {
		logger.Fatalf("could not connect to MongoDB: %v", err)
	}
	defer func() { _ = client.Disconnect(ctx) }()

	users := client.Database(cfg.MongoDB.Database).Collection("users")
	fetcher := market.NewHTTPFetcher(cfg.Upstream.PricesURL, cfg.Upstream.NewsURL, cfg.Upstream.Timeout)
	exec := gateway.NewExecutor(store.NewMongoUserStore(users), fetcher)

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigin))

	if cfg.RateLimit.Enabled {
		var rdb *redis.Client
		if cfg.Redis.Host != "" {
			rdb = redis.NewClient(&redis.Options{Addr: cfg.Redis.Host + ":" + cfg.Redis.Port, Password: cfg.Redis.Password})
			if err := rdb.Ping(ctx).Err(); err != nil {
				logger.Warnf("failed to connect to Redis (%s:%s): %v", cfg.Redis.Host, cfg.Redis.Port, err)
				rdb = nil
			}
		}
		if cfg.RateLimit.UseRedis && rdb != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			r.Use(middleware.RedisRateLimit(rdb, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
		} else {
			r.Use(middleware.RateLimit(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
	}

	handlers.RegisterHealth(r, client, startTime)
	handlers.RegisterRoutes(r, exec)

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	logger.Infof("serving on %s (allowed origin %s)", addr, cfg.CORS.AllowedOrigin)
	if err := r.Run(addr); err != nil {
		logger.Fatalf("server failed: %v", err)
	}
}
