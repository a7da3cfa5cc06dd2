// Package api exposes the gateway as a single catch-all handler for
// serverless deployments. The exported Handler matches the Vercel Go
// convention: one function receives every request and the operation
// resolver decides what it means.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/thecryptoview/cryptoview-api/internal/config"
	"github.com/thecryptoview/cryptoview-api/internal/database"
	"github.com/thecryptoview/cryptoview-api/internal/gateway"
	"github.com/thecryptoview/cryptoview-api/internal/market"
	"github.com/thecryptoview/cryptoview-api/internal/store"
)

var (
	bootOnce sync.Once
	bootExec *gateway.Executor
	bootErr  error
)

// bootstrap connects lazily on the first request. The Mongo client is held
// for the lifetime of the process and reused by every later invocation,
// even after a failed call on it.
func bootstrap() {
	cfg, err := config.Load()
	if err != nil {
		bootErr = err
		return
	}
	client, err := database.Connect(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.Timeout, 1)
	if err != nil {
		bootErr = err
		return
	}
	users := client.Database(cfg.MongoDB.Database).Collection("users")
	fetcher := market.NewHTTPFetcher(cfg.Upstream.PricesURL, cfg.Upstream.NewsURL, cfg.Upstream.Timeout)
	bootExec = gateway.NewExecutor(store.NewMongoUserStore(users), fetcher)
}

// Handler is the catch-all serverless entrypoint.
func Handler(w http.ResponseWriter, r *http.Request) {
	bootOnce.Do(bootstrap)
	if bootErr != nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "Database connection error"})
		return
	}
	NewHandler(bootExec)(w, r)
}

// NewHandler returns the catch-all handler bound to an executor. It is the
// thin serverless adapter over the shared resolver/executor/mapper core.
func NewHandler(exec *gateway.Executor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body store.User
		if r.Body != nil {
			_ = json.NewDecoder(r.Body).Decode(&body)
		}
		op := gateway.Resolve(r.Method, r.URL.Path, body)
		gateway.Write(w, exec.Execute(r.Context(), op))
	}
}
