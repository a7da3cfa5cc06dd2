package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/thecryptoview/cryptoview-api/internal/market"
	"github.com/thecryptoview/cryptoview-api/internal/store"
	"github.com/thecryptoview/cryptoview-api/pkg/metrics"
)

// Fixed user-facing messages; upstream causes are deliberately not exposed.
const (
	msgUserNotFound   = "User not found"
	msgPricesUpstream = "Error fetching prices from CoinCap"
	msgNewsUpstream   = "Error fetching news from CoinTelegraph"
	msgUpdateNeedsID  = "ID is required for updating a user"
	msgDeleteNeedsID  = "ID is required for deleting a user"
)

// Executor runs resolved operations against the store and market adapters.
// Every store or upstream call is attempted exactly once per request.
type Executor struct {
	store  store.UserStore
	market market.Fetcher
}

func NewExecutor(s store.UserStore, m market.Fetcher) *Executor {
	return &Executor{store: s, market: m}
}

// Execute produces the outcome for one operation.
func (e *Executor) Execute(ctx context.Context, op Operation) Outcome {
	out := e.run(ctx, op)
	metrics.GatewayRequests.WithLabelValues(op.Kind.String(), strconv.Itoa(out.Status)).Inc()
	return out
}

func (e *Executor) run(ctx context.Context, op Operation) Outcome {
	switch op.Kind {
	case OpListUsers:
		users, err := e.store.FindAll(ctx)
		if err != nil {
			return failure(FailStoreError, err.Error())
		}
		return success(users, http.StatusOK)

	case OpGetUser:
		if op.IDErr != nil {
			return failure(FailInvalidIdentifier, op.IDErr.Error())
		}
		u, err := e.store.FindByID(ctx, op.ID)
		if errors.Is(err, store.ErrNotFound) {
			return failure(FailUserNotFound, msgUserNotFound)
		}
		if err != nil {
			return failure(FailStoreError, err.Error())
		}
		return success(u, http.StatusOK)

	case OpCreateUser:
		u, err := e.store.Insert(ctx, op.Body)
		if err != nil {
			return failure(FailStoreError, err.Error())
		}
		return success(u, http.StatusCreated)

	case OpUpdateUser:
		if op.IDMissing {
			return failure(FailMissingIdentifier, msgUpdateNeedsID)
		}
		if op.IDErr != nil {
			return failure(FailInvalidIdentifier, op.IDErr.Error())
		}
		u, err := e.store.UpdateByID(ctx, op.ID, op.Body)
		if errors.Is(err, store.ErrNotFound) {
			return failure(FailUserNotFound, msgUserNotFound)
		}
		if err != nil {
			return failure(FailStoreError, err.Error())
		}
		return success(u, http.StatusOK)

	case OpDeleteUser:
		if op.IDMissing {
			return failure(FailMissingIdentifier, msgDeleteNeedsID)
		}
		if op.IDErr != nil {
			return failure(FailInvalidIdentifier, op.IDErr.Error())
		}
		receipt, err := e.store.DeleteByID(ctx, op.ID)
		if errors.Is(err, store.ErrNotFound) {
			return failure(FailUserNotFound, msgUserNotFound)
		}
		if err != nil {
			return failure(FailStoreError, err.Error())
		}
		return success(receipt, http.StatusOK)

	case OpProxyPrices:
		body, ct, err := e.market.FetchPrices(ctx)
		if err != nil {
			return failure(FailUpstreamError, msgPricesUpstream)
		}
		return proxied(body, ct)

	case OpProxyNews:
		body, ct, err := e.market.FetchNews(ctx)
		if err != nil {
			return failure(FailUpstreamError, msgNewsUpstream)
		}
		return proxied(body, ct)
	}

	return failure(FailMethodNotAllowed, fmt.Sprintf("Method %s Not Allowed", op.Method))
}
