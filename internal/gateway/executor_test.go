package gateway

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thecryptoview/cryptoview-api/internal/store"
)

// fakeFetcher serves canned upstream payloads or a forced error.
type fakeFetcher struct {
	prices []byte
	news   []byte
	err    error
}

func (f *fakeFetcher) FetchPrices(ctx context.Context) ([]byte, string, error) {
	if f.err != nil {
		return nil, "", f.err
	}
	return f.prices, "application/json", nil
}

func (f *fakeFetcher) FetchNews(ctx context.Context) ([]byte, string, error) {
	if f.err != nil {
		return nil, "", f.err
	}
	return f.news, "application/rss+xml", nil
}

func newTestExecutor(t *testing.T) (*Executor, *store.MemoryUserStore, *fakeFetcher) {
	t.Helper()
	s := store.NewMemoryUserStore()
	f := &fakeFetcher{prices: []byte(`{"data":[]}`), news: []byte(`<rss/>`)}
	return NewExecutor(s, f), s, f
}

func seedUser(t *testing.T, s *store.MemoryUserStore, u store.User) string {
	t.Helper()
	created, err := s.Insert(context.Background(), u)
	require.NoError(t, err)
	return created["id"].(string)
}

func TestExecuteListUsers(t *testing.T) {
	exec, s, _ := newTestExecutor(t)
	seedUser(t, s, store.User{"name": "Ada"})

	out := exec.Execute(context.Background(), ListUsers())
	require.False(t, out.Failed)
	assert.Equal(t, http.StatusOK, out.Status)
	users, ok := out.Payload.([]store.User)
	require.True(t, ok)
	assert.Len(t, users, 1)
}

func TestExecuteGetUser(t *testing.T) {
	exec, s, _ := newTestExecutor(t)
	id := seedUser(t, s, store.User{"name": "Ada"})

	out := exec.Execute(context.Background(), GetUser(id))
	require.False(t, out.Failed)
	u, ok := out.Payload.(store.User)
	require.True(t, ok)
	assert.Equal(t, id, u["id"])
}

func TestExecuteGetUserNotFound(t *testing.T) {
	exec, _, _ := newTestExecutor(t)

	out := exec.Execute(context.Background(), GetUser("000000000000000000000000"))
	require.True(t, out.Failed)
	assert.Equal(t, FailUserNotFound, out.Kind)
	assert.Equal(t, http.StatusNotFound, out.Status)
	assert.Equal(t, "User not found", out.Message)
}

func TestExecuteGetUserInvalidIdentifier(t *testing.T) {
	exec, _, _ := newTestExecutor(t)

	out := exec.Execute(context.Background(), GetUser("not-a-valid-identifier"))
	require.True(t, out.Failed)
	assert.Equal(t, FailInvalidIdentifier, out.Kind)
	assert.Equal(t, http.StatusBadRequest, out.Status)
}

func TestExecuteCreateUser(t *testing.T) {
	exec, _, _ := newTestExecutor(t)

	out := exec.Execute(context.Background(), CreateUser(store.User{"name": "Ada"}))
	require.False(t, out.Failed)
	assert.Equal(t, http.StatusCreated, out.Status)
	u, ok := out.Payload.(store.User)
	require.True(t, ok)
	assert.Equal(t, "Ada", u["name"])
	assert.Regexp(t, `^[0-9a-f]{24}$`, u["id"])
}

func TestExecuteUpdateUser(t *testing.T) {
	exec, s, _ := newTestExecutor(t)
	id := seedUser(t, s, store.User{"name": "Ada"})

	out := exec.Execute(context.Background(), UpdateUser(id, store.User{"id": "ignored", "age": 30}))
	require.False(t, out.Failed)
	u, ok := out.Payload.(store.User)
	require.True(t, ok)
	assert.Equal(t, id, u["id"])
	assert.Equal(t, 30, u["age"])
	assert.Equal(t, "Ada", u["name"])
}

func TestExecuteUpdateUserMissingAndNotFound(t *testing.T) {
	exec, _, _ := newTestExecutor(t)

	out := exec.Execute(context.Background(), UpdateUser("", store.User{"age": 1}))
	require.True(t, out.Failed)
	assert.Equal(t, FailMissingIdentifier, out.Kind)
	assert.Equal(t, http.StatusBadRequest, out.Status)
	assert.Equal(t, "ID is required for updating a user", out.Message)

	out = exec.Execute(context.Background(), UpdateUser("000000000000000000000000", store.User{"age": 1}))
	require.True(t, out.Failed)
	assert.Equal(t, FailUserNotFound, out.Kind)
}

func TestExecuteDeleteUser(t *testing.T) {
	exec, s, _ := newTestExecutor(t)
	id := seedUser(t, s, store.User{"name": "Ada"})

	out := exec.Execute(context.Background(), DeleteUser(id))
	require.False(t, out.Failed)
	receipt, ok := out.Payload.(*store.DeleteResult)
	require.True(t, ok)
	assert.Equal(t, int64(1), receipt.DeletedCount)

	// deleting again reports not found, never a second success
	out = exec.Execute(context.Background(), DeleteUser(id))
	require.True(t, out.Failed)
	assert.Equal(t, FailUserNotFound, out.Kind)
}

func TestExecuteDeleteUserMissingIdentifier(t *testing.T) {
	exec, _, _ := newTestExecutor(t)

	out := exec.Execute(context.Background(), DeleteUser(""))
	require.True(t, out.Failed)
	assert.Equal(t, FailMissingIdentifier, out.Kind)
	assert.Equal(t, "ID is required for deleting a user", out.Message)
}

func TestExecuteProxySuccess(t *testing.T) {
	exec, _, _ := newTestExecutor(t)

	out := exec.Execute(context.Background(), ProxyPrices())
	require.False(t, out.Failed)
	assert.Equal(t, "application/json", out.ContentType)
	assert.Equal(t, []byte(`{"data":[]}`), out.Raw)

	out = exec.Execute(context.Background(), ProxyNews())
	require.False(t, out.Failed)
	assert.Equal(t, "application/rss+xml", out.ContentType)
}

func TestExecuteProxyFailureUsesFixedMessages(t *testing.T) {
	exec, _, f := newTestExecutor(t)
	f.err = errors.New("connection refused to 10.0.0.1:443")

	out := exec.Execute(context.Background(), ProxyPrices())
	require.True(t, out.Failed)
	assert.Equal(t, FailUpstreamError, out.Kind)
	assert.Equal(t, http.StatusInternalServerError, out.Status)
	assert.Equal(t, "Error fetching prices from CoinCap", out.Message, "upstream cause must not leak")

	out = exec.Execute(context.Background(), ProxyNews())
	require.True(t, out.Failed)
	assert.Equal(t, "Error fetching news from CoinTelegraph", out.Message)
}

func TestExecuteUnroutable(t *testing.T) {
	exec, _, _ := newTestExecutor(t)

	out := exec.Execute(context.Background(), Unroutable(http.MethodPatch))
	require.True(t, out.Failed)
	assert.Equal(t, FailMethodNotAllowed, out.Kind)
	assert.Equal(t, http.StatusMethodNotAllowed, out.Status)
	assert.Equal(t, "Method PATCH Not Allowed", out.Message)
}
