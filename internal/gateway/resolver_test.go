package gateway

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thecryptoview/cryptoview-api/internal/store"
)

const validHex = "507f1f77bcf86cd799439011"

func TestResolveRoutingTable(t *testing.T) {
	cases := []struct {
		name   string
		method string
		path   string
		want   OpKind
	}{
		{"prices", http.MethodGet, "/prices", OpProxyPrices},
		{"prices with api prefix", http.MethodGet, "/api/prices", OpProxyPrices},
		{"news", http.MethodGet, "/news", OpProxyNews},
		{"list users", http.MethodGet, "/users", OpListUsers},
		{"list users with api prefix", http.MethodGet, "/api/users", OpListUsers},
		{"get user", http.MethodGet, "/users/" + validHex, OpGetUser},
		{"create", http.MethodPost, "/users", OpCreateUser},
		{"create via signup", http.MethodPost, "/users/signup", OpCreateUser},
		{"update", http.MethodPut, "/users/" + validHex, OpUpdateUser},
		{"delete", http.MethodDelete, "/users/" + validHex, OpDeleteUser},
		{"patch is unroutable", http.MethodPatch, "/users/" + validHex, OpUnroutable},
		{"options is unroutable", http.MethodOptions, "/users", OpUnroutable},
		{"post to prices is unroutable", http.MethodPost, "/prices", OpUnroutable},
		{"unknown collection", http.MethodGet, "/accounts", OpUnroutable},
		{"too deep", http.MethodGet, "/users/a/b", OpUnroutable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			op := Resolve(tc.method, tc.path, nil)
			assert.Equal(t, tc.want, op.Kind)
		})
	}
}

func TestResolveExtractsIdentifier(t *testing.T) {
	op := Resolve(http.MethodGet, "/api/users/"+validHex, nil)
	require.Equal(t, OpGetUser, op.Kind)
	require.NoError(t, op.IDErr)
	assert.Equal(t, validHex, op.ID.Hex())
}

func TestResolveCarriesParseFailureInsteadOfRerouting(t *testing.T) {
	// a malformed segment still selects the operation; the executor turns
	// the carried failure into a 400, it never falls through to ListUsers
	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		op := Resolve(method, "/users/not-hex", nil)
		require.NotEqual(t, OpListUsers, op.Kind, "method %s", method)
		assert.Error(t, op.IDErr, "method %s", method)
		assert.False(t, op.IDMissing, "method %s", method)
	}
}

func TestResolveMissingIdentifier(t *testing.T) {
	up := Resolve(http.MethodPut, "/users", store.User{"age": 30})
	require.Equal(t, OpUpdateUser, up.Kind)
	assert.True(t, up.IDMissing)

	del := Resolve(http.MethodDelete, "/api/users", nil)
	require.Equal(t, OpDeleteUser, del.Kind)
	assert.True(t, del.IDMissing)
}

func TestResolveAttachesBody(t *testing.T) {
	body := store.User{"name": "Ada"}
	op := Resolve(http.MethodPost, "/users/signup", body)
	require.Equal(t, OpCreateUser, op.Kind)
	assert.Equal(t, body, op.Body)
}
