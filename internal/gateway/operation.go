package gateway

import (
	"net/http"
	"strings"

	"github.com/thecryptoview/cryptoview-api/internal/identifier"
	"github.com/thecryptoview/cryptoview-api/internal/store"
)

// OpKind enumerates the closed set of operations reachable through the
// dispatch surface.
type OpKind int

const (
	OpListUsers OpKind = iota
	OpGetUser
	OpCreateUser
	OpUpdateUser
	OpDeleteUser
	OpProxyPrices
	OpProxyNews
	OpUnroutable
)

func (k OpKind) String() string {
	switch k {
	case OpListUsers:
		return "list_users"
	case OpGetUser:
		return "get_user"
	case OpCreateUser:
		return "create_user"
	case OpUpdateUser:
		return "update_user"
	case OpDeleteUser:
		return "delete_user"
	case OpProxyPrices:
		return "proxy_prices"
	case OpProxyNews:
		return "proxy_news"
	}
	return "unroutable"
}

// Operation is the resolved intent of one inbound request. A malformed
// identifier segment does not re-route the request: the operation is still
// selected and the parse failure carried in IDErr for the executor to
// surface. IDMissing marks a PUT/DELETE with no identifier segment at all,
// which is a different failure than a malformed one.
type Operation struct {
	Kind      OpKind
	ID        identifier.ID
	IDErr     error
	IDMissing bool
	Body      store.User
	Method    string
}

func ListUsers() Operation {
	return Operation{Kind: OpListUsers}
}

func GetUser(raw string) Operation {
	op := Operation{Kind: OpGetUser}
	op.ID, op.IDErr = identifier.Parse(raw)
	return op
}

func CreateUser(body store.User) Operation {
	return Operation{Kind: OpCreateUser, Body: body}
}

func UpdateUser(raw string, body store.User) Operation {
	op := Operation{Kind: OpUpdateUser, Body: body}
	if raw == "" {
		op.IDMissing = true
		return op
	}
	op.ID, op.IDErr = identifier.Parse(raw)
	return op
}

func DeleteUser(raw string) Operation {
	op := Operation{Kind: OpDeleteUser}
	if raw == "" {
		op.IDMissing = true
		return op
	}
	op.ID, op.IDErr = identifier.Parse(raw)
	return op
}

func ProxyPrices() Operation {
	return Operation{Kind: OpProxyPrices}
}

func ProxyNews() Operation {
	return Operation{Kind: OpProxyNews}
}

func Unroutable(method string) Operation {
	return Operation{Kind: OpUnroutable, Method: method}
}

// Resolve maps an inbound method and path to the operation it selects.
// The path may carry an optional "/api" prefix, which all deployment
// shapes serve under. The decoded request body, if any, rides along on
// write operations.
func Resolve(method, path string, body store.User) Operation {
	p := strings.Trim(strings.TrimPrefix(path, "/api"), "/")
	segs := strings.Split(p, "/")

	if method == http.MethodGet && p == "prices" {
		return ProxyPrices()
	}
	if method == http.MethodGet && p == "news" {
		return ProxyNews()
	}

	if segs[0] != "users" || len(segs) > 2 {
		return Unroutable(method)
	}

	switch method {
	case http.MethodGet:
		if len(segs) == 1 {
			return ListUsers()
		}
		return GetUser(segs[1])
	case http.MethodPost:
		if len(segs) == 1 || segs[1] == "signup" {
			return CreateUser(body)
		}
	case http.MethodPut:
		if len(segs) == 1 {
			return UpdateUser("", body)
		}
		return UpdateUser(segs[1], body)
	case http.MethodDelete:
		if len(segs) == 1 {
			return DeleteUser("")
		}
		return DeleteUser(segs[1])
	}
	return Unroutable(method)
}
