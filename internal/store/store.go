package store

import (
	"context"
	"errors"

	"github.com/thecryptoview/cryptoview-api/internal/identifier"
)

// ErrNotFound is returned when no user record exists for the given identifier.
var ErrNotFound = errors.New("user not found")

// User is a schemaless user record. The distinguished "id" field is assigned
// by the store on insert, is immutable afterwards, and round-trips through
// every read. All other fields are free-form.
type User map[string]interface{}

// DeleteResult is the receipt returned for a successful delete, mirroring
// the driver's delete acknowledgment.
type DeleteResult struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}

// UserStore defines persistence operations over the users collection.
// UpdateByID merges the patch field-by-field into the existing record and
// returns the post-update record via a fresh read; Insert likewise returns
// the freshly re-read record so store-assigned fields are visible.
type UserStore interface {
	FindAll(ctx context.Context) ([]User, error)
	FindByID(ctx context.Context, id identifier.ID) (User, error)
	Insert(ctx context.Context, body User) (User, error)
	UpdateByID(ctx context.Context, id identifier.ID, patch User) (User, error)
	DeleteByID(ctx context.Context, id identifier.ID) (*DeleteResult, error)
}

// withoutID copies u, dropping the distinguished identifier field in either
// of its spellings. The store alone assigns identifiers.
func withoutID(u User) User {
	out := make(User, len(u))
	for k, v := range u {
		if k == "id" || k == "_id" {
			continue
		}
		out[k] = v
	}
	return out
}
