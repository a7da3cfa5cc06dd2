package identifier

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrInvalid reports a path segment that is not a 24-hex-character identifier.
var ErrInvalid = errors.New("invalid identifier")

// ID is an opaque resource identifier assigned by the document store.
// It wraps a Mongo ObjectID; the canonical form is lowercase hex.
type ID struct {
	oid primitive.ObjectID
}

// Parse validates a URL-decoded path segment as a 24-hex-character
// identifier. Upper- and lowercase variants of the same hex value map to
// the same ID. Parsing is purely lexical; no store access happens here.
func Parse(raw string) (ID, error) {
	oid, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return ID{}, fmt.Errorf("%w: %q", ErrInvalid, raw)
	}
	return ID{oid: oid}, nil
}

// Hex returns the canonical lowercase hex form.
func (id ID) Hex() string {
	return id.oid.Hex()
}

// ObjectID exposes the wrapped ObjectID for store queries.
func (id ID) ObjectID() primitive.ObjectID {
	return id.oid
}

func (id ID) String() string {
	return id.Hex()
}
