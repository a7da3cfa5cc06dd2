package store

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/thecryptoview/cryptoview-api/internal/identifier"
)

// MemoryUserStore is an in-memory UserStore used for unit tests and as a
// fallback for local development when MongoDB is unavailable. Identifiers
// are freshly generated ObjectIDs, so records look exactly like Mongo ones.
type MemoryUserStore struct {
	mu    sync.RWMutex
	users map[string]User
	order []string
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{users: make(map[string]User)}
}

func clone(u User) User {
	out := make(User, len(u))
	for k, v := range u {
		out[k] = v
	}
	return out
}

func (s *MemoryUserStore) FindAll(ctx context.Context) ([]User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]User, 0, len(s.order))
	for _, hex := range s.order {
		if u, ok := s.users[hex]; ok {
			out = append(out, clone(u))
		}
	}
	return out, nil
}

func (s *MemoryUserStore) FindByID(ctx context.Context, id identifier.ID) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id.Hex()]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(u), nil
}

func (s *MemoryUserStore) Insert(ctx context.Context, body User) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	hex := primitive.NewObjectID().Hex()
	u := withoutID(body)
	u["id"] = hex
	s.users[hex] = u
	s.order = append(s.order, hex)
	return clone(u), nil
}

func (s *MemoryUserStore) UpdateByID(ctx context.Context, id identifier.ID, patch User) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id.Hex()]
	if !ok {
		return nil, ErrNotFound
	}
	for k, v := range withoutID(patch) {
		u[k] = v
	}
	return clone(u), nil
}

func (s *MemoryUserStore) DeleteByID(ctx context.Context, id identifier.ID) (*DeleteResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id.Hex()]; !ok {
		return nil, ErrNotFound
	}
	delete(s.users, id.Hex())
	return &DeleteResult{Acknowledged: true, DeletedCount: 1}, nil
}
