// Package sessionmemory keeps the session in process memory. It is the
// default backend for tests and single-process deployments where the
// session does not need to outlive the process.
package sessionmemory

import (
	"context"

	gocache "github.com/patrickmn/go-cache"

	"github.com/redhi-dex/wallet-connector/internal/sessionstore"
)

type Store struct {
	cache *gocache.Cache
}

var _ = sessionstore.Store(&Store{})

func NewStore() *Store {
	return &Store{
		cache: gocache.New(gocache.NoExpiration, 0),
	}
}

func (s *Store) Load(_ context.Context) (string, error) {
	v, ok := s.cache.Get(sessionstore.SessionKey)
	if !ok {
		return "", nil
	}

	username, ok := v.(string)
	if !ok {
		return "", nil
	}

	return username, nil
}

func (s *Store) Save(_ context.Context, username string) error {
	s.cache.Set(sessionstore.SessionKey, username, gocache.NoExpiration)
	return nil
}

func (s *Store) Clear(_ context.Context) error {
	s.cache.Delete(sessionstore.SessionKey)
	return nil
}
