// Package sessionvalkey persists the session in Valkey, for deployments
// where the connector runs behind more than one replica and the session
// must survive any single process.
package sessionvalkey

import (
	"context"
	"fmt"
	"strings"

	"github.com/valkey-io/valkey-go"

	"github.com/redhi-dex/wallet-connector/internal/sessionstore"
)

type Store struct {
	valkey valkey.Client
	prefix string
}

var _ = sessionstore.Store(&Store{})

func NewStore(valkeyClient valkey.Client, prefix string) *Store {
	prefix = strings.TrimSuffix(prefix, ":")
	return &Store{
		valkey: valkeyClient,
		prefix: prefix,
	}
}

func (s *Store) Load(ctx context.Context) (string, error) {
	username, err := s.valkey.Do(ctx, s.valkey.B().Get().Key(s.key()).Build()).ToString()
	if err != nil {
		valkeyErr, ok := valkey.IsValkeyErr(err)
		if ok && valkeyErr.IsNil() {
			return "", nil
		}

		return "", fmt.Errorf("executing get command: %w", err)
	}

	return username, nil
}

func (s *Store) Save(ctx context.Context, username string) error {
	if err := s.valkey.Do(ctx, s.valkey.B().Set().Key(s.key()).Value(username).Build()).Error(); err != nil {
		return fmt.Errorf("executing set command: %w", err)
	}

	return nil
}

func (s *Store) Clear(ctx context.Context) error {
	if err := s.valkey.Do(ctx, s.valkey.B().Del().Key(s.key()).Build()).Error(); err != nil {
		return fmt.Errorf("executing del command: %w", err)
	}

	return nil
}

func (s *Store) key() string {
	if s.prefix == "" {
		return sessionstore.SessionKey
	}

	return fmt.Sprintf("%s:%s", s.prefix, sessionstore.SessionKey)
}
