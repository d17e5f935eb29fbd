// Package sessionpg persists the session in Postgres. The wallet_sessions
// table holds at most one row per storage key; schema lives under sql/ and
// is applied with the migrate command.
package sessionpg

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/redhi-dex/wallet-connector/internal/sessionstore"
)

type Store struct {
	db *pgxpool.Pool
}

var _ = sessionstore.Store(&Store{})

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) Load(ctx context.Context) (string, error) {
	var username string
	err := s.db.QueryRow(ctx,
		`SELECT username FROM wallet_sessions WHERE storage_key = $1;`,
		sessionstore.SessionKey,
	).Scan(&username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}

		return "", fmt.Errorf("selecting from wallet_sessions: %w", err)
	}

	return username, nil
}

func (s *Store) Save(ctx context.Context, username string) error {
	if _, err := s.db.Exec(ctx,
		`INSERT INTO wallet_sessions (storage_key, username, updated_at)
	VALUES ($1, $2, now())
	ON CONFLICT (storage_key)
	DO UPDATE SET (username, updated_at) = (EXCLUDED.username, now());`,
		sessionstore.SessionKey, username,
	); err != nil {
		return fmt.Errorf("inserting into wallet_sessions: %w", err)
	}

	return nil
}

func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.Exec(ctx,
		`DELETE FROM wallet_sessions WHERE storage_key = $1;`,
		sessionstore.SessionKey,
	); err != nil {
		return fmt.Errorf("deleting from wallet_sessions: %w", err)
	}

	return nil
}
