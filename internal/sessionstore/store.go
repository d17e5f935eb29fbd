// Package sessionstore persists the wallet session: a single account
// identifier stored under one well-known key. The session is a bare claim
// of identity, not a credential; it carries no token, signature or expiry.
package sessionstore

import "context"

// SessionKey is the fixed storage key the account identifier lives under,
// shared by every backend.
const SessionKey = "redhi_username"

// Store reads and writes the persisted session. Load returns an empty
// string, not an error, when no session exists. All operations are
// idempotent. Storage is process-wide shared state with a single-writer
// assumption; no locking across concurrent writers is provided.
type Store interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, username string) error
	Clear(ctx context.Context) error
}
