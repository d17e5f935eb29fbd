// Package connector composes provider detection, the persisted session and
// the signing flows into one wallet connection state machine:
// Unauthenticated -> (login signature approved) -> Authenticated ->
// (disconnect) -> Unauthenticated. Authenticated is also reached directly
// at startup when a persisted session exists and the provider is present.
package connector

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	slogctx "github.com/veqryn/slog-context"

	"github.com/redhi-dex/wallet-connector/internal/keychain"
	"github.com/redhi-dex/wallet-connector/internal/serviceerr"
	"github.com/redhi-dex/wallet-connector/internal/sessionstore"
)

const (
	defaultLoginChallenge  = "RedHi DEX Login"
	defaultAppID           = "redhi_dex"
	defaultDisplayLabel    = "RedHi DEX Transaction"
	defaultPresenceRecheck = time.Second
)

// Config carries the application-chosen request constants. Zero values fall
// back to the RedHi DEX defaults.
type Config struct {
	// LoginChallenge is the fixed message signed during the login
	// handshake. It proves control of the account; its content is never
	// interpreted.
	LoginChallenge string
	// AppID namespaces custom-json operations on chain.
	AppID string
	// DisplayLabel is shown by the provider UI when authorizing an
	// operation.
	DisplayLabel string
	// PresenceRecheck is the delay before the single follow-up presence
	// check that tolerates late provider injection.
	PresenceRecheck time.Duration
}

// State is a snapshot of the connector. Connected implies a non-empty
// Username. Connected may be true while Installed is false only until the
// next presence check resolves (a persisted session restored before the
// provider finished loading).
type State struct {
	Installed bool   `json:"installed"`
	Connected bool   `json:"connected"`
	Username  string `json:"username"`
}

type Connector struct {
	provider keychain.Provider
	sessions sessionstore.Store
	cfg      Config

	mu        sync.Mutex
	installed bool
	connected bool
	username  string
	recheck   *time.Timer
}

func New(provider keychain.Provider, sessions sessionstore.Store, cfg Config) *Connector {
	if cfg.LoginChallenge == "" {
		cfg.LoginChallenge = defaultLoginChallenge
	}
	if cfg.AppID == "" {
		cfg.AppID = defaultAppID
	}
	if cfg.DisplayLabel == "" {
		cfg.DisplayLabel = defaultDisplayLabel
	}
	if cfg.PresenceRecheck <= 0 {
		cfg.PresenceRecheck = defaultPresenceRecheck
	}

	return &Connector{
		provider: provider,
		sessions: sessions,
		cfg:      cfg,
	}
}

// Start checks provider presence immediately, restores a persisted session
// when possible, and schedules exactly one follow-up presence check. There
// is no polling beyond that one re-check; callers wanting a fresher reading
// invoke RefreshPresence on their next interaction.
func (c *Connector) Start(ctx context.Context) {
	c.RefreshPresence(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.recheck = time.AfterFunc(c.cfg.PresenceRecheck, func() {
		c.RefreshPresence(ctx)
	})
}

// Close cancels the pending presence re-check. It does not touch the
// session: a connector going away is not a disconnect.
func (c *Connector) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.recheck != nil {
		c.recheck.Stop()
		c.recheck = nil
	}
}

// RefreshPresence re-reads provider availability and, when the provider is
// present and no session is active, hydrates one from the session store.
// The persisted claim is trusted as-is; a stale session surfaces on the
// next authorization when the provider rejects it.
func (c *Connector) RefreshPresence(ctx context.Context) bool {
	present := c.provider.Present()

	c.mu.Lock()
	c.installed = present
	hydrate := present && !c.connected
	c.mu.Unlock()

	if hydrate {
		c.hydrateSession(ctx)
	}

	return present
}

func (c *Connector) hydrateSession(ctx context.Context) {
	username, err := c.sessions.Load(ctx)
	if err != nil {
		slogctx.Warn(ctx, "Could not load persisted wallet session", "error", err)
		return
	}
	if username == "" {
		return
	}

	c.mu.Lock()
	if !c.connected {
		c.connected = true
		c.username = username
	}
	c.mu.Unlock()

	slogctx.Info(ctx, "Restored persisted wallet session", "username", username)
}

// ConnectWallet runs the login handshake for the given account: it asks the
// provider to sign the fixed login challenge under Posting authority and
// blocks until the provider's verdict arrives. On approval the session is
// activated and persisted and true is returned; on rejection false is
// returned and nothing changes. Provider rejections are verdicts, not
// errors. The only error paths are ErrProviderUnavailable before dispatch
// and ctx abandonment while waiting.
func (c *Connector) ConnectWallet(ctx context.Context, username string) (bool, error) {
	c.mu.Lock()
	installed := c.installed
	c.mu.Unlock()

	if !installed || !c.provider.Present() {
		return false, serviceerr.ErrProviderUnavailable
	}

	verdict, err := keychain.Await(ctx, func(done func(keychain.Verdict)) {
		c.provider.RequestSignBuffer(username, c.cfg.LoginChallenge, keychain.AuthorityPosting, done)
	})
	if err != nil {
		return false, err
	}

	if !verdict.Success {
		slogctx.Info(ctx, "Login signature declined", "username", username, "message", verdict.Message)
		return false, nil
	}

	c.mu.Lock()
	c.connected = true
	c.username = username
	c.mu.Unlock()

	if err := c.sessions.Save(ctx, username); err != nil {
		slogctx.Warn(ctx, "Could not persist wallet session", "username", username, "error", err)
	}

	slogctx.Info(ctx, "Wallet connected", "username", username)

	return true, nil
}

// Disconnect resets the in-memory session and clears the persisted one,
// unconditionally and without any provider interaction. Disconnecting an
// already-unauthenticated connector is a no-op.
func (c *Connector) Disconnect(ctx context.Context) {
	c.mu.Lock()
	c.connected = false
	c.username = ""
	c.mu.Unlock()

	if err := c.sessions.Clear(ctx); err != nil {
		slogctx.Warn(ctx, "Could not clear persisted wallet session", "error", err)
	}
}

// SignTransaction relays an application operation to the provider for
// authorization under the active session, using Active authority and the
// configured app ID. The operation is JSON-encoded and treated as an opaque
// blob from there on; the provider's verdict is returned unmodified and
// uninterpreted.
func (c *Connector) SignTransaction(ctx context.Context, operation any) (keychain.Verdict, error) {
	c.mu.Lock()
	installed := c.installed
	connected := c.connected
	username := c.username
	c.mu.Unlock()

	if !installed || !c.provider.Present() || !connected || username == "" {
		return keychain.Verdict{}, serviceerr.ErrNotConnected
	}

	payload, err := json.Marshal(operation)
	if err != nil {
		return keychain.Verdict{}, fmt.Errorf("encoding operation: %w", err)
	}

	return keychain.Await(ctx, func(done func(keychain.Verdict)) {
		c.provider.RequestCustomJSON(username, c.cfg.AppID, keychain.AuthorityActive, payload, c.cfg.DisplayLabel, done)
	})
}

func (c *Connector) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	return State{
		Installed: c.installed,
		Connected: c.connected,
		Username:  c.username,
	}
}
