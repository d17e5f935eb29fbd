// Package keychaindev provides a development stand-in for the browser
// Keychain extension. It approves every request and returns a digest of the
// signed material as the result, so local frontends can exercise the full
// connect/sign flow without the extension installed. It must never be
// enabled in production deployments.
package keychaindev

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	slogctx "github.com/veqryn/slog-context"

	"github.com/redhi-dex/wallet-connector/internal/keychain"
)

type Provider struct {
	ctx context.Context
}

var _ = keychain.Provider(&Provider{})

func NewProvider(ctx context.Context) *Provider {
	return &Provider{ctx: ctx}
}

func (p *Provider) Present() bool { return true }

func (p *Provider) RequestSignBuffer(account, message string, authority keychain.Authority, done func(keychain.Verdict)) {
	slogctx.Info(p.ctx, "Dev provider approving sign-buffer request",
		"account", account, "authority", string(authority))

	done(keychain.Verdict{
		Success: true,
		Result:  digest(account, string(authority), []byte(message)),
	})
}

func (p *Provider) RequestCustomJSON(account, appID string, authority keychain.Authority, payload []byte, display string, done func(keychain.Verdict)) {
	slogctx.Info(p.ctx, "Dev provider approving custom-json request",
		"account", account, "app_id", appID, "authority", string(authority), "display", display)

	done(keychain.Verdict{
		Success: true,
		Result:  digest(account, appID, payload),
	})
}

func digest(account, scope string, data []byte) json.RawMessage {
	h := sha256.New()
	h.Write([]byte(account))
	h.Write([]byte(scope))
	h.Write(data)

	out, _ := json.Marshal(map[string]string{"digest": hex.EncodeToString(h.Sum(nil))})
	return out
}
