// Package keychain defines the binding to an externally-injected Hive
// Keychain compatible signing provider. The provider holds the private key
// material; this package only describes the capability surface and adapts
// its callback-style completion into ordinary blocking calls.
package keychain

import "encoding/json"

// Authority is a named privilege tier enforced by the provider.
// Login proofs use Posting, value-moving operations use Active.
type Authority string

const (
	AuthorityPosting Authority = "Posting"
	AuthorityActive  Authority = "Active"
)

// Verdict is the provider's response to a signing or authorization request.
// It is passed through to callers unmodified; Success is the only field the
// connector itself interprets.
type Verdict struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Error   string          `json:"error,omitempty"`
	Result  json.RawMessage `json:"result,omitempty"`
}

// Provider is the injected signing capability. Implementations invoke the
// done callback exactly once per request; there is no timeout and no way to
// abort a dispatched request.
type Provider interface {
	// Present reports whether the provider is currently available in the
	// host environment. Absence is a valid outcome, not an error.
	Present() bool

	// RequestSignBuffer asks the provider to sign an arbitrary message
	// buffer for the named account under the given authority.
	RequestSignBuffer(account, message string, authority Authority, done func(Verdict))

	// RequestCustomJSON asks the provider to authorize a custom JSON
	// operation for the named account under the given authority. The
	// payload is treated as an opaque blob; display is a human-readable
	// label shown by the provider UI.
	RequestCustomJSON(account, appID string, authority Authority, payload []byte, display string, done func(Verdict))
}
