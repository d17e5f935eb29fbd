package keychainmock

import (
	"sync"

	"github.com/redhi-dex/wallet-connector/internal/keychain"
)

type SignBufferRequest struct {
	Account   string
	Message   string
	Authority keychain.Authority
}

type CustomJSONRequest struct {
	Account   string
	AppID     string
	Authority keychain.Authority
	Payload   []byte
	Display   string
}

type ProviderOption func(*Provider)

// Provider is an in-memory signing provider double. By default it is
// present and resolves every request immediately with the configured
// verdicts; WithHeldDelivery keeps callbacks pending until ReleaseNext.
type Provider struct {
	mu sync.Mutex

	present     bool
	hold        bool
	signVerdict keychain.Verdict
	jsonVerdict keychain.Verdict

	pending      []func(keychain.Verdict)
	signRequests []SignBufferRequest
	jsonRequests []CustomJSONRequest
}

func WithPresent(present bool) ProviderOption {
	return func(p *Provider) { p.present = present }
}

func WithSignBufferVerdict(v keychain.Verdict) ProviderOption {
	return func(p *Provider) { p.signVerdict = v }
}

func WithCustomJSONVerdict(v keychain.Verdict) ProviderOption {
	return func(p *Provider) { p.jsonVerdict = v }
}

// WithHeldDelivery makes the provider park completion callbacks instead of
// firing them, mimicking a modal awaiting user action.
func WithHeldDelivery() ProviderOption {
	return func(p *Provider) { p.hold = true }
}

var _ = keychain.Provider(&Provider{})

func NewProvider(opts ...ProviderOption) *Provider {
	p := &Provider{
		present:     true,
		signVerdict: keychain.Verdict{Success: true},
		jsonVerdict: keychain.Verdict{Success: true},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

func (p *Provider) Present() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.present
}

// SetPresent flips provider availability, simulating late injection or
// removal of the extension.
func (p *Provider) SetPresent(present bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.present = present
}

func (p *Provider) RequestSignBuffer(account, message string, authority keychain.Authority, done func(keychain.Verdict)) {
	p.mu.Lock()
	p.signRequests = append(p.signRequests, SignBufferRequest{
		Account:   account,
		Message:   message,
		Authority: authority,
	})
	verdict := p.signVerdict
	if p.hold {
		p.pending = append(p.pending, done)
		p.mu.Unlock()
		return
	}
	p.mu.Unlock()

	done(verdict)
}

func (p *Provider) RequestCustomJSON(account, appID string, authority keychain.Authority, payload []byte, display string, done func(keychain.Verdict)) {
	p.mu.Lock()
	p.jsonRequests = append(p.jsonRequests, CustomJSONRequest{
		Account:   account,
		AppID:     appID,
		Authority: authority,
		Payload:   append([]byte(nil), payload...),
		Display:   display,
	})
	verdict := p.jsonVerdict
	if p.hold {
		p.pending = append(p.pending, done)
		p.mu.Unlock()
		return
	}
	p.mu.Unlock()

	done(verdict)
}

// ReleaseNext fires the oldest held callback with the given verdict. It
// reports false when nothing is pending.
func (p *Provider) ReleaseNext(v keychain.Verdict) bool {
	p.mu.Lock()
	if len(p.pending) == 0 {
		p.mu.Unlock()
		return false
	}
	done := p.pending[0]
	p.pending = p.pending[1:]
	p.mu.Unlock()

	done(v)
	return true
}

func (p *Provider) SignBufferRequests() []SignBufferRequest {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]SignBufferRequest(nil), p.signRequests...)
}

func (p *Provider) CustomJSONRequests() []CustomJSONRequest {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]CustomJSONRequest(nil), p.jsonRequests...)
}
