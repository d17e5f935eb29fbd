package keychain

// Unavailable is a Provider bound to an environment with no signing
// capability injected. Requests dispatched to it never complete, matching
// a provider that never invokes its callback; callers are expected to gate
// on Present first.
type Unavailable struct{}

var _ = Provider(Unavailable{})

func (Unavailable) Present() bool { return false }

func (Unavailable) RequestSignBuffer(_, _ string, _ Authority, _ func(Verdict)) {}

func (Unavailable) RequestCustomJSON(_, _ string, _ Authority, _ []byte, _ string, _ func(Verdict)) {
}
