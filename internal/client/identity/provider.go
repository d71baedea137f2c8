// Package identity defines the contract between the PasteFlow client and an
// external identity provider, plus an HTTP implementation of it. A provider
// may be absent entirely (not configured); every consumer must tolerate a
// nil Provider and degrade to an anonymous session.
package identity

import "context"

// ProviderSession is the full identity/credential pair held by the provider.
// Every push notification carries a complete replacement pair (or nil for
// signed-out), never a delta.
type ProviderSession struct {
	// Identity is an opaque user reference.
	Identity string
	// Credential is a short-lived bearer token proving the identity to the
	// paste service.
	Credential string
}

// Listener receives session-change notifications. A nil session means
// "signed out". Listeners are invoked sequentially, one notification at a
// time, in the order the provider emits them.
type Listener func(*ProviderSession)

// Provider is the identity-provider contract.
type Provider interface {
	// CurrentSession returns the provider's current session, or nil when no
	// user is signed in.
	CurrentSession(ctx context.Context) (*ProviderSession, error)

	// OnChange registers a listener for session changes and returns a handle
	// that releases the registration. The handle is safe to call more than
	// once.
	OnChange(l Listener) (unsubscribe func())

	// SignIn authenticates with an email and password. On success the new
	// session is delivered through OnChange listeners, not returned here.
	SignIn(ctx context.Context, email, password string) error

	// SignUp registers a new account. Depending on provider policy this may
	// or may not establish a session immediately.
	SignUp(ctx context.Context, email, password string) error

	// SignOut terminates the current session. The signed-out state is
	// delivered through OnChange listeners.
	SignOut(ctx context.Context) error
}
