// Package session owns the single source of truth for "who is the current
// user". The Manager is the only writer of the Session value; everything
// else reads snapshots or subscribes to changes.
package session

import "fmt"

// Status is the lifecycle state of the client session.
type Status string

const (
	// StatusInitializing is the state before bootstrap completes. It is
	// entered exactly once per Manager and never re-entered.
	StatusInitializing Status = "initializing"
	// StatusAnonymous means no user is signed in. It is also the terminal
	// state of every bootstrap failure.
	StatusAnonymous Status = "anonymous"
	// StatusAuthenticated means both an identity and a credential are held.
	StatusAuthenticated Status = "authenticated"
	// StatusError means the provider delivered a half-formed update (one of
	// identity/credential without the other). Treated as not authenticated.
	StatusError Status = "error"
)

// Session is a point-in-time view of the current identity. Identity and
// Credential are both empty when anonymous; Status is Authenticated exactly
// when both are present.
type Session struct {
	Identity   string
	Credential string
	Status     Status
}

// Authenticated reports whether the session carries a full identity and
// credential pair.
func (s Session) Authenticated() bool {
	return s.Status == StatusAuthenticated
}

// AuthError wraps a provider rejection of an explicit sign-in, sign-up, or
// sign-out call. The session is left untouched when one is returned.
type AuthError struct {
	Op  string
	Err error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Err.Error())
}

func (e *AuthError) Unwrap() error {
	return e.Err
}
