package session

import (
	"context"
	"errors"
	"sync"

	"github.com/pasteflow/pasteflow/internal/client/identity"
	"github.com/pasteflow/pasteflow/internal/logging"
)

// Manager owns the Session value. It is bootstrapped once from the identity
// provider and then kept live exclusively through the provider's push
// channel: explicit SignIn/SignUp/SignOut calls never mutate the session
// directly, so there is a single code path for every session change.
//
// The provider may be nil (not configured); the Manager then runs
// permanently anonymous.
type Manager struct {
	provider identity.Provider
	log      logging.Logger

	mu          sync.Mutex
	current     Session
	unsubscribe func()
	subscribers []*subscription
	closed      bool
}

type subscription struct {
	fn       func(Session)
	released bool
}

// NewManager creates a Manager in the Initializing state. Call Bootstrap
// before using it and Close when done.
func NewManager(provider identity.Provider, log logging.Logger) *Manager {
	return &Manager{
		provider: provider,
		log:      log,
		current:  Session{Status: StatusInitializing},
	}
}

// Bootstrap asks the provider for an existing session and registers the
// push listener. Any provider failure, including an absent provider,
// degrades to an anonymous session; bootstrap itself never fails, and the
// status leaves Initializing exactly once.
func (m *Manager) Bootstrap(ctx context.Context) {
	if m.provider == nil {
		m.log.Debug(ctx, "identity provider not configured, staying anonymous")
		m.apply(nil)
		return
	}

	ps, err := m.provider.CurrentSession(ctx)
	if err != nil {
		// Recovered locally: the client stays usable without identity.
		m.log.Warn(ctx, "session bootstrap failed, continuing anonymous", "error", err)
		ps = nil
	}

	m.apply(ps)

	// The listener is registered even when the initial lookup failed, so a
	// later successful sign-in still reaches this manager.
	unsubscribe := m.provider.OnChange(m.apply)
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		unsubscribe()
		return
	}
	m.unsubscribe = unsubscribe
	m.mu.Unlock()
}

// apply replaces the whole identity/credential pair atomically and
// recomputes the status. It is the only writer of the session value.
// Provider pushes arrive sequentially, so updates land in delivery order.
func (m *Manager) apply(ps *identity.ProviderSession) {
	m.mu.Lock()

	next := Session{Status: StatusAnonymous}
	if ps != nil {
		next = Session{Identity: ps.Identity, Credential: ps.Credential}
		switch {
		case ps.Identity != "" && ps.Credential != "":
			next.Status = StatusAuthenticated
		case ps.Identity == "" && ps.Credential == "":
			next.Status = StatusAnonymous
		default:
			next.Status = StatusError
		}
	}
	m.current = next

	active := make([]func(Session), 0, len(m.subscribers))
	for _, s := range m.subscribers {
		active = append(active, s.fn)
	}
	m.mu.Unlock()

	for _, fn := range active {
		fn(next)
	}
}

// Snapshot returns a copy of the current session. The copy is immutable
// from the caller's point of view; a concurrent push only affects later
// snapshots.
func (m *Manager) Snapshot() Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Subscribe registers fn to be called with every session change, and
// returns a handle that releases the registration. fn is invoked after the
// new value is committed, in delivery order.
func (m *Manager) Subscribe(fn func(Session)) (unsubscribe func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sub := &subscription{fn: fn}
	m.subscribers = append(m.subscribers, sub)

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if sub.released {
			return
		}
		sub.released = true
		for i, s := range m.subscribers {
			if s == sub {
				m.subscribers = append(m.subscribers[:i], m.subscribers[i+1:]...)
				break
			}
		}
	}
}

// SignIn authenticates with the provider. On provider rejection an
// *AuthError is returned and the session is left untouched; on success the
// new session arrives through the push channel.
func (m *Manager) SignIn(ctx context.Context, email, password string) error {
	return m.operate(ctx, "sign in", func(p identity.Provider) error {
		return p.SignIn(ctx, email, password)
	})
}

// SignUp registers a new account with the provider. Session changes, if
// any, arrive through the push channel.
func (m *Manager) SignUp(ctx context.Context, email, password string) error {
	return m.operate(ctx, "sign up", func(p identity.Provider) error {
		return p.SignUp(ctx, email, password)
	})
}

// SignOut terminates the provider session. The anonymous state arrives
// through the push channel.
func (m *Manager) SignOut(ctx context.Context) error {
	return m.operate(ctx, "sign out", func(p identity.Provider) error {
		return p.SignOut(ctx)
	})
}

func (m *Manager) operate(ctx context.Context, op string, call func(identity.Provider) error) error {
	if m.provider == nil {
		return &AuthError{Op: op, Err: errors.New("identity provider not configured")}
	}
	if err := call(m.provider); err != nil {
		m.log.Warn(ctx, "auth operation rejected", "op", op, "error", err)
		return &AuthError{Op: op, Err: err}
	}
	return nil
}

// Close releases the provider subscription. Outstanding network calls are
// allowed to complete or fail on their own. Safe to call on every exit
// path, including a Manager whose bootstrap failed.
func (m *Manager) Close() {
	m.mu.Lock()
	unsubscribe := m.unsubscribe
	m.unsubscribe = nil
	m.closed = true
	m.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
}
