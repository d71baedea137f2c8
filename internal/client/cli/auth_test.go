package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pasteflow/pasteflow/internal/client/config"
	"github.com/pasteflow/pasteflow/internal/client/identity"
	"github.com/pasteflow/pasteflow/internal/client/session"
	"github.com/pasteflow/pasteflow/internal/logging"
)

// stubProvider is a minimal identity.Provider for REPL-level tests.
type stubProvider struct {
	current   *identity.ProviderSession
	signInErr error
	listeners []identity.Listener
}

func (p *stubProvider) CurrentSession(ctx context.Context) (*identity.ProviderSession, error) {
	return p.current, nil
}

func (p *stubProvider) OnChange(l identity.Listener) func() {
	p.listeners = append(p.listeners, l)
	return func() {}
}

func (p *stubProvider) SignIn(ctx context.Context, email, password string) error {
	if p.signInErr != nil {
		return p.signInErr
	}
	for _, l := range p.listeners {
		l(&identity.ProviderSession{Identity: email, Credential: "tok"})
	}
	return nil
}

func (p *stubProvider) SignUp(ctx context.Context, email, password string) error { return nil }

func (p *stubProvider) SignOut(ctx context.Context) error {
	for _, l := range p.listeners {
		l(nil)
	}
	return nil
}

func newTestApp(t *testing.T, provider identity.Provider, input string) (*App, *bytes.Buffer) {
	t.Helper()
	log := logging.NewJSONLogger(io.Discard, "error")
	sessions := session.NewManager(provider, log)
	sessions.Bootstrap(context.Background())
	t.Cleanup(sessions.Close)

	var out bytes.Buffer
	return &App{
		config:   &config.Config{APIBaseURL: "http://api.test"},
		sessions: sessions,
		notify:   NewConsoleNotifier(&out),
		log:      log,
		reader:   bufio.NewReader(strings.NewReader(input)),
		out:      &out,
	}, &out
}

func swapInputs(t *testing.T, texts []string, password string) {
	t.Helper()
	origText, origPw := getSimpleText, getPassword
	t.Cleanup(func() { getSimpleText, getPassword = origText, origPw })

	i := 0
	getSimpleText = func(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
		if i >= len(texts) {
			return "", errors.New("no more input")
		}
		v := texts[i]
		i++
		return v, nil
	}
	getPassword = func(w io.Writer) ([]byte, error) {
		return []byte(password), nil
	}
}

func TestLogin_Success_SessionArrivesViaPush(t *testing.T) {
	p := &stubProvider{}
	app, out := newTestApp(t, p, "")
	swapInputs(t, []string{"a@b.c"}, "pw")

	require.NoError(t, app.Login(context.Background()))

	s := app.sessions.Snapshot()
	require.True(t, s.Authenticated())
	require.Equal(t, "a@b.c", s.Identity)
	require.Contains(t, out.String(), "[ok] Logged in successfully")
}

func TestLogin_Rejected_SessionUntouched(t *testing.T) {
	p := &stubProvider{signInErr: errors.New("invalid login credentials")}
	app, out := newTestApp(t, p, "")
	swapInputs(t, []string{"a@b.c"}, "pw")

	err := app.Login(context.Background())
	require.Error(t, err)

	require.False(t, app.sessions.Snapshot().Authenticated())
	require.Contains(t, out.String(), "[error]")
	require.Contains(t, out.String(), "invalid login credentials")
}

func TestLogout_ReturnsToAnonymous(t *testing.T) {
	p := &stubProvider{}
	app, out := newTestApp(t, p, "")
	swapInputs(t, []string{"a@b.c"}, "pw")

	require.NoError(t, app.Login(context.Background()))
	require.NoError(t, app.Logout(context.Background()))

	require.Equal(t, session.StatusAnonymous, app.sessions.Snapshot().Status)
	require.Contains(t, out.String(), "[ok] Logged out")
}

func TestRegister_Success(t *testing.T) {
	app, out := newTestApp(t, &stubProvider{}, "")
	swapInputs(t, []string{"new@b.c"}, "pw")

	require.NoError(t, app.Register(context.Background()))
	require.Contains(t, out.String(), "Registered! Check your email.")
}

func TestLogin_NoProviderConfigured(t *testing.T) {
	app, out := newTestApp(t, nil, "")
	swapInputs(t, []string{"a@b.c"}, "pw")

	err := app.Login(context.Background())
	var authErr *session.AuthError
	require.ErrorAs(t, err, &authErr)
	require.Contains(t, out.String(), "identity provider not configured")
}
