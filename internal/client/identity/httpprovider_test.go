package identity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newAuthStub(t *testing.T) (*httptest.Server, *HTTPProvider) {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["password"] != "correct-horse" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error_description":"Invalid login credentials"}`))
			return
		}
		_, _ = w.Write([]byte(`{"access_token":"tok-1","user":{"id":"u1","email":"a@b.c"}}`))
	})
	mux.HandleFunc("/signup", func(w http.ResponseWriter, r *http.Request) {
		// Confirmation-required deployment: account created, no session yet.
		_, _ = w.Write([]byte(`{"user":{"id":"u2","email":"new@b.c"}}`))
	})
	mux.HandleFunc("/logout", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"msg":"missing token"}`))
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, NewHTTPProvider(srv.URL, 5*time.Second)
}

func TestHTTPProvider_SignIn_EmitsFullSession(t *testing.T) {
	_, p := newAuthStub(t)
	ctx := context.Background()

	var pushes []*ProviderSession
	unsub := p.OnChange(func(s *ProviderSession) { pushes = append(pushes, s) })
	defer unsub()

	require.NoError(t, p.SignIn(ctx, "a@b.c", "correct-horse"))

	require.Len(t, pushes, 1)
	require.Equal(t, "u1", pushes[0].Identity)
	require.Equal(t, "tok-1", pushes[0].Credential)

	cur, err := p.CurrentSession(ctx)
	require.NoError(t, err)
	require.Equal(t, "tok-1", cur.Credential)
}

func TestHTTPProvider_SignIn_BadPassword(t *testing.T) {
	_, p := newAuthStub(t)
	ctx := context.Background()

	var pushes int
	unsub := p.OnChange(func(*ProviderSession) { pushes++ })
	defer unsub()

	err := p.SignIn(ctx, "a@b.c", "wrong")
	require.EqualError(t, err, "Invalid login credentials")
	require.Zero(t, pushes, "failed sign-in must not emit a session change")

	cur, err := p.CurrentSession(ctx)
	require.NoError(t, err)
	require.Nil(t, cur)
}

func TestHTTPProvider_SignUp_NoSessionUntilConfirmed(t *testing.T) {
	_, p := newAuthStub(t)
	ctx := context.Background()

	var pushes int
	unsub := p.OnChange(func(*ProviderSession) { pushes++ })
	defer unsub()

	require.NoError(t, p.SignUp(ctx, "new@b.c", "pw"))
	require.Zero(t, pushes)
}

func TestHTTPProvider_SignOut_EmitsNil(t *testing.T) {
	_, p := newAuthStub(t)
	ctx := context.Background()

	require.NoError(t, p.SignIn(ctx, "a@b.c", "correct-horse"))

	var last *ProviderSession = &ProviderSession{Identity: "sentinel"}
	unsub := p.OnChange(func(s *ProviderSession) { last = s })
	defer unsub()

	require.NoError(t, p.SignOut(ctx))
	require.Nil(t, last)

	cur, err := p.CurrentSession(ctx)
	require.NoError(t, err)
	require.Nil(t, cur)
}

func TestHTTPProvider_Unsubscribe_StopsDelivery(t *testing.T) {
	_, p := newAuthStub(t)
	ctx := context.Background()

	var pushes int
	unsub := p.OnChange(func(*ProviderSession) { pushes++ })
	unsub()
	unsub() // releasing twice is safe

	require.NoError(t, p.SignIn(ctx, "a@b.c", "correct-horse"))
	require.Zero(t, pushes)
}

func TestHTTPProvider_ListenersInvokedInRegistrationOrder(t *testing.T) {
	_, p := newAuthStub(t)
	ctx := context.Background()

	var order []int
	u1 := p.OnChange(func(*ProviderSession) { order = append(order, 1) })
	u2 := p.OnChange(func(*ProviderSession) { order = append(order, 2) })
	defer u1()
	defer u2()

	require.NoError(t, p.SignIn(ctx, "a@b.c", "correct-horse"))
	require.Equal(t, []int{1, 2}, order)
}
