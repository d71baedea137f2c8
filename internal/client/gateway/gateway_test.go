package gateway

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pasteflow/pasteflow/internal/client/session"
	"github.com/pasteflow/pasteflow/internal/logging"
)

// ---- doubles ----

type fakeSessions struct {
	current session.Session
}

func (f *fakeSessions) Snapshot() session.Session {
	return f.current
}

type fakeNotifier struct {
	successes []string
	errors    []string
}

func (f *fakeNotifier) Success(msg string) { f.successes = append(f.successes, msg) }
func (f *fakeNotifier) Error(msg string)   { f.errors = append(f.errors, msg) }

func testGateway(t *testing.T, handler http.Handler, sess session.Session) (*Gateway, *fakeNotifier) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	notify := &fakeNotifier{}
	log := logging.NewJSONLogger(io.Discard, "error")
	g := New(srv.URL, &fakeSessions{current: sess}, notify, log, 5*time.Second)
	return g, notify
}

// ---- tests ----

func TestGateway_AttachesBearerCredential(t *testing.T) {
	var gotAuth string
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{}`))
	})
	sess := session.Session{Identity: "u1", Credential: "T1", Status: session.StatusAuthenticated}
	g, _ := testGateway(t, h, sess)

	_, err := g.Request(context.Background(), http.MethodGet, "/p/abc", nil, nil)
	require.NoError(t, err)
	require.Equal(t, "Bearer T1", gotAuth)
}

func TestGateway_AnonymousDispatchesWithoutCredential(t *testing.T) {
	var gotAuth string
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{}`))
	})
	g, _ := testGateway(t, h, session.Session{Status: session.StatusAnonymous})

	_, err := g.Request(context.Background(), http.MethodGet, "/stats", nil, nil)
	require.NoError(t, err)
	require.Empty(t, gotAuth)
}

func TestGateway_CredentialCapturedAtDispatch(t *testing.T) {
	// A session change applied after dispatch must not affect the in-flight
	// call: the next call sees the new credential, not this one.
	sessions := &fakeSessions{current: session.Session{
		Identity: "u1", Credential: "T1", Status: session.StatusAuthenticated,
	}}

	var seen []string
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Header.Get("Authorization"))
		// Simulate a push landing while the first call is being served.
		sessions.current.Credential = "T2"
		_, _ = w.Write([]byte(`{}`))
	})

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	g := New(srv.URL, sessions, &fakeNotifier{}, logging.NewJSONLogger(io.Discard, "error"), 5*time.Second)

	_, err := g.Request(context.Background(), http.MethodGet, "/p/a", nil, nil)
	require.NoError(t, err)
	_, err = g.Request(context.Background(), http.MethodGet, "/p/a", nil, nil)
	require.NoError(t, err)

	require.Equal(t, []string{"Bearer T1", "Bearer T2"}, seen)
}

func TestGateway_ErrorDetailFromBody(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"detail":"edit secret rejected"}`))
	})
	g, notify := testGateway(t, h, session.Session{})

	_, err := g.Request(context.Background(), http.MethodPost, "/pastes/abc/claim", map[string]string{"edit_secret": "x"}, nil)

	var ge *GatewayError
	require.ErrorAs(t, err, &ge)
	require.Equal(t, http.StatusForbidden, ge.StatusCode)
	require.Equal(t, "edit secret rejected", ge.Message)

	// Surfaced exactly once as a user-visible notification.
	require.Equal(t, []string{"edit secret rejected"}, notify.errors)
}

func TestGateway_GenericFallbackMessage(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	g, notify := testGateway(t, h, session.Session{})

	_, err := g.Request(context.Background(), http.MethodGet, "/p/gone", nil, nil)

	var ge *GatewayError
	require.ErrorAs(t, err, &ge)
	require.True(t, ge.NotFound())
	require.Equal(t, "Request failed", ge.Message)
	require.Equal(t, []string{"Request failed"}, notify.errors)
}

func TestGateway_TransportErrorMessage(t *testing.T) {
	notify := &fakeNotifier{}
	log := logging.NewJSONLogger(io.Discard, "error")
	// Nothing is listening on this address.
	g := New("http://127.0.0.1:1", &fakeSessions{}, notify, log, 500*time.Millisecond)

	_, err := g.Request(context.Background(), http.MethodGet, "/stats", nil, nil)

	var ge *GatewayError
	require.ErrorAs(t, err, &ge)
	require.Zero(t, ge.StatusCode)
	require.NotEqual(t, "Request failed", ge.Message, "transport message takes priority over the generic fallback")
	require.Len(t, notify.errors, 1)
	require.Error(t, errors.Unwrap(ge))
}

func TestGateway_QueryEncoding(t *testing.T) {
	var gotQuery url.Values
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		_, _ = w.Write([]byte(`{"items":[],"total":0}`))
	})
	g, _ := testGateway(t, h, session.Session{})

	q := url.Values{}
	q.Set("q", "hello world")
	q.Set("page", "2")
	_, err := g.Request(context.Background(), http.MethodGet, "/pastes/search", nil, q)
	require.NoError(t, err)

	require.Equal(t, "hello world", gotQuery.Get("q"))
	require.Equal(t, "2", gotQuery.Get("page"))
}

func TestGateway_RequestIDAttached(t *testing.T) {
	ids := map[string]bool{}
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ids[r.Header.Get("X-Request-Id")] = true
		_, _ = w.Write([]byte(`{}`))
	})
	g, _ := testGateway(t, h, session.Session{})

	for i := 0; i < 3; i++ {
		_, err := g.Request(context.Background(), http.MethodGet, "/stats", nil, nil)
		require.NoError(t, err)
	}
	delete(ids, "")
	require.Len(t, ids, 3, "every call carries a distinct request id")
}

func TestResponse_JSON(t *testing.T) {
	r := &Response{StatusCode: 200, Body: []byte(`{"id":"abc"}`)}
	var out struct {
		ID string `json:"id"`
	}
	require.NoError(t, r.JSON(&out))
	require.Equal(t, "abc", out.ID)

	empty := &Response{StatusCode: 204}
	require.NoError(t, empty.JSON(&out))
}
