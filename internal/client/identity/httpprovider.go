package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

// HTTPProvider talks to a GoTrue-style identity endpoint: password-grant
// token issue, signup, and logout. It keeps the current session in memory
// only; durable token storage is the provider deployment's concern.
type HTTPProvider struct {
	baseURL string
	client  *http.Client

	mu        sync.Mutex
	current   *ProviderSession
	listeners []*registration

	// dispatchMu serializes listener notification so that updates are
	// delivered one at a time, in emission order.
	dispatchMu sync.Mutex
}

type registration struct {
	fn       Listener
	released bool
}

func NewHTTPProvider(baseURL string, timeout time.Duration) *HTTPProvider {
	return &HTTPProvider{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

func (p *HTTPProvider) CurrentSession(ctx context.Context) (*ProviderSession, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current == nil {
		return nil, nil
	}
	s := *p.current
	return &s, nil
}

func (p *HTTPProvider) OnChange(l Listener) func() {
	p.mu.Lock()
	defer p.mu.Unlock()

	reg := &registration{fn: l}
	p.listeners = append(p.listeners, reg)

	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		if reg.released {
			return
		}
		reg.released = true
		for i, r := range p.listeners {
			if r == reg {
				p.listeners = append(p.listeners[:i], p.listeners[i+1:]...)
				break
			}
		}
	}
}

// tokenResponse is the subset of the provider's auth payload the client
// needs. A signup response may omit the token when the deployment requires
// email confirmation first.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	User        struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	} `json:"user"`
}

func (p *HTTPProvider) SignIn(ctx context.Context, email, password string) error {
	var tr tokenResponse
	body := map[string]string{"email": email, "password": password}
	if err := p.post(ctx, "/token?grant_type=password", body, &tr, ""); err != nil {
		return err
	}
	if tr.AccessToken == "" || tr.User.ID == "" {
		return errors.New("provider returned no session")
	}
	p.replace(&ProviderSession{Identity: tr.User.ID, Credential: tr.AccessToken})
	return nil
}

func (p *HTTPProvider) SignUp(ctx context.Context, email, password string) error {
	var tr tokenResponse
	body := map[string]string{"email": email, "password": password}
	if err := p.post(ctx, "/signup", body, &tr, ""); err != nil {
		return err
	}
	// Some deployments confirm accounts out of band and issue no session yet.
	if tr.AccessToken != "" && tr.User.ID != "" {
		p.replace(&ProviderSession{Identity: tr.User.ID, Credential: tr.AccessToken})
	}
	return nil
}

func (p *HTTPProvider) SignOut(ctx context.Context) error {
	p.mu.Lock()
	var credential string
	if p.current != nil {
		credential = p.current.Credential
	}
	p.mu.Unlock()

	if err := p.post(ctx, "/logout", nil, nil, credential); err != nil {
		return err
	}
	p.replace(nil)
	return nil
}

// replace swaps the whole session atomically and notifies listeners in
// registration order.
func (p *HTTPProvider) replace(s *ProviderSession) {
	p.mu.Lock()
	p.current = s
	active := make([]Listener, 0, len(p.listeners))
	for _, r := range p.listeners {
		active = append(active, r.fn)
	}
	p.mu.Unlock()

	p.dispatchMu.Lock()
	defer p.dispatchMu.Unlock()
	for _, fn := range active {
		var copied *ProviderSession
		if s != nil {
			c := *s
			copied = &c
		}
		fn(copied)
	}
}

func (p *HTTPProvider) post(ctx context.Context, path string, body, out any, bearer string) error {
	var payload io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		payload = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+path, payload)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= 400 {
		return errors.New(providerErrorMessage(data, resp.StatusCode))
	}
	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decoding provider response: %w", err)
		}
	}
	return nil
}

// providerErrorMessage extracts the most specific message the provider put
// in an error payload.
func providerErrorMessage(data []byte, status int) string {
	var e struct {
		ErrorDescription string `json:"error_description"`
		Msg              string `json:"msg"`
		Error            string `json:"error"`
	}
	if err := json.Unmarshal(data, &e); err == nil {
		switch {
		case e.ErrorDescription != "":
			return e.ErrorDescription
		case e.Msg != "":
			return e.Msg
		case e.Error != "":
			return e.Error
		}
	}
	return fmt.Sprintf("identity provider error (status %d)", status)
}
