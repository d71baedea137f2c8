// Package services contains application services for the PasteFlow client.
// This file defines the paste service: create, fetch, list, search, update,
// delete, claim, and service-wide stats, all performed through the
// authorized request gateway.
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/pasteflow/pasteflow/internal/client/gateway"
	"github.com/pasteflow/pasteflow/internal/client/models"
	"github.com/pasteflow/pasteflow/internal/client/repositories/secrets"
	"github.com/pasteflow/pasteflow/internal/common"
	"github.com/pasteflow/pasteflow/internal/logging"
)

// Requester is the slice of the gateway the paste service needs.
type Requester interface {
	Request(ctx context.Context, method, path string, body any, query url.Values) (*gateway.Response, error)
}

// PasteService defines paste operations for the CLI.
//
// Contract:
//   - Create: submit a draft; for anonymous creation the returned edit
//     secret is persisted locally and surfaced exactly once.
//   - Get: fetch one paste; expired and missing pastes are indistinguishable
//     and both surface as common.ErrNotFound.
//   - Mine: list the signed-in user's pastes.
//   - Search: paged full-text search.
//   - Update: patch title/language/visibility; content is immutable.
//   - Delete: remove a paste.
//   - Claim: attach the current identity to an unclaimed paste, consuming
//     the edit secret on success.
//   - Stats: service-wide aggregate counters.
//
// All methods honor context cancellation/timeouts.
type PasteService interface {
	Create(ctx context.Context, draft models.Draft) (*models.CreateResult, error)
	Get(ctx context.Context, id string) (*models.Paste, error)
	Mine(ctx context.Context) ([]models.Paste, error)
	Search(ctx context.Context, query models.SearchQuery) (*models.SearchResult, error)
	Update(ctx context.Context, id string, patch models.Patch) error
	Delete(ctx context.Context, id string) error
	Claim(ctx context.Context, id, secret string) error
	Stats(ctx context.Context) (*models.Stats, error)
}

type pasteService struct {
	gw      Requester
	secrets secrets.Repository
	log     logging.Logger
}

// NewPasteService constructs a PasteService bound to the given gateway and
// local secrets store.
func NewPasteService(gw Requester, secretsRepo secrets.Repository, log logging.Logger) PasteService {
	return &pasteService{gw: gw, secrets: secretsRepo, log: log.With("component", "pastes")}
}

func (s *pasteService) Create(ctx context.Context, draft models.Draft) (*models.CreateResult, error) {
	draft.Language = models.ParseLanguage(string(draft.Language))
	draft.Expiration = models.ParseExpiration(string(draft.Expiration))
	draft.Visibility = models.ParseVisibility(string(draft.Visibility))

	resp, err := s.gw.Request(ctx, http.MethodPost, "/pastes", draft, nil)
	if err != nil {
		return nil, err
	}

	var result models.CreateResult
	if err := resp.JSON(&result); err != nil {
		return nil, fmt.Errorf("decoding create response: %w", err)
	}
	if result.ID == "" {
		return nil, errors.New("unexpected response from server")
	}

	if result.EditSecret != "" {
		// Best effort: the secret was already shown to the user once, so a
		// storage failure must not fail the create.
		if err := s.secrets.Save(ctx, result.ID, result.EditSecret); err != nil {
			s.log.Warn(ctx, "could not store edit secret", "paste_id", result.ID, "error", err)
		}
	}

	return &result, nil
}

func (s *pasteService) Get(ctx context.Context, id string) (*models.Paste, error) {
	resp, err := s.gw.Request(ctx, http.MethodGet, "/p/"+url.PathEscape(id), nil, nil)
	if err != nil {
		var ge *gateway.GatewayError
		if errors.As(err, &ge) && ge.NotFound() {
			return nil, fmt.Errorf("paste %s: %w", id, common.ErrNotFound)
		}
		return nil, err
	}

	var p models.Paste
	if err := resp.JSON(&p); err != nil {
		return nil, fmt.Errorf("decoding paste: %w", err)
	}
	p.Normalize()
	return &p, nil
}

func (s *pasteService) Mine(ctx context.Context) ([]models.Paste, error) {
	resp, err := s.gw.Request(ctx, http.MethodGet, "/pastes/mine", nil, nil)
	if err != nil {
		return nil, err
	}

	items, err := decodePasteList(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("decoding paste list: %w", err)
	}
	return items, nil
}

// decodePasteList accepts either a bare array or an {items: []} wrapper;
// the service has answered with both shapes.
func decodePasteList(data []byte) ([]models.Paste, error) {
	var items []models.Paste
	if err := json.Unmarshal(data, &items); err != nil {
		var wrapped struct {
			Items []models.Paste `json:"items"`
		}
		if err := json.Unmarshal(data, &wrapped); err != nil {
			return nil, err
		}
		items = wrapped.Items
	}
	for i := range items {
		items[i].Normalize()
	}
	return items, nil
}

func (s *pasteService) Search(ctx context.Context, query models.SearchQuery) (*models.SearchResult, error) {
	q := url.Values{}
	if query.Text != "" {
		q.Set("q", query.Text)
	}
	if query.Language != "" {
		q.Set("language", string(query.Language))
	}
	if query.From != "" {
		q.Set("from", query.From)
	}
	if query.To != "" {
		q.Set("to", query.To)
	}
	if query.Page > 0 {
		q.Set("page", strconv.Itoa(query.Page))
	}

	resp, err := s.gw.Request(ctx, http.MethodGet, "/pastes/search", nil, q)
	if err != nil {
		return nil, err
	}

	var result models.SearchResult
	if err := resp.JSON(&result); err != nil {
		return nil, fmt.Errorf("decoding search result: %w", err)
	}
	for i := range result.Items {
		result.Items[i].Normalize()
	}
	return &result, nil
}

func (s *pasteService) Update(ctx context.Context, id string, patch models.Patch) error {
	_, err := s.gw.Request(ctx, http.MethodPatch, "/pastes/"+url.PathEscape(id), patch, nil)
	return err
}

func (s *pasteService) Delete(ctx context.Context, id string) error {
	_, err := s.gw.Request(ctx, http.MethodDelete, "/pastes/"+url.PathEscape(id), nil, nil)
	return err
}

// Claim submits the edit secret for a paste. When secret is empty the
// locally stored one is used. On success the stored secret is removed:
// claiming consumes it, and it is never re-submitted. On failure the paste
// and the stored secret are left as they were.
func (s *pasteService) Claim(ctx context.Context, id, secret string) error {
	if secret == "" {
		saved, err := s.secrets.Get(ctx, id)
		if err != nil {
			if errors.Is(err, common.ErrNotFound) {
				return fmt.Errorf("paste %s: %w", id, common.ErrNoEditSecret)
			}
			return err
		}
		secret = saved
	}

	body := map[string]string{"edit_secret": secret}
	if _, err := s.gw.Request(ctx, http.MethodPost, "/pastes/"+url.PathEscape(id)+"/claim", body, nil); err != nil {
		return err
	}

	if err := s.secrets.Delete(ctx, id); err != nil {
		s.log.Warn(ctx, "could not discard consumed edit secret", "paste_id", id, "error", err)
	}
	return nil
}

func (s *pasteService) Stats(ctx context.Context) (*models.Stats, error) {
	resp, err := s.gw.Request(ctx, http.MethodGet, "/stats", nil, nil)
	if err != nil {
		return nil, err
	}

	var stats models.Stats
	if err := resp.JSON(&stats); err != nil {
		return nil, fmt.Errorf("decoding stats: %w", err)
	}
	return &stats, nil
}
