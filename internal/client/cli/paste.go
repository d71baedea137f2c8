package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/pasteflow/pasteflow/internal/client/access"
	"github.com/pasteflow/pasteflow/internal/client/models"
	"github.com/pasteflow/pasteflow/internal/common"
)

func (a *App) newPaste(ctx context.Context) {
	title, err := getSimpleText(a.reader, "Title (optional)", a.out)
	if err != nil {
		a.log.Warn(ctx, "input error", "error", err)
		return
	}

	language, err := getSimpleText(a.reader, fmt.Sprintf("Language %v", models.Languages), a.out)
	if err != nil {
		a.log.Warn(ctx, "input error", "error", err)
		return
	}

	expiration, err := getSimpleText(a.reader, fmt.Sprintf("Expiration %v", models.Expirations), a.out)
	if err != nil {
		a.log.Warn(ctx, "input error", "error", err)
		return
	}

	private, err := getSimpleText(a.reader, "Private paste? (y/N)", a.out)
	if err != nil {
		a.log.Warn(ctx, "input error", "error", err)
		return
	}
	encrypt, err := getSimpleText(a.reader, "Encrypt? (y/N)", a.out)
	if err != nil {
		a.log.Warn(ctx, "input error", "error", err)
		return
	}

	content, err := GetMultiline(a.reader, "Content", a.out)
	if err != nil {
		a.log.Warn(ctx, "input error", "error", err)
		return
	}
	if strings.TrimSpace(content) == "" {
		a.notify.Error("Paste content is required")
		return
	}

	visibility := models.VisibilityPublic
	if isYes(private) {
		visibility = models.VisibilityPrivate
	}

	draft := models.Draft{
		Title:      title,
		Content:    content,
		Language:   models.ParseLanguage(language),
		Expiration: models.ParseExpiration(expiration),
		Visibility: visibility,
		Encrypt:    isYes(encrypt),
	}

	result, err := a.pastes.Create(ctx, draft)
	if err != nil {
		return // already surfaced by the gateway
	}

	a.notify.Success("Paste created")
	fmt.Fprintf(a.out, "Link: %s/p/%s\n", a.config.APIBaseURL, result.ID)
	if result.EditSecret != "" {
		fmt.Fprintf(a.out, "Edit secret (save this!): %s\n", result.EditSecret)
		fmt.Fprintln(a.out, "It is also stored locally so you can claim the paste after logging in.")
	}
}

func isYes(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "y" || s == "yes"
}

func (a *App) show(ctx context.Context, id string) {
	p, err := a.fetch(ctx, id)
	if p == nil || err != nil {
		return
	}

	sess := a.sessions.Snapshot()
	fmt.Fprintf(a.out, "%s\n", orUntitled(p.Title))
	fmt.Fprintf(a.out, "Language: %s | Created: %s | Views: %d\n",
		p.Language, p.CreatedAt.Format("2006-01-02 15:04"), p.Views)

	if !access.CanView(*p, sess) {
		fmt.Fprintln(a.out, "This is a private paste. Log in to view it.")
		return
	}

	fmt.Fprintln(a.out, strings.Repeat("-", 40))
	fmt.Fprintln(a.out, p.Content)
	fmt.Fprintln(a.out, strings.Repeat("-", 40))

	actions := access.PermittedActions(*p, sess)
	var hints []string
	if actions.CanClaim {
		hints = append(hints, "claim")
	}
	if actions.CanEdit {
		hints = append(hints, "save")
	}
	if actions.CanDelete {
		hints = append(hints, "delete")
	}
	if len(hints) > 0 {
		fmt.Fprintf(a.out, "Available actions: %s\n", strings.Join(hints, ", "))
	}
}

func (a *App) download(ctx context.Context, id, name string) {
	p, err := a.fetch(ctx, id)
	if p == nil || err != nil {
		return
	}

	if !access.CanView(*p, a.sessions.Snapshot()) {
		fmt.Fprintln(a.out, "This is a private paste. Log in to download it.")
		return
	}

	if name == "" {
		if p.Title != "" {
			name = p.Title + ".txt"
		} else {
			name = p.ID + ".txt"
		}
	}

	if err := os.WriteFile(name, []byte(p.Content), 0o644); err != nil {
		a.log.Error(ctx, "could not write file", "file", name, "error", err)
		a.notify.Error("Could not write " + name)
		return
	}
	fmt.Fprintf(a.out, "Saved to %s\n", name)
}

// fetch loads a paste and turns a not-found outcome (missing or already
// expired, the server does not distinguish) into a user message.
func (a *App) fetch(ctx context.Context, id string) (*models.Paste, error) {
	p, err := a.pastes.Get(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			fmt.Fprintln(a.out, "Paste not found.")
		}
		return nil, err
	}
	return p, nil
}

func (a *App) mine(ctx context.Context) {
	sess := a.sessions.Snapshot()
	if !sess.Authenticated() {
		fmt.Fprintln(a.out, "Log in to list your pastes.")
		return
	}

	items, err := a.pastes.Mine(ctx)
	if err != nil {
		return
	}
	if len(items) == 0 {
		fmt.Fprintln(a.out, "No pastes yet. Create one with 'new'.")
		return
	}

	for _, p := range items {
		expires := "never expires"
		if p.ExpiresAt != nil {
			expires = "expires " + p.ExpiresAt.Format("2006-01-02 15:04")
		}
		fmt.Fprintf(a.out, "%s  %-20s %-10s views:%-4d %s\n",
			p.ID, orUntitled(p.Title), p.Language, p.Views, expires)
	}
}

func (a *App) search(ctx context.Context, query string) {
	result, err := a.pastes.Search(ctx, models.SearchQuery{Text: query})
	if err != nil {
		return
	}

	fmt.Fprintf(a.out, "%d result(s)\n", result.Total)
	for _, p := range result.Items {
		fmt.Fprintf(a.out, "%s  %-20s %-10s views:%d\n",
			p.ID, orUntitled(p.Title), p.Language, p.Views)
	}
}

func (a *App) save(ctx context.Context, id string) {
	p, err := a.fetch(ctx, id)
	if p == nil || err != nil {
		return
	}

	if !access.PermittedActions(*p, a.sessions.Snapshot()).CanEdit {
		fmt.Fprintln(a.out, "You cannot edit this paste.")
		return
	}

	title, err := getSimpleText(a.reader, fmt.Sprintf("Title [%s]", orUntitled(p.Title)), a.out)
	if err != nil {
		return
	}
	language, err := getSimpleText(a.reader, fmt.Sprintf("Language [%s]", p.Language), a.out)
	if err != nil {
		return
	}
	private, err := getSimpleText(a.reader, fmt.Sprintf("Private? (y/n) [%s]", p.Visibility), a.out)
	if err != nil {
		return
	}

	var patch models.Patch
	if title != "" {
		patch.Title = &title
	}
	if language != "" {
		l := models.ParseLanguage(language)
		patch.Language = &l
	}
	if private != "" {
		v := models.VisibilityPublic
		if isYes(private) {
			v = models.VisibilityPrivate
		}
		patch.Visibility = &v
	}

	if err := a.pastes.Update(ctx, id, patch); err != nil {
		return
	}
	a.notify.Success("Paste updated")
}

func (a *App) deletePaste(ctx context.Context, id string) {
	p, err := a.fetch(ctx, id)
	if p == nil || err != nil {
		return
	}

	if !access.PermittedActions(*p, a.sessions.Snapshot()).CanDelete {
		fmt.Fprintln(a.out, "You cannot delete this paste.")
		return
	}

	if err := a.pastes.Delete(ctx, id); err != nil {
		return
	}
	a.notify.Success("Paste deleted")
}

func (a *App) claim(ctx context.Context, id, secret string) {
	p, err := a.fetch(ctx, id)
	if p == nil || err != nil {
		return
	}

	if !access.PermittedActions(*p, a.sessions.Snapshot()).CanClaim {
		fmt.Fprintln(a.out, "This paste already has an owner.")
		return
	}

	err = a.pastes.Claim(ctx, id, secret)
	if errors.Is(err, common.ErrNoEditSecret) {
		// Nothing stored locally; ask, the way the claim form does.
		secret, err = getSimpleText(a.reader, "Enter edit secret to claim this paste", a.out)
		if err != nil || secret == "" {
			return
		}
		err = a.pastes.Claim(ctx, id, secret)
	}
	if err != nil {
		return // rejection already surfaced by the gateway
	}
	a.notify.Success("Paste claimed")
}

func (a *App) stats(ctx context.Context) {
	s, err := a.pastes.Stats(ctx)
	if err != nil {
		return
	}
	fmt.Fprintf(a.out, "Total pastes:  %d\n", s.TotalPastes)
	fmt.Fprintf(a.out, "Active pastes: %d\n", s.ActivePastes)
	fmt.Fprintf(a.out, "Total views:   %d\n", s.TotalViews)
	fmt.Fprintf(a.out, "Created today: %d\n", s.PastesToday)
}

func orUntitled(title string) string {
	if title == "" {
		return "Untitled"
	}
	return title
}
