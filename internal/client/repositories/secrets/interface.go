// Package secrets stores edit secrets issued at anonymous paste creation,
// keyed by paste id, so a later claim can consume them.
package secrets

import "context"

type Repository interface {
	// Save records the secret for a paste, replacing any previous value.
	Save(ctx context.Context, pasteID, secret string) error
	// Get returns the stored secret, or common.ErrNotFound when none exists.
	Get(ctx context.Context, pasteID string) (string, error)
	// Delete removes the secret for a paste. Deleting a missing secret is
	// not an error.
	Delete(ctx context.Context, pasteID string) error
	// Clear removes every stored secret.
	Clear(ctx context.Context) error
}
