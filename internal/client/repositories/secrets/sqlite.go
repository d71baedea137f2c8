package secrets

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pasteflow/pasteflow/internal/common"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Save(ctx context.Context, pasteID, secret string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO edit_secrets (paste_id, secret) VALUES (?, ?)
		ON CONFLICT(paste_id) DO UPDATE SET secret = excluded.secret
	`, pasteID, secret)
	if err != nil {
		return fmt.Errorf("failed to save edit secret for %s: %w", pasteID, err)
	}
	return nil
}

func (r *SQLiteRepository) Get(ctx context.Context, pasteID string) (string, error) {
	var secret string
	err := r.db.QueryRowContext(ctx, `SELECT secret FROM edit_secrets WHERE paste_id = ?`, pasteID).Scan(&secret)
	if errors.Is(err, sql.ErrNoRows) {
		return "", common.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get edit secret for %s: %w", pasteID, err)
	}
	return secret, nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, pasteID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM edit_secrets WHERE paste_id = ?`, pasteID)
	if err != nil {
		return fmt.Errorf("failed to delete edit secret for %s: %w", pasteID, err)
	}
	return nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM edit_secrets`)
	if err != nil {
		return fmt.Errorf("failed to clear edit secrets: %w", err)
	}
	return nil
}
