package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/caesgo22-droid/IA-Remates-CR/internal/common"
)

// GetBlob returns the value stored under key, or common.ErrNotFound.
func (s *SQLiteStorage) GetBlob(ctx context.Context, key string) (string, error) {
	if err := validateContext(ctx); err != nil {
		return "", err
	}
	if err := validateString(key, "key"); err != nil {
		return "", err
	}

	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM blobs WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("blob %s: %w", key, common.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("failed to query blob: %w", err)
	}
	return value, nil
}

// SetBlob stores value under key, replacing the previous value.
func (s *SQLiteStorage) SetBlob(ctx context.Context, key, value string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(key, "key"); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO blobs (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to save blob: %w", err)
	}
	return nil
}
