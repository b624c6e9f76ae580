package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/caesgo22-droid/IA-Remates-CR/internal/common"
	"github.com/caesgo22-droid/IA-Remates-CR/internal/model"
)

// AddAttachment links a to one of the user's saved properties.
func (s *SQLiteStorage) AddAttachment(ctx context.Context, userID string, a *model.Attachment) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(userID, "userID"); err != nil {
		return err
	}
	if err := validateAttachment(a); err != nil {
		return err
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		var exists int
		err := tx.QueryRowContext(ctx, `
			SELECT 1 FROM saved_properties WHERE user_id = ? AND property_id = ?
		`, userID, a.PropertyID).Scan(&exists)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("saved property %s: %w", a.PropertyID, common.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("failed to check saved property: %w", err)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO attachments (id, user_id, property_id, type, mime_type, name, data, date)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, a.ID, userID, a.PropertyID, string(a.Type), a.MimeType, a.Name, a.Data,
			a.Date.UTC().Format(time.RFC3339Nano))
		if err != nil {
			return fmt.Errorf("%w: attachment %s: %w", common.ErrDuplicateEntry, a.ID, err)
		}
		return nil
	})
}

// GetAttachments returns a saved property's attachments, newest first.
func (s *SQLiteStorage) GetAttachments(ctx context.Context, userID, propertyID string) ([]model.Attachment, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}
	if err := validateString(propertyID, "propertyID"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, property_id, type, COALESCE(mime_type, ''), name, data, date
		FROM attachments
		WHERE user_id = ? AND property_id = ?
		ORDER BY date DESC, rowid DESC
	`, userID, propertyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query attachments: %w", err)
	}
	defer func() { _ = rows.Close() }()

	attachments := []model.Attachment{}
	for rows.Next() {
		var (
			a       model.Attachment
			kind    string
			rawDate string
		)
		if err := rows.Scan(&a.ID, &a.PropertyID, &kind, &a.MimeType, &a.Name, &a.Data, &rawDate); err != nil {
			return nil, fmt.Errorf("failed to scan attachment: %w", err)
		}
		a.Type = model.AttachmentType(kind)
		a.Date, err = time.Parse(time.RFC3339Nano, rawDate)
		if err != nil {
			return nil, fmt.Errorf("%w: attachment %s date: %w", common.ErrDatabaseCorrupted, a.ID, err)
		}
		attachments = append(attachments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating attachments: %w", err)
	}
	return attachments, nil
}

// DeleteAttachment removes one attachment, returning common.ErrNotFound if
// it does not exist.
func (s *SQLiteStorage) DeleteAttachment(ctx context.Context, userID, propertyID, attachmentID string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(userID, "userID"); err != nil {
		return err
	}
	if err := validateString(attachmentID, "attachmentID"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		DELETE FROM attachments WHERE user_id = ? AND property_id = ? AND id = ?
	`, userID, propertyID, attachmentID)
	if err != nil {
		return fmt.Errorf("failed to delete attachment: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("attachment %s: %w", attachmentID, common.ErrNotFound)
	}
	return nil
}
