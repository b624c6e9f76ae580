package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/caesgo22-droid/IA-Remates-CR/internal/common"
	"github.com/caesgo22-droid/IA-Remates-CR/internal/model"
)

// SaveProperty stores a full snapshot of p under the user, replacing any
// earlier snapshot with the same id.
func (s *SQLiteStorage) SaveProperty(ctx context.Context, userID string, p *model.Property) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(userID, "userID"); err != nil {
		return err
	}
	if err := validateProperty(p); err != nil {
		return err
	}

	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode property: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO saved_properties (user_id, property_id, numero_expediente, data, saved_at, updated_at)
		VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		ON CONFLICT(user_id, property_id) DO UPDATE SET
			numero_expediente = excluded.numero_expediente,
			data = excluded.data,
			updated_at = CURRENT_TIMESTAMP
	`, userID, p.ID, p.NumeroExpediente, string(data))
	if err != nil {
		return fmt.Errorf("failed to save property: %w", err)
	}
	return nil
}

// GetSavedProperty returns one saved snapshot or common.ErrNotFound.
func (s *SQLiteStorage) GetSavedProperty(ctx context.Context, userID, propertyID string) (*model.Property, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}
	if err := validateString(propertyID, "propertyID"); err != nil {
		return nil, err
	}

	var data string
	err := s.db.QueryRowContext(ctx, `
		SELECT data FROM saved_properties WHERE user_id = ? AND property_id = ?
	`, userID, propertyID).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("saved property %s: %w", propertyID, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query saved property: %w", err)
	}
	return decodeProperty(data)
}

// GetSavedProperties returns the user's snapshots in the order they were saved.
func (s *SQLiteStorage) GetSavedProperties(ctx context.Context, userID string) ([]*model.Property, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT data FROM saved_properties
		WHERE user_id = ?
		ORDER BY saved_at, rowid
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query saved properties: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanProperties(rows)
}

// DeleteSavedProperty removes a snapshot together with its attachments.
// Deleting a missing snapshot is not an error.
func (s *SQLiteStorage) DeleteSavedProperty(ctx context.Context, userID, propertyID string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(userID, "userID"); err != nil {
		return err
	}
	if err := validateString(propertyID, "propertyID"); err != nil {
		return err
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
			DELETE FROM attachments WHERE user_id = ? AND property_id = ?
		`, userID, propertyID); err != nil {
			return fmt.Errorf("failed to delete attachments: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `
			DELETE FROM saved_properties WHERE user_id = ? AND property_id = ?
		`, userID, propertyID); err != nil {
			return fmt.Errorf("failed to delete saved property: %w", err)
		}
		return nil
	})
}

func decodeProperty(data string) (*model.Property, error) {
	var p model.Property
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrDatabaseCorrupted, err)
	}
	return &p, nil
}

func scanProperties(rows *sql.Rows) ([]*model.Property, error) {
	props := []*model.Property{}
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to scan property: %w", err)
		}
		p, err := decodeProperty(data)
		if err != nil {
			return nil, err
		}
		props = append(props, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating properties: %w", err)
	}
	return props, nil
}
