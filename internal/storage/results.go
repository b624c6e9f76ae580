package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/caesgo22-droid/IA-Remates-CR/internal/common"
	"github.com/caesgo22-droid/IA-Remates-CR/internal/model"
)

// ReplaceResults swaps the stored search results for props, keeping their order.
func (s *SQLiteStorage) ReplaceResults(ctx context.Context, props []*model.Property) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	for i, p := range props {
		if err := validateProperty(p); err != nil {
			return fmt.Errorf("result at index %d: %w", i, err)
		}
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM search_results`); err != nil {
			return fmt.Errorf("failed to clear results: %w", err)
		}

		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO search_results (position, property_id, data) VALUES (?, ?, ?)
		`)
		if err != nil {
			return fmt.Errorf("failed to prepare statement: %w", err)
		}
		defer func() { _ = stmt.Close() }()

		for i, p := range props {
			data, err := json.Marshal(p)
			if err != nil {
				return fmt.Errorf("failed to encode property %s: %w", p.ID, err)
			}
			if _, err := stmt.ExecContext(ctx, i, p.ID, string(data)); err != nil {
				return fmt.Errorf("failed to insert result %s: %w", p.ID, err)
			}
		}
		return nil
	})
}

// GetResults returns the stored search results in extraction order.
func (s *SQLiteStorage) GetResults(ctx context.Context) ([]*model.Property, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT data FROM search_results ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query results: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanProperties(rows)
}

// UpdateResult rewrites one stored result in place.
func (s *SQLiteStorage) UpdateResult(ctx context.Context, p *model.Property) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateProperty(p); err != nil {
		return err
	}

	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode property: %w", err)
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE search_results SET data = ? WHERE property_id = ?
	`, string(data), p.ID)
	if err != nil {
		return fmt.Errorf("failed to update result: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("result %s: %w", p.ID, common.ErrNotFound)
	}
	return nil
}

// ClearResults removes every stored search result.
func (s *SQLiteStorage) ClearResults(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM search_results`); err != nil {
		return fmt.Errorf("failed to clear results: %w", err)
	}
	return nil
}
