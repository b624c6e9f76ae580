package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/caesgo22-droid/IA-Remates-CR/internal/model"
)

// GetPreferences returns the user's favorites and rejections. A user with
// no stored document gets empty lists.
func (s *SQLiteStorage) GetPreferences(ctx context.Context, userID string) (*model.Preferences, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}

	s.cacheMu.RLock()
	if cached, ok := s.prefCache[userID]; ok {
		s.cacheMu.RUnlock()
		return clonePreferences(cached), nil
	}
	s.cacheMu.RUnlock()

	var favorites, rejected string
	err := s.db.QueryRowContext(ctx, `
		SELECT favorites, rejected FROM user_preferences WHERE user_id = ?
	`, userID).Scan(&favorites, &rejected)

	prefs := &model.Preferences{Favorites: []string{}, Rejected: []string{}}
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return nil, fmt.Errorf("failed to query preferences: %w", err)
	default:
		if err := json.Unmarshal([]byte(favorites), &prefs.Favorites); err != nil {
			return nil, fmt.Errorf("failed to decode favorites: %w", err)
		}
		if err := json.Unmarshal([]byte(rejected), &prefs.Rejected); err != nil {
			return nil, fmt.Errorf("failed to decode rejections: %w", err)
		}
	}

	s.cacheMu.Lock()
	s.prefCache[userID] = clonePreferences(prefs)
	s.cacheMu.Unlock()

	return prefs, nil
}

// SavePreferences replaces the user's preference document.
func (s *SQLiteStorage) SavePreferences(ctx context.Context, userID string, prefs *model.Preferences) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(userID, "userID"); err != nil {
		return err
	}
	if prefs == nil {
		return fmt.Errorf("%w: preferences", ErrNilParameter)
	}

	normalized := clonePreferences(prefs)
	favorites, err := json.Marshal(normalized.Favorites)
	if err != nil {
		return fmt.Errorf("failed to encode favorites: %w", err)
	}
	rejected, err := json.Marshal(normalized.Rejected)
	if err != nil {
		return fmt.Errorf("failed to encode rejections: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO user_preferences (user_id, favorites, rejected, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(user_id) DO UPDATE SET
			favorites = excluded.favorites,
			rejected = excluded.rejected,
			updated_at = CURRENT_TIMESTAMP
	`, userID, string(favorites), string(rejected))
	if err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}

	s.cacheMu.Lock()
	s.prefCache[userID] = normalized
	s.cacheMu.Unlock()

	return nil
}

func clonePreferences(p *model.Preferences) *model.Preferences {
	out := &model.Preferences{
		Favorites: make([]string, len(p.Favorites)),
		Rejected:  make([]string, len(p.Rejected)),
	}
	copy(out.Favorites, p.Favorites)
	copy(out.Rejected, p.Rejected)
	return out
}
