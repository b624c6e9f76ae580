// Package portfolio manages what the investor does with extracted results:
// favorites, rejections, financial edits and attachments. With a user id the
// state lives in that user's preference document; without one, rejections
// fall back to a local blob and favorites are unavailable.
package portfolio

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caesgo22-droid/IA-Remates-CR/internal/common"
	"github.com/caesgo22-droid/IA-Remates-CR/internal/finance"
	"github.com/caesgo22-droid/IA-Remates-CR/internal/model"
	"github.com/caesgo22-droid/IA-Remates-CR/internal/query"
	"github.com/caesgo22-droid/IA-Remates-CR/internal/service"
	"github.com/google/uuid"
)

// RejectedKey is the blob holding rejections when there is no user.
const RejectedKey = "erj_rejected"

// ErrEmptyKey is returned when a rejection key is blank.
var ErrEmptyKey = errors.New("rejection key cannot be empty")

const loginRequiredMessage = "Configura un usuario (--user o REMATES_USER_ID) para guardar favoritos."

// Manager coordinates results, preferences and saved snapshots.
type Manager struct {
	store  service.Storage
	logger *slog.Logger
	now    func() time.Time
	newID  func() string
	userID string
}

// Option configures a Manager.
type Option func(*Manager)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithIDGenerator overrides how attachment ids are minted.
func WithIDGenerator(newID func() string) Option {
	return func(m *Manager) { m.newID = newID }
}

// NewManager creates a manager for userID. An empty userID means anonymous use.
func NewManager(store service.Storage, userID string, logger *slog.Logger, opts ...Option) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	m := &Manager{
		store:  store,
		userID: strings.TrimSpace(userID),
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// UserID returns the configured user, or "".
func (m *Manager) UserID() string {
	return m.userID
}

func (m *Manager) requireUser() error {
	if m.userID == "" {
		return common.NewUserError(loginRequiredMessage, common.ErrLoginRequired)
	}
	return nil
}

// Preferences returns the current favorites and rejections.
func (m *Manager) Preferences(ctx context.Context) (*model.Preferences, error) {
	if m.userID != "" {
		return m.store.GetPreferences(ctx, m.userID)
	}

	prefs := &model.Preferences{Favorites: []string{}, Rejected: []string{}}
	raw, err := m.store.GetBlob(ctx, RejectedKey)
	if errors.Is(err, common.ErrNotFound) {
		return prefs, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load local rejections: %w", err)
	}
	if err := json.Unmarshal([]byte(raw), &prefs.Rejected); err != nil {
		m.logger.Warn("Ignoring unreadable local rejections", "error", err)
		prefs.Rejected = []string{}
	}
	return prefs, nil
}

func (m *Manager) savePreferences(ctx context.Context, prefs *model.Preferences) error {
	if m.userID != "" {
		return m.store.SavePreferences(ctx, m.userID, prefs)
	}
	data, err := json.Marshal(prefs.Rejected)
	if err != nil {
		return fmt.Errorf("failed to encode rejections: %w", err)
	}
	return m.store.SetBlob(ctx, RejectedKey, string(data))
}

// Sets returns the rejected and favorite ids as sets for querying.
func (m *Manager) Sets(ctx context.Context) (rejected, favorites query.Set, err error) {
	prefs, err := m.Preferences(ctx)
	if err != nil {
		return nil, nil, err
	}
	return query.NewSet(prefs.Rejected...), query.NewSet(prefs.Favorites...), nil
}

// Results returns the stored results of the latest extraction.
func (m *Manager) Results(ctx context.Context) ([]*model.Property, error) {
	return m.store.GetResults(ctx)
}

// Saved returns the user's saved properties; anonymous use has none.
func (m *Manager) Saved(ctx context.Context) ([]*model.Property, error) {
	if m.userID == "" {
		return []*model.Property{}, nil
	}
	return m.store.GetSavedProperties(ctx, m.userID)
}

// Find looks a property up by id in the results first, then among saved ones.
func (m *Manager) Find(ctx context.Context, id string) (*model.Property, error) {
	results, err := m.Results(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range results {
		if p.ID == id {
			return p, nil
		}
	}
	if m.userID != "" {
		p, err := m.store.GetSavedProperty(ctx, m.userID, id)
		if err == nil {
			return p, nil
		}
		if !errors.Is(err, common.ErrNotFound) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("property %s: %w", id, common.ErrNotFound)
}

// IsFavorite reports whether id is one of the user's favorites.
func (m *Manager) IsFavorite(ctx context.Context, id string) (bool, error) {
	if m.userID == "" {
		return false, nil
	}
	prefs, err := m.Preferences(ctx)
	if err != nil {
		return false, err
	}
	return contains(prefs.Favorites, id), nil
}

// IngestResults stores a fresh extraction as the current results. Lots whose
// case was rejected are flagged. A saved snapshot replaces the first new lot
// of the same case and asset kind, keeping the newly published auction date;
// the other lots of that case pass through.
func (m *Manager) IngestResults(ctx context.Context, props []*model.Property) ([]*model.Property, error) {
	prefs, err := m.Preferences(ctx)
	if err != nil {
		return nil, err
	}
	saved, err := m.Saved(ctx)
	if err != nil {
		return nil, err
	}
	rejected := query.NewSet(prefs.Rejected...)

	savedByLot := make(map[lotKey][]*model.Property, len(saved))
	for _, sp := range saved {
		if k, ok := keyOf(sp); ok {
			savedByLot[k] = append(savedByLot[k], sp)
		}
	}

	processed := make([]*model.Property, 0, len(props))
	seen := make(map[string]struct{}, len(props))
	for _, p := range props {
		out := p.Clone()
		if k, ok := keyOf(p); ok && len(savedByLot[k]) > 0 {
			out = savedByLot[k][0].Clone()
			savedByLot[k] = savedByLot[k][1:]
			if p.FechaRemate != "" {
				out.FechaRemate = p.FechaRemate
			}
		} else {
			out.IsRejected = query.IsRejected(out, rejected)
		}
		if _, dup := seen[out.ID]; dup {
			m.logger.Debug("Skipping repeated property", "id", out.ID)
			continue
		}
		seen[out.ID] = struct{}{}
		processed = append(processed, out)
	}

	if err := m.store.ReplaceResults(ctx, processed); err != nil {
		return nil, fmt.Errorf("failed to store results: %w", err)
	}
	m.logger.Info("Stored extraction results", "count", len(processed), "user", m.userID)
	return processed, nil
}

// lotKey is the natural key of an auctioned asset: its case and kind.
type lotKey struct {
	expediente string
	tipo       model.TipoBien
}

func keyOf(p *model.Property) (lotKey, bool) {
	exp := strings.TrimSpace(p.NumeroExpediente)
	if exp == "" {
		return lotKey{}, false
	}
	return lotKey{expediente: exp, tipo: p.TipoBien}, true
}

// NewSearch discards the current results.
func (m *Manager) NewSearch(ctx context.Context) error {
	return m.store.ClearResults(ctx)
}

// ToggleFavorite adds or removes id from the user's favorites and reports
// whether it is now a favorite. Adding stores a snapshot of the property
// with the suggested legal cost filled in when it has none.
func (m *Manager) ToggleFavorite(ctx context.Context, id string) (bool, error) {
	if err := m.requireUser(); err != nil {
		return false, err
	}
	prefs, err := m.Preferences(ctx)
	if err != nil {
		return false, err
	}

	if contains(prefs.Favorites, id) {
		if err := m.store.DeleteSavedProperty(ctx, m.userID, id); err != nil {
			return true, err
		}
		prefs.Favorites = remove(prefs.Favorites, id)
		return false, m.store.SavePreferences(ctx, m.userID, prefs)
	}

	p, err := m.Find(ctx, id)
	if err != nil {
		return false, err
	}
	snapshot := p.Clone()
	snapshot.Analisis = finance.SeedAnalysis(snapshot)
	if err := m.store.SaveProperty(ctx, m.userID, snapshot); err != nil {
		return false, err
	}
	prefs.Favorites = append(prefs.Favorites, id)
	return true, m.store.SavePreferences(ctx, m.userID, prefs)
}

// ToggleRejected adds or removes key (a property id or case number) from the
// rejections and reports whether it is now rejected.
func (m *Manager) ToggleRejected(ctx context.Context, key string) (bool, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return false, ErrEmptyKey
	}
	prefs, err := m.Preferences(ctx)
	if err != nil {
		return false, err
	}

	now := !contains(prefs.Rejected, key)
	if now {
		prefs.Rejected = append(prefs.Rejected, key)
	} else {
		prefs.Rejected = remove(prefs.Rejected, key)
	}
	if err := m.savePreferences(ctx, prefs); err != nil {
		return !now, err
	}
	return now, m.syncRejectedFlags(ctx, query.NewSet(prefs.Rejected...))
}

// RejectGroup flips the rejection of a whole case. When any lot is
// currently rejected the case and all its lots are restored; otherwise the
// case number is rejected, which covers every lot.
func (m *Manager) RejectGroup(ctx context.Context, group query.Group) (bool, error) {
	if len(group.Properties) == 0 {
		return false, nil
	}
	prefs, err := m.Preferences(ctx)
	if err != nil {
		return false, err
	}
	rejected := query.NewSet(prefs.Rejected...)

	keys := []string{}
	if exp := group.Expediente(); exp != "" {
		keys = append(keys, exp)
	}
	currently := false
	for _, p := range group.Properties {
		if query.IsRejected(p, rejected) {
			currently = true
		}
	}

	if currently {
		for _, p := range group.Properties {
			keys = append(keys, p.ID)
		}
		for _, k := range keys {
			prefs.Rejected = remove(prefs.Rejected, k)
		}
	} else {
		if len(keys) == 0 {
			keys = append(keys, group.Properties[0].ID)
		}
		for _, k := range keys {
			if !contains(prefs.Rejected, k) {
				prefs.Rejected = append(prefs.Rejected, k)
			}
		}
	}

	if err := m.savePreferences(ctx, prefs); err != nil {
		return currently, err
	}
	return !currently, m.syncRejectedFlags(ctx, query.NewSet(prefs.Rejected...))
}

// syncRejectedFlags keeps the stored results' rejection flags in line with
// the preference document.
func (m *Manager) syncRejectedFlags(ctx context.Context, rejected query.Set) error {
	results, err := m.store.GetResults(ctx)
	if err != nil {
		return err
	}
	for _, p := range results {
		want := rejected.Has(p.ID) || rejected.Has(strings.TrimSpace(p.NumeroExpediente))
		if p.IsRejected == want {
			continue
		}
		p.IsRejected = want
		if err := m.store.UpdateResult(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// UpdateProperty stores edits to a property (strategy, analysis) in the
// results and, for favorites, in the saved snapshot.
func (m *Manager) UpdateProperty(ctx context.Context, p *model.Property) error {
	if err := p.Validate(); err != nil {
		return err
	}

	inResults := true
	if err := m.store.UpdateResult(ctx, p); err != nil {
		if !errors.Is(err, common.ErrNotFound) {
			return err
		}
		inResults = false
	}

	fav, err := m.IsFavorite(ctx, p.ID)
	if err != nil {
		return err
	}
	if fav {
		return m.store.SaveProperty(ctx, m.userID, p)
	}
	if !inResults {
		return fmt.Errorf("property %s: %w", p.ID, common.ErrNotFound)
	}
	return nil
}

// Summary projects every saved property at the manager's current time.
func (m *Manager) Summary(ctx context.Context) (finance.Summary, error) {
	saved, err := m.Saved(ctx)
	if err != nil {
		return finance.Summary{}, err
	}
	return finance.Summarize(saved, m.now()), nil
}

func contains(list []string, id string) bool {
	for _, v := range list {
		if v == id {
			return true
		}
	}
	return false
}

func remove(list []string, id string) []string {
	out := make([]string, 0, len(list))
	for _, v := range list {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
