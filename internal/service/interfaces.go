// Package service defines the interfaces shared between the pipeline, the
// persistence layer and the command-line front end.
package service

import (
	"context"
	"time"

	"github.com/caesgo22-droid/IA-Remates-CR/internal/model"
)

// Storage defines the contract for our persistence layer.
type Storage interface {
	PreferenceStore
	PropertyStore
	AttachmentStore
	BlobStore
	ResultStore

	Migrate(ctx context.Context) error
	Close() error
}

// PreferenceStore holds the per-user favorites and rejections document.
type PreferenceStore interface {
	GetPreferences(ctx context.Context, userID string) (*model.Preferences, error)
	SavePreferences(ctx context.Context, userID string, prefs *model.Preferences) error
}

// PropertyStore holds the per-user snapshots of saved (favorite) properties.
type PropertyStore interface {
	SaveProperty(ctx context.Context, userID string, p *model.Property) error
	GetSavedProperty(ctx context.Context, userID, propertyID string) (*model.Property, error)
	GetSavedProperties(ctx context.Context, userID string) ([]*model.Property, error)
	DeleteSavedProperty(ctx context.Context, userID, propertyID string) error
}

// AttachmentStore holds documents attached to saved properties.
type AttachmentStore interface {
	AddAttachment(ctx context.Context, userID string, a *model.Attachment) error
	GetAttachments(ctx context.Context, userID, propertyID string) ([]model.Attachment, error)
	DeleteAttachment(ctx context.Context, userID, propertyID, attachmentID string) error
}

// BlobStore is the string-keyed fallback store used without a user session.
type BlobStore interface {
	GetBlob(ctx context.Context, key string) (string, error)
	SetBlob(ctx context.Context, key, value string) error
}

// ResultStore holds the properties of the most recent extraction.
type ResultStore interface {
	ReplaceResults(ctx context.Context, props []*model.Property) error
	GetResults(ctx context.Context) ([]*model.Property, error)
	UpdateResult(ctx context.Context, p *model.Property) error
	ClearResults(ctx context.Context) error
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	// Sleep waits between attempts; nil uses a context-aware timer.
	Sleep func(ctx context.Context, d time.Duration) error
	// OnRetry is called before every wait.
	OnRetry      func(attempt int, delay time.Duration, err error)
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
