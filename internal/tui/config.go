package tui

import (
	"context"
	"time"

	"github.com/caesgo22-droid/IA-Remates-CR/internal/model"
	"github.com/caesgo22-droid/IA-Remates-CR/internal/query"
	"github.com/caesgo22-droid/IA-Remates-CR/internal/tui/themes"
)

// Backend is what the browser reads and mutates. *portfolio.Manager
// satisfies it.
type Backend interface {
	Results(ctx context.Context) ([]*model.Property, error)
	Sets(ctx context.Context) (rejected, favorites query.Set, err error)
	ToggleFavorite(ctx context.Context, id string) (bool, error)
	RejectGroup(ctx context.Context, group query.Group) (bool, error)
}

// Config holds TUI configuration.
type Config struct {
	Theme   themes.Theme
	Backend Backend
	Now     func() time.Time
	Filters model.FilterState
	Width   int
	Height  int
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

func defaultConfig() Config {
	return Config{
		Theme:   themes.Default,
		Now:     time.Now,
		Filters: model.DefaultFilters(),
		Width:   100,
		Height:  30,
	}
}

// WithBackend sets the data source.
func WithBackend(b Backend) Option {
	return func(c *Config) {
		c.Backend = b
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithClock sets the time source used for auction stages and upcoming dates.
func WithClock(now func() time.Time) Option {
	return func(c *Config) {
		c.Now = now
	}
}

// WithFilters sets the initial filters, typically from command-line flags.
func WithFilters(f model.FilterState) Option {
	return func(c *Config) {
		c.Filters = f
	}
}
