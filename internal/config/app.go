package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/caesgo22-droid/IA-Remates-CR/internal/extraction"
	"github.com/caesgo22-droid/IA-Remates-CR/internal/llm"
	"github.com/spf13/viper"
)

// DefaultDataDir is where the database and tokens live unless configured otherwise.
func DefaultDataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "remates")
	}
	return ExpandPath("~/.local/share/remates")
}

// DefaultConfigDir holds config.yaml.
func DefaultConfigDir() string {
	return ExpandPath("~/.config/remates")
}

// DatabasePath returns storage.path or the default database location.
func DatabasePath() string {
	if v := viper.GetString("storage.path"); v != "" {
		return ExpandPath(v)
	}
	return filepath.Join(DefaultDataDir(), "remates.db")
}

// DefaultTokenFile is where the interactive Google OAuth token is stored.
func DefaultTokenFile() string {
	return filepath.Join(DefaultDataDir(), "sheets_token.json")
}

// LoadLLMConfig reads the llm.* keys. The API key falls back to the
// GEMINI_API_KEY and API_KEY environment variables.
func LoadLLMConfig() llm.Config {
	cfg := llm.Config{
		Provider:  viper.GetString("llm.provider"),
		APIKey:    viper.GetString("llm.api_key"),
		Model:     viper.GetString("llm.model"),
		BaseURL:   viper.GetString("llm.base_url"),
		Timeout:   viper.GetDuration("llm.timeout"),
		RateLimit: viper.GetInt("llm.rate_limit"),
		MaxTokens: viper.GetInt("llm.max_tokens"),
	}
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("API_KEY")
	}
	return cfg
}

// LoadExtractionOptions overlays the extraction.* keys on the production defaults.
func LoadExtractionOptions() extraction.Options {
	opts := extraction.DefaultOptions()

	if v := viper.GetInt("extraction.chunk_budget"); v > 0 {
		opts.Segment.Budget = v
	}
	if v := viper.GetInt("extraction.min_fragment"); v > 0 {
		opts.Segment.MinFragment = v
	}
	if viper.IsSet("extraction.chunk_pause") {
		opts.ChunkPause = nonNegative(viper.GetDuration("extraction.chunk_pause"))
	}
	if viper.IsSet("extraction.max_retries") {
		opts.MaxRetries = max(viper.GetInt("extraction.max_retries"), 0)
	}
	if v := viper.GetDuration("extraction.retry_delay"); v > 0 {
		opts.RetryDelay = v
	}
	if v := viper.GetFloat64("extraction.retry_multiplier"); v > 0 {
		opts.RetryMultiplier = v
	}
	return opts
}

// UserID is the configured session user; empty means anonymous.
func UserID() string {
	return viper.GetString("user.id")
}

func nonNegative(d time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	return d
}
