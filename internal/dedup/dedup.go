// Package dedup detects bulletins that were already processed. A repeat is
// only a warning: the text is still extracted.
package dedup

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
)

// HistoryLimit is how many recent digests are remembered.
const HistoryLimit = 50

// Hash returns the lowercase hex SHA-256 digest of the raw input text.
func Hash(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// History remembers the digests of recently processed inputs.
type History interface {
	Contains(ctx context.Context, hash string) (bool, error)
	Record(ctx context.Context, hash string) error
}

// Result describes one duplicate check.
type Result struct {
	Hash      string
	Duplicate bool
}

// Warning is the message shown when a bulletin was processed before.
const Warning = "Este texto parece ya haber sido procesado. Verifica si hay duplicados."

// Checker hashes inputs and consults a History.
type Checker struct {
	history History
	logger  *slog.Logger
}

// NewChecker creates a Checker backed by history.
func NewChecker(history History, logger *slog.Logger) *Checker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Checker{history: history, logger: logger}
}

// Check reports whether text was seen before and records it when it was not.
// History failures are logged and treated as "not a duplicate".
func (c *Checker) Check(ctx context.Context, text string) (Result, error) {
	result := Result{Hash: Hash(text)}

	seen, err := c.history.Contains(ctx, result.Hash)
	if err != nil {
		c.logger.Warn("Could not read processed-input history", "error", err)
		return result, nil
	}
	if seen {
		result.Duplicate = true
		c.logger.Warn("Input was already processed", "hash", result.Hash)
		return result, nil
	}

	if err := c.history.Record(ctx, result.Hash); err != nil {
		return result, fmt.Errorf("failed to record input hash: %w", err)
	}
	return result, nil
}
