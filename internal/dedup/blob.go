package dedup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/caesgo22-droid/IA-Remates-CR/internal/common"
	"github.com/caesgo22-droid/IA-Remates-CR/internal/service"
)

// HistoryKey is the blob key holding the processed digests.
const HistoryKey = "erj_processed_hashes"

// BlobHistory keeps the digests as a JSON array in a blob store, oldest first.
type BlobHistory struct {
	store service.BlobStore
	key   string
	limit int
}

// NewBlobHistory creates a history stored under HistoryKey.
func NewBlobHistory(store service.BlobStore) *BlobHistory {
	return &BlobHistory{store: store, key: HistoryKey, limit: HistoryLimit}
}

func (h *BlobHistory) load(ctx context.Context) ([]string, error) {
	raw, err := h.store.GetBlob(ctx, h.key)
	if errors.Is(err, common.ErrNotFound) || (err == nil && raw == "") {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var hashes []string
	if err := json.Unmarshal([]byte(raw), &hashes); err != nil {
		// Corrupt history reads as empty.
		return nil, nil
	}
	return hashes, nil
}

// Contains implements History.
func (h *BlobHistory) Contains(ctx context.Context, hash string) (bool, error) {
	hashes, err := h.load(ctx)
	if err != nil {
		return false, err
	}
	for _, existing := range hashes {
		if existing == hash {
			return true, nil
		}
	}
	return false, nil
}

// Record implements History, keeping only the most recent digests.
func (h *BlobHistory) Record(ctx context.Context, hash string) error {
	hashes, err := h.load(ctx)
	if err != nil {
		return err
	}
	hashes = append(hashes, hash)
	if len(hashes) > h.limit {
		hashes = hashes[len(hashes)-h.limit:]
	}

	data, err := json.Marshal(hashes)
	if err != nil {
		return fmt.Errorf("failed to encode hash history: %w", err)
	}
	return h.store.SetBlob(ctx, h.key, string(data))
}
