// Package extraction turns raw bulletin text into Property records: it
// segments the text, asks the model for each chunk, repairs the answers and
// normalizes the records.
package extraction

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/caesgo22-droid/IA-Remates-CR/internal/common"
	"github.com/caesgo22-droid/IA-Remates-CR/internal/llm"
	"github.com/caesgo22-droid/IA-Remates-CR/internal/model"
	"github.com/caesgo22-droid/IA-Remates-CR/internal/segment"
	"github.com/caesgo22-droid/IA-Remates-CR/internal/service"
)

// Pipeline errors.
var (
	ErrEmptyInput   = errors.New("no extractable text in input")
	ErrNoProperties = errors.New("no properties found")
)

// NoPropertiesMessage is shown when a whole bulletin produced nothing.
const NoPropertiesMessage = "No se encontraron propiedades. Intenta copiar más contexto o verifica que sean edictos de remate."

// Defaults for a production run.
const (
	DefaultChunkPause      = time.Second
	DefaultMaxRetries      = 3
	DefaultRetryDelay      = 3 * time.Second
	DefaultRetryMultiplier = 1.5
)

// Options tunes the pipeline.
type Options struct {
	// Sleep waits between chunks and between retries; nil uses common.Sleep.
	Sleep           func(ctx context.Context, d time.Duration) error
	NewID           func() string
	Segment         segment.Options
	ChunkPause      time.Duration
	MaxRetries      int
	RetryDelay      time.Duration
	RetryMultiplier float64
}

// DefaultOptions returns the production settings.
func DefaultOptions() Options {
	return Options{
		Segment:         segment.DefaultOptions(),
		ChunkPause:      DefaultChunkPause,
		MaxRetries:      DefaultMaxRetries,
		RetryDelay:      DefaultRetryDelay,
		RetryMultiplier: DefaultRetryMultiplier,
	}
}

// Hooks observe a run. Every field is optional.
type Hooks struct {
	OnChunkStart func(index, total int)
	OnChunkDone  func(index, total, items int, err error)
	OnRetry      func(index, attempt int, delay time.Duration, err error)
}

// Result is the outcome of a run.
type Result struct {
	Properties   []*model.Property
	Chunks       int
	FailedChunks int
	Duration     time.Duration
}

// Extractor runs the extraction pipeline against one model client.
type Extractor struct {
	client llm.Client
	logger *slog.Logger
	hooks  Hooks
	opts   Options
}

// NewExtractor creates an Extractor. A nil client is reported when Run is
// called, before any chunk is sent.
func NewExtractor(client llm.Client, opts Options, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Sleep == nil {
		opts.Sleep = common.Sleep
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = DefaultRetryDelay
	}
	if opts.RetryMultiplier <= 0 {
		opts.RetryMultiplier = DefaultRetryMultiplier
	}
	return &Extractor{client: client, opts: opts, logger: logger}
}

// WithHooks sets the run observers.
func (e *Extractor) WithHooks(h Hooks) *Extractor {
	e.hooks = h
	return e
}

// Run extracts every property from text. Chunks are processed one at a time
// in order; a chunk that keeps failing is logged and skipped. When ctx is
// canceled the properties gathered so far are returned with ctx's error.
func (e *Extractor) Run(ctx context.Context, text string) (*Result, error) {
	started := time.Now()

	if e.client == nil {
		return nil, common.NewUserError("Falta la clave de API del servicio de extracción.", common.ErrMissingAPIKey)
	}

	chunks := segment.Segment(text, e.opts.Segment)
	if len(chunks) == 0 {
		return nil, common.NewUserError(NoPropertiesMessage, ErrEmptyInput)
	}

	result := &Result{Properties: []*model.Property{}, Chunks: len(chunks)}
	e.logger.Info("Starting extraction", "chunks", len(chunks))

	for i, chunk := range chunks {
		if err := ctx.Err(); err != nil {
			result.Duration = time.Since(started)
			return result, err
		}
		if e.hooks.OnChunkStart != nil {
			e.hooks.OnChunkStart(i, len(chunks))
		}

		props, err := e.extractChunk(ctx, i, chunk)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				result.Duration = time.Since(started)
				return result, ctxErr
			}
			result.FailedChunks++
			e.logger.Error("Chunk extraction failed",
				"chunk", i+1,
				"total", len(chunks),
				"error", err)
		}
		result.Properties = append(result.Properties, props...)

		if e.hooks.OnChunkDone != nil {
			e.hooks.OnChunkDone(i, len(chunks), len(props), err)
		}

		if i < len(chunks)-1 {
			if err := e.opts.Sleep(ctx, e.opts.ChunkPause); err != nil {
				result.Duration = time.Since(started)
				return result, err
			}
		}
	}

	result.Duration = time.Since(started)
	e.logger.Info("Extraction finished",
		"chunks", result.Chunks,
		"failed_chunks", result.FailedChunks,
		"properties", len(result.Properties),
		"duration", result.Duration)

	if len(result.Properties) == 0 {
		return result, common.NewUserError(NoPropertiesMessage, ErrNoProperties)
	}
	return result, nil
}

func (e *Extractor) extractChunk(ctx context.Context, index int, chunk string) ([]*model.Property, error) {
	req := llm.Request{
		SystemInstruction: SystemInstruction,
		Prompt:            PromptPrefix + chunk,
		Schema:            PropertySchema(),
		Temperature:       0,
	}

	var resp llm.Response
	err := common.WithRetry(ctx, func() error {
		r, err := e.client.Extract(ctx, req)
		if err != nil {
			if llm.IsTransient(err) {
				return err
			}
			return &common.RetryableError{Err: err, Retryable: false}
		}
		resp = r
		return nil
	}, service.RetryOptions{
		MaxAttempts:  e.opts.MaxRetries + 1,
		InitialDelay: e.opts.RetryDelay,
		MaxDelay:     time.Hour,
		Multiplier:   e.opts.RetryMultiplier,
		Sleep:        e.opts.Sleep,
		OnRetry: func(attempt int, delay time.Duration, err error) {
			if e.hooks.OnRetry != nil {
				e.hooks.OnRetry(index, attempt, delay, err)
			}
		},
	})
	if err != nil {
		return nil, fmt.Errorf("chunk %d: %w", index+1, err)
	}

	parsed := ParseResponse(resp.Text)
	switch parsed.Recovery {
	case RecoveryNoJSON:
		e.logger.Warn("No JSON found in model response", "chunk", index+1)
	case RecoveryFailed:
		e.logger.Warn("Model response is not valid JSON, skipping chunk", "chunk", index+1)
	case RecoveryQuotes:
		e.logger.Warn("Model response repaired by replacing single quotes", "chunk", index+1)
	}
	if parsed.Dropped > 0 {
		e.logger.Warn("Dropped malformed items", "chunk", index+1, "count", parsed.Dropped)
	}

	props := make([]*model.Property, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		props = append(props, Normalize(item, e.opts.NewID()))
	}
	return props, nil
}
