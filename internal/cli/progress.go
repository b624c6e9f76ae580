package cli

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/schollz/progressbar/v3"
)

// ChunkProgress renders a progress bar over the chunks of an extraction.
// Its methods match the extraction hooks.
type ChunkProgress struct {
	writer io.Writer
	bar    *progressbar.ProgressBar
	items  int
	failed int
}

// NewChunkProgress creates a progress display writing to w.
func NewChunkProgress(w io.Writer) *ChunkProgress {
	return &ChunkProgress{writer: w}
}

func (c *ChunkProgress) init(total int) {
	c.bar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(c.writer),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan][bold]Analizando edictos...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			if _, err := fmt.Fprintln(c.writer); err != nil {
				slog.Warn("Failed to write newline after progress bar", "error", err)
			}
		}),
	)
}

// ChunkStart is called before a chunk is sent.
func (c *ChunkProgress) ChunkStart(index, total int) {
	if c.bar == nil {
		c.init(total)
	}
	c.bar.Describe(fmt.Sprintf("[cyan][bold]Analizando parte %d/%d...[reset]", index+1, total))
}

// ChunkDone is called after a chunk finished or was given up on.
func (c *ChunkProgress) ChunkDone(index, total, items int, err error) {
	if c.bar == nil {
		c.init(total)
	}
	c.items += items
	if err != nil {
		c.failed++
	}
	if addErr := c.bar.Add(1); addErr != nil {
		slog.Warn("Failed to update progress bar", "error", addErr)
	}
}

// Retry is called before waiting to retry a chunk.
func (c *ChunkProgress) Retry(index, attempt int, delay time.Duration, _ error) {
	if c.bar == nil {
		return
	}
	c.bar.Describe(fmt.Sprintf("[yellow]Servicio saturado, reintento %d de la parte %d en %s...[reset]",
		attempt, index+1, delay.Round(100*time.Millisecond)))
}

// Items returns how many properties the finished chunks produced.
func (c *ChunkProgress) Items() int {
	return c.items
}

// Failed returns how many chunks were skipped.
func (c *ChunkProgress) Failed() int {
	return c.failed
}
