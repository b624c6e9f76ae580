// Package bulletin downloads the text of a published judicial bulletin with
// a headless browser, so the extraction can start from a URL instead of
// pasted text.
package bulletin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
)

// DefaultURL is the Boletín Judicial front page.
const DefaultURL = "https://www.imprentanacional.go.cr/boletin/"

// DefaultAlias selects DefaultURL on the command line.
const DefaultAlias = "default"

// ErrInvalidURL is returned for anything that is not an absolute http(s) URL.
var ErrInvalidURL = errors.New("invalid bulletin URL")

// ResolveURL validates raw, mapping DefaultAlias to DefaultURL.
func ResolveURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if strings.EqualFold(raw, DefaultAlias) {
		return DefaultURL, nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidURL, raw)
	}
	return u.String(), nil
}

// Fetcher loads pages in headless Chrome.
type Fetcher struct {
	logger *slog.Logger
	// Timeout bounds a whole fetch.
	Timeout time.Duration
	// Settle is how long to let scripts render after the body is ready.
	Settle time.Duration
}

// NewFetcher creates a fetcher with production timings.
func NewFetcher(logger *slog.Logger) *Fetcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Fetcher{logger: logger, Timeout: 2 * time.Minute, Settle: 3 * time.Second}
}

func newBrowserContext(ctx context.Context) (context.Context, context.CancelFunc) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("log-level", "3"),
		chromedp.WindowSize(1280, 900),
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	browserCtx, cancelCtx := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...any) {}))

	return browserCtx, func() {
		cancelCtx()
		cancelAlloc()
	}
}

// FetchText returns the visible text of the page at rawURL.
func (f *Fetcher) FetchText(ctx context.Context, rawURL string) (string, error) {
	target, err := ResolveURL(rawURL)
	if err != nil {
		return "", err
	}

	browserCtx, cancel := newBrowserContext(ctx)
	defer cancel()

	if f.Timeout > 0 {
		var cancelTimeout context.CancelFunc
		browserCtx, cancelTimeout = context.WithTimeout(browserCtx, f.Timeout)
		defer cancelTimeout()
	}

	f.logger.Info("Loading bulletin", "url", target)
	started := time.Now()

	var text string
	err = chromedp.Run(browserCtx,
		chromedp.Navigate(target),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(f.Settle),
		chromedp.Text("body", &text, chromedp.ByQuery),
	)
	if err != nil {
		return "", fmt.Errorf("failed to load bulletin %s: %w", target, err)
	}

	f.logger.Info("Bulletin loaded", "url", target, "chars", len([]rune(text)), "elapsed", time.Since(started).Round(time.Millisecond))
	return text, nil
}
