package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
)

// ErrInputCancelled is returned when input is canceled by context.
var ErrInputCancelled = errors.New("input canceled")

// NonBlockingReader reads from a terminal or pipe while honoring context
// cancellation. A canceled read leaves its goroutine blocked until the
// underlying reader returns.
type NonBlockingReader struct {
	reader      *bufio.Reader
	readingLock sync.Mutex
}

// NewNonBlockingReader creates a new non-blocking reader.
func NewNonBlockingReader(reader io.Reader) *NonBlockingReader {
	if reader == nil {
		panic("reader cannot be nil")
	}

	return &NonBlockingReader{
		reader: bufio.NewReader(reader),
	}
}

type readResult struct {
	err   error
	value string
}

func (r *NonBlockingReader) read(ctx context.Context, fn func(*bufio.Reader) (string, error)) (string, error) {
	if ctx.Err() != nil {
		return "", ErrInputCancelled
	}

	resultCh := make(chan readResult, 1)
	go func() {
		r.readingLock.Lock()
		defer r.readingLock.Unlock()

		value, err := fn(r.reader)
		resultCh <- readResult{value: value, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ErrInputCancelled
	case res := <-resultCh:
		return res.value, res.err
	}
}

// ReadLine reads a line, respecting context cancellation.
func (r *NonBlockingReader) ReadLine(ctx context.Context) (string, error) {
	line, err := r.read(ctx, func(b *bufio.Reader) (string, error) {
		return b.ReadString('\n')
	})
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// ReadAll reads until EOF, as when a bulletin is piped or pasted followed by Ctrl-D.
func (r *NonBlockingReader) ReadAll(ctx context.Context) (string, error) {
	return r.read(ctx, func(b *bufio.Reader) (string, error) {
		data, err := io.ReadAll(b)
		return string(data), err
	})
}
