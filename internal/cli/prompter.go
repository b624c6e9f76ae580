package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Prompter asks the user yes/no questions on a terminal.
type Prompter struct {
	reader *NonBlockingReader
	writer io.Writer
}

// NewCLIPrompter creates a prompter reading answers from reader.
func NewCLIPrompter(reader io.Reader, writer io.Writer) *Prompter {
	return &Prompter{
		reader: NewNonBlockingReader(reader),
		writer: writer,
	}
}

// Confirm asks question and reports whether the user agreed. Only "s", "si",
// "sí", "y" and "yes" count as agreement; anything else, including EOF, does not.
func (p *Prompter) Confirm(ctx context.Context, question string) (bool, error) {
	if _, err := fmt.Fprint(p.writer, FormatPrompt(question+" [s/N]")); err != nil {
		slog.Warn("Failed to write prompt", "error", err)
	}

	answer, err := p.reader.ReadLine(ctx)
	if err == io.EOF {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	switch strings.ToLower(answer) {
	case "s", "si", "sí", "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
