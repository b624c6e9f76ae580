package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/caesgo22-droid/IA-Remates-CR/internal/model"
)

// Validation errors.
var (
	ErrNilContext        = errors.New("context cannot be nil")
	ErrEmptyString       = errors.New("string parameter cannot be empty")
	ErrNilParameter      = errors.New("parameter cannot be nil")
	ErrInvalidAttachment = errors.New("invalid attachment")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

func validateProperty(p *model.Property) error {
	if p == nil {
		return fmt.Errorf("%w: property", ErrNilParameter)
	}
	return p.Validate()
}

func validateAttachment(a *model.Attachment) error {
	if a == nil {
		return fmt.Errorf("%w: attachment", ErrNilParameter)
	}
	if a.ID == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidAttachment)
	}
	if a.PropertyID == "" {
		return fmt.Errorf("%w: missing property ID", ErrInvalidAttachment)
	}
	switch a.Type {
	case model.AttachmentImage, model.AttachmentLink, model.AttachmentFile:
	default:
		return fmt.Errorf("%w: unknown type %q", ErrInvalidAttachment, a.Type)
	}
	if strings.TrimSpace(a.Name) == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidAttachment)
	}
	if a.Data == "" {
		return fmt.Errorf("%w: missing data", ErrInvalidAttachment)
	}
	if a.Date.IsZero() {
		return fmt.Errorf("%w: missing date", ErrInvalidAttachment)
	}
	return nil
}
