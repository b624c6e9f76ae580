package portfolio

import (
	"context"
	"fmt"
	"strings"

	"github.com/caesgo22-droid/IA-Remates-CR/internal/common"
	"github.com/caesgo22-droid/IA-Remates-CR/internal/model"
)

const favoriteRequiredMessage = "Solo las propiedades guardadas en favoritos admiten documentos."

// AttachmentInput describes a document to attach.
type AttachmentInput struct {
	Type     model.AttachmentType
	MimeType string
	Name     string
	Data     string
}

func (m *Manager) requireFavorite(ctx context.Context, propertyID string) error {
	if err := m.requireUser(); err != nil {
		return err
	}
	fav, err := m.IsFavorite(ctx, propertyID)
	if err != nil {
		return err
	}
	if !fav {
		return common.NewUserError(favoriteRequiredMessage,
			fmt.Errorf("property %s: %w", propertyID, common.ErrNotFound))
	}
	return nil
}

// AddAttachment links a new document to a favorite property.
func (m *Manager) AddAttachment(ctx context.Context, propertyID string, in AttachmentInput) (*model.Attachment, error) {
	if err := m.requireFavorite(ctx, propertyID); err != nil {
		return nil, err
	}

	a := &model.Attachment{
		ID:         m.newID(),
		PropertyID: propertyID,
		Type:       in.Type,
		MimeType:   in.MimeType,
		Name:       strings.TrimSpace(in.Name),
		Data:       in.Data,
		Date:       m.now().UTC(),
	}
	if err := m.store.AddAttachment(ctx, m.userID, a); err != nil {
		return nil, err
	}
	m.logger.Info("Added attachment", "property", propertyID, "attachment", a.ID, "type", a.Type)
	return a, nil
}

// Attachments lists a favorite's documents, newest first.
func (m *Manager) Attachments(ctx context.Context, propertyID string) ([]model.Attachment, error) {
	if err := m.requireFavorite(ctx, propertyID); err != nil {
		return nil, err
	}
	return m.store.GetAttachments(ctx, m.userID, propertyID)
}

// RemoveAttachment deletes one document from a favorite.
func (m *Manager) RemoveAttachment(ctx context.Context, propertyID, attachmentID string) error {
	if err := m.requireFavorite(ctx, propertyID); err != nil {
		return err
	}
	return m.store.DeleteAttachment(ctx, m.userID, propertyID, attachmentID)
}
