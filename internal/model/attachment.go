package model

import "time"

// AttachmentType classifies what an attachment holds.
type AttachmentType string

// Attachment kinds.
const (
	AttachmentImage AttachmentType = "image"
	AttachmentLink  AttachmentType = "link"
	AttachmentFile  AttachmentType = "file"
)

// Attachment is a user-supplied document linked to a saved property.
// Data holds a URL for links and base64 content otherwise.
type Attachment struct {
	Date       time.Time      `json:"date"`
	ID         string         `json:"id"`
	PropertyID string         `json:"propertyId"`
	Type       AttachmentType `json:"type"`
	MimeType   string         `json:"mimeType,omitempty"`
	Name       string         `json:"name"`
	Data       string         `json:"data"`
}

// Preferences is the per-user document holding favorite and rejected ids.
// Rejected entries may be property ids or case numbers.
type Preferences struct {
	Favorites []string `json:"favorites"`
	Rejected  []string `json:"rejected"`
}
