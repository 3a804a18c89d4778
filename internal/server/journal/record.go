// Package journal keeps a record of every provisioning run: what was
// uploaded, which Odoo records were created and how the run ended.
package journal

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
	// StatusOrphaned: the attachment exists in Odoo but no document points to it.
	StatusOrphaned Status = "orphaned"
	// StatusCompensated: document creation failed and the attachment was unlinked.
	StatusCompensated Status = "compensated"
)

type Record struct {
	ID           uuid.UUID `json:"id"`
	RequestID    string    `json:"requestId,omitempty"`
	FileName     string    `json:"fileName"`
	MimeType     string    `json:"mimetype"`
	Size         int64     `json:"size"`
	FolderID     int64     `json:"folderId"`
	AttachmentID int64     `json:"attachmentId,omitempty"`
	DocumentID   int64     `json:"documentId,omitempty"`
	Status       Status    `json:"status"`
	Error        string    `json:"error,omitempty"`
	ArchiveKey   string    `json:"archiveKey,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Repository persists journal records.
type Repository interface {
	// Save inserts r or replaces the record with the same ID.
	Save(ctx context.Context, r *Record) error
	// Recent returns at most limit records, newest first.
	Recent(ctx context.Context, limit int) ([]*Record, error)
}
