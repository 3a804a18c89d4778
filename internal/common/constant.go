package common

// Fixed linkage applied to every provisioned attachment and document.
const (
	PartnerModel = "res.partner"
	ContactID    = 3
)

// Odoo models touched by the portal.
const (
	AttachmentModel = "ir.attachment"
	DocumentModel   = "documents.document"
	FolderModel     = "documents.folder"
)

const (
	// DefaultMimeType is used when an upload does not carry a MIME type.
	DefaultMimeType = "application/octet-stream"

	// DefaultFolderID is used when the configured folder id is missing or not numeric.
	DefaultFolderID = 1

	// RequestIDHeaderName carries the per-request correlation id.
	RequestIDHeaderName = "X-Request-ID"
)
