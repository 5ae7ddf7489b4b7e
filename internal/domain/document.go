package domain

import (
	"time"

	"github.com/google/uuid"
)

// MaxDocumentSizeBytes caps a single upload at 10 MiB.
const MaxDocumentSizeBytes = 10 << 20

// AllowedDocumentTypes are the content types the upload flow accepts:
// scans and photos of FICA documents plus PDFs.
var AllowedDocumentTypes = map[string]struct{}{
	"application/pdf": {},
	"image/jpeg":      {},
	"image/png":       {},
}

// Document is an uploaded supporting document (ID copy, payslip, bank
// statement) attached to a customer and optionally to an application.
type Document struct {
	ID            uuid.UUID  `json:"id"`
	UserID        uuid.UUID  `json:"userId"`
	ApplicationID *int32     `json:"applicationId,omitempty"`
	FileName      string     `json:"fileName"`
	ContentType   string     `json:"contentType"`
	SizeBytes     int64      `json:"sizeBytes"`
	StoragePath   string     `json:"-"`
	ThumbnailPath *string    `json:"-"`
	UploadedAt    time.Time  `json:"uploadedAt"`
	DeletedAt     *time.Time `json:"deletedAt,omitempty"`
}

func (d *Document) Validate() error {
	if d.FileName == "" {
		return ErrInvalidInput
	}
	if d.SizeBytes <= 0 || d.SizeBytes > MaxDocumentSizeBytes {
		return ErrDocumentTooLarge
	}
	if _, ok := AllowedDocumentTypes[d.ContentType]; !ok {
		return ErrUnsupportedDocumentType
	}
	return nil
}

// IsImage reports whether the document is a photo/scan that gets a
// thumbnail.
func (d *Document) IsImage() bool {
	return d.ContentType == "image/jpeg" || d.ContentType == "image/png"
}

type DocumentRepository interface {
	Create(doc *Document) (*Document, error)
	GetByID(userID uuid.UUID, id uuid.UUID) (*Document, error)
	GetAllByUser(userID uuid.UUID) ([]*Document, error)
	SoftDelete(userID uuid.UUID, id uuid.UUID) error
}
