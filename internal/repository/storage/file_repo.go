package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/google/uuid"
)

// FileRepository defines the interface for document object storage
type FileRepository interface {
	Upload(ctx context.Context, objectPath string, data io.Reader, contentType string, size int64) (string, error)
	Delete(ctx context.Context, objectPath string) error
	GeneratePresignedURL(ctx context.Context, objectPath string, expiry time.Duration) (string, error)
}

// GenerateObjectPath creates a unique object path for an uploaded document.
// Layout: <userID>/documents/<uuid>_<variant><ext>
func GenerateObjectPath(userID uuid.UUID, variant string, ext string) string {
	filename := fmt.Sprintf("%s_%s%s", uuid.New().String(), variant, ext)
	return path.Join(userID.String(), "documents", filename)
}

// GenerateReportPath creates a unique object path for a generated PDF report.
func GenerateReportPath(userID uuid.UUID, kind string) string {
	filename := fmt.Sprintf("%s_%s.pdf", uuid.New().String(), kind)
	return path.Join(userID.String(), "reports", filename)
}
