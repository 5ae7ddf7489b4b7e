package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/elandref93/WiseBond-sub004/internal/domain"
)

// DocumentRepository implements domain.DocumentRepository using PostgreSQL
type DocumentRepository struct {
	pool *pgxpool.Pool
}

// NewDocumentRepository creates a new DocumentRepository
func NewDocumentRepository(pool *pgxpool.Pool) *DocumentRepository {
	return &DocumentRepository{pool: pool}
}

const documentColumns = `id, user_id, application_id, file_name, content_type, size_bytes, storage_path, thumbnail_path, uploaded_at, deleted_at`

// Create persists document metadata after the object is stored
func (r *DocumentRepository) Create(doc *domain.Document) (*domain.Document, error) {
	row := r.pool.QueryRow(context.Background(),
		`INSERT INTO documents (id, user_id, application_id, file_name, content_type, size_bytes, storage_path, thumbnail_path)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING `+documentColumns,
		uuidToPg(doc.ID),
		uuidToPg(doc.UserID),
		int32PtrToPgInt4(doc.ApplicationID),
		doc.FileName,
		doc.ContentType,
		doc.SizeBytes,
		doc.StoragePath,
		stringPtrToPgText(doc.ThumbnailPath))
	return scanDocument(row)
}

// GetByID retrieves a document scoped to its owner
func (r *DocumentRepository) GetByID(userID uuid.UUID, id uuid.UUID) (*domain.Document, error) {
	row := r.pool.QueryRow(context.Background(),
		`SELECT `+documentColumns+` FROM documents
		 WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL`,
		uuidToPg(id), uuidToPg(userID))
	return scanDocument(row)
}

// GetAllByUser lists the user's documents, newest first
func (r *DocumentRepository) GetAllByUser(userID uuid.UUID) ([]*domain.Document, error) {
	rows, err := r.pool.Query(context.Background(),
		`SELECT `+documentColumns+` FROM documents
		 WHERE user_id = $1 AND deleted_at IS NULL
		 ORDER BY uploaded_at DESC`,
		uuidToPg(userID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	docs := make([]*domain.Document, 0)
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// SoftDelete marks a document as deleted without dropping the row.
// The stored object is cleaned up separately.
func (r *DocumentRepository) SoftDelete(userID uuid.UUID, id uuid.UUID) error {
	tag, err := r.pool.Exec(context.Background(),
		`UPDATE documents SET deleted_at = now()
		 WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL`,
		uuidToPg(id), uuidToPg(userID))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrDocumentNotFound
	}
	return nil
}

func scanDocument(row pgx.Row) (*domain.Document, error) {
	var (
		d             domain.Document
		id            pgtype.UUID
		userID        pgtype.UUID
		applicationID pgtype.Int4
		thumbnailPath pgtype.Text
		uploadedAt    pgtype.Timestamptz
		deletedAt     pgtype.Timestamptz
	)
	err := row.Scan(&id, &userID, &applicationID, &d.FileName, &d.ContentType,
		&d.SizeBytes, &d.StoragePath, &thumbnailPath, &uploadedAt, &deletedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrDocumentNotFound
		}
		return nil, err
	}
	d.ID = pgToUUID(id)
	d.UserID = pgToUUID(userID)
	d.ApplicationID = pgInt4ToInt32Ptr(applicationID)
	d.ThumbnailPath = pgTextToStringPtr(thumbnailPath)
	d.UploadedAt = uploadedAt.Time
	d.DeletedAt = pgTimestamptzToTimePtr(deletedAt)
	return &d, nil
}
