package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"path/filepath"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/elandref93/WiseBond-sub004/internal/domain"
	"github.com/elandref93/WiseBond-sub004/internal/repository/storage"
	"github.com/elandref93/WiseBond-sub004/internal/websocket"
)

const (
	// ThumbnailWidth is the pixel width of generated document thumbnails
	ThumbnailWidth = 200
	// ThumbnailJPEGQuality is the encode quality for thumbnails
	ThumbnailJPEGQuality = 85
	// PresignedURLExpiry is how long download links stay valid
	PresignedURLExpiry = 15 * time.Minute
)

// DocumentService handles FICA document uploads: validation, thumbnail
// generation for images, object storage and metadata persistence.
type DocumentService struct {
	docRepo   domain.DocumentRepository
	fileRepo  storage.FileRepository
	publisher websocket.EventPublisher
}

// NewDocumentService creates a new DocumentService
func NewDocumentService(docRepo domain.DocumentRepository, fileRepo storage.FileRepository, publisher websocket.EventPublisher) *DocumentService {
	return &DocumentService{
		docRepo:   docRepo,
		fileRepo:  fileRepo,
		publisher: publisher,
	}
}

// DocumentView is a document plus short-lived download URLs
type DocumentView struct {
	*domain.Document
	DownloadURL  string `json:"downloadUrl"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
}

// Upload validates and stores a document. Images get a thumbnail variant.
// agentID, when non-nil, receives a dashboard event.
func (s *DocumentService) Upload(ctx context.Context, userID uuid.UUID, applicationID *int32, agentID *uuid.UUID, fileName, contentType string, data []byte) (*domain.Document, error) {
	doc := &domain.Document{
		ID:            uuid.New(),
		UserID:        userID,
		ApplicationID: applicationID,
		FileName:      fileName,
		ContentType:   contentType,
		SizeBytes:     int64(len(data)),
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	ext := filepath.Ext(fileName)
	objectPath := storage.GenerateObjectPath(userID, "original", ext)
	if _, err := s.fileRepo.Upload(ctx, objectPath, bytes.NewReader(data), contentType, doc.SizeBytes); err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to upload document")
		return nil, err
	}
	doc.StoragePath = objectPath

	if doc.IsImage() {
		thumbPath, err := s.uploadThumbnail(ctx, userID, data)
		if err != nil {
			// A document without a thumbnail is still usable.
			log.Warn().Err(err).Str("user_id", userID.String()).Msg("Failed to generate thumbnail")
		} else {
			doc.ThumbnailPath = &thumbPath
		}
	}

	created, err := s.docRepo.Create(doc)
	if err != nil {
		// Roll back the stored objects so nothing orphaned remains.
		_ = s.fileRepo.Delete(ctx, doc.StoragePath)
		if doc.ThumbnailPath != nil {
			_ = s.fileRepo.Delete(ctx, *doc.ThumbnailPath)
		}
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to persist document metadata")
		return nil, err
	}

	if agentID != nil {
		s.publisher.Publish(*agentID, websocket.DocumentUploaded(created))
	}

	log.Info().
		Str("document_id", created.ID.String()).
		Str("user_id", userID.String()).
		Int64("size_bytes", created.SizeBytes).
		Msg("Document uploaded")
	return created, nil
}

func (s *DocumentService) uploadThumbnail(ctx context.Context, userID uuid.UUID, data []byte) (string, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	thumb := img
	if img.Bounds().Dx() > ThumbnailWidth {
		// Resize maintaining aspect ratio
		thumb = imaging.Resize(img, ThumbnailWidth, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, thumb, &jpeg.Options{Quality: ThumbnailJPEGQuality}); err != nil {
		return "", fmt.Errorf("failed to encode thumbnail: %w", err)
	}

	thumbPath := storage.GenerateObjectPath(userID, "thumb", ".jpg")
	if _, err := s.fileRepo.Upload(ctx, thumbPath, bytes.NewReader(buf.Bytes()), "image/jpeg", int64(buf.Len())); err != nil {
		return "", err
	}
	return thumbPath, nil
}

// Get returns a single document with presigned URLs
func (s *DocumentService) Get(ctx context.Context, userID uuid.UUID, id uuid.UUID) (*DocumentView, error) {
	doc, err := s.docRepo.GetByID(userID, id)
	if err != nil {
		return nil, err
	}
	return s.toView(ctx, doc), nil
}

// List returns the user's documents with presigned URLs
func (s *DocumentService) List(ctx context.Context, userID uuid.UUID) ([]*DocumentView, error) {
	docs, err := s.docRepo.GetAllByUser(userID)
	if err != nil {
		return nil, err
	}
	views := make([]*DocumentView, 0, len(docs))
	for _, doc := range docs {
		views = append(views, s.toView(ctx, doc))
	}
	return views, nil
}

// Delete soft-deletes the metadata and removes the stored objects
func (s *DocumentService) Delete(ctx context.Context, userID uuid.UUID, id uuid.UUID) error {
	doc, err := s.docRepo.GetByID(userID, id)
	if err != nil {
		return err
	}

	if err := s.docRepo.SoftDelete(userID, id); err != nil {
		return err
	}

	// Object cleanup is best effort; the soft-deleted row keeps the path.
	if err := s.fileRepo.Delete(ctx, doc.StoragePath); err != nil {
		log.Warn().Err(err).Str("document_id", id.String()).Msg("Failed to delete stored object")
	}
	if doc.ThumbnailPath != nil {
		if err := s.fileRepo.Delete(ctx, *doc.ThumbnailPath); err != nil {
			log.Warn().Err(err).Str("document_id", id.String()).Msg("Failed to delete thumbnail object")
		}
	}

	log.Info().Str("document_id", id.String()).Str("user_id", userID.String()).Msg("Document deleted")
	return nil
}

func (s *DocumentService) toView(ctx context.Context, doc *domain.Document) *DocumentView {
	view := &DocumentView{Document: doc}

	url, err := s.fileRepo.GeneratePresignedURL(ctx, doc.StoragePath, PresignedURLExpiry)
	if err != nil {
		log.Warn().Err(err).Str("document_id", doc.ID.String()).Msg("Failed to presign download URL")
	} else {
		view.DownloadURL = url
	}

	if doc.ThumbnailPath != nil {
		thumbURL, err := s.fileRepo.GeneratePresignedURL(ctx, *doc.ThumbnailPath, PresignedURLExpiry)
		if err == nil {
			view.ThumbnailURL = thumbURL
		}
	}
	return view
}
