package service

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"blog-engagement-api/internal/client"
	"blog-engagement-api/internal/dto"
	"blog-engagement-api/internal/response"
)

// MaxImageSize is the largest upload accepted for avatars and featured images (10MB)
const MaxImageSize = 10 * 1024 * 1024

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// MediaService defines the interface for image upload handling
type MediaService interface {
	GeneratePresignedURL(ctx context.Context, ownerID uuid.UUID, req *dto.PresignedURLRequest) (*dto.PresignedURLResponse, error)
	// RemoveByURL deletes an object previously handed out by this service.
	// URLs that do not point into the bucket are ignored.
	RemoveByURL(ctx context.Context, fileURL string)
}

// mediaServiceImpl is the implementation of MediaService
type mediaServiceImpl struct {
	s3Client client.S3ClientInterface
	logger   *zap.Logger
}

// NewMediaService creates a new instance of MediaService. A nil client yields a
// service that rejects upload requests and ignores removals.
func NewMediaService(s3Client client.S3ClientInterface, logger *zap.Logger) MediaService {
	return &mediaServiceImpl{
		s3Client: s3Client,
		logger:   logger,
	}
}

// GeneratePresignedURL validates an upload request and returns a presigned PUT URL
func (s *mediaServiceImpl) GeneratePresignedURL(ctx context.Context, ownerID uuid.UUID, req *dto.PresignedURLRequest) (*dto.PresignedURLResponse, error) {
	if ownerID == uuid.Nil {
		return nil, response.NewUnauthorizedError("Authentication required", "")
	}
	if s.s3Client == nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "File storage is not configured", "")
	}
	if !client.ValidMediaKind(req.Kind) {
		return nil, response.NewValidationError("Invalid media kind", "kind must be avatar or featured")
	}
	if req.FileSize <= 0 || req.FileSize > MaxImageSize {
		return nil, response.NewValidationError("Invalid file size", "file size must be between 1 byte and 10MB")
	}
	if err := validateImageType(req.FileName, req.ContentType); err != nil {
		return nil, err
	}

	uploadURL, fileKey, err := s.s3Client.GeneratePresignedURL(ctx, req.Kind, ownerID.String(), req.FileName, req.ContentType)
	if err != nil {
		s.logger.Error("Failed to generate presigned URL",
			zap.String("owner_id", ownerID.String()),
			zap.String("kind", req.Kind),
			zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to generate presigned URL", err.Error())
	}

	return &dto.PresignedURLResponse{
		UploadURL: uploadURL,
		FileKey:   fileKey,
		FileURL:   s.s3Client.GetFileURL(fileKey),
		ExpiresAt: time.Now().UTC().Add(client.PresignExpiry),
	}, nil
}

// RemoveByURL deletes the object behind fileURL. Errors are logged only.
func (s *mediaServiceImpl) RemoveByURL(ctx context.Context, fileURL string) {
	if s.s3Client == nil || fileURL == "" {
		return
	}
	key, ok := s.s3Client.KeyFromURL(fileURL)
	if !ok {
		return
	}
	if err := s.s3Client.DeleteFile(ctx, key); err != nil {
		s.logger.Warn("Failed to delete media object",
			zap.String("key", key),
			zap.Error(err))
	}
}

// validateImageType checks both the declared content type and the file extension
func validateImageType(fileName, contentType string) error {
	ext := strings.ToLower(filepath.Ext(fileName))
	if ext == "" {
		return response.NewValidationError("Invalid file name", "File must have an extension")
	}
	if !allowedImageTypes[strings.ToLower(contentType)] || !allowedImageExtensions[ext] {
		return response.NewValidationError("Unsupported file type", "Supported types: jpg, jpeg, png, gif, webp")
	}
	return nil
}
