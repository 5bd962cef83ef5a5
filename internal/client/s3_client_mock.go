package client

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// MockS3Client implements S3ClientInterface for testing without AWS credentials
type MockS3Client struct {
	Bucket   string
	Region   string
	Endpoint string

	// Optional function overrides for custom test behavior
	GenerateFileKeyFunc      func(kind, ownerID, fileExt string) (string, error)
	GeneratePresignedURLFunc func(ctx context.Context, kind, ownerID, fileName, contentType string) (string, string, error)
	DeleteFileFunc           func(ctx context.Context, key string) error
	GetFileURLFunc           func(key string) string

	// DeletedKeys records every key passed to DeleteFile
	DeletedKeys []string
}

// NewMockS3Client creates a new mock S3 client for testing
func NewMockS3Client() *MockS3Client {
	return &MockS3Client{
		Bucket: "test-bucket",
		Region: "ap-northeast-2",
	}
}

// GenerateFileKey generates a unique file key for S3 storage
func (m *MockS3Client) GenerateFileKey(kind, ownerID, fileExt string) (string, error) {
	if m.GenerateFileKeyFunc != nil {
		return m.GenerateFileKeyFunc(kind, ownerID, fileExt)
	}
	return generateFileKey(kind, ownerID, fileExt, time.Now())
}

// GeneratePresignedURL generates a mock presigned URL for testing
func (m *MockS3Client) GeneratePresignedURL(ctx context.Context, kind, ownerID, fileName, contentType string) (string, string, error) {
	if m.GeneratePresignedURLFunc != nil {
		return m.GeneratePresignedURLFunc(ctx, kind, ownerID, fileName, contentType)
	}

	fileKey, err := m.GenerateFileKey(kind, ownerID, filepath.Ext(fileName))
	if err != nil {
		return "", "", fmt.Errorf("failed to generate file key: %w", err)
	}

	now := time.Now().UTC()
	presignedURL := fmt.Sprintf("%s?X-Amz-Algorithm=AWS4-HMAC-SHA256&X-Amz-Credential=test-access-key%%2F%s%%2F%s%%2Fs3%%2Faws4_request&X-Amz-Date=%s&X-Amz-Expires=300&X-Amz-SignedHeaders=host&X-Amz-Signature=mocksignature123",
		m.GetFileURL(fileKey),
		now.Format("20060102"),
		m.Region,
		now.Format("20060102T150405Z"),
	)

	return presignedURL, fileKey, nil
}

// DeleteFile simulates file deletion
func (m *MockS3Client) DeleteFile(ctx context.Context, key string) error {
	m.DeletedKeys = append(m.DeletedKeys, key)
	if m.DeleteFileFunc != nil {
		return m.DeleteFileFunc(ctx, key)
	}
	return nil
}

// GetFileURL returns the public URL for a file
func (m *MockS3Client) GetFileURL(key string) string {
	if m.GetFileURLFunc != nil {
		return m.GetFileURLFunc(key)
	}
	if m.Endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", m.Endpoint, m.Bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", m.Bucket, m.Region, key)
}

// KeyFromURL mirrors S3Client.KeyFromURL
func (m *MockS3Client) KeyFromURL(fileURL string) (string, bool) {
	base := m.GetFileURL("")
	if !strings.HasPrefix(fileURL, base) {
		return "", false
	}
	key := strings.TrimPrefix(fileURL, base)
	if !strings.HasPrefix(key, keyPrefix+"/") {
		return "", false
	}
	return key, true
}

// Ensure MockS3Client implements S3ClientInterface
var _ S3ClientInterface = (*MockS3Client)(nil)
var _ S3ClientInterface = (*S3Client)(nil)
