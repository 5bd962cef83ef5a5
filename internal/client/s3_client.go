package client

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	appConfig "blog-engagement-api/internal/config"
)

const (
	keyPrefix     = "blog"
	PresignExpiry = 5 * time.Minute
)

// Media kinds accepted for uploads
const (
	MediaKindAvatar   = "avatar"
	MediaKindFeatured = "featured"
)

// S3ClientInterface defines the interface for S3 operations
type S3ClientInterface interface {
	GenerateFileKey(kind, ownerID, fileExt string) (string, error)
	GeneratePresignedURL(ctx context.Context, kind, ownerID, fileName, contentType string) (string, string, error)
	DeleteFile(ctx context.Context, key string) error
	GetFileURL(key string) string
	KeyFromURL(fileURL string) (string, bool)
}

// S3Client wraps AWS S3 client and implements S3ClientInterface
type S3Client struct {
	client        *s3.Client
	presignClient *s3.PresignClient
	bucket        string
	region        string
	endpoint      string // MinIO 사용 시 로컬 엔드포인트를 저장
}

// NewS3Client creates a new S3 client
func NewS3Client(cfg *appConfig.S3Config) (*S3Client, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("S3 bucket is required")
	}
	if cfg.Region == "" {
		return nil, fmt.Errorf("S3 region is required")
	}
	if cfg.Endpoint != "" && (cfg.AccessKey == "" || cfg.SecretKey == "") {
		return nil, fmt.Errorf("access key and secret key are required for a custom endpoint")
	}

	opts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}
	// otherwise the default chain applies (IAM role on EC2/EKS, ~/.aws/credentials locally)

	awsCfg, err := config.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	s3Client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true // Required for MinIO
		}
	})

	return &S3Client{
		client:        s3Client,
		presignClient: s3.NewPresignClient(s3Client),
		bucket:        cfg.Bucket,
		region:        cfg.Region,
		endpoint:      strings.TrimSuffix(cfg.Endpoint, "/"),
	}, nil
}

// ValidMediaKind reports whether kind is an accepted upload kind
func ValidMediaKind(kind string) bool {
	return kind == MediaKindAvatar || kind == MediaKindFeatured
}

// GenerateFileKey generates a unique S3 file key
// Format: blog/{kind}/{ownerId}/{year}/{month}/{uuid}_{timestamp}.ext
func (c *S3Client) GenerateFileKey(kind, ownerID, fileExt string) (string, error) {
	return generateFileKey(kind, ownerID, fileExt, time.Now())
}

func generateFileKey(kind, ownerID, fileExt string, now time.Time) (string, error) {
	if !ValidMediaKind(kind) {
		return "", fmt.Errorf("invalid media kind: %s (must be '%s' or '%s')", kind, MediaKindAvatar, MediaKindFeatured)
	}
	if ownerID == "" {
		return "", fmt.Errorf("owner id is required")
	}

	return fmt.Sprintf("%s/%s/%s/%s/%s/%s_%d%s",
		keyPrefix, kind, ownerID, now.Format("2006"), now.Format("01"),
		uuid.New().String(), now.Unix(), strings.ToLower(fileExt)), nil
}

// GeneratePresignedURL generates a presigned URL for uploading a file to S3
// The URL expires in 5 minutes
func (c *S3Client) GeneratePresignedURL(ctx context.Context, kind, ownerID, fileName, contentType string) (string, string, error) {
	fileKey, err := c.GenerateFileKey(kind, ownerID, filepath.Ext(fileName))
	if err != nil {
		return "", "", fmt.Errorf("failed to generate file key: %w", err)
	}

	presignedReq, err := c.presignClient.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(fileKey),
		ContentType: aws.String(contentType),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = PresignExpiry
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	finalURL := presignedReq.URL

	// 로컬 개발 환경: MinIO 내부 호스트를 외부에서 접근 가능한 호스트로 치환
	if c.endpoint != "" {
		const internalMinIOHost = "minio:9000"
		externalHost := strings.TrimPrefix(strings.TrimPrefix(c.endpoint, "http://"), "https://")
		finalURL = strings.Replace(finalURL, internalMinIOHost, externalHost, 1)
	}

	return finalURL, fileKey, nil
}

// DeleteFile deletes a file from S3
func (c *S3Client) DeleteFile(ctx context.Context, key string) error {
	_, err := c.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete file from S3: %w", err)
	}
	return nil
}

// GetFileURL returns the public URL for a file
func (c *S3Client) GetFileURL(key string) string {
	if c.endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", c.endpoint, c.bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", c.bucket, c.region, key)
}

// KeyFromURL extracts the object key from a URL produced by GetFileURL.
// Returns false for URLs that do not point into this bucket's blog prefix.
func (c *S3Client) KeyFromURL(fileURL string) (string, bool) {
	base := c.GetFileURL("")
	if !strings.HasPrefix(fileURL, base) {
		return "", false
	}
	key := strings.TrimPrefix(fileURL, base)
	if i := strings.IndexAny(key, "?#"); i >= 0 {
		key = key[:i]
	}
	if !strings.HasPrefix(key, keyPrefix+"/") {
		return "", false
	}
	return key, true
}
