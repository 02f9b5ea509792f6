// internal/services/storage_service.go
package services

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"

	"github.com/anenterprise-lab/pet-food-backend/internal/config"
)

// StorageService stores uploaded images on S3 when AWS credentials are
// configured and on the local uploads directory otherwise.
type StorageService struct {
	s3Client *s3.S3
	config   *config.Config
}

type UploadResult struct {
	URL      string `json:"imageUrl"`
	Key      string `json:"key"`
	Size     int64  `json:"size"`
	MimeType string `json:"mime_type"`
}

// Accepted image formats; both the declared MIME type and the filename
// extension must match.
var (
	allowedImageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}
	allowedImageMimeTypes  = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}
)

func NewStorageService(cfg *config.Config) (*StorageService, error) {
	if cfg.AWS.AccessKeyID == "" {
		// Local disk storage for development
		if err := os.MkdirAll(cfg.Upload.Dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create upload directory: %w", err)
		}
		return &StorageService{config: cfg}, nil
	}

	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(cfg.AWS.Region),
		Credentials: credentials.NewStaticCredentials(
			cfg.AWS.AccessKeyID,
			cfg.AWS.SecretAccessKey,
			"",
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return &StorageService{
		s3Client: s3.New(sess),
		config:   cfg,
	}, nil
}

// UploadImage validates and stores a single image file, returning its
// public URL.
func (s *StorageService) UploadImage(file multipart.File, header *multipart.FileHeader) (*UploadResult, error) {
	if header.Filename == "" {
		return nil, &ValidationError{Message: "File has no name"}
	}

	maxSize := s.config.Upload.MaxSizeMB * 1024 * 1024
	if maxSize > 0 && header.Size > maxSize {
		return nil, &ValidationError{Message: fmt.Sprintf("file size %d bytes exceeds maximum allowed size %d bytes", header.Size, maxSize)}
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !contains(allowedImageExtensions, ext) {
		return nil, &ValidationError{Message: "Images only"}
	}

	mimeType := header.Header.Get("Content-Type")
	if !contains(allowedImageMimeTypes, mimeType) {
		return nil, &ValidationError{Message: "Images only"}
	}

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	filename := s.generateFileName(ext)

	if s.s3Client != nil {
		return s.uploadToS3(fileBytes, filename, mimeType)
	}

	return s.uploadToLocal(fileBytes, filename, mimeType)
}

func (s *StorageService) uploadToS3(fileBytes []byte, key, contentType string) (*UploadResult, error) {
	params := &s3.PutObjectInput{
		Bucket:        aws.String(s.config.AWS.S3Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(fileBytes),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(fileBytes))),
		ACL:           aws.String("public-read"),
	}

	if _, err := s.s3Client.PutObject(params); err != nil {
		return nil, fmt.Errorf("failed to upload to S3: %w", err)
	}

	url := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.config.AWS.S3Bucket, s.config.AWS.Region, key)

	return &UploadResult{
		URL:      url,
		Key:      key,
		Size:     int64(len(fileBytes)),
		MimeType: contentType,
	}, nil
}

func (s *StorageService) uploadToLocal(fileBytes []byte, filename, contentType string) (*UploadResult, error) {
	path := filepath.Join(s.config.Upload.Dir, filename)

	if err := os.WriteFile(path, fileBytes, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write file: %w", err)
	}

	return &UploadResult{
		URL:      s.config.Upload.PublicPath + "/" + filename,
		Key:      filename,
		Size:     int64(len(fileBytes)),
		MimeType: contentType,
	}, nil
}

func (s *StorageService) generateFileName(ext string) string {
	return fmt.Sprintf("image-%d-%s%s", time.Now().UnixMilli(), uuid.NewString()[:8], ext)
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
