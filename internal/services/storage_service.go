// internal/services/storage_service.go
package services

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/dress-catalog/internal/config"
)

// LocalUploadPrefix is the URL path local uploads are served under.
const LocalUploadPrefix = "/uploads"

// StorageService stores product images on S3 when credentials are configured and on the
// local disk otherwise.
type StorageService struct {
	s3Client  s3iface.S3API
	aws       config.AWSConfig
	uploadDir string
	maxSize   int64
	now       func() time.Time
}

type UploadResult struct {
	URL      string `json:"url"`
	Key      string `json:"key"`
	Size     int64  `json:"size"`
	MimeType string `json:"mime_type"`
}

var allowedImageExts = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}

func NewStorageService(cfg *config.Config) (*StorageService, error) {
	s := &StorageService{
		aws:       cfg.AWS,
		uploadDir: cfg.Catalog.UploadDir,
		maxSize:   cfg.Catalog.MaxUploadBytes,
		now:       time.Now,
	}

	if cfg.AWS.AccessKeyID == "" {
		return s, nil
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

	s.s3Client = s3.New(sess)
	return s, nil
}

// NewLocalStorageService stores under dir only. Used by tests and by the memory driver.
func NewLocalStorageService(dir string, maxSize int64) *StorageService {
	return &StorageService{uploadDir: dir, maxSize: maxSize, now: time.Now}
}

func (s *StorageService) UsesS3() bool {
	return s.s3Client != nil
}

// UploadImage checks size, extension and file signature, then stores the image under
// products/ and returns the URL to use as a product image reference.
func (s *StorageService) UploadImage(file multipart.File, header *multipart.FileHeader) (*UploadResult, error) {
	if s.maxSize > 0 && header.Size > s.maxSize {
		return nil, fmt.Errorf("file size %d bytes exceeds maximum allowed size %d bytes", header.Size, s.maxSize)
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !isAllowedExt(ext) {
		return nil, fmt.Errorf("file type %s is not allowed", ext)
	}

	fileBytes, err := io.ReadAll(io.LimitReader(file, s.readLimit()))
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if s.maxSize > 0 && int64(len(fileBytes)) > s.maxSize {
		return nil, fmt.Errorf("file exceeds maximum allowed size %d bytes", s.maxSize)
	}

	if !isValidImageType(fileBytes) {
		return nil, fmt.Errorf("invalid image file")
	}

	key := s.generateKey(ext)
	contentType := http.DetectContentType(fileBytes)

	if s.s3Client != nil {
		return s.uploadToS3(fileBytes, key, contentType)
	}
	return s.uploadToLocal(fileBytes, key, contentType)
}

func (s *StorageService) uploadToS3(fileBytes []byte, key, contentType string) (*UploadResult, error) {
	_, err := s.s3Client.PutObject(&s3.PutObjectInput{
		Bucket:        aws.String(s.aws.S3Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(fileBytes),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(fileBytes))),
		ACL:           aws.String("public-read"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload to S3: %w", err)
	}

	return &UploadResult{
		URL:      s.getS3URL(key),
		Key:      key,
		Size:     int64(len(fileBytes)),
		MimeType: contentType,
	}, nil
}

func (s *StorageService) uploadToLocal(fileBytes []byte, key, contentType string) (*UploadResult, error) {
	dst := filepath.Join(s.uploadDir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	if err := os.WriteFile(dst, fileBytes, 0644); err != nil {
		return nil, fmt.Errorf("failed to write upload: %w", err)
	}

	logrus.WithFields(logrus.Fields{"key": key, "size": len(fileBytes)}).Info("Stored product image locally")

	return &UploadResult{
		URL:      path.Join(LocalUploadPrefix, key),
		Key:      key,
		Size:     int64(len(fileBytes)),
		MimeType: contentType,
	}, nil
}

func (s *StorageService) readLimit() int64 {
	if s.maxSize > 0 {
		return s.maxSize + 1
	}
	return 32 << 20
}

func (s *StorageService) generateKey(ext string) string {
	id := uuid.New()
	timestamp := s.now().Format("20060102")
	return fmt.Sprintf("products/%s_%s%s", timestamp, id.String()[:8], ext)
}

func (s *StorageService) getS3URL(key string) string {
	if s.aws.CloudFrontURL != "" {
		return fmt.Sprintf("%s/%s", strings.TrimRight(s.aws.CloudFrontURL, "/"), key)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.aws.S3Bucket, s.aws.Region, key)
}

func isAllowedExt(ext string) bool {
	for _, allowed := range allowedImageExts {
		if ext == allowed {
			return true
		}
	}
	return false
}

func isValidImageType(buffer []byte) bool {
	// JPEG
	if len(buffer) >= 3 && buffer[0] == 0xFF && buffer[1] == 0xD8 && buffer[2] == 0xFF {
		return true
	}

	// PNG
	if len(buffer) >= 8 && bytes.Equal(buffer[:8], []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1A, '\n'}) {
		return true
	}

	// GIF
	if len(buffer) >= 6 && (string(buffer[:6]) == "GIF87a" || string(buffer[:6]) == "GIF89a") {
		return true
	}

	// WEBP
	if len(buffer) >= 12 && string(buffer[:4]) == "RIFF" && string(buffer[8:12]) == "WEBP" {
		return true
	}

	return false
}
